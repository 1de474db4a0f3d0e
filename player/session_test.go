package player

import (
	"testing"
	"time"

	"lyric-player-go/lyrics"
)

func floatPtr(f float64) *float64 { return &f }

func playingSnapshot(position float64) *Snapshot {
	return &Snapshot{
		Track: &TrackInfo{
			Title:    "Test Track",
			Artist:   "Test Artist",
			Duration: 180,
		},
		Lyrics: &lyrics.Document{
			IsSynced: true,
			Source:   "providerA",
			Lines: []lyrics.Line{
				{Text: "line one", StartTime: 0, EndTime: 5},
				{Text: "line two", StartTime: 5, EndTime: 10},
			},
		},
		IsPlaying:    true,
		IsPaused:     false,
		CurrentTime:  floatPtr(position),
		LyricsSource: "providerA",
	}
}

func TestApplySnapshot_ReplacesStateAtomically(t *testing.T) {
	s := NewSession()
	now := time.Now()

	s.ApplySnapshot(playingSnapshot(12.5), now)

	st := s.State()
	if st.Track == nil || st.Track.Title != "Test Track" {
		t.Fatalf("Expected track to be applied, got %+v", st.Track)
	}
	if st.Lyrics == nil || len(st.Lyrics.Lines) != 2 {
		t.Fatalf("Expected lyrics to be applied, got %+v", st.Lyrics)
	}
	if !st.IsPlaying || st.IsPaused {
		t.Errorf("Expected playing and not paused, got playing=%v paused=%v", st.IsPlaying, st.IsPaused)
	}
	if st.ServerTime != 12.5 {
		t.Errorf("Expected serverTime 12.5, got %v", st.ServerTime)
	}
	if st.DisplayedTime != 12.5 {
		t.Errorf("Expected displayedTime reset to serverTime, got %v", st.DisplayedTime)
	}
	if !st.ReceivedAt.Equal(now) {
		t.Errorf("Expected receivedAt %v, got %v", now, st.ReceivedAt)
	}
	if st.Err != "" {
		t.Errorf("Expected no error, got %q", st.Err)
	}
}

func TestApplySnapshot_ResetsDriftedDisplayTime(t *testing.T) {
	// Local interpolation drifted well past 40; snapshot says 40. Snapshot wins.
	s := NewSession()
	s.ApplySnapshot(playingSnapshot(38), time.Now())

	s.AdvanceDisplayed(3.75)
	if got := s.State().DisplayedTime; got != 41.75 {
		t.Fatalf("Expected drifted displayedTime 41.75, got %v", got)
	}

	s.ApplySnapshot(playingSnapshot(40), time.Now())
	if got := s.State().DisplayedTime; got != 40 {
		t.Errorf("Expected displayedTime 40 after snapshot, got %v", got)
	}
}

func TestApplySnapshot_MissingCurrentTimeDefaultsToZero(t *testing.T) {
	s := NewSession()
	snap := playingSnapshot(0)
	snap.CurrentTime = nil

	s.ApplySnapshot(snap, time.Now())

	st := s.State()
	if st.ServerTime != 0 || st.DisplayedTime != 0 {
		t.Errorf("Expected zero position when current_time omitted, got server=%v displayed=%v",
			st.ServerTime, st.DisplayedTime)
	}
}

func TestApplySnapshot_ErrorWithoutTrackKeepsStaleState(t *testing.T) {
	s := NewSession()
	s.ApplySnapshot(playingSnapshot(20), time.Now())

	s.ApplySnapshot(&Snapshot{Error: "no track playing"}, time.Now())

	st := s.State()
	if st.Err != "no track playing" {
		t.Errorf("Expected error string surfaced, got %q", st.Err)
	}
	if st.Track == nil || st.Track.Title != "Test Track" {
		t.Error("Expected previous track to remain on an error snapshot")
	}
	if st.Lyrics == nil || len(st.Lyrics.Lines) != 2 {
		t.Error("Expected previous lyrics to remain on an error snapshot")
	}
}

func TestApplySnapshot_ErrorWithTrackStillApplies(t *testing.T) {
	// An error string next to a valid track is not the error-only case:
	// the snapshot applies and the error clears on the next clean poll.
	s := NewSession()
	snap := playingSnapshot(5)
	snap.Error = "provider degraded"

	s.ApplySnapshot(snap, time.Now())

	st := s.State()
	if st.Track == nil {
		t.Fatal("Expected track applied despite error string")
	}
	if st.Err != "" {
		t.Errorf("Expected error cleared on full snapshot, got %q", st.Err)
	}
}

func TestAdvanceDisplayed_OnlyWhilePlaying(t *testing.T) {
	s := NewSession()

	// Not playing: simulate 5 seconds of frame callbacks, nothing moves.
	snap := playingSnapshot(10)
	snap.IsPlaying = false
	s.ApplySnapshot(snap, time.Now())

	for i := 0; i < 50; i++ {
		s.AdvanceDisplayed(0.1)
	}
	if got := s.State().DisplayedTime; got != 10 {
		t.Errorf("Expected displayedTime frozen at 10 while not playing, got %v", got)
	}

	// Paused: same story.
	snap = playingSnapshot(10)
	snap.IsPaused = true
	s.ApplySnapshot(snap, time.Now())

	for i := 0; i < 50; i++ {
		s.AdvanceDisplayed(0.1)
	}
	if got := s.State().DisplayedTime; got != 10 {
		t.Errorf("Expected displayedTime frozen at 10 while paused, got %v", got)
	}

	// Playing: frames advance it.
	s.ApplySnapshot(playingSnapshot(10), time.Now())
	s.AdvanceDisplayed(0.5)
	if got := s.State().DisplayedTime; got != 10.5 {
		t.Errorf("Expected displayedTime 10.5 while playing, got %v", got)
	}
}

func TestAdvanceDisplayed_IgnoresNonPositiveDelta(t *testing.T) {
	s := NewSession()
	s.ApplySnapshot(playingSnapshot(10), time.Now())

	s.AdvanceDisplayed(0)
	s.AdvanceDisplayed(-1)

	if got := s.State().DisplayedTime; got != 10 {
		t.Errorf("Expected displayedTime unchanged, got %v", got)
	}
}

func TestSetError_KeepsData(t *testing.T) {
	s := NewSession()
	s.ApplySnapshot(playingSnapshot(10), time.Now())

	s.SetError("Failed to load lyrics")

	st := s.State()
	if st.Err != "Failed to load lyrics" {
		t.Errorf("Expected error string, got %q", st.Err)
	}
	if st.Track == nil {
		t.Error("Expected track kept after fetch failure")
	}
	if st.DisplayedTime != 10 {
		t.Errorf("Expected position untouched, got %v", st.DisplayedTime)
	}
}

func TestState_QueueIsCopied(t *testing.T) {
	s := NewSession()
	snap := playingSnapshot(0)
	snap.Queue = []QueueItem{{Position: 1, Title: "Next", Artist: "Someone", Duration: 200}}
	s.ApplySnapshot(snap, time.Now())

	st := s.State()
	st.Queue[0].Title = "mutated"

	if got := s.State().Queue[0].Title; got != "Next" {
		t.Errorf("Expected session queue unaffected by caller mutation, got %q", got)
	}
}

func TestState_CurrentLineIndex(t *testing.T) {
	s := NewSession()
	s.ApplySnapshot(playingSnapshot(7), time.Now())

	if got := s.State().CurrentLineIndex(); got != 1 {
		t.Errorf("Expected line index 1 at t=7, got %d", got)
	}

	// Offset shifts the effective time: -3 puts us back on the first line.
	snap := playingSnapshot(7)
	snap.Lyrics.OffsetSeconds = -3
	s.ApplySnapshot(snap, time.Now())

	if got := s.State().CurrentLineIndex(); got != 0 {
		t.Errorf("Expected line index 0 with -3s offset, got %d", got)
	}

	// No lyrics at all.
	if got := (State{}).CurrentLineIndex(); got != -1 {
		t.Errorf("Expected -1 without lyrics, got %d", got)
	}
}
