package player

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"lyric-player-go/logcolors"
	"lyric-player-go/lyrics"
	"lyric-player-go/stats"
)

// State is everything the render surface needs, captured at one instant.
// Track and Lyrics are immutable once published (snapshots replace them
// wholesale), so handing out the pointers is safe.
type State struct {
	Track         *TrackInfo
	Lyrics        *lyrics.Document
	Queue         []QueueItem
	IsPlaying     bool
	IsPaused      bool
	ServerTime    float64
	ReceivedAt    time.Time
	DisplayedTime float64
	CurrentSource string
	Err           string
}

// CurrentLineIndex locates the current lyric line for this state's
// displayed time, applying the document's global offset.
func (s State) CurrentLineIndex() int {
	if s.Lyrics == nil {
		return -1
	}
	return lyrics.LineIndexAt(s.Lyrics.Lines, s.Lyrics.EffectiveTime(s.DisplayedTime))
}

// Session owns all mutable playback state for one player instance. Each
// mount of the player gets its own session; nothing is shared across
// instances and nothing survives the session being dropped.
type Session struct {
	mu    sync.RWMutex
	state State
}

func NewSession() *Session {
	return &Session{}
}

// State returns a copy of the current state. The queue slice is cloned so
// callers can't see a later snapshot splice through it.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	if st.Queue != nil {
		st.Queue = append([]QueueItem(nil), st.Queue...)
	}
	return st
}

// ApplySnapshot installs the result of one poll. Everything the snapshot
// carries is swapped in under a single lock so no reader ever observes new
// lyrics paired with an old position.
//
// A body that carries an error and no track freezes the previous
// track/lyrics on screen and only surfaces the error string: stale-but-valid
// display beats blanking the screen.
//
// DisplayedTime is hard-reset to the snapshot's position, which both
// eliminates interpolation drift at every poll boundary and re-synchronizes
// after seeks or skips performed by other clients.
func (s *Session) ApplySnapshot(snap *Snapshot, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.Error != "" && snap.Track == nil {
		s.state.Err = snap.Error
		stats.Get().ErrorSnapshots.Add(1)
		return
	}

	s.state.Err = ""
	s.state.Track = snap.Track
	s.state.Lyrics = snap.Lyrics
	s.state.Queue = snap.Queue
	s.state.IsPlaying = snap.IsPlaying
	s.state.IsPaused = snap.IsPaused
	s.state.CurrentSource = snap.LyricsSource
	s.state.ServerTime = snap.Position()
	s.state.ReceivedAt = now
	s.state.DisplayedTime = s.state.ServerTime

	stats.Get().SnapshotsApplied.Add(1)
}

// SetError records a poll failure without touching any previously fetched
// track or lyrics data.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = msg
}

// AdvanceDisplayed moves the displayed playback position forward by the
// given wall-clock delta. It is a no-op unless the remote transport is
// playing and not paused, so frame callbacks firing while paused (or after
// a stop) never move the position.
func (s *Session) AdvanceDisplayed(deltaSeconds float64) {
	if deltaSeconds <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsPlaying || s.state.IsPaused {
		return
	}
	s.state.DisplayedTime += deltaSeconds
	stats.Get().Frames.Add(1)
}

// Close logs a summary of the session's counters. The session itself holds
// no resources; the poller and clock own their goroutines.
func (s *Session) Close() {
	st := stats.Get()
	log.Infof("%s Session closed: %d polls (%d failed), %d snapshots, %d frames, %d controls",
		logcolors.LogSession,
		st.Polls.Load(), st.PollFailures.Load(),
		st.SnapshotsApplied.Load(), st.Frames.Load(), st.ControlActions.Load())
}
