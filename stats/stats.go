package stats

import (
	"sync/atomic"
	"time"
)

// Stats holds player session counters with atomic fields so the poller,
// frame clock, and UI can bump them without coordination.
type Stats struct {
	StartTime time.Time

	// Polling
	Polls            atomic.Int64
	PollFailures     atomic.Int64
	SnapshotsApplied atomic.Int64
	ErrorSnapshots   atomic.Int64 // server said error, no track

	// Interpolation
	Frames atomic.Int64 // frame ticks that actually advanced time

	// Controls
	ControlActions    atomic.Int64
	ControlsThrottled atomic.Int64

	// Artwork
	ArtworkFetches  atomic.Int64
	ArtworkFailures atomic.Int64
}

var global = &Stats{
	StartTime: time.Now(),
}

// Get returns the global stats instance.
func Get() *Stats {
	return global
}

// Uptime returns how long this process has been running.
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

// Reset zeroes all counters. Intended for tests.
func (s *Stats) Reset() {
	s.Polls.Store(0)
	s.PollFailures.Store(0)
	s.SnapshotsApplied.Store(0)
	s.ErrorSnapshots.Store(0)
	s.Frames.Store(0)
	s.ControlActions.Store(0)
	s.ControlsThrottled.Store(0)
	s.ArtworkFetches.Store(0)
	s.ArtworkFailures.Store(0)
}
