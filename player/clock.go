package player

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"lyric-player-go/logcolors"
)

// Clock advances the session's displayed playback position between polls so
// the UI shows smooth sub-second progress without waiting on network round
// trips. It is the frame loop of the player: each tick accumulates the
// elapsed wall-clock delta onto DisplayedTime.
//
// No smoothing or averaging is applied beyond direct delta accumulation.
// Drift is bounded by the poll interval, because every applied snapshot
// hard-resets DisplayedTime to the server's position.
//
// A Clock is an explicitly cancellable task: Start spawns the loop, Stop
// guarantees it is torn down. Callers must Stop on every relevant state
// transition (player closed, guild changed) or the loop keeps mutating
// session state after the surface is gone.
type Clock struct {
	session  *Session
	interval time.Duration
	now      func() time.Time // injectable for tests

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewClock creates a frame clock for the session. interval is the frame
// period; ~33ms gives 30 updates per second, plenty for lyric highlighting.
func NewClock(session *Session, interval time.Duration) *Clock {
	return &Clock{
		session:  session,
		interval: interval,
		now:      time.Now,
	}
}

// Start launches the frame loop. It records a frame-local wall-clock
// reference, then on every tick advances DisplayedTime by the elapsed
// delta. Whether the position actually moves is the session's call
// (playing and not paused).
func (c *Clock) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return errors.New("clock already running")
	}

	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.running = true

	go c.run(c.stop, c.done)
	return nil
}

func (c *Clock) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	last := c.now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := c.now()
			delta := now.Sub(last).Seconds()
			last = now
			c.session.AdvanceDisplayed(delta)
		}
	}
}

// Stop tears down the frame loop and waits for it to exit. Idempotent, and
// after it returns the clock no longer touches the session.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	close(c.stop)
	<-c.done
	c.running = false

	log.Debugf("%s Frame loop stopped", logcolors.LogClock)
}

// Running reports whether the frame loop is active.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
