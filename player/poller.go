package player

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"lyric-player-go/logcolors"
	"lyric-player-go/stats"
)

// fetchFailureMessage is what the user sees when a poll fails outright.
const fetchFailureMessage = "Failed to load lyrics"

// Poller fetches playback snapshots on a fixed interval and applies them to
// a session. One fetch happens immediately on Start, then one per tick.
//
// There is no backoff: polls are cheap, and user-visible sync latency
// matters more than load. A failed poll surfaces an error string and the
// next tick retries.
type Poller struct {
	client   *Client
	session  *Session
	guildID  string
	source   string
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewPoller creates a poller for one guild. interval must be positive;
// the recommended default is one second.
func NewPoller(client *Client, session *Session, guildID, source string, interval time.Duration) *Poller {
	return &Poller{
		client:   client,
		session:  session,
		guildID:  guildID,
		source:   source,
		interval: interval,
	}
}

// Start begins polling until Stop is called or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return errors.New("poller already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	log.Infof("%s Polling guild %s every %v (source: %s)", logcolors.LogPoller, p.guildID, p.interval, p.source)

	go p.run(ctx)
	return nil
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	p.PollOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce issues a single fetch and applies the result. It never returns
// an error to the caller: failures are caught at this boundary and
// surfaced only as the session's error string. Exported so control
// dispatch can force an immediate re-poll after an action.
func (p *Poller) PollOnce(ctx context.Context) {
	stats.Get().Polls.Add(1)

	snap, err := p.client.FetchSnapshot(ctx, p.guildID, p.source)
	if err != nil {
		if ctx.Err() != nil {
			return // shutting down, not a fetch failure
		}
		stats.Get().PollFailures.Add(1)
		log.Warnf("%s %v", logcolors.LogPoller, err)
		p.session.SetError(fetchFailureMessage)
		return
	}

	p.session.ApplySnapshot(snap, time.Now())
}

// Stop cancels the polling loop and waits for it to exit. After Stop
// returns, the poller no longer mutates the session. Stop is idempotent.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.cancel()
	<-p.done
	p.running = false

	log.Infof("%s Stopped polling guild %s", logcolors.LogPoller, p.guildID)
}
