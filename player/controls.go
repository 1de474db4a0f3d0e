package player

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"lyric-player-go/logcolors"
	"lyric-player-go/stats"
)

// Action is a transport command understood by the backend.
type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionSkip   Action = "skip"
	ActionStop   Action = "stop"
)

// Valid reports whether the action is one the backend understands.
func (a Action) Valid() bool {
	switch a {
	case ActionPause, ActionResume, ActionSkip, ActionStop:
		return true
	}
	return false
}

// ErrControlThrottled is returned when control actions arrive faster than
// the configured limit allows. Holding down the skip key should not flood
// the backend.
var ErrControlThrottled = errors.New("control action throttled")

// ControlFunc dispatches one action. The transport is injected by the
// hosting surface; an HTTP-backed default is available via Client.Control.
type ControlFunc func(ctx context.Context, action Action) error

// Controller glues control dispatch to the poller: every action, whether it
// succeeds or not, is followed by exactly one immediate re-poll to pull the
// authoritative new state rather than guessing it locally.
type Controller struct {
	dispatch ControlFunc
	repoll   func(ctx context.Context)
	limiter  *rate.Limiter
}

// NewController builds a controller. perSecond/burst bound how fast actions
// may be dispatched; a nil-safe zero disables nothing, so pass sane values.
func NewController(dispatch ControlFunc, repoll func(ctx context.Context), perSecond float64, burst int) *Controller {
	return &Controller{
		dispatch: dispatch,
		repoll:   repoll,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Control dispatches the action and triggers the follow-up poll. Dispatch
// errors are returned to the caller (they own retry policy), but the
// re-poll happens regardless so the display converges on backend truth.
func (c *Controller) Control(ctx context.Context, action Action) error {
	if !action.Valid() {
		return errors.New("unknown control action: " + string(action))
	}
	if !c.limiter.Allow() {
		stats.Get().ControlsThrottled.Add(1)
		return ErrControlThrottled
	}

	stats.Get().ControlActions.Add(1)
	err := c.dispatch(ctx, action)
	if err != nil {
		log.Warnf("%s %s failed: %v", logcolors.LogControl, action, err)
	}

	c.repoll(ctx)
	return err
}
