package player

import (
	"context"
	"errors"
	"testing"
)

func TestController_DispatchesAndRepolls(t *testing.T) {
	var dispatched []Action
	var repolls int

	c := NewController(
		func(ctx context.Context, action Action) error {
			dispatched = append(dispatched, action)
			return nil
		},
		func(ctx context.Context) { repolls++ },
		100, 100,
	)

	if err := c.Control(context.Background(), ActionPause); err != nil {
		t.Fatalf("Control failed: %v", err)
	}

	if len(dispatched) != 1 || dispatched[0] != ActionPause {
		t.Errorf("Expected pause dispatched, got %v", dispatched)
	}
	if repolls != 1 {
		t.Errorf("Expected exactly one re-poll, got %d", repolls)
	}
}

func TestController_RepollsEvenWhenDispatchFails(t *testing.T) {
	dispatchErr := errors.New("backend down")
	var repolls int

	c := NewController(
		func(ctx context.Context, action Action) error { return dispatchErr },
		func(ctx context.Context) { repolls++ },
		100, 100,
	)

	err := c.Control(context.Background(), ActionSkip)
	if !errors.Is(err, dispatchErr) {
		t.Errorf("Expected dispatch error returned, got %v", err)
	}
	if repolls != 1 {
		t.Errorf("Expected re-poll despite dispatch failure, got %d", repolls)
	}
}

func TestController_RejectsUnknownAction(t *testing.T) {
	var repolls int
	c := NewController(
		func(ctx context.Context, action Action) error {
			t.Error("Dispatch should not run for an unknown action")
			return nil
		},
		func(ctx context.Context) { repolls++ },
		100, 100,
	)

	if err := c.Control(context.Background(), Action("dance")); err == nil {
		t.Error("Expected error for unknown action")
	}
	if repolls != 0 {
		t.Errorf("Expected no re-poll for rejected action, got %d", repolls)
	}
}

func TestController_Throttles(t *testing.T) {
	var dispatched int
	c := NewController(
		func(ctx context.Context, action Action) error {
			dispatched++
			return nil
		},
		func(ctx context.Context) {},
		0.001, 1, // one action, then a very long refill
	)

	if err := c.Control(context.Background(), ActionSkip); err != nil {
		t.Fatalf("First control failed: %v", err)
	}
	if err := c.Control(context.Background(), ActionSkip); !errors.Is(err, ErrControlThrottled) {
		t.Errorf("Expected ErrControlThrottled, got %v", err)
	}
	if dispatched != 1 {
		t.Errorf("Expected a single dispatch, got %d", dispatched)
	}
}

func TestActionValid(t *testing.T) {
	for _, a := range []Action{ActionPause, ActionResume, ActionSkip, ActionStop} {
		if !a.Valid() {
			t.Errorf("Expected %q to be valid", a)
		}
	}
	if Action("seek").Valid() {
		t.Error("Expected unknown action to be invalid")
	}
}
