package game

import "context"

// Handle identifies a persistent action so it can be removed later. Handles
// are never reused; one-time actions run with handle 0.
type Handle uint32

// Action is a unit of game logic run by the scheduler. Persistent actions run
// once per tick until removed; one-time actions run on the next tick only.
// A returned error is reported on the err channel and does not stop other
// actions.
type Action interface {
	Run(ctx context.Context, m *Mutator, h Handle) error
}

// ActionFunc adapts a plain function to an Action.
type ActionFunc func(ctx context.Context, m *Mutator, h Handle) error

func (f ActionFunc) Run(ctx context.Context, m *Mutator, h Handle) error {
	return f(ctx, m, h)
}
