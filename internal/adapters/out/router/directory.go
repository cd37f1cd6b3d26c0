// Package router adapts the router actor to the ports.DispatcherDirectory
// contract used by the use cases.
package router

import (
	"context"
	"fmt"
	"time"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/ports"
	"dispatchsim/internal/pkg/actor"
	"dispatchsim/internal/pkg/errs"
)

var _ ports.DispatcherDirectory = (*Directory)(nil)

// Directory resolves dispatchers by asking the router actor.
type Directory struct {
	router     *actor.PID
	askTimeout time.Duration
}

// NewDirectory wraps a running router actor.
//
// Returns errs.ErrValueIsRequired for a nil router and
// errs.ErrValueIsOutOfRange for a non-positive askTimeout.
func NewDirectory(router *actor.PID, askTimeout time.Duration) (*Directory, error) {
	if router == nil {
		return nil, errs.NewValueIsRequiredError("router")
	}
	if askTimeout <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("askTimeout", askTimeout, "1ns", "unbounded")
	}
	return &Directory{router: router, askTimeout: askTimeout}, nil
}

// AssignDispatcher asks the router for a dispatcher chosen at random.
func (d *Directory) AssignDispatcher(ctx context.Context) (*actor.PID, error) {
	pid, err := actor.AskAs[*actor.PID](ctx, d.router, actors.RequestAssignment{}, d.askTimeout)
	if err != nil {
		return nil, fmt.Errorf("request assignment: %w", err)
	}
	return pid, nil
}

// Dispatchers returns the router's fixed dispatcher set in creation order.
func (d *Directory) Dispatchers(ctx context.Context) ([]*actor.PID, error) {
	pids, err := actor.AskAs[[]*actor.PID](ctx, d.router, actors.ListDispatchers{}, d.askTimeout)
	if err != nil {
		return nil, fmt.Errorf("list dispatchers: %w", err)
	}
	return pids, nil
}
