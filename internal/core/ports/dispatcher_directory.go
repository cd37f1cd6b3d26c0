package ports

import (
	"context"

	"dispatchsim/internal/pkg/actor"
)

// DispatcherDirectory resolves dispatchers through the router.
type DispatcherDirectory interface {
	// AssignDispatcher picks one dispatcher uniformly at random.
	AssignDispatcher(ctx context.Context) (*actor.PID, error)

	// Dispatchers returns the fixed dispatcher set.
	Dispatchers(ctx context.Context) ([]*actor.PID, error)
}
