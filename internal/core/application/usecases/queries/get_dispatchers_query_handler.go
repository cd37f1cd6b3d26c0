package queries

import (
	"context"
	"time"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/ports"
	"dispatchsim/internal/pkg/actor"

	"golang.org/x/sync/errgroup"
)

// GetDispatchersQueryHandler collects a snapshot of every dispatcher's
// registry and backlog.
type GetDispatchersQueryHandler struct {
	directory  ports.DispatcherDirectory
	askTimeout time.Duration
}

// NewGetDispatchersQueryHandler creates the handler. The directory lists the
// dispatchers and askTimeout bounds each InspectDispatcher ask.
func NewGetDispatchersQueryHandler(directory ports.DispatcherDirectory, askTimeout time.Duration) GetDispatchersQueryHandler {
	return GetDispatchersQueryHandler{directory: directory, askTimeout: askTimeout}
}

// Handle asks all dispatchers concurrently and returns their snapshots in
// router order.
func (h GetDispatchersQueryHandler) Handle(ctx context.Context, query GetDispatchersQuery) ([]actors.DispatcherSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	dispatchers, err := h.directory.Dispatchers(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]actors.DispatcherSnapshot, len(dispatchers))
	g, gctx := errgroup.WithContext(ctx)
	for i, pid := range dispatchers {
		g.Go(func() error {
			s, err := actor.AskAs[actors.DispatcherSnapshot](gctx, pid, actors.InspectDispatcher{}, h.askTimeout)
			if err != nil {
				return err
			}
			snapshots[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshots, nil
}
