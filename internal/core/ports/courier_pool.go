// Package ports defines the contracts between the use cases and the running
// simulation, so handlers can be tested against mocks.
package ports

import (
	"context"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/pkg/actor"
)

// CourierPool is the churning population of courier actors.
type CourierPool interface {
	// InjectDefaults spawns n couriers that immediately look for a dispatcher.
	InjectDefaults(ctx context.Context, n int) ([]*actor.PID, error)

	// RelieveLeaving asks n randomly chosen couriers to leave the shift.
	// Fails with pool.ErrInvalidChurnCount when n exceeds the pool size.
	RelieveLeaving(n int) ([]*actor.PID, error)

	// SimulateFluctuation applies rate-driven joins then leaves for the
	// elapsed ticks.
	SimulateFluctuation(ctx context.Context, joinRate, leaveRate float64, ticks uint64) (pool.Fluctuation, error)

	// Members returns a snapshot of the couriers on shift.
	Members() []*actor.PID

	// ForEachLive visits couriers on shift and relieved couriers still finishing a delivery.
	ForEachLive(fn func(pid *actor.PID))
}
