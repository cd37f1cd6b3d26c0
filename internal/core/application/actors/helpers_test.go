package actors_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/pkg/actor"
	"dispatchsim/internal/pkg/rng"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

const askTimeout = time.Second

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder records every message it receives.
type recorder struct {
	mu       sync.Mutex
	received []any
}

func (p *recorder) PreStart(*actor.Context) error { return nil }

func (p *recorder) Receive(ctx *actor.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, ctx.Message())
}

func (p *recorder) PostStop(*actor.Context) error { return nil }

func (p *recorder) pickups() []actors.GoToPickUp {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []actors.GoToPickUp
	for _, m := range p.received {
		if g, ok := m.(actors.GoToPickUp); ok {
			out = append(out, g)
		}
	}
	return out
}

func (p *recorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.received)
}

func spawn(t *testing.T, name string, b actor.Behavior) *actor.PID {
	t.Helper()
	pid, err := actor.Spawn(context.Background(), name, b, actor.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pid.Stop(context.Background()) })
	return pid
}

func spawnRecorder(t *testing.T, name string) (*actor.PID, *recorder) {
	t.Helper()
	p := &recorder{}
	return spawn(t, name, p), p
}

func spawnDispatcher(t *testing.T, policy services.BacklogPolicy) *actor.PID {
	t.Helper()
	return spawn(t, "dispatcher", actors.NewDispatcher(policy, zaptest.NewLogger(t)))
}

func spawnRouter(t *testing.T, dispatchers int, seed uint64) *actor.PID {
	t.Helper()
	r, err := actors.NewRouter(actors.RouterConfig{
		DispatcherCount: dispatchers,
		Policy:          services.LIFO,
		Rand:            rng.New(seed),
		Logger:          zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return spawn(t, "router", r)
}

func spawnCourier(t *testing.T, name string, seed uint64) *actor.PID {
	t.Helper()
	c, err := actors.NewCourier(actors.CourierConfig{
		Rand:               rng.New(seed),
		Logger:             zaptest.NewLogger(t),
		AskTimeout:         askTimeout,
		InvitationAttempts: 3,
	})
	require.NoError(t, err)
	return spawn(t, name, c)
}

func newOrder(t *testing.T, complexity uint32, restaurant kernel.Location) order.DeliveryOrder {
	t.Helper()
	o, err := order.NewDeliveryOrder(kernel.NewUUID(), complexity, restaurant, 0)
	require.NoError(t, err)
	return o
}

func inspectDispatcher(t *testing.T, pid *actor.PID) actors.DispatcherSnapshot {
	t.Helper()
	s, err := actor.AskAs[actors.DispatcherSnapshot](t.Context(), pid, actors.InspectDispatcher{}, askTimeout)
	require.NoError(t, err)
	return s
}

func inspectCourier(t *testing.T, pid *actor.PID) actors.CourierStatus {
	t.Helper()
	s, err := actor.AskAs[actors.CourierStatus](t.Context(), pid, actors.InspectCourier{}, askTimeout)
	require.NoError(t, err)
	return s
}

// tickUntil tells ticks one by one until cond holds for the courier.
func tickUntil(t *testing.T, pid *actor.PID, maxTicks int, cond func(actors.CourierStatus) bool) actors.CourierStatus {
	t.Helper()
	for i := range maxTicks {
		s := inspectCourier(t, pid)
		if cond(s) {
			return s
		}
		require.NoError(t, pid.Tell(actors.Tick{Tick: uint64(i + 1)}))
	}
	s := inspectCourier(t, pid)
	require.True(t, cond(s), "condition not met after %d ticks: %+v", maxTicks, s)
	return s
}

func newSource() *rng.Source {
	return rng.New(99)
}
