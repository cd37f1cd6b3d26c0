package commands_test

import (
	"context"
	"sync"
	"testing"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/pkg/actor"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCourierPool struct{ mock.Mock }

func (m *MockCourierPool) InjectDefaults(ctx context.Context, n int) ([]*actor.PID, error) {
	args := m.Called(ctx, n)
	pids, _ := args.Get(0).([]*actor.PID)
	return pids, args.Error(1)
}

func (m *MockCourierPool) RelieveLeaving(n int) ([]*actor.PID, error) {
	args := m.Called(n)
	pids, _ := args.Get(0).([]*actor.PID)
	return pids, args.Error(1)
}

func (m *MockCourierPool) SimulateFluctuation(
	ctx context.Context,
	joinRate, leaveRate float64,
	ticks uint64,
) (pool.Fluctuation, error) {
	args := m.Called(ctx, joinRate, leaveRate, ticks)
	return args.Get(0).(pool.Fluctuation), args.Error(1)
}

func (m *MockCourierPool) Members() []*actor.PID {
	args := m.Called()
	pids, _ := args.Get(0).([]*actor.PID)
	return pids
}

func (m *MockCourierPool) ForEachLive(fn func(pid *actor.PID)) {
	args := m.Called(fn)
	pids, _ := args.Get(0).([]*actor.PID)
	for _, pid := range pids {
		fn(pid)
	}
}

type MockDispatcherDirectory struct{ mock.Mock }

func (m *MockDispatcherDirectory) AssignDispatcher(ctx context.Context) (*actor.PID, error) {
	args := m.Called(ctx)
	pid, _ := args.Get(0).(*actor.PID)
	return pid, args.Error(1)
}

func (m *MockDispatcherDirectory) Dispatchers(ctx context.Context) ([]*actor.PID, error) {
	args := m.Called(ctx)
	pids, _ := args.Get(0).([]*actor.PID)
	return pids, args.Error(1)
}

type MockClock struct{ mock.Mock }

func (m *MockClock) CurrentTick() uint64 {
	return m.Called().Get(0).(uint64)
}

// recorder stores what it receives and answers asks with reply.
type recorder struct {
	mu       sync.Mutex
	received []any
	reply    any
}

func (r *recorder) PreStart(*actor.Context) error { return nil }

func (r *recorder) Receive(ctx *actor.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, ctx.Message())
	if r.reply != nil {
		ctx.Respond(r.reply)
	}
}

func (r *recorder) PostStop(*actor.Context) error { return nil }

func (r *recorder) messages() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]any(nil), r.received...)
}

func spawnRecorder(t *testing.T, name string, reply any) (*actor.PID, *recorder) {
	t.Helper()
	r := &recorder{reply: reply}
	pid, err := actor.Spawn(context.Background(), name, r)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pid.Stop(context.Background()) })
	return pid, r
}
