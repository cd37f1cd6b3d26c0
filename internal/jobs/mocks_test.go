package jobs_test

import (
	"context"
	"testing"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/pkg/actor"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

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
	pids, _ := m.Called().Get(0).([]*actor.PID)
	return pids
}

func (m *MockCourierPool) ForEachLive(fn func(pid *actor.PID)) {
	pids, _ := m.Called(fn).Get(0).([]*actor.PID)
	for _, pid := range pids {
		fn(pid)
	}
}

type MockClock struct{ mock.Mock }

func (m *MockClock) CurrentTick() uint64 {
	return m.Called().Get(0).(uint64)
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.log = append(*j.log, "start "+j.name)
	return nil
}

func (j *fakeJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}
