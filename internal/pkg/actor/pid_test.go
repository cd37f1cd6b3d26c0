package actor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatchsim/internal/pkg/actor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type increment struct{ by int }

type getCount struct{}

type stopAfter struct{}

type boom struct{}

type slowTask struct{ d time.Duration }

type taskDone struct{ value string }

type counter struct {
	mu        sync.Mutex
	count     int
	seen      []int
	piped     []any
	preErr    error
	postStops int
}

func (c *counter) PreStart(*actor.Context) error {
	return c.preErr
}

func (c *counter) Receive(ctx *actor.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg := ctx.Message().(type) {
	case increment:
		c.count += msg.by
		c.seen = append(c.seen, msg.by)
	case getCount:
		ctx.Respond(c.count)
	case stopAfter:
		ctx.Respond(true)
		ctx.Stop()
	case boom:
		panic("boom")
	case slowTask:
		ctx.PipeToSelf(func(taskCtx context.Context) (any, error) {
			select {
			case <-time.After(msg.d):
				return taskDone{value: "ok"}, nil
			case <-taskCtx.Done():
				return nil, taskCtx.Err()
			}
		})
	case taskDone, actor.PipeFailure:
		c.piped = append(c.piped, msg)
	default:
		ctx.Unhandled()
	}
}

func (c *counter) PostStop(*actor.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postStops++
	return nil
}

func (c *counter) snapshot() (int, []int, []any, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, append([]int(nil), c.seen...), append([]any(nil), c.piped...), c.postStops
}

func spawnCounter(t *testing.T) (*actor.PID, *counter) {
	t.Helper()
	b := &counter{}
	pid, err := actor.Spawn(t.Context(), "counter", b, actor.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pid.Stop(context.Background()) })
	return pid, b
}

func TestSpawn(t *testing.T) {
	t.Run("should start running actor with identity", func(t *testing.T) {
		pid, _ := spawnCounter(t)

		assert.True(t, pid.IsRunning())
		assert.Equal(t, "counter", pid.Name())
		assert.NotEmpty(t, pid.ID())
		assert.True(t, pid.Equals(pid))
	})

	t.Run("should fail when PreStart fails", func(t *testing.T) {
		b := &counter{preErr: errors.New("no")}

		pid, err := actor.Spawn(t.Context(), "broken", b)

		require.Error(t, err)
		assert.Nil(t, pid)
		assert.Contains(t, err.Error(), "no")
	})
}

func TestPID_TellPreservesOrder(t *testing.T) {
	pid, b := spawnCounter(t)

	for i := 1; i <= 100; i++ {
		require.NoError(t, pid.Tell(increment{by: i}))
	}
	got, err := actor.AskAs[int](t.Context(), pid, getCount{}, time.Second)
	require.NoError(t, err)

	_, seen, _, _ := b.snapshot()
	assert.Equal(t, 5050, got)
	require.Len(t, seen, 100)
	for i, v := range seen {
		assert.Equal(t, i+1, v)
	}
}

func TestPID_Ask(t *testing.T) {
	t.Run("should time out when actor never responds", func(t *testing.T) {
		pid, _ := spawnCounter(t)

		_, err := pid.Ask(t.Context(), increment{by: 1}, 20*time.Millisecond)

		require.ErrorIs(t, err, actor.ErrRequestTimeout)
	})

	t.Run("should report unexpected reply type", func(t *testing.T) {
		pid, _ := spawnCounter(t)

		_, err := actor.AskAs[string](t.Context(), pid, getCount{}, time.Second)

		require.ErrorIs(t, err, actor.ErrUnexpectedReply)
	})

	t.Run("should survive a panicking handler", func(t *testing.T) {
		pid, _ := spawnCounter(t)

		_, err := pid.Ask(t.Context(), boom{}, time.Second)
		require.Error(t, err)

		require.NoError(t, pid.Tell(increment{by: 2}))
		got, err := actor.AskAs[int](t.Context(), pid, getCount{}, time.Second)
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})
}

func TestPID_Stop(t *testing.T) {
	t.Run("should process queued messages then run PostStop once", func(t *testing.T) {
		pid, b := spawnCounter(t)
		for range 10 {
			require.NoError(t, pid.Tell(increment{by: 1}))
		}

		require.NoError(t, pid.Stop(t.Context()))

		count, _, _, postStops := b.snapshot()
		assert.Equal(t, 10, count)
		assert.Equal(t, 1, postStops)
		assert.False(t, pid.IsRunning())
	})

	t.Run("should reject messages after stop", func(t *testing.T) {
		pid, _ := spawnCounter(t)
		require.NoError(t, pid.Stop(t.Context()))

		require.ErrorIs(t, pid.Tell(increment{by: 1}), actor.ErrChannelClosed)
		_, err := pid.Ask(t.Context(), getCount{}, time.Second)
		require.ErrorIs(t, err, actor.ErrChannelClosed)
		require.NoError(t, pid.Stop(t.Context()))
	})

	t.Run("should stop itself from Receive", func(t *testing.T) {
		pid, b := spawnCounter(t)

		ok, err := actor.AskAs[bool](t.Context(), pid, stopAfter{}, time.Second)
		require.NoError(t, err)
		assert.True(t, ok)

		<-pid.Done()
		_, _, _, postStops := b.snapshot()
		assert.Equal(t, 1, postStops)
		assert.False(t, pid.IsRunning())
	})
}

func TestContext_PipeToSelf(t *testing.T) {
	t.Run("should deliver task result to mailbox", func(t *testing.T) {
		pid, b := spawnCounter(t)

		require.NoError(t, pid.Tell(slowTask{d: time.Millisecond}))

		assert.Eventually(t, func() bool {
			_, _, piped, _ := b.snapshot()
			return len(piped) == 1
		}, time.Second, 5*time.Millisecond)
		_, _, piped, _ := b.snapshot()
		assert.Equal(t, taskDone{value: "ok"}, piped[0])
	})

	t.Run("should cancel running task on stop", func(t *testing.T) {
		pid, b := spawnCounter(t)
		require.NoError(t, pid.Tell(slowTask{d: time.Hour}))
		_, err := actor.AskAs[int](t.Context(), pid, getCount{}, time.Second)
		require.NoError(t, err)

		require.NoError(t, pid.Stop(t.Context()))

		_, _, _, postStops := b.snapshot()
		assert.Equal(t, 1, postStops)
	})
}
