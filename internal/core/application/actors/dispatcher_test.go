package actors_test

import (
	"testing"
	"time"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/domain/model/courier"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/pkg/actor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_Zone(t *testing.T) {
	d := spawnDispatcher(t, services.LIFO)
	c, _ := spawnRecorder(t, "courier")

	require.NoError(t, d.Tell(actors.EnteredZone{Courier: c}))
	require.NoError(t, d.Tell(actors.EnteredZone{Courier: c}))
	assert.Equal(t, 1, inspectDispatcher(t, d).RegisteredCouriers)

	require.NoError(t, d.Tell(actors.LeftZone{Courier: c}))
	require.NoError(t, d.Tell(actors.LeftZone{Courier: c}))
	assert.Equal(t, 0, inspectDispatcher(t, d).RegisteredCouriers)
}

func TestDispatcher_CheckIn(t *testing.T) {
	t.Run("unburdened courier and non-empty backlog gets exactly one pickup", func(t *testing.T) {
		// Arrange
		d := spawnDispatcher(t, services.LIFO)
		c, p := spawnRecorder(t, "courier")
		require.NoError(t, d.Tell(actors.EnqueueOrder{Order: newOrder(t, 1, kernel.A)}))
		latest := newOrder(t, 2, kernel.C)
		require.NoError(t, d.Tell(actors.EnqueueOrder{Order: latest}))

		// Act
		require.NoError(t, d.Tell(actors.CheckIn{Courier: c, Report: courier.ReportDetails{}}))

		// Assert
		snapshot := inspectDispatcher(t, d)
		assert.Equal(t, 1, snapshot.Backlog)
		assert.Equal(t, 1, snapshot.InFlight)
		require.Eventually(t, func() bool { return len(p.pickups()) == 1 }, time.Second, 5*time.Millisecond)
		assert.True(t, p.pickups()[0].Order.IsEqual(latest))
	})

	t.Run("empty backlog sends nothing", func(t *testing.T) {
		d := spawnDispatcher(t, services.LIFO)
		c, p := spawnRecorder(t, "courier")

		require.NoError(t, d.Tell(actors.CheckIn{Courier: c, Report: courier.ReportDetails{}}))

		assert.Equal(t, 0, inspectDispatcher(t, d).Backlog)
		assert.Never(t, func() bool { return p.count() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run("burdened courier gets nothing and backlog is unchanged", func(t *testing.T) {
		d := spawnDispatcher(t, services.LIFO)
		c, p := spawnRecorder(t, "courier")
		require.NoError(t, d.Tell(actors.EnqueueOrder{Order: newOrder(t, 1, kernel.A)}))

		require.NoError(t, d.Tell(actors.CheckIn{Courier: c, Report: courier.ReportDetails{Cargo: 4}}))

		assert.Equal(t, 1, inspectDispatcher(t, d).Backlog)
		assert.Never(t, func() bool { return p.count() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run("order is requeued when the courier has stopped", func(t *testing.T) {
		d := spawnDispatcher(t, services.LIFO)
		c, _ := spawnRecorder(t, "courier")
		require.NoError(t, c.Stop(t.Context()))
		require.NoError(t, d.Tell(actors.EnqueueOrder{Order: newOrder(t, 1, kernel.A)}))

		require.NoError(t, d.Tell(actors.CheckIn{Courier: c, Report: courier.ReportDetails{}}))

		snapshot := inspectDispatcher(t, d)
		assert.Equal(t, 1, snapshot.Backlog)
		assert.Equal(t, 0, snapshot.InFlight)
	})
}

func TestDispatcher_TwoOrdersThreeCouriers(t *testing.T) {
	// Arrange
	d := spawnDispatcher(t, services.LIFO)
	require.NoError(t, d.Tell(actors.EnqueueOrder{Order: newOrder(t, 1, kernel.A)}))
	require.NoError(t, d.Tell(actors.EnqueueOrder{Order: newOrder(t, 2, kernel.B)}))

	recorders := make([]*recorder, 3)
	for i := range recorders {
		pid, p := spawnRecorder(t, "courier")
		recorders[i] = p

		// Act
		require.NoError(t, d.Tell(actors.CheckIn{Courier: pid, Report: courier.ReportDetails{}}))
	}

	// Assert
	assert.Equal(t, 0, inspectDispatcher(t, d).Backlog)
	require.Eventually(t, func() bool {
		return len(recorders[0].pickups())+len(recorders[1].pickups()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, recorders[0].pickups(), 1)
	assert.Len(t, recorders[1].pickups(), 1)
	assert.Empty(t, recorders[2].pickups())
}

func TestDispatcher_ConfirmDelivery(t *testing.T) {
	setup := func(t *testing.T) (d, c *actor.PID, p *recorder, o order.DeliveryOrder) {
		t.Helper()
		d = spawnDispatcher(t, services.LIFO)
		c, p = spawnRecorder(t, "courier")
		o = newOrder(t, 3, kernel.A)
		require.NoError(t, d.Tell(actors.EnqueueOrder{Order: o}))
		require.NoError(t, d.Tell(actors.CheckIn{Courier: c, Report: courier.ReportDetails{}}))
		require.NoError(t, d.Tell(actors.ConfirmDelivery{Courier: c, Destination: kernel.G}))
		require.Eventually(t, func() bool { return p.count() == 2 }, time.Second, 5*time.Millisecond)
		return d, c, p, o
	}

	t.Run("order stays in flight until the courier starts the leg", func(t *testing.T) {
		d, c, p, o := setup(t)

		snapshot := inspectDispatcher(t, d)
		assert.Equal(t, 1, snapshot.InFlight)
		assert.Zero(t, snapshot.Completed)
		p.mu.Lock()
		assert.Equal(t, actors.GoToDeliver{OrderID: o.ID(), Location: kernel.G, Amount: 3}, p.received[1])
		p.mu.Unlock()

		require.NoError(t, d.Tell(actors.DeliveryStarted{Courier: c, OrderID: o.ID()}))

		snapshot = inspectDispatcher(t, d)
		assert.Equal(t, 0, snapshot.InFlight)
		assert.Equal(t, uint64(1), snapshot.Completed)
	})

	t.Run("declined delivery keeps the assignment", func(t *testing.T) {
		d, c, _, o := setup(t)

		require.NoError(t, d.Tell(actors.DeliveryDeclined{Courier: c, OrderID: o.ID(), Reason: "courier is not idle"}))

		snapshot := inspectDispatcher(t, d)
		assert.Equal(t, 1, snapshot.InFlight)
		assert.Zero(t, snapshot.Completed)
	})

	t.Run("start for another order is ignored", func(t *testing.T) {
		d, c, _, _ := setup(t)

		require.NoError(t, d.Tell(actors.DeliveryStarted{Courier: c, OrderID: kernel.NewUUID()}))

		snapshot := inspectDispatcher(t, d)
		assert.Equal(t, 1, snapshot.InFlight)
		assert.Zero(t, snapshot.Completed)
	})
}

func TestDispatcher_PickUpDeclined(t *testing.T) {
	d := spawnDispatcher(t, services.FIFO)
	c, p := spawnRecorder(t, "courier")
	require.NoError(t, d.Tell(actors.EnqueueOrder{Order: newOrder(t, 3, kernel.A)}))
	require.NoError(t, d.Tell(actors.CheckIn{Courier: c, Report: courier.ReportDetails{}}))
	require.Eventually(t, func() bool { return len(p.pickups()) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, d.Tell(actors.PickUpDeclined{Courier: c, Order: p.pickups()[0].Order}))

	snapshot := inspectDispatcher(t, d)
	assert.Equal(t, 1, snapshot.Backlog)
	assert.Equal(t, 0, snapshot.InFlight)
}
