package actors

import (
	"errors"

	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/pkg/actor"

	"go.uber.org/zap"
)

// Dispatcher is the actor shell around a services.OrderDispatcher. It keeps
// track of couriers in its zone and hands out pickups on check-in.
type Dispatcher struct {
	state  *services.OrderDispatcher
	logger *zap.Logger
}

// NewDispatcher returns a dispatcher behavior whose backlog follows policy.
func NewDispatcher(policy services.BacklogPolicy, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		state:  services.NewOrderDispatcher(policy),
		logger: logger.With(zap.String("component", "dispatcher")),
	}
}

// PreStart names the dispatcher's logger after its PID.
func (d *Dispatcher) PreStart(ctx *actor.Context) error {
	d.logger = d.logger.With(zap.String("dispatcher", ctx.Self().Name()))
	d.logger.Debug("dispatcher started", zap.Stringer("policy", d.state.Policy()))
	return nil
}

// Receive handles the zone, backlog and delivery messages. An empty backlog on
// check-in is a no-op, never an error.
func (d *Dispatcher) Receive(ctx *actor.Context) {
	switch msg := ctx.Message().(type) {
	case EnteredZone:
		if d.state.Register(msg.Courier.ID()) {
			d.logger.Debug("courier entered zone", zap.String("courier", msg.Courier.Name()))
		}
	case LeftZone:
		requeued := d.state.Unregister(msg.Courier.ID())
		d.logger.Debug("courier left zone",
			zap.String("courier", msg.Courier.Name()),
			zap.Int("requeued", len(requeued)))
	case CheckIn:
		d.checkIn(msg)
	case EnqueueOrder:
		if err := d.state.Enqueue(msg.Order); err != nil {
			d.logger.Warn("order rejected", zap.Error(err))
			return
		}
		d.logger.Debug("order enqueued", zap.Stringer("order", msg.Order))
	case ConfirmDelivery:
		d.confirmDelivery(msg)
	case DeliveryStarted:
		d.deliveryStarted(msg)
	case DeliveryDeclined:
		d.logger.Warn("delivery declined, order stays in flight",
			zap.String("courier", msg.Courier.Name()),
			zap.Stringer("order", msg.OrderID),
			zap.String("reason", msg.Reason))
	case PickUpDeclined:
		if err := d.state.Decline(msg.Courier.ID(), msg.Order.ID()); err != nil {
			d.logger.Warn("declined pickup not found", zap.String("courier", msg.Courier.Name()), zap.Error(err))
		}
	case InspectDispatcher:
		ctx.Respond(DispatcherSnapshot{
			ID:       ctx.Self().ID(),
			Name:     ctx.Self().Name(),
			Snapshot: d.state.Snapshot(),
		})
	default:
		ctx.Unhandled()
	}
}

// PostStop implements actor.Behavior.
func (d *Dispatcher) PostStop(*actor.Context) error {
	d.logger.Debug("dispatcher stopped")
	return nil
}

func (d *Dispatcher) checkIn(msg CheckIn) {
	o, err := d.state.Dispatch(msg.Courier.ID(), msg.Report)
	switch {
	case errors.Is(err, services.ErrBacklogIsEmpty),
		errors.Is(err, services.ErrCourierIsBurdened),
		errors.Is(err, services.ErrCourierHasAssignment):
		return
	case err != nil:
		d.logger.Warn("dispatch failed", zap.String("courier", msg.Courier.Name()), zap.Error(err))
		return
	}

	if err := msg.Courier.Tell(GoToPickUp{Order: o}); err != nil {
		// the courier is gone; keep the order
		_ = d.state.Decline(msg.Courier.ID(), o.ID())
		d.logger.Debug("courier unreachable, order requeued", zap.String("courier", msg.Courier.Name()))
		return
	}
	d.logger.Info("pickup assigned", zap.String("courier", msg.Courier.Name()), zap.Stringer("order", o))
}

func (d *Dispatcher) confirmDelivery(msg ConfirmDelivery) {
	a, ok := d.state.InFlight(msg.Courier.ID())
	if !ok {
		d.logger.Debug("no order in flight to deliver", zap.String("courier", msg.Courier.Name()))
		return
	}

	err := msg.Courier.Tell(GoToDeliver{
		OrderID:  a.Order.ID(),
		Location: msg.Destination,
		Amount:   a.Order.Complexity(),
	})
	if err != nil {
		d.logger.Warn("courier unreachable for delivery", zap.String("courier", msg.Courier.Name()), zap.Error(err))
		return
	}
	d.logger.Debug("delivery requested",
		zap.String("courier", msg.Courier.Name()),
		zap.Stringer("destination", msg.Destination))
}

// deliveryStarted completes the in-flight order once the courier is on its
// way. A reply for an order that is no longer in flight is ignored.
func (d *Dispatcher) deliveryStarted(msg DeliveryStarted) {
	a, ok := d.state.InFlight(msg.Courier.ID())
	if !ok || !a.Order.ID().IsEqual(msg.OrderID) {
		d.logger.Debug("stale delivery start",
			zap.String("courier", msg.Courier.Name()),
			zap.Stringer("order", msg.OrderID))
		return
	}
	if _, err := d.state.Complete(msg.Courier.ID()); err != nil {
		d.logger.Warn("complete failed", zap.Error(err))
		return
	}
	d.logger.Info("delivery confirmed",
		zap.String("courier", msg.Courier.Name()),
		zap.Stringer("order", msg.OrderID))
}
