package actors

import (
	"context"
	"time"

	"dispatchsim/internal/core/domain/model/courier"
	"dispatchsim/internal/pkg/actor"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/rng"

	"github.com/flowchartsman/retry"
	"go.uber.org/zap"
)

// Travel distance of every leg is drawn from [MinDistance, MaxDistance).
const (
	MinDistance = 10
	MaxDistance = 110
)

// CourierConfig configures a Courier.
type CourierConfig struct {
	Rand   *rng.Source
	Logger *zap.Logger
	// AskTimeout bounds each RequestAssignment ask.
	AskTimeout time.Duration
	// InvitationAttempts is how many asks one invitation round makes before
	// giving up until the next tick.
	InvitationAttempts int
}

// Courier is the actor shell around a courier.Courier. It finds a dispatcher
// through the router, travels on ticks and reports back after every leg.
type Courier struct {
	cfg    CourierConfig
	logger *zap.Logger
	state  *courier.Courier

	router     *actor.PID
	dispatcher *actor.PID
	inviting   bool
	relieving  bool
}

// NewCourier validates cfg and returns a courier behavior ready to be spawned.
// The courier starts at kernel.Unknown with no dispatcher; it joins a zone only
// after an Invitation.
//
// Parameters:
//   - cfg: Rand and a positive AskTimeout are required. InvitationAttempts below 1
//     is raised to 1, and a nil Logger becomes a no-op logger.
//
// Example:
//
//	c, err := actors.NewCourier(actors.CourierConfig{Rand: src, AskTimeout: time.Second})
//	if err != nil {
//	    return err
//	}
//	pid, err := actor.Spawn(ctx, "courier-1", c)
func NewCourier(cfg CourierConfig) (*Courier, error) {
	if cfg.Rand == nil {
		return nil, errs.NewValueIsRequiredError("rand")
	}
	if cfg.AskTimeout <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("askTimeout", cfg.AskTimeout, "1ns", "unbounded")
	}
	if cfg.InvitationAttempts < 1 {
		cfg.InvitationAttempts = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Courier{
		cfg:    cfg,
		logger: cfg.Logger.With(zap.String("component", "courier")),
		state:  courier.NewCourier(),
	}, nil
}

// PreStart names the courier's logger after its PID.
func (c *Courier) PreStart(ctx *actor.Context) error {
	c.logger = c.logger.With(zap.String("courier", ctx.Self().Name()))
	c.logger.Debug("courier spawned")
	return nil
}

// Receive handles the courier protocol. Legs are refused with a decline
// message to the dispatcher instead of an error, so the dispatcher can keep or
// requeue the order.
func (c *Courier) Receive(ctx *actor.Context) {
	switch msg := ctx.Message().(type) {
	case Invitation:
		c.logger.Debug("got an invitation")
		c.router = msg.Router
		c.invite(ctx)
	case assigned:
		c.onAssigned(ctx, msg)
	case actor.PipeFailure:
		c.inviting = false
		c.logger.Warn("invitation failed, retrying on next tick", zap.Error(msg.Err))
	case GoToPickUp:
		if err := c.state.GoToPickUp(msg.Order, c.distance()); err != nil {
			c.logger.Debug("pickup declined", zap.Error(err))
			if c.dispatcher != nil {
				_ = c.dispatcher.Tell(PickUpDeclined{Courier: ctx.Self(), Order: msg.Order})
			}
			return
		}
		c.logger.Debug("heading to pickup",
			zap.Stringer("restaurant", msg.Order.Restaurant()),
			zap.Uint32("distance", c.state.RemainingDistance()))
	case GoToDeliver:
		if err := c.state.GoToDeliver(msg.Location, msg.Amount, c.distance()); err != nil {
			c.logger.Warn("delivery declined", zap.Error(err))
			c.tellDispatcher(DeliveryDeclined{Courier: ctx.Self(), OrderID: msg.OrderID, Reason: err.Error()})
			return
		}
		c.tellDispatcher(DeliveryStarted{Courier: ctx.Self(), OrderID: msg.OrderID})
		c.logger.Debug("heading to deliver",
			zap.Stringer("destination", msg.Location),
			zap.Uint32("distance", c.state.RemainingDistance()))
	case Report:
		c.checkIn(ctx)
	case Relieve:
		if c.state.CanStop() {
			c.logger.Info("relieved")
			ctx.Stop()
			return
		}
		c.relieving = true
		c.logger.Info("relieve declined while carrying cargo", zap.Uint32("cargo", c.state.Cargo()))
	case Tick:
		c.onTick(ctx)
	case InspectCourier:
		ctx.Respond(c.status(ctx))
	default:
		ctx.Unhandled()
	}
}

// PostStop leaves the dispatcher's zone.
func (c *Courier) PostStop(ctx *actor.Context) error {
	if c.dispatcher != nil {
		_ = c.dispatcher.Tell(LeftZone{Courier: ctx.Self()})
	}
	c.logger.Debug("courier stopped", zap.Uint32("cargoCounter", c.state.CargoCounter()))
	return nil
}

// invite asks the router for a dispatcher off the mailbox goroutine.
func (c *Courier) invite(ctx *actor.Context) {
	if c.router == nil || c.dispatcher != nil || c.inviting {
		return
	}
	c.inviting = true

	router := c.router
	askTimeout := c.cfg.AskTimeout
	retrier := retry.NewRetrier(c.cfg.InvitationAttempts, askTimeout/10, askTimeout)

	ctx.PipeToSelf(func(taskCtx context.Context) (any, error) {
		var dispatcher *actor.PID
		err := retrier.RunContext(taskCtx, func(taskCtx context.Context) error {
			pid, err := actor.AskAs[*actor.PID](taskCtx, router, RequestAssignment{}, askTimeout)
			if err != nil {
				return err
			}
			dispatcher = pid
			return nil
		})
		if err != nil {
			return nil, err
		}
		return assigned{dispatcher: dispatcher}, nil
	})
}

func (c *Courier) onAssigned(ctx *actor.Context, msg assigned) {
	c.inviting = false
	if msg.dispatcher == nil {
		return
	}
	c.dispatcher = msg.dispatcher
	if err := c.dispatcher.Tell(EnteredZone{Courier: ctx.Self()}); err != nil {
		c.dispatcher = nil
		c.logger.Warn("dispatcher unreachable", zap.Error(err))
		return
	}
	c.logger.Info("assigned to dispatcher", zap.String("dispatcher", c.dispatcher.Name()))
	c.checkIn(ctx)
}

func (c *Courier) onTick(ctx *actor.Context) {
	if c.dispatcher == nil {
		c.invite(ctx)
	}

	arrival, arrived := c.state.Advance()
	if !arrived {
		return
	}
	c.logger.Debug("arrived",
		zap.Stringer("leg", arrival.Kind),
		zap.Stringer("location", arrival.Location),
		zap.Uint32("cargo", c.state.Cargo()))

	if c.relieving && c.state.CanStop() {
		c.logger.Info("relieved after finishing delivery")
		ctx.Stop()
		return
	}
	c.checkIn(ctx)
}

func (c *Courier) checkIn(ctx *actor.Context) {
	if c.dispatcher == nil {
		return
	}
	if err := c.dispatcher.Tell(CheckIn{Courier: ctx.Self(), Report: c.state.Report()}); err != nil {
		c.logger.Warn("dispatcher unreachable, looking for another", zap.Error(err))
		c.dispatcher = nil
	}
}

func (c *Courier) status(ctx *actor.Context) CourierStatus {
	s := CourierStatus{
		ID:            ctx.Self().ID(),
		Name:          ctx.Self().Name(),
		Relieving:     c.relieving,
		State:         c.state.State().String(),
		ReportDetails: c.state.Report(),
	}
	if c.dispatcher != nil {
		s.Dispatcher = c.dispatcher.Name()
		s.DispatcherPID = c.dispatcher
	}
	return s
}

func (c *Courier) distance() uint32 {
	return uint32(c.cfg.Rand.Range(MinDistance, MaxDistance)) //nolint:gosec // always in [10, 110)
}

func (c *Courier) tellDispatcher(msg any) {
	if c.dispatcher == nil {
		return
	}
	if err := c.dispatcher.Tell(msg); err != nil {
		c.logger.Debug("dispatcher unreachable", zap.Error(err))
	}
}
