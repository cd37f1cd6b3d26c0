package actors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/pkg/actor"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/rng"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RouterConfig configures a Router.
type RouterConfig struct {
	// DispatcherCount is the size of the fixed dispatcher set; at least 1.
	DispatcherCount int
	Policy          services.BacklogPolicy
	Rand            *rng.Source
	Logger          *zap.Logger
	// StopTimeout bounds how long stopping each dispatcher may take.
	StopTimeout time.Duration
}

// Router starts a fixed set of dispatchers and connects couriers to one of
// them at random.
type Router struct {
	cfg         RouterConfig
	logger      *zap.Logger
	dispatchers []*actor.PID
}

// NewRouter validates cfg. The dispatchers themselves are spawned in PreStart,
// so a Router must be started through actor.Spawn before it can answer.
//
// Returns errs.ErrValueIsOutOfRange for a DispatcherCount below 1 and
// errs.ErrValueIsRequired without Rand.
func NewRouter(cfg RouterConfig) (*Router, error) {
	if cfg.DispatcherCount < 1 {
		return nil, errs.NewValueIsOutOfRangeError("dispatcherCount", cfg.DispatcherCount, 1, "unbounded")
	}
	if cfg.Rand == nil {
		return nil, errs.NewValueIsRequiredError("rand")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Router{
		cfg:    cfg,
		logger: cfg.Logger.With(zap.String("component", "router")),
	}, nil
}

// PreStart spawns the dispatchers. The set is never resized afterwards.
func (r *Router) PreStart(ctx *actor.Context) error {
	dispatchers := make([]*actor.PID, r.cfg.DispatcherCount)

	g, gctx := errgroup.WithContext(ctx.Context())
	for i := range dispatchers {
		g.Go(func() error {
			name := fmt.Sprintf("dispatcher-%d", i)
			pid, err := actor.Spawn(gctx, name, NewDispatcher(r.cfg.Policy, r.cfg.Logger),
				actor.WithLogger(r.cfg.Logger),
				actor.WithStopTimeout(r.cfg.StopTimeout),
			)
			if err != nil {
				return err
			}
			dispatchers[i] = pid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Join(err, stopAll(context.Background(), dispatchers))
	}

	r.dispatchers = dispatchers
	r.logger.Info("router started", zap.Int("dispatchers", len(dispatchers)))
	return nil
}

// Receive answers RequestAssignment with a uniformly chosen dispatcher and
// ListDispatchers with a copy of the fixed set.
func (r *Router) Receive(ctx *actor.Context) {
	switch ctx.Message().(type) {
	case RequestAssignment:
		d := r.dispatchers[r.cfg.Rand.IntN(len(r.dispatchers))]
		r.logger.Debug("assignment requested", zap.String("dispatcher", d.Name()))
		ctx.Respond(d)
	case ListDispatchers:
		out := make([]*actor.PID, len(r.dispatchers))
		copy(out, r.dispatchers)
		ctx.Respond(out)
	default:
		ctx.Unhandled()
	}
}

// PostStop stops every dispatcher.
func (r *Router) PostStop(*actor.Context) error {
	err := stopAll(context.Background(), r.dispatchers)
	r.logger.Info("router stopped")
	return err
}

func stopAll(ctx context.Context, pids []*actor.PID) error {
	var err error
	for _, pid := range pids {
		if pid != nil {
			err = multierr.Append(err, pid.Stop(ctx))
		}
	}
	return err
}
