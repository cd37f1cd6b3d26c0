package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apihttp "dispatchsim/internal/adapters/in/http"
	"dispatchsim/internal/adapters/out/router"
	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/application/usecases/queries"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/jobs"
	"dispatchsim/internal/pkg/actor"
	"dispatchsim/internal/pkg/rng"
	"dispatchsim/internal/pkg/worldclock"

	"github.com/labstack/echo/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default initial pool size is drawn from [minInitialPool, maxInitialPool).
const (
	minInitialPool = 2
	maxInitialPool = 12
)

// CompositionRoot owns every long-lived part of one simulation run.
type CompositionRoot struct {
	cfg    Config
	logger *zap.Logger
	rand   *rng.Source

	clock     *worldclock.Clock
	routerPID *actor.PID
	directory *router.Directory
	couriers  *pool.ActorPool

	jobManager *jobs.JobManager
	echo       *echo.Echo
}

// NewCompositionRoot starts the router with its dispatchers and the initial
// couriers. Jobs, the clock and the HTTP server start in Run.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *zap.Logger) (_ *CompositionRoot, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	policy, _ := services.ParseBacklogPolicy(cfg.BacklogPolicy)

	c := &CompositionRoot{cfg: cfg, logger: logger}
	if cfg.Seed == 0 {
		c.rand = rng.NewFromTime()
	} else {
		c.rand = rng.New(cfg.Seed)
	}
	logger.Info("simulation seeded", zap.Uint64("seed", c.rand.Seed()))

	if c.clock, err = worldclock.NewClock(cfg.TickInterval, logger); err != nil {
		return nil, err
	}

	r, err := actors.NewRouter(actors.RouterConfig{
		DispatcherCount: c.rand.Range(cfg.DispatcherCountMin, cfg.DispatcherCountMax),
		Policy:          policy,
		Rand:            c.rand.Derive("router"),
		Logger:          logger,
		StopTimeout:     cfg.StopTimeout,
	})
	if err != nil {
		return nil, err
	}
	if c.routerPID, err = actor.Spawn(ctx, "router", r,
		actor.WithLogger(logger), actor.WithStopTimeout(cfg.StopTimeout)); err != nil {
		return nil, fmt.Errorf("start router: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, c.routerPID.Stop(context.Background()))
		}
	}()

	if c.directory, err = router.NewDirectory(c.routerPID, cfg.AskTimeout); err != nil {
		return nil, err
	}

	if c.couriers, err = pool.New(pool.Config{
		Role:   "courier",
		Spawn:  c.spawnCourier,
		Leave:  func(pid *actor.PID) error { return pid.Tell(actors.Relieve{}) },
		Rand:   c.rand.Derive("pool"),
		Logger: logger,
	}); err != nil {
		return nil, err
	}

	initial := cfg.InitialPoolSize
	if initial == 0 {
		initial = c.rand.Range(minInitialPool, maxInitialPool)
	}
	if _, err = c.couriers.InjectDefaults(ctx, initial); err != nil {
		return nil, multierr.Append(fmt.Errorf("inject initial couriers: %w", err), c.couriers.StopAll(context.Background()))
	}
	logger.Info("couriers on shift", zap.Int("count", initial))

	c.jobManager = jobs.NewJobManager(
		jobs.NewCourierMovementJob(c.CreateMoveCouriersCommandHandler(), c.clock, logger),
		jobs.NewChurnJob(c.CreateSimulateFluctuationCommandHandler(), c.clock,
			cfg.JoinRate, cfg.DefectRate, cfg.ChurnSchedule, logger),
		jobs.NewCourierReportJob(c.CreateReportCouriersCommandHandler(), cfg.ReportSchedule, logger),
		jobs.NewOrderFeedJob(c.CreateCreateOrderCommandHandler(), c.rand.Derive("orders"), cfg.OrderSchedule, logger),
		jobs.NewDeliveryDeskJob(c.CreateConfirmDeliveriesCommandHandler(), cfg.DeliverySchedule, logger),
	)

	if cfg.HTTPPort != "" {
		doc, derr := apihttp.LoadOpenAPI(ctx)
		if derr != nil {
			err = multierr.Append(derr, c.couriers.StopAll(context.Background()))
			return nil, err
		}
		server := apihttp.NewServer(
			c.CreateInjectCouriersCommandHandler(),
			c.CreateRelieveCouriersCommandHandler(),
			c.CreateCreateOrderCommandHandler(),
			c.CreateGetAllCouriersQueryHandler(),
			c.CreateGetDispatchersQueryHandler(),
			c.clock,
			c.rand.Derive("http"),
			doc,
			logger,
		)
		c.echo = apihttp.NewEcho(server, logger)
	}

	return c, nil
}

func (c *CompositionRoot) spawnCourier(ctx context.Context, name string) (*actor.PID, error) {
	behavior, err := actors.NewCourier(actors.CourierConfig{
		Rand:               c.rand.Derive(name),
		Logger:             c.logger,
		AskTimeout:         c.cfg.AskTimeout,
		InvitationAttempts: c.cfg.InvitationAttempts,
	})
	if err != nil {
		return nil, err
	}
	pid, err := actor.Spawn(ctx, name, behavior,
		actor.WithLogger(c.logger), actor.WithStopTimeout(c.cfg.StopTimeout))
	if err != nil {
		return nil, err
	}
	if err := pid.Tell(actors.Invitation{Router: c.routerPID}); err != nil {
		return nil, multierr.Append(err, pid.Stop(ctx))
	}
	return pid, nil
}

// Run drives the simulation until ctx is done, then shuts it down.
func (c *CompositionRoot) Run(ctx context.Context) error {
	if err := c.jobManager.StartAll(); err != nil {
		return multierr.Append(err, c.Shutdown(context.Background()))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.clock.Run(gctx) })

	if c.echo != nil {
		addr := fmt.Sprintf("0.0.0.0:%s", c.cfg.HTTPPort)
		g.Go(func() error {
			c.logger.Info("http server listening", zap.String("addr", addr))
			if err := c.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), c.cfg.StopTimeout)
			defer cancel()
			return c.echo.Shutdown(shutdownCtx)
		})
	}

	runErr := g.Wait()
	return multierr.Append(runErr, c.Shutdown(context.Background()))
}

// Shutdown stops the jobs first so nothing talks to the actors while they
// are being stopped.
func (c *CompositionRoot) Shutdown(ctx context.Context) error {
	c.jobManager.StopAll()

	ctx, cancel := context.WithTimeout(ctx, 2*c.cfg.StopTimeout+time.Second)
	defer cancel()

	err := multierr.Combine(
		c.couriers.StopAll(ctx),
		c.routerPID.Stop(ctx),
	)
	c.logger.Info("simulation stopped",
		zap.Uint64("tick", c.clock.CurrentTick()),
		zap.Error(err))
	return err
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.directory, c.clock)
}

func (c *CompositionRoot) CreateSimulateFluctuationCommandHandler() commands.SimulateFluctuationCommandHandler {
	return commands.NewSimulateFluctuationCommandHandler(c.couriers)
}

func (c *CompositionRoot) CreateInjectCouriersCommandHandler() commands.InjectCouriersCommandHandler {
	return commands.NewInjectCouriersCommandHandler(c.couriers)
}

func (c *CompositionRoot) CreateRelieveCouriersCommandHandler() commands.RelieveCouriersCommandHandler {
	return commands.NewRelieveCouriersCommandHandler(c.couriers)
}

func (c *CompositionRoot) CreateMoveCouriersCommandHandler() commands.MoveCouriersCommandHandler {
	return commands.NewMoveCouriersCommandHandler(c.couriers)
}

func (c *CompositionRoot) CreateReportCouriersCommandHandler() commands.ReportCouriersCommandHandler {
	return commands.NewReportCouriersCommandHandler(c.couriers)
}

func (c *CompositionRoot) CreateConfirmDeliveriesCommandHandler() commands.ConfirmDeliveriesCommandHandler {
	return commands.NewConfirmDeliveriesCommandHandler(c.couriers, c.rand.Derive("deliveries"), c.cfg.AskTimeout)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.couriers, c.cfg.AskTimeout)
}

func (c *CompositionRoot) CreateGetDispatchersQueryHandler() queries.GetDispatchersQueryHandler {
	return queries.NewGetDispatchersQueryHandler(c.directory, c.cfg.AskTimeout)
}
