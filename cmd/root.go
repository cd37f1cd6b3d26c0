package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Execute runs the dispatchsim command line.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the dispatchsim command tree with the run and config
// subcommands.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dispatchsim",
		Short:         "Courier dispatch simulation built on actors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to a YAML configuration file")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCommand(), newConfigCommand())
	return root
}

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			duration, err := cmd.Flags().GetDuration("duration")
			if err != nil {
				return err
			}

			logger, err := NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			app, err := NewCompositionRoot(ctx, cfg, logger)
			if err != nil {
				return err
			}
			return app.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.Duration("duration", 0, "stop after this long (0 runs until SIGINT/SIGTERM)")
	flags.Uint64("seed", 0, "random seed (0 seeds from the clock)")
	flags.Int("initial-pool-size", 0, "couriers on shift at start (0 draws from [2,12))")
	flags.Float64("join-rate", 0, "courier joins per tick, as a fraction of the pool")
	flags.Float64("defect-rate", 0, "courier leaves per tick, as a fraction of the pool")
	flags.Duration("tick-interval", 0, "wall-clock length of one tick")
	flags.Int("dispatchers-min", 0, "lower bound (inclusive) of the dispatcher count")
	flags.Int("dispatchers-max", 0, "upper bound (exclusive) of the dispatcher count")
	flags.String("backlog-policy", "", "order backlog discipline: lifo or fifo")
	flags.Duration("ask-timeout", 0, "bound on every request/reply exchange")
	flags.String("http-port", "", "operator API port (empty string disables it)")

	return cmd
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func resolveConfig(cmd *cobra.Command) (Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NewLogger builds a console logger at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.DisableStacktrace = true
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	return zcfg.Build()
}
