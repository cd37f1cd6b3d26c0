package cmd_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"dispatchsim/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCompositionRoot_RunsAndShutsDown(t *testing.T) {
	cfg := cmd.DefaultConfig()
	cfg.Seed = 7
	cfg.InitialPoolSize = 4
	cfg.TickInterval = 5 * time.Millisecond
	cfg.DispatcherCountMin = 2
	cfg.DispatcherCountMax = 3
	cfg.ChurnSchedule = "@every 1s"
	cfg.OrderSchedule = "@every 1s"
	cfg.DeliverySchedule = "@every 1s"
	cfg.HTTPPort = ""

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	app, err := cmd.NewCompositionRoot(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, app.Run(ctx))
}

func TestNewCompositionRoot_RejectsInvalidConfig(t *testing.T) {
	cfg := cmd.DefaultConfig()
	cfg.TickInterval = -time.Second

	_, err := cmd.NewCompositionRoot(t.Context(), cfg, zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestConfigCommand_PrintsYAML(t *testing.T) {
	root := cmd.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "--log-level", "debug"})

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "logLevel: debug")
	assert.Contains(t, out.String(), "tickInterval: 1s")
}
