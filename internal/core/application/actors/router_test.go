package actors_test

import (
	"testing"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/pkg/actor"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	_, err := actors.NewRouter(actors.RouterConfig{DispatcherCount: 0, Rand: rng.New(1)})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = actors.NewRouter(actors.RouterConfig{DispatcherCount: 2})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRouter_ListDispatchers(t *testing.T) {
	router := spawnRouter(t, 5, 1)

	dispatchers, err := actor.AskAs[[]*actor.PID](t.Context(), router, actors.ListDispatchers{}, askTimeout)

	require.NoError(t, err)
	require.Len(t, dispatchers, 5)
	seen := map[string]bool{}
	for _, d := range dispatchers {
		assert.True(t, d.IsRunning())
		seen[d.ID()] = true
	}
	assert.Len(t, seen, 5)
}

func TestRouter_RequestAssignmentIsUniformOverFixedSet(t *testing.T) {
	const (
		dispatcherCount = 4
		trials          = 4000
	)
	router := spawnRouter(t, dispatcherCount, 42)
	dispatchers, err := actor.AskAs[[]*actor.PID](t.Context(), router, actors.ListDispatchers{}, askTimeout)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, d := range dispatchers {
		counts[d.ID()] = 0
	}

	for range trials {
		d, err := actor.AskAs[*actor.PID](t.Context(), router, actors.RequestAssignment{}, askTimeout)
		require.NoError(t, err)
		_, known := counts[d.ID()]
		require.True(t, known, "reply is not from the startup set")
		counts[d.ID()]++
	}

	expected := trials / dispatcherCount
	for id, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)*0.15, "dispatcher %s", id)
	}
}

func TestRouter_StopsDispatchers(t *testing.T) {
	router := spawnRouter(t, 3, 1)
	dispatchers, err := actor.AskAs[[]*actor.PID](t.Context(), router, actors.ListDispatchers{}, askTimeout)
	require.NoError(t, err)

	require.NoError(t, router.Stop(t.Context()))

	for _, d := range dispatchers {
		assert.False(t, d.IsRunning())
	}
}
