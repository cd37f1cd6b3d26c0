package jobs_test

import (
	"errors"
	"testing"

	"dispatchsim/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobManager_StartAllAndStopAll(t *testing.T) {
	var log []string
	jm := jobs.NewJobManager(
		&fakeJob{name: "a", log: &log},
		&fakeJob{name: "b", log: &log},
	)

	require.NoError(t, jm.StartAll())
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestJobManager_StartAllRollsBackOnFailure(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	jm := jobs.NewJobManager(
		&fakeJob{name: "a", log: &log},
		&fakeJob{name: "b", log: &log},
		&fakeJob{name: "c", log: &log, startErr: boom},
	)

	err := jm.StartAll()

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "c")
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}
