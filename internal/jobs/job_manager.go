package jobs

import (
	"fmt"
)

// Job is a background task with an explicit lifecycle.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager starts and stops a fixed set of jobs together.
type JobManager struct {
	jobs []Job
}

// NewJobManager groups jobs. They are started in the given order.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts the jobs in order. If one fails, the jobs already started
// are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start %s: %w", job.Name(), err)
		}
	}
	return nil
}

// StopAll stops the jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
