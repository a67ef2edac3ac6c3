package scheduler

import "context"

// Job is a unit of background work run by the Scheduler.
type Job interface {
	// GetName identifies the job in logs and on-demand runs.
	GetName() string

	// GetSchedule returns a 5-field cron expression. An empty schedule
	// registers the job for on-demand runs only.
	GetSchedule() string

	Execute(ctx context.Context) error
}
