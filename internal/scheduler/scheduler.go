package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs registered jobs on their cron schedule. Every scheduled job
// also runs once as soon as the scheduler starts, and a run that is still
// going when the next tick fires makes that tick wait. Jobs without a
// schedule only run through RunByName.
type Scheduler struct {
	cron gocron.Scheduler
	jobs []Job

	// ctx is handed to scheduled runs and cancelled by Stop.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}

	cron, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{cron: cron, ctx: ctx, cancel: cancel}, nil
}

func (s *Scheduler) Register(job Job) error {
	schedule := job.GetSchedule()
	if schedule == "" {
		s.jobs = append(s.jobs, job)
		log.Printf("[SCHEDULER] %s registered as on-demand job", job.GetName())
		return nil
	}

	_, err := s.cron.NewJob(
		gocron.CronJob(schedule, false),
		gocron.NewTask(func() {
			run(s.ctx, job)
		}),
		gocron.WithName(job.GetName()),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.GetName(), err)
	}
	s.jobs = append(s.jobs, job)

	log.Printf("[SCHEDULER] %s scheduled with cron %q", job.GetName(), schedule)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[SCHEDULER] started with jobs %v", s.JobNames())
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() error {
	s.cancel()
	if err := s.cron.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	log.Println("[SCHEDULER] stopped")
	return nil
}

// RunByName executes a registered job immediately in the calling goroutine.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.GetName() == name {
			return job.Execute(ctx)
		}
	}
	return fmt.Errorf("job %q not registered", name)
}

func (s *Scheduler) JobNames() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.GetName()
	}
	return names
}

func run(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Execute(ctx); err != nil {
		log.Printf("[SCHEDULER] %s failed: %v", job.GetName(), err)
		return
	}
	log.Printf("[SCHEDULER] %s done in %s", job.GetName(), time.Since(start).Round(time.Millisecond))
}
