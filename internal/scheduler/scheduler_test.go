package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	ran      chan struct{}
	err      error
}

func newCountingJob(name, schedule string) *countingJob {
	return &countingJob{name: name, schedule: schedule, ran: make(chan struct{}, 16)}
}

func (j *countingJob) GetName() string     { return j.name }
func (j *countingJob) GetSchedule() string { return j.schedule }

func (j *countingJob) Execute(ctx context.Context) error {
	j.runs.Add(1)
	j.ran <- struct{}{}
	return j.err
}

func TestScheduledJobRunsImmediately(t *testing.T) {
	s, err := New(time.UTC)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	job := newCountingJob("refresh", "*/5 * * * *")
	if err := s.Register(job); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	s.Start()
	defer s.Stop()

	select {
	case <-job.ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run at start")
	}
}

func TestRegisterRejectsBadCron(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := s.Register(newCountingJob("bad", "not a cron")); err == nil {
		t.Error("Register() with invalid cron should fail")
	}
	if names := s.JobNames(); len(names) != 0 {
		t.Errorf("JobNames() = %v, want none after failed registration", names)
	}
}

func TestRunByName(t *testing.T) {
	s, err := New(time.UTC)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	manual := newCountingJob("manual", "")
	manual.err = errors.New("boom")
	if err := s.Register(manual); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := s.RunByName(context.Background(), "manual"); err == nil || err.Error() != "boom" {
		t.Errorf("RunByName() err = %v, want boom", err)
	}
	if got := manual.runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1", got)
	}
	if err := s.RunByName(context.Background(), "missing"); err == nil {
		t.Error("RunByName() for unknown job should fail")
	}

	names := s.JobNames()
	if len(names) != 1 || names[0] != "manual" {
		t.Errorf("JobNames() = %v, want [manual]", names)
	}
}

type blockingJob struct {
	started   chan struct{}
	cancelled chan struct{}
}

func (j *blockingJob) GetName() string     { return "blocking" }
func (j *blockingJob) GetSchedule() string { return "*/5 * * * *" }

func (j *blockingJob) Execute(ctx context.Context) error {
	close(j.started)
	<-ctx.Done()
	close(j.cancelled)
	return ctx.Err()
}

func TestStopCancelsRunningJob(t *testing.T) {
	s, err := New(time.UTC)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	job := &blockingJob{started: make(chan struct{}), cancelled: make(chan struct{})}
	if err := s.Register(job); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	s.Start()

	select {
	case <-job.started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	stopped := make(chan error, 1)
	go func() { stopped <- s.Stop() }()

	select {
	case <-job.cancelled:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop() did not cancel the running job")
	}
	select {
	case err := <-stopped:
		if err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Stop() did not return")
	}
}
