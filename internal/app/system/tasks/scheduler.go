// Package tasks runs the application's recurring background jobs on a cron
// scheduler. Jobs must be idempotent: the scheduler gives no exclusivity
// guarantee against the same work happening inline (e.g. the graduate
// promotion check also runs at login).
package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one recurring unit of work.
type Job struct {
	// Name identifies the job in logs.
	Name string
	// Spec is a standard 5-field cron expression (e.g. "@hourly", "*/15 * * * *").
	Spec string
	// Timeout bounds a single run. Zero means no per-run timeout.
	Timeout time.Duration
	// Run does the work. Errors are logged, never fatal.
	Run func(ctx context.Context) error
}

// Scheduler owns the cron instance and the registered jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  logger,
	}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() { s.runJob(job) })
	if err != nil {
		return err
	}
	s.log.Info("registered job", zap.String("job", job.Name), zap.String("spec", job.Spec))
	return nil
}

func (s *Scheduler) runJob(job Job) {
	ctx := context.Background()
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.log.Error("job failed",
			zap.String("job", job.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	s.log.Debug("job completed",
		zap.String("job", job.Name),
		zap.Duration("elapsed", time.Since(start)))
}

// Start begins firing jobs on their schedules. Safe to call once.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
	s.log.Info("task scheduler started")
}

// Stop halts scheduling and waits for in-flight jobs to finish or the
// context to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false

	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("task scheduler stop timed out with jobs still running")
	}
	s.log.Info("task scheduler stopped")
}
