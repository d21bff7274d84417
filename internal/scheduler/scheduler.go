// Package scheduler periodically reruns matching for every seeker.
package scheduler

import (
	"context"
	"fmt"

	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Runner is the part of the match usecase the scheduler drives.
type Runner interface {
	RunAll(ctx context.Context) (*domain.BatchRunResult, error)
}

// Scheduler wraps robfig/cron. Overlapping ticks are skipped.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
}

// New creates a Scheduler for a cron spec such as "@every 6h" or "0 3 * * *".
func New(runner Runner, spec string) *Scheduler {
	l := zapCronLogger{}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(l), cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l))),
		runner: runner,
		spec:   spec,
	}
}

// Start registers the job and starts the cron loop. ctx bounds every run.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	logger.Log.Infow("Match scheduler started", "spec", s.spec)
	return nil
}

// Stop halts the loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Infow("Match scheduler stopped")
}

// RunOnce reruns matching for all seekers and logs the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) {
	logger.Log.Infow("Scheduled match cycle started")

	res, err := s.runner.RunAll(ctx)
	if err != nil {
		logger.Log.Errorw("Scheduled match cycle failed", "error", err)
		return
	}
	for id, reason := range res.Failed {
		logger.Log.Warnw("Scheduled match failed for seeker", "seeker_id", id, "reason", reason)
	}
	logger.Log.Infow("Scheduled match cycle complete",
		"seekers", len(res.Results),
		"failed", len(res.Failed),
	)
}

type zapCronLogger struct{}

func (zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.Debugw("cron: "+msg, keysAndValues...)
}

func (zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
