package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go-matching-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) RunAll(ctx context.Context) (*domain.BatchRunResult, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.BatchRunResult{Failed: map[string]string{"s9": "not found"}}, nil
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, "@every 1s")
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runner.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New(&countingRunner{}, "every now and then")
	assert.Error(t, s.Start(context.Background()))
}

func TestScheduler_RunOnceSurvivesErrors(t *testing.T) {
	runner := &countingRunner{err: errors.New("profile service down")}
	s := New(runner, "@every 1h")
	assert.NotPanics(t, func() { s.RunOnce(context.Background()) })
	assert.EqualValues(t, 1, runner.calls.Load())
}
