package matching_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubScorer scores by a fixed table and fails or panics on demand.
type stubScorer struct {
	scores map[string]float64
	fail   map[string]bool
	panics map[string]bool
}

func (s *stubScorer) Score(_ *domain.SeekerProfile, c *domain.CandidateProfile) (matching.Result, error) {
	if s.panics[c.ID] {
		panic("corrupt record")
	}
	if s.fail[c.ID] {
		return matching.Result{}, fmt.Errorf("%w: bad record", matching.ErrMalformedProfile)
	}
	b := domain.ScoreBreakdown{Skills: s.scores[c.ID]}
	return matching.Result{Total: b.Total(), Breakdown: b}, nil
}

func candidates(ids ...string) []domain.CandidateProfile {
	out := make([]domain.CandidateProfile, len(ids))
	for i, id := range ids {
		out[i] = domain.CandidateProfile{ID: id}
	}
	return out
}

func ids(s []domain.ScoredCandidate) []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.CandidateID
	}
	return out
}

func TestRunBatch_Empty(t *testing.T) {
	orch := matching.NewOrchestrator(matching.NewEngine(matching.DefaultWeights()), 4)

	batch, err := orch.RunBatch(context.Background(), baseSeeker(), nil)
	require.NoError(t, err)
	assert.NotNil(t, batch.Produced)
	assert.NotNil(t, batch.Skipped)
	assert.Empty(t, batch.Produced)
	assert.Empty(t, batch.Skipped)
}

func TestRunBatch_OrderIsDeterministic(t *testing.T) {
	scorer := &stubScorer{scores: map[string]float64{
		"a": 100, "b": 300, "c": 100, "d": 200, "e": 300, "f": 0,
	}}
	want := []string{"b", "e", "d", "a", "c", "f"}

	pool := candidates("a", "b", "c", "d", "e", "f")
	rng := rand.New(rand.NewSource(42))

	for _, workers := range []int{1, 2, 8} {
		for i := 0; i < 10; i++ {
			rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

			batch, err := matching.NewOrchestrator(scorer, workers).RunBatch(context.Background(), baseSeeker(), pool)
			require.NoError(t, err)
			assert.Equal(t, want, ids(batch.Produced), "workers=%d", workers)
		}
	}
}

func TestRunBatch_IsolatesFailures(t *testing.T) {
	scorer := &stubScorer{
		scores: map[string]float64{"a": 10, "b": 20, "d": 30},
		fail:   map[string]bool{"c": true},
		panics: map[string]bool{"e": true},
	}

	batch, err := matching.NewOrchestrator(scorer, 3).RunBatch(context.Background(), baseSeeker(), candidates("a", "b", "c", "d", "e"))
	require.NoError(t, err)

	assert.Equal(t, []string{"d", "b", "a"}, ids(batch.Produced))
	require.Len(t, batch.Skipped, 2)
	assert.Equal(t, "c", batch.Skipped[0].CandidateID)
	assert.Contains(t, batch.Skipped[0].Reason, "malformed profile")
	assert.Equal(t, "e", batch.Skipped[1].CandidateID)
	assert.Contains(t, batch.Skipped[1].Reason, "panicked")
}

func TestRunBatch_DuplicateCandidates(t *testing.T) {
	scorer := &stubScorer{scores: map[string]float64{"a": 1, "b": 2}}

	batch, err := matching.NewOrchestrator(scorer, 2).RunBatch(context.Background(), baseSeeker(), candidates("a", "b", "a"))
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, ids(batch.Produced))
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, "duplicate candidate id", batch.Skipped[0].Reason)
}

func TestRunBatch_RealEngineSkipsMalformed(t *testing.T) {
	pool := []domain.CandidateProfile{
		{ID: "ok", Availability: domain.AvailabilityAvailable},
		{ID: "", Availability: domain.AvailabilityAvailable},
		{ID: "weird", Availability: "Maybe"},
	}

	batch, err := matching.NewOrchestrator(newEngine(), 0).RunBatch(context.Background(), baseSeeker(), pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, ids(batch.Produced))
	assert.Len(t, batch.Skipped, 2)
	assert.Equal(t, "Available for mentorship", batch.Produced[0].Explanation)
}

func TestRunBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := matching.NewOrchestrator(newEngine(), 2).RunBatch(ctx, baseSeeker(), candidates("a", "b"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func BenchmarkRunBatch(b *testing.B) {
	pool := make([]domain.CandidateProfile, 5000)
	for i := range pool {
		pool[i] = domain.CandidateProfile{
			ID:             fmt.Sprintf("c%05d", i),
			University:     "MIT",
			Skills:         []string{"go", "python", fmt.Sprintf("skill-%d", i%50)},
			Interests:      []string{"ai", fmt.Sprintf("interest-%d", i%20)},
			MentoringAreas: []string{"mentorship"},
			Availability:   domain.AvailabilityAvailable,
		}
	}
	seeker := &domain.SeekerProfile{
		ID: "s1", University: "mit", Skills: []string{"go", "skill-7"},
		Interests: []string{"ai"}, LookingFor: []domain.Intent{domain.IntentMentorship},
	}
	orch := matching.NewOrchestrator(newEngine(), 8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := orch.RunBatch(context.Background(), seeker, pool); err != nil {
			b.Fatal(err)
		}
	}
}
