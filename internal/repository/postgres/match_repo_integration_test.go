//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/repository/postgres"
	"go-matching-backend/migrations"
	"go-matching-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresConnection(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool, migrations.FS))
	return pool
}

func params(seeker, candidate string, skills float64) domain.UpsertParams {
	b := domain.ScoreBreakdown{University: 200, Skills: skills, Availability: 50}
	return domain.UpsertParams{
		SeekerID:     seeker,
		CandidateID:  candidate,
		TotalScore:   b.Total(),
		Breakdown:    b,
		CommonSkills: []string{"go"},
	}
}

func TestMatchRepository_UpsertOutcomes(t *testing.T) {
	pool := setupDB(t)
	repo := postgres.NewMatchRepository(pool)
	ctx := context.Background()

	seeker := "it-" + uuid.NewString()
	t.Cleanup(func() { _, _ = pool.Exec(ctx, `DELETE FROM matches WHERE seeker_id = $1`, seeker) })

	rec, outcome, err := repo.Upsert(ctx, params(seeker, "c1", 90))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCreated, outcome)
	assert.InDelta(t, 340, rec.TotalScore, 1e-9)

	again, outcome, err := repo.Upsert(ctx, params(seeker, "c1", 90))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUnchanged, outcome)
	assert.True(t, rec.UpdatedAt.Equal(again.UpdatedAt))

	time.Sleep(2 * time.Millisecond)
	changed, outcome, err := repo.Upsert(ctx, params(seeker, "c1", 180))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeUpdated, outcome)
	assert.InDelta(t, 430, changed.TotalScore, 1e-9)
	assert.True(t, changed.CreatedAt.Equal(rec.CreatedAt))
}

func TestMatchRepository_RejectsInconsistentTotal(t *testing.T) {
	pool := setupDB(t)
	repo := postgres.NewMatchRepository(pool)

	p := params("it-"+uuid.NewString(), "c1", 90)
	p.TotalScore = 1
	_, _, err := repo.Upsert(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrInconsistentTotal)
}

func TestMatchRepository_ConcurrentSameKey(t *testing.T) {
	pool := setupDB(t)
	repo := postgres.NewMatchRepository(pool)
	ctx := context.Background()

	seeker := "it-" + uuid.NewString()
	t.Cleanup(func() { _, _ = pool.Exec(ctx, `DELETE FROM matches WHERE seeker_id = $1`, seeker) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := repo.Upsert(ctx, params(seeker, "c1", float64(i*10)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rec, err := repo.Get(ctx, seeker, "c1")
	require.NoError(t, err)
	assert.InDelta(t, rec.Breakdown.Total(), rec.TotalScore, 1e-9)

	_, total, err := repo.ListBySeeker(ctx, seeker, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestMatchRepository_ListOrderAndPaging(t *testing.T) {
	pool := setupDB(t)
	repo := postgres.NewMatchRepository(pool)
	ctx := context.Background()

	seeker := "it-" + uuid.NewString()
	t.Cleanup(func() { _, _ = pool.Exec(ctx, `DELETE FROM matches WHERE seeker_id = $1`, seeker) })

	for i := 0; i < 12; i++ {
		// pairs share a score so the id tie-break is exercised
		_, _, err := repo.Upsert(ctx, params(seeker, fmt.Sprintf("c%02d", i), float64(i/2*10)))
		require.NoError(t, err)
	}

	var seen []string
	for offset := 0; offset < 12; offset += 5 {
		page, total, err := repo.ListBySeeker(ctx, seeker, 5, offset)
		require.NoError(t, err)
		assert.EqualValues(t, 12, total)
		for _, r := range page {
			seen = append(seen, r.CandidateID)
		}
	}
	require.Len(t, seen, 12)
	assert.Equal(t, []string{"c10", "c11", "c08", "c09"}, seen[:4])

	byCandidate, total, err := repo.ListByCandidate(ctx, "c03", 10, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(1))
	assert.NotEmpty(t, byCandidate)
}

func TestMatchRepository_MarkViewed(t *testing.T) {
	pool := setupDB(t)
	repo := postgres.NewMatchRepository(pool)
	ctx := context.Background()

	seeker := "it-" + uuid.NewString()
	t.Cleanup(func() { _, _ = pool.Exec(ctx, `DELETE FROM matches WHERE seeker_id = $1`, seeker) })

	_, _, err := repo.Upsert(ctx, params(seeker, "c1", 90))
	require.NoError(t, err)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec, err := repo.MarkViewed(ctx, seeker, "c1", first)
	require.NoError(t, err)
	require.NotNil(t, rec.ViewedAt)
	assert.True(t, rec.ViewedAt.Equal(first))

	rec, err = repo.MarkViewed(ctx, seeker, "c1", first.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, rec.ViewedAt.Equal(first))

	_, err = repo.MarkViewed(ctx, seeker, "missing", first)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Get(ctx, seeker, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileSource_ReadsProfiles(t *testing.T) {
	pool := setupDB(t)
	src := postgres.NewProfileSource(pool)
	ctx := context.Background()

	id := "it-" + uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO seeker_profiles (id, university, skills, looking_for) VALUES ($1, 'MIT', '{go}', '{Mentorship}')`, id)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = pool.Exec(ctx, `DELETE FROM seeker_profiles WHERE id = $1`, id) })

	s, err := src.GetSeeker(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "MIT", s.University)
	assert.Equal(t, []string{"go"}, s.Skills)
	assert.Equal(t, []domain.Intent{domain.IntentMentorship}, s.LookingFor)

	_, err = src.GetSeeker(ctx, "it-missing-"+uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ids, err := src.ListSeekerIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, id)

	cid := "it-" + uuid.NewString()
	_, err = pool.Exec(ctx, `INSERT INTO candidate_profiles (id, name, university, skills, availability, can_hire) VALUES ($1, 'Ada', 'MIT', '{go}', 'Limited', true)`, cid)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = pool.Exec(ctx, `DELETE FROM candidate_profiles WHERE id = $1`, cid) })

	c, err := src.GetCandidate(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, domain.AvailabilityLimited, c.Availability)
	assert.True(t, c.CanHire)
	assert.Equal(t, []string{"go"}, c.Skills)

	_, err = src.GetCandidate(ctx, "it-missing-"+uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
