package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-matching-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSource(t *testing.T) {
	src := NewProfileSource()
	ctx := context.Background()

	_, err := src.GetSeeker(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	src.PutSeeker(domain.SeekerProfile{ID: "s2"})
	src.PutSeeker(domain.SeekerProfile{ID: "s1"})
	src.PutCandidate(domain.CandidateProfile{ID: "c2"})
	src.PutCandidate(domain.CandidateProfile{ID: "c1"})

	ids, err := src.ListSeekerIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, ids)

	candidates, err := src.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "c1", candidates[0].ID)

	c, err := src.GetCandidate(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "c2", c.ID)
	_, err = src.GetCandidate(ctx, "c9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("boom")
	src.SetErr(boom)
	_, err = src.ListCandidates(ctx)
	assert.ErrorIs(t, err, boom)
	src.SetErr(nil)
	_, err = src.GetSeeker(ctx, "s1")
	assert.NoError(t, err)
}

func TestProfileSource_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"seekers": [{"id": "s1", "university": "MIT", "looking_for": ["Mentorship"]}],
		"candidates": [{"id": "c1", "availability": "Limited", "can_hire": true}]
	}`), 0o600))

	src := NewProfileSource()
	require.NoError(t, src.LoadFile(path))

	s, err := src.GetSeeker(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Intent{domain.IntentMentorship}, s.LookingFor)

	candidates, err := src.ListCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, domain.AvailabilityLimited, candidates[0].Availability)
	assert.True(t, candidates[0].CanHire)

	assert.Error(t, src.LoadFile(filepath.Join(t.TempDir(), "missing.json")))
}
