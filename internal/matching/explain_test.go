package matching_test

import (
	"testing"

	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/matching"

	"github.com/stretchr/testify/assert"
)

func TestExplain(t *testing.T) {
	b := domain.ScoreBreakdown{University: 200, Skills: 360, Availability: 50}
	c := &domain.CandidateProfile{University: "Stanford"}

	got := matching.Explain(b, []string{"a", "b", "c", "d", "e"}, nil, nil, c)
	assert.Equal(t, "Same university: Stanford | Shared skills: a, b, c +2 | Available for mentorship", got)
}

func TestExplain_NoFactors(t *testing.T) {
	assert.Equal(t, "General profile compatibility", matching.Explain(domain.ScoreBreakdown{}, nil, nil, nil, nil))
}
