package domain_test

import (
	"testing"

	"go-matching-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestUpsertParamsValidate(t *testing.T) {
	b := domain.ScoreBreakdown{University: 200, Skills: 90, Availability: 50}

	ok := domain.UpsertParams{SeekerID: "s1", CandidateID: "c1", TotalScore: 340, Breakdown: b}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.TotalScore = 339
	assert.ErrorIs(t, bad.Validate(), domain.ErrInconsistentTotal)

	noKey := ok
	noKey.CandidateID = ""
	assert.Error(t, noKey.Validate())
}

func TestScoreBreakdownTotalIgnoresExtensions(t *testing.T) {
	b := domain.ScoreBreakdown{Degree: 100, Extensions: map[string]float64{"location/v1": 40}}
	assert.Equal(t, 100.0, b.Total())
}
