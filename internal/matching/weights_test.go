package matching_test

import (
	"os"
	"path/filepath"
	"testing"

	"go-matching-backend/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWeights_Empty(t *testing.T) {
	w, err := matching.LoadWeights("")
	require.NoError(t, err)
	assert.Equal(t, matching.DefaultWeights(), w)
}

func TestLoadWeights_PartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","weights":{"university":300}}`), 0o600))

	w, err := matching.LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, w.University)
	assert.Equal(t, matching.DefaultWeights().Industry, w.Industry)
}

func TestLoadWeights_InvalidFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"weights":{"skill":-1}}`), 0o600))

	w, err := matching.LoadWeights(path)
	assert.Error(t, err)
	assert.Equal(t, matching.DefaultWeights(), w)

	_, err = matching.LoadWeights(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestWeightsValidate_ReportsFirstNegativeInFieldOrder(t *testing.T) {
	w := matching.DefaultWeights()
	w.Company = -1
	w.Degree = -2
	w.SkillCap = -3

	for i := 0; i < 20; i++ {
		err := w.Validate()
		require.Error(t, err)
		assert.Equal(t, "weight degree must not be negative, got -2", err.Error())
	}

	w = matching.DefaultWeights()
	w.AvailabilityLimited = w.AvailabilityFull + 1
	assert.EqualError(t, w.Validate(), "availability_limited must not exceed availability_full")
}
