package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Weights are the tunable constants of the scorer.
type Weights struct {
	University float64 `json:"university"`
	Industry   float64 `json:"industry"`
	Degree     float64 `json:"degree"`

	// Per-overlap weights. A zero cap disables capping.
	Skill        float64 `json:"skill"`
	Interest     float64 `json:"interest"`
	Mentoring    float64 `json:"mentoring"`
	SkillCap     float64 `json:"skill_cap"`
	InterestCap  float64 `json:"interest_cap"`
	MentoringCap float64 `json:"mentoring_cap"`

	Company             float64 `json:"company"`
	AvailabilityFull    float64 `json:"availability_full"`
	AvailabilityLimited float64 `json:"availability_limited"`
}

// CalibrationFile is the on-disk form of Weights.
type CalibrationFile struct {
	Version string  `json:"version"`
	Weights Weights `json:"weights"`
}

// DefaultWeights returns the production weights.
func DefaultWeights() Weights {
	return Weights{
		University: 200,
		Industry:   160,
		Degree:     100,

		Skill:        90,
		Interest:     70,
		Mentoring:    50,
		SkillCap:     450,
		InterestCap:  350,
		MentoringCap: 250,

		Company:             50,
		AvailabilityFull:    50,
		AvailabilityLimited: 25,
	}
}

// Validate rejects negative weights and a limited tier above the full one.
func (w Weights) Validate() error {
	vals := []struct {
		name string
		v    float64
	}{
		{"university", w.University}, {"industry", w.Industry}, {"degree", w.Degree},
		{"skill", w.Skill}, {"interest", w.Interest}, {"mentoring", w.Mentoring},
		{"skill_cap", w.SkillCap}, {"interest_cap", w.InterestCap}, {"mentoring_cap", w.MentoringCap},
		{"company", w.Company}, {"availability_full", w.AvailabilityFull},
		{"availability_limited", w.AvailabilityLimited},
	}
	for _, f := range vals {
		if f.v < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", f.name, f.v)
		}
	}
	if w.AvailabilityLimited > w.AvailabilityFull {
		return errors.New("availability_limited must not exceed availability_full")
	}
	return nil
}

// LoadWeights reads a calibration file. An empty path yields the defaults.
// On any error the defaults are returned together with the error so the
// caller can log and continue.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultWeights(), fmt.Errorf("read calibration %s: %w", path, err)
	}

	cfg := CalibrationFile{Weights: DefaultWeights()}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultWeights(), fmt.Errorf("parse calibration %s: %w", path, err)
	}
	if err := cfg.Weights.Validate(); err != nil {
		return DefaultWeights(), fmt.Errorf("calibration %s: %w", path, err)
	}
	return cfg.Weights, nil
}
