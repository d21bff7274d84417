package matching

import (
	"errors"
	"fmt"
	"math"

	"go-matching-backend/internal/domain"
)

// ErrMalformedProfile is returned when a profile cannot be scored at all.
var ErrMalformedProfile = errors.New("malformed profile")

// ExtensionSameEmployer is reported when seeker and candidate share an
// employer. It is kept out of the canonical total.
const ExtensionSameEmployer = "same_employer/v1"

// intentAreas expands a seeker intent into the mentoring areas that serve it.
// Intents not listed here match an area of the same name.
var intentAreas = map[string][]string{
	"mentorship":      {"mentorship", "career guidance"},
	"guidance":        {"guidance", "career guidance"},
	"network":         {"network", "networking"},
	"job opportunity": {"job opportunity", "referrals", "hiring"},
	"job":             {"job", "job opportunity", "referrals", "hiring"},
}

// Result is the full output of scoring one pair.
type Result struct {
	Total           float64
	Breakdown       domain.ScoreBreakdown
	CommonSkills    []string
	CommonInterests []string
	MatchingAreas   []string
}

// Engine scores seeker/candidate pairs. It is safe for concurrent use.
type Engine struct {
	w Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{w: w}
}

// Weights returns a copy of the engine's weights.
func (e *Engine) Weights() Weights {
	return e.w
}

// Score computes the breakdown for one pair. Absent optional attributes
// contribute zero; only a missing id or an unknown availability value
// makes a profile unscorable.
func (e *Engine) Score(seeker *domain.SeekerProfile, candidate *domain.CandidateProfile) (Result, error) {
	if seeker == nil || seeker.ID == "" {
		return Result{}, fmt.Errorf("%w: seeker id is empty", ErrMalformedProfile)
	}
	if candidate == nil || candidate.ID == "" {
		return Result{}, fmt.Errorf("%w: candidate id is empty", ErrMalformedProfile)
	}
	availability, err := e.availabilityScore(candidate.Availability)
	if err != nil {
		return Result{}, err
	}

	var b domain.ScoreBreakdown

	if equalFold(seeker.University, candidate.University) {
		b.University = e.w.University
	}
	if equalFold(seeker.PreferredIndustry, candidate.Industry) {
		b.Industry = e.w.Industry
	}
	if equalFold(seeker.Degree, candidate.Degree) {
		b.Degree = e.w.Degree
	}

	commonSkills := Intersect(seeker.Skills, candidate.Skills)
	b.Skills = overlapScore(len(commonSkills), e.w.Skill, e.w.SkillCap)

	commonInterests := Intersect(seeker.Interests, candidate.Interests)
	b.Interests = overlapScore(len(commonInterests), e.w.Interest, e.w.InterestCap)

	areas := intersectSets(Needs(seeker.LookingFor), normalizedSet(candidate.MentoringAreas))
	b.Mentoring = overlapScore(len(areas), e.w.Mentoring, e.w.MentoringCap)

	if e.companyMatch(seeker, candidate) {
		b.Company = e.w.Company
	}
	b.Availability = availability

	if equalFold(seeker.Company, candidate.Company) {
		b.Extensions = map[string]float64{ExtensionSameEmployer: e.w.Company}
	}

	return Result{
		Total:           b.Total(),
		Breakdown:       b,
		CommonSkills:    commonSkills,
		CommonInterests: commonInterests,
		MatchingAreas:   areas,
	}, nil
}

// Needs expands the seeker's intents into normalized mentoring areas.
func Needs(lookingFor []domain.Intent) map[string]struct{} {
	needs := make(map[string]struct{})
	for _, intent := range lookingFor {
		n := Normalize(string(intent))
		if n == "" {
			continue
		}
		areas, ok := intentAreas[n]
		if !ok {
			needs[n] = struct{}{}
			continue
		}
		for _, a := range areas {
			needs[a] = struct{}{}
		}
	}
	return needs
}

// SeekingOpportunities reports whether the seeker is looking for a job.
func SeekingOpportunities(lookingFor []domain.Intent) bool {
	for _, intent := range lookingFor {
		switch Normalize(string(intent)) {
		case "job", "job opportunity":
			return true
		}
	}
	return false
}

func (e *Engine) companyMatch(seeker *domain.SeekerProfile, candidate *domain.CandidateProfile) bool {
	return candidate.CanHire && SeekingOpportunities(seeker.LookingFor)
}

func (e *Engine) availabilityScore(a domain.Availability) (float64, error) {
	switch Normalize(string(a)) {
	case "":
		return 0, nil
	case "available":
		return e.w.AvailabilityFull, nil
	case "limited":
		return e.w.AvailabilityLimited, nil
	case "not available", "notavailable", "not_available":
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unknown availability %q", ErrMalformedProfile, a)
	}
}

func overlapScore(n int, weight, limit float64) float64 {
	score := float64(n) * weight
	if limit > 0 {
		score = math.Min(score, limit)
	}
	return score
}
