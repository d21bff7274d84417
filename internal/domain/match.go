package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrInconsistentTotal is returned by stores asked to persist a total
	// that is not the sum of its breakdown.
	ErrInconsistentTotal = errors.New("total score does not match breakdown")
)

// ScoreBreakdown holds one contribution per scoring factor. Total is always
// the sum of the named fields; Extensions never take part in it.
type ScoreBreakdown struct {
	University   float64 `json:"university"`
	Industry     float64 `json:"industry"`
	Degree       float64 `json:"degree"`
	Skills       float64 `json:"skills"`
	Interests    float64 `json:"interests"`
	Mentoring    float64 `json:"mentoring"`
	Company      float64 `json:"company"`
	Availability float64 `json:"availability"`

	// Extensions carries experimental factors keyed by "<name>/v<version>".
	Extensions map[string]float64 `json:"extensions,omitempty"`
}

// Total returns the canonical additive score.
func (b ScoreBreakdown) Total() float64 {
	return b.University + b.Industry + b.Degree + b.Skills +
		b.Interests + b.Mentoring + b.Company + b.Availability
}

// MatchRecord is the persisted score of one (seeker, candidate) pair.
type MatchRecord struct {
	SeekerID        string         `json:"seeker_id"`
	CandidateID     string         `json:"candidate_id"`
	TotalScore      float64        `json:"total_score"`
	Breakdown       ScoreBreakdown `json:"score_breakdown"`
	CommonSkills    []string       `json:"common_skills"`
	CommonInterests []string       `json:"common_interests"`
	MatchingAreas   []string       `json:"matching_areas"`
	ViewedAt        *time.Time     `json:"viewed_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// RankedMatch is a record with its query-time position.
type RankedMatch struct {
	MatchRecord
	Rank int `json:"rank"`
}

// UpsertParams carries one scoring result to the store.
type UpsertParams struct {
	SeekerID        string
	CandidateID     string
	TotalScore      float64
	Breakdown       ScoreBreakdown
	CommonSkills    []string
	CommonInterests []string
	MatchingAreas   []string
}

// Validate checks the key and that the total is the breakdown sum.
func (p UpsertParams) Validate() error {
	if p.SeekerID == "" || p.CandidateID == "" {
		return errors.New("seeker id and candidate id are required")
	}
	if math.Abs(p.TotalScore-p.Breakdown.Total()) > 1e-9 {
		return fmt.Errorf("%w: total %v, breakdown sums to %v", ErrInconsistentTotal, p.TotalScore, p.Breakdown.Total())
	}
	return nil
}

// UpsertOutcome tells what an upsert did to the stored record.
type UpsertOutcome int

const (
	OutcomeCreated UpsertOutcome = iota + 1
	OutcomeUpdated
	// OutcomeUnchanged means the stored record already held these values;
	// updated_at is left untouched.
	OutcomeUnchanged
)

func (o UpsertOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// ScoredCandidate is one successful result of a batch run.
type ScoredCandidate struct {
	CandidateID     string         `json:"candidate_id"`
	CandidateName   string         `json:"candidate_name,omitempty"`
	TotalScore      float64        `json:"total_score"`
	Breakdown       ScoreBreakdown `json:"score_breakdown"`
	CommonSkills    []string       `json:"common_skills"`
	CommonInterests []string       `json:"common_interests"`
	MatchingAreas   []string       `json:"matching_areas"`
	Explanation     string         `json:"explanation,omitempty"`
}

// SkippedCandidate records a non-fatal per-candidate failure.
type SkippedCandidate struct {
	CandidateID string `json:"candidate_id"`
	Reason      string `json:"reason"`
}

// RunResult is returned by a matching run.
type RunResult struct {
	RunID     string             `json:"run_id"`
	SeekerID  string             `json:"seeker_id"`
	Produced  []ScoredCandidate  `json:"produced"`
	Skipped   []SkippedCandidate `json:"skipped"`
	Created   int                `json:"created"`
	Updated   int                `json:"updated"`
	Unchanged int                `json:"unchanged"`
}

// BatchRunResult aggregates runs for several seekers.
type BatchRunResult struct {
	Results []RunResult       `json:"results"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// Page is the uniform paginated envelope.
type Page struct {
	Items      []RankedMatch `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

// MatchDetail is a single record with its explanation.
type MatchDetail struct {
	MatchRecord
	Explanation string `json:"explanation,omitempty"`
}

// MatchRepository is the ranking store. Writes to the same key are atomic.
type MatchRepository interface {
	// Upsert inserts or overwrites the record for the pair, last write wins.
	Upsert(ctx context.Context, p UpsertParams) (*MatchRecord, UpsertOutcome, error)
	ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]MatchRecord, int64, error)
	ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]MatchRecord, int64, error)
	Get(ctx context.Context, seekerID, candidateID string) (*MatchRecord, error)
	// MarkViewed sets viewed_at to at when it is still null.
	MarkViewed(ctx context.Context, seekerID, candidateID string, at time.Time) (*MatchRecord, error)
}

// MatchUsecase exposes the trigger and query operations.
type MatchUsecase interface {
	RunMatch(ctx context.Context, seekerID string) (*RunResult, error)
	RunMatchBatch(ctx context.Context, seekerIDs []string) (*BatchRunResult, error)
	RunAll(ctx context.Context) (*BatchRunResult, error)
	GetMatchesForSeeker(ctx context.Context, seekerID string, page, limit int) (*Page, error)
	GetMatchesForCandidate(ctx context.Context, candidateID string, page, limit int) (*Page, error)
	GetMatchDetail(ctx context.Context, seekerID, candidateID string) (*MatchDetail, error)
	MarkMatchViewed(ctx context.Context, seekerID, candidateID string) (*MatchRecord, error)
}

// MatchEvent is emitted once per created or updated record.
type MatchEvent struct {
	Type            string    `json:"type"`
	SeekerID        string    `json:"seeker_id"`
	CandidateID     string    `json:"candidate_id"`
	TotalScore      float64   `json:"total_score"`
	RecipientOnline bool      `json:"recipient_online"`
	At              time.Time `json:"at"`
}

const (
	EventMatchCreated = "match.created"
	EventMatchUpdated = "match.updated"
)

// NotificationSink delivers match events to real-time infrastructure.
type NotificationSink interface {
	Publish(ctx context.Context, event MatchEvent) error
}
