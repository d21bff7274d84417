package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-matching-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const matchColumns = `
	seeker_id, candidate_id, total_score,
	university_score, industry_score, degree_score, skills_score,
	interests_score, mentoring_score, company_score, availability_score,
	extensions, common_skills, common_interests, matching_areas,
	viewed_at, created_at, updated_at`

type matchRepo struct {
	db  DBTX
	now func() time.Time
}

func NewMatchRepository(db DBTX) domain.MatchRepository {
	return &matchRepo{db: db, now: time.Now}
}

// Upsert relies on ON CONFLICT for per-key atomicity: concurrent writers of
// the same pair queue on the row lock, writers of other pairs do not block.
// updated_at only moves when a scored column actually changes.
func (r *matchRepo) Upsert(ctx context.Context, p domain.UpsertParams) (*domain.MatchRecord, domain.UpsertOutcome, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	ext, err := encodeExtensions(p.Breakdown.Extensions)
	if err != nil {
		return nil, 0, err
	}

	// timestamptz keeps microseconds; truncating lets us compare below.
	now := r.now().UTC().Truncate(time.Microsecond)
	b := p.Breakdown

	query := `
		INSERT INTO matches (
			seeker_id, candidate_id,
			university_score, industry_score, degree_score, skills_score,
			interests_score, mentoring_score, company_score, availability_score,
			extensions, common_skills, common_interests, matching_areas,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13, $14, $15, $15)
		ON CONFLICT (seeker_id, candidate_id) DO UPDATE SET
			university_score   = EXCLUDED.university_score,
			industry_score     = EXCLUDED.industry_score,
			degree_score       = EXCLUDED.degree_score,
			skills_score       = EXCLUDED.skills_score,
			interests_score    = EXCLUDED.interests_score,
			mentoring_score    = EXCLUDED.mentoring_score,
			company_score      = EXCLUDED.company_score,
			availability_score = EXCLUDED.availability_score,
			extensions         = EXCLUDED.extensions,
			common_skills      = EXCLUDED.common_skills,
			common_interests   = EXCLUDED.common_interests,
			matching_areas     = EXCLUDED.matching_areas,
			updated_at = CASE WHEN (
				matches.university_score, matches.industry_score, matches.degree_score,
				matches.skills_score, matches.interests_score, matches.mentoring_score,
				matches.company_score, matches.availability_score, matches.extensions,
				matches.common_skills, matches.common_interests, matches.matching_areas
			) IS DISTINCT FROM (
				EXCLUDED.university_score, EXCLUDED.industry_score, EXCLUDED.degree_score,
				EXCLUDED.skills_score, EXCLUDED.interests_score, EXCLUDED.mentoring_score,
				EXCLUDED.company_score, EXCLUDED.availability_score, EXCLUDED.extensions,
				EXCLUDED.common_skills, EXCLUDED.common_interests, EXCLUDED.matching_areas
			) THEN EXCLUDED.updated_at ELSE matches.updated_at END
		RETURNING ` + matchColumns + `, (xmax = 0) AS inserted`

	var inserted bool
	rec, err := scanMatch(r.db.QueryRow(ctx, query,
		p.SeekerID, p.CandidateID,
		b.University, b.Industry, b.Degree, b.Skills,
		b.Interests, b.Mentoring, b.Company, b.Availability,
		ext, pq.Array(nonNil(p.CommonSkills)), pq.Array(nonNil(p.CommonInterests)), pq.Array(nonNil(p.MatchingAreas)),
		now,
	), &inserted)
	if err != nil {
		return nil, 0, fmt.Errorf("upsert match %s/%s: %w", p.SeekerID, p.CandidateID, err)
	}

	switch {
	case inserted:
		return rec, domain.OutcomeCreated, nil
	case rec.UpdatedAt.Equal(now):
		return rec, domain.OutcomeUpdated, nil
	default:
		return rec, domain.OutcomeUnchanged, nil
	}
}

func (r *matchRepo) ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.MatchRecord, int64, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE seeker_id = $1
		ORDER BY total_score DESC, candidate_id ASC
		LIMIT $2 OFFSET $3`

	recs, err := r.queryMatches(ctx, query, seekerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches for seeker %s: %w", seekerID, err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE seeker_id = $1`, seekerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count matches for seeker %s: %w", seekerID, err)
	}
	return recs, total, nil
}

func (r *matchRepo) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.MatchRecord, int64, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE candidate_id = $1
		ORDER BY total_score DESC, seeker_id ASC
		LIMIT $2 OFFSET $3`

	recs, err := r.queryMatches(ctx, query, candidateID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list matches for candidate %s: %w", candidateID, err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE candidate_id = $1`, candidateID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count matches for candidate %s: %w", candidateID, err)
	}
	return recs, total, nil
}

func (r *matchRepo) Get(ctx context.Context, seekerID, candidateID string) (*domain.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE seeker_id = $1 AND candidate_id = $2`

	rec, err := scanMatch(r.db.QueryRow(ctx, query, seekerID, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get match %s/%s: %w", seekerID, candidateID, err)
	}
	return rec, nil
}

func (r *matchRepo) MarkViewed(ctx context.Context, seekerID, candidateID string, at time.Time) (*domain.MatchRecord, error) {
	query := `UPDATE matches SET viewed_at = COALESCE(viewed_at, $3)
		WHERE seeker_id = $1 AND candidate_id = $2
		RETURNING ` + matchColumns

	rec, err := scanMatch(r.db.QueryRow(ctx, query, seekerID, candidateID, at.UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("mark match %s/%s viewed: %w", seekerID, candidateID, err)
	}
	return rec, nil
}

func (r *matchRepo) queryMatches(ctx context.Context, query string, args ...any) ([]domain.MatchRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]domain.MatchRecord, 0)
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// scanMatch reads matchColumns followed by any extra destinations.
func scanMatch(row pgx.Row, extra ...any) (*domain.MatchRecord, error) {
	var (
		rec domain.MatchRecord
		ext []byte
	)
	b := &rec.Breakdown
	dest := []any{
		&rec.SeekerID, &rec.CandidateID, &rec.TotalScore,
		&b.University, &b.Industry, &b.Degree, &b.Skills,
		&b.Interests, &b.Mentoring, &b.Company, &b.Availability,
		&ext, pq.Array(&rec.CommonSkills), pq.Array(&rec.CommonInterests), pq.Array(&rec.MatchingAreas),
		&rec.ViewedAt, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if len(ext) > 0 {
		if err := json.Unmarshal(ext, &b.Extensions); err != nil {
			return nil, fmt.Errorf("decode extensions: %w", err)
		}
	}
	rec.CommonSkills = nonNil(rec.CommonSkills)
	rec.CommonInterests = nonNil(rec.CommonInterests)
	rec.MatchingAreas = nonNil(rec.MatchingAreas)
	return &rec, nil
}

func encodeExtensions(ext map[string]float64) (*string, error) {
	if len(ext) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(ext)
	if err != nil {
		return nil, fmt.Errorf("encode extensions: %w", err)
	}
	s := string(raw)
	return &s, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
