package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-matching-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// profileSource reads profiles owned by the profile service.
type profileSource struct {
	db DBTX
}

func NewProfileSource(db DBTX) domain.ProfileSource {
	return &profileSource{db: db}
}

func (s *profileSource) GetSeeker(ctx context.Context, id string) (*domain.SeekerProfile, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(university, ''), COALESCE(degree, ''),
		       COALESCE(company, ''), skills, interests, COALESCE(preferred_industry, ''),
		       COALESCE(location, ''), looking_for
		FROM seeker_profiles
		WHERE id = $1`

	var (
		p          domain.SeekerProfile
		lookingFor []string
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.University, &p.Degree,
		&p.Company, pq.Array(&p.Skills), pq.Array(&p.Interests), &p.PreferredIndustry,
		&p.Location, pq.Array(&lookingFor),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get seeker %s: %w", id, err)
	}

	p.LookingFor = make([]domain.Intent, 0, len(lookingFor))
	for _, l := range lookingFor {
		p.LookingFor = append(p.LookingFor, domain.Intent(l))
	}
	return &p, nil
}

const candidateColumns = `
	id, COALESCE(name, ''), COALESCE(university, ''), COALESCE(degree, ''),
	COALESCE(industry, ''), COALESCE(company, ''), skills, interests,
	mentoring_areas, hiring_stack, availability, can_hire, COALESCE(location, '')`

func scanCandidate(row pgx.Row) (domain.CandidateProfile, error) {
	var (
		c            domain.CandidateProfile
		availability string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.University, &c.Degree,
		&c.Industry, &c.Company, pq.Array(&c.Skills), pq.Array(&c.Interests),
		pq.Array(&c.MentoringAreas), pq.Array(&c.HiringStack), &availability, &c.CanHire, &c.Location,
	)
	c.Availability = domain.Availability(availability)
	return c, err
}

func (s *profileSource) ListCandidates(ctx context.Context) ([]domain.CandidateProfile, error) {
	query := `SELECT` + candidateColumns + `
		FROM candidate_profiles
		ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]domain.CandidateProfile, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

func (s *profileSource) GetCandidate(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	query := `SELECT` + candidateColumns + `
		FROM candidate_profiles
		WHERE id = $1`

	c, err := scanCandidate(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get candidate %s: %w", id, err)
	}
	return &c, nil
}

func (s *profileSource) ListSeekerIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM seeker_profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list seeker ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan seeker id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
