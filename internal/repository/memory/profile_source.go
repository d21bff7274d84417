package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"go-matching-backend/internal/domain"
)

// ProfileSource is an in-memory domain.ProfileSource.
type ProfileSource struct {
	mu         sync.RWMutex
	seekers    map[string]domain.SeekerProfile
	candidates map[string]domain.CandidateProfile
	err        error
}

func NewProfileSource() *ProfileSource {
	return &ProfileSource{
		seekers:    make(map[string]domain.SeekerProfile),
		candidates: make(map[string]domain.CandidateProfile),
	}
}

// SetErr makes every read fail with err until cleared with nil.
func (s *ProfileSource) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// PutSeeker adds or replaces a seeker profile.
func (s *ProfileSource) PutSeeker(p domain.SeekerProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekers[p.ID] = p
}

// PutCandidate adds or replaces a candidate profile.
func (s *ProfileSource) PutCandidate(p domain.CandidateProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[p.ID] = p
}

func (s *ProfileSource) GetSeeker(ctx context.Context, id string) (*domain.SeekerProfile, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.seekers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ListCandidates returns candidates ordered by id.
func (s *ProfileSource) ListCandidates(ctx context.Context) ([]domain.CandidateProfile, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CandidateProfile, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ProfileSource) GetCandidate(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *ProfileSource) ListSeekerIDs(ctx context.Context) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.seekers))
	for id := range s.seekers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *ProfileSource) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// profileFile is the fixture layout read by LoadFile.
type profileFile struct {
	Seekers    []domain.SeekerProfile    `json:"seekers"`
	Candidates []domain.CandidateProfile `json:"candidates"`
}

// LoadFile adds the profiles of a JSON fixture file.
func (s *ProfileSource) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles %s: %w", path, err)
	}
	var f profileFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse profiles %s: %w", path, err)
	}
	for _, p := range f.Seekers {
		s.PutSeeker(p)
	}
	for _, p := range f.Candidates {
		s.PutCandidate(p)
	}
	return nil
}
