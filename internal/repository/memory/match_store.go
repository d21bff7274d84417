// Package memory holds in-process implementations of the repositories,
// used by tests and by STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"hash/fnv"
	"reflect"
	"sort"
	"sync"
	"time"

	"go-matching-backend/internal/domain"
)

const lockStripes = 64

type matchKey struct {
	seekerID    string
	candidateID string
}

// indexEntry positions one record inside a per-seeker or per-candidate
// index. id is the other half of the key.
type indexEntry struct {
	score float64
	id    string
}

func entryLess(a, b indexEntry) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.id < b.id
}

// MatchStore keeps every record once and maintains two independent sorted
// indexes over it. Stored records are never mutated in place; writers swap
// in a fresh copy.
type MatchStore struct {
	// stripes serialize writers of the same key; distinct keys mostly land
	// on distinct stripes.
	stripes [lockStripes]sync.Mutex

	mu          sync.RWMutex
	records     map[matchKey]*domain.MatchRecord
	bySeeker    map[string][]indexEntry
	byCandidate map[string][]indexEntry

	now func() time.Time
}

func NewMatchStore() *MatchStore {
	return &MatchStore{
		records:     make(map[matchKey]*domain.MatchRecord),
		bySeeker:    make(map[string][]indexEntry),
		byCandidate: make(map[string][]indexEntry),
		now:         time.Now,
	}
}

// WithClock replaces the time source. Tests only.
func (s *MatchStore) WithClock(now func() time.Time) *MatchStore {
	s.now = now
	return s
}

func (s *MatchStore) stripe(k matchKey) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(k.seekerID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.candidateID))
	return &s.stripes[h.Sum32()%lockStripes]
}

func (s *MatchStore) Upsert(ctx context.Context, p domain.UpsertParams) (*domain.MatchRecord, domain.UpsertOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	k := matchKey{p.SeekerID, p.CandidateID}
	lock := s.stripe(k)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	prev := s.records[k]
	s.mu.RUnlock()

	next := &domain.MatchRecord{
		SeekerID:        p.SeekerID,
		CandidateID:     p.CandidateID,
		TotalScore:      p.Breakdown.Total(),
		Breakdown:       cloneBreakdown(p.Breakdown),
		CommonSkills:    cloneStrings(p.CommonSkills),
		CommonInterests: cloneStrings(p.CommonInterests),
		MatchingAreas:   cloneStrings(p.MatchingAreas),
	}

	now := s.now().UTC()
	outcome := domain.OutcomeCreated
	if prev != nil {
		if sameContent(prev, next) {
			return cloneRecord(prev), domain.OutcomeUnchanged, nil
		}
		outcome = domain.OutcomeUpdated
		next.CreatedAt = prev.CreatedAt
		next.ViewedAt = prev.ViewedAt
	} else {
		next.CreatedAt = now
	}
	next.UpdatedAt = now

	s.mu.Lock()
	s.records[k] = next
	if prev != nil {
		s.bySeeker[k.seekerID] = removeEntry(s.bySeeker[k.seekerID], indexEntry{prev.TotalScore, k.candidateID})
		s.byCandidate[k.candidateID] = removeEntry(s.byCandidate[k.candidateID], indexEntry{prev.TotalScore, k.seekerID})
	}
	s.bySeeker[k.seekerID] = insertEntry(s.bySeeker[k.seekerID], indexEntry{next.TotalScore, k.candidateID})
	s.byCandidate[k.candidateID] = insertEntry(s.byCandidate[k.candidateID], indexEntry{next.TotalScore, k.seekerID})
	s.mu.Unlock()

	return cloneRecord(next), outcome, nil
}

func (s *MatchStore) ListBySeeker(ctx context.Context, seekerID string, limit, offset int) ([]domain.MatchRecord, int64, error) {
	return s.list(ctx, limit, offset, func() []indexEntry { return s.bySeeker[seekerID] },
		func(id string) matchKey { return matchKey{seekerID, id} })
}

func (s *MatchStore) ListByCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.MatchRecord, int64, error) {
	return s.list(ctx, limit, offset, func() []indexEntry { return s.byCandidate[candidateID] },
		func(id string) matchKey { return matchKey{id, candidateID} })
}

func (s *MatchStore) list(ctx context.Context, limit, offset int, index func() []indexEntry, key func(string) matchKey) ([]domain.MatchRecord, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := index()
	total := int64(len(entries))
	out := make([]domain.MatchRecord, 0)
	if offset < 0 || offset >= len(entries) || limit <= 0 {
		return out, total, nil
	}
	end := offset + limit
	if end > len(entries) || end < offset {
		end = len(entries)
	}
	for _, e := range entries[offset:end] {
		out = append(out, *cloneRecord(s.records[key(e.id)]))
	}
	return out, total, nil
}

func (s *MatchStore) Get(ctx context.Context, seekerID, candidateID string) (*domain.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[matchKey{seekerID, candidateID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (s *MatchStore) MarkViewed(ctx context.Context, seekerID, candidateID string, at time.Time) (*domain.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := matchKey{seekerID, candidateID}
	lock := s.stripe(k)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[k]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.ViewedAt != nil {
		return cloneRecord(rec), nil
	}

	next := cloneRecord(rec)
	viewed := at.UTC()
	next.ViewedAt = &viewed
	s.records[k] = next
	return cloneRecord(next), nil
}

// Len returns the number of stored records.
func (s *MatchStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func insertEntry(entries []indexEntry, e indexEntry) []indexEntry {
	i := sort.Search(len(entries), func(i int) bool { return !entryLess(entries[i], e) })
	entries = append(entries, indexEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}

func removeEntry(entries []indexEntry, e indexEntry) []indexEntry {
	i := sort.Search(len(entries), func(i int) bool { return !entryLess(entries[i], e) })
	if i < len(entries) && entries[i] == e {
		return append(entries[:i], entries[i+1:]...)
	}
	return entries
}

func sameContent(a, b *domain.MatchRecord) bool {
	return a.TotalScore == b.TotalScore &&
		reflect.DeepEqual(a.Breakdown, b.Breakdown) &&
		reflect.DeepEqual(a.CommonSkills, b.CommonSkills) &&
		reflect.DeepEqual(a.CommonInterests, b.CommonInterests) &&
		reflect.DeepEqual(a.MatchingAreas, b.MatchingAreas)
}

func cloneRecord(r *domain.MatchRecord) *domain.MatchRecord {
	c := *r
	c.Breakdown = cloneBreakdown(r.Breakdown)
	c.CommonSkills = cloneStrings(r.CommonSkills)
	c.CommonInterests = cloneStrings(r.CommonInterests)
	c.MatchingAreas = cloneStrings(r.MatchingAreas)
	if r.ViewedAt != nil {
		v := *r.ViewedAt
		c.ViewedAt = &v
	}
	return &c
}

func cloneBreakdown(b domain.ScoreBreakdown) domain.ScoreBreakdown {
	if len(b.Extensions) == 0 {
		b.Extensions = nil
		return b
	}
	ext := make(map[string]float64, len(b.Extensions))
	for k, v := range b.Extensions {
		ext[k] = v
	}
	b.Extensions = ext
	return b
}

// cloneStrings never returns nil so records always serialize as [].
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
