package matching

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"go-matching-backend/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Scorer is the pure scoring function the orchestrator fans out.
type Scorer interface {
	Score(seeker *domain.SeekerProfile, candidate *domain.CandidateProfile) (Result, error)
}

// Batch is the outcome of scoring one seeker against a pool.
type Batch struct {
	// Produced is ordered by total descending, then candidate id ascending.
	Produced []domain.ScoredCandidate
	// Skipped is ordered by candidate id.
	Skipped []domain.SkippedCandidate
}

// Orchestrator runs a Scorer over a candidate pool on a bounded pool of
// goroutines.
type Orchestrator struct {
	scorer  Scorer
	workers int
}

// NewOrchestrator returns an orchestrator with the given pool size.
// workers <= 0 means GOMAXPROCS.
func NewOrchestrator(scorer Scorer, workers int) *Orchestrator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Orchestrator{scorer: scorer, workers: workers}
}

type outcome struct {
	scored  *domain.ScoredCandidate
	skipped *domain.SkippedCandidate
}

// RunBatch scores every candidate. A candidate that fails to score is
// reported in Skipped and never aborts the batch; only ctx cancellation
// returns an error.
func (o *Orchestrator) RunBatch(ctx context.Context, seeker *domain.SeekerProfile, candidates []domain.CandidateProfile) (*Batch, error) {
	batch := &Batch{
		Produced: make([]domain.ScoredCandidate, 0, len(candidates)),
		Skipped:  make([]domain.SkippedCandidate, 0),
	}
	if len(candidates) == 0 {
		return batch, nil
	}

	// Each goroutine owns exactly one slot, so no lock is needed.
	outcomes := make([]outcome, len(candidates))
	seen := make(map[string]struct{}, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i := range candidates {
		c := &candidates[i]
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				outcomes[i].skipped = &domain.SkippedCandidate{CandidateID: c.ID, Reason: "duplicate candidate id"}
				continue
			}
			seen[c.ID] = struct{}{}
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = o.scoreOne(seeker, c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, out := range outcomes {
		switch {
		case out.scored != nil:
			batch.Produced = append(batch.Produced, *out.scored)
		case out.skipped != nil:
			batch.Skipped = append(batch.Skipped, *out.skipped)
		}
	}

	SortScored(batch.Produced)
	sort.SliceStable(batch.Skipped, func(i, j int) bool {
		return batch.Skipped[i].CandidateID < batch.Skipped[j].CandidateID
	})
	return batch, nil
}

func (o *Orchestrator) scoreOne(seeker *domain.SeekerProfile, c *domain.CandidateProfile) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{skipped: &domain.SkippedCandidate{
				CandidateID: c.ID,
				Reason:      fmt.Sprintf("scoring panicked: %v", r),
			}}
		}
	}()

	res, err := o.scorer.Score(seeker, c)
	if err != nil {
		return outcome{skipped: &domain.SkippedCandidate{CandidateID: c.ID, Reason: err.Error()}}
	}
	return outcome{scored: &domain.ScoredCandidate{
		CandidateID:     c.ID,
		CandidateName:   c.Name,
		TotalScore:      res.Total,
		Breakdown:       res.Breakdown,
		CommonSkills:    res.CommonSkills,
		CommonInterests: res.CommonInterests,
		MatchingAreas:   res.MatchingAreas,
		Explanation:     ExplainResult(res, c),
	}}
}

// SortScored orders by total descending, ties by candidate id ascending.
func SortScored(s []domain.ScoredCandidate) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].TotalScore != s[j].TotalScore {
			return s[i].TotalScore > s[j].TotalScore
		}
		return s[i].CandidateID < s[j].CandidateID
	})
}
