package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/matching"
	"go-matching-backend/internal/metrics"
	"go-matching-backend/pkg/apperror"
	"go-matching-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxPageSize       = 100
	DefaultUpsertConcurrency = 8
)

// MatchConfig tunes runs and queries. Zero values fall back to defaults;
// a zero RunTimeout means no deadline beyond the caller's.
type MatchConfig struct {
	RunTimeout        time.Duration
	UpsertConcurrency int
	MaxPageSize       int
}

type matchUsecase struct {
	profiles     domain.ProfileSource
	repo         domain.MatchRepository
	orchestrator *matching.Orchestrator
	sink         domain.NotificationSink
	metrics      *metrics.Metrics
	cfg          MatchConfig
	now          func() time.Time
}

// NewMatchUsecase wires the trigger and query operations. sink and m may be nil.
func NewMatchUsecase(
	profiles domain.ProfileSource,
	repo domain.MatchRepository,
	orchestrator *matching.Orchestrator,
	sink domain.NotificationSink,
	m *metrics.Metrics,
	cfg MatchConfig,
) domain.MatchUsecase {
	if cfg.UpsertConcurrency <= 0 {
		cfg.UpsertConcurrency = DefaultUpsertConcurrency
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = DefaultMaxPageSize
	}
	return &matchUsecase{
		profiles:     profiles,
		repo:         repo,
		orchestrator: orchestrator,
		sink:         sink,
		metrics:      m,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (u *matchUsecase) RunMatch(ctx context.Context, seekerID string) (*domain.RunResult, error) {
	if seekerID == "" {
		return nil, apperror.BadRequest("seeker_id is required")
	}
	if u.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.RunTimeout)
		defer cancel()
	}

	start := time.Now()
	runID := uuid.NewString()

	res, err := u.runMatch(ctx, runID, seekerID)
	u.metrics.ObserveRun(runStatus(err), time.Since(start).Seconds())
	if err != nil {
		logger.Log.Warnw("Match run failed", "run_id", runID, "seeker_id", seekerID, "error", err)
		return nil, err
	}

	logger.Log.Infow("Match run completed",
		"run_id", runID,
		"seeker_id", seekerID,
		"produced", len(res.Produced),
		"skipped", len(res.Skipped),
		"created", res.Created,
		"updated", res.Updated,
		"unchanged", res.Unchanged,
		"duration", time.Since(start),
	)
	return res, nil
}

func (u *matchUsecase) runMatch(ctx context.Context, runID, seekerID string) (*domain.RunResult, error) {
	seeker, err := u.profiles.GetSeeker(ctx, seekerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Seeker profile not found")
		}
		return nil, upstreamError(ctx, "Profile service unavailable", err)
	}

	candidates, err := u.profiles.ListCandidates(ctx)
	if err != nil {
		return nil, upstreamError(ctx, "Profile service unavailable", err)
	}

	res := &domain.RunResult{
		RunID:    runID,
		SeekerID: seekerID,
		Produced: []domain.ScoredCandidate{},
		Skipped:  []domain.SkippedCandidate{},
	}
	if len(candidates) == 0 {
		return res, nil
	}

	batch, err := u.orchestrator.RunBatch(ctx, seeker, candidates)
	if err != nil {
		return nil, upstreamError(ctx, "Scoring interrupted", err)
	}
	u.metrics.AddCandidates(len(batch.Produced), len(batch.Skipped))

	if err := u.persist(ctx, seekerID, batch, res); err != nil {
		return nil, err
	}
	return res, nil
}

type persistOutcome struct {
	outcome domain.UpsertOutcome
	err     error
}

// persist writes every produced result. Keys are distinct within a batch,
// so writes run concurrently; a failed write becomes a skip.
func (u *matchUsecase) persist(ctx context.Context, seekerID string, batch *matching.Batch, res *domain.RunResult) error {
	outcomes := make([]persistOutcome, len(batch.Produced))

	var g errgroup.Group
	g.SetLimit(u.cfg.UpsertConcurrency)

	for i := range batch.Produced {
		sc := &batch.Produced[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].err = err
				return nil
			}
			rec, outcome, err := u.repo.Upsert(ctx, domain.UpsertParams{
				SeekerID:        seekerID,
				CandidateID:     sc.CandidateID,
				TotalScore:      sc.TotalScore,
				Breakdown:       sc.Breakdown,
				CommonSkills:    sc.CommonSkills,
				CommonInterests: sc.CommonInterests,
				MatchingAreas:   sc.MatchingAreas,
			})
			if err != nil {
				u.metrics.IncUpsert("error")
				outcomes[i].err = err
				return nil
			}
			u.metrics.IncUpsert(outcome.String())
			outcomes[i].outcome = outcome
			u.notify(ctx, rec, outcome)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return upstreamError(ctx, "Storing matches interrupted", err)
	}

	produced := make([]domain.ScoredCandidate, 0, len(batch.Produced))
	skipped := append([]domain.SkippedCandidate{}, batch.Skipped...)
	for i, out := range outcomes {
		sc := batch.Produced[i]
		if out.err != nil {
			skipped = append(skipped, domain.SkippedCandidate{
				CandidateID: sc.CandidateID,
				Reason:      fmt.Sprintf("store failed: %v", out.err),
			})
			continue
		}
		produced = append(produced, sc)
		switch out.outcome {
		case domain.OutcomeCreated:
			res.Created++
		case domain.OutcomeUpdated:
			res.Updated++
		case domain.OutcomeUnchanged:
			res.Unchanged++
		}
	}
	sort.SliceStable(skipped, func(i, j int) bool { return skipped[i].CandidateID < skipped[j].CandidateID })

	res.Produced = produced
	res.Skipped = skipped
	return nil
}

// notify publishes one event per created or updated record. Sink failures
// are logged and never fail the run.
func (u *matchUsecase) notify(ctx context.Context, rec *domain.MatchRecord, outcome domain.UpsertOutcome) {
	if u.sink == nil || rec == nil {
		return
	}
	var eventType string
	switch outcome {
	case domain.OutcomeCreated:
		eventType = domain.EventMatchCreated
	case domain.OutcomeUpdated:
		eventType = domain.EventMatchUpdated
	default:
		return
	}

	err := u.sink.Publish(ctx, domain.MatchEvent{
		Type:        eventType,
		SeekerID:    rec.SeekerID,
		CandidateID: rec.CandidateID,
		TotalScore:  rec.TotalScore,
		At:          rec.UpdatedAt,
	})
	u.metrics.IncEvent(err == nil)
	if err != nil {
		logger.Log.Warnw("Failed to publish match event",
			"seeker_id", rec.SeekerID,
			"candidate_id", rec.CandidateID,
			"error", err,
		)
	}
}

func (u *matchUsecase) RunMatchBatch(ctx context.Context, seekerIDs []string) (*domain.BatchRunResult, error) {
	if len(seekerIDs) == 0 {
		return nil, apperror.BadRequest("seeker_ids must not be empty")
	}
	return u.runSeekers(ctx, seekerIDs), nil
}

// RunAll reruns matching for every known seeker.
func (u *matchUsecase) RunAll(ctx context.Context) (*domain.BatchRunResult, error) {
	ids, err := u.profiles.ListSeekerIDs(ctx)
	if err != nil {
		return nil, upstreamError(ctx, "Profile service unavailable", err)
	}
	return u.runSeekers(ctx, ids), nil
}

// runSeekers runs seekers one after another; duplicates run once.
func (u *matchUsecase) runSeekers(ctx context.Context, seekerIDs []string) *domain.BatchRunResult {
	out := &domain.BatchRunResult{
		Results: make([]domain.RunResult, 0, len(seekerIDs)),
		Failed:  make(map[string]string),
	}
	seen := make(map[string]struct{}, len(seekerIDs))

	for _, id := range seekerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if err := ctx.Err(); err != nil {
			out.Failed[id] = fmt.Sprintf("not run: %v", err)
			continue
		}
		res, err := u.RunMatch(ctx, id)
		if err != nil {
			out.Failed[id] = err.Error()
			continue
		}
		out.Results = append(out.Results, *res)
	}
	return out
}

func (u *matchUsecase) GetMatchesForSeeker(ctx context.Context, seekerID string, page, limit int) (*domain.Page, error) {
	if seekerID == "" {
		return nil, apperror.BadRequest("seeker id is required")
	}
	return u.paginate(page, limit, func(limit, offset int) ([]domain.MatchRecord, int64, error) {
		return u.repo.ListBySeeker(ctx, seekerID, limit, offset)
	})
}

func (u *matchUsecase) GetMatchesForCandidate(ctx context.Context, candidateID string, page, limit int) (*domain.Page, error) {
	if candidateID == "" {
		return nil, apperror.BadRequest("candidate id is required")
	}
	return u.paginate(page, limit, func(limit, offset int) ([]domain.MatchRecord, int64, error) {
		return u.repo.ListByCandidate(ctx, candidateID, limit, offset)
	})
}

type listFunc func(limit, offset int) ([]domain.MatchRecord, int64, error)

func (u *matchUsecase) paginate(page, limit int, list listFunc) (*domain.Page, error) {
	if page < 1 {
		return nil, apperror.BadRequest("page must be at least 1")
	}
	if limit < 1 {
		return nil, apperror.BadRequest("limit must be at least 1")
	}
	if limit > u.cfg.MaxPageSize {
		limit = u.cfg.MaxPageSize
	}
	if page-1 > math.MaxInt/limit {
		return nil, apperror.BadRequest("page is out of range")
	}
	offset := (page - 1) * limit

	records, total, err := list(limit, offset)
	if err != nil {
		return nil, apperror.Unavailable("Ranking store unavailable", err)
	}

	items := make([]domain.RankedMatch, len(records))
	for i, r := range records {
		items[i] = domain.RankedMatch{MatchRecord: r, Rank: offset + i + 1}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &domain.Page{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetMatchDetail is a pure read; use MarkMatchViewed to record a view.
func (u *matchUsecase) GetMatchDetail(ctx context.Context, seekerID, candidateID string) (*domain.MatchDetail, error) {
	rec, err := u.repo.Get(ctx, seekerID, candidateID)
	if err != nil {
		return nil, storeError(err)
	}
	// The explanation names the candidate's university and industry when the
	// profile is readable; otherwise it falls back to unnamed reasons.
	candidate, err := u.profiles.GetCandidate(ctx, candidateID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warnw("Candidate profile unavailable for explanation", "candidate_id", candidateID, "error", err)
		}
		candidate = nil
	}
	return &domain.MatchDetail{
		MatchRecord: *rec,
		Explanation: matching.Explain(rec.Breakdown, rec.CommonSkills, rec.CommonInterests, rec.MatchingAreas, candidate),
	}, nil
}

func (u *matchUsecase) MarkMatchViewed(ctx context.Context, seekerID, candidateID string) (*domain.MatchRecord, error) {
	rec, err := u.repo.MarkViewed(ctx, seekerID, candidateID, u.now().UTC())
	if err != nil {
		return nil, storeError(err)
	}
	return rec, nil
}

func storeError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Match not found")
	}
	return apperror.Unavailable("Ranking store unavailable", err)
}

// upstreamError maps a dependency failure onto the error taxonomy.
func upstreamError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperror.Timeout("Match run timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperror.Unavailable(msg, err)
}

func runStatus(err error) string {
	if err == nil {
		return metrics.StatusSuccess
	}
	switch apperror.CodeOf(err) {
	case http.StatusNotFound:
		return metrics.StatusNotFound
	case http.StatusServiceUnavailable:
		return metrics.StatusUnavailable
	case http.StatusGatewayTimeout:
		return metrics.StatusTimeout
	}
	return metrics.StatusFailure
}
