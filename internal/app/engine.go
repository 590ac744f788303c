// Package engine provides the core service that turns store snapshots into
// rankings, streaks, replays and behavioral classifications.
//
// Every operation is synchronous and stateless between invocations: it
// fetches an explicit snapshot, computes over it with the pure domain
// packages, and returns plain structures. Operations for different scopes
// can run fully in parallel; nothing here is shared mutable state.
package engine

import (
	"context"
	"time"

	"github.com/okian/prode/internal/adapters/repository"
	"github.com/okian/prode/internal/domain/aggregate"
	"github.com/okian/prode/internal/domain/classify"
	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/rank"
	"github.com/okian/prode/internal/domain/replay"
	"github.com/okian/prode/internal/domain/resolve"
	"github.com/okian/prode/internal/domain/scoring"
	"github.com/okian/prode/internal/domain/streak"
	"github.com/okian/prode/pkg/logger"
	"github.com/okian/prode/pkg/metrics"
)

// Engine implements the scoring and ranking operations over a Store.
type Engine struct {
	store  repository.Store
	scorer *scoring.Scorer
	ranker *rank.Ranker

	pointsPerHit   int
	worstAvgError  float64
	worstMissLimit int

	logger logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithStore sets the snapshot store.
func WithStore(store repository.Store) Option {
	return func(e *Engine) {
		if store != nil {
			e.store = store
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPointsPerHit overrides the points per scoring component.
func WithPointsPerHit(points int) Option {
	return func(e *Engine) {
		if points > 0 {
			e.pointsPerHit = points
		}
	}
}

// WithWorstAvgError overrides the comparator penalty for users without
// counted matches.
func WithWorstAvgError(v float64) Option {
	return func(e *Engine) {
		if v > 0 {
			e.worstAvgError = v
		}
	}
}

// WithWorstMissLimit caps the worst-misses listing.
func WithWorstMissLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.worstMissLimit = limit
		}
	}
}

// New constructs an Engine with default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		pointsPerHit:   3,
		worstMissLimit: classify.DefaultWorstMissLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}
	e.scorer = scoring.New(scoring.WithPointsPerHit(e.pointsPerHit))
	rankOpts := []rank.Option{}
	if e.worstAvgError > 0 {
		rankOpts = append(rankOpts, rank.WithWorstAvgError(e.worstAvgError))
	}
	e.ranker = rank.New(rankOpts...)
	return e
}

// snapshot is one consistent read of everything a scope computation needs.
type snapshot struct {
	users     []model.User
	matches   []model.Match // finished only, kickoff ascending
	effective map[resolve.Key]model.Revision
	counts    map[resolve.Key]int
}

func (e *Engine) snapshot(ctx context.Context, scope model.Scope) (snapshot, error) {
	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return snapshot{}, err
	}
	matches, err := e.store.ListFinishedMatches(ctx, scope)
	if err != nil {
		return snapshot{}, err
	}
	revs, err := e.store.ListRevisions(ctx, scope)
	if err != nil {
		return snapshot{}, err
	}
	metrics.UpdateSnapshotScale(len(users), len(matches), len(revs))
	return snapshot{
		users:     users,
		matches:   matches,
		effective: resolve.Effective(revs),
		counts:    resolve.Count(revs),
	}, nil
}

// instrument wraps an operation with metrics and debug logging.
func (e *Engine) instrument(ctx context.Context, kind string, op func() error) error {
	start := time.Now()
	err := op()
	durationMs := float64(time.Since(start).Milliseconds())
	metrics.RecordComputation(kind)
	metrics.RecordComputationDuration(kind, durationMs)
	if err != nil {
		metrics.RecordComputationError(kind)
		e.logger.Error(ctx, "computation failed", logger.String("kind", kind), logger.Error(err))
		return err
	}
	e.logger.Debug(ctx, "computation done", logger.String("kind", kind), logger.Float64("duration_ms", durationMs))
	return nil
}

func recordWarnings(warnings []model.Warning) {
	for _, w := range warnings {
		metrics.RecordWarning(string(w.Kind))
	}
}

// ComputeRanking returns the full ordered leaderboard for the scope, along
// with any flagged records. An empty scope yields an empty ranking of all
// users with zero totals, not an error.
func (e *Engine) ComputeRanking(ctx context.Context, scope model.Scope) ([]rank.Row, []model.Warning, error) {
	var rows []rank.Row
	var warnings []model.Warning
	err := e.instrument(ctx, "ranking", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		res, err := aggregate.Fold(e.scorer, snap.matches, snap.effective)
		if err != nil {
			return err
		}
		warnings = res.Warnings
		rows = e.ranker.Order(snap.users, res.Totals)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	recordWarnings(warnings)
	return rows, warnings, nil
}

// ComputeCurrentStreaks returns, per user, the run of consecutive scoring
// matches ending at the most recent finished match in scope.
func (e *Engine) ComputeCurrentStreaks(ctx context.Context, scope model.Scope) ([]streak.Row, error) {
	return e.computeStreaks(ctx, "streak_current", scope, streak.Current)
}

// ComputeRecordStreaks returns, per user, the longest scoring run anywhere
// in the scope's chronology.
func (e *Engine) ComputeRecordStreaks(ctx context.Context, scope model.Scope) ([]streak.Row, error) {
	return e.computeStreaks(ctx, "streak_record", scope, streak.Record)
}

func (e *Engine) computeStreaks(ctx context.Context, kind string, scope model.Scope, measure func([]bool) int) ([]streak.Row, error) {
	var rows []streak.Row
	err := e.instrument(ctx, kind, func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		outcomes := streak.Outcomes(e.scorer, snap.users, snap.matches, snap.effective)
		lengths := make(map[model.UserID]int, len(outcomes))
		for uid, flags := range outcomes {
			lengths[uid] = measure(flags)
		}
		rows = streak.Rank(snap.users, lengths)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplayEvolution reconstructs the edition's leaderboard history for the
// selected users. An empty subset charts every user.
func (e *Engine) ReplayEvolution(ctx context.Context, editionID model.EditionID, subset []model.UserID) (replay.Result, error) {
	var res replay.Result
	err := e.instrument(ctx, "replay", func() error {
		snap, err := e.snapshot(ctx, model.ForEdition(editionID))
		if err != nil {
			return err
		}
		if len(subset) == 0 {
			subset = make([]model.UserID, 0, len(snap.users))
			for _, u := range snap.users {
				subset = append(subset, u.ID)
			}
		}
		res, err = replay.Simulate(e.scorer, e.ranker, snap.users, snap.matches, snap.effective, subset)
		return err
	})
	if err != nil {
		return replay.Result{}, err
	}
	metrics.RecordReplaySteps(res.Steps)
	recordWarnings(res.Warnings)
	return res, nil
}

// ComputeOptimismIndex classifies users by their mean predicted-vs-actual
// goal difference bias.
func (e *Engine) ComputeOptimismIndex(ctx context.Context, scope model.Scope) ([]classify.OptimismRow, error) {
	var rows []classify.OptimismRow
	err := e.instrument(ctx, "optimism", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.Optimism(snap.users, snap.matches, snap.effective)
		return nil
	})
	return rows, err
}

// ComputeFirmness aggregates revision-count distributions per user.
func (e *Engine) ComputeFirmness(ctx context.Context, scope model.Scope) ([]classify.FirmnessRow, error) {
	var rows []classify.FirmnessRow
	err := e.instrument(ctx, "firmness", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.FirmnessDistribution(snap.users, snap.matches, snap.counts)
		return nil
	})
	return rows, err
}

// ComputeFalseProphet ranks users by how often a predicted win missed.
func (e *Engine) ComputeFalseProphet(ctx context.Context, scope model.Scope) ([]classify.ConditionalRow, error) {
	var rows []classify.ConditionalRow
	err := e.instrument(ctx, "false_prophet", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.FalseProphet(snap.users, snap.matches, snap.effective)
		return nil
	})
	return rows, err
}

// ComputeMufa ranks users by how often a predicted loss came true.
func (e *Engine) ComputeMufa(ctx context.Context, scope model.Scope) ([]classify.ConditionalRow, error) {
	var rows []classify.ConditionalRow
	err := e.instrument(ctx, "mufa", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.Mufa(snap.users, snap.matches, snap.effective)
		return nil
	})
	return rows, err
}

// ComputeBestPredictor ranks users by mean absolute goal error, best first.
func (e *Engine) ComputeBestPredictor(ctx context.Context, scope model.Scope) ([]classify.BestPredictorRow, error) {
	var rows []classify.BestPredictorRow
	err := e.instrument(ctx, "best_predictor", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.BestPredictor(e.scorer, snap.users, snap.matches, snap.effective)
		return nil
	})
	return rows, err
}

// ComputeWorstMisses lists the predictions with the largest absolute error.
func (e *Engine) ComputeWorstMisses(ctx context.Context, scope model.Scope) ([]classify.WorstMiss, error) {
	var rows []classify.WorstMiss
	err := e.instrument(ctx, "worst_misses", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.WorstMisses(e.scorer, snap.users, snap.matches, snap.effective, e.worstMissLimit)
		return nil
	})
	return rows, err
}

// ComputeStyle tallies called outcomes per user.
func (e *Engine) ComputeStyle(ctx context.Context, scope model.Scope) ([]classify.StyleRow, error) {
	var rows []classify.StyleRow
	err := e.instrument(ctx, "style", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.Style(snap.users, snap.matches, snap.effective)
		return nil
	})
	return rows, err
}

// ComputeStability reports average revisions per predicted finished match.
func (e *Engine) ComputeStability(ctx context.Context, scope model.Scope) ([]classify.StabilityRow, error) {
	var rows []classify.StabilityRow
	err := e.instrument(ctx, "stability", func() error {
		snap, err := e.snapshot(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.Stability(snap.users, snap.matches, snap.counts)
		return nil
	})
	return rows, err
}

// ComputeTrophies counts concluded-edition titles per user, optionally
// restricted to the editions of one year.
func (e *Engine) ComputeTrophies(ctx context.Context, year int) ([]classify.TrophyRow, error) {
	var rows []classify.TrophyRow
	err := e.instrument(ctx, "trophies", func() error {
		users, err := e.store.ListUsers(ctx)
		if err != nil {
			return err
		}
		editions, err := e.store.ListEditions(ctx)
		if err != nil {
			return err
		}
		if year != 0 {
			kept := editions[:0]
			for _, ed := range editions {
				if ed.Year == year {
					kept = append(kept, ed)
				}
			}
			editions = kept
		}
		scope := model.AllTime()
		if year != 0 {
			scope = model.ForYear(year)
		}
		matches, err := e.store.ListMatches(ctx, scope)
		if err != nil {
			return err
		}
		revs, err := e.store.ListRevisions(ctx, scope)
		if err != nil {
			return err
		}
		rows = classify.Trophies(e.scorer, users, editions, matches, resolve.Effective(revs), resolve.Count(revs))
		return nil
	})
	return rows, err
}

// Overview reports snapshot sizes for the stats endpoint.
func (e *Engine) Overview(ctx context.Context) (repository.Counts, error) {
	var counts repository.Counts
	err := e.instrument(ctx, "overview", func() error {
		var err error
		counts, err = e.store.Counts(ctx)
		return err
	})
	return counts, err
}
