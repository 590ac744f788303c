// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/prode/internal/adapters/repository"
	"github.com/okian/prode/internal/domain/classify"
	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/rank"
	"github.com/okian/prode/internal/domain/replay"
	"github.com/okian/prode/internal/domain/streak"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the engine implementation.
type Dependencies interface {
	ComputeRanking(ctx context.Context, scope model.Scope) ([]rank.Row, []model.Warning, error)
	ComputeCurrentStreaks(ctx context.Context, scope model.Scope) ([]streak.Row, error)
	ComputeRecordStreaks(ctx context.Context, scope model.Scope) ([]streak.Row, error)
	ReplayEvolution(ctx context.Context, editionID model.EditionID, subset []model.UserID) (replay.Result, error)
	ComputeOptimismIndex(ctx context.Context, scope model.Scope) ([]classify.OptimismRow, error)
	ComputeFirmness(ctx context.Context, scope model.Scope) ([]classify.FirmnessRow, error)
	ComputeFalseProphet(ctx context.Context, scope model.Scope) ([]classify.ConditionalRow, error)
	ComputeMufa(ctx context.Context, scope model.Scope) ([]classify.ConditionalRow, error)
	ComputeBestPredictor(ctx context.Context, scope model.Scope) ([]classify.BestPredictorRow, error)
	ComputeWorstMisses(ctx context.Context, scope model.Scope) ([]classify.WorstMiss, error)
	ComputeStyle(ctx context.Context, scope model.Scope) ([]classify.StyleRow, error)
	ComputeStability(ctx context.Context, scope model.Scope) ([]classify.StabilityRow, error)
	ComputeTrophies(ctx context.Context, year int) ([]classify.TrophyRow, error)
	Overview(ctx context.Context) (repository.Counts, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxRankingLimit int
	streamInterval  time.Duration

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rankingHandler     *RankingHandler
	streaksHandler     *StreaksHandler
	replayHandler      *ReplayHandler
	classifiersHandler *ClassifiersHandler
}

// defaultMaxRankingLimit caps GET /ranking?limit when no override is given.
const defaultMaxRankingLimit = 100

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithMaxRankingLimit overrides the cap on GET /ranking?limit.
func WithMaxRankingLimit(limit int) ServerOption {
	return func(s *Server) {
		if limit > 0 {
			s.maxRankingLimit = limit
		}
	}
}

// WithReplayStreamInterval overrides the websocket frame pacing.
func WithReplayStreamInterval(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.streamInterval = d
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		maxRankingLimit: defaultMaxRankingLimit,
		streamInterval:  DefaultStreamInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.rankingHandler = NewRankingHandler(deps, s.maxRankingLimit)
	s.streaksHandler = NewStreaksHandler(deps)
	s.replayHandler = NewReplayHandler(deps)
	s.replayHandler.SetStreamInterval(s.streamInterval)
	s.classifiersHandler = NewClassifiersHandler(deps)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/streaks/current", MetricsMiddleware(s.streaksHandler.HandleCurrent, "streaks_current"))
	mux.HandleFunc("/streaks/record", MetricsMiddleware(s.streaksHandler.HandleRecord, "streaks_record"))
	mux.HandleFunc("/replay", MetricsMiddleware(s.replayHandler.HandleGetReplay, "replay"))
	mux.HandleFunc("/replay/ws", s.replayHandler.HandleReplayStream)
	mux.HandleFunc("/classifiers/optimism", MetricsMiddleware(s.classifiersHandler.HandleOptimism, "optimism"))
	mux.HandleFunc("/classifiers/firmness", MetricsMiddleware(s.classifiersHandler.HandleFirmness, "firmness"))
	mux.HandleFunc("/classifiers/mufa", MetricsMiddleware(s.classifiersHandler.HandleMufa, "mufa"))
	mux.HandleFunc("/classifiers/false-prophet", MetricsMiddleware(s.classifiersHandler.HandleFalseProphet, "false_prophet"))
	mux.HandleFunc("/stats/style", MetricsMiddleware(s.classifiersHandler.HandleStyle, "style"))
	mux.HandleFunc("/stats/stability", MetricsMiddleware(s.classifiersHandler.HandleStability, "stability"))
	mux.HandleFunc("/stats/best-predictor", MetricsMiddleware(s.classifiersHandler.HandleBestPredictor, "best_predictor"))
	mux.HandleFunc("/stats/worst-misses", MetricsMiddleware(s.classifiersHandler.HandleWorstMisses, "worst_misses"))
	mux.HandleFunc("/stats/trophies", MetricsMiddleware(s.classifiersHandler.HandleTrophies, "trophies"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
