// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/prode/internal/domain/classify"
	"github.com/okian/prode/internal/domain/model"
)

// ClassifiersDependencies defines the interface for behavioral listings.
type ClassifiersDependencies interface {
	ComputeOptimismIndex(ctx context.Context, scope model.Scope) ([]classify.OptimismRow, error)
	ComputeFirmness(ctx context.Context, scope model.Scope) ([]classify.FirmnessRow, error)
	ComputeFalseProphet(ctx context.Context, scope model.Scope) ([]classify.ConditionalRow, error)
	ComputeMufa(ctx context.Context, scope model.Scope) ([]classify.ConditionalRow, error)
	ComputeBestPredictor(ctx context.Context, scope model.Scope) ([]classify.BestPredictorRow, error)
	ComputeWorstMisses(ctx context.Context, scope model.Scope) ([]classify.WorstMiss, error)
	ComputeStyle(ctx context.Context, scope model.Scope) ([]classify.StyleRow, error)
	ComputeStability(ctx context.Context, scope model.Scope) ([]classify.StabilityRow, error)
	ComputeTrophies(ctx context.Context, year int) ([]classify.TrophyRow, error)
}

// ClassifiersHandler handles the behavioral classification listings.
type ClassifiersHandler struct {
	deps ClassifiersDependencies
}

// NewClassifiersHandler creates a new classifiers handler.
func NewClassifiersHandler(deps ClassifiersDependencies) *ClassifiersHandler {
	return &ClassifiersHandler{deps: deps}
}

type optimismEntry struct {
	UserID  int64   `json:"user_id"`
	Name    string  `json:"name"`
	Index   float64 `json:"index"`
	Band    string  `json:"band"`
	Matches int     `json:"matches"`
}

type firmnessEntry struct {
	UserID   int64              `json:"user_id"`
	Name     string             `json:"name"`
	Matches  int                `json:"matches"`
	Counts   map[string]int     `json:"counts"`
	Percents map[string]float64 `json:"percents"`
	Dominant string             `json:"dominant"`
}

type conditionalEntry struct {
	UserID int64   `json:"user_id"`
	Name   string  `json:"name"`
	Picks  int     `json:"picks"`
	Hits   int     `json:"hits"`
	Pct    float64 `json:"pct"`
}

type bestPredictorEntry struct {
	UserID   int64   `json:"user_id"`
	Name     string  `json:"name"`
	Matches  int     `json:"matches"`
	AvgError float64 `json:"avg_error"`
}

type worstMissEntry struct {
	UserID        int64  `json:"user_id"`
	Name          string `json:"name"`
	MatchID       int64  `json:"match_id"`
	Opponent      string `json:"opponent"`
	Kickoff       string `json:"kickoff"`
	PredictedHome int    `json:"predicted_home"`
	PredictedAway int    `json:"predicted_away"`
	ActualHome    int    `json:"actual_home"`
	ActualAway    int    `json:"actual_away"`
	AbsError      int    `json:"abs_error"`
}

type styleEntry struct {
	UserID        int64  `json:"user_id"`
	Name          string `json:"name"`
	Matches       int    `json:"matches"`
	PredictedWin  int    `json:"predicted_win"`
	PredictedDraw int    `json:"predicted_draw"`
	PredictedLoss int    `json:"predicted_loss"`
	NoPrediction  int    `json:"no_prediction"`
}

type stabilityEntry struct {
	UserID           int64   `json:"user_id"`
	Name             string  `json:"name"`
	PredictedMatches int     `json:"predicted_matches"`
	Revisions        int     `json:"revisions"`
	PerMatch         float64 `json:"per_match"`
}

type trophyEntry struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Trophies int    `json:"trophies"`
}

// HandleOptimism handles GET /classifiers/optimism requests.
func (h *ClassifiersHandler) HandleOptimism(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeOptimismIndex, func(rows []classify.OptimismRow) any {
		entries := make([]optimismEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, optimismEntry{
				UserID:  int64(row.User.ID),
				Name:    row.User.Name,
				Index:   row.Index,
				Band:    string(row.Band),
				Matches: row.Matches,
			})
		}
		return entries
	})
}

// HandleFirmness handles GET /classifiers/firmness requests.
func (h *ClassifiersHandler) HandleFirmness(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeFirmness, func(rows []classify.FirmnessRow) any {
		entries := make([]firmnessEntry, 0, len(rows))
		for _, row := range rows {
			counts := make(map[string]int, len(row.Counts))
			for k, v := range row.Counts {
				counts[string(k)] = v
			}
			percents := make(map[string]float64, len(row.Percents))
			for k, v := range row.Percents {
				percents[string(k)] = v
			}
			entries = append(entries, firmnessEntry{
				UserID:   int64(row.User.ID),
				Name:     row.User.Name,
				Matches:  row.Matches,
				Counts:   counts,
				Percents: percents,
				Dominant: string(row.Dominant),
			})
		}
		return entries
	})
}

// HandleMufa handles GET /classifiers/mufa requests.
func (h *ClassifiersHandler) HandleMufa(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeMufa, toConditionalEntries)
}

// HandleFalseProphet handles GET /classifiers/false-prophet requests.
func (h *ClassifiersHandler) HandleFalseProphet(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeFalseProphet, toConditionalEntries)
}

func toConditionalEntries(rows []classify.ConditionalRow) any {
	entries := make([]conditionalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, conditionalEntry{
			UserID: int64(row.User.ID),
			Name:   row.User.Name,
			Picks:  row.Picks,
			Hits:   row.Hits,
			Pct:    row.Pct,
		})
	}
	return entries
}

// HandleBestPredictor handles GET /stats/best-predictor requests.
func (h *ClassifiersHandler) HandleBestPredictor(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeBestPredictor, func(rows []classify.BestPredictorRow) any {
		entries := make([]bestPredictorEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, bestPredictorEntry{
				UserID:   int64(row.User.ID),
				Name:     row.User.Name,
				Matches:  row.Matches,
				AvgError: row.AvgError,
			})
		}
		return entries
	})
}

// HandleWorstMisses handles GET /stats/worst-misses requests.
func (h *ClassifiersHandler) HandleWorstMisses(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeWorstMisses, func(rows []classify.WorstMiss) any {
		entries := make([]worstMissEntry, 0, len(rows))
		for _, row := range rows {
			e := worstMissEntry{
				UserID:        int64(row.User.ID),
				Name:          row.User.Name,
				MatchID:       int64(row.Match.ID),
				Opponent:      row.Match.Opponent,
				Kickoff:       row.Match.Kickoff.Format(time.RFC3339),
				PredictedHome: row.Predicted.Home,
				PredictedAway: row.Predicted.Away,
				AbsError:      row.AbsError,
			}
			if row.Match.HomeGoals != nil {
				e.ActualHome = *row.Match.HomeGoals
			}
			if row.Match.AwayGoals != nil {
				e.ActualAway = *row.Match.AwayGoals
			}
			entries = append(entries, e)
		}
		return entries
	})
}

// HandleStyle handles GET /stats/style requests.
func (h *ClassifiersHandler) HandleStyle(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeStyle, func(rows []classify.StyleRow) any {
		entries := make([]styleEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, styleEntry{
				UserID:        int64(row.User.ID),
				Name:          row.User.Name,
				Matches:       row.Matches,
				PredictedWin:  row.PredictedWin,
				PredictedDraw: row.PredictedDraw,
				PredictedLoss: row.PredictedLoss,
				NoPrediction:  row.NoPrediction,
			})
		}
		return entries
	})
}

// HandleStability handles GET /stats/stability requests.
func (h *ClassifiersHandler) HandleStability(w http.ResponseWriter, r *http.Request) {
	scoped(w, r, h.deps.ComputeStability, func(rows []classify.StabilityRow) any {
		entries := make([]stabilityEntry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, stabilityEntry{
				UserID:           int64(row.User.ID),
				Name:             row.User.Name,
				PredictedMatches: row.PredictedMatches,
				Revisions:        row.Revisions,
				PerMatch:         row.PerMatch,
			})
		}
		return entries
	})
}

// HandleTrophies handles GET /stats/trophies?year=YYYY requests. Trophy
// counts only consider concluded editions, so the edition filter does not
// apply here.
func (h *ClassifiersHandler) HandleTrophies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	year := 0
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		var err error
		year, err = strconv.Atoi(yearStr)
		if err != nil || year < 1900 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}
	rows, err := h.deps.ComputeTrophies(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	entries := make([]trophyEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, trophyEntry{
			UserID:   int64(row.User.ID),
			Name:     row.User.Name,
			Trophies: row.Trophies,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// scoped runs one scope-parameterized computation and writes the converted
// result. Generics keep the per-endpoint handlers down to the DTO mapping.
func scoped[T any](
	w http.ResponseWriter,
	r *http.Request,
	compute func(context.Context, model.Scope) ([]T, error),
	convert func([]T) any,
) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	scope, err := scopeFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	rows, err := compute(r.Context(), scope)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, convert(rows))
}
