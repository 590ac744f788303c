// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/rank"
)

// RankingDependencies defines the interface for ranking operations.
type RankingDependencies interface {
	ComputeRanking(ctx context.Context, scope model.Scope) ([]rank.Row, []model.Warning, error)
}

// RankingHandler handles leaderboard requests.
type RankingHandler struct {
	deps     RankingDependencies
	maxLimit int
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingDependencies, maxLimit int) *RankingHandler {
	return &RankingHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// rankingEntry mirrors the read shape of one leaderboard row. Averaged
// metrics are null for users without counted matches.
type rankingEntry struct {
	Rank                   int      `json:"rank"`
	UserID                 int64    `json:"user_id"`
	Name                   string   `json:"name"`
	TotalPoints            int      `json:"total_points"`
	MatchesCounted         int      `json:"matches_counted"`
	ExactHits              int      `json:"exact_hits"`
	AvgError               *float64 `json:"avg_error"`
	AvgAnticipationSeconds *float64 `json:"avg_anticipation_seconds"`
	Effectiveness          *float64 `json:"effectiveness"`
}

type warningEntry struct {
	Kind    string `json:"kind"`
	UserID  int64  `json:"user_id"`
	MatchID int64  `json:"match_id"`
	Detail  string `json:"detail"`
}

type rankingResponse struct {
	Ranking  []rankingEntry `json:"ranking"`
	Warnings []warningEntry `json:"warnings"`
}

func toRankingEntries(rows []rank.Row) []rankingEntry {
	entries := make([]rankingEntry, 0, len(rows))
	for _, row := range rows {
		e := rankingEntry{
			Rank:           row.Rank,
			UserID:         int64(row.User.ID),
			Name:           row.User.Name,
			TotalPoints:    row.Totals.Points,
			MatchesCounted: row.Totals.Matches,
			ExactHits:      row.Totals.Exact,
		}
		if v, ok := row.Totals.AvgError(); ok {
			e.AvgError = &v
		}
		if v, ok := row.Totals.AvgAnticipationSeconds(); ok {
			e.AvgAnticipationSeconds = &v
		}
		if v, ok := row.Totals.Effectiveness(); ok {
			e.Effectiveness = &v
		}
		entries = append(entries, e)
	}
	return entries
}

func toWarningEntries(warnings []model.Warning) []warningEntry {
	entries := make([]warningEntry, 0, len(warnings))
	for _, w := range warnings {
		entries = append(entries, warningEntry{
			Kind:    string(w.Kind),
			UserID:  int64(w.UserID),
			MatchID: int64(w.MatchID),
			Detail:  w.Detail,
		})
	}
	return entries
}

// HandleGetRanking handles GET /ranking?edition=N&limit=K requests. The
// scope may also be an edition year; limit defaults to the full table.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	scope, err := scopeFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if limit > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
			return
		}
	}
	rows, warnings, err := h.deps.ComputeRanking(r.Context(), scope)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	writeJSON(w, http.StatusOK, rankingResponse{
		Ranking:  toRankingEntries(rows),
		Warnings: toWarningEntries(warnings),
	})
}
