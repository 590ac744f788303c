// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/streak"
)

// StreaksDependencies defines the interface for streak operations.
type StreaksDependencies interface {
	ComputeCurrentStreaks(ctx context.Context, scope model.Scope) ([]streak.Row, error)
	ComputeRecordStreaks(ctx context.Context, scope model.Scope) ([]streak.Row, error)
}

// StreaksHandler handles streak requests.
type StreaksHandler struct {
	deps StreaksDependencies
}

// NewStreaksHandler creates a new streaks handler.
func NewStreaksHandler(deps StreaksDependencies) *StreaksHandler {
	return &StreaksHandler{deps: deps}
}

type streakEntry struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Length int    `json:"length"`
}

func toStreakEntries(rows []streak.Row) []streakEntry {
	entries := make([]streakEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, streakEntry{
			UserID: int64(row.User.ID),
			Name:   row.User.Name,
			Length: row.Length,
		})
	}
	return entries
}

// HandleCurrent handles GET /streaks/current requests.
func (h *StreaksHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.deps.ComputeCurrentStreaks)
}

// HandleRecord handles GET /streaks/record requests.
func (h *StreaksHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.deps.ComputeRecordStreaks)
}

func (h *StreaksHandler) handle(w http.ResponseWriter, r *http.Request, compute func(context.Context, model.Scope) ([]streak.Row, error)) {
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
	writeJSON(w, http.StatusOK, toStreakEntries(rows))
}
