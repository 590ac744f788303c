// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/replay"
	"github.com/okian/prode/pkg/metrics"
)

// DefaultStreamInterval paces websocket replay frames.
const DefaultStreamInterval = 50 * time.Millisecond

// ReplayDependencies defines the interface for replay operations.
type ReplayDependencies interface {
	ReplayEvolution(ctx context.Context, editionID model.EditionID, subset []model.UserID) (replay.Result, error)
}

// ReplayHandler handles replay requests, both the one-shot JSON form and the
// paced websocket stream.
type ReplayHandler struct {
	deps           ReplayDependencies
	streamInterval time.Duration
	upgrader       websocket.Upgrader
}

// NewReplayHandler creates a new replay handler.
func NewReplayHandler(deps ReplayDependencies) *ReplayHandler {
	return &ReplayHandler{
		deps:           deps,
		streamInterval: DefaultStreamInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Charts are served from anywhere; the data is read-only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetStreamInterval overrides the pacing of websocket frames.
func (h *ReplayHandler) SetStreamInterval(d time.Duration) {
	if d > 0 {
		h.streamInterval = d
	}
}

type snapshotEntry struct {
	Rank   int `json:"rank"`
	Points int `json:"points"`
}

type replayResponse struct {
	EditionID int64                     `json:"edition_id"`
	Steps     int                       `json:"steps"`
	Series    map[int64][]snapshotEntry `json:"series"`
	Warnings  []warningEntry            `json:"warnings"`
}

type replayFrame struct {
	Step      int                     `json:"step"`
	Snapshots map[int64]snapshotEntry `json:"snapshots"`
}

func replayParams(r *http.Request) (model.EditionID, []model.UserID, error) {
	editionStr := r.URL.Query().Get("edition")
	if editionStr == "" {
		return 0, nil, ErrMissingEdition
	}
	editionID, err := strconv.ParseInt(editionStr, 10, 64)
	if err != nil || editionID < 1 {
		return 0, nil, ErrBadRequest
	}
	var subset []model.UserID
	if usersStr := r.URL.Query().Get("users"); usersStr != "" {
		for _, part := range strings.Split(usersStr, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id < 1 {
				return 0, nil, ErrBadRequest
			}
			subset = append(subset, model.UserID(id))
		}
	}
	return model.EditionID(editionID), subset, nil
}

func toSeries(res replay.Result) map[int64][]snapshotEntry {
	series := make(map[int64][]snapshotEntry, len(res.Series))
	for uid, snaps := range res.Series {
		entries := make([]snapshotEntry, 0, len(snaps))
		for _, s := range snaps {
			entries = append(entries, snapshotEntry{Rank: s.Rank, Points: s.Points})
		}
		series[int64(uid)] = entries
	}
	return series
}

// HandleGetReplay handles GET /replay?edition=N&users=a,b,c requests.
func (h *ReplayHandler) HandleGetReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	editionID, subset, err := replayParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := h.deps.ReplayEvolution(r.Context(), editionID, subset)
	if err != nil {
		if errors.Is(err, replay.ErrUnknownUser) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, replayResponse{
		EditionID: int64(editionID),
		Steps:     res.Steps,
		Series:    toSeries(res),
		Warnings:  toWarningEntries(res.Warnings),
	})
}

// HandleReplayStream handles GET /replay/ws requests. The full simulation is
// computed up front; frames are then replayed over the socket one match at a
// time so clients can animate the chart.
func (h *ReplayHandler) HandleReplayStream(w http.ResponseWriter, r *http.Request) {
	editionID, subset, err := replayParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := h.deps.ReplayEvolution(r.Context(), editionID, subset)
	if err != nil {
		if errors.Is(err, replay.ErrUnknownUser) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		return
	}
	defer conn.Close()

	metrics.ReplayStreamOpened()
	defer metrics.ReplayStreamClosed()

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	for step := 0; step < res.Steps; step++ {
		frame := replayFrame{Step: step + 1, Snapshots: make(map[int64]snapshotEntry, len(res.Series))}
		for uid, snaps := range res.Series {
			frame.Snapshots[int64(uid)] = snapshotEntry{Rank: snaps[step].Rank, Points: snaps[step].Points}
		}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"))
}
