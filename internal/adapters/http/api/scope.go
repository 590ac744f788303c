// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/okian/prode/internal/domain/model"
)

// scopeFromRequest parses the optional edition / year query parameters.
// The two are mutually exclusive; neither set means all-time.
func scopeFromRequest(r *http.Request) (model.Scope, error) {
	editionStr := r.URL.Query().Get("edition")
	yearStr := r.URL.Query().Get("year")
	if editionStr != "" && yearStr != "" {
		return model.Scope{}, ErrScopeConflict
	}
	if editionStr != "" {
		id, err := strconv.ParseInt(editionStr, 10, 64)
		if err != nil || id < 1 {
			return model.Scope{}, ErrBadRequest
		}
		return model.ForEdition(model.EditionID(id)), nil
	}
	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1900 {
			return model.Scope{}, ErrBadRequest
		}
		return model.ForYear(year), nil
	}
	return model.AllTime(), nil
}
