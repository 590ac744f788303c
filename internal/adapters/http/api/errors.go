package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrScopeConflict  = errors.New("edition and year are mutually exclusive")
	ErrMissingEdition = errors.New("missing edition")
)
