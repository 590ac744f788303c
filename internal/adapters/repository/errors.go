package repository

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrOpen     = errors.New("open store failed")
	ErrQuery    = errors.New("store query failed")
	ErrInsert   = errors.New("store insert failed")
	ErrNotFound = errors.New("not found")
)
