// Package repository defines the read-only snapshot contract the engine
// computes over, with an in-memory and a SQLite implementation.
//
// The store hands out raw revisions; resolving them to effective
// predictions is the core's job, never a max-timestamp subquery here.
package repository

import (
	"context"

	"github.com/okian/prode/internal/domain/model"
)

// Store provides the snapshot queries the engine consumes. All listings are
// deterministic: matches sort by kickoff ascending, revisions by ID.
type Store interface {
	// ListUsers returns every registered participant.
	ListUsers(ctx context.Context) ([]model.User, error)

	// ListEditions returns every tournament edition.
	ListEditions(ctx context.Context) ([]model.Edition, error)

	// ListMatches returns all matches inside the scope, played or not.
	ListMatches(ctx context.Context, scope model.Scope) ([]model.Match, error)

	// ListFinishedMatches returns only matches with a recorded result.
	ListFinishedMatches(ctx context.Context, scope model.Scope) ([]model.Match, error)

	// ListRevisions returns the raw, unresolved prediction history for
	// matches inside the scope.
	ListRevisions(ctx context.Context, scope model.Scope) ([]model.Revision, error)

	// Counts reports snapshot sizes for the stats endpoint.
	Counts(ctx context.Context) (Counts, error)
}

// Counts summarizes a snapshot.
type Counts struct {
	Users           int `json:"users"`
	Editions        int `json:"editions"`
	Matches         int `json:"matches"`
	FinishedMatches int `json:"finished_matches"`
	Revisions       int `json:"revisions"`
}
