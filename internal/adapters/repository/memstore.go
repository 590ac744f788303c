package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/prode/internal/domain/model"
)

// MemStore is an in-memory snapshot store. It backs the tests and the
// seeded demo mode; the service normally runs over SQLite.
type MemStore struct {
	mu        sync.RWMutex
	users     []model.User
	editions  []model.Edition
	matches   []model.Match
	revisions []model.Revision
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithUsers seeds the user set.
func WithUsers(users ...model.User) Option {
	return func(s *MemStore) { s.users = append(s.users, users...) }
}

// WithEditions seeds the edition set.
func WithEditions(editions ...model.Edition) Option {
	return func(s *MemStore) { s.editions = append(s.editions, editions...) }
}

// WithMatches seeds the match set.
func WithMatches(matches ...model.Match) Option {
	return func(s *MemStore) { s.matches = append(s.matches, matches...) }
}

// WithRevisions seeds the prediction history.
func WithRevisions(revisions ...model.Revision) Option {
	return func(s *MemStore) { s.revisions = append(s.revisions, revisions...) }
}

// NewMemStore creates an in-memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{}
	for _, opt := range opts {
		opt(s)
	}
	s.normalize()
	return s
}

// AddRevision records one more prediction revision, assigning the next ID
// when the caller left it zero.
func (s *MemStore) AddRevision(rev model.Revision) model.Revision {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rev.ID == 0 {
		var max int64
		for _, r := range s.revisions {
			if r.ID > max {
				max = r.ID
			}
		}
		rev.ID = max + 1
	}
	s.revisions = append(s.revisions, rev)
	return rev
}

// SetResult records a played match's actual score.
func (s *MemStore) SetResult(id model.MatchID, home, away int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.matches {
		if s.matches[i].ID == id {
			h, a := home, away
			s.matches[i].HomeGoals = &h
			s.matches[i].AwayGoals = &a
			return true
		}
	}
	return false
}

// editionYears maps edition IDs to their year for scope filtering.
// Callers hold at least a read lock.
func (s *MemStore) editionYears() map[model.EditionID]int {
	years := make(map[model.EditionID]int, len(s.editions))
	for _, e := range s.editions {
		years[e.ID] = e.Year
	}
	return years
}

func (s *MemStore) normalize() {
	sort.SliceStable(s.matches, func(i, j int) bool {
		return s.matches[i].Kickoff.Before(s.matches[j].Kickoff)
	})
	sort.SliceStable(s.revisions, func(i, j int) bool {
		return s.revisions[i].ID < s.revisions[j].ID
	})
}

// ListUsers implements Store.
func (s *MemStore) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// ListEditions implements Store.
func (s *MemStore) ListEditions(_ context.Context) ([]model.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Edition, len(s.editions))
	copy(out, s.editions)
	return out, nil
}

// ListMatches implements Store.
func (s *MemStore) ListMatches(_ context.Context, scope model.Scope) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	years := s.editionYears()
	out := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if scope.Contains(m, years[m.EditionID]) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListFinishedMatches implements Store.
func (s *MemStore) ListFinishedMatches(_ context.Context, scope model.Scope) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	years := s.editionYears()
	out := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if m.Finished() && scope.Contains(m, years[m.EditionID]) {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListRevisions implements Store.
func (s *MemStore) ListRevisions(_ context.Context, scope model.Scope) ([]model.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	years := s.editionYears()
	inScope := make(map[model.MatchID]bool, len(s.matches))
	for _, m := range s.matches {
		if scope.Contains(m, years[m.EditionID]) {
			inScope[m.ID] = true
		}
	}
	out := make([]model.Revision, 0, len(s.revisions))
	for _, r := range s.revisions {
		if inScope[r.MatchID] {
			out = append(out, r)
		}
	}
	return out, nil
}

// Counts implements Store.
func (s *MemStore) Counts(_ context.Context) (Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := Counts{
		Users:     len(s.users),
		Editions:  len(s.editions),
		Matches:   len(s.matches),
		Revisions: len(s.revisions),
	}
	for _, m := range s.matches {
		if m.Finished() {
			c.FinishedMatches++
		}
	}
	return c, nil
}
