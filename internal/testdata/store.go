package testdata

import "github.com/okian/prode/internal/adapters/repository"

// Store loads the fixture into a fresh in-memory store.
func (f Fixture) Store() *repository.MemStore {
	return repository.NewMemStore(
		repository.WithUsers(f.Users...),
		repository.WithEditions(f.Editions...),
		repository.WithMatches(f.Matches...),
		repository.WithRevisions(f.Revisions...),
	)
}
