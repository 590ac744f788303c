// Package resolve selects the effective prediction out of a revision history.
//
// The rule is defined once here instead of being repeated inside every
// aggregate query: for a (user, match) pair the revision with the latest
// submission timestamp wins, and identical timestamps fall back to the
// higher revision ID (later insertion).
package resolve

import (
	"github.com/okian/prode/internal/domain/model"
)

// Key identifies one (user, match) prediction slot.
type Key struct {
	User  model.UserID
	Match model.MatchID
}

// Latest returns the effective revision among revs, which must all belong to
// the same (user, match) pair. ok is false when revs is empty.
func Latest(revs []model.Revision) (eff model.Revision, ok bool) {
	for _, r := range revs {
		if !ok || after(r, eff) {
			eff, ok = r, true
		}
	}
	return eff, ok
}

// Effective resolves a mixed set of raw revisions into one effective revision
// per (user, match) slot.
func Effective(revs []model.Revision) map[Key]model.Revision {
	out := make(map[Key]model.Revision)
	for _, r := range revs {
		k := Key{User: r.UserID, Match: r.MatchID}
		if cur, seen := out[k]; !seen || after(r, cur) {
			out[k] = r
		}
	}
	return out
}

// Count tallies how many revisions each (user, match) slot received. The
// firmness classifier consumes this alongside the effective map.
func Count(revs []model.Revision) map[Key]int {
	out := make(map[Key]int)
	for _, r := range revs {
		out[Key{User: r.UserID, Match: r.MatchID}]++
	}
	return out
}

// after reports whether a supersedes b as the effective revision.
func after(a, b model.Revision) bool {
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.After(b.SubmittedAt)
	}
	return a.ID > b.ID
}
