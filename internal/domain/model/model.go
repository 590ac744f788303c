// Package model contains the core entities shared across the engine.
package model

import "time"

// Identifier types keep the maps in the aggregation layers honest.
type (
	UserID    int64
	MatchID   int64
	EditionID int64
)

// User is an immutable identity owning zero or more prediction revisions.
type User struct {
	ID   UserID
	Name string
}

// Edition is one occurrence of a tournament in a specific year.
type Edition struct {
	ID         EditionID
	Tournament string
	Year       int
	Concluded  bool
}

// Match belongs to exactly one Edition. A nil goal pair means the match has
// not been played yet. A kickoff with zero time-of-day means the exact hour
// was not announced when the fixture was loaded.
type Match struct {
	ID        MatchID
	EditionID EditionID
	Opponent  string
	Kickoff   time.Time
	HomeGoals *int
	AwayGoals *int
}

// Finished reports whether the actual score has been recorded.
func (m Match) Finished() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// KickoffAnnounced reports whether the exact kickoff hour is known.
// A midnight timestamp is the fixture feed's "time to be confirmed" sentinel.
func (m Match) KickoffAnnounced() bool {
	h, min, sec := m.Kickoff.Clock()
	return h != 0 || min != 0 || sec != 0
}

// Revision is one submitted guess for a (user, match) pair. Revisions are
// immutable; a changed mind produces a new row with a higher ID.
type Revision struct {
	ID          int64
	UserID      UserID
	MatchID     MatchID
	Home        int
	Away        int
	SubmittedAt time.Time
}

// Outcome is the sign of a goal difference.
type Outcome int

// Outcome values.
const (
	Loss Outcome = -1
	Draw Outcome = 0
	Win  Outcome = 1
)

// OutcomeOf maps a goal difference to its outcome.
func OutcomeOf(home, away int) Outcome {
	switch {
	case home > away:
		return Win
	case home < away:
		return Loss
	default:
		return Draw
	}
}
