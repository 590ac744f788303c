package model

import "fmt"

// WarningKind classifies non-fatal data inconsistencies found while scoring.
type WarningKind string

// Warning kinds.
const (
	// WarnLateRevision marks an effective revision submitted after a
	// confirmed kickoff. The record is excluded from all aggregates.
	WarnLateRevision WarningKind = "late_revision"

	// WarnNegativeAnticipation marks a revision submitted after a
	// kickoff whose hour was never announced. Points still count but the
	// anticipation sample is dropped from averages.
	WarnNegativeAnticipation WarningKind = "negative_anticipation"
)

// Warning flags a record that was excluded (fully or partially) from a
// computation. The computation itself still completes.
type Warning struct {
	Kind    WarningKind
	UserID  UserID
	MatchID MatchID
	Detail  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s user=%d match=%d: %s", w.Kind, w.UserID, w.MatchID, w.Detail)
}
