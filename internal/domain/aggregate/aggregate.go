// Package aggregate folds per-match breakdowns into per-user totals.
//
// Totals is an immutable value: Step returns a new Totals instead of
// mutating, so the replay simulator can thread running state through a
// left-fold without shared mutable maps.
package aggregate

import (
	"fmt"
	"math"
	"time"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
	"github.com/okian/prode/internal/domain/scoring"
)

// Totals accumulates one user's scored matches within a scope.
type Totals struct {
	Points  int
	Matches int
	Exact   int

	ErrorSum        int
	AnticipationSum time.Duration
	AnticipationN   int
}

// AvgError is the mean absolute goal error. ok is false with no counted
// matches; averaged metrics are null then, never zero.
func (t Totals) AvgError() (avg float64, ok bool) {
	if t.Matches == 0 {
		return 0, false
	}
	return float64(t.ErrorSum) / float64(t.Matches), true
}

// AvgAnticipationSeconds is the mean gap between submission and kickoff.
// Samples flagged as inconsistent are not part of the mean.
func (t Totals) AvgAnticipationSeconds() (avg float64, ok bool) {
	if t.AnticipationN == 0 {
		return 0, false
	}
	return t.AnticipationSum.Seconds() / float64(t.AnticipationN), true
}

// Effectiveness is the percentage of exactly guessed scores, rounded to two
// decimals.
func (t Totals) Effectiveness() (pct float64, ok bool) {
	if t.Matches == 0 {
		return 0, false
	}
	raw := 100 * float64(t.Exact) / float64(t.Matches)
	return math.Round(raw*100) / 100, true
}

// Step applies one breakdown to the totals under the exclusion policy:
//
//   - submission after a confirmed kickoff excludes the whole record and
//     flags it, so a corrupted row cannot skew the averages;
//   - negative anticipation against an unannounced kickoff keeps the points
//     and error but drops the anticipation sample.
//
// The returned warning is nil for clean records.
func Step(t Totals, m model.Match, b scoring.Breakdown) (Totals, *model.Warning) {
	if b.Anticipation < 0 {
		if m.KickoffAnnounced() {
			return t, &model.Warning{
				Kind:    model.WarnLateRevision,
				UserID:  b.UserID,
				MatchID: b.MatchID,
				Detail:  fmt.Sprintf("submitted %s after kickoff", -b.Anticipation),
			}
		}
		w := &model.Warning{
			Kind:    model.WarnNegativeAnticipation,
			UserID:  b.UserID,
			MatchID: b.MatchID,
			Detail:  "kickoff hour unannounced; anticipation sample dropped",
		}
		return t.add(b, false), w
	}
	return t.add(b, true), nil
}

func (t Totals) add(b scoring.Breakdown, withAnticipation bool) Totals {
	t.Points += b.Points
	t.Matches++
	t.ErrorSum += b.AbsError
	if b.Exact() {
		t.Exact++
	}
	if withAnticipation {
		t.AnticipationSum += b.Anticipation
		t.AnticipationN++
	}
	return t
}

// Result carries the folded totals for every user that had at least one
// effective prediction, plus the flagged records.
type Result struct {
	Totals   map[model.UserID]Totals
	Warnings []model.Warning
}

// Fold scores every (finished match, effective prediction) pairing and
// accumulates per-user totals. Matches without a user's prediction simply do
// not count for that user. A finished match with missing goals aborts with a
// MalformedInputError since every user's averages would be corrupted.
func Fold(scorer *scoring.Scorer, matches []model.Match, effective map[resolve.Key]model.Revision) (Result, error) {
	byMatch := ByMatch(effective)
	res := Result{Totals: make(map[model.UserID]Totals)}
	for _, m := range matches {
		if !m.Finished() {
			return Result{}, &scoring.MalformedInputError{
				MatchID: m.ID,
				Reason:  "match listed as finished without recorded goals",
			}
		}
		for _, rev := range byMatch[m.ID] {
			b, err := scorer.Score(m, rev)
			if err != nil {
				return Result{}, err
			}
			next, warn := Step(res.Totals[rev.UserID], m, b)
			res.Totals[rev.UserID] = next
			if warn != nil {
				res.Warnings = append(res.Warnings, *warn)
			}
		}
	}
	return res, nil
}

// ByMatch regroups the effective map for chronological walks.
func ByMatch(effective map[resolve.Key]model.Revision) map[model.MatchID][]model.Revision {
	out := make(map[model.MatchID][]model.Revision)
	for k, rev := range effective {
		out[k.Match] = append(out[k.Match], rev)
	}
	return out
}
