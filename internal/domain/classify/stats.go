package classify

import (
	"sort"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
	"github.com/okian/prode/internal/domain/scoring"
)

// StyleRow is a user's distribution of called outcomes over the finished
// matches in scope.
type StyleRow struct {
	User          model.User
	Matches       int
	PredictedWin  int
	PredictedDraw int
	PredictedLoss int
	NoPrediction  int
}

// Style tallies, per user, how many finished matches got a win, draw or loss
// call, and how many went unpredicted.
func Style(users []model.User, matches []model.Match, effective map[resolve.Key]model.Revision) []StyleRow {
	rows := make([]StyleRow, 0, len(users))
	for _, u := range users {
		row := StyleRow{User: u}
		for _, m := range matches {
			if !m.Finished() {
				continue
			}
			row.Matches++
			rev, ok := effective[resolve.Key{User: u.ID, Match: m.ID}]
			if !ok {
				row.NoPrediction++
				continue
			}
			switch model.OutcomeOf(rev.Home, rev.Away) {
			case model.Win:
				row.PredictedWin++
			case model.Loss:
				row.PredictedLoss++
			default:
				row.PredictedDraw++
			}
		}
		if row.Matches == 0 {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}

// StabilityRow is a user's average number of revisions per predicted
// finished match. 1.0 means never a second thought.
type StabilityRow struct {
	User             model.User
	PredictedMatches int
	Revisions        int
	PerMatch         float64
}

// Stability divides total revisions by distinct predicted finished matches.
// Users who never predicted a finished match are excluded.
func Stability(users []model.User, matches []model.Match, counts map[resolve.Key]int) []StabilityRow {
	finished := make(map[model.MatchID]bool, len(matches))
	for _, m := range matches {
		if m.Finished() {
			finished[m.ID] = true
		}
	}
	rows := make([]StabilityRow, 0, len(users))
	for _, u := range users {
		var row StabilityRow
		row.User = u
		for k, n := range counts {
			if k.User != u.ID || !finished[k.Match] || n == 0 {
				continue
			}
			row.PredictedMatches++
			row.Revisions += n
		}
		if row.PredictedMatches == 0 {
			continue
		}
		row.PerMatch = float64(row.Revisions) / float64(row.PredictedMatches)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}

// BestPredictorRow is a user's mean absolute goal error, lower is better.
type BestPredictorRow struct {
	User     model.User
	Matches  int
	AvgError float64
}

// BestPredictor ranks users by average absolute error ascending. Users with
// no scored matches are excluded rather than shown with a zero average.
func BestPredictor(scorer *scoring.Scorer, users []model.User, matches []model.Match, effective map[resolve.Key]model.Revision) []BestPredictorRow {
	rows := make([]BestPredictorRow, 0, len(users))
	for _, u := range users {
		sum, n := 0, 0
		for _, m := range matches {
			rev, ok := effective[resolve.Key{User: u.ID, Match: m.ID}]
			if !ok || !m.Finished() {
				continue
			}
			b, err := scorer.Score(m, rev)
			if err != nil {
				continue
			}
			sum += b.AbsError
			n++
		}
		if n == 0 {
			continue
		}
		rows = append(rows, BestPredictorRow{User: u, Matches: n, AvgError: float64(sum) / float64(n)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AvgError != rows[j].AvgError {
			return rows[i].AvgError < rows[j].AvgError
		}
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}

// WorstMiss is one badly missed prediction.
type WorstMiss struct {
	User      model.User
	Match     model.Match
	Predicted model.Revision
	AbsError  int
}

// DefaultWorstMissLimit caps the worst-misses listing.
const DefaultWorstMissLimit = 50

// WorstMisses returns the top predictions by absolute error, worst first,
// most recent kickoff breaking ties. limit <= 0 applies the default cap.
func WorstMisses(scorer *scoring.Scorer, users []model.User, matches []model.Match, effective map[resolve.Key]model.Revision, limit int) []WorstMiss {
	if limit <= 0 {
		limit = DefaultWorstMissLimit
	}
	byID := make(map[model.UserID]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	misses := make([]WorstMiss, 0, len(effective))
	for _, m := range matches {
		if !m.Finished() {
			continue
		}
		for _, u := range users {
			rev, ok := effective[resolve.Key{User: u.ID, Match: m.ID}]
			if !ok {
				continue
			}
			b, err := scorer.Score(m, rev)
			if err != nil {
				continue
			}
			misses = append(misses, WorstMiss{User: byID[u.ID], Match: m, Predicted: rev, AbsError: b.AbsError})
		}
	}
	sort.SliceStable(misses, func(i, j int) bool {
		if misses[i].AbsError != misses[j].AbsError {
			return misses[i].AbsError > misses[j].AbsError
		}
		return misses[i].Match.Kickoff.After(misses[j].Match.Kickoff)
	})
	if len(misses) > limit {
		misses = misses[:limit]
	}
	return misses
}
