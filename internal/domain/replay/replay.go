// Package replay reconstructs the leaderboard history of one edition,
// match by match, for evolution charts.
//
// The simulation is an explicit left-fold: an immutable running-totals map
// is threaded through the chronological match list and a full re-rank is
// taken after every step. Same inputs, same series, always.
package replay

import (
	"github.com/okian/prode/internal/domain/aggregate"
	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/rank"
	"github.com/okian/prode/internal/domain/resolve"
	"github.com/okian/prode/internal/domain/scoring"
)

// Snapshot is one (rank, cumulative points) observation for one user after
// one finished match.
type Snapshot struct {
	Rank   int
	Points int
}

// Result is the full simulation output for the selected users.
type Result struct {
	// Steps equals the number of finished matches processed; every series
	// in Series has exactly this length.
	Steps    int
	Series   map[model.UserID][]Snapshot
	Warnings []model.Warning
}

// Simulate folds the finished matches of one edition in kickoff order and
// records, after each match, the dense rank and cumulative points of every
// user in subset. All users participate in the ranking even when only a
// subset is charted; everyone else still pushes the charted users around.
//
// Matches must be finished and sorted by kickoff ascending. An empty match
// list yields an empty (not nil) series per subset user.
func Simulate(
	scorer *scoring.Scorer,
	ranker *rank.Ranker,
	users []model.User,
	matches []model.Match,
	effective map[resolve.Key]model.Revision,
	subset []model.UserID,
) (Result, error) {
	known := make(map[model.UserID]bool, len(users))
	for _, u := range users {
		known[u.ID] = true
	}
	for _, id := range subset {
		if !known[id] {
			return Result{}, &UnknownUserError{UserID: id}
		}
	}

	res := Result{
		Steps:  len(matches),
		Series: make(map[model.UserID][]Snapshot, len(subset)),
	}
	for _, id := range subset {
		res.Series[id] = make([]Snapshot, 0, len(matches))
	}

	byMatch := aggregate.ByMatch(effective)
	running := make(map[model.UserID]aggregate.Totals, len(users))

	for _, m := range matches {
		if !m.Finished() {
			return Result{}, &scoring.MalformedInputError{
				MatchID: m.ID,
				Reason:  "replay over a match without recorded goals",
			}
		}
		for _, rev := range byMatch[m.ID] {
			if !known[rev.UserID] {
				continue
			}
			b, err := scorer.Score(m, rev)
			if err != nil {
				return Result{}, err
			}
			next, warn := aggregate.Step(running[rev.UserID], m, b)
			running[rev.UserID] = next
			if warn != nil {
				res.Warnings = append(res.Warnings, *warn)
			}
		}

		positions := ranker.Positions(users, running)
		for _, id := range subset {
			res.Series[id] = append(res.Series[id], Snapshot{
				Rank:   positions[id],
				Points: running[id].Points,
			})
		}
	}
	return res, nil
}
