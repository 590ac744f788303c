package classify

import (
	"sort"

	"github.com/okian/prode/internal/domain/aggregate"
	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
	"github.com/okian/prode/internal/domain/scoring"
)

// TrophyRow is a user's count of edition titles.
type TrophyRow struct {
	User     model.User
	Trophies int
}

// titleKey is the edition-title comparison tuple. It differs from the
// regular leaderboard order: anticipation outranks error, and the final
// tie-break is how few revisions per match the user needed.
type titleKey struct {
	points          int
	matches         int
	avgAnticipation float64
	perMatch        float64
}

func titleLess(a, b titleKey) bool {
	if a.points != b.points {
		return a.points > b.points
	}
	if a.matches != b.matches {
		return a.matches > b.matches
	}
	if a.avgAnticipation != b.avgAnticipation {
		return a.avgAnticipation > b.avgAnticipation
	}
	return a.perMatch < b.perMatch
}

// Trophies counts, per user, how many concluded editions the user won.
// Users tied on the full title tuple at the top of an edition all take a
// trophy for it. Every user appears in the output, champions or not.
func Trophies(
	scorer *scoring.Scorer,
	users []model.User,
	editions []model.Edition,
	matches []model.Match,
	effective map[resolve.Key]model.Revision,
	counts map[resolve.Key]int,
) []TrophyRow {
	trophies := make(map[model.UserID]int, len(users))

	matchEdition := make(map[model.MatchID]model.EditionID, len(matches))
	for _, m := range matches {
		matchEdition[m.ID] = m.EditionID
	}

	for _, ed := range editions {
		if !ed.Concluded {
			continue
		}

		totals := make(map[model.UserID]aggregate.Totals)
		for _, m := range matches {
			if m.EditionID != ed.ID || !m.Finished() {
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
				next, _ := aggregate.Step(totals[u.ID], m, b)
				totals[u.ID] = next
			}
		}
		if len(totals) == 0 {
			continue
		}

		// Revision volume per user across the whole edition, finished
		// or not, for the efficiency tie-break.
		attempts := make(map[model.UserID]int)
		for k, n := range counts {
			if matchEdition[k.Match] == ed.ID {
				attempts[k.User] += n
			}
		}

		keys := make(map[model.UserID]titleKey, len(totals))
		var champion titleKey
		first := true
		for uid, t := range totals {
			k := titleKey{points: t.Points, matches: t.Matches}
			if avg, ok := t.AvgAnticipationSeconds(); ok {
				k.avgAnticipation = avg
			}
			if t.Matches > 0 {
				k.perMatch = float64(attempts[uid]) / float64(t.Matches)
			}
			keys[uid] = k
			if first || titleLess(k, champion) {
				champion = k
				first = false
			}
		}
		for uid, k := range keys {
			if k == champion {
				trophies[uid]++
			}
		}
	}

	rows := make([]TrophyRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, TrophyRow{User: u, Trophies: trophies[u.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Trophies != rows[j].Trophies {
			return rows[i].Trophies > rows[j].Trophies
		}
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}
