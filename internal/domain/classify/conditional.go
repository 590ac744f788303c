package classify

import (
	"math"
	"sort"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
)

// ConditionalRow is a conditional accuracy percentage restricted to the
// predictions that called one specific outcome.
type ConditionalRow struct {
	User model.User

	// Picks is how many effective predictions called the outcome.
	Picks int

	// Hits is how many of those the reality confirmed.
	Hits int

	// Pct is the row's headline percentage; its meaning depends on the
	// classifier (mufa: confirmed losses, false prophet: missed wins).
	Pct float64
}

// Mufa ranks users by how often a predicted loss came true: the user picked
// a defeat and the team really lost. Highest percentage first.
func Mufa(users []model.User, matches []model.Match, effective map[resolve.Key]model.Revision) []ConditionalRow {
	return conditional(users, matches, effective,
		func(rev model.Revision) bool { return rev.Home < rev.Away },
		func(m model.Match) bool { return *m.HomeGoals < *m.AwayGoals },
		func(picks, hits int) float64 { return pct(hits, picks) },
	)
}

// FalseProphet ranks users by how often a predicted win did NOT come true.
// Highest percentage of missed win calls first.
func FalseProphet(users []model.User, matches []model.Match, effective map[resolve.Key]model.Revision) []ConditionalRow {
	return conditional(users, matches, effective,
		func(rev model.Revision) bool { return rev.Home > rev.Away },
		func(m model.Match) bool { return *m.HomeGoals > *m.AwayGoals },
		func(picks, hits int) float64 { return pct(picks-hits, picks) },
	)
}

func conditional(
	users []model.User,
	matches []model.Match,
	effective map[resolve.Key]model.Revision,
	picked func(model.Revision) bool,
	happened func(model.Match) bool,
	headline func(picks, hits int) float64,
) []ConditionalRow {
	rows := make([]ConditionalRow, 0, len(users))
	for _, u := range users {
		var row ConditionalRow
		row.User = u
		for _, m := range matches {
			if !m.Finished() {
				continue
			}
			rev, ok := effective[resolve.Key{User: u.ID, Match: m.ID}]
			if !ok || !picked(rev) {
				continue
			}
			row.Picks++
			if happened(m) {
				row.Hits++
			}
		}
		if row.Picks == 0 {
			continue
		}
		row.Pct = headline(row.Picks, row.Hits)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Pct != rows[j].Pct {
			return rows[i].Pct > rows[j].Pct
		}
		if rows[i].Picks != rows[j].Picks {
			return rows[i].Picks > rows[j].Picks
		}
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	raw := 100 * float64(part) / float64(whole)
	return math.Round(raw*100) / 100
}
