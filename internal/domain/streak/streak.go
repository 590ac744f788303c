// Package streak computes runs of consecutive scoring matches.
//
// A match scores when the effective prediction earned strictly positive
// points; a match without any prediction breaks the run.
package streak

import (
	"sort"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
	"github.com/okian/prode/internal/domain/scoring"
)

// Current counts the run ending at the most recent match, walking the
// chronological sequence backwards until the first miss.
func Current(scored []bool) int {
	n := 0
	for i := len(scored) - 1; i >= 0; i-- {
		if !scored[i] {
			break
		}
		n++
	}
	return n
}

// Record is the longest run anywhere in the chronological sequence.
func Record(scored []bool) int {
	best, run := 0, 0
	for _, s := range scored {
		if !s {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// Outcomes builds, per user, the chronological scored flags over the given
// finished matches. Matches must already be sorted by kickoff ascending.
func Outcomes(scorer *scoring.Scorer, users []model.User, matches []model.Match, effective map[resolve.Key]model.Revision) map[model.UserID][]bool {
	out := make(map[model.UserID][]bool, len(users))
	for _, u := range users {
		flags := make([]bool, 0, len(matches))
		for _, m := range matches {
			rev, ok := effective[resolve.Key{User: u.ID, Match: m.ID}]
			scored := false
			if ok {
				if b, err := scorer.Score(m, rev); err == nil {
					scored = b.Scored()
				}
			}
			flags = append(flags, scored)
		}
		out[u.ID] = flags
	}
	return out
}

// Row is one user's streak length.
type Row struct {
	User   model.User
	Length int
}

// Rank orders streak rows by length descending, name ascending.
func Rank(users []model.User, lengths map[model.UserID]int) []Row {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{User: u, Length: lengths[u.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Length != rows[j].Length {
			return rows[i].Length > rows[j].Length
		}
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}
