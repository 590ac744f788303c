package classify

import (
	"math"
	"sort"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
)

// Firmness categories by revision count on a finished match.
type Firmness string

// Firmness labels.
const (
	FirmnessNone     Firmness = "non_participating" // zero revisions
	FirmnessFirm     Firmness = "firm"              // exactly one
	FirmnessHesitant Firmness = "hesitant"          // exactly two
	FirmnessVolatile Firmness = "volatile"          // three or more
)

// FirmnessOf maps a revision count to its category.
func FirmnessOf(revisions int) Firmness {
	switch {
	case revisions <= 0:
		return FirmnessNone
	case revisions == 1:
		return FirmnessFirm
	case revisions == 2:
		return FirmnessHesitant
	default:
		return FirmnessVolatile
	}
}

// FirmnessRow is one user's revision-count distribution over the finished
// matches in scope, as counts and as percentages of the match total.
type FirmnessRow struct {
	User    model.User
	Matches int

	Counts   map[Firmness]int
	Percents map[Firmness]float64

	// Dominant is the category covering the most matches; ties resolve
	// toward the steadier category.
	Dominant Firmness
}

// firmnessOrder resolves dominance ties toward the steadier end.
var firmnessOrder = []Firmness{FirmnessFirm, FirmnessHesitant, FirmnessVolatile, FirmnessNone}

// FirmnessDistribution classifies every finished match in scope by how many
// revisions the user submitted for it and aggregates per-user percentage
// distributions. Users are listed even when they never predicted: an all
// non-participating distribution is itself informative here, unlike the
// other classifiers.
func FirmnessDistribution(users []model.User, matches []model.Match, counts map[resolve.Key]int) []FirmnessRow {
	rows := make([]FirmnessRow, 0, len(users))
	for _, u := range users {
		row := FirmnessRow{
			User:     u,
			Counts:   make(map[Firmness]int, 4),
			Percents: make(map[Firmness]float64, 4),
		}
		for _, m := range matches {
			if !m.Finished() {
				continue
			}
			row.Matches++
			row.Counts[FirmnessOf(counts[resolve.Key{User: u.ID, Match: m.ID}])]++
		}
		if row.Matches > 0 {
			for cat, n := range row.Counts {
				pct := 100 * float64(n) / float64(row.Matches)
				row.Percents[cat] = math.Round(pct*100) / 100
			}
		}
		row.Dominant = FirmnessNone
		best := -1
		for _, cat := range firmnessOrder {
			if n := row.Counts[cat]; n > best {
				best = n
				row.Dominant = cat
			}
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}
