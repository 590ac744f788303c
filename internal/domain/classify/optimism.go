// Package classify derives behavioral metrics from a user's prediction
// history: optimism bias, firmness, conditional accuracy ("mufa" and false
// prophet), prediction style, stability and trophy counts.
//
// Every classifier excludes users with zero qualifying matches from its
// listing instead of showing them as zero.
package classify

import (
	"sort"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
)

// Band labels the optimism index by fixed thresholds.
type Band string

// Optimism bands.
const (
	BandVeryOptimistic  Band = "very_optimistic"
	BandOptimistic      Band = "optimistic"
	BandNeutral         Band = "neutral"
	BandPessimistic     Band = "pessimistic"
	BandVeryPessimistic Band = "very_pessimistic"
)

// Band thresholds. Exactly +0.5 is optimistic, exactly -0.5 pessimistic.
const (
	bandStrong = 1.5
	bandMild   = 0.5
)

// BandOf buckets an index value.
func BandOf(index float64) Band {
	switch {
	case index >= bandStrong:
		return BandVeryOptimistic
	case index >= bandMild:
		return BandOptimistic
	case index > -bandMild:
		return BandNeutral
	case index > -bandStrong:
		return BandPessimistic
	default:
		return BandVeryPessimistic
	}
}

// OptimismRow is one user's optimism index over the scope.
type OptimismRow struct {
	User    model.User
	Index   float64
	Band    Band
	Matches int
}

// Optimism computes the mean of (predicted goal difference - actual goal
// difference) per user across the finished matches. Positive means the user
// expects rosier results than reality delivers.
func Optimism(users []model.User, matches []model.Match, effective map[resolve.Key]model.Revision) []OptimismRow {
	rows := make([]OptimismRow, 0, len(users))
	for _, u := range users {
		sum, n := 0.0, 0
		for _, m := range matches {
			rev, ok := effective[resolve.Key{User: u.ID, Match: m.ID}]
			if !ok || !m.Finished() {
				continue
			}
			predDiff := rev.Home - rev.Away
			actualDiff := *m.HomeGoals - *m.AwayGoals
			sum += float64(predDiff - actualDiff)
			n++
		}
		if n == 0 {
			continue
		}
		idx := sum / float64(n)
		rows = append(rows, OptimismRow{User: u, Index: idx, Band: BandOf(idx), Matches: n})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Index != rows[j].Index {
			return rows[i].Index > rows[j].Index
		}
		return rows[i].User.Name < rows[j].User.Name
	})
	return rows
}
