// Package rank defines the total order used for every leaderboard.
//
// The comparison tuple, ascending (lower sorts first, i.e. better rank):
//
//	(-points, -matches counted, avg error, -avg anticipation)
//
// More points wins; with equal points, more matches at risk wins; then the
// lower average error; then the earlier average commitment.
package rank

import (
	"sort"

	"github.com/okian/prode/internal/domain/aggregate"
	"github.com/okian/prode/internal/domain/model"
)

// defaultWorstAvgError is the sort value for users with no counted matches,
// placing them behind every actual scorer without special-casing the
// comparator.
const defaultWorstAvgError = 999.0

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithWorstAvgError overrides the sort penalty for users without matches.
func WithWorstAvgError(v float64) Option {
	return func(r *Ranker) {
		if v > 0 {
			r.worstAvgError = v
		}
	}
}

// Row is one ranked leaderboard line. Users tied on the full tuple share the
// same Rank; the next distinct tuple continues at the next integer (dense
// ranking).
type Row struct {
	User   model.User
	Totals aggregate.Totals
	Rank   int
}

// Ranker orders users by the leaderboard tuple.
type Ranker struct {
	worstAvgError float64
}

// New creates a Ranker with configuration options.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		worstAvgError: defaultWorstAvgError,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// key is the materialized comparison tuple.
type key struct {
	points          int
	matches         int
	avgError        float64
	avgAnticipation float64
}

func (r *Ranker) keyOf(t aggregate.Totals) key {
	k := key{
		points:   t.Points,
		matches:  t.Matches,
		avgError: r.worstAvgError,
	}
	if avg, ok := t.AvgError(); ok {
		k.avgError = avg
	}
	if avg, ok := t.AvgAnticipationSeconds(); ok {
		k.avgAnticipation = avg
	}
	return k
}

func less(a, b key) bool {
	if a.points != b.points {
		return a.points > b.points
	}
	if a.matches != b.matches {
		return a.matches > b.matches
	}
	if a.avgError != b.avgError {
		return a.avgError < b.avgError
	}
	return a.avgAnticipation > b.avgAnticipation
}

// Order ranks every given user. Users missing from totals rank with zero
// totals and the worst-case error penalty rather than being dropped, so a
// participant who never predicted still appears at the bottom.
func (r *Ranker) Order(users []model.User, totals map[model.UserID]aggregate.Totals) []Row {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{User: u, Totals: totals[u.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ki, kj := r.keyOf(rows[i].Totals), r.keyOf(rows[j].Totals)
		if ki != kj {
			return less(ki, kj)
		}
		return rows[i].User.Name < rows[j].User.Name
	})

	// Dense rank: ties share a position, the next distinct tuple takes the
	// next integer.
	var prev key
	pos := 0
	for i := range rows {
		k := r.keyOf(rows[i].Totals)
		if i == 0 || k != prev {
			pos++
			prev = k
		}
		rows[i].Rank = pos
	}
	return rows
}

// Positions maps every user to its dense rank, for callers that only need
// the position lookup.
func (r *Ranker) Positions(users []model.User, totals map[model.UserID]aggregate.Totals) map[model.UserID]int {
	rows := r.Order(users, totals)
	out := make(map[model.UserID]int, len(rows))
	for _, row := range rows {
		out[row.User.ID] = row.Rank
	}
	return out
}
