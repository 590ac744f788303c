// Package scoring converts one finished match and one effective prediction
// into points, absolute goal error and anticipation time.
package scoring

import (
	"time"

	"github.com/okian/prode/internal/domain/model"
)

// Default scoring configuration constants.
const (
	// defaultPointsPerHit is awarded independently for each of the three
	// components: home goals, away goals and result direction.
	defaultPointsPerHit = 3
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithPointsPerHit overrides the points awarded per matched component.
func WithPointsPerHit(points int) Option {
	return func(s *Scorer) {
		if points > 0 {
			s.pointsPerHit = points
		}
	}
}

// Breakdown is the derived score for one (match, effective prediction) pair.
type Breakdown struct {
	UserID  model.UserID
	MatchID model.MatchID

	Points     int
	HomeHit    bool
	AwayHit    bool
	OutcomeHit bool

	AbsError int

	// Anticipation is kickoff minus submission. It can come out negative
	// on inconsistent data; callers decide how to report that, it is
	// never clamped here.
	Anticipation time.Duration
}

// Exact reports a perfectly guessed score.
func (b Breakdown) Exact() bool { return b.AbsError == 0 }

// Scored reports whether the prediction earned any points.
func (b Breakdown) Scored() bool { return b.Points > 0 }

// Scorer computes breakdowns. It is stateless apart from configuration and
// safe for concurrent use.
type Scorer struct {
	pointsPerHit int
}

// New creates a Scorer with configuration options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		pointsPerHit: defaultPointsPerHit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxPoints returns the ceiling a single match can award.
func (s *Scorer) MaxPoints() int { return 3 * s.pointsPerHit }

// Score computes the breakdown for one finished match and one revision.
// Returns a MalformedInputError when the match has no recorded result.
func (s *Scorer) Score(m model.Match, r model.Revision) (Breakdown, error) {
	if !m.Finished() {
		return Breakdown{}, &MalformedInputError{
			MatchID: m.ID,
			UserID:  r.UserID,
			Reason:  "finished match without recorded goals",
		}
	}

	ha, aa := *m.HomeGoals, *m.AwayGoals
	b := Breakdown{
		UserID:       r.UserID,
		MatchID:      m.ID,
		HomeHit:      ha == r.Home,
		AwayHit:      aa == r.Away,
		OutcomeHit:   model.OutcomeOf(ha, aa) == model.OutcomeOf(r.Home, r.Away),
		AbsError:     abs(ha-r.Home) + abs(aa-r.Away),
		Anticipation: m.Kickoff.Sub(r.SubmittedAt),
	}
	if b.HomeHit {
		b.Points += s.pointsPerHit
	}
	if b.AwayHit {
		b.Points += s.pointsPerHit
	}
	if b.OutcomeHit {
		b.Points += s.pointsPerHit
	}
	return b, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
