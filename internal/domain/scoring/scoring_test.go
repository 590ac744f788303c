package scoring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer with default points", t, func() {
		scorer := scoring.New()
		kickoff := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
		match := model.Match{
			ID:        1,
			EditionID: 1,
			Opponent:  "Racing",
			Kickoff:   kickoff,
			HomeGoals: intPtr(2),
			AwayGoals: intPtr(1),
		}

		Convey("When the prediction nails the exact score", func() {
			rev := model.Revision{UserID: 1, MatchID: 1, Home: 2, Away: 1, SubmittedAt: kickoff.Add(-2 * time.Hour)}
			b, err := scorer.Score(match, rev)

			Convey("Then all three components award points", func() {
				So(err, ShouldBeNil)
				So(b.Points, ShouldEqual, 9)
				So(b.HomeHit, ShouldBeTrue)
				So(b.AwayHit, ShouldBeTrue)
				So(b.OutcomeHit, ShouldBeTrue)
				So(b.Exact(), ShouldBeTrue)
				So(b.AbsError, ShouldEqual, 0)
				So(b.Anticipation, ShouldEqual, 2*time.Hour)
			})
		})

		Convey("When only the result direction is guessed", func() {
			// 3-0 predicted against an actual 2-1: both goal counts miss,
			// the win call lands.
			rev := model.Revision{UserID: 2, MatchID: 1, Home: 3, Away: 0, SubmittedAt: kickoff.Add(-time.Hour)}
			b, err := scorer.Score(match, rev)

			Convey("Then a single component scores", func() {
				So(err, ShouldBeNil)
				So(b.Points, ShouldEqual, 3)
				So(b.HomeHit, ShouldBeFalse)
				So(b.AwayHit, ShouldBeFalse)
				So(b.OutcomeHit, ShouldBeTrue)
				So(b.AbsError, ShouldEqual, 2)
			})
		})

		Convey("When one goal count hits but the direction misses", func() {
			// 1-1 predicted against 2-1: away goals match, draw call misses.
			rev := model.Revision{UserID: 3, MatchID: 1, Home: 1, Away: 1, SubmittedAt: kickoff.Add(-time.Hour)}
			b, err := scorer.Score(match, rev)

			Convey("Then only the matched count scores", func() {
				So(err, ShouldBeNil)
				So(b.Points, ShouldEqual, 3)
				So(b.AwayHit, ShouldBeTrue)
				So(b.OutcomeHit, ShouldBeFalse)
				So(b.Scored(), ShouldBeTrue)
			})
		})

		Convey("When everything misses", func() {
			rev := model.Revision{UserID: 4, MatchID: 1, Home: 0, Away: 3, SubmittedAt: kickoff.Add(-time.Hour)}
			b, err := scorer.Score(match, rev)

			Convey("Then the breakdown is zero points with the full error", func() {
				So(err, ShouldBeNil)
				So(b.Points, ShouldEqual, 0)
				So(b.Scored(), ShouldBeFalse)
				So(b.AbsError, ShouldEqual, 4)
			})
		})

		Convey("When the submission postdates kickoff", func() {
			rev := model.Revision{UserID: 5, MatchID: 1, Home: 2, Away: 1, SubmittedAt: kickoff.Add(45 * time.Minute)}
			b, err := scorer.Score(match, rev)

			Convey("Then the anticipation is reported negative, unclamped", func() {
				So(err, ShouldBeNil)
				So(b.Anticipation, ShouldEqual, -45*time.Minute)
			})
		})

		Convey("When the match has no recorded result", func() {
			unplayed := model.Match{ID: 2, EditionID: 1, Kickoff: kickoff}
			rev := model.Revision{UserID: 1, MatchID: 2, Home: 1, Away: 0, SubmittedAt: kickoff.Add(-time.Hour)}
			_, err := scorer.Score(unplayed, rev)

			Convey("Then a malformed-input error identifies the record", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, scoring.ErrMalformedInput), ShouldBeTrue)
				var mErr *scoring.MalformedInputError
				So(errors.As(err, &mErr), ShouldBeTrue)
				So(mErr.MatchID, ShouldEqual, model.MatchID(2))
				So(mErr.UserID, ShouldEqual, model.UserID(1))
			})
		})
	})

	Convey("Given a scorer with custom points per hit", t, func() {
		scorer := scoring.New(scoring.WithPointsPerHit(5))

		Convey("Then the per-match ceiling scales with it", func() {
			So(scorer.MaxPoints(), ShouldEqual, 15)
		})

		Convey("When scoring an exact guess", func() {
			kickoff := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
			match := model.Match{ID: 1, EditionID: 1, Kickoff: kickoff, HomeGoals: intPtr(1), AwayGoals: intPtr(0)}
			rev := model.Revision{UserID: 1, MatchID: 1, Home: 1, Away: 0, SubmittedAt: kickoff.Add(-time.Hour)}
			b, err := scorer.Score(match, rev)

			Convey("Then the configured points apply per component", func() {
				So(err, ShouldBeNil)
				So(b.Points, ShouldEqual, 15)
			})
		})
	})
}

func TestOutcomeOf(t *testing.T) {
	Convey("Given goal differences", t, func() {
		Convey("Then the sign maps to win, draw and loss", func() {
			So(model.OutcomeOf(2, 0), ShouldEqual, model.Win)
			So(model.OutcomeOf(1, 1), ShouldEqual, model.Draw)
			So(model.OutcomeOf(0, 4), ShouldEqual, model.Loss)
		})
	})
}
