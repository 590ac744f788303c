package classify_test

import (
	"testing"
	"time"

	"github.com/okian/prode/internal/domain/classify"
	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/resolve"
	"github.com/okian/prode/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStyle(t *testing.T) {
	Convey("Given three finished matches and one predictor", t, func() {
		k := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
		matches := []model.Match{
			finished(1, 1, k, 1, 0),
			finished(2, 1, k.AddDate(0, 0, 7), 1, 0),
			finished(3, 1, k.AddDate(0, 0, 14), 1, 0),
		}
		users := []model.User{{ID: 1, Name: "ana"}}
		effective := resolve.Effective([]model.Revision{
			{ID: 1, UserID: 1, MatchID: 1, Home: 2, Away: 0, SubmittedAt: k.Add(-time.Hour)},
			{ID: 2, UserID: 1, MatchID: 2, Home: 1, Away: 1, SubmittedAt: k.Add(-time.Hour)},
		})

		Convey("When tallying the style", func() {
			rows := classify.Style(users, matches, effective)

			Convey("Then calls and gaps are counted separately", func() {
				So(rows, ShouldHaveLength, 1)
				So(rows[0].Matches, ShouldEqual, 3)
				So(rows[0].PredictedWin, ShouldEqual, 1)
				So(rows[0].PredictedDraw, ShouldEqual, 1)
				So(rows[0].PredictedLoss, ShouldEqual, 0)
				So(rows[0].NoPrediction, ShouldEqual, 1)
			})
		})
	})
}

func TestStability(t *testing.T) {
	Convey("Given revision counts over two finished matches", t, func() {
		k := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
		matches := []model.Match{
			finished(1, 1, k, 1, 0),
			finished(2, 1, k.AddDate(0, 0, 7), 1, 0),
		}
		users := []model.User{{ID: 1, Name: "ana"}, {ID: 2, Name: "bruno"}}
		counts := map[resolve.Key]int{
			{User: 1, Match: 1}: 3,
			{User: 1, Match: 2}: 1,
		}

		Convey("When computing stability", func() {
			rows := classify.Stability(users, matches, counts)

			Convey("Then the ratio divides revisions by predicted matches", func() {
				So(rows, ShouldHaveLength, 1)
				So(rows[0].User.Name, ShouldEqual, "ana")
				So(rows[0].PredictedMatches, ShouldEqual, 2)
				So(rows[0].Revisions, ShouldEqual, 4)
				So(rows[0].PerMatch, ShouldEqual, 2.0)
			})
		})
	})
}

func TestBestPredictorAndWorstMisses(t *testing.T) {
	Convey("Given two finished matches and two users", t, func() {
		scorer := scoring.New()
		k := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
		matches := []model.Match{
			finished(1, 1, k, 2, 1),
			finished(2, 1, k.AddDate(0, 0, 7), 0, 0),
		}
		users := []model.User{{ID: 1, Name: "ana"}, {ID: 2, Name: "bruno"}}
		effective := resolve.Effective([]model.Revision{
			{ID: 1, UserID: 1, MatchID: 1, Home: 2, Away: 1, SubmittedAt: k.Add(-time.Hour)}, // error 0
			{ID: 2, UserID: 1, MatchID: 2, Home: 1, Away: 0, SubmittedAt: k.Add(-time.Hour)}, // error 1
			{ID: 3, UserID: 2, MatchID: 1, Home: 0, Away: 4, SubmittedAt: k.Add(-time.Hour)}, // error 5
		})

		Convey("When ranking best predictors", func() {
			rows := classify.BestPredictor(scorer, users, matches, effective)

			Convey("Then the lower mean error ranks first", func() {
				So(rows, ShouldHaveLength, 2)
				So(rows[0].User.Name, ShouldEqual, "ana")
				So(rows[0].AvgError, ShouldEqual, 0.5)
				So(rows[1].User.Name, ShouldEqual, "bruno")
				So(rows[1].AvgError, ShouldEqual, 5.0)
			})
		})

		Convey("When listing worst misses", func() {
			misses := classify.WorstMisses(scorer, users, matches, effective, 0)

			Convey("Then the largest error leads the list", func() {
				So(misses, ShouldHaveLength, 3)
				So(misses[0].User.Name, ShouldEqual, "bruno")
				So(misses[0].AbsError, ShouldEqual, 5)
			})
		})

		Convey("When the limit is smaller than the candidate set", func() {
			misses := classify.WorstMisses(scorer, users, matches, effective, 1)

			Convey("Then only the worst entries survive", func() {
				So(misses, ShouldHaveLength, 1)
				So(misses[0].AbsError, ShouldEqual, 5)
			})
		})
	})
}

func TestTrophies(t *testing.T) {
	Convey("Given one concluded and one running edition", t, func() {
		scorer := scoring.New()
		k := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
		editions := []model.Edition{
			{ID: 1, Tournament: "Apertura", Year: 2024, Concluded: true},
			{ID: 2, Tournament: "Clausura", Year: 2024, Concluded: false},
		}
		matches := []model.Match{
			finished(1, 1, k, 2, 1),
			finished(2, 2, k.AddDate(0, 6, 0), 1, 0),
		}
		users := []model.User{{ID: 1, Name: "ana"}, {ID: 2, Name: "bruno"}}

		Convey("When only one user scores in the concluded edition", func() {
			revs := []model.Revision{
				{ID: 1, UserID: 1, MatchID: 1, Home: 2, Away: 1, SubmittedAt: k.Add(-time.Hour)},
				{ID: 2, UserID: 2, MatchID: 1, Home: 0, Away: 3, SubmittedAt: k.Add(-time.Hour)},
				// bruno dominates the running edition; it must not count.
				{ID: 3, UserID: 2, MatchID: 2, Home: 1, Away: 0, SubmittedAt: k.AddDate(0, 6, -1)},
			}
			rows := classify.Trophies(scorer, users, editions, matches, resolve.Effective(revs), resolve.Count(revs))

			Convey("Then only the concluded edition awards a trophy", func() {
				So(rows[0].User.Name, ShouldEqual, "ana")
				So(rows[0].Trophies, ShouldEqual, 1)
				So(rows[1].User.Name, ShouldEqual, "bruno")
				So(rows[1].Trophies, ShouldEqual, 0)
			})
		})

		Convey("When two users tie on the full title tuple", func() {
			// Identical predictions submitted with the same anticipation
			// and the same revision volume.
			revs := []model.Revision{
				{ID: 1, UserID: 1, MatchID: 1, Home: 2, Away: 1, SubmittedAt: k.Add(-time.Hour)},
				{ID: 2, UserID: 2, MatchID: 1, Home: 2, Away: 1, SubmittedAt: k.Add(-time.Hour)},
			}
			rows := classify.Trophies(scorer, users, editions, matches, resolve.Effective(revs), resolve.Count(revs))

			Convey("Then both take the trophy", func() {
				So(rows[0].Trophies, ShouldEqual, 1)
				So(rows[1].Trophies, ShouldEqual, 1)
			})
		})
	})
}
