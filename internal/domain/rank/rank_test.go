package rank_test

import (
	"testing"
	"time"

	"github.com/okian/prode/internal/domain/aggregate"
	"github.com/okian/prode/internal/domain/model"
	"github.com/okian/prode/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func users(names ...string) []model.User {
	out := make([]model.User, 0, len(names))
	for i, n := range names {
		out = append(out, model.User{ID: model.UserID(i + 1), Name: n})
	}
	return out
}

func TestOrder(t *testing.T) {
	Convey("Given a ranker with defaults", t, func() {
		ranker := rank.New()

		Convey("When points differ", func() {
			rows := ranker.Order(users("ana", "bruno"), map[model.UserID]aggregate.Totals{
				1: {Points: 12, Matches: 4, ErrorSum: 8},
				2: {Points: 21, Matches: 4, ErrorSum: 12},
			})

			Convey("Then more points ranks first regardless of error", func() {
				So(rows[0].User.Name, ShouldEqual, "bruno")
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[1].Rank, ShouldEqual, 2)
			})
		})

		Convey("When points tie but matches counted differ", func() {
			rows := ranker.Order(users("ana", "bruno"), map[model.UserID]aggregate.Totals{
				1: {Points: 12, Matches: 3, ErrorSum: 1},
				2: {Points: 12, Matches: 5, ErrorSum: 9},
			})

			Convey("Then more matches at risk ranks first", func() {
				So(rows[0].User.Name, ShouldEqual, "bruno")
			})
		})

		Convey("When points and matches tie but error differs", func() {
			rows := ranker.Order(users("ana", "bruno"), map[model.UserID]aggregate.Totals{
				1: {Points: 12, Matches: 4, ErrorSum: 10},
				2: {Points: 12, Matches: 4, ErrorSum: 6},
			})

			Convey("Then the lower average error ranks first", func() {
				So(rows[0].User.Name, ShouldEqual, "bruno")
			})
		})

		Convey("When only anticipation differs", func() {
			rows := ranker.Order(users("ana", "bruno"), map[model.UserID]aggregate.Totals{
				1: {Points: 12, Matches: 4, ErrorSum: 6, AnticipationSum: 4 * time.Hour, AnticipationN: 4},
				2: {Points: 12, Matches: 4, ErrorSum: 6, AnticipationSum: 40 * time.Hour, AnticipationN: 4},
			})

			Convey("Then the earlier average commitment ranks first", func() {
				So(rows[0].User.Name, ShouldEqual, "bruno")
			})
		})

		Convey("When the full tuple ties", func() {
			rows := ranker.Order(users("zoe", "ana"), map[model.UserID]aggregate.Totals{
				1: {Points: 9, Matches: 3, ErrorSum: 4},
				2: {Points: 9, Matches: 3, ErrorSum: 4},
			})

			Convey("Then both share the position, listed by name", func() {
				So(rows[0].User.Name, ShouldEqual, "ana")
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[1].User.Name, ShouldEqual, "zoe")
				So(rows[1].Rank, ShouldEqual, 1)
			})
		})

		Convey("When a tie is followed by a distinct tuple", func() {
			rows := ranker.Order(users("ana", "bruno", "carla"), map[model.UserID]aggregate.Totals{
				1: {Points: 9, Matches: 3, ErrorSum: 4},
				2: {Points: 9, Matches: 3, ErrorSum: 4},
				3: {Points: 6, Matches: 3, ErrorSum: 4},
			})

			Convey("Then ranking is dense: 1, 1, 2", func() {
				So(rows[0].Rank, ShouldEqual, 1)
				So(rows[1].Rank, ShouldEqual, 1)
				So(rows[2].Rank, ShouldEqual, 2)
			})
		})

		Convey("When a user never predicted anything", func() {
			rows := ranker.Order(users("ana", "bruno"), map[model.UserID]aggregate.Totals{
				1: {Points: 0, Matches: 2, ErrorSum: 12},
			})

			Convey("Then the absent user still appears, behind every scorer", func() {
				So(rows, ShouldHaveLength, 2)
				So(rows[0].User.Name, ShouldEqual, "ana")
				So(rows[1].User.Name, ShouldEqual, "bruno")
				So(rows[1].Totals.Matches, ShouldEqual, 0)
			})
		})
	})
}

func TestPositions(t *testing.T) {
	Convey("Given ordered users", t, func() {
		ranker := rank.New()
		totals := map[model.UserID]aggregate.Totals{
			1: {Points: 9, Matches: 3, ErrorSum: 2},
			2: {Points: 3, Matches: 3, ErrorSum: 2},
		}

		Convey("When asking for position lookups", func() {
			pos := ranker.Positions(users("ana", "bruno"), totals)

			Convey("Then every user maps to its dense rank", func() {
				So(pos[1], ShouldEqual, 1)
				So(pos[2], ShouldEqual, 2)
			})
		})
	})
}
