package model_test

import (
	"testing"
	"time"

	"github.com/okian/prode/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMatchState(t *testing.T) {
	Convey("Given a match", t, func() {
		home, away := 2, 1

		Convey("When both goals are recorded", func() {
			m := model.Match{HomeGoals: &home, AwayGoals: &away}

			Convey("Then it counts as finished", func() {
				So(m.Finished(), ShouldBeTrue)
			})
		})

		Convey("When either goal is missing", func() {
			So(model.Match{HomeGoals: &home}.Finished(), ShouldBeFalse)
			So(model.Match{AwayGoals: &away}.Finished(), ShouldBeFalse)
			So(model.Match{}.Finished(), ShouldBeFalse)
		})

		Convey("When the kickoff carries a time of day", func() {
			m := model.Match{Kickoff: time.Date(2024, 3, 10, 17, 30, 0, 0, time.UTC)}

			Convey("Then the hour counts as announced", func() {
				So(m.KickoffAnnounced(), ShouldBeTrue)
			})
		})

		Convey("When the kickoff sits exactly at midnight", func() {
			m := model.Match{Kickoff: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)}

			Convey("Then the hour counts as to-be-confirmed", func() {
				So(m.KickoffAnnounced(), ShouldBeFalse)
			})
		})
	})
}

func TestScope(t *testing.T) {
	Convey("Given matches from editions held in different years", t, func() {
		m2023 := model.Match{EditionID: 1, Kickoff: time.Date(2023, 5, 1, 17, 0, 0, 0, time.UTC)}
		m2024 := model.Match{EditionID: 2, Kickoff: time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)}

		Convey("Then the all-time scope contains everything", func() {
			So(model.AllTime().IsAllTime(), ShouldBeTrue)
			So(model.AllTime().Contains(m2023, 2023), ShouldBeTrue)
			So(model.AllTime().Contains(m2024, 2024), ShouldBeTrue)
		})

		Convey("Then the edition scope filters by edition", func() {
			So(model.ForEdition(1).Contains(m2023, 2023), ShouldBeTrue)
			So(model.ForEdition(1).Contains(m2024, 2024), ShouldBeFalse)
		})

		Convey("Then the year scope follows the edition's year", func() {
			So(model.ForYear(2024).Contains(m2024, 2024), ShouldBeTrue)
			So(model.ForYear(2024).Contains(m2023, 2023), ShouldBeFalse)
		})

		Convey("When a season closer kicks off in the following January", func() {
			closer := model.Match{EditionID: 2, Kickoff: time.Date(2025, 1, 12, 17, 0, 0, 0, time.UTC)}

			Convey("Then it stays inside its edition's year", func() {
				So(model.ForYear(2024).Contains(closer, 2024), ShouldBeTrue)
				So(model.ForYear(2025).Contains(closer, 2024), ShouldBeFalse)
			})
		})
	})
}
