package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/prode/internal/adapters/repository"
	"github.com/okian/prode/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func seededStore() *repository.MemStore {
	k2023 := time.Date(2023, 3, 12, 17, 0, 0, 0, time.UTC)
	k2024 := time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC)
	return repository.NewMemStore(
		repository.WithUsers(
			model.User{ID: 1, Name: "ana"},
			model.User{ID: 2, Name: "bruno"},
		),
		repository.WithEditions(
			model.Edition{ID: 1, Tournament: "Apertura", Year: 2023, Concluded: true},
			model.Edition{ID: 2, Tournament: "Apertura", Year: 2024},
		),
		repository.WithMatches(
			// Deliberately out of kickoff order; the store must sort.
			model.Match{ID: 2, EditionID: 2, Opponent: "Racing", Kickoff: k2024, HomeGoals: intPtr(1), AwayGoals: intPtr(1)},
			model.Match{ID: 1, EditionID: 1, Opponent: "Lanús", Kickoff: k2023, HomeGoals: intPtr(2), AwayGoals: intPtr(0)},
			model.Match{ID: 3, EditionID: 2, Opponent: "Vélez", Kickoff: k2024.AddDate(0, 0, 7)},
			// Season closer of the 2023 edition, played the next January.
			model.Match{ID: 4, EditionID: 1, Opponent: "Huracán", Kickoff: time.Date(2024, 1, 14, 17, 0, 0, 0, time.UTC), HomeGoals: intPtr(3), AwayGoals: intPtr(1)},
		),
		repository.WithRevisions(
			model.Revision{ID: 1, UserID: 1, MatchID: 1, Home: 2, Away: 0, SubmittedAt: k2023.Add(-time.Hour)},
			model.Revision{ID: 2, UserID: 1, MatchID: 2, Home: 1, Away: 1, SubmittedAt: k2024.Add(-time.Hour)},
			model.Revision{ID: 3, UserID: 2, MatchID: 3, Home: 0, Away: 0, SubmittedAt: k2024.Add(-time.Hour)},
		),
	)
}

func TestMemStoreListing(t *testing.T) {
	Convey("Given a seeded in-memory store", t, func() {
		ctx := context.Background()
		store := seededStore()

		Convey("When listing matches all-time", func() {
			matches, err := store.ListMatches(ctx, model.AllTime())

			Convey("Then everything comes back in kickoff order", func() {
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 4)
				So(matches[0].ID, ShouldEqual, model.MatchID(1))
				So(matches[1].ID, ShouldEqual, model.MatchID(4))
				So(matches[3].ID, ShouldEqual, model.MatchID(3))
			})
		})

		Convey("When listing finished matches for one edition", func() {
			matches, err := store.ListFinishedMatches(ctx, model.ForEdition(2))

			Convey("Then the unplayed fixture is excluded", func() {
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 1)
				So(matches[0].ID, ShouldEqual, model.MatchID(2))
			})
		})

		Convey("When listing by season year", func() {
			matches, err := store.ListMatches(ctx, model.ForYear(2023))

			Convey("Then fixtures follow their edition's year, kickoff date aside", func() {
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 2)
				So(matches[0].Opponent, ShouldEqual, "Lanús")
				// The closer kicked off in January 2024 but belongs to
				// the 2023 edition.
				So(matches[1].Opponent, ShouldEqual, "Huracán")
			})

			Convey("Then the kickoff year alone qualifies nothing", func() {
				next, err := store.ListMatches(ctx, model.ForYear(2024))
				So(err, ShouldBeNil)
				// The January closer kicked off in 2024 yet stays out.
				So(next, ShouldHaveLength, 2)
				So(next[0].ID, ShouldEqual, model.MatchID(2))
				So(next[1].ID, ShouldEqual, model.MatchID(3))
			})
		})

		Convey("When listing revisions scoped to an edition", func() {
			revs, err := store.ListRevisions(ctx, model.ForEdition(2))

			Convey("Then revisions for other editions are filtered out", func() {
				So(err, ShouldBeNil)
				So(revs, ShouldHaveLength, 2)
				So(revs[0].ID, ShouldEqual, int64(2))
				So(revs[1].ID, ShouldEqual, int64(3))
			})
		})

		Convey("When asking for counts", func() {
			counts, err := store.Counts(ctx)

			Convey("Then finished matches are tallied separately", func() {
				So(err, ShouldBeNil)
				So(counts.Users, ShouldEqual, 2)
				So(counts.Editions, ShouldEqual, 2)
				So(counts.Matches, ShouldEqual, 4)
				So(counts.FinishedMatches, ShouldEqual, 3)
				So(counts.Revisions, ShouldEqual, 3)
			})
		})
	})
}

func TestMemStoreMutation(t *testing.T) {
	Convey("Given a seeded in-memory store", t, func() {
		ctx := context.Background()
		store := seededStore()

		Convey("When adding a revision without an ID", func() {
			rev := store.AddRevision(model.Revision{
				UserID:      2,
				MatchID:     2,
				Home:        2,
				Away:        2,
				SubmittedAt: time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC),
			})

			Convey("Then the next free ID is assigned", func() {
				So(rev.ID, ShouldEqual, int64(4))
				revs, err := store.ListRevisions(ctx, model.AllTime())
				So(err, ShouldBeNil)
				So(revs, ShouldHaveLength, 4)
			})
		})

		Convey("When recording a result for the pending fixture", func() {
			ok := store.SetResult(3, 0, 2)

			Convey("Then the match turns up in the finished listing", func() {
				So(ok, ShouldBeTrue)
				matches, err := store.ListFinishedMatches(ctx, model.ForEdition(2))
				So(err, ShouldBeNil)
				So(matches, ShouldHaveLength, 2)
			})
		})

		Convey("When recording a result for an unknown match", func() {
			ok := store.SetResult(99, 1, 1)

			Convey("Then the store reports the miss", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}
