// Package testdata produces deterministic pool fixtures for tests, demos and
// the seed command.
//
// Generation is driven by a seeded math/rand source, so the same seed always
// yields the same users, matches and revisions. That makes properties like
// replay determinism checkable against known fixtures.
package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/prode/internal/domain/model"
)

// Generation ranges.
const (
	defaultUsers            = 8
	defaultMatchesPerEd     = 19
	maxGoals                = 5
	revisionBurstPct        = 20 // chance (in %) a user re-submits a prediction
	skipPredictionPct       = 10 // chance a user skips a match entirely
	anticipationMinMinutes  = 30
	anticipationSpanMinutes = 60 * 24 * 3
)

// Config controls fixture size and determinism.
type Config struct {
	Seed          int64
	Users         int
	Editions      []model.Edition
	MatchesPerEd  int
	UnfinishedPct int // percentage of matches left without a result
}

// DefaultConfig returns a small two-edition fixture.
func DefaultConfig(seed int64) Config {
	return Config{
		Seed:  seed,
		Users: defaultUsers,
		Editions: []model.Edition{
			{ID: 1, Tournament: "Apertura", Year: 2024, Concluded: true},
			{ID: 2, Tournament: "Clausura", Year: 2024, Concluded: false},
		},
		MatchesPerEd:  defaultMatchesPerEd,
		UnfinishedPct: 15,
	}
}

// Fixture is one fully generated pool.
type Fixture struct {
	Users     []model.User
	Editions  []model.Edition
	Matches   []model.Match
	Revisions []model.Revision
}

var opponents = []string{
	"Racing", "Boca Juniors", "River Plate", "San Lorenzo", "Huracán",
	"Vélez", "Lanús", "Banfield", "Newell's", "Rosario Central",
	"Estudiantes", "Gimnasia", "Talleres", "Belgrano", "Colón",
	"Unión", "Argentinos", "Platense", "Tigre", "Defensa y Justicia",
}

// Generate builds a deterministic fixture from the config.
func Generate(cfg Config) Fixture {
	rng := rand.New(rand.NewSource(cfg.Seed))

	users := make([]model.User, 0, cfg.Users)
	for i := 0; i < cfg.Users; i++ {
		users = append(users, model.User{
			ID:   model.UserID(i + 1),
			Name: fmt.Sprintf("player-%s", uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d-%d", cfg.Seed, i))).String()[:8]),
		})
	}

	var matches []model.Match
	var revisions []model.Revision
	matchID := model.MatchID(1)
	revisionID := int64(1)

	for edIdx, ed := range cfg.Editions {
		base := time.Date(ed.Year, time.February, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 6*edIdx, 0)
		for round := 0; round < cfg.MatchesPerEd; round++ {
			kickoff := base.AddDate(0, 0, 7*round).Add(time.Duration(15+rng.Intn(6)) * time.Hour)
			m := model.Match{
				ID:        matchID,
				EditionID: ed.ID,
				Opponent:  opponents[rng.Intn(len(opponents))],
				Kickoff:   kickoff,
			}
			// Concluded editions have every result loaded.
			if ed.Concluded || rng.Intn(100) >= cfg.UnfinishedPct {
				home := rng.Intn(maxGoals)
				away := rng.Intn(maxGoals)
				m.HomeGoals = &home
				m.AwayGoals = &away
			}
			matches = append(matches, m)

			for _, u := range users {
				if rng.Intn(100) < skipPredictionPct {
					continue
				}
				submissions := 1
				for rng.Intn(100) < revisionBurstPct {
					submissions++
				}
				for s := 0; s < submissions; s++ {
					lead := time.Duration(anticipationMinMinutes+rng.Intn(anticipationSpanMinutes)) * time.Minute
					revisions = append(revisions, model.Revision{
						ID:          revisionID,
						UserID:      u.ID,
						MatchID:     m.ID,
						Home:        rng.Intn(maxGoals),
						Away:        rng.Intn(maxGoals),
						SubmittedAt: kickoff.Add(-lead).Add(time.Duration(s) * time.Minute),
					})
					revisionID++
				}
			}
			matchID++
		}
	}

	return Fixture{
		Users:     users,
		Editions:  cfg.Editions,
		Matches:   matches,
		Revisions: revisions,
	}
}
