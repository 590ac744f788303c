package repository

import "github.com/okian/prode/internal/domain/model"

const (
	qListUsers = `SELECT id, name FROM users ORDER BY name ASC`

	qListEditions = `SELECT id, tournament, year, concluded FROM editions ORDER BY year ASC, tournament ASC`

	qCounts = `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM editions),
    (SELECT COUNT(*) FROM matches),
    (SELECT COUNT(*) FROM matches WHERE home_goals IS NOT NULL AND away_goals IS NOT NULL),
    (SELECT COUNT(*) FROM revisions)`

	qInsertUser     = `INSERT INTO users (id, name) VALUES (?, ?)`
	qInsertEdition  = `INSERT INTO editions (id, tournament, year, concluded) VALUES (?, ?, ?, ?)`
	qInsertMatch    = `INSERT INTO matches (id, edition_id, opponent, kickoff, home_goals, away_goals) VALUES (?, ?, ?, ?, ?, ?)`
	qInsertRevision = `INSERT INTO revisions (user_id, match_id, home, away, submitted_at) VALUES (?, ?, ?, ?, ?)`
)

// matchQuery builds the match listing for a scope. Ordering by kickoff is
// part of the store contract. Year scopes resolve through the edition's
// year, never the kickoff date.
func matchQuery(scope model.Scope, finishedOnly bool) (string, []any) {
	query := `
SELECT m.id, m.edition_id, m.opponent, m.kickoff, m.home_goals, m.away_goals
FROM matches m
JOIN editions e ON e.id = m.edition_id
WHERE 1=1`
	var args []any
	if finishedOnly {
		query += ` AND m.home_goals IS NOT NULL AND m.away_goals IS NOT NULL`
	}
	if scope.Edition != 0 {
		query += ` AND m.edition_id = ?`
		args = append(args, int64(scope.Edition))
	}
	if scope.Year != 0 {
		query += ` AND e.year = ?`
		args = append(args, scope.Year)
	}
	query += ` ORDER BY m.kickoff ASC, m.id ASC`
	return query, args
}

// revisionQuery returns the raw history for matches inside the scope. No
// max-timestamp filtering happens here; resolution belongs to the core.
func revisionQuery(scope model.Scope) (string, []any) {
	query := `
SELECT r.id, r.user_id, r.match_id, r.home, r.away, r.submitted_at
FROM revisions r
JOIN matches m ON m.id = r.match_id
JOIN editions e ON e.id = m.edition_id
WHERE 1=1`
	var args []any
	if scope.Edition != 0 {
		query += ` AND m.edition_id = ?`
		args = append(args, int64(scope.Edition))
	}
	if scope.Year != 0 {
		query += ` AND e.year = ?`
		args = append(args, scope.Year)
	}
	query += ` ORDER BY r.id ASC`
	return query, args
}
