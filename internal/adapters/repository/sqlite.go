package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/prode/internal/domain/model"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements Store over a SQLite file.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: apply schema: %w", ErrOpen, err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// ListUsers implements Store.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.conn.QueryContext(ctx, qListUsers)
	if err != nil {
		return nil, fmt.Errorf("%w: users: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("%w: scan user: %w", ErrQuery, err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListEditions implements Store.
func (s *SQLiteStore) ListEditions(ctx context.Context) ([]model.Edition, error) {
	rows, err := s.conn.QueryContext(ctx, qListEditions)
	if err != nil {
		return nil, fmt.Errorf("%w: editions: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.Edition
	for rows.Next() {
		var e model.Edition
		var concluded int
		if err := rows.Scan(&e.ID, &e.Tournament, &e.Year, &concluded); err != nil {
			return nil, fmt.Errorf("%w: scan edition: %w", ErrQuery, err)
		}
		e.Concluded = concluded != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListMatches implements Store.
func (s *SQLiteStore) ListMatches(ctx context.Context, scope model.Scope) ([]model.Match, error) {
	return s.listMatches(ctx, scope, false)
}

// ListFinishedMatches implements Store.
func (s *SQLiteStore) ListFinishedMatches(ctx context.Context, scope model.Scope) ([]model.Match, error) {
	return s.listMatches(ctx, scope, true)
}

func (s *SQLiteStore) listMatches(ctx context.Context, scope model.Scope, finishedOnly bool) ([]model.Match, error) {
	query, args := matchQuery(scope, finishedOnly)
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: matches: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var m model.Match
		var kickoff string
		var home, away sql.NullInt64
		if err := rows.Scan(&m.ID, &m.EditionID, &m.Opponent, &kickoff, &home, &away); err != nil {
			return nil, fmt.Errorf("%w: scan match: %w", ErrQuery, err)
		}
		if m.Kickoff, err = time.Parse(time.RFC3339, kickoff); err != nil {
			return nil, fmt.Errorf("%w: match %d kickoff: %w", ErrQuery, m.ID, err)
		}
		if home.Valid && away.Valid {
			h, a := int(home.Int64), int(away.Int64)
			m.HomeGoals, m.AwayGoals = &h, &a
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListRevisions implements Store.
func (s *SQLiteStore) ListRevisions(ctx context.Context, scope model.Scope) ([]model.Revision, error) {
	query, args := revisionQuery(scope)
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: revisions: %w", ErrQuery, err)
	}
	defer rows.Close()

	var out []model.Revision
	for rows.Next() {
		var r model.Revision
		var submitted string
		if err := rows.Scan(&r.ID, &r.UserID, &r.MatchID, &r.Home, &r.Away, &submitted); err != nil {
			return nil, fmt.Errorf("%w: scan revision: %w", ErrQuery, err)
		}
		if r.SubmittedAt, err = time.Parse(time.RFC3339, submitted); err != nil {
			return nil, fmt.Errorf("%w: revision %d submitted_at: %w", ErrQuery, r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Counts implements Store.
func (s *SQLiteStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	row := s.conn.QueryRowContext(ctx, qCounts)
	if err := row.Scan(&c.Users, &c.Editions, &c.Matches, &c.FinishedMatches, &c.Revisions); err != nil {
		return Counts{}, fmt.Errorf("%w: counts: %w", ErrQuery, err)
	}
	return c, nil
}

// InsertUser stores a participant.
func (s *SQLiteStore) InsertUser(ctx context.Context, u model.User) error {
	if _, err := s.conn.ExecContext(ctx, qInsertUser, u.ID, u.Name); err != nil {
		return fmt.Errorf("%w: user: %w", ErrInsert, err)
	}
	return nil
}

// InsertEdition stores an edition.
func (s *SQLiteStore) InsertEdition(ctx context.Context, e model.Edition) error {
	concluded := 0
	if e.Concluded {
		concluded = 1
	}
	if _, err := s.conn.ExecContext(ctx, qInsertEdition, e.ID, e.Tournament, e.Year, concluded); err != nil {
		return fmt.Errorf("%w: edition: %w", ErrInsert, err)
	}
	return nil
}

// InsertMatch stores a fixture, played or not.
func (s *SQLiteStore) InsertMatch(ctx context.Context, m model.Match) error {
	var home, away any
	if m.Finished() {
		home, away = *m.HomeGoals, *m.AwayGoals
	}
	_, err := s.conn.ExecContext(ctx, qInsertMatch,
		m.ID, m.EditionID, m.Opponent, m.Kickoff.Format(time.RFC3339), home, away)
	if err != nil {
		return fmt.Errorf("%w: match: %w", ErrInsert, err)
	}
	return nil
}

// InsertRevision appends one prediction revision.
func (s *SQLiteStore) InsertRevision(ctx context.Context, r model.Revision) error {
	_, err := s.conn.ExecContext(ctx, qInsertRevision,
		r.UserID, r.MatchID, r.Home, r.Away, r.SubmittedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: revision: %w", ErrInsert, err)
	}
	return nil
}
