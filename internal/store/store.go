// Package store owns the persisted zettel index, a single SQLite table
// keyed by (title, project).
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS zettelkasten (
	title   TEXT NOT NULL,
	project TEXT,
	links   TEXT,
	tags    TEXT,
	UNIQUE(title, project)
);
`

// Store wraps the index database. It owns exactly one connection; callers
// serialise on it rather than fail on contention.
type Store struct {
	conn *sql.DB
	sep  string
}

// Option is a functional option for configuring the store.
type Option func(*Store)

// WithSeparator overrides the token that bounds and separates the
// serialised link and tag lists.
func WithSeparator(sep string) Option {
	return func(s *Store) {
		s.sep = sep
	}
}

// Open opens (or creates) the SQLite database at path and applies the
// schema. Schema creation is idempotent.
func Open(path string, opts ...Option) (*Store, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	// The single-writer discipline lives here: one connection, shared by
	// every caller, serialised by database/sql itself.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	s := &Store{conn: conn, sep: models.DefaultSeparator}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OpenInMemory opens a named in-memory database, useful for tests and
// one-shot queries.
func OpenInMemory(name string, opts ...Option) (*Store, error) {
	return Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), opts...)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Separator returns the list separator token in use.
func (s *Store) Separator() string {
	return s.sep
}

// Save inserts a zettel's metadata. A second record with the same
// (title, project) fails with apperr.ErrDuplicate.
func (s *Store) Save(z models.Zettel) error {
	_, err := s.conn.Exec(
		`INSERT INTO zettelkasten (title, project, links, tags) VALUES (?, ?, ?, ?)`,
		z.Title, z.Project,
		models.EncodeList(z.Links, s.sep),
		models.EncodeList(z.Tags, s.sep),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("store: save %s: %w", z.Key(), apperr.ErrDuplicate)
		}
		return fmt.Errorf("store: save %s: %w", z.Key(), err)
	}
	return nil
}

// Delete removes a zettel's metadata by (title, project). Deleting an
// absent record is a no-op.
func (s *Store) Delete(z models.Zettel) error {
	_, err := s.conn.Exec(
		`DELETE FROM zettelkasten WHERE title = ? AND project = ?`,
		z.Title, z.Project,
	)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", z.Key(), err)
	}
	return nil
}

// Update replaces the record keyed by z's (title, project) with z's data.
// Not suitable for bulk re-indexing: the delete and insert are separate
// statements. Use Import for a full rebuild.
func (s *Store) Update(z models.Zettel) error {
	if err := s.Delete(z); err != nil {
		return err
	}
	return s.Save(z)
}

// Backup snapshots the live database to a file at path.
func (s *Store) Backup(path string) error {
	if _, err := s.conn.Exec(`VACUUM INTO ?`, path); err != nil {
		return fmt.Errorf("store: backup to %s: %w", path, err)
	}
	return nil
}

// scanZettel decodes one result row into a Zettel.
func (s *Store) scanZettel(rows *sql.Rows) (models.Zettel, error) {
	var title, project, links, tags string
	if err := rows.Scan(&title, &project, &links, &tags); err != nil {
		return models.Zettel{}, fmt.Errorf("store: scan row: %w (%w)", apperr.ErrBadRow, err)
	}
	return models.Zettel{
		Title:   title,
		Project: project,
		Links:   models.DecodeList(links, s.sep),
		Tags:    models.DecodeList(tags, s.sep),
	}, nil
}

// collect runs a query returning full zettel rows and decodes them all.
func (s *Store) collect(query string, args ...any) ([]models.Zettel, error) {
	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var out []models.Zettel
	for rows.Next() {
		z, err := s.scanZettel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

// isUniqueViolation reports whether err is SQLite's unique-constraint error.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
