package store

import (
	"context"
	"fmt"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

// Import is the single-writer side of a full rebuild. It opens one
// exclusive transaction, clears the table, inserts every record received on
// zettels, and commits when the channel is closed. Any insert failure or
// context cancellation rolls the transaction back, leaving the pre-rebuild
// index intact.
//
// Clearing first makes the rebuild a full replace: re-running it against a
// populated store succeeds instead of tripping the unique constraint on
// every row.
func (s *Store) Import(ctx context.Context, zettels <-chan models.Zettel) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM zettelkasten`); err != nil {
		return fmt.Errorf("store: clear index: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO zettelkasten (title, project, links, tags) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("store: prepare import insert: %w", err)
	}
	defer stmt.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case z, ok := <-zettels:
			if !ok {
				if err := tx.Commit(); err != nil {
					return fmt.Errorf("store: commit import: %w", err)
				}
				return nil
			}
			if _, err := stmt.Exec(
				z.Title, z.Project,
				models.EncodeList(z.Links, s.sep),
				models.EncodeList(z.Tags, s.sep),
			); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("store: import %s: %w", z.Key(), apperr.ErrDuplicate)
				}
				return fmt.Errorf("store: import %s: %w", z.Key(), err)
			}
		}
	}
}
