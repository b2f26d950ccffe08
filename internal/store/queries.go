package store

import (
	"fmt"
	"slices"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

// All returns every record in the index. Ordering is store-defined.
func (s *Store) All() ([]models.Zettel, error) {
	return s.collect(`SELECT title, project, links, tags FROM zettelkasten`)
}

// FindByTitle returns all zettels whose title matches the SQL LIKE pattern
// ('%' matches any run of characters, '_' a single character).
func (s *Store) FindByTitle(pattern string) ([]models.Zettel, error) {
	return s.collect(
		`SELECT title, project, links, tags FROM zettelkasten WHERE title LIKE ?`,
		pattern,
	)
}

// FindByTag returns all zettels carrying exactly the given tag. The search
// term is bracketed with the list separator so "tag" never matches a record
// tagged "tag1".
func (s *Store) FindByTag(tag string) ([]models.Zettel, error) {
	return s.collect(
		`SELECT title, project, links, tags FROM zettelkasten WHERE tags LIKE ?`,
		"%"+s.sep+tag+s.sep+"%",
	)
}

// FindByLinksTo returns all zettels whose links contain title as a whole
// token, i.e. the backlinks of title.
func (s *Store) FindByLinksTo(title string) ([]models.Zettel, error) {
	return s.collect(
		`SELECT title, project, links, tags FROM zettelkasten WHERE links LIKE ?`,
		"%"+s.sep+title+s.sep+"%",
	)
}

// ListTags returns every tag in use, sorted and deduplicated.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.conn.Query(`SELECT tags FROM zettelkasten`)
	if err != nil {
		return nil, fmt.Errorf("store: list tags: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, fmt.Errorf("store: scan tags: %w", err)
		}
		out = append(out, models.DecodeList(tags, s.sep)...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// ListProjects returns every non-empty project name in use, sorted and
// deduplicated.
func (s *Store) ListProjects() ([]string, error) {
	rows, err := s.conn.Query(
		`SELECT DISTINCT project FROM zettelkasten WHERE project != '' ORDER BY project`,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("store: scan project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ChangeProject moves the record keyed by z's (title, project) to a new
// project, leaving every other field untouched.
func (s *Store) ChangeProject(z models.Zettel, newProject string) error {
	_, err := s.conn.Exec(
		`UPDATE zettelkasten SET project = ? WHERE title = ? AND project = ?`,
		newProject, z.Title, z.Project,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("store: change project of %s: %w", z.Key(), apperr.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("store: change project of %s: %w", z.Key(), err)
	}
	return nil
}

// ChangeTitle renames the record keyed by z's (title, project), leaving
// every other field untouched.
func (s *Store) ChangeTitle(z models.Zettel, newTitle string) error {
	_, err := s.conn.Exec(
		`UPDATE zettelkasten SET title = ? WHERE title = ? AND project = ?`,
		newTitle, z.Title, z.Project,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("store: change title of %s: %w", z.Key(), apperr.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("store: change title of %s: %w", z.Key(), err)
	}
	return nil
}
