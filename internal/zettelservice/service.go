// Package zettelservice coordinates single-record lifecycle operations:
// creating, re-extracting, deleting, and renaming individual zettels. Bulk
// re-indexing belongs to the indexer, not here.
package zettelservice

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/extract"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/store"
	"github.com/starford/othala/internal/vault"
)

// Service coordinates vault and store operations on single zettels.
type Service struct {
	vault    *vault.FS
	store    *store.Store
	template string // path to a note template file, may be empty
}

// New creates a zettel service. templatePath may be empty, in which case
// new notes start blank.
func New(v *vault.FS, st *store.Store, templatePath string) *Service {
	return &Service{vault: v, store: st, template: templatePath}
}

// RelPath returns the vault-relative file path for a zettel:
// "<project>/<title>.md", or "<title>.md" for the root project.
func RelPath(z models.Zettel) string {
	return filepath.Join(z.Project, z.Title+".md")
}

// Path returns the absolute file path for a zettel.
func (s *Service) Path(z models.Zettel) (string, error) {
	return s.vault.Abs(RelPath(z))
}

// Create writes a new note file (rendered from the template when one is
// configured) and saves its extracted record. An existing file at the same
// (title, project) fails with apperr.ErrAlreadyExists.
func (s *Service) Create(title, project string) (models.Zettel, error) {
	rel := RelPath(models.Zettel{Title: title, Project: project})
	if s.vault.Exists(rel) {
		return models.Zettel{}, apperr.ErrAlreadyExists
	}

	content, err := s.renderTemplate(title)
	if err != nil {
		return models.Zettel{}, err
	}
	if err := s.vault.Write(rel, content); err != nil {
		return models.Zettel{}, err
	}

	z := extract.Parse(rel, content)
	if err := s.store.Save(z); err != nil {
		return models.Zettel{}, err
	}
	return z, nil
}

// Update re-extracts the note at the vault-relative path and replaces its
// record. Not suitable for bulk use; run a full rebuild instead.
func (s *Service) Update(rel string) (models.Zettel, error) {
	data, err := s.vault.Read(rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Zettel{}, apperr.ErrNotFound
		}
		return models.Zettel{}, err
	}
	z := extract.Parse(rel, data)
	if err := s.store.Update(z); err != nil {
		return models.Zettel{}, err
	}
	return z, nil
}

// Delete removes a zettel's record from the index. The note file, if any,
// is left on disk.
func (s *Service) Delete(title, project string) error {
	return s.store.Delete(models.Zettel{Title: title, Project: project})
}

// RenameTitle updates the record to its new title and moves the note file
// along with it, preserving links and tags. The record changes first, so a
// rename onto an occupied key fails before the file is touched; a failed
// file move undoes the record change.
func (s *Service) RenameTitle(z models.Zettel, newTitle string) error {
	if err := s.store.ChangeTitle(z, newTitle); err != nil {
		return err
	}
	oldRel := RelPath(z)
	if !s.vault.Exists(oldRel) {
		return nil
	}
	newRel := RelPath(models.Zettel{Title: newTitle, Project: z.Project})
	if err := s.vault.Move(oldRel, newRel); err != nil {
		_ = s.store.ChangeTitle(models.Zettel{Title: newTitle, Project: z.Project}, z.Title)
		return err
	}
	return nil
}

// MoveProject updates the record to its new project and moves the note
// file along with it. Ordering matches RenameTitle.
func (s *Service) MoveProject(z models.Zettel, newProject string) error {
	if err := s.store.ChangeProject(z, newProject); err != nil {
		return err
	}
	oldRel := RelPath(z)
	if !s.vault.Exists(oldRel) {
		return nil
	}
	newRel := RelPath(models.Zettel{Title: z.Title, Project: newProject})
	if err := s.vault.Move(oldRel, newRel); err != nil {
		_ = s.store.ChangeProject(models.Zettel{Title: z.Title, Project: newProject}, z.Project)
		return err
	}
	return nil
}

// Backup snapshots the live index to a file at path.
func (s *Service) Backup(path string) error {
	return s.store.Backup(path)
}
