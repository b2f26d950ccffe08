// Package query composes store primitives into graph-level queries over
// the zettel link structure. It is read-only and keeps no state of its own.
package query

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/store"
	"github.com/starford/othala/internal/vault"
)

// Engine answers graph queries against a store. Content search also reads
// note files through the vault.
type Engine struct {
	store *store.Store
	vault *vault.FS
}

// NewEngine creates a query engine over st and v.
func NewEngine(st *store.Store, v *vault.FS) *Engine {
	return &Engine{store: st, vault: v}
}

// FindByTitle returns the zettels whose title matches the SQL LIKE pattern.
func (e *Engine) FindByTitle(pattern string) ([]models.Zettel, error) {
	return e.store.FindByTitle(pattern)
}

// FindByTag returns the zettels carrying exactly the given tag.
func (e *Engine) FindByTag(tag string) ([]models.Zettel, error) {
	return e.store.FindByTag(tag)
}

// Backlinks returns the zettels whose links contain title as a whole token.
func (e *Engine) Backlinks(title string) ([]models.Zettel, error) {
	return e.store.FindByLinksTo(title)
}

// Links returns the sorted, deduplicated titles that the zettels matching
// the title pattern link to.
func (e *Engine) Links(pattern string) ([]string, error) {
	matches, err := e.store.FindByTitle(pattern)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, z := range matches {
		out = append(out, z.Links...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Search returns the zettels whose note contents match text, compiled as a
// case-insensitive regular expression. Records whose note file is missing
// or unreadable are treated as non-matching.
func (e *Engine) Search(text string) ([]models.Zettel, error) {
	re, err := regexp.Compile("(?i)" + text)
	if err != nil {
		return nil, fmt.Errorf("query: compile search pattern: %w", err)
	}

	all, err := e.store.All()
	if err != nil {
		return nil, err
	}

	var out []models.Zettel
	for _, z := range all {
		data, err := e.vault.Read(filepath.Join(z.Project, z.Title+".md"))
		if err != nil {
			continue
		}
		if re.Match(data) {
			out = append(out, z)
		}
	}
	return out, nil
}

// Ghosts returns the sorted, deduplicated titles that are linked to but
// have no corresponding zettel in the index.
func (e *Engine) Ghosts() ([]string, error) {
	all, err := e.store.All()
	if err != nil {
		return nil, err
	}

	var links []string
	for _, z := range all {
		links = append(links, z.Links...)
	}
	slices.Sort(links)
	links = slices.Compact(links)

	var out []string
	for _, link := range links {
		matches, err := e.store.FindByTitle(link)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			out = append(out, link)
		}
	}
	return out, nil
}

// Isolated returns the zettels fully disconnected from the link graph:
// no outbound links and no inbound links from any other zettel.
func (e *Engine) Isolated() ([]models.Zettel, error) {
	all, err := e.store.All()
	if err != nil {
		return nil, err
	}

	linked := make(map[string]struct{})
	for _, z := range all {
		for _, l := range z.Links {
			linked[l] = struct{}{}
		}
	}

	var out []models.Zettel
	for _, z := range all {
		if len(z.Links) > 0 {
			continue
		}
		if _, ok := linked[z.Title]; ok {
			continue
		}
		out = append(out, z)
	}
	return out, nil
}

// ListTags returns every tag in use, sorted and deduplicated.
func (e *Engine) ListTags() ([]string, error) {
	return e.store.ListTags()
}

// ListProjects returns every non-empty project name in use, sorted and
// deduplicated.
func (e *Engine) ListProjects() ([]string, error) {
	return e.store.ListProjects()
}
