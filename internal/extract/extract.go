// Package extract derives index metadata from raw note content.
package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/starford/othala/internal/models"
)

var (
	linkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
	// A tag must be terminated by whitespace; "#idea" at end-of-file with
	// nothing after it is not a tag.
	tagRe = regexp.MustCompile(`#([\w/_-]+?)\s`)
)

// Parse derives a Zettel from a note's vault-relative path and raw content.
// The title is the filename without its extension; the project is the
// immediate parent directory, empty for notes at the vault root.
//
// Parse is pure and never fails: content with no matches simply yields
// empty link and tag sets.
func Parse(relPath string, content []byte) models.Zettel {
	base := filepath.Base(relPath)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	project := ""
	if dir := filepath.Dir(relPath); dir != "." {
		project = filepath.Base(dir)
	}

	body := string(content)
	return models.Zettel{
		Title:   title,
		Project: project,
		Links:   extractLinks(body),
		Tags:    extractTags(body),
	}
}

// extractLinks returns deduplicated [[wikilink]] targets in order of first
// appearance, text taken verbatim.
func extractLinks(body string) []string {
	matches := linkRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target := m[1]
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// extractTags returns deduplicated inline #tags in order of first appearance.
func extractTags(body string) []string {
	matches := tagRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		tag := m[1]
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
