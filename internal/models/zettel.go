// Package models defines the core data types shared across packages.
package models

// Zettel is one indexed note, uniquely identified by (Title, Project).
// The empty project name denotes the root of the note collection.
type Zettel struct {
	Title   string
	Project string
	Links   []string
	Tags    []string
}

// Key returns a human-readable identity for logs and error messages.
func (z Zettel) Key() string {
	if z.Project == "" {
		return z.Title
	}
	return z.Project + "/" + z.Title
}
