// Package testutil provides shared test helpers for setting up vaults and
// stores.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/othala/internal/store"
	"github.com/starford/othala/internal/vault"
)

// TestStore creates a temporary SQLite store that is automatically cleaned
// up.
func TestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	f, err := os.CreateTemp("", "othala-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := store.Open(f.Name(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestVault creates a temporary vault directory and returns its path
// alongside the FS rooted there.
func TestVault(t *testing.T) (string, *vault.FS) {
	t.Helper()
	dir := t.TempDir()
	v, err := vault.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, v
}

// WriteNote writes a note file into the vault, failing the test on error.
func WriteNote(t *testing.T, v *vault.FS, rel, content string) {
	t.Helper()
	if err := v.Write(rel, []byte(content)); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
