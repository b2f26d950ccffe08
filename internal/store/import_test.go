package store

import (
	"context"
	"errors"
	"testing"

	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/models"
)

func runImport(t *testing.T, s *Store, zettels []models.Zettel) error {
	t.Helper()
	ch := make(chan models.Zettel, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Import(context.Background(), ch)
	}()
	for _, z := range zettels {
		ch <- z
	}
	close(ch)
	return <-done
}

func TestImport_CommitsOnClose(t *testing.T) {
	s := testStore(t)
	err := runImport(t, s, []models.Zettel{
		{Title: "A", Links: []string{"B"}, Tags: []string{"x"}},
		{Title: "B"},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("index has %d records, want 2", len(all))
	}
}

func TestImport_ReplacesExistingRows(t *testing.T) {
	s := testStore(t)
	_ = s.Save(models.Zettel{Title: "stale"})

	if err := runImport(t, s, []models.Zettel{{Title: "fresh"}}); err != nil {
		t.Fatalf("Import: %v", err)
	}
	all, _ := s.All()
	if len(all) != 1 || all[0].Title != "fresh" {
		t.Errorf("index = %v, want just [fresh]", titles(all))
	}

	// Re-running with identical records must succeed: the rebuild is a
	// full replace, not an append.
	if err := runImport(t, s, []models.Zettel{{Title: "fresh"}}); err != nil {
		t.Fatalf("second Import: %v", err)
	}
}

func TestImport_RollsBackOnInsertFailure(t *testing.T) {
	s := testStore(t)
	_ = s.Save(models.Zettel{Title: "pre", Tags: []string{"kept"}})

	err := runImport(t, s, []models.Zettel{
		{Title: "dup", Project: "p"},
		{Title: "dup", Project: "p"},
	})
	if !errors.Is(err, apperr.ErrDuplicate) {
		t.Fatalf("Import = %v, want ErrDuplicate", err)
	}

	// The failed rebuild must leave the pre-rebuild state untouched.
	all, _ := s.All()
	if len(all) != 1 || all[0].Title != "pre" {
		t.Errorf("index = %v, want the pre-rebuild record", titles(all))
	}
}

func TestImport_CancelledContext(t *testing.T) {
	s := testStore(t)
	_ = s.Save(models.Zettel{Title: "pre"})

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan models.Zettel)
	done := make(chan error, 1)
	go func() {
		done <- s.Import(ctx, ch)
	}()
	ch <- models.Zettel{Title: "partial"}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Import = %v, want context.Canceled", err)
	}

	all, _ := s.All()
	if len(all) != 1 || all[0].Title != "pre" {
		t.Errorf("index = %v, want the pre-rebuild record", titles(all))
	}
}
