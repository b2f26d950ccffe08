// Package indexer rebuilds the entire zettel index from the note
// collection in one pass.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/starford/othala/internal/extract"
	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/store"
	"github.com/starford/othala/internal/vault"
)

// Stats reports the outcome of a rebuild.
type Stats struct {
	Indexed int
	Failed  int
	Errors  []string
}

// Rebuild re-extracts every note in the vault and replaces the store's
// contents atomically. Extraction runs in parallel across a worker pool;
// records funnel through a bounded channel into the store's single-writer
// Import transaction, so fast producers cannot buffer unboundedly ahead of
// the writer.
//
// A file that cannot be read is recorded in Stats and skipped; the rebuild
// carries on. An insert failure or a cancelled context aborts the whole
// rebuild and rolls back, leaving the pre-rebuild index intact.
func Rebuild(ctx context.Context, v *vault.FS, st *store.Store, logger *slog.Logger) (*Stats, error) {
	projects, err := v.Projects()
	if err != nil {
		return nil, fmt.Errorf("indexer: enumerate projects: %w", err)
	}
	// The root itself is the default project.
	dirs := append(projects, "")

	var files []string
	for _, dir := range dirs {
		notes, err := v.ListNotes(dir)
		if err != nil {
			return nil, fmt.Errorf("indexer: enumerate notes: %w", err)
		}
		files = append(files, notes...)
	}

	stats := &Stats{}
	var mu sync.Mutex

	records := make(chan models.Zettel, 1)
	g, gctx := errgroup.WithContext(ctx)

	// Single writer: one transaction for the whole rebuild.
	g.Go(func() error {
		return st.Import(gctx, records)
	})

	// Parallel extraction, fanned in over the bounded channel.
	g.Go(func() error {
		defer close(records)

		pg, pctx := errgroup.WithContext(gctx)
		pg.SetLimit(runtime.GOMAXPROCS(0))
		for _, relPath := range files {
			pg.Go(func() error {
				data, err := v.Read(relPath)
				if err != nil {
					mu.Lock()
					stats.Failed++
					stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", relPath, err))
					mu.Unlock()
					logger.Warn("rebuild: read failed",
						slog.String("path", relPath),
						slog.String("error", err.Error()))
					return nil
				}
				z := extract.Parse(relPath, data)
				select {
				case records <- z:
				case <-pctx.Done():
					return pctx.Err()
				}
				mu.Lock()
				stats.Indexed++
				mu.Unlock()
				return nil
			})
		}
		return pg.Wait()
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	logger.Info("rebuild: complete",
		slog.Int("indexed", stats.Indexed),
		slog.Int("failed", stats.Failed))
	return stats, nil
}
