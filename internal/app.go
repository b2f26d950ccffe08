// Package internal provides the application wiring shared by the CLI
// commands.
package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/othala/internal/query"
	"github.com/starford/othala/internal/store"
	"github.com/starford/othala/internal/vault"
	"github.com/starford/othala/internal/zettelservice"
)

// App bundles the initialised components a command operates on.
type App struct {
	Config  *Config
	Logger  *slog.Logger
	Vault   *vault.FS
	Store   *store.Store
	Query   *query.Engine
	Zettels *zettelservice.Service
}

// Setup initialises logging, the vault, and the store from the given
// options. The caller owns the returned App and must Close it.
func Setup(opts ...Option) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg := app.Config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	app.Logger = logger

	if err := os.MkdirAll(cfg.Zettelkasten.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create zettelkasten dir: %w", err)
	}

	v, err := vault.NewFS(cfg.Zettelkasten.Path)
	if err != nil {
		return nil, fmt.Errorf("init vault: %w", err)
	}
	app.Vault = v

	st, err := store.Open(cfg.SQLite.Path, store.WithSeparator(cfg.Zettelkasten.Separator))
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	app.Store = st

	app.Query = query.NewEngine(st, v)
	app.Zettels = zettelservice.New(v, st, cfg.Zettelkasten.Template)

	logger.Debug("application initialised",
		slog.String("zettelkasten_path", cfg.Zettelkasten.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return app, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
