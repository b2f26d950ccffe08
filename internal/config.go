package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/othala/internal/models"
)

// Config represents the application configuration.
type Config struct {
	App          ApplicationConfig  `yaml:"app"`
	Zettelkasten ZettelkastenConfig `yaml:"zettelkasten"`
	SQLite       SQLiteConfig       `yaml:"sqlite"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Zettelkasten.Validate(); err != nil {
		return err
	}
	return c.SQLite.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ZettelkastenConfig describes the note collection.
type ZettelkastenConfig struct {
	// Path is the root directory holding the notes; project directories
	// sit one level below it.
	Path string `yaml:"path"`
	// Template is an optional note template; ${TITLE} and ${DATE}
	// placeholders are substituted on creation.
	Template string `yaml:"template"`
	// Separator bounds and separates the serialised link/tag lists in
	// the index.
	Separator string `yaml:"separator"`
}

// Validate validates the zettelkasten configuration.
func (c *ZettelkastenConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Separator, validation.Required, validation.Length(1, 8)),
	)
}

// SQLiteConfig holds the index database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Zettelkasten: ZettelkastenConfig{
			Path:      "./zettelkasten",
			Separator: models.DefaultSeparator,
		},
		SQLite: SQLiteConfig{
			Path: "./othala.db",
		},
	}
}
