package internal

import (
	"testing"

	"github.com/starford/othala/internal/models"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Zettelkasten.Separator != models.DefaultSeparator {
		t.Errorf("separator = %q, want %q", cfg.Zettelkasten.Separator, models.DefaultSeparator)
	}
}

func TestZettelkastenConfig_MissingPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Zettelkasten.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty vault path should fail validation")
	}
}

func TestZettelkastenConfig_MissingSeparator(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Zettelkasten.Separator = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty separator should fail validation")
	}
}

func TestZettelkastenConfig_OverlongSeparator(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Zettelkasten.Separator = ":::::::::::"
	if err := cfg.Validate(); err == nil {
		t.Fatal("overlong separator should fail validation")
	}
}

func TestSQLiteConfig_MissingPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty sqlite path should fail validation")
	}
}

func TestZettelkastenConfig_TemplateOptional(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Zettelkasten.Template = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("template should be optional: %v", err)
	}
}
