// Package config holds the chronicle core's configuration shape. Loading a
// Config from a file or environment is out of scope for the core (see
// SPEC_FULL.md §E) — callers (the CLI, tests) construct a Config directly,
// typically starting from DefaultConfig.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codenerd/chronicle/internal/chronicleerr"
	"github.com/codenerd/chronicle/internal/logging"
)

// Config holds every tunable the core consults.
type Config struct {
	// Name/Version identify the product for display purposes only.
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// NotesRef is the git notes reference annotations are stored under.
	NotesRef string `yaml:"notes_ref"`

	Staleness StalenessConfig `yaml:"staleness"`
	Backfill  BackfillConfig  `yaml:"backfill"`
	Query     QueryConfig     `yaml:"query"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StalenessConfig controls the commits-since-annotation threshold (spec.md
// §4.6.6, §9 Open Question 3 — hard-coded to 5 upstream, configurable here).
type StalenessConfig struct {
	Threshold int `yaml:"threshold"`
}

// BackfillConfig controls the pre-LLM filter (spec.md §4.5.2).
type BackfillConfig struct {
	TrivialLineThreshold int      `yaml:"trivial_line_threshold"`
	LockfilePatterns     []string `yaml:"lockfile_patterns"`
	MessageSkipPrefixes  []string `yaml:"message_skip_prefixes"`
}

// QueryConfig bounds the query engine's scans (spec.md §5 Cancellation).
type QueryConfig struct {
	ScanLimit  int `yaml:"scan_limit"`
	MaxResults int `yaml:"max_results"`
}

// LoggingConfig is passed straight through to internal/logging.Settings.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
	JSONFormat bool            `yaml:"json_format"`
}

// ToLoggingSettings adapts LoggingConfig to logging.Settings so callers
// don't need to depend on internal/logging's type names directly.
func (c LoggingConfig) ToLoggingSettings() logging.Settings {
	return logging.Settings{
		DebugMode:  c.DebugMode,
		Categories: c.Categories,
		Level:      c.Level,
		JSONFormat: c.JSONFormat,
	}
}

// DefaultConfig returns chronicle's default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:     "chronicle",
		Version:  "0.1.0",
		NotesRef: "refs/notes/chronicle",

		Staleness: StalenessConfig{
			Threshold: 5,
		},

		Backfill: BackfillConfig{
			TrivialLineThreshold: 3,
			LockfilePatterns: []string{
				"Cargo.lock", "package-lock.json", "yarn.lock",
				"pnpm-lock.yaml", "Gemfile.lock", "poetry.lock",
				"go.sum",
			},
			MessageSkipPrefixes: []string{
				"Merge branch", "WIP", "fixup!", "squash!",
			},
		},

		Query: QueryConfig{
			ScanLimit:  500,
			MaxResults: 50,
		},

		Logging: LoggingConfig{
			DebugMode:  false,
			Level:      "info",
			JSONFormat: false,
		},
	}
}

// WriteDefault scaffolds a YAML config file at path from DefaultConfig, for
// a user to hand-edit. Writing a starting point is distinct from loading
// one back in at runtime (still out of scope, see internal/external.ConfigLoader).
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return chronicleerr.JsonErr("serializing default config", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return chronicleerr.IoErr("writing default config", err)
	}
	return nil
}
