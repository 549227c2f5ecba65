// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package config loads and validates Gamereel configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//   - Environment variables (GAMEREEL_ prefix)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
package config

import "github.com/go-playground/validator/v10"

// Config is the root configuration for all pipeline stages.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Taxonomy  TaxonomyConfig  `koanf:"taxonomy"`
	Keywords  KeywordsConfig  `koanf:"keywords"`
	Text      TextConfig      `koanf:"text"`
	Scoring   ScoringConfig   `koanf:"scoring"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
}

// DatabaseConfig controls the DuckDB catalog store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" opens an in-memory
	// database (used by tests).
	Path string `koanf:"path" validate:"required"`

	// MaxMemory is the DuckDB memory limit (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads" validate:"gte=0"`

	// PreserveInsertionOrder mirrors the DuckDB pragma of the same name.
	PreserveInsertionOrder bool `koanf:"preserve_insertion_order"`
}

// ArtifactsConfig controls the versioned artifact store.
type ArtifactsConfig struct {
	// Dir is the BadgerDB directory holding vector-space and alias-hit
	// artifacts.
	Dir string `koanf:"dir" validate:"required"`
}

// TaxonomyConfig controls genre canonicalization.
type TaxonomyConfig struct {
	// AliasTablePath is the YAML alias table mapping raw genre strings
	// to canonical genres and flag markers.
	AliasTablePath string `koanf:"alias_table_path" validate:"required"`

	// DenyList is the set of non-content tags (store/administrative
	// categories) discarded before alias lookup. Not exhaustive; extend
	// via config as new junk tags appear in source data.
	DenyList []string `koanf:"deny_list"`
}

// KeywordsConfig controls the thematic alias matcher.
type KeywordsConfig struct {
	// DictionaryPath is the YAML keyword dictionary mapping alias keys
	// to trigger substrings.
	DictionaryPath string `koanf:"dictionary_path" validate:"required"`
}

// TextConfig controls the joint TF-IDF text vectorizer.
type TextConfig struct {
	// MaxVocabulary bounds the joint vocabulary size.
	MaxVocabulary int `koanf:"max_vocabulary" validate:"gte=1"`

	// MinNGram and MaxNGram bound the n-gram range (inclusive).
	MinNGram int `koanf:"min_ngram" validate:"gte=1"`
	MaxNGram int `koanf:"max_ngram" validate:"gtefield=MinNGram"`
}

// ScoringConfig holds the scoring-stage tunables.
type ScoringConfig struct {
	// Alpha balances genre vs text similarity: 1 = genre only, 0 = text only.
	Alpha float64 `koanf:"alpha" validate:"gte=0,lte=1"`

	// Beta is the flat bonus added when alias-hit sets intersect.
	Beta float64 `koanf:"beta" validate:"gte=0"`

	// TopK is the number of recommendations retained per game.
	TopK int `koanf:"top_k" validate:"gte=1"`

	// BatchSize is the recommendation insert batch size.
	BatchSize int `koanf:"batch_size" validate:"gte=1"`

	// Workers is the number of scoring goroutines. 0 = runtime.NumCPU().
	Workers int `koanf:"workers" validate:"gte=0"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			Path:                   "/data/gamereel.duckdb",
			MaxMemory:              "2GB",
			Threads:                0, // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: true,
		},
		Artifacts: ArtifactsConfig{
			Dir: "/data/artifacts",
		},
		Taxonomy: TaxonomyConfig{
			AliasTablePath: "/data/aliases.yaml",
			DenyList:       DefaultDenyList(),
		},
		Keywords: KeywordsConfig{
			DictionaryPath: "/data/keywords.yaml",
		},
		Text: TextConfig{
			MaxVocabulary: 50000,
			MinNGram:      1,
			MaxNGram:      2,
		},
		Scoring: ScoringConfig{
			Alpha:     0.7,
			Beta:      0.05,
			TopK:      10,
			BatchSize: 1000,
			Workers:   0,
		},
	}
}

// DefaultDenyList returns the built-in set of store/administrative tags
// that carry no content signal and are discarded before alias lookup.
func DefaultDenyList() []string {
	return []string{
		"accounting",
		"animation & modeling",
		"audio production",
		"design & illustration",
		"early access",
		"education",
		"free to play",
		"game development",
		"photo editing",
		"software training",
		"tutorial",
		"utilities",
		"video production",
		"web publishing",
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	v := validator.New()
	return v.Struct(c)
}
