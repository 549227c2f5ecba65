// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsOnly(t *testing.T) {
	// Run from a temp dir so no stray config.yaml is picked up.
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scoring.TopK != 10 {
		t.Errorf("TopK = %d, want default 10", cfg.Scoring.TopK)
	}
	if cfg.Database.Path == "" {
		t.Error("database path default missing")
	}
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	dir := chdirTemp(t)

	configYAML := `
database:
  path: /tmp/test.duckdb
scoring:
  alpha: 0.5
  top_k: 25
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Path = %q, want /tmp/test.duckdb", cfg.Database.Path)
	}
	if cfg.Scoring.Alpha != 0.5 {
		t.Errorf("Alpha = %f, want 0.5", cfg.Scoring.Alpha)
	}
	if cfg.Scoring.TopK != 25 {
		t.Errorf("TopK = %d, want 25", cfg.Scoring.TopK)
	}
	// Untouched sections keep defaults
	if cfg.Text.MaxVocabulary != 50000 {
		t.Errorf("MaxVocabulary = %d, want default 50000", cfg.Text.MaxVocabulary)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	configYAML := "scoring:\n  top_k: 25\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GAMEREEL_SCORING_TOP_K", "5")
	t.Setenv("GAMEREEL_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scoring.TopK != 5 {
		t.Errorf("TopK = %d, want env override 5", cfg.Scoring.TopK)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadDenyListFromEnv(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GAMEREEL_TAXONOMY_DENY_LIST", "tutorial, free to play ,early access")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"tutorial", "free to play", "early access"}
	if len(cfg.Taxonomy.DenyList) != len(want) {
		t.Fatalf("DenyList = %v, want %v", cfg.Taxonomy.DenyList, want)
	}
	for i, w := range want {
		if cfg.Taxonomy.DenyList[i] != w {
			t.Errorf("DenyList[%d] = %q, want %q", i, cfg.Taxonomy.DenyList[i], w)
		}
	}
}

func TestLoadConfigPathEnvVar(t *testing.T) {
	chdirTemp(t)

	alt := filepath.Join(t.TempDir(), "alt.yaml")
	if err := os.WriteFile(alt, []byte("scoring:\n  beta: 0.2\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, alt)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scoring.Beta != 0.2 {
		t.Errorf("Beta = %f, want 0.2 from CONFIG_PATH file", cfg.Scoring.Beta)
	}
}

func TestLoadRejectsInvalidFileValues(t *testing.T) {
	dir := chdirTemp(t)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("scoring:\n  alpha: 3.0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() = nil error for alpha=3.0, want validation failure")
	}
}

// chdirTemp moves the test into a fresh temp dir and restores the old
// working directory on cleanup.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
	return dir
}
