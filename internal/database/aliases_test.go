// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package database

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tomtom215/gamereel/internal/taxonomy"
)

func writeAliasYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write alias yaml: %v", err)
	}
	return path
}

func TestReplaceAliasTable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	path := writeAliasYAML(t, `
aliases:
  horror: [Horror]
  biography: [Documentary, History]
flags:
  nudity: [adult]
sources:
  horror: both
`)
	table, err := taxonomy.LoadAliasTable(path)
	if err != nil {
		t.Fatalf("LoadAliasTable: %v", err)
	}

	if err := db.ReplaceAliasTable(ctx, table); err != nil {
		t.Fatalf("ReplaceAliasTable: %v", err)
	}

	n, err := db.AliasCount(ctx)
	if err != nil {
		t.Fatalf("AliasCount: %v", err)
	}
	if n != 3 {
		t.Errorf("alias count = %d, want 3", n)
	}

	// Canonical genres named by the table exist up front.
	names, err := db.ListGenreNames(ctx)
	if err != nil {
		t.Fatalf("ListGenreNames: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"documentary", "history", "horror"}) {
		t.Errorf("genre names = %v", names)
	}

	// Replacing with a smaller table fully supersedes the old one.
	smaller, err := taxonomy.LoadAliasTable(writeAliasYAML(t, `
aliases:
  horror: [Horror]
`))
	if err != nil {
		t.Fatalf("LoadAliasTable smaller: %v", err)
	}
	if err := db.ReplaceAliasTable(ctx, smaller); err != nil {
		t.Fatalf("ReplaceAliasTable smaller: %v", err)
	}
	n, _ = db.AliasCount(ctx)
	if n != 1 {
		t.Errorf("alias count after replace = %d, want 1", n)
	}
}
