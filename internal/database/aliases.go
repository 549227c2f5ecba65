// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/taxonomy"
)

// ReplaceAliasTable persists the loaded alias table, replacing any
// previous generation in one transaction: every alias key with its
// source domain, genre edges, and flag edges. Canonical genres named by
// the table are created up front so the genre dimension set is complete
// before any item is annotated.
func (db *DB) ReplaceAliasTable(ctx context.Context, table *taxonomy.AliasTable) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin alias table replace: %w", err)
	}
	defer rollbackQuietly(tx)

	for _, stmt := range []string{
		`DELETE FROM alias_flags`,
		`DELETE FROM alias_genres`,
		`DELETE FROM genre_aliases`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear alias tables: %w", err)
		}
	}

	var aliasCount, genreEdges, flagEdges int
	for _, key := range table.Keys() {
		var aliasID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO genre_aliases (alias, source) VALUES (?, ?) RETURNING id`,
			key, table.Source(key)).Scan(&aliasID)
		if err != nil {
			return fmt.Errorf("insert alias %q: %w", key, err)
		}
		aliasCount++

		contribs, _ := table.Contributions(key)
		for _, c := range contribs {
			switch c := c.(type) {
			case taxonomy.GenreContribution:
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO genres (name) VALUES (?) ON CONFLICT (name) DO NOTHING`,
					c.Name); err != nil {
					return fmt.Errorf("create genre %q: %w", c.Name, err)
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO alias_genres (alias_id, genre_id)
					SELECT ?, id FROM genres WHERE name = ?
					ON CONFLICT DO NOTHING`, aliasID, c.Name); err != nil {
					return fmt.Errorf("link alias %q to genre %q: %w", key, c.Name, err)
				}
				genreEdges++
			case taxonomy.FlagContribution:
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO alias_flags (alias_id, flag) VALUES (?, ?)
					ON CONFLICT DO NOTHING`, aliasID, c.Kind.String()); err != nil {
					return fmt.Errorf("link alias %q to flag %s: %w", key, c.Kind, err)
				}
				flagEdges++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit alias table replace: %w", err)
	}

	logging.Ctx(ctx).Info().
		Int("aliases", aliasCount).
		Int("genre_edges", genreEdges).
		Int("flag_edges", flagEdges).
		Msg("Alias table persisted")

	return nil
}

// AliasCount returns the number of persisted alias keys.
func (db *DB) AliasCount(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM genre_aliases`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count aliases: %w", err)
	}
	return n, nil
}
