// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetOrCreateGenre returns the id of the canonical genre with the given
// name, creating the row if needed. Idempotent: the name column is
// unique and concurrent creates converge on one row.
func (db *DB) GetOrCreateGenre(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errors.New("genre name is empty")
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO genres (name) VALUES (?) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return 0, fmt.Errorf("create genre %q: %w", name, err)
	}

	var id int64
	err = db.conn.QueryRowContext(ctx, `SELECT id FROM genres WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get genre %q: %w", name, err)
	}
	return id, nil
}

// ListGenreNames returns all canonical genre names sorted.
func (db *DB) ListGenreNames(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT name FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list genre names: %w", err)
	}
	defer closeWithLog(rows, "genre rows")

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ReplaceGameGenres replaces a game's canonical genre joins in one
// transaction.
func (db *DB) ReplaceGameGenres(ctx context.Context, gameID int64, genreIDs []int64) error {
	return db.replaceItemGenres(ctx, "game_genres", "game_id", gameID, genreIDs)
}

// ReplaceMovieGenres replaces a movie's canonical genre joins in one
// transaction.
func (db *DB) ReplaceMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) error {
	return db.replaceItemGenres(ctx, "movie_genres", "movie_id", movieID, genreIDs)
}

func (db *DB) replaceItemGenres(ctx context.Context, table, idCol string, itemID int64, genreIDs []int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s replace: %w", table, err)
	}
	defer rollbackQuietly(tx)

	// Table and column names come from the two callers above, never
	// from input.
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table, idCol), itemID); err != nil {
		return fmt.Errorf("clear %s for item %d: %w", table, itemID, err)
	}

	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (%s, genre_id) VALUES (?, ?)`, table, idCol),
			itemID, gid); err != nil {
			return fmt.Errorf("insert %s (%d, %d): %w", table, itemID, gid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s replace: %w", table, err)
	}
	return nil
}

// GameGenres returns the canonical genre names per game. Every game has
// an entry; games with no genre joins map to an empty slice so callers
// can tell "no signal" from "absent".
func (db *DB) GameGenres(ctx context.Context) (map[int64][]string, error) {
	return db.itemGenres(ctx, `
		SELECT g.id, gr.name
		FROM games g
		LEFT JOIN game_genres gg ON gg.game_id = g.id
		LEFT JOIN genres gr ON gr.id = gg.genre_id
		ORDER BY g.id, gr.name`)
}

// MovieGenres returns the canonical genre names per movie, including
// genreless movies with empty slices.
func (db *DB) MovieGenres(ctx context.Context) (map[int64][]string, error) {
	return db.itemGenres(ctx, `
		SELECT m.id, gr.name
		FROM movies m
		LEFT JOIN movie_genres mg ON mg.movie_id = m.id
		LEFT JOIN genres gr ON gr.id = mg.genre_id
		ORDER BY m.id, gr.name`)
}

func (db *DB) itemGenres(ctx context.Context, query string) (map[int64][]string, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query item genres: %w", err)
	}
	defer closeWithLog(rows, "item genre rows")

	out := make(map[int64][]string)
	for rows.Next() {
		var (
			id   int64
			name sql.NullString
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan item genre: %w", err)
		}
		if _, ok := out[id]; !ok {
			out[id] = []string{}
		}
		if name.Valid {
			out[id] = append(out[id], name.String)
		}
	}
	return out, rows.Err()
}

// rollbackQuietly rolls a transaction back, ignoring the "already
// committed" error from the deferred path.
func rollbackQuietly(tx *sql.Tx) {
	_ = tx.Rollback()
}
