// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates all tables, sequences, and indexes idempotently.
func (db *DB) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %s: %w", query, err)
		}
	}
	return nil
}

func schemaQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_genre_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_alias_id START 1`,

		// Catalog tables. Item ids come from the upstream sources
		// (Steam app catalog, movie database), not a local sequence.
		// raw_genres holds the source genre strings as a JSON list.
		`CREATE TABLE IF NOT EXISTS games (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			release_year INTEGER,
			steam_appid BIGINT,
			description TEXT,
			raw_genres TEXT,
			is_adult BOOLEAN NOT NULL DEFAULT FALSE,
			is_multiplayer BOOLEAN NOT NULL DEFAULT FALSE,
			is_tv_format BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			release_year INTEGER,
			overview TEXT,
			raw_genres TEXT,
			is_adult BOOLEAN NOT NULL DEFAULT FALSE,
			is_multiplayer BOOLEAN NOT NULL DEFAULT FALSE,
			is_tv_format BOOLEAN NOT NULL DEFAULT FALSE
		)`,

		// Canonical genres, created lazily by the annotate stage.
		`CREATE TABLE IF NOT EXISTS genres (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_genre_id'),
			name TEXT NOT NULL UNIQUE
		)`,

		// Persisted alias table: each alias key with its source domain,
		// genre contribution edges, and flag contributions.
		`CREATE TABLE IF NOT EXISTS genre_aliases (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_alias_id'),
			alias TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS alias_genres (
			alias_id BIGINT NOT NULL,
			genre_id BIGINT NOT NULL,
			PRIMARY KEY (alias_id, genre_id)
		)`,

		`CREATE TABLE IF NOT EXISTS alias_flags (
			alias_id BIGINT NOT NULL,
			flag TEXT NOT NULL,
			PRIMARY KEY (alias_id, flag)
		)`,

		// Item to canonical genre joins, fully replaced per item on
		// every annotate run.
		`CREATE TABLE IF NOT EXISTS game_genres (
			game_id BIGINT NOT NULL,
			genre_id BIGINT NOT NULL,
			PRIMARY KEY (game_id, genre_id)
		)`,

		`CREATE TABLE IF NOT EXISTS movie_genres (
			movie_id BIGINT NOT NULL,
			genre_id BIGINT NOT NULL,
			PRIMARY KEY (movie_id, genre_id)
		)`,

		// Scoring output, replaced wholesale per run. The primary key
		// doubles as the pair-uniqueness constraint.
		`CREATE TABLE IF NOT EXISTS recommendations (
			game_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			score DOUBLE NOT NULL,
			PRIMARY KEY (game_id, movie_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_recommendations_game_score
			ON recommendations (game_id, score)`,
		`CREATE INDEX IF NOT EXISTS idx_game_genres_genre ON game_genres (genre_id)`,
		`CREATE INDEX IF NOT EXISTS idx_movie_genres_genre ON movie_genres (genre_id)`,
	}
}
