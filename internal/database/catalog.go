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

	"github.com/goccy/go-json"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
	"github.com/tomtom215/gamereel/internal/models"
)

// UpsertGame inserts or replaces a game catalog row. Raw genres are
// stored as a JSON-encoded list.
func (db *DB) UpsertGame(ctx context.Context, g models.Game) error {
	raw, err := json.Marshal(g.RawGenres)
	if err != nil {
		return fmt.Errorf("encode raw genres for game %d: %w", g.ID, err)
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO games
			(id, name, release_year, steam_appid, description, raw_genres,
			 is_adult, is_multiplayer, is_tv_format)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.ReleaseYear, g.SteamAppID, g.Description, string(raw),
		g.Flags.Adult, g.Flags.Multiplayer, g.Flags.TVFormat)
	if err != nil {
		return fmt.Errorf("upsert game %d: %w", g.ID, err)
	}
	return nil
}

// UpsertMovie inserts or replaces a movie catalog row.
func (db *DB) UpsertMovie(ctx context.Context, m models.Movie) error {
	raw, err := json.Marshal(m.RawGenres)
	if err != nil {
		return fmt.Errorf("encode raw genres for movie %d: %w", m.ID, err)
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO movies
			(id, title, release_year, overview, raw_genres,
			 is_adult, is_multiplayer, is_tv_format)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.ReleaseYear, m.Overview, string(raw),
		m.Flags.Adult, m.Flags.Multiplayer, m.Flags.TVFormat)
	if err != nil {
		return fmt.Errorf("upsert movie %d: %w", m.ID, err)
	}
	return nil
}

// ListGames returns all games ordered by id.
func (db *DB) ListGames(ctx context.Context) ([]models.Game, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, release_year, steam_appid, description, raw_genres,
		       is_adult, is_multiplayer, is_tv_format
		FROM games ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer closeWithLog(rows, "games rows")

	var games []models.Game
	for rows.Next() {
		var (
			g           models.Game
			releaseYear sql.NullInt32
			steamAppID  sql.NullInt64
			description sql.NullString
			rawGenres   sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Name, &releaseYear, &steamAppID, &description,
			&rawGenres, &g.Flags.Adult, &g.Flags.Multiplayer, &g.Flags.TVFormat); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.ReleaseYear = int(releaseYear.Int32)
		g.SteamAppID = steamAppID.Int64
		g.Description = description.String
		g.RawGenres = decodeRawGenres(ctx, models.DomainGame, g.ID, rawGenres)
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListMovies returns all movies ordered by id.
func (db *DB) ListMovies(ctx context.Context) ([]models.Movie, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, release_year, overview, raw_genres,
		       is_adult, is_multiplayer, is_tv_format
		FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer closeWithLog(rows, "movies rows")

	var movies []models.Movie
	for rows.Next() {
		var (
			m           models.Movie
			releaseYear sql.NullInt32
			overview    sql.NullString
			rawGenres   sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Title, &releaseYear, &overview,
			&rawGenres, &m.Flags.Adult, &m.Flags.Multiplayer, &m.Flags.TVFormat); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.ReleaseYear = int(releaseYear.Int32)
		m.Overview = overview.String
		m.RawGenres = decodeRawGenres(ctx, models.DomainMovie, m.ID, rawGenres)
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// decodeRawGenres decodes a stored raw-genre JSON list. Malformed or
// null values decode to an empty list with a warning; a bad row must
// not abort a pipeline stage.
func decodeRawGenres(ctx context.Context, domain models.Domain, id int64, raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw.String), &genres); err != nil {
		metrics.MalformedGenreFields.Inc()
		logging.Ctx(ctx).Warn().
			Str("domain", string(domain)).
			Int64("item_id", id).
			Err(err).
			Msg("Malformed raw genre field, treating as empty")
		return nil
	}
	return genres
}

// FindGameByName returns the first game whose name matches the given
// pattern case-insensitively (substring match). Returns ErrNotFound
// when nothing matches.
func (db *DB) FindGameByName(ctx context.Context, name string) (models.Game, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx, `
		SELECT id FROM games
		WHERE name ILIKE '%' || ? || '%'
		ORDER BY id LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Game{}, fmt.Errorf("game matching %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("find game by name: %w", err)
	}
	return db.GetGame(ctx, id)
}

// GetGame returns one game by id, or ErrNotFound.
func (db *DB) GetGame(ctx context.Context, id int64) (models.Game, error) {
	var (
		g           models.Game
		releaseYear sql.NullInt32
		steamAppID  sql.NullInt64
		description sql.NullString
		rawGenres   sql.NullString
	)
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, name, release_year, steam_appid, description, raw_genres,
		       is_adult, is_multiplayer, is_tv_format
		FROM games WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &releaseYear, &steamAppID, &description,
			&rawGenres, &g.Flags.Adult, &g.Flags.Multiplayer, &g.Flags.TVFormat)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Game{}, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	g.ReleaseYear = int(releaseYear.Int32)
	g.SteamAppID = steamAppID.Int64
	g.Description = description.String
	g.RawGenres = decodeRawGenres(ctx, models.DomainGame, g.ID, rawGenres)
	return g, nil
}

// SetGameFlags recomputes a game's content flags.
func (db *DB) SetGameFlags(ctx context.Context, gameID int64, flags models.ContentFlags) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE games SET is_adult = ?, is_multiplayer = ?, is_tv_format = ?
		WHERE id = ?`, flags.Adult, flags.Multiplayer, flags.TVFormat, gameID)
	if err != nil {
		return fmt.Errorf("set game %d flags: %w", gameID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}
	return nil
}

// SetMovieFlags recomputes a movie's content flags.
func (db *DB) SetMovieFlags(ctx context.Context, movieID int64, flags models.ContentFlags) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE movies SET is_adult = ?, is_multiplayer = ?, is_tv_format = ?
		WHERE id = ?`, flags.Adult, flags.Multiplayer, flags.TVFormat, movieID)
	if err != nil {
		return fmt.Errorf("set movie %d flags: %w", movieID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}
	return nil
}
