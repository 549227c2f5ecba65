// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package models defines the shared data structures for the Gamereel
// catalog: games, movies, canonical genres, aliases, and the persisted
// recommendation rows produced by the scoring stage.
package models

// Domain identifies which catalog an entity or artifact belongs to.
type Domain string

const (
	// DomainGame is the game catalog side.
	DomainGame Domain = "game"
	// DomainMovie is the movie catalog side.
	DomainMovie Domain = "movie"
)

// ContentFlags are boolean content attributes derived from alias hits.
// They are distinct from genre dimensions and never enter the vector
// spaces.
type ContentFlags struct {
	Adult       bool `json:"adult"`
	Multiplayer bool `json:"multiplayer"`
	TVFormat    bool `json:"tv_format"`
}

// Game is a game catalog entry.
//
// RawGenres holds the source genre strings exactly as ingested; the
// canonical genre assignment is derived by the taxonomy resolver and
// lives in the game_genres join, not here.
type Game struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	ReleaseYear int          `json:"release_year"`
	SteamAppID  int64        `json:"steam_appid,omitempty"`
	Description string       `json:"description,omitempty"`
	RawGenres   []string     `json:"raw_genres"`
	Flags       ContentFlags `json:"flags"`
}

// Movie is a movie catalog entry.
type Movie struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	ReleaseYear int          `json:"release_year"`
	Overview    string       `json:"overview,omitempty"`
	RawGenres   []string     `json:"raw_genres"`
	Flags       ContentFlags `json:"flags"`
}

// Genre is a canonical genre shared by both catalogs.
// Names are case-normalized at write time and unique.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreAlias is a raw, source-specific genre string mapped to zero or
// more canonical genres and/or flag markers. The mapping edges live in
// the alias_genres and alias_flags joins.
type GenreAlias struct {
	ID     int64  `json:"id"`
	Alias  string `json:"alias"`
	Source string `json:"source"` // "game", "movie", or "both"
}

// Recommendation is one persisted (game, movie) pair with its combined
// similarity score. The set for a run fully replaces the prior set.
type Recommendation struct {
	GameID  int64   `json:"game_id"`
	MovieID int64   `json:"movie_id"`
	Score   float64 `json:"score"`
}
