// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package aliasmatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
	"github.com/tomtom215/gamereel/internal/models"
)

// Source is the catalog access the matcher needs. Implemented by the
// database package.
type Source interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
}

// HitSets is the matcher's output artifact: for each item, the sorted
// set of alias keys whose keywords appeared in its text.
type HitSets struct {
	Aliases []string           `json:"aliases"`
	Games   map[int64][]string `json:"games"`
	Movies  map[int64][]string `json:"movies"`
}

// SharedAlias reports whether two sorted alias-key sets intersect.
func SharedAlias(a, b []string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Matcher scans item text against a keyword dictionary.
type Matcher struct {
	dict *Dictionary
}

// NewMatcher creates a matcher over the given dictionary.
func NewMatcher(dict *Dictionary) *Matcher {
	return &Matcher{dict: dict}
}

// Match returns the sorted alias keys triggered by the text. The first
// keyword hit per alias key short-circuits the rest of that key's list;
// an alias key appears at most once regardless of how many of its
// keywords occur.
func (m *Matcher) Match(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var hits []string
	for _, alias := range m.dict.keys {
		for _, kw := range m.dict.keywords[alias] {
			if strings.Contains(lowered, kw) {
				hits = append(hits, alias)
				break
			}
		}
	}
	return hits
}

// Run scans both catalogs and returns the per-item hit sets. Games are
// matched on their description, movies on their overview. Items with no
// hits get an empty entry so the artifact distinguishes "scanned, no
// hits" from "not scanned".
func (m *Matcher) Run(ctx context.Context, src Source) (*HitSets, error) {
	hits := &HitSets{
		Aliases: m.dict.Keys(),
		Games:   make(map[int64][]string),
		Movies:  make(map[int64][]string),
	}

	games, err := src.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	var gameHits int
	for i := range games {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h := m.Match(games[i].Description)
		hits.Games[games[i].ID] = h
		gameHits += len(h)
	}
	metrics.AliasHits.WithLabelValues(string(models.DomainGame)).Add(float64(gameHits))

	movies, err := src.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	var movieHits int
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h := m.Match(movies[i].Overview)
		hits.Movies[movies[i].ID] = h
		movieHits += len(h)
	}
	metrics.AliasHits.WithLabelValues(string(models.DomainMovie)).Add(float64(movieHits))

	logging.Ctx(ctx).Info().
		Int("aliases", m.dict.Len()).
		Int("games", len(games)).
		Int("movies", len(movies)).
		Int("game_hits", gameHits).
		Int("movie_hits", movieHits).
		Msg("Keyword alias matching complete")

	return hits, nil
}
