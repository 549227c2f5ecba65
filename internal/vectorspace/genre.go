// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package vectorspace builds the two shared-dimension numeric
// representations that make games and movies comparable: a canonical
// genre vector space and a joint TF-IDF text vector space.
//
// Both builders enforce the same exclusion rule: an item whose vector
// would have no nonzero entries is omitted entirely, never emitted as a
// zero vector, so "no usable signal" stays distinguishable from
// "scored zero similarity".
package vectorspace

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
)

// GenreSource is the storage access the genre-space builder needs.
// Implemented by the database package.
type GenreSource interface {
	// ListGenreNames returns all canonical genre names. Rows exist only
	// for genres referenced by at least one alias mapping, since the
	// annotate stage creates them lazily.
	ListGenreNames(ctx context.Context) ([]string, error)

	// GameGenres returns canonical genre names per game id.
	GameGenres(ctx context.Context) (map[int64][]string, error)

	// MovieGenres returns canonical genre names per movie id.
	MovieGenres(ctx context.Context) (map[int64][]string, error)
}

// GenreSpace is the canonical-genre vector space artifact. The
// dimension index is shared between the game and movie sides; vectors
// are dense over that index.
type GenreSpace struct {
	// DimensionIndex maps canonical genre name to vector offset. It is
	// identical for both domains.
	DimensionIndex map[string]int `json:"dimension_index"`

	// IDF holds the per-genre weight applied to present dimensions:
	// 1/ln(1+df) with df the joint document frequency across both
	// catalogs.
	IDF map[string]float64 `json:"idf"`

	GameVectors  map[int64][]float64 `json:"game_vectors"`
	MovieVectors map[int64][]float64 `json:"movie_vectors"`

	// ExcludedGames and ExcludedMovies count items omitted for having
	// no canonical genre in the dimension space.
	ExcludedGames  int `json:"excluded_games"`
	ExcludedMovies int `json:"excluded_movies"`
}

// BuildGenreSpace constructs the genre vector space over both catalogs.
// The weighting policy is applied identically to games and movies.
func BuildGenreSpace(ctx context.Context, src GenreSource) (*GenreSpace, error) {
	names, err := src.ListGenreNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	sort.Strings(names)

	index := make(map[string]int, len(names))
	for _, name := range names {
		if _, dup := index[name]; !dup {
			index[name] = len(index)
		}
	}

	gameGenres, err := src.GameGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("game genres: %w", err)
	}
	movieGenres, err := src.MovieGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("movie genres: %w", err)
	}

	// Joint document frequency: each item counts a genre once.
	df := make(map[string]int, len(index))
	countDF := func(itemGenres map[int64][]string) {
		for _, genres := range itemGenres {
			seen := make(map[string]struct{}, len(genres))
			for _, g := range genres {
				if _, ok := index[g]; !ok {
					continue
				}
				if _, dup := seen[g]; dup {
					continue
				}
				seen[g] = struct{}{}
				df[g]++
			}
		}
	}
	countDF(gameGenres)
	countDF(movieGenres)

	idf := make(map[string]float64, len(df))
	for name, count := range df {
		idf[name] = 1.0 / math.Log(1+float64(count))
	}

	space := &GenreSpace{
		DimensionIndex: index,
		IDF:            idf,
		GameVectors:    make(map[int64][]float64, len(gameGenres)),
		MovieVectors:   make(map[int64][]float64, len(movieGenres)),
	}

	encode := func(genres []string) []float64 {
		vec := make([]float64, len(index))
		nonzero := false
		for _, g := range genres {
			offset, ok := index[g]
			if !ok {
				continue
			}
			if w := idf[g]; w > 0 {
				vec[offset] = w
				nonzero = true
			}
		}
		if !nonzero {
			return nil
		}
		return vec
	}

	for id, genres := range gameGenres {
		if vec := encode(genres); vec != nil {
			space.GameVectors[id] = vec
		} else {
			space.ExcludedGames++
		}
	}
	for id, genres := range movieGenres {
		if vec := encode(genres); vec != nil {
			space.MovieVectors[id] = vec
		} else {
			space.ExcludedMovies++
		}
	}

	metrics.ZeroSignalItems.WithLabelValues("game", "genre").Add(float64(space.ExcludedGames))
	metrics.ZeroSignalItems.WithLabelValues("movie", "genre").Add(float64(space.ExcludedMovies))

	logging.Ctx(ctx).Info().
		Int("dimensions", len(index)).
		Int("game_vectors", len(space.GameVectors)).
		Int("movie_vectors", len(space.MovieVectors)).
		Int("excluded_games", space.ExcludedGames).
		Int("excluded_movies", space.ExcludedMovies).
		Msg("Genre vector space built")

	return space, nil
}
