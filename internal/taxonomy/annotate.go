// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package taxonomy

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
	"github.com/tomtom215/gamereel/internal/models"
)

// Store is the storage access the annotate stage needs. Implemented by
// the database package.
type Store interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetOrCreateGenre(ctx context.Context, name string) (int64, error)
	ReplaceGameGenres(ctx context.Context, gameID int64, genreIDs []int64) error
	ReplaceMovieGenres(ctx context.Context, movieID int64, genreIDs []int64) error
	SetGameFlags(ctx context.Context, gameID int64, flags models.ContentFlags) error
	SetMovieFlags(ctx context.Context, movieID int64, flags models.ContentFlags) error
}

// Summary reports the outcome of an annotate run.
type Summary struct {
	Games         int `json:"games"`
	Movies        int `json:"movies"`
	MappedStrings int `json:"mapped_strings"`
	Denied        int `json:"denied"`
	Unmapped      int `json:"unmapped"`
}

// Annotator recomputes the canonical genre assignment and content flags
// for every catalog item by re-running the resolver over its raw genre
// strings. Re-running with the same alias table is idempotent: joins
// are fully replaced per item and flags recomputed from scratch.
type Annotator struct {
	store    Store
	resolver *Resolver
}

// NewAnnotator creates an annotate stage over the given store.
func NewAnnotator(store Store, resolver *Resolver) *Annotator {
	return &Annotator{store: store, resolver: resolver}
}

// Run annotates both catalogs. Unmapped strings are logged and counted,
// never fatal; only storage errors abort the stage.
func (a *Annotator) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	games, err := a.store.ListGames(ctx)
	if err != nil {
		return sum, fmt.Errorf("list games: %w", err)
	}
	for i := range games {
		g := &games[i]
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := a.annotateItem(ctx, models.DomainGame, g.ID, g.RawGenres, &sum); err != nil {
			return sum, fmt.Errorf("annotate game %d: %w", g.ID, err)
		}
	}
	sum.Games = len(games)

	movies, err := a.store.ListMovies(ctx)
	if err != nil {
		return sum, fmt.Errorf("list movies: %w", err)
	}
	for i := range movies {
		m := &movies[i]
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := a.annotateItem(ctx, models.DomainMovie, m.ID, m.RawGenres, &sum); err != nil {
			return sum, fmt.Errorf("annotate movie %d: %w", m.ID, err)
		}
	}
	sum.Movies = len(movies)

	logging.Ctx(ctx).Info().
		Int("games", sum.Games).
		Int("movies", sum.Movies).
		Int("mapped", sum.MappedStrings).
		Int("denied", sum.Denied).
		Int("unmapped", sum.Unmapped).
		Msg("Taxonomy annotation complete")

	return sum, nil
}

// annotateItem resolves one item's raw genres and persists the derived
// canonical joins and flags.
func (a *Annotator) annotateItem(ctx context.Context, domain models.Domain, id int64, raws []string, sum *Summary) error {
	genreSet := make(map[string]struct{})
	var flags models.ContentFlags

	for _, res := range a.resolver.ResolveAll(raws) {
		switch res.Outcome {
		case OutcomeDenied:
			sum.Denied++
			metrics.DeniedGenres.Inc()
		case OutcomeUnmapped:
			sum.Unmapped++
			metrics.UnmappedGenres.Inc()
			logging.Ctx(ctx).Warn().
				Str("domain", string(domain)).
				Int64("item_id", id).
				Str("raw", res.Raw).
				Str("key", res.Key).
				Msg("Raw genre has no alias entry")
		case OutcomeMapped:
			sum.MappedStrings++
			for _, g := range res.Genres {
				genreSet[g] = struct{}{}
			}
			for _, f := range res.Flags {
				switch f {
				case FlagAdult:
					flags.Adult = true
				case FlagMultiplayer:
					flags.Multiplayer = true
				case FlagTVFormat:
					flags.TVFormat = true
				}
			}
		}
	}

	// Stable order so genre rows are created deterministically.
	names := make([]string, 0, len(genreSet))
	for n := range genreSet {
		names = append(names, n)
	}
	sort.Strings(names)

	genreIDs := make([]int64, 0, len(names))
	for _, name := range names {
		gid, err := a.store.GetOrCreateGenre(ctx, name)
		if err != nil {
			return fmt.Errorf("get or create genre %q: %w", name, err)
		}
		genreIDs = append(genreIDs, gid)
	}

	switch domain {
	case models.DomainGame:
		if err := a.store.ReplaceGameGenres(ctx, id, genreIDs); err != nil {
			return err
		}
		return a.store.SetGameFlags(ctx, id, flags)
	case models.DomainMovie:
		if err := a.store.ReplaceMovieGenres(ctx, id, genreIDs); err != nil {
			return err
		}
		return a.store.SetMovieFlags(ctx, id, flags)
	default:
		return fmt.Errorf("unknown domain %q", domain)
	}
}
