// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package main is the Gamereel pipeline entry point.
//
// Gamereel recommends movies for games by comparing content features
// across the two catalogs: canonical genres resolved through an alias
// taxonomy, TF-IDF text vectors over descriptions, and thematic keyword
// hits. Each stage reads the DuckDB catalog, computes an artifact, and
// persists it to the versioned artifact store; the scoring stage
// combines the artifacts into ranked recommendations stored back in
// DuckDB.
//
// # Subcommands
//
//	resolve        persist the alias table and annotate both catalogs
//	genre-vectors  build the IDF-weighted genre vector space
//	text-vectors   build the joint TF-IDF text vector space
//	match-aliases  scan descriptions for thematic keyword hits
//	score          score and persist recommendations
//	run            all stages in order
//	top            print stored recommendations for one game
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): GAMEREEL_ environment variables, config.yaml (or
// CONFIG_PATH), built-in defaults.
//
// Exit status is 0 on success and 1 on any stage failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/gamereel/internal/aliasmatch"
	"github.com/tomtom215/gamereel/internal/artifact"
	"github.com/tomtom215/gamereel/internal/config"
	"github.com/tomtom215/gamereel/internal/database"
	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
	"github.com/tomtom215/gamereel/internal/scoring"
	"github.com/tomtom215/gamereel/internal/taxonomy"
	"github.com/tomtom215/gamereel/internal/vectorspace"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: gamereel <command> [flags]

Commands:
  resolve        persist the alias table and annotate both catalogs
  genre-vectors  build the IDF-weighted genre vector space
  text-vectors   build the joint TF-IDF text vector space
  match-aliases  scan descriptions for thematic keyword hits
  score          score and persist recommendations
  run            all stages in order
  top            print stored recommendations for one game
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	command := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithNewRunID(ctx)

	if err := dispatch(ctx, command, args, cfg); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("command", command).Msg("Command failed")
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, command string, args []string, cfg *config.Config) error {
	switch command {
	case "resolve":
		return withStores(ctx, cfg, false, func(db *database.DB, _ *artifact.Store) error {
			return runResolve(ctx, cfg, db)
		})
	case "genre-vectors":
		return withStores(ctx, cfg, true, func(db *database.DB, store *artifact.Store) error {
			return runGenreVectors(ctx, db, store)
		})
	case "text-vectors":
		return withStores(ctx, cfg, true, func(db *database.DB, store *artifact.Store) error {
			return runTextVectors(ctx, cfg, db, store)
		})
	case "match-aliases":
		return withStores(ctx, cfg, true, func(db *database.DB, store *artifact.Store) error {
			return runMatchAliases(ctx, cfg, db, store)
		})
	case "score":
		scoringCfg, err := parseScoreFlags(cfg, args)
		if err != nil {
			return err
		}
		return withStores(ctx, cfg, true, func(db *database.DB, store *artifact.Store) error {
			return runScore(ctx, scoringCfg, db, store)
		})
	case "run":
		return withStores(ctx, cfg, true, func(db *database.DB, store *artifact.Store) error {
			return runAll(ctx, cfg, db, store)
		})
	case "top":
		return withStores(ctx, cfg, false, func(db *database.DB, _ *artifact.Store) error {
			return runTop(ctx, cfg, db, args)
		})
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// withStores opens the database (and, when needed, the artifact store),
// runs fn, and closes everything.
func withStores(ctx context.Context, cfg *config.Config, needArtifacts bool, fn func(*database.DB, *artifact.Store) error) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Error closing database")
		}
	}()

	var store *artifact.Store
	if needArtifacts {
		store, err = artifact.Open(cfg.Artifacts.Dir)
		if err != nil {
			return fmt.Errorf("open artifact store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logging.Ctx(ctx).Error().Err(err).Msg("Error closing artifact store")
			}
		}()
	}

	return fn(db, store)
}

func runResolve(ctx context.Context, cfg *config.Config, db *database.DB) error {
	start := time.Now()
	defer metrics.ObserveStageDuration("resolve", start)

	table, err := taxonomy.LoadAliasTable(cfg.Taxonomy.AliasTablePath)
	if err != nil {
		return err
	}
	if err := db.ReplaceAliasTable(ctx, table); err != nil {
		return err
	}

	resolver := taxonomy.NewResolver(table, cfg.Taxonomy.DenyList)
	if _, err := taxonomy.NewAnnotator(db, resolver).Run(ctx); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Dur("duration", time.Since(start)).
		Msg("Resolve stage complete")
	return nil
}

func runGenreVectors(ctx context.Context, db *database.DB, store *artifact.Store) error {
	start := time.Now()
	defer metrics.ObserveStageDuration("genre_vectors", start)

	space, err := vectorspace.BuildGenreSpace(ctx, db)
	if err != nil {
		return err
	}
	if _, err := store.Save(artifact.GenreSpaceName, logging.RunIDFromContext(ctx), space); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Dur("duration", time.Since(start)).
		Msg("Genre vector stage complete")
	return nil
}

func runTextVectors(ctx context.Context, cfg *config.Config, db *database.DB, store *artifact.Store) error {
	start := time.Now()
	defer metrics.ObserveStageDuration("text_vectors", start)

	games, err := db.ListGames(ctx)
	if err != nil {
		return err
	}
	movies, err := db.ListMovies(ctx)
	if err != nil {
		return err
	}

	gameDocs := make([]vectorspace.Document, len(games))
	for i, g := range games {
		gameDocs[i] = vectorspace.Document{ID: g.ID, Text: g.Description}
	}
	movieDocs := make([]vectorspace.Document, len(movies))
	for i, m := range movies {
		movieDocs[i] = vectorspace.Document{ID: m.ID, Text: m.Overview}
	}

	space := vectorspace.BuildTextSpace(ctx, gameDocs, movieDocs, vectorspace.TextConfig{
		MaxVocabulary: cfg.Text.MaxVocabulary,
		MinNGram:      cfg.Text.MinNGram,
		MaxNGram:      cfg.Text.MaxNGram,
	})
	if _, err := store.Save(artifact.TextSpaceName, logging.RunIDFromContext(ctx), space); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Dur("duration", time.Since(start)).
		Msg("Text vector stage complete")
	return nil
}

func runMatchAliases(ctx context.Context, cfg *config.Config, db *database.DB, store *artifact.Store) error {
	start := time.Now()
	defer metrics.ObserveStageDuration("match_aliases", start)

	dict, err := aliasmatch.LoadDictionary(cfg.Keywords.DictionaryPath)
	if err != nil {
		return err
	}
	hits, err := aliasmatch.NewMatcher(dict).Run(ctx, db)
	if err != nil {
		return err
	}
	if _, err := store.Save(artifact.HitSetsName, logging.RunIDFromContext(ctx), hits); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Dur("duration", time.Since(start)).
		Msg("Alias match stage complete")
	return nil
}

// parseScoreFlags applies score subcommand overrides on top of the
// configured scoring section.
func parseScoreFlags(cfg *config.Config, args []string) (config.ScoringConfig, error) {
	sc := cfg.Scoring

	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.Float64Var(&sc.Alpha, "alpha", sc.Alpha, "genre vs text balance (1 = genre only)")
	fs.Float64Var(&sc.Beta, "beta", sc.Beta, "flat bonus for shared alias hits")
	fs.IntVar(&sc.TopK, "top-k", sc.TopK, "recommendations kept per game")
	if err := fs.Parse(args); err != nil {
		return sc, err
	}

	if sc.Alpha < 0 || sc.Alpha > 1 {
		return sc, fmt.Errorf("alpha %v out of range [0,1]", sc.Alpha)
	}
	if sc.Beta < 0 {
		return sc, fmt.Errorf("beta %v must be >= 0", sc.Beta)
	}
	if sc.TopK < 1 {
		return sc, fmt.Errorf("top-k %d must be >= 1", sc.TopK)
	}
	return sc, nil
}

func runScore(ctx context.Context, sc config.ScoringConfig, db *database.DB, store *artifact.Store) error {
	in, err := scoring.LoadInputs(store, sc.Beta)
	if err != nil {
		return err
	}

	engine := scoring.NewEngine(scoring.Config{
		Alpha:   sc.Alpha,
		Beta:    sc.Beta,
		TopK:    sc.TopK,
		Workers: sc.Workers,
	})
	_, err = engine.Run(ctx, in, db, sc.BatchSize)
	return err
}

// runAll executes every stage in pipeline order against one run id.
func runAll(ctx context.Context, cfg *config.Config, db *database.DB, store *artifact.Store) error {
	if err := runResolve(ctx, cfg, db); err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	if err := runGenreVectors(ctx, db, store); err != nil {
		return fmt.Errorf("genre-vectors: %w", err)
	}
	if err := runTextVectors(ctx, cfg, db, store); err != nil {
		return fmt.Errorf("text-vectors: %w", err)
	}
	if err := runMatchAliases(ctx, cfg, db, store); err != nil {
		return fmt.Errorf("match-aliases: %w", err)
	}
	if err := runScore(ctx, cfg.Scoring, db, store); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	return nil
}

func runTop(ctx context.Context, cfg *config.Config, db *database.DB, args []string) error {
	fs := flag.NewFlagSet("top", flag.ContinueOnError)
	gameID := fs.Int64("game-id", 0, "game id to list recommendations for")
	name := fs.String("name", "", "game name (substring, case-insensitive) when -game-id is not set")
	k := fs.Int("k", cfg.Scoring.TopK, "number of recommendations to print")
	if err := fs.Parse(args); err != nil {
		return err
	}

	game := *gameID
	if game == 0 {
		if *name == "" {
			return fmt.Errorf("top requires -game-id or -name")
		}
		g, err := db.FindGameByName(ctx, *name)
		if err != nil {
			return err
		}
		game = g.ID
	}

	g, err := db.GetGame(ctx, game)
	if err != nil {
		return err
	}

	recs, err := db.TopRecommendationsForGame(ctx, game, *k)
	if err != nil {
		return err
	}

	fmt.Printf("Game: %s (ID %d, %d)\n", g.Name, g.ID, g.ReleaseYear)
	if len(recs) == 0 {
		fmt.Println("No stored recommendations. Run the score stage first.")
		return nil
	}
	for rank, r := range recs {
		fmt.Printf("%2d. %s (%d) - score %.3f\n", rank+1, r.Title, r.ReleaseYear, r.Score)
	}
	return nil
}
