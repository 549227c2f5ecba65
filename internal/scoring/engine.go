// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package scoring combines the genre space, the text space, and the
// alias hit sets into ranked game-to-movie recommendations.
//
// For each game, every movie is scored as
//
//	alpha*cos(genre) + (1-alpha)*cos(text) + beta*[shared alias]
//
// where a similarity term is zero when either side is absent from that
// space. Only strictly positive scores are kept; each game retains its
// top K movies, ordered by descending score with ties broken by
// ascending movie id. Scoring is pure: reruns over the same artifacts
// and parameters produce identical output regardless of worker count.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/gamereel/internal/aliasmatch"
	"github.com/tomtom215/gamereel/internal/artifact"
	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
	"github.com/tomtom215/gamereel/internal/models"
	"github.com/tomtom215/gamereel/internal/vectorspace"
)

// Config holds the scoring parameters.
type Config struct {
	// Alpha balances genre vs text similarity: 1 = genre only.
	Alpha float64

	// Beta is the flat bonus added when alias hit sets intersect.
	Beta float64

	// TopK is the number of recommendations retained per game.
	TopK int

	// Workers is the scoring goroutine count. 0 = runtime.NumCPU().
	Workers int
}

// Inputs are the artifacts a scoring run consumes. Hits may be nil
// when Beta is zero.
type Inputs struct {
	Genre *vectorspace.GenreSpace
	Text  *vectorspace.TextSpace
	Hits  *aliasmatch.HitSets
}

// Sink persists the scored output. Implemented by the database package.
type Sink interface {
	ReplaceRecommendations(ctx context.Context, recs []models.Recommendation, batchSize int) (int, error)
}

// Summary reports the outcome of a scoring run.
type Summary struct {
	RunID        string        `json:"run_id"`
	GamesScored  int           `json:"games_scored"`
	GamesSkipped int           `json:"games_skipped"`
	PairsWritten int           `json:"pairs_written"`
	Duration     time.Duration `json:"duration"`
}

// LoadInputs fetches the scoring artifacts from the artifact store. A
// missing vector space aborts with an error naming the artifact. The
// hit sets are required only when beta is nonzero; when beta is zero
// the bonus term is identically zero and a missing hit-set artifact is
// tolerated.
func LoadInputs(store *artifact.Store, beta float64) (*Inputs, error) {
	var in Inputs

	var genre vectorspace.GenreSpace
	if _, err := store.Load(artifact.GenreSpaceName, &genre); err != nil {
		return nil, fmt.Errorf("load genre space: %w", err)
	}
	in.Genre = &genre

	var text vectorspace.TextSpace
	if _, err := store.Load(artifact.TextSpaceName, &text); err != nil {
		return nil, fmt.Errorf("load text space: %w", err)
	}
	in.Text = &text

	var hits aliasmatch.HitSets
	if _, err := store.Load(artifact.HitSetsName, &hits); err != nil {
		if errors.Is(err, artifact.ErrArtifactMissing) && beta == 0 {
			return &in, nil
		}
		return nil, fmt.Errorf("load alias hit sets: %w", err)
	}
	in.Hits = &hits

	return &in, nil
}

// Engine scores games against movies.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine.
func NewEngine(cfg Config) *Engine {
	if cfg.TopK <= 0 {
		cfg.TopK = 10
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{cfg: cfg}
}

// itemView is one item's normalized presence across the spaces.
type itemView struct {
	id int64

	genreVec []float64 // unit length, nil when absent or zero-norm

	textCols []int // unit-length sparse row, nil when absent
	textVals []float64

	aliases []string // sorted hit set, nil when unavailable
}

// Score runs the full scoring pass and returns every retained
// recommendation, grouped by ascending game id.
func (e *Engine) Score(ctx context.Context, in *Inputs) ([]models.Recommendation, Summary, error) {
	start := time.Now()
	defer metrics.ObserveStageDuration("score", start)

	if e.cfg.Beta > 0 && in.Hits == nil {
		return nil, Summary{}, errors.New("beta > 0 but alias hit sets are unavailable")
	}

	games := e.buildViews(in, true)
	movies := e.buildViews(in, false)

	results := make([][]models.Recommendation, len(games))
	skipped := make([]int, e.cfg.Workers)

	var wg sync.WaitGroup
	chunkSize := (len(games) + e.cfg.Workers - 1) / e.cfg.Workers
	for w := 0; w < e.cfg.Workers; w++ {
		lo := w * chunkSize
		hi := lo + chunkSize
		if hi > len(games) {
			hi = len(games)
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(worker, lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				recs := e.scoreGame(games[i], movies)
				if recs == nil {
					skipped[worker]++
					continue
				}
				results[i] = recs
			}
		}(w, lo, hi)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, Summary{}, err
	}

	sum := Summary{
		RunID:    logging.RunIDFromContext(ctx),
		Duration: time.Since(start),
	}
	for _, n := range skipped {
		sum.GamesSkipped += n
	}

	var all []models.Recommendation
	for _, recs := range results {
		if recs == nil {
			continue
		}
		sum.GamesScored++
		all = append(all, recs...)
	}

	return all, sum, nil
}

// Run scores and persists in one step, replacing the stored
// recommendation set.
func (e *Engine) Run(ctx context.Context, in *Inputs, sink Sink, batchSize int) (Summary, error) {
	if logging.RunIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewRunID(ctx)
	}

	recs, sum, err := e.Score(ctx, in)
	if err != nil {
		metrics.StageErrors.WithLabelValues("score").Inc()
		return sum, err
	}

	written, err := sink.ReplaceRecommendations(ctx, recs, batchSize)
	if err != nil {
		metrics.StageErrors.WithLabelValues("score").Inc()
		return sum, fmt.Errorf("persist recommendations (%d of %d staged): %w", written, len(recs), err)
	}
	sum.PairsWritten = written

	logging.Ctx(ctx).Info().
		Int("games_scored", sum.GamesScored).
		Int("games_skipped", sum.GamesSkipped).
		Int("pairs_written", sum.PairsWritten).
		Dur("duration", sum.Duration).
		Float64("alpha", e.cfg.Alpha).
		Float64("beta", e.cfg.Beta).
		Int("top_k", e.cfg.TopK).
		Msg("Scoring run complete")

	return sum, nil
}

// buildViews assembles the per-item normalized views for one side,
// sorted by ascending id. Items with zero norm in a space are treated
// as absent from it; items absent from every space are dropped.
func (e *Engine) buildViews(in *Inputs, gameSide bool) []itemView {
	genreVectors := in.Genre.MovieVectors
	rowIDs := in.Text.MovieRowIDs
	matrix := in.Text.MovieMatrix
	if gameSide {
		genreVectors = in.Genre.GameVectors
		rowIDs = in.Text.GameRowIDs
		matrix = in.Text.GameMatrix
	}

	views := make(map[int64]*itemView)

	// Zero-norm items stay in the view with nil vectors: they are
	// absent from the space but still counted as skipped, not silently
	// dropped.
	for id, vec := range genreVectors {
		v := &itemView{id: id}
		unit := make([]float64, len(vec))
		copy(unit, vec)
		if vectorspace.NormalizeDense(unit) {
			v.genreVec = unit
		}
		views[id] = v
	}

	for row, id := range rowIDs {
		v, ok := views[id]
		if !ok {
			v = &itemView{id: id}
			views[id] = v
		}
		norm := matrix.RowNorm(row)
		if norm == 0 {
			continue
		}
		cols, vals := matrix.Row(row)
		unit := make([]float64, len(vals))
		for i, val := range vals {
			unit[i] = val / norm
		}
		v.textCols = cols
		v.textVals = unit
	}

	if in.Hits != nil {
		hitSets := in.Hits.Movies
		if gameSide {
			hitSets = in.Hits.Games
		}
		for id, aliases := range hitSets {
			if v, ok := views[id]; ok {
				v.aliases = aliases
			}
		}
	}

	out := make([]itemView, 0, len(views))
	for _, v := range views {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// scoreGame ranks all movies for one game. Returns nil when the game
// has no signal in either space.
func (e *Engine) scoreGame(game itemView, movies []itemView) []models.Recommendation {
	if game.genreVec == nil && game.textCols == nil {
		return nil
	}

	top := newTopK(e.cfg.TopK)
	for i := range movies {
		m := &movies[i]

		var score float64
		if game.genreVec != nil && m.genreVec != nil {
			score += e.cfg.Alpha * vectorspace.Dot(game.genreVec, m.genreVec)
		}
		if game.textCols != nil && m.textCols != nil {
			score += (1 - e.cfg.Alpha) * vectorspace.DotSparse(game.textCols, game.textVals, m.textCols, m.textVals)
		}
		if e.cfg.Beta > 0 && aliasmatch.SharedAlias(game.aliases, m.aliases) {
			score += e.cfg.Beta
		}

		if score > 0 {
			top.offer(scored{movieID: m.id, score: score})
		}
	}

	ranked := top.ranked()
	if len(ranked) == 0 {
		// Scored but nothing positive: still counts as scored, with an
		// empty slate.
		return []models.Recommendation{}
	}
	recs := make([]models.Recommendation, len(ranked))
	for i, s := range ranked {
		recs[i] = models.Recommendation{GameID: game.id, MovieID: s.movieID, Score: s.score}
	}
	return recs
}
