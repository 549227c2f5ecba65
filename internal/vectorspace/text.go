// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package vectorspace

import (
	"context"
	"math"
	"sort"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
)

// Document is one item's free text keyed by entity id.
type Document struct {
	ID   int64
	Text string
}

// TextConfig controls the joint TF-IDF vectorizer.
type TextConfig struct {
	// MaxVocabulary bounds the vocabulary size; the most document-
	// frequent terms are kept, ties broken lexicographically.
	MaxVocabulary int

	// MinNGram and MaxNGram bound the n-gram range (inclusive).
	MinNGram int
	MaxNGram int
}

// DefaultTextConfig matches the historical vectorizer settings: 50k
// terms, unigrams and bigrams.
func DefaultTextConfig() TextConfig {
	return TextConfig{MaxVocabulary: 50000, MinNGram: 1, MaxNGram: 2}
}

// TextSpace is the joint text vector space artifact. The vocabulary is
// fit once over the union of game and movie texts so that term offsets
// are comparable across domains; this is what makes cross-domain cosine
// similarity meaningful.
//
// Row order in each matrix is the only join key back to entity ids:
// row i of GameMatrix belongs to GameRowIDs[i]. Items with empty or
// zero-token text get no row at all.
type TextSpace struct {
	Vocabulary map[string]int `json:"vocabulary"`

	GameRowIDs  []int64 `json:"game_row_ids"`
	MovieRowIDs []int64 `json:"movie_row_ids"`

	GameMatrix  *CSR `json:"game_matrix"`
	MovieMatrix *CSR `json:"movie_matrix"`

	ExcludedGames  int `json:"excluded_games"`
	ExcludedMovies int `json:"excluded_movies"`
}

// BuildTextSpace fits the joint vocabulary and emits both row-aligned
// TF-IDF matrices. Inputs should contain every item of each domain;
// items with no usable text are excluded and counted.
func BuildTextSpace(ctx context.Context, games, movies []Document, cfg TextConfig) *TextSpace {
	if cfg.MaxVocabulary <= 0 {
		cfg.MaxVocabulary = 50000
	}

	type analyzed struct {
		id    int64
		terms []string
	}

	analyzeDocs := func(docs []Document, excluded *int) []analyzed {
		out := make([]analyzed, 0, len(docs))
		for _, d := range docs {
			terms := analyze(d.Text, cfg.MinNGram, cfg.MaxNGram)
			if len(terms) == 0 {
				*excluded++
				continue
			}
			out = append(out, analyzed{id: d.ID, terms: terms})
		}
		return out
	}

	space := &TextSpace{}
	gameDocs := analyzeDocs(games, &space.ExcludedGames)
	movieDocs := analyzeDocs(movies, &space.ExcludedMovies)

	// Joint document frequency over both corpora.
	df := make(map[string]int)
	countDF := func(docs []analyzed) {
		for _, d := range docs {
			seen := make(map[string]struct{}, len(d.terms))
			for _, t := range d.terms {
				if _, dup := seen[t]; !dup {
					seen[t] = struct{}{}
					df[t]++
				}
			}
		}
	}
	countDF(gameDocs)
	countDF(movieDocs)

	space.Vocabulary = fitVocabulary(df, cfg.MaxVocabulary)

	// Smooth IDF over the joint corpus: ln((1+N)/(1+df)) + 1.
	numDocs := len(gameDocs) + len(movieDocs)
	idf := make([]float64, len(space.Vocabulary))
	for term, offset := range space.Vocabulary {
		idf[offset] = math.Log(float64(1+numDocs)/float64(1+df[term])) + 1
	}

	vectorize := func(docs []analyzed) (*CSR, []int64) {
		matrix := NewCSR(len(space.Vocabulary))
		rowIDs := make([]int64, 0, len(docs))
		for _, d := range docs {
			counts := make(map[int]float64)
			for _, t := range d.terms {
				if offset, ok := space.Vocabulary[t]; ok {
					counts[offset]++
				}
			}
			cols := make([]int, 0, len(counts))
			for c := range counts {
				cols = append(cols, c)
			}
			sort.Ints(cols)
			vals := make([]float64, len(cols))
			for i, c := range cols {
				vals[i] = counts[c] * idf[c]
			}
			matrix.AppendRow(cols, vals)
			rowIDs = append(rowIDs, d.id)
		}
		return matrix, rowIDs
	}

	space.GameMatrix, space.GameRowIDs = vectorize(gameDocs)
	space.MovieMatrix, space.MovieRowIDs = vectorize(movieDocs)

	metrics.ZeroSignalItems.WithLabelValues("game", "text").Add(float64(space.ExcludedGames))
	metrics.ZeroSignalItems.WithLabelValues("movie", "text").Add(float64(space.ExcludedMovies))

	logging.Ctx(ctx).Info().
		Int("vocabulary", len(space.Vocabulary)).
		Int("game_rows", len(space.GameRowIDs)).
		Int("movie_rows", len(space.MovieRowIDs)).
		Int("excluded_games", space.ExcludedGames).
		Int("excluded_movies", space.ExcludedMovies).
		Msg("Text vector space built")

	return space
}

// fitVocabulary selects the top maxSize terms by document frequency
// (ties lexicographic) and assigns offsets in lexicographic order of
// the surviving terms.
func fitVocabulary(df map[string]int, maxSize int) map[string]int {
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}

	if len(terms) > maxSize {
		sort.Slice(terms, func(i, j int) bool {
			if df[terms[i]] != df[terms[j]] {
				return df[terms[i]] > df[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxSize]
	}

	sort.Strings(terms)
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}
