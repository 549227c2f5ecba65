// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package vectorspace

import (
	"context"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases and splits", "Deep SPACE Mining", []string{"deep", "space", "mining"}},
		{"strips punctuation", "fast-paced, tactical!", []string{"fast", "paced", "tactical"}},
		{"removes stopwords", "the crew of a ship", []string{"crew", "ship"}},
		{"drops single chars", "a x survival y", []string{"survival"}},
		{"empty", "", nil},
		{"only stopwords", "the and of", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNgrams(t *testing.T) {
	tokens := []string{"deep", "space", "mining"}

	uni := ngrams(tokens, 1, 1)
	if !reflect.DeepEqual(uni, tokens) {
		t.Errorf("unigrams = %v", uni)
	}

	both := ngrams(tokens, 1, 2)
	want := []string{"deep", "space", "mining", "deep space", "space mining"}
	if !reflect.DeepEqual(both, want) {
		t.Errorf("1-2 grams = %v, want %v", both, want)
	}

	if got := ngrams(nil, 1, 2); len(got) != 0 {
		t.Errorf("ngrams(nil) = %v, want empty", got)
	}
}

func TestBuildTextSpaceJointVocabulary(t *testing.T) {
	games := []Document{
		{ID: 1, Text: "haunted mansion survival horror"},
	}
	movies := []Document{
		{ID: 10, Text: "haunted mansion ghost story"},
	}

	space := BuildTextSpace(context.Background(), games, movies, DefaultTextConfig())

	// Terms from both domains live in one vocabulary with one offset
	// per term; "haunted" has the same offset for both matrices by
	// construction of the shared vocabulary.
	if _, ok := space.Vocabulary["haunted"]; !ok {
		t.Fatal("joint vocabulary missing shared term")
	}
	if _, ok := space.Vocabulary["ghost"]; !ok {
		t.Fatal("joint vocabulary missing movie-only term")
	}
	if _, ok := space.Vocabulary["survival"]; !ok {
		t.Fatal("joint vocabulary missing game-only term")
	}
	if space.GameMatrix.NumCols != space.MovieMatrix.NumCols {
		t.Errorf("matrix widths differ: %d vs %d", space.GameMatrix.NumCols, space.MovieMatrix.NumCols)
	}

	// Shared terms produce nonzero cross-domain similarity.
	gCols, gVals := space.GameMatrix.Row(0)
	mCols, mVals := space.MovieMatrix.Row(0)
	if DotSparse(gCols, gVals, mCols, mVals) <= 0 {
		t.Error("documents sharing terms have zero dot product")
	}
}

func TestBuildTextSpaceRowIDOrder(t *testing.T) {
	games := []Document{
		{ID: 3, Text: "space mining"},
		{ID: 1, Text: "farming village"},
		{ID: 7, Text: "street racing"},
	}

	space := BuildTextSpace(context.Background(), games, nil, DefaultTextConfig())

	// Row order follows input order; RowIDs is the join key.
	if !reflect.DeepEqual(space.GameRowIDs, []int64{3, 1, 7}) {
		t.Errorf("GameRowIDs = %v, want [3 1 7]", space.GameRowIDs)
	}
	if space.GameMatrix.NumRows() != 3 {
		t.Errorf("NumRows = %d, want 3", space.GameMatrix.NumRows())
	}
}

func TestBuildTextSpaceExcludesEmptyText(t *testing.T) {
	games := []Document{
		{ID: 1, Text: "dungeon crawler"},
		{ID: 2, Text: ""},
		{ID: 3, Text: "the of and"}, // all stopwords
	}
	movies := []Document{
		{ID: 10, Text: ""},
	}

	space := BuildTextSpace(context.Background(), games, movies, DefaultTextConfig())

	if !reflect.DeepEqual(space.GameRowIDs, []int64{1}) {
		t.Errorf("GameRowIDs = %v, want [1]", space.GameRowIDs)
	}
	if space.ExcludedGames != 2 {
		t.Errorf("ExcludedGames = %d, want 2", space.ExcludedGames)
	}
	if len(space.MovieRowIDs) != 0 || space.ExcludedMovies != 1 {
		t.Errorf("movie side = %v, excluded %d", space.MovieRowIDs, space.ExcludedMovies)
	}
}

func TestBuildTextSpaceVocabularyCap(t *testing.T) {
	games := []Document{
		{ID: 1, Text: "alpha alpha bravo charlie"},
		{ID: 2, Text: "alpha bravo delta"},
		{ID: 3, Text: "alpha echo"},
	}

	cfg := TextConfig{MaxVocabulary: 2, MinNGram: 1, MaxNGram: 1}
	space := BuildTextSpace(context.Background(), games, nil, cfg)

	if len(space.Vocabulary) != 2 {
		t.Fatalf("vocabulary size = %d, want 2", len(space.Vocabulary))
	}
	// alpha (df=3) and bravo (df=2) survive the document-frequency cut.
	if _, ok := space.Vocabulary["alpha"]; !ok {
		t.Error("highest-df term dropped from capped vocabulary")
	}
	if _, ok := space.Vocabulary["bravo"]; !ok {
		t.Error("second-df term dropped from capped vocabulary")
	}
}

func TestBuildTextSpaceBigramsInVocabulary(t *testing.T) {
	games := []Document{{ID: 1, Text: "silent hill fog"}}

	space := BuildTextSpace(context.Background(), games, nil, DefaultTextConfig())

	if _, ok := space.Vocabulary["silent hill"]; !ok {
		t.Errorf("vocabulary missing bigram: %v", space.Vocabulary)
	}
}

func TestFitVocabularyDeterministicTieBreak(t *testing.T) {
	df := map[string]int{"zeta": 1, "alpha": 1, "mid": 2}

	vocab := fitVocabulary(df, 2)
	if len(vocab) != 2 {
		t.Fatalf("vocab size = %d, want 2", len(vocab))
	}
	// mid wins on df; alpha beats zeta lexicographically.
	if _, ok := vocab["mid"]; !ok {
		t.Error("mid missing")
	}
	if _, ok := vocab["alpha"]; !ok {
		t.Error("alpha missing (tie-break should prefer it over zeta)")
	}
}
