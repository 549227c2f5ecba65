// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package aliasmatch

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/gamereel/internal/models"
)

func testDictionary(t *testing.T) *Dictionary {
	t.Helper()
	d, err := buildDictionary(map[string][]string{
		"space opera": {"starship", "galactic empire"},
		"heist":       {"heist", "bank robbery"},
		"zombie":      {"zombie", "undead"},
	})
	if err != nil {
		t.Fatalf("buildDictionary: %v", err)
	}
	return d
}

func TestMatch(t *testing.T) {
	m := NewMatcher(testDictionary(t))

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single hit", "a lone starship drifts", []string{"space opera"}},
		{"case insensitive", "The Galactic EMPIRE strikes", []string{"space opera"}},
		{"multiple keys sorted", "undead crew plans a heist", []string{"heist", "zombie"}},
		{"one key despite two keywords", "zombie hordes of the undead", []string{"zombie"}},
		{"substring containment", "heists gone wrong", []string{"heist"}},
		{"no hits", "a quiet farming village", nil},
		{"empty text", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

type fakeSource struct {
	games  []models.Game
	movies []models.Movie
}

func (s *fakeSource) ListGames(context.Context) ([]models.Game, error)   { return s.games, nil }
func (s *fakeSource) ListMovies(context.Context) ([]models.Movie, error) { return s.movies, nil }

func TestRun(t *testing.T) {
	src := &fakeSource{
		games: []models.Game{
			{ID: 1, Name: "Void Raiders", Description: "Command a starship against the galactic empire."},
			{ID: 2, Name: "Harvest Sim", Description: "Grow crops."},
		},
		movies: []models.Movie{
			{ID: 10, Title: "Night of the Undead", Overview: "Zombie outbreak in a small town."},
			{ID: 11, Title: "The Score", Overview: "One last bank robbery."},
		},
	}

	m := NewMatcher(testDictionary(t))
	hits, err := m.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := hits.Games[1]; !reflect.DeepEqual(got, []string{"space opera"}) {
		t.Errorf("game 1 hits = %v", got)
	}
	// Scanned items with no hits still get an entry.
	if got, ok := hits.Games[2]; !ok || len(got) != 0 {
		t.Errorf("game 2 hits = %v (present %v), want empty entry", got, ok)
	}
	if got := hits.Movies[10]; !reflect.DeepEqual(got, []string{"zombie"}) {
		t.Errorf("movie 10 hits = %v", got)
	}
	if got := hits.Movies[11]; !reflect.DeepEqual(got, []string{"heist"}) {
		t.Errorf("movie 11 hits = %v", got)
	}
	if !reflect.DeepEqual(hits.Aliases, []string{"heist", "space opera", "zombie"}) {
		t.Errorf("Aliases = %v", hits.Aliases)
	}
}

func TestSharedAlias(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"overlap", []string{"heist", "zombie"}, []string{"space opera", "zombie"}, true},
		{"disjoint", []string{"heist"}, []string{"zombie"}, false},
		{"empty sides", nil, []string{"zombie"}, false},
		{"both empty", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SharedAlias(tt.a, tt.b); got != tt.want {
				t.Errorf("SharedAlias(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBuildDictionaryValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string][]string
	}{
		{"empty key", map[string][]string{"  ": {"kw"}}},
		{"no keywords", map[string][]string{"heist": {}}},
		{"empty keyword", map[string][]string{"heist": {" "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildDictionary(tt.raw); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
