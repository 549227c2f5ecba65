// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package taxonomy

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/gamereel/internal/models"
)

// fakeStore is an in-memory Store for annotate tests.
type fakeStore struct {
	games  []models.Game
	movies []models.Movie

	genreIDs    map[string]int64
	nextGenreID int64

	gameGenres  map[int64][]int64
	movieGenres map[int64][]int64
	gameFlags   map[int64]models.ContentFlags
	movieFlags  map[int64]models.ContentFlags
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		genreIDs:    make(map[string]int64),
		gameGenres:  make(map[int64][]int64),
		movieGenres: make(map[int64][]int64),
		gameFlags:   make(map[int64]models.ContentFlags),
		movieFlags:  make(map[int64]models.ContentFlags),
		nextGenreID: 1,
	}
}

func (s *fakeStore) ListGames(context.Context) ([]models.Game, error)   { return s.games, nil }
func (s *fakeStore) ListMovies(context.Context) ([]models.Movie, error) { return s.movies, nil }

func (s *fakeStore) GetOrCreateGenre(_ context.Context, name string) (int64, error) {
	if id, ok := s.genreIDs[name]; ok {
		return id, nil
	}
	id := s.nextGenreID
	s.nextGenreID++
	s.genreIDs[name] = id
	return id, nil
}

func (s *fakeStore) ReplaceGameGenres(_ context.Context, id int64, genreIDs []int64) error {
	s.gameGenres[id] = genreIDs
	return nil
}

func (s *fakeStore) ReplaceMovieGenres(_ context.Context, id int64, genreIDs []int64) error {
	s.movieGenres[id] = genreIDs
	return nil
}

func (s *fakeStore) SetGameFlags(_ context.Context, id int64, flags models.ContentFlags) error {
	s.gameFlags[id] = flags
	return nil
}

func (s *fakeStore) SetMovieFlags(_ context.Context, id int64, flags models.ContentFlags) error {
	s.movieFlags[id] = flags
	return nil
}

func TestAnnotatorRun(t *testing.T) {
	store := newFakeStore()
	store.games = []models.Game{
		{ID: 1, Name: "Dread Manor", RawGenres: []string{"Gore", "Tutorial"}},
		{ID: 2, Name: "Star Trader", RawGenres: []string{"Sci-Fi", "Massively Multiplayer", "Roguelike"}},
	}
	store.movies = []models.Movie{
		{ID: 10, Title: "The Cellar", RawGenres: []string{"Horror"}},
		{ID: 11, Title: "Apollo Years", RawGenres: []string{"Biography"}},
	}

	r := NewResolver(testTable(t), []string{"tutorial"})
	sum, err := NewAnnotator(store, r).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sum.Games != 2 || sum.Movies != 2 {
		t.Errorf("summary counts = %+v", sum)
	}
	if sum.Denied != 1 {
		t.Errorf("Denied = %d, want 1 (tutorial)", sum.Denied)
	}
	if sum.Unmapped != 1 {
		t.Errorf("Unmapped = %d, want 1 (roguelike)", sum.Unmapped)
	}

	// Game 1 (gore) and movie 10 (horror) share the horror genre row.
	horrorID := store.genreIDs["horror"]
	if horrorID == 0 {
		t.Fatal("horror genre never created")
	}
	if !reflect.DeepEqual(store.gameGenres[1], []int64{horrorID}) {
		t.Errorf("game 1 genres = %v, want [%d]", store.gameGenres[1], horrorID)
	}
	if !reflect.DeepEqual(store.movieGenres[10], []int64{horrorID}) {
		t.Errorf("movie 10 genres = %v, want [%d]", store.movieGenres[10], horrorID)
	}

	// Biography fans out to two genres.
	if len(store.movieGenres[11]) != 2 {
		t.Errorf("movie 11 genres = %v, want 2 entries", store.movieGenres[11])
	}

	// Multiplayer flag set from the flags-only alias; no genre from it.
	if !store.gameFlags[2].Multiplayer {
		t.Error("game 2 multiplayer flag not set")
	}
	sciFiID := store.genreIDs["sci-fi"]
	if !reflect.DeepEqual(store.gameGenres[2], []int64{sciFiID}) {
		t.Errorf("game 2 genres = %v, want [%d]", store.gameGenres[2], sciFiID)
	}
}

func TestAnnotatorIdempotent(t *testing.T) {
	store := newFakeStore()
	store.games = []models.Game{{ID: 1, RawGenres: []string{"Horror", "Gore"}}}

	r := NewResolver(testTable(t), nil)
	ann := NewAnnotator(store, r)

	if _, err := ann.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := append([]int64(nil), store.gameGenres[1]...)
	firstGenres := len(store.genreIDs)

	if _, err := ann.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(store.gameGenres[1], first) {
		t.Errorf("joins changed across reruns: %v vs %v", store.gameGenres[1], first)
	}
	if len(store.genreIDs) != firstGenres {
		t.Errorf("genre rows grew across reruns: %d vs %d", len(store.genreIDs), firstGenres)
	}
}

func TestAnnotatorEmptyRawGenres(t *testing.T) {
	store := newFakeStore()
	store.games = []models.Game{{ID: 5, RawGenres: nil}}

	r := NewResolver(testTable(t), nil)
	sum, err := NewAnnotator(store, r).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Unmapped != 0 || sum.MappedStrings != 0 {
		t.Errorf("empty raw genres produced resolutions: %+v", sum)
	}
	if len(store.gameGenres[5]) != 0 {
		t.Errorf("game 5 genres = %v, want none", store.gameGenres[5])
	}
}
