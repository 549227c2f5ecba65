// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package artifact

import (
	"errors"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

type testPayload struct {
	Names   []string            `json:"names"`
	Vectors map[int64][]float64 `json:"vectors"`
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := testPayload{
		Names:   []string{"horror", "sci-fi"},
		Vectors: map[int64][]float64{1: {0.5, 0}, 2: {0, 1.25}},
	}

	meta, err := s.Save(GenreSpaceName, "run-1", in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if meta.Version != 1 {
		t.Errorf("first save version = %d, want 1", meta.Version)
	}
	if meta.RunID != "run-1" {
		t.Errorf("RunID = %q", meta.RunID)
	}
	if meta.Checksum == "" || meta.SizeBytes == 0 {
		t.Errorf("incomplete metadata: %+v", meta)
	}

	var out testPayload
	loaded, err := s.Load(GenreSpaceName, &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("payload round trip: got %+v, want %+v", out, in)
	}
	if loaded.Checksum != meta.Checksum {
		t.Errorf("loaded checksum %s != saved %s", loaded.Checksum, meta.Checksum)
	}
}

func TestVersionsIncreaseMonotonically(t *testing.T) {
	s := openTestStore(t)

	for want := 1; want <= 3; want++ {
		meta, err := s.Save(TextSpaceName, "run", testPayload{Names: []string{"v"}})
		if err != nil {
			t.Fatalf("Save #%d: %v", want, err)
		}
		if meta.Version != want {
			t.Errorf("save #%d version = %d", want, meta.Version)
		}
	}

	// Versions are tracked per name.
	meta, err := s.Save(HitSetsName, "run", testPayload{})
	if err != nil {
		t.Fatalf("Save other name: %v", err)
	}
	if meta.Version != 1 {
		t.Errorf("unrelated artifact version = %d, want 1", meta.Version)
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	s := openTestStore(t)

	var out testPayload
	_, err := s.Load("never_saved", &out)
	if !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("Load missing: err = %v, want ErrArtifactMissing", err)
	}
	if _, err := s.Meta("never_saved"); !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("Meta missing: err = %v, want ErrArtifactMissing", err)
	}
}

func TestMetaWithoutPayload(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Save(HitSetsName, "run-9", testPayload{Names: []string{"x"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := s.Meta(HitSetsName)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.Name != HitSetsName || meta.Version != 1 || meta.RunID != "run-9" {
		t.Errorf("Meta = %+v", meta)
	}
}

func TestSaveOverwriteReplacesPayload(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Save(GenreSpaceName, "run-1", testPayload{Names: []string{"old"}}); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if _, err := s.Save(GenreSpaceName, "run-2", testPayload{Names: []string{"new"}}); err != nil {
		t.Fatalf("Save new: %v", err)
	}

	var out testPayload
	meta, err := s.Load(GenreSpaceName, &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(out.Names, []string{"new"}) {
		t.Errorf("payload = %+v, want new", out)
	}
	if meta.Version != 2 || meta.RunID != "run-2" {
		t.Errorf("meta = %+v", meta)
	}
}
