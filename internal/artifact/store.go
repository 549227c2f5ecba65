// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package artifact provides durable versioned storage for pipeline
// artifacts (vector spaces, alias hit sets) on BadgerDB.
//
// Each artifact is stored under the key "artifact/<name>" as a JSON
// envelope of metadata plus payload. Metadata carries a monotonically
// increasing version, the run id that produced the artifact, and a
// SHA-256 checksum of the payload that is verified on every load.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
)

// Well-known artifact names produced by the pipeline stages.
const (
	GenreSpaceName = "genre_space"
	TextSpaceName  = "text_space"
	HitSetsName    = "alias_hits"
)

// ErrArtifactMissing is returned when a named artifact has never been
// saved.
var ErrArtifactMissing = errors.New("artifact not found")

const keyPrefix = "artifact/"

// Metadata describes a stored artifact without its payload.
type Metadata struct {
	// Name is the artifact name (e.g. "genre_space").
	Name string `json:"name"`

	// Version increases by one on every save of the same name.
	Version int `json:"version"`

	// RunID is the pipeline run that produced this artifact.
	RunID string `json:"run_id"`

	// SavedAt is when the artifact was written.
	SavedAt time.Time `json:"saved_at"`

	// Checksum is the SHA-256 checksum of the encoded payload.
	Checksum string `json:"checksum"`

	// SizeBytes is the encoded payload size.
	SizeBytes int64 `json:"size_bytes"`
}

// envelope is the stored value shape.
type envelope struct {
	Metadata Metadata        `json:"metadata"`
	Payload  json.RawMessage `json:"payload"`
}

// Store persists artifacts in a Badger database.
type Store struct {
	db *badger.DB
	mu sync.Mutex
}

// Open opens (or creates) an artifact store at the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging is noise here
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open artifact store %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save encodes the payload and writes it under the artifact name,
// bumping the stored version. The write is verified by reading the
// envelope back and re-checking the payload checksum.
func (s *Store) Save(name, runID string, payload any) (Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return Metadata{}, fmt.Errorf("encode artifact %s: %w", name, err)
	}

	sum := sha256.Sum256(encoded)
	meta := Metadata{
		Name:      name,
		Version:   1,
		RunID:     runID,
		SavedAt:   time.Now().UTC(),
		Checksum:  hex.EncodeToString(sum[:]),
		SizeBytes: int64(len(encoded)),
	}

	key := []byte(keyPrefix + name)
	err = s.db.Update(func(txn *badger.Txn) error {
		if prev, err := readEnvelope(txn, key); err == nil {
			meta.Version = prev.Metadata.Version + 1
		} else if !errors.Is(err, ErrArtifactMissing) {
			return err
		}

		value, err := json.Marshal(envelope{Metadata: meta, Payload: encoded})
		if err != nil {
			return fmt.Errorf("encode envelope %s: %w", name, err)
		}
		return txn.Set(key, value)
	})
	if err != nil {
		return Metadata{}, fmt.Errorf("save artifact %s: %w", name, err)
	}

	if err := s.verify(key, meta.Checksum); err != nil {
		return Metadata{}, fmt.Errorf("verify artifact %s: %w", name, err)
	}

	metrics.ArtifactSaves.WithLabelValues(name).Inc()
	logging.Info().
		Str("artifact", name).
		Int("version", meta.Version).
		Str("run_id", runID).
		Int64("size_bytes", meta.SizeBytes).
		Msg("Artifact saved")

	return meta, nil
}

// Load decodes the named artifact into out after verifying its
// checksum. Returns ErrArtifactMissing if the name was never saved.
func (s *Store) Load(name string, out any) (Metadata, error) {
	var env envelope
	err := s.db.View(func(txn *badger.Txn) error {
		e, err := readEnvelope(txn, []byte(keyPrefix+name))
		if err != nil {
			return err
		}
		env = e
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrArtifactMissing) {
			return Metadata{}, fmt.Errorf("%w: %s", ErrArtifactMissing, name)
		}
		return Metadata{}, fmt.Errorf("load artifact %s: %w", name, err)
	}

	sum := sha256.Sum256(env.Payload)
	if got := hex.EncodeToString(sum[:]); got != env.Metadata.Checksum {
		return Metadata{}, fmt.Errorf("artifact %s checksum mismatch: stored %s, computed %s",
			name, env.Metadata.Checksum, got)
	}

	if err := json.Unmarshal(env.Payload, out); err != nil {
		return Metadata{}, fmt.Errorf("decode artifact %s: %w", name, err)
	}
	return env.Metadata, nil
}

// Meta returns a stored artifact's metadata without decoding the
// payload.
func (s *Store) Meta(name string) (Metadata, error) {
	var meta Metadata
	err := s.db.View(func(txn *badger.Txn) error {
		e, err := readEnvelope(txn, []byte(keyPrefix+name))
		if err != nil {
			return err
		}
		meta = e.Metadata
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrArtifactMissing) {
			return Metadata{}, fmt.Errorf("%w: %s", ErrArtifactMissing, name)
		}
		return Metadata{}, fmt.Errorf("read artifact metadata %s: %w", name, err)
	}
	return meta, nil
}

func readEnvelope(txn *badger.Txn, key []byte) (envelope, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return envelope{}, ErrArtifactMissing
	}
	if err != nil {
		return envelope{}, err
	}

	var env envelope
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &env)
	})
	if err != nil {
		return envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

// verify reads the just-written envelope back and re-checks the payload
// checksum against what Save computed.
func (s *Store) verify(key []byte, wantChecksum string) error {
	return s.db.View(func(txn *badger.Txn) error {
		env, err := readEnvelope(txn, key)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(env.Payload)
		if got := hex.EncodeToString(sum[:]); got != wantChecksum {
			return fmt.Errorf("post-write checksum mismatch: want %s, got %s", wantChecksum, got)
		}
		return nil
	})
}
