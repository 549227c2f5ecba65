// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(UnmappedGenres)
	UnmappedGenres.Inc()
	after := testutil.ToFloat64(UnmappedGenres)
	if after != before+1 {
		t.Errorf("UnmappedGenres = %f, want %f", after, before+1)
	}
}

func TestVecCountersAcceptLabels(t *testing.T) {
	before := testutil.ToFloat64(ZeroSignalItems.WithLabelValues("game", "genre"))
	ZeroSignalItems.WithLabelValues("game", "genre").Inc()
	after := testutil.ToFloat64(ZeroSignalItems.WithLabelValues("game", "genre"))
	if after != before+1 {
		t.Errorf("ZeroSignalItems = %f, want %f", after, before+1)
	}

	AliasHits.WithLabelValues("movie").Add(3)
	ArtifactSaves.WithLabelValues("genre_space").Inc()
	StageErrors.WithLabelValues("resolve").Inc()
}

func TestObserveStageDuration(t *testing.T) {
	// Must not panic and must record a sample.
	ObserveStageDuration("score", time.Now().Add(-10*time.Millisecond))

	count := testutil.CollectAndCount(StageDuration)
	if count == 0 {
		t.Error("StageDuration recorded no samples")
	}
}
