// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package metrics provides Prometheus instrumentation for the pipeline:
// stage durations, taxonomy outcomes, vector-space exclusions, and
// recommendation write volumes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StageDuration tracks wall time per pipeline stage.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamereel_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
		[]string{"stage"},
	)

	// StageErrors counts unrecoverable stage failures.
	StageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamereel_stage_errors_total",
			Help: "Total number of unrecoverable stage failures",
		},
		[]string{"stage"},
	)

	// UnmappedGenres counts raw genre strings with no alias entry.
	UnmappedGenres = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamereel_unmapped_genres_total",
			Help: "Total raw genre strings that resolved to no alias entry",
		},
	)

	// DeniedGenres counts raw genre strings discarded by the deny-list.
	DeniedGenres = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamereel_denied_genres_total",
			Help: "Total raw genre strings discarded by the non-content deny-list",
		},
	)

	// MalformedGenreFields counts unparseable raw genre list fields.
	MalformedGenreFields = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamereel_malformed_genre_fields_total",
			Help: "Total items whose raw genre field could not be decoded",
		},
	)

	// ZeroSignalItems counts items excluded from a vector space because
	// their vector had no nonzero entries.
	ZeroSignalItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamereel_zero_signal_items_total",
			Help: "Total items excluded from a vector space for lack of signal",
		},
		[]string{"domain", "space"},
	)

	// AliasHits counts alias-key attributions made by the keyword matcher.
	AliasHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamereel_alias_hits_total",
			Help: "Total alias-key attributions from keyword scanning",
		},
		[]string{"domain"},
	)

	// RecommendationsWritten counts persisted recommendation rows.
	RecommendationsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamereel_recommendations_written_total",
			Help: "Total recommendation rows written by scoring runs",
		},
	)

	// RecommendationBatchFailures counts failed insert batches.
	RecommendationBatchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamereel_recommendation_batch_failures_total",
			Help: "Total failed recommendation insert batches",
		},
	)

	// ArtifactSaves counts artifact store writes by artifact name.
	ArtifactSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamereel_artifact_saves_total",
			Help: "Total artifact store writes",
		},
		[]string{"artifact"},
	)
)

// ObserveStageDuration records the duration of a completed stage.
//
//	defer metrics.ObserveStageDuration("score", time.Now())
func ObserveStageDuration(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
