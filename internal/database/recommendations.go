// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/gamereel/internal/logging"
	"github.com/tomtom215/gamereel/internal/metrics"
	"github.com/tomtom215/gamereel/internal/models"
)

// RankedMovie is one recommendation row joined with its movie metadata,
// as returned by TopRecommendationsForGame.
type RankedMovie struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year"`
	Score       float64 `json:"score"`
}

// ReplaceRecommendations atomically replaces the recommendation table
// with the given rows: one transaction, delete-all then batched
// prepared inserts. On any batch failure the transaction rolls back and
// the prior generation survives intact; the returned count then tells
// how many rows had been staged before the failure.
func (db *DB) ReplaceRecommendations(ctx context.Context, recs []models.Recommendation, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 1000
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin recommendation replace: %w", err)
	}
	defer rollbackQuietly(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations`); err != nil {
		return 0, fmt.Errorf("clear recommendations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO recommendations (game_id, movie_id, score) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare recommendation insert: %w", err)
	}
	defer closeQuietly(stmt)

	staged := 0
	for start := 0; start < len(recs); start += batchSize {
		if err := ctx.Err(); err != nil {
			return staged, err
		}
		end := start + batchSize
		if end > len(recs) {
			end = len(recs)
		}
		for _, r := range recs[start:end] {
			if _, err := stmt.ExecContext(ctx, r.GameID, r.MovieID, r.Score); err != nil {
				metrics.RecommendationBatchFailures.Inc()
				return staged, fmt.Errorf("insert recommendation batch at row %d of %d: %w",
					staged, len(recs), err)
			}
			staged++
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.RecommendationBatchFailures.Inc()
		return staged, fmt.Errorf("commit recommendation replace: %w", err)
	}

	metrics.RecommendationsWritten.Add(float64(staged))
	logging.Ctx(ctx).Info().
		Int("rows", staged).
		Msg("Recommendations replaced")

	return staged, nil
}

// TopRecommendationsForGame returns up to k stored recommendations for
// a game, highest score first, ties broken by ascending movie id.
func (db *DB) TopRecommendationsForGame(ctx context.Context, gameID int64, k int) ([]RankedMovie, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.movie_id, m.title, COALESCE(m.release_year, 0), r.score
		FROM recommendations r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.game_id = ?
		ORDER BY r.score DESC, r.movie_id ASC
		LIMIT ?`, gameID, k)
	if err != nil {
		return nil, fmt.Errorf("query recommendations for game %d: %w", gameID, err)
	}
	defer closeWithLog(rows, "recommendation rows")

	var out []RankedMovie
	for rows.Next() {
		var r RankedMovie
		if err := rows.Scan(&r.MovieID, &r.Title, &r.ReleaseYear, &r.Score); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecommendationCount returns the number of stored recommendation rows.
func (db *DB) RecommendationCount(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM recommendations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recommendations: %w", err)
	}
	return n, nil
}
