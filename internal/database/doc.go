// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package database is the authoritative DuckDB catalog store.
//
// It holds the game and movie catalogs, the canonical genre table and
// its item joins, the persisted alias table, and the recommendation
// output of scoring runs. All derived state (genre joins, flags,
// recommendations) is recomputed by pipeline stages and replaced
// wholesale; the store never merges generations.
package database
