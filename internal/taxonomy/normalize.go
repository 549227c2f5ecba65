// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package taxonomy

import "strings"

// surroundingCutset is the set of characters stripped from both ends of
// a raw genre string before lookup: whitespace, list brackets, and
// quoting left over from naive list encodings in source data.
const surroundingCutset = " \t\r\n[](){}'\"`"

// Normalize canonicalizes a raw genre string into an alias key:
// surrounding brackets/quotes/whitespace stripped, lower-cased, internal
// whitespace collapsed to single spaces.
//
// Normalization is the only tolerance applied to alias lookup; matching
// after normalization is exact, never fuzzy.
func Normalize(raw string) string {
	s := strings.Trim(raw, surroundingCutset)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
