// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package taxonomy canonicalizes heterogeneous raw genre vocabularies
// into the shared genre taxonomy, and derives non-genre content flags
// (adult, multiplayer, TV-format) from alias hits.
//
// Resolution is deterministic and purely table-driven: a raw string is
// normalized, checked against the non-content deny-list, then looked up
// exactly in the alias table. Unknown strings are surfaced as an
// Unmapped outcome and never silently folded into a default genre;
// inventing genres would pollute the dimension space shared by both
// catalogs.
package taxonomy

import "sort"

// Outcome classifies the result of resolving one raw genre string.
type Outcome int

const (
	// OutcomeMapped means the alias table produced at least one
	// contribution (genre and/or flag).
	OutcomeMapped Outcome = iota
	// OutcomeDenied means the string is a known non-content tag and was
	// discarded without warning.
	OutcomeDenied
	// OutcomeUnmapped means no alias entry exists; callers must log
	// this, never guess a genre.
	OutcomeUnmapped
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMapped:
		return "mapped"
	case OutcomeDenied:
		return "denied"
	case OutcomeUnmapped:
		return "unmapped"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving one raw genre string.
type Resolution struct {
	// Raw is the input string as given.
	Raw string
	// Key is the normalized alias key used for lookup.
	Key string
	// Outcome classifies the resolution.
	Outcome Outcome
	// Genres are the canonical genre names activated, sorted.
	Genres []string
	// Flags are the content flags activated, sorted by kind.
	Flags []FlagKind
}

// Resolver maps raw genre strings onto canonical genres and flags.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	table *AliasTable
	deny  map[string]struct{}
}

// NewResolver builds a resolver from an alias table and a deny-list of
// non-content tags. Deny-list entries are normalized on construction.
func NewResolver(table *AliasTable, denyList []string) *Resolver {
	deny := make(map[string]struct{}, len(denyList))
	for _, d := range denyList {
		if key := Normalize(d); key != "" {
			deny[key] = struct{}{}
		}
	}
	return &Resolver{table: table, deny: deny}
}

// Resolve resolves a single raw genre string. The same input always
// yields the same Resolution for a given table and deny-list.
func (r *Resolver) Resolve(raw string) Resolution {
	key := Normalize(raw)
	res := Resolution{Raw: raw, Key: key}

	if key == "" {
		res.Outcome = OutcomeDenied
		return res
	}
	if _, denied := r.deny[key]; denied {
		res.Outcome = OutcomeDenied
		return res
	}

	contribs, ok := r.table.Contributions(key)
	if !ok {
		res.Outcome = OutcomeUnmapped
		return res
	}

	res.Outcome = OutcomeMapped
	genreSeen := make(map[string]struct{})
	flagSeen := make(map[FlagKind]struct{})
	for _, c := range contribs {
		switch c := c.(type) {
		case GenreContribution:
			if _, dup := genreSeen[c.Name]; !dup {
				genreSeen[c.Name] = struct{}{}
				res.Genres = append(res.Genres, c.Name)
			}
		case FlagContribution:
			if _, dup := flagSeen[c.Kind]; !dup {
				flagSeen[c.Kind] = struct{}{}
				res.Flags = append(res.Flags, c.Kind)
			}
		}
	}
	sort.Strings(res.Genres)
	sort.Slice(res.Flags, func(i, j int) bool { return res.Flags[i] < res.Flags[j] })
	return res
}

// ResolveAll resolves a slice of raw genre strings.
func (r *Resolver) ResolveAll(raws []string) []Resolution {
	out := make([]Resolution, len(raws))
	for i, raw := range raws {
		out[i] = r.Resolve(raw)
	}
	return out
}

// CanonicalNames returns the sorted canonical genre names the resolver
// can produce. This is the genre dimension space.
func (r *Resolver) CanonicalNames() []string {
	return r.table.CanonicalNames()
}
