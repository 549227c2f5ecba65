// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AliasTable holds the loaded alias configuration: for each normalized
// alias key, the contributions it produces and the source domain it
// applies to.
type AliasTable struct {
	contributions map[string][]Contribution
	sources       map[string]string
}

// aliasTableDoc mirrors the YAML document shape:
//
//	aliases:
//	  horror: [Horror]
//	  biography: [Documentary, History]
//	flags:
//	  nudity: [adult]
//	  massively multiplayer: [multiplayer]
//	sources:
//	  gore: game
type aliasTableDoc struct {
	Aliases map[string][]string `koanf:"aliases"`
	Flags   map[string][]string `koanf:"flags"`
	Sources map[string]string   `koanf:"sources"`
}

// LoadAliasTable reads and validates an alias table from a YAML file.
func LoadAliasTable(path string) (*AliasTable, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load alias table %s: %w", path, err)
	}

	var doc aliasTableDoc
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("failed to decode alias table %s: %w", path, err)
	}

	return buildAliasTable(doc)
}

func buildAliasTable(doc aliasTableDoc) (*AliasTable, error) {
	t := &AliasTable{
		contributions: make(map[string][]Contribution, len(doc.Aliases)+len(doc.Flags)),
		sources:       make(map[string]string),
	}

	for raw, genres := range doc.Aliases {
		key := Normalize(raw)
		if key == "" {
			return nil, fmt.Errorf("alias %q normalizes to empty key", raw)
		}
		for _, g := range genres {
			name := canonicalizeGenreName(g)
			if name == "" {
				return nil, fmt.Errorf("alias %q maps to empty genre name", raw)
			}
			t.contributions[key] = append(t.contributions[key], GenreContribution{Name: name})
		}
	}

	for raw, flags := range doc.Flags {
		key := Normalize(raw)
		if key == "" {
			return nil, fmt.Errorf("flag alias %q normalizes to empty key", raw)
		}
		for _, f := range flags {
			kind, ok := ParseFlagKind(strings.TrimSpace(strings.ToLower(f)))
			if !ok {
				return nil, fmt.Errorf("flag alias %q names unknown flag kind %q", raw, f)
			}
			t.contributions[key] = append(t.contributions[key], FlagContribution{Kind: kind})
		}
	}

	for raw, source := range doc.Sources {
		key := Normalize(raw)
		switch source {
		case "game", "movie", "both":
			t.sources[key] = source
		default:
			return nil, fmt.Errorf("alias %q has invalid source %q", raw, source)
		}
	}

	return t, nil
}

// canonicalizeGenreName case-normalizes a canonical genre name for use
// as a dimension key: trimmed and lower-cased. The dimension space is
// keyed on this form on both catalog sides.
func canonicalizeGenreName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Contributions returns the contributions for a normalized alias key.
func (t *AliasTable) Contributions(key string) ([]Contribution, bool) {
	c, ok := t.contributions[key]
	return c, ok
}

// Source returns the source domain for an alias key ("game", "movie",
// or "both"). Aliases without an explicit source apply to both.
func (t *AliasTable) Source(key string) string {
	if s, ok := t.sources[key]; ok {
		return s
	}
	return "both"
}

// Keys returns all alias keys in sorted order.
func (t *AliasTable) Keys() []string {
	keys := make([]string, 0, len(t.contributions))
	for k := range t.contributions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CanonicalNames returns the sorted distinct canonical genre names
// referenced by at least one alias mapping. Flag markers are excluded:
// the genre dimension space is built from exactly this set.
func (t *AliasTable) CanonicalNames() []string {
	seen := make(map[string]struct{})
	for _, contribs := range t.contributions {
		for _, c := range contribs {
			if g, ok := c.(GenreContribution); ok {
				seen[g.Name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of alias keys in the table.
func (t *AliasTable) Len() int {
	return len(t.contributions)
}
