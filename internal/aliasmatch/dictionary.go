// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

// Package aliasmatch scans item descriptions for thematic keywords and
// records which alias keys each item triggered. It is independent of
// the genre taxonomy and the vector spaces; its hit sets feed the
// scorer's flat bonus term.
package aliasmatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Dictionary maps alias keys to the lowercase substrings that trigger
// them. Keyword matching is plain substring containment over the
// lowercased item text.
type Dictionary struct {
	keywords map[string][]string
	keys     []string
}

// dictionaryDoc mirrors the YAML document shape:
//
//	keywords:
//	  space opera: [starship, galactic empire, warp drive]
//	  heist: [heist, bank robbery]
type dictionaryDoc struct {
	Keywords map[string][]string `koanf:"keywords"`
}

// LoadDictionary reads and validates a keyword dictionary from a YAML
// file.
func LoadDictionary(path string) (*Dictionary, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load keyword dictionary %s: %w", path, err)
	}

	var doc dictionaryDoc
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("failed to decode keyword dictionary %s: %w", path, err)
	}

	return buildDictionary(doc.Keywords)
}

func buildDictionary(raw map[string][]string) (*Dictionary, error) {
	d := &Dictionary{keywords: make(map[string][]string, len(raw))}

	for key, kws := range raw {
		alias := strings.TrimSpace(strings.ToLower(key))
		if alias == "" {
			return nil, fmt.Errorf("keyword dictionary has empty alias key %q", key)
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("alias key %q has no keywords", key)
		}
		lowered := make([]string, 0, len(kws))
		for _, kw := range kws {
			k := strings.TrimSpace(strings.ToLower(kw))
			if k == "" {
				return nil, fmt.Errorf("alias key %q has an empty keyword", key)
			}
			lowered = append(lowered, k)
		}
		d.keywords[alias] = lowered
	}

	d.keys = make([]string, 0, len(d.keywords))
	for k := range d.keywords {
		d.keys = append(d.keys, k)
	}
	sort.Strings(d.keys)

	return d, nil
}

// Keys returns all alias keys in sorted order.
func (d *Dictionary) Keys() []string {
	return d.keys
}

// Len returns the number of alias keys.
func (d *Dictionary) Len() int {
	return len(d.keywords)
}
