// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package vectorspace

import (
	"strings"
	"unicode"
)

// tokenize converts free text into lower-cased word tokens: runs of
// letters/digits of length >= 2, with stop words removed.
func tokenize(text string) []string {
	lowered := strings.ToLower(text)

	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := englishStopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// ngrams expands a token stream into all n-grams with n in
// [minN, maxN], joined by single spaces. Stop words were removed before
// expansion, so a bigram may join words that were not adjacent in the
// original text (matching the vectorizer behavior the corpus weights
// were tuned against).
func ngrams(tokens []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}

	if minN == 1 && maxN == 1 {
		return tokens
	}

	var out []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				out = append(out, tokens[i])
				continue
			}
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// analyze is the full document analyzer: tokenize then n-gram expand.
func analyze(text string, minN, maxN int) []string {
	return ngrams(tokenize(text), minN, maxN)
}
