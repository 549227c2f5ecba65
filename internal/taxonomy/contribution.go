// Gamereel - Content-Based Game-to-Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamereel

package taxonomy

// FlagKind identifies a boolean content attribute derived from alias
// hits. Flags never contribute genre dimensions to the vector spaces.
type FlagKind int

const (
	// FlagAdult marks adult/mature content.
	FlagAdult FlagKind = iota
	// FlagMultiplayer marks multiplayer-oriented content.
	FlagMultiplayer
	// FlagTVFormat marks episodic/TV-style content.
	FlagTVFormat
)

// String returns the config spelling of the flag kind.
func (f FlagKind) String() string {
	switch f {
	case FlagAdult:
		return "adult"
	case FlagMultiplayer:
		return "multiplayer"
	case FlagTVFormat:
		return "tv_format"
	default:
		return "unknown"
	}
}

// ParseFlagKind parses the config spelling of a flag kind.
func ParseFlagKind(s string) (FlagKind, bool) {
	switch s {
	case "adult":
		return FlagAdult, true
	case "multiplayer":
		return FlagMultiplayer, true
	case "tv_format":
		return FlagTVFormat, true
	default:
		return 0, false
	}
}

// Contribution is one edge from an alias to either a canonical genre or
// a flag marker. An alias carries zero or more of these; a single alias
// may fan out to several genres ("biography" -> Documentary, History)
// or produce only flags ("nudity" -> adult).
type Contribution interface {
	isContribution()
}

// GenreContribution assigns a canonical genre.
type GenreContribution struct {
	// Name is the canonical genre name, case-normalized.
	Name string
}

func (GenreContribution) isContribution() {}

// FlagContribution activates a content flag.
type FlagContribution struct {
	Kind FlagKind
}

func (FlagContribution) isContribution() {}
