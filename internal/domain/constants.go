package domain

import "time"

// Upstream defaults
const (
	DefaultDataURL      = "https://terribleturtle.github.io/spellcasters-community-api/api/v2/all_data.json"
	DefaultCacheTTL     = 6 * time.Hour
	DefaultFetchTimeout = 30 * time.Second

	// DefaultSearchThreshold is the largest normalized edit distance accepted
	// as a fuzzy match (0 = exact, 1 = anything).
	DefaultSearchThreshold = 0.4
)

// Magic schools offered as filter choices.
var MagicSchools = []string{"Astral", "War", "Elemental", "Holy", "Necromancy", "Wild", "Technomancy"}

// Ranks in ascending order.
var Ranks = []string{"I", "II", "III", "IV", "V"}

// RankOrder sorts Roman numeral ranks; unknown ranks sort last.
var RankOrder = map[string]int{"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5}

// UnknownRankOrder is the sort position of an entity without a known rank.
const UnknownRankOrder = 99
