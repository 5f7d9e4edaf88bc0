package util

import (
	"github.com/agnivade/levenshtein"
	"golang.org/x/exp/slices"
)

//
// Rune range helper functions
//

type RuneRange struct {
	min int
	max int
}

func IsRuneInRange(char rune, ranges ...RuneRange) bool {
	intChar := int(char)
	for _, ran := range ranges {
		if intChar >= ran.min && intChar <= ran.max {
			return true
		}
	}
	return false
}

func IsDigit(char rune) bool      { return IsRuneInRange(char, RuneRange{min: 48, max: 57}) }
func IsOctalDigit(char rune) bool { return IsRuneInRange(char, RuneRange{min: 48, max: 55}) }
func IsHexDigit(char rune) bool {
	return IsRuneInRange(char,
		RuneRange{min: 48, max: 57},
		RuneRange{min: 65, max: 70},
		RuneRange{min: 97, max: 102},
	)
}
func IsLetter(char rune) bool {
	return IsRuneInRange(
		char,
		RuneRange{min: 65, max: 90},  // capital letters
		RuneRange{min: 97, max: 122}, // lowercase letters
		RuneRange{min: 95, max: 95},  // underscore
		RuneRange{min: 36, max: 36},  // dollar sign
	)
}

//
// Identifier suggestions
//

// Candidates farther away than this are never suggested.
const maxSuggestionDistance = 2

// Suggest returns the candidate closest to `name` by edit distance.
// Ties are broken alphabetically so that the result does not depend on the candidate order.
func Suggest(name string, candidates []string) (suggestion string, found bool) {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	best := maxSuggestionDistance + 1
	for _, candidate := range sorted {
		if candidate == name {
			continue
		}
		distance := levenshtein.ComputeDistance(name, candidate)
		if distance < best {
			best = distance
			suggestion = candidate
		}
	}

	return suggestion, best <= maxSuggestionDistance
}
