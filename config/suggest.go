package config

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// unknownKey builds the error for a key outside a table, with a hint when a
// known key is within a small edit distance.
func unknownKey(table, key string, known []string) error {
	if s := suggest(key, known); s != "" {
		return fmt.Errorf("%w: %s has no parameter %q (did you mean %q?)", ErrConfiguration, table, key, s)
	}
	return fmt.Errorf("%w: %s has no parameter %q", ErrConfiguration, table, key)
}

// suggest returns the closest known key, or "" when none is close enough.
func suggest(key string, known []string) string {
	best, bestDist := "", -1
	in := strings.ToLower(key)
	for _, cand := range known {
		dist := levenshtein.ComputeDistance(in, strings.ToLower(cand))
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
