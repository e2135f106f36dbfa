package utils

import (
	"context"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// FindClosestString returns the candidate with the smallest edit distance to s, ok is false if no candidate
// is within maxDifferences edits. ctx can be nil, the search stops early if it is done.
func FindClosestString(ctx context.Context, candidates []string, s string, maxDifferences int) (closest string, distance int, ok bool) {
	minDistance := maxDifferences + 1
	runes := []rune(s)

	for _, candidate := range candidates {
		if ctx != nil && ctx.Err() != nil {
			break
		}

		d := levenshtein.DistanceForStrings([]rune(candidate), runes, levenshtein.DefaultOptions)
		if d < minDistance {
			minDistance = d
			closest = candidate
		}
	}

	if minDistance > maxDifferences {
		return "", 0, false
	}
	return closest, minDistance, true
}
