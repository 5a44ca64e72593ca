// Package analyze computes descriptive statistics over token sequences.
package analyze

import "errors"

// ErrEmptyInput is returned when a statistic is requested over an empty
// token sequence.
var ErrEmptyInput = errors.New("empty token sequence")

// MostFrequent returns the token with the highest occurrence count. Ties
// are broken by first appearance in the sequence.
func MostFrequent(tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", ErrEmptyInput
	}
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	best := ""
	bestN := 0
	seen := make(map[string]struct{}, len(counts))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		if counts[tok] > bestN {
			best, bestN = tok, counts[tok]
		}
	}
	return best, nil
}
