package application

import "strings"

const minPrefixLen = 3

// closest returns the candidate nearest to query, if any is near enough.
// Prefix containment counts as a match once both sides have minPrefixLen runes;
// otherwise the edit distance must be at most max(1, len(candidate)/4).
func closest(query string, candidates []string) (string, bool) {
	best := ""
	bestDist := -1
	q := []rune(query)

	for _, candidate := range candidates {
		c := []rune(candidate)

		var dist int
		switch {
		case len(q) >= minPrefixLen && len(c) >= minPrefixLen &&
			(strings.HasPrefix(candidate, query) || strings.HasPrefix(query, candidate)):
			dist = abs(len(c) - len(q))
		default:
			dist = levenshtein(q, c)
			limit := len(c) / 4
			if limit < 1 {
				limit = 1
			}
			if dist > limit {
				continue
			}
		}

		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best, bestDist >= 0
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
