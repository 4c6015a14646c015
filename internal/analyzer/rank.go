package analyzer

import "sort"

// Rank returns the routes sorted descending by score. The sort is stable:
// equal scores keep their input order, which keeps fixtures reproducible.
// The input slice is not modified.
func Rank(routes []ScoredRoute) []ScoredRoute {
	out := make([]ScoredRoute, len(routes))
	copy(out, routes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// TopN returns the first min(n, len(routes)) elements of a ranked sequence.
// n <= 0 yields an empty slice.
func TopN(routes []ScoredRoute, n int) []ScoredRoute {
	if n <= 0 || len(routes) == 0 {
		return []ScoredRoute{}
	}
	if n > len(routes) {
		n = len(routes)
	}
	return routes[:n]
}
