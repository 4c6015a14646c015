package analyzer

import "math"

// Scoring weights per policy.
const (
	effHopWeight       = 0.3
	effImpactWeight    = 0.4
	effDiversityWeight = 0.2
	effSlippageWeight  = 0.1

	speedHopWeight     = 0.5
	speedTimeWeight    = 0.3
	speedComputeWeight = 0.2

	costImpactWeight  = 0.6
	costComputeWeight = 0.3
	costAmountWeight  = 0.1
)

// Score assigns a scalar score to a route under the given policy. Pure and
// deterministic; higher is better. Sub-scores mostly stay inside [0,1] but
// the cost policy's amount component is unbounded for very large outputs.
// An unrecognized criteria value falls back to efficiency.
func Score(r RouteSummary, criteria Criteria, slippageBps int) float64 {
	switch criteria {
	case CriteriaSpeed:
		return speedScore(r)
	case CriteriaCost:
		return costScore(r)
	default:
		return efficiencyScore(r, slippageBps)
	}
}

// ScoreAll scores every summary into a fresh ScoredRoute slice; the input is
// left untouched.
func ScoreAll(routes []RouteSummary, criteria Criteria, slippageBps int) []ScoredRoute {
	out := make([]ScoredRoute, len(routes))
	for i, r := range routes {
		out[i] = ScoredRoute{RouteSummary: r, Score: Score(r, criteria, slippageBps)}
	}
	return out
}

func efficiencyScore(r RouteSummary, slippageBps int) float64 {
	hopScore := 1.0 / hopFloor(r.Hops)
	impactScore := 1.0 - math.Min(r.PriceImpact, 1.0)
	diversity := math.Min(float64(len(r.Platforms))/hopFloor(r.Hops), 1.0)
	slippageScore := 1.0 - float64(slippageBps)/10000

	return hopScore*effHopWeight +
		impactScore*effImpactWeight +
		diversity*effDiversityWeight +
		slippageScore*effSlippageWeight
}

func speedScore(r RouteSummary) float64 {
	hopScore := 1.0 / hopFloor(r.Hops)
	timeScore := 1.0 / math.Max(float64(r.TimeToRouteMS), 1)
	computeScore := 1.0 / math.Max(float64(r.ComputeUnits)/1000, 1)

	return hopScore*speedHopWeight +
		timeScore*speedTimeWeight +
		computeScore*speedComputeWeight
}

func costScore(r RouteSummary) float64 {
	impactScore := 1.0 - math.Min(r.PriceImpact, 1.0)
	computeScore := 1.0 / math.Max(float64(r.ComputeUnits)/1000, 1)
	// normalizes against a 6-decimal token denomination
	amountScore := float64(r.OutAmount) / 1_000_000

	return impactScore*costImpactWeight +
		computeScore*costComputeWeight +
		amountScore*costAmountWeight
}

// hopFloor guards divisions: a route reporting zero hops scores as if it had
// one.
func hopFloor(hops int) float64 {
	if hops < 1 {
		return 1
	}
	return float64(hops)
}
