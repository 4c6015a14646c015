package analyzer

import (
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/jupiter"
)

// Normalize converts one raw candidate into its canonical summary. It never
// fails: missing numeric fields read as 0 and a missing route plan yields an
// empty platform set. The upstream priceImpactPct field is a percentage; it
// is divided by 100 here and nowhere else, so everything downstream sees a
// fraction.
func Normalize(raw jupiter.RawRoute) RouteSummary {
	platforms := extractPlatforms(raw.RoutePlan)

	return RouteSummary{
		RouteID:       raw.RouteID,
		OutAmount:     raw.OutAmount.Uint64(),
		Hops:          len(raw.RoutePlan),
		Platforms:     platforms,
		PriceImpact:   raw.PriceImpactPct.Float64() / 100,
		ComputeUnits:  raw.ComputeUnitPrice.Uint64(),
		TimeToRouteMS: raw.TimeTaken.Uint64(),
		GasEstimate:   raw.ComputeUnitPrice.Float64() / 1_000_000,
		TotalFee:      raw.OtherAmountThreshold.Float64() / 1_000_000,
	}
}

// extractPlatforms collects the venue label of every leg into a duplicate-free
// list, preserving first-seen order so output is deterministic. Legs without
// a label count as "unknown".
func extractPlatforms(plan []jupiter.RoutePlanStep) []string {
	seen := make(map[string]struct{}, len(plan))
	out := make([]string, 0, len(plan))
	for _, step := range plan {
		label := step.SwapInfo.PlatformLabel()
		if label == "" {
			label = "unknown"
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// validCandidate is the shape check applied before normalization. A candidate
// that reports neither an output amount nor any route legs carries no signal
// and is dropped by the orchestrator.
func validCandidate(raw jupiter.RawRoute) bool {
	return raw.OutAmount.Uint64() > 0 || len(raw.RoutePlan) > 0
}
