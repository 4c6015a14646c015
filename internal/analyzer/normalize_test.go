package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/jupiter"
)

func TestNormalize(t *testing.T) {
	raw := jupiter.RawRoute{
		RouteID:              "route_1",
		OutAmount:            "1000000",
		PriceImpactPct:       "0.1",
		ComputeUnitPrice:     "5000",
		TimeTaken:            "150",
		OtherAmountThreshold: "50000",
		RoutePlan: []jupiter.RoutePlanStep{
			{SwapInfo: jupiter.SwapInfo{Label: "Raydium"}},
		},
	}

	got := Normalize(raw)

	assert.Equal(t, "route_1", got.RouteID)
	assert.Equal(t, uint64(1_000_000), got.OutAmount)
	assert.Equal(t, 1, got.Hops)
	assert.Equal(t, []string{"Raydium"}, got.Platforms)
	// upstream reports a percentage; downstream always sees a fraction
	assert.InDelta(t, 0.001, got.PriceImpact, 1e-12)
	assert.Equal(t, uint64(5000), got.ComputeUnits)
	assert.Equal(t, uint64(150), got.TimeToRouteMS)
	assert.InDelta(t, 0.005, got.GasEstimate, 1e-12)
	assert.InDelta(t, 0.05, got.TotalFee, 1e-12)
}

func TestNormalize_MissingFieldsReadAsZero(t *testing.T) {
	got := Normalize(jupiter.RawRoute{RouteID: "sparse"})

	assert.Equal(t, "sparse", got.RouteID)
	assert.Zero(t, got.OutAmount)
	assert.Zero(t, got.Hops)
	assert.Empty(t, got.Platforms)
	assert.Zero(t, got.PriceImpact)
	assert.Zero(t, got.ComputeUnits)
	assert.Zero(t, got.TimeToRouteMS)
}

func TestNormalize_PlatformDedupeAndUnknown(t *testing.T) {
	raw := jupiter.RawRoute{
		RouteID:   "multi",
		OutAmount: "1",
		RoutePlan: []jupiter.RoutePlanStep{
			{SwapInfo: jupiter.SwapInfo{Label: "Orca"}},
			{SwapInfo: jupiter.SwapInfo{}}, // unlabeled leg
			{SwapInfo: jupiter.SwapInfo{Label: "Orca"}},
			{SwapInfo: jupiter.SwapInfo{Label: "Meteora"}},
		},
	}

	got := Normalize(raw)

	assert.Equal(t, 4, got.Hops)
	// dedupe preserves first-seen order
	assert.Equal(t, []string{"Orca", "unknown", "Meteora"}, got.Platforms)
}

func TestNormalize_LegacyAmmLabel(t *testing.T) {
	body := []byte(`{
		"routeId": "legacy",
		"outAmount": 980000,
		"priceImpactPct": 0.2,
		"timeTaken": "100.0",
		"routePlan": [
			{"swapInfo": {"amm": {"label": "Orca"}}}
		]
	}`)

	var raw jupiter.RawRoute
	require.NoError(t, json.Unmarshal(body, &raw))

	got := Normalize(raw)
	assert.Equal(t, []string{"Orca"}, got.Platforms)
	assert.Equal(t, uint64(980_000), got.OutAmount)
	assert.InDelta(t, 0.002, got.PriceImpact, 1e-12)
	// float-formatted integral fields still read as integers
	assert.Equal(t, uint64(100), got.TimeToRouteMS)
}

func TestValidCandidate(t *testing.T) {
	assert.True(t, validCandidate(jupiter.RawRoute{OutAmount: "1"}))
	assert.True(t, validCandidate(jupiter.RawRoute{
		RoutePlan: []jupiter.RoutePlanStep{{SwapInfo: jupiter.SwapInfo{Label: "Orca"}}},
	}))
	assert.False(t, validCandidate(jupiter.RawRoute{RouteID: "empty"}))
}
