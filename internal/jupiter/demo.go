package jupiter

import (
	"context"
	"fmt"
	"time"
)

// DemoSource serves canned candidate routes without touching the network.
// It satisfies the same interface as Client, so the analysis pipeline runs
// unchanged against deterministic data.
type DemoSource struct{}

func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

func (d *DemoSource) Routes(ctx context.Context, p QuoteParams) ([]RawRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return demoRoutes(), nil
}

func (d *DemoSource) Execute(ctx context.Context, p SwapParams) (*SwapResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.UserPublicKey == "" {
		return nil, fmt.Errorf("userPublicKey is required")
	}
	id := p.RouteID
	if id == "" && p.Route != nil {
		id = p.Route.RouteID
	}
	return &SwapResult{
		TxID:   fmt.Sprintf("demo_tx_%s_%d", id, time.Now().Unix()),
		Status: "simulated",
	}, nil
}

func (d *DemoSource) Health(ctx context.Context) error {
	return ctx.Err()
}

func demoRoutes() []RawRoute {
	return []RawRoute{
		{
			RouteID:              "route_1",
			OutAmount:            "1000000",
			PriceImpactPct:       "0.1",
			ComputeUnitPrice:     "5000",
			TimeTaken:            "150",
			OtherAmountThreshold: "50000",
			RoutePlan: []RoutePlanStep{
				{SwapInfo: SwapInfo{Label: "Raydium", InAmount: "500000", OutAmount: "1000000"}},
			},
		},
		{
			RouteID:              "route_2",
			OutAmount:            "980000",
			PriceImpactPct:       "0.2",
			ComputeUnitPrice:     "3000",
			TimeTaken:            "100",
			OtherAmountThreshold: "30000",
			RoutePlan: []RoutePlanStep{
				{SwapInfo: SwapInfo{Label: "Orca", InAmount: "500000", OutAmount: "980000"}},
			},
		},
		{
			RouteID:              "route_3",
			OutAmount:            "995000",
			PriceImpactPct:       "0.05",
			ComputeUnitPrice:     "8000",
			TimeTaken:            "220",
			OtherAmountThreshold: "45000",
			RoutePlan: []RoutePlanStep{
				{SwapInfo: SwapInfo{Label: "Orca", InAmount: "500000", OutAmount: "700000"}},
				{SwapInfo: SwapInfo{Label: "Meteora", InAmount: "700000", OutAmount: "995000"}},
			},
		},
	}
}
