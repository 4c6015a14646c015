package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/jupiter"
)

// fakeSource is a scriptable RouteSource for orchestrator tests.
type fakeSource struct {
	routesFn  func(ctx context.Context, p jupiter.QuoteParams) ([]jupiter.RawRoute, error)
	executeFn func(ctx context.Context, p jupiter.SwapParams) (*jupiter.SwapResult, error)
}

func (f *fakeSource) Routes(ctx context.Context, p jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
	return f.routesFn(ctx, p)
}

func (f *fakeSource) Execute(ctx context.Context, p jupiter.SwapParams) (*jupiter.SwapResult, error) {
	if f.executeFn == nil {
		return nil, errors.New("execute not scripted")
	}
	return f.executeFn(ctx, p)
}

func (f *fakeSource) Health(ctx context.Context) error { return nil }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func twoRoutes() []jupiter.RawRoute {
	return []jupiter.RawRoute{
		{
			RouteID:          "route_1",
			OutAmount:        "1000000",
			PriceImpactPct:   "0.1",
			ComputeUnitPrice: "5000",
			TimeTaken:        "150",
			RoutePlan: []jupiter.RoutePlanStep{
				{SwapInfo: jupiter.SwapInfo{Label: "Raydium"}},
			},
		},
		{
			RouteID:          "route_2",
			OutAmount:        "980000",
			PriceImpactPct:   "0.2",
			ComputeUnitPrice: "3000",
			TimeTaken:        "100",
			RoutePlan: []jupiter.RoutePlanStep{
				{SwapInfo: jupiter.SwapInfo{Label: "Orca"}},
			},
		},
	}
}

func baseRequest(mode Mode) SwapRequest {
	return SwapRequest{
		InputMint:     "So11111111111111111111111111111111111111112",
		OutputMint:    "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		Amount:        500_000,
		SlippageBps:   50,
		WrapUnwrapSOL: true,
		Mode:          mode,
		Criteria:      CriteriaEfficiency,
	}
}

func TestProcess_ValidationErrors(t *testing.T) {
	fetches := 0
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		fetches++
		return nil, nil
	}}, testLogger())

	cases := []struct {
		name   string
		mutate func(*SwapRequest)
	}{
		{"missing input", func(r *SwapRequest) { r.InputMint = "" }},
		{"same assets", func(r *SwapRequest) { r.OutputMint = r.InputMint }},
		{"zero amount", func(r *SwapRequest) { r.Amount = 0 }},
		{"negative slippage", func(r *SwapRequest) { r.SlippageBps = -1 }},
		{"excessive slippage", func(r *SwapRequest) { r.SlippageBps = 10001 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := baseRequest(ModeAnalyzeOnly)
			tc.mutate(&req)

			resp := a.Process(context.Background(), req)
			assert.False(t, resp.Success)
			assert.Equal(t, "Invalid swap request", resp.Message)
			assert.NotEmpty(t, resp.Error)
		})
	}
	assert.Zero(t, fetches, "invalid requests must never reach the quote API")
}

func TestProcess_TransportFailure(t *testing.T) {
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		return nil, errors.New("connection refused")
	}}, testLogger())

	resp := a.Process(context.Background(), baseRequest(ModeAnalyzeOnly))

	assert.False(t, resp.Success)
	assert.Equal(t, "No routes found or API error", resp.Message)
	assert.Zero(t, resp.TotalRoutesFound)
	assert.Contains(t, resp.Error, "connection refused")
}

func TestProcess_NoRoutes(t *testing.T) {
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		return []jupiter.RawRoute{}, nil
	}}, testLogger())

	resp := a.Process(context.Background(), baseRequest(ModeAnalyzeOnly))

	assert.False(t, resp.Success)
	assert.Equal(t, "No routes found or API error", resp.Message)
	assert.Zero(t, resp.TotalRoutesFound)
}

func TestProcess_AllCandidatesInvalid(t *testing.T) {
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		// no out amount, no legs: carries no signal
		return []jupiter.RawRoute{{RouteID: "husk_1"}, {RouteID: "husk_2"}}, nil
	}}, testLogger())

	resp := a.Process(context.Background(), baseRequest(ModeAnalyzeOnly))

	assert.False(t, resp.Success)
	assert.Equal(t, "No valid routes found", resp.Message)
	assert.Zero(t, resp.TotalRoutesFound)
	assert.Nil(t, resp.BestRoute)
}

func TestProcess_AnalyzeOnly(t *testing.T) {
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		return twoRoutes(), nil
	}}, testLogger())

	resp := a.Process(context.Background(), baseRequest(ModeAnalyzeOnly))

	require.True(t, resp.Success)
	assert.Equal(t, "Found 2 routes. Analysis complete.", resp.Message)
	assert.Equal(t, string(ModeAnalyzeOnly), resp.Mode)
	assert.Equal(t, 2, resp.TotalRoutesFound)
	require.NotNil(t, resp.BestRoute)
	// lower price impact wins under efficiency
	assert.Equal(t, "route_1", resp.BestRoute.RouteID)
	require.Len(t, resp.AllRoutes, 2)
	assert.Equal(t, "route_1", resp.AllRoutes[0].RouteID)
	assert.Equal(t, "route_2", resp.AllRoutes[1].RouteID)
	assert.GreaterOrEqual(t, resp.AllRoutes[0].Score, resp.AllRoutes[1].Score)
	assert.Nil(t, resp.SelectedRoute)
	assert.Nil(t, resp.ExecutionResult)
}

func TestProcess_SpeedCriteriaChangesWinner(t *testing.T) {
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		return twoRoutes(), nil
	}}, testLogger())

	req := baseRequest(ModeAnalyzeOnly)
	req.Criteria = CriteriaSpeed

	resp := a.Process(context.Background(), req)

	require.True(t, resp.Success)
	// route_2 is faster to quote and cheaper to compute
	assert.Equal(t, "route_2", resp.BestRoute.RouteID)
}

func TestProcess_ManualMode(t *testing.T) {
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		return twoRoutes(), nil
	}}, testLogger())

	resp := a.Process(context.Background(), baseRequest(ModeManual))

	require.True(t, resp.Success)
	assert.Equal(t, "Found 2 routes for manual selection.", resp.Message)
	assert.Len(t, resp.AllRoutes, 2)
	assert.Nil(t, resp.ExecutionResult)
}

func TestProcess_AutoSwapMissingSigner(t *testing.T) {
	a := New(&fakeSource{
		routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
			return twoRoutes(), nil
		},
		executeFn: func(context.Context, jupiter.SwapParams) (*jupiter.SwapResult, error) {
			t.Fatal("must not execute without a signer")
			return nil, nil
		},
	}, testLogger())

	resp := a.Process(context.Background(), baseRequest(ModeAutoSwap))

	assert.False(t, resp.Success)
	assert.Equal(t, "User public key required for auto-swap", resp.Message)
	// the ranking is still returned for diagnostics
	assert.Equal(t, 2, resp.TotalRoutesFound)
	require.NotNil(t, resp.BestRoute)
	assert.Equal(t, "route_1", resp.BestRoute.RouteID)
	assert.Len(t, resp.AllRoutes, 2)
	assert.Nil(t, resp.ExecutionResult)
}

func TestProcess_AutoSwap(t *testing.T) {
	var gotParams jupiter.SwapParams
	a := New(&fakeSource{
		routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
			return twoRoutes(), nil
		},
		executeFn: func(_ context.Context, p jupiter.SwapParams) (*jupiter.SwapResult, error) {
			gotParams = p
			return &jupiter.SwapResult{TxID: "tx_abc", Status: "created"}, nil
		},
	}, testLogger())

	req := baseRequest(ModeAutoSwap)
	req.UserPublicKey = "FzQ4QyzMvRBLvSoSJqAVcV1mUWSK9i5Rw1pneHj9pFvA"

	resp := a.Process(context.Background(), req)

	require.True(t, resp.Success)
	assert.Equal(t, "Auto-swap executed using best route. Found 2 routes.", resp.Message)

	// execution must target the winning route with its full quote attached
	require.NotNil(t, gotParams.Route)
	assert.Equal(t, "route_1", gotParams.Route.RouteID)
	assert.Equal(t, "route_1", gotParams.RouteID)
	assert.Equal(t, req.UserPublicKey, gotParams.UserPublicKey)
	assert.True(t, gotParams.WrapUnwrapSOL)

	require.NotNil(t, resp.SelectedRoute)
	assert.Equal(t, "route_1", resp.SelectedRoute.RouteID)
	require.NotNil(t, resp.ExecutionResult)
	assert.True(t, resp.ExecutionResult.Success)
	assert.Equal(t, "tx_abc", resp.ExecutionResult.TxID)
	assert.Equal(t, uint64(1_000_000), resp.ExecutionResult.OutAmount)
}

func TestProcess_AutoSwapExecutionFailure(t *testing.T) {
	a := New(&fakeSource{
		routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
			return twoRoutes(), nil
		},
		executeFn: func(context.Context, jupiter.SwapParams) (*jupiter.SwapResult, error) {
			return nil, errors.New("insufficient balance")
		},
	}, testLogger())

	req := baseRequest(ModeAutoSwap)
	req.UserPublicKey = "FzQ4QyzMvRBLvSoSJqAVcV1mUWSK9i5Rw1pneHj9pFvA"

	resp := a.Process(context.Background(), req)

	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to create swap transaction", resp.Message)
	assert.Contains(t, resp.Error, "insufficient balance")
	// ranking survives the failed execution attempt
	assert.Equal(t, 2, resp.TotalRoutesFound)
	assert.Len(t, resp.AllRoutes, 2)
	assert.Nil(t, resp.ExecutionResult)
}

func TestProcess_MaxRoutesForwarded(t *testing.T) {
	var gotMax int
	a := New(&fakeSource{routesFn: func(_ context.Context, p jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		gotMax = p.MaxRoutes
		return twoRoutes(), nil
	}}, testLogger(), WithMaxRoutes(3))

	_ = a.Process(context.Background(), baseRequest(ModeAnalyzeOnly))
	assert.Equal(t, 3, gotMax)
}

func TestProcess_DemoModeFlagOnResponse(t *testing.T) {
	a := New(&fakeSource{routesFn: func(context.Context, jupiter.QuoteParams) ([]jupiter.RawRoute, error) {
		return twoRoutes(), nil
	}}, testLogger(), WithDemoMode(true))

	resp := a.Process(context.Background(), baseRequest(ModeAnalyzeOnly))
	assert.True(t, resp.DemoMode)
}

func TestExecute(t *testing.T) {
	a := New(&fakeSource{
		executeFn: func(_ context.Context, p jupiter.SwapParams) (*jupiter.SwapResult, error) {
			if p.RouteID != "route_2" {
				return nil, fmt.Errorf("unknown route %q", p.RouteID)
			}
			return &jupiter.SwapResult{TxID: "tx_manual", Status: "created"}, nil
		},
	}, testLogger())

	req := baseRequest(ModeManual)
	req.UserPublicKey = "FzQ4QyzMvRBLvSoSJqAVcV1mUWSK9i5Rw1pneHj9pFvA"

	outcome := a.Execute(context.Background(), "route_2", req)
	require.True(t, outcome.Success)
	assert.Equal(t, "tx_manual", outcome.TxID)
	assert.Equal(t, "route_2", outcome.RouteID)
	assert.Equal(t, "created", outcome.Status)

	outcome = a.Execute(context.Background(), "route_9", req)
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "route_9")
}

func TestExecute_RequiresRouteAndSigner(t *testing.T) {
	a := New(&fakeSource{}, testLogger())

	outcome := a.Execute(context.Background(), "", baseRequest(ModeManual))
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "route_id")

	outcome = a.Execute(context.Background(), "route_1", baseRequest(ModeManual))
	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Error, "public key")
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria("speed", false)
	require.NoError(t, err)
	assert.Equal(t, CriteriaSpeed, c)

	c, err = ParseCriteria("  Cost ", false)
	require.NoError(t, err)
	assert.Equal(t, CriteriaCost, c)

	c, err = ParseCriteria("", false)
	require.NoError(t, err)
	assert.Equal(t, CriteriaEfficiency, c)

	_, err = ParseCriteria("fastest", false)
	assert.ErrorIs(t, err, ErrValidation)

	c, err = ParseCriteria("fastest", true)
	require.NoError(t, err)
	assert.Equal(t, CriteriaEfficiency, c)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("auto_swap")
	require.NoError(t, err)
	assert.Equal(t, ModeAutoSwap, m)

	_, err = ParseMode("yolo")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	routes := []ScoredRoute{
		{RouteSummary: RouteSummary{Hops: 1, Platforms: []string{"Raydium"}, PriceImpact: 0.001}, Score: 0.9},
		{RouteSummary: RouteSummary{Hops: 3, Platforms: []string{"Orca", "Raydium"}, PriceImpact: 0.003}, Score: 0.5},
	}
	got := Summarize(routes)

	assert.Equal(t, 2, got.TotalRoutes)
	assert.InDelta(t, 2.0, got.AvgHops, 1e-12)
	assert.InDelta(t, 0.002, got.AvgPriceImpact, 1e-12)
	assert.InDelta(t, 0.7, got.AvgScore, 1e-12)
	assert.Equal(t, 0.9, got.BestScore)
	assert.Equal(t, 0.5, got.WorstScore)
	assert.Equal(t, []string{"Raydium", "Orca"}, got.PlatformsUsed)
}
