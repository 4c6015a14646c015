package analyzer

import (
	"fmt"
	"strings"
)

// Mode selects what the pipeline does with the ranked routes.
type Mode string

const (
	ModeAnalyzeOnly Mode = "analyze_only"
	ModeAutoSwap    Mode = "auto_swap"
	ModeManual      Mode = "manual_mode"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.TrimSpace(strings.ToLower(s))) {
	case ModeAnalyzeOnly:
		return ModeAnalyzeOnly, nil
	case ModeAutoSwap:
		return ModeAutoSwap, nil
	case ModeManual:
		return ModeManual, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrValidation, s)
}

// Criteria selects the scoring policy.
type Criteria string

const (
	CriteriaEfficiency Criteria = "efficiency"
	CriteriaSpeed      Criteria = "speed"
	CriteriaCost       Criteria = "cost"
)

// ParseCriteria validates a criteria string at the request boundary.
// Unrecognized input is rejected unless lenient is set, in which case it
// silently falls back to efficiency (compatibility with callers that relied
// on the old silent-default behavior).
func ParseCriteria(s string, lenient bool) (Criteria, error) {
	switch Criteria(strings.TrimSpace(strings.ToLower(s))) {
	case CriteriaEfficiency, "":
		return CriteriaEfficiency, nil
	case CriteriaSpeed:
		return CriteriaSpeed, nil
	case CriteriaCost:
		return CriteriaCost, nil
	}
	if lenient {
		return CriteriaEfficiency, nil
	}
	return "", fmt.Errorf("%w: unknown criteria %q", ErrValidation, s)
}

// SwapRequest is the immutable intent for one analysis run.
type SwapRequest struct {
	InputMint  string `json:"input_mint"`
	OutputMint string `json:"output_mint"`
	Amount     uint64 `json:"amount"`

	SlippageBps   int    `json:"slippage_bps"`
	UserPublicKey string `json:"user_public_key,omitempty"`
	WrapUnwrapSOL bool   `json:"wrap_unwrap_sol"`

	Mode     Mode     `json:"mode"`
	Criteria Criteria `json:"auto_select_criteria"`
}

// RouteSummary is the canonical, normalized form of one candidate route.
// PriceImpact is always a fraction (0.01 = 1%); the normalizer owns the
// percentage-to-fraction conversion.
type RouteSummary struct {
	RouteID   string   `json:"route_id"`
	OutAmount uint64   `json:"out_amount"`
	Hops      int      `json:"hops"`
	Platforms []string `json:"platforms"`

	PriceImpact   float64 `json:"price_impact"`
	ComputeUnits  uint64  `json:"compute_units"`
	TimeToRouteMS uint64  `json:"time_to_route"`
	GasEstimate   float64 `json:"gas_estimate"`
	TotalFee      float64 `json:"total_fee"`
}

// ScoredRoute is a RouteSummary with its score assigned. Scoring produces a
// new value; summaries are never mutated after construction.
type ScoredRoute struct {
	RouteSummary
	Score float64 `json:"score"`
}

// ExecutionOutcome is the result of a single execution request.
type ExecutionOutcome struct {
	Success   bool   `json:"success"`
	TxID      string `json:"txid,omitempty"`
	RouteID   string `json:"route_id,omitempty"`
	OutAmount uint64 `json:"amount_out,omitempty"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SwapResponse is the structured result of one analysis run. Failures still
// carry whatever ranking was computed before the failure, for diagnostics.
type SwapResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	Mode             string `json:"mode"`
	TotalRoutesFound int    `json:"total_routes_found"`

	BestRoute     *ScoredRoute  `json:"best_route,omitempty"`
	AllRoutes     []ScoredRoute `json:"all_routes,omitempty"`
	SelectedRoute *ScoredRoute  `json:"selected_route,omitempty"`

	ExecutionResult *ExecutionOutcome `json:"execution_result,omitempty"`
	Error           string            `json:"error,omitempty"`
	DemoMode        bool              `json:"demo_mode,omitempty"`
}

// Summary holds aggregate statistics over a set of scored routes.
type Summary struct {
	TotalRoutes    int      `json:"total_routes"`
	AvgHops        float64  `json:"avg_hops"`
	AvgPriceImpact float64  `json:"avg_price_impact"`
	AvgScore       float64  `json:"avg_score"`
	BestScore      float64  `json:"best_score"`
	WorstScore     float64  `json:"worst_score"`
	PlatformsUsed  []string `json:"platforms_used"`
}
