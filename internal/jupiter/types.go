package jupiter

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// QuoteParams are the parameters for a candidate-route fetch.
type QuoteParams struct {
	InputMint  string
	OutputMint string
	Amount     uint64

	SlippageBps      int
	MaxRoutes        int
	OnlyDirectRoutes bool
	WrapUnwrapSOL    bool
}

// Number is a JSON field that the upstream API emits sometimes as a string
// ("1000000") and sometimes as a bare number, depending on API version.
// A missing, null, or unparseable value reads as zero.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = ""
			return nil
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	*n = Number(b)
	return nil
}

func (n Number) Uint64() uint64 {
	if n == "" {
		return 0
	}
	if v, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return v
	}
	// upstream occasionally reports integral fields as floats ("150.0")
	if f, err := strconv.ParseFloat(string(n), 64); err == nil && f > 0 {
		return uint64(f)
	}
	return 0
}

func (n Number) Float64() float64 {
	if n == "" {
		return 0
	}
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0
	}
	return v
}

// RawRoute is one candidate route as returned by the quote API. Every field
// is optional; absent fields decode to zero values.
type RawRoute struct {
	RouteID              string          `json:"routeId,omitempty"`
	OutAmount            Number          `json:"outAmount,omitempty"`
	InAmount             Number          `json:"inAmount,omitempty"`
	OtherAmountThreshold Number          `json:"otherAmountThreshold,omitempty"`
	PriceImpactPct       Number          `json:"priceImpactPct,omitempty"`
	ComputeUnitPrice     Number          `json:"computeUnitPriceMicroLamports,omitempty"`
	TimeTaken            Number          `json:"timeTaken,omitempty"`
	SlippageBps          Number          `json:"slippageBps,omitempty"`
	RoutePlan            []RoutePlanStep `json:"routePlan,omitempty"`
}

// RoutePlanStep is one leg of a route.
type RoutePlanStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  Number   `json:"percent,omitempty"`
}

// SwapInfo describes the venue executing one leg. The v6 API puts the venue
// label directly on swapInfo; older responses nest it under an "amm" object.
type SwapInfo struct {
	AmmKey     string   `json:"ammKey,omitempty"`
	Label      string   `json:"label,omitempty"`
	Amm        *AmmInfo `json:"amm,omitempty"`
	InputMint  string   `json:"inputMint,omitempty"`
	OutputMint string   `json:"outputMint,omitempty"`
	InAmount   Number   `json:"inAmount,omitempty"`
	OutAmount  Number   `json:"outAmount,omitempty"`
}

type AmmInfo struct {
	Label string `json:"label,omitempty"`
}

// PlatformLabel returns the venue label for a leg, falling back across the
// two historical response shapes.
func (s SwapInfo) PlatformLabel() string {
	if s.Label != "" {
		return s.Label
	}
	if s.Amm != nil && s.Amm.Label != "" {
		return s.Amm.Label
	}
	return ""
}

// SwapParams are the parameters for a single execution request. Route carries
// the full quoted candidate when the caller still holds it (auto-swap);
// manual-mode follow-ups reference a previously ranked route by ID only.
type SwapParams struct {
	Route         *RawRoute
	RouteID       string
	UserPublicKey string
	WrapUnwrapSOL bool
}

// SwapResult is the outcome of an execution request.
type SwapResult struct {
	TxID                 string `json:"txid,omitempty"`
	Status               string `json:"status,omitempty"`
	SwapTransaction      string `json:"swapTransaction,omitempty"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight,omitempty"`
}

// quoteEnvelope is the legacy multi-route response shape; newer API versions
// return a single route object at the top level instead.
type quoteEnvelope struct {
	Data []RawRoute `json:"data"`
}
