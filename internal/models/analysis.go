package models

import "time"

// AnalysisRecord is one completed analysis run, as written to the
// operational sinks. Observability data only; never read back on the
// scoring path.
type AnalysisRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Pair       string    `json:"pair"`
	InputMint  string    `json:"input_mint"`
	OutputMint string    `json:"output_mint"`
	Amount     uint64    `json:"amount"`

	Mode        string `json:"mode"`
	Criteria    string `json:"criteria"`
	RoutesFound int    `json:"routes_found"`
	Success     bool   `json:"success"`

	BestRouteID   string  `json:"best_route_id,omitempty"`
	BestScore     float64 `json:"best_score,omitempty"`
	BestOutAmount uint64  `json:"best_out_amount,omitempty"`

	DemoMode   bool  `json:"demo_mode"`
	DurationMS int64 `json:"duration_ms"`
}

// ExecutionRecord is one execution attempt.
type ExecutionRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	TxID          string    `json:"txid,omitempty"`
	RouteID       string    `json:"route_id,omitempty"`
	Pair          string    `json:"pair"`
	UserPublicKey string    `json:"user_public_key"`
	OutAmount     uint64    `json:"amount_out,omitempty"`
	Success       bool      `json:"success"`
	Status        string    `json:"status,omitempty"`
	Error         string    `json:"error,omitempty"`
}
