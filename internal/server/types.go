package server

// ErrorResponse is the standardized error shape for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details any    `json:"details,omitempty"` // dev mode only
}

// HealthResponse reports service and upstream quote-API status.
type HealthResponse struct {
	Status           string  `json:"status"`
	Timestamp        float64 `json:"timestamp"`
	Version          string  `json:"version"`
	JupiterAPIStatus string  `json:"jupiter_api_status"`
}

// AnalyzeRequest drives the analyze and manual-swap endpoints.
type AnalyzeRequest struct {
	InputMint   string `json:"input_mint"`
	OutputMint  string `json:"output_mint"`
	Amount      uint64 `json:"amount"`
	SlippageBps *int   `json:"slippage_bps,omitempty"`

	WrapUnwrapSOL *bool  `json:"wrap_unwrap_sol,omitempty"`
	Criteria      string `json:"auto_select_criteria,omitempty"`
	DemoMode      bool   `json:"demo_mode,omitempty"`
}

// AutoSwapRequest additionally carries the signer identity.
type AutoSwapRequest struct {
	AnalyzeRequest
	UserPublicKey string `json:"user_public_key"`
}

// ExecuteRequest is the manual-mode follow-up: execute one previously ranked
// route by ID, with the original request context.
type ExecuteRequest struct {
	RouteID string `json:"route_id"`

	InputMint     string `json:"input_mint"`
	OutputMint    string `json:"output_mint"`
	Amount        uint64 `json:"amount"`
	SlippageBps   *int   `json:"slippage_bps,omitempty"`
	WrapUnwrapSOL *bool  `json:"wrap_unwrap_sol,omitempty"`
	UserPublicKey string `json:"user_public_key"`
	DemoMode      bool   `json:"demo_mode,omitempty"`
}

// ToggleUpsertRequest creates or updates a runtime toggle.
type ToggleUpsertRequest struct {
	Key   string `json:"key"`
	Value bool   `json:"value"`
}

// ToggleUpdateRequest updates an existing runtime toggle.
type ToggleUpdateRequest struct {
	Value bool `json:"value"`
}
