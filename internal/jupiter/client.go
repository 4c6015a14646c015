package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Jupiter quote/swap HTTP API. It is created once at
// process startup and injected into everything that needs it; request scoping
// happens through the context passed to each call.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://quote-api.jup.ag/v6"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP: &http.Client{
			Timeout: 12 * time.Second,
		},
	}
}

type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("jupiter http %d", e.StatusCode)
	}
	return fmt.Sprintf("jupiter http %d: %s", e.StatusCode, b)
}

// Routes fetches candidate routes for a swap. One attempt, no retries.
func (c *Client) Routes(ctx context.Context, p QuoteParams) ([]RawRoute, error) {
	if strings.TrimSpace(p.InputMint) == "" {
		return nil, fmt.Errorf("inputMint is required")
	}
	if strings.TrimSpace(p.OutputMint) == "" {
		return nil, fmt.Errorf("outputMint is required")
	}
	if p.Amount == 0 {
		return nil, fmt.Errorf("amount must be > 0")
	}

	q := url.Values{}
	q.Set("inputMint", p.InputMint)
	q.Set("outputMint", p.OutputMint)
	q.Set("amount", fmt.Sprintf("%d", p.Amount))
	q.Set("slippageBps", fmt.Sprintf("%d", p.SlippageBps))
	if p.MaxRoutes > 0 {
		q.Set("maxRoutes", fmt.Sprintf("%d", p.MaxRoutes))
	}
	if p.OnlyDirectRoutes {
		q.Set("onlyDirectRoutes", "true")
	}
	q.Set("wrapUnwrapSOL", fmt.Sprintf("%t", p.WrapUnwrapSOL))

	body, err := c.get(ctx, c.BaseURL+"/quote?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return ParseQuoteBody(body)
}

// ParseQuoteBody decodes a quote response into candidate routes. The API has
// shipped two shapes over time: a {"data":[...]} envelope holding several
// candidates, and a single route object at the top level.
func ParseQuoteBody(body []byte) ([]RawRoute, error) {
	var env quoteEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return env.Data, nil
	}

	var single RawRoute
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if len(single.RoutePlan) == 0 && single.OutAmount == "" {
		// neither shape matched; treat as "no routes"
		return nil, nil
	}
	return []RawRoute{single}, nil
}

// Execute submits one route for execution and returns the transaction handle.
// One attempt, no retries; execution is not idempotent.
func (c *Client) Execute(ctx context.Context, p SwapParams) (*SwapResult, error) {
	if strings.TrimSpace(p.UserPublicKey) == "" {
		return nil, fmt.Errorf("userPublicKey is required")
	}
	if p.Route == nil && strings.TrimSpace(p.RouteID) == "" {
		return nil, fmt.Errorf("route or routeId is required")
	}

	payload := map[string]any{
		"userPublicKey":    p.UserPublicKey,
		"wrapAndUnwrapSol": p.WrapUnwrapSOL,
	}
	if p.Route != nil {
		payload["quoteResponse"] = p.Route
	} else {
		payload["routeId"] = p.RouteID
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/swap", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("content-type", "application/json")
	c.setHeaders(httpReq)

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}

	var out SwapResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode swap response: %w", err)
	}
	if out.Status == "" {
		out.Status = "created"
	}
	return &out, nil
}

// Health reports whether the quote API is reachable. A well-formed rejection
// (4xx) still counts as reachable; only transport failures and server errors
// do not.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/quote", nil)
	if err != nil {
		return err
	}
	c.setHeaders(httpReq)

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.StatusCode >= 500 {
		return &HTTPError{StatusCode: res.StatusCode}
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
}
