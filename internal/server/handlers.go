package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/analyzer"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/flags"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/storage"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/tokens"
)

const apiVersion = "1.0.0"

// Handlers contains all dependencies for the API endpoints. Live runs against
// the real quote API; Demo runs against canned data. Cache and Toggles are
// optional and may be nil.
type Handlers struct {
	Live *analyzer.Analyzer
	Demo *analyzer.Analyzer

	Cache   storage.AnalysisCache
	Toggles *flags.Store
	Logger  *logrus.Logger

	DevMode         bool
	LenientCriteria bool
	ForceDemoMode   bool
	DefaultSlippage int
	RequestTimeout  time.Duration
}

// err returns a standardized JSON error response. Details are only exposed
// in dev mode.
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

func (h *Handlers) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	d := h.RequestTimeout
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// analyzerFor picks the demo or live pipeline. Demo wins if the request asks
// for it, the server is configured for it, or the runtime toggle is set.
func (h *Handlers) analyzerFor(ctx context.Context, requestDemo bool) (*analyzer.Analyzer, bool) {
	demo := requestDemo || h.ForceDemoMode
	if !demo && h.Toggles != nil {
		demo = h.Toggles.BoolOr(ctx, flags.KeyDemoMode, false)
	}
	if demo {
		return h.Demo, true
	}
	return h.Live, false
}

func (h *Handlers) lenientCriteria(ctx context.Context) bool {
	if h.LenientCriteria {
		return true
	}
	if h.Toggles != nil {
		return h.Toggles.BoolOr(ctx, flags.KeyLenientCriteria, false)
	}
	return false
}

// buildRequest converts an API request into the internal swap request. Asset
// identifiers may be symbols or mint addresses.
func (h *Handlers) buildRequest(ctx context.Context, r AnalyzeRequest, mode analyzer.Mode, userPublicKey string, demo bool) (analyzer.SwapRequest, map[string]any) {
	inMint, err := tokens.ParseAsset(r.InputMint)
	if err != nil {
		return analyzer.SwapRequest{}, map[string]any{"input_mint": err.Error()}
	}
	outMint, err := tokens.ParseAsset(r.OutputMint)
	if err != nil {
		return analyzer.SwapRequest{}, map[string]any{"output_mint": err.Error()}
	}
	if r.Amount == 0 {
		return analyzer.SwapRequest{}, map[string]any{"amount": "must be > 0"}
	}

	slippage := h.DefaultSlippage
	if r.SlippageBps != nil {
		slippage = *r.SlippageBps
	}
	if slippage < 0 || slippage > 10000 {
		return analyzer.SwapRequest{}, map[string]any{"slippage_bps": "must be within [0, 10000]"}
	}

	criteria, err := analyzer.ParseCriteria(r.Criteria, h.lenientCriteria(ctx))
	if err != nil {
		return analyzer.SwapRequest{}, map[string]any{"auto_select_criteria": "must be efficiency, speed, or cost"}
	}

	// demo mode allows placeholder signer identities
	if userPublicKey != "" && !demo {
		if err := tokens.ValidateSigner(userPublicKey); err != nil {
			return analyzer.SwapRequest{}, map[string]any{"user_public_key": err.Error()}
		}
	}

	wrap := true
	if r.WrapUnwrapSOL != nil {
		wrap = *r.WrapUnwrapSOL
	}

	return analyzer.SwapRequest{
		InputMint:     inMint,
		OutputMint:    outMint,
		Amount:        r.Amount,
		SlippageBps:   slippage,
		UserPublicKey: userPublicKey,
		WrapUnwrapSOL: wrap,
		Mode:          mode,
		Criteria:      criteria,
	}, nil
}

// respond writes a swap response with a status code reflecting its outcome.
// Failures still carry the full structured body for diagnostics.
func respond(c echo.Context, resp *analyzer.SwapResponse) error {
	code := http.StatusOK
	if !resp.Success {
		code = http.StatusBadRequest
	}
	return c.JSON(code, resp)
}

// Health reports service status plus upstream quote-API reachability.
func (h *Handlers) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	upstream := "available"
	if err := h.Live.Health(ctx); err != nil {
		upstream = "unreachable"
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:           "healthy",
		Timestamp:        float64(time.Now().UnixMilli()) / 1000,
		Version:          apiVersion,
		JupiterAPIStatus: upstream,
	})
}

// Analyze ranks routes without executing anything.
func (h *Handlers) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context())
	defer cancel()

	a, demo := h.analyzerFor(ctx, req.DemoMode)
	swapReq, details := h.buildRequest(ctx, req, analyzer.ModeAnalyzeOnly, "", demo)
	if details != nil {
		return h.err(c, http.StatusBadRequest, "invalid request", details)
	}

	return respond(c, a.Process(ctx, swapReq))
}

// AutoSwap ranks routes and requests execution of the best one.
func (h *Handlers) AutoSwap(c echo.Context) error {
	var req AutoSwapRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context())
	defer cancel()

	a, demo := h.analyzerFor(ctx, req.DemoMode)
	swapReq, details := h.buildRequest(ctx, req.AnalyzeRequest, analyzer.ModeAutoSwap, req.UserPublicKey, demo)
	if details != nil {
		return h.err(c, http.StatusBadRequest, "invalid request", details)
	}

	return respond(c, a.Process(ctx, swapReq))
}

// ManualSwap ranks routes for the caller to choose from; execution follows
// through ExecuteRoute.
func (h *Handlers) ManualSwap(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	ctx, cancel := h.withTimeout(c.Request().Context())
	defer cancel()

	a, demo := h.analyzerFor(ctx, req.DemoMode)
	swapReq, details := h.buildRequest(ctx, req, analyzer.ModeManual, "", demo)
	if details != nil {
		return h.err(c, http.StatusBadRequest, "invalid request", details)
	}

	return respond(c, a.Process(ctx, swapReq))
}

// ExecuteRoute executes one previously ranked route by ID.
func (h *Handlers) ExecuteRoute(c echo.Context) error {
	var req ExecuteRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	if req.RouteID == "" {
		return h.err(c, http.StatusBadRequest, "invalid request", map[string]any{"route_id": "required"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context())
	defer cancel()

	a, demo := h.analyzerFor(ctx, req.DemoMode)
	swapReq, details := h.buildRequest(ctx, AnalyzeRequest{
		InputMint:     req.InputMint,
		OutputMint:    req.OutputMint,
		Amount:        req.Amount,
		SlippageBps:   req.SlippageBps,
		WrapUnwrapSOL: req.WrapUnwrapSOL,
	}, analyzer.ModeManual, req.UserPublicKey, demo)
	if details != nil {
		return h.err(c, http.StatusBadRequest, "invalid request", details)
	}

	outcome := a.Execute(ctx, req.RouteID, swapReq)
	code := http.StatusOK
	if !outcome.Success {
		code = http.StatusBadRequest
	}
	return c.JSON(code, outcome)
}

// RecentAnalyses returns the most recent analysis records from the
// operational cache.
func (h *Handlers) RecentAnalyses(c echo.Context) error {
	if h.Cache == nil {
		return h.err(c, http.StatusBadRequest, "analysis cache is not configured", nil)
	}

	limit := int64(20)
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || n > 100 {
			return h.err(c, http.StatusBadRequest, "invalid limit", map[string]any{"limit": "min 1 max 100"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Cache.GetRecentAnalyses(ctx, limit)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to get analyses", nil)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// Runtime toggle CRUD.

func (h *Handlers) TogglesList(c echo.Context) error {
	if h.Toggles == nil {
		return h.err(c, http.StatusBadRequest, "toggles are not configured", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Toggles.List(ctx)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to list toggles", nil)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) TogglesUpsert(c echo.Context) error {
	if h.Toggles == nil {
		return h.err(c, http.StatusBadRequest, "toggles are not configured", nil)
	}

	var req ToggleUpsertRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	if err := flags.ValidateKey(req.Key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	out, err := h.Toggles.Upsert(ctx, req.Key, req.Value)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to upsert toggle", nil)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handlers) TogglesGet(c echo.Context) error {
	if h.Toggles == nil {
		return h.err(c, http.StatusBadRequest, "toggles are not configured", nil)
	}

	key := c.Param("key")
	if err := flags.ValidateKey(key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	out, err := h.Toggles.Get(ctx, key)
	if err != nil {
		if errors.Is(err, flags.ErrNotFound) {
			return h.err(c, http.StatusNotFound, "toggle not found", nil)
		}
		return h.err(c, http.StatusInternalServerError, "failed to get toggle", nil)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handlers) TogglesUpdate(c echo.Context) error {
	if h.Toggles == nil {
		return h.err(c, http.StatusBadRequest, "toggles are not configured", nil)
	}

	key := c.Param("key")
	if err := flags.ValidateKey(key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}
	var req ToggleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	out, err := h.Toggles.Upsert(ctx, key, req.Value)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to update toggle", nil)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handlers) TogglesDelete(c echo.Context) error {
	if h.Toggles == nil {
		return h.err(c, http.StatusBadRequest, "toggles are not configured", nil)
	}

	key := c.Param("key")
	if err := flags.ValidateKey(key); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid key", map[string]any{"key": "invalid format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.Toggles.Delete(ctx, key); err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to delete toggle", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
