package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/jupiter"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/metrics"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/models"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/storage"
)

// RouteSource is the external quote/swap API collaborator. The live client
// and the demo source both satisfy it; the orchestrator never touches the
// network directly.
type RouteSource interface {
	Routes(ctx context.Context, p jupiter.QuoteParams) ([]jupiter.RawRoute, error)
	Execute(ctx context.Context, p jupiter.SwapParams) (*jupiter.SwapResult, error)
	Health(ctx context.Context) error
}

// Analyzer drives one analysis run end-to-end: fetch candidates, normalize,
// score, rank, then branch on the request mode. It holds no per-request
// state; every run builds and discards its own pipeline values.
type Analyzer struct {
	source RouteSource
	log    *logrus.Logger

	cache storage.AnalysisCache
	store storage.AnalysisStore

	maxRoutes int
	demoMode  bool
}

type Option func(*Analyzer)

// WithCache attaches a best-effort operational cache.
func WithCache(c storage.AnalysisCache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// WithStore attaches a best-effort analytics sink.
func WithStore(s storage.AnalysisStore) Option {
	return func(a *Analyzer) { a.store = s }
}

// WithMaxRoutes caps how many candidates are requested upstream.
func WithMaxRoutes(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxRoutes = n
		}
	}
}

// WithDemoMode marks responses as produced from canned data.
func WithDemoMode(demo bool) Option {
	return func(a *Analyzer) { a.demoMode = demo }
}

func New(source RouteSource, log *logrus.Logger, opts ...Option) *Analyzer {
	if log == nil {
		log = logrus.New()
	}
	a := &Analyzer{
		source:    source,
		log:       log,
		maxRoutes: 5,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Process runs the full pipeline for one request. It always returns a
// structured response; every failure is folded into success=false with a
// human-readable error.
func (a *Analyzer) Process(ctx context.Context, req SwapRequest) *SwapResponse {
	start := time.Now()
	resp := a.process(ctx, req)
	resp.DemoMode = a.demoMode

	metrics.ObserveAnalysis(string(req.Mode), resp.Success, time.Since(start))
	a.recordAnalysis(ctx, req, resp, time.Since(start))
	return resp
}

func (a *Analyzer) process(ctx context.Context, req SwapRequest) *SwapResponse {
	if err := validateRequest(req); err != nil {
		return failure(req, "Invalid swap request", err)
	}

	// Fetching
	raws, err := a.source.Routes(ctx, jupiter.QuoteParams{
		InputMint:        req.InputMint,
		OutputMint:       req.OutputMint,
		Amount:           req.Amount,
		SlippageBps:      req.SlippageBps,
		MaxRoutes:        a.maxRoutes,
		OnlyDirectRoutes: false,
		WrapUnwrapSOL:    req.WrapUnwrapSOL,
	})
	if err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{
			"input":  req.InputMint,
			"output": req.OutputMint,
		}).Warn("route fetch failed")
		return failure(req, "No routes found or API error",
			fmt.Errorf("%w: %v", ErrTransport, err))
	}
	if len(raws) == 0 {
		return failure(req, "No routes found or API error", ErrNoRoutes)
	}

	// Normalizing; candidates that fail the basic shape check are dropped
	kept := make([]jupiter.RawRoute, 0, len(raws))
	summaries := make([]RouteSummary, 0, len(raws))
	for _, raw := range raws {
		if !validCandidate(raw) {
			continue
		}
		kept = append(kept, raw)
		summaries = append(summaries, Normalize(raw))
	}
	if len(summaries) == 0 {
		return failure(req, "No valid routes found",
			fmt.Errorf("%w for this swap", ErrNoRoutes))
	}

	// Scoring + Ranking
	scored := ScoreAll(summaries, req.Criteria, req.SlippageBps)
	metrics.AddRoutesScored(len(scored))
	ranked := Rank(scored)
	best := ranked[0]
	// first index of the maximum matches ranked[0] because the sort is stable
	bestRaw := kept[argmax(scored)]

	a.log.WithFields(logrus.Fields{
		"routes":   len(ranked),
		"criteria": req.Criteria,
		"best":     best.RouteID,
		"score":    best.Score,
	}).Info("routes ranked")

	switch req.Mode {
	case ModeAutoSwap:
		return a.autoSwap(ctx, req, ranked, best, bestRaw)

	case ModeManual:
		return &SwapResponse{
			Success:          true,
			Message:          fmt.Sprintf("Found %d routes for manual selection.", len(ranked)),
			Mode:             string(req.Mode),
			TotalRoutesFound: len(ranked),
			BestRoute:        &best,
			AllRoutes:        ranked,
		}

	default: // ModeAnalyzeOnly
		return &SwapResponse{
			Success:          true,
			Message:          fmt.Sprintf("Found %d routes. Analysis complete.", len(ranked)),
			Mode:             string(req.Mode),
			TotalRoutesFound: len(ranked),
			BestRoute:        &best,
			AllRoutes:        ranked,
		}
	}
}

func (a *Analyzer) autoSwap(ctx context.Context, req SwapRequest, ranked []ScoredRoute, best ScoredRoute, bestRaw jupiter.RawRoute) *SwapResponse {
	if req.UserPublicKey == "" {
		resp := failure(req, "User public key required for auto-swap",
			fmt.Errorf("%w: missing signer public key", ErrValidation))
		resp.TotalRoutesFound = len(ranked)
		resp.BestRoute = &best
		resp.AllRoutes = ranked
		return resp
	}

	result, err := a.source.Execute(ctx, jupiter.SwapParams{
		Route:         &bestRaw,
		RouteID:       best.RouteID,
		UserPublicKey: req.UserPublicKey,
		WrapUnwrapSOL: req.WrapUnwrapSOL,
	})
	metrics.ObserveExecution(err == nil)
	if err != nil {
		a.log.WithError(err).WithField("route", best.RouteID).Warn("execution request failed")
		resp := failure(req, "Failed to create swap transaction",
			fmt.Errorf("%w: %v", ErrExecution, err))
		resp.TotalRoutesFound = len(ranked)
		resp.BestRoute = &best
		resp.AllRoutes = ranked
		return resp
	}

	outcome := &ExecutionOutcome{
		Success:   true,
		TxID:      result.TxID,
		RouteID:   best.RouteID,
		OutAmount: best.OutAmount,
		Status:    result.Status,
	}
	a.recordExecution(ctx, req, outcome)

	return &SwapResponse{
		Success:          true,
		Message:          fmt.Sprintf("Auto-swap executed using best route. Found %d routes.", len(ranked)),
		Mode:             string(req.Mode),
		TotalRoutesFound: len(ranked),
		BestRoute:        &best,
		AllRoutes:        ranked,
		SelectedRoute:    &best,
		ExecutionResult:  outcome,
	}
}

// Execute performs the manual-mode follow-up: a single execution call for a
// previously ranked route, referenced by ID. No re-fetch, no re-rank.
func (a *Analyzer) Execute(ctx context.Context, routeID string, req SwapRequest) *ExecutionOutcome {
	if routeID == "" {
		return &ExecutionOutcome{Success: false, Error: "route_id is required"}
	}
	if req.UserPublicKey == "" {
		return &ExecutionOutcome{Success: false, RouteID: routeID, Error: "user public key required for execution"}
	}

	result, err := a.source.Execute(ctx, jupiter.SwapParams{
		RouteID:       routeID,
		UserPublicKey: req.UserPublicKey,
		WrapUnwrapSOL: req.WrapUnwrapSOL,
	})
	metrics.ObserveExecution(err == nil)

	outcome := &ExecutionOutcome{RouteID: routeID}
	if err != nil {
		a.log.WithError(err).WithField("route", routeID).Warn("execution request failed")
		outcome.Error = fmt.Sprintf("%v: %v", ErrExecution, err)
		a.recordExecution(ctx, req, outcome)
		return outcome
	}

	outcome.Success = true
	outcome.TxID = result.TxID
	outcome.Status = result.Status
	a.recordExecution(ctx, req, outcome)
	return outcome
}

// Health probes the upstream quote API. Side channel for dashboards; not
// part of the scoring path.
func (a *Analyzer) Health(ctx context.Context) error {
	return a.source.Health(ctx)
}

// Summarize computes aggregate statistics over scored routes.
func Summarize(routes []ScoredRoute) Summary {
	if len(routes) == 0 {
		return Summary{}
	}

	var hops, impact, score float64
	best, worst := routes[0].Score, routes[0].Score
	seen := map[string]struct{}{}
	var platforms []string

	for _, r := range routes {
		hops += float64(r.Hops)
		impact += r.PriceImpact
		score += r.Score
		if r.Score > best {
			best = r.Score
		}
		if r.Score < worst {
			worst = r.Score
		}
		for _, p := range r.Platforms {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				platforms = append(platforms, p)
			}
		}
	}

	n := float64(len(routes))
	return Summary{
		TotalRoutes:    len(routes),
		AvgHops:        hops / n,
		AvgPriceImpact: impact / n,
		AvgScore:       score / n,
		BestScore:      best,
		WorstScore:     worst,
		PlatformsUsed:  platforms,
	}
}

func validateRequest(req SwapRequest) error {
	if req.InputMint == "" || req.OutputMint == "" {
		return fmt.Errorf("%w: input/output asset required", ErrValidation)
	}
	if req.InputMint == req.OutputMint {
		return fmt.Errorf("%w: input and output asset must differ", ErrValidation)
	}
	if req.Amount == 0 {
		return fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	if req.SlippageBps < 0 || req.SlippageBps > 10000 {
		return fmt.Errorf("%w: slippage_bps must be within [0, 10000]", ErrValidation)
	}
	return nil
}

func failure(req SwapRequest, msg string, err error) *SwapResponse {
	return &SwapResponse{
		Success: false,
		Message: msg,
		Mode:    string(req.Mode),
		Error:   err.Error(),
	}
}

// argmax returns the index of the first maximum score.
func argmax(routes []ScoredRoute) int {
	idx := 0
	for i := 1; i < len(routes); i++ {
		if routes[i].Score > routes[idx].Score {
			idx = i
		}
	}
	return idx
}

func (a *Analyzer) recordAnalysis(ctx context.Context, req SwapRequest, resp *SwapResponse, d time.Duration) {
	if a.cache == nil && a.store == nil {
		return
	}

	rec := &models.AnalysisRecord{
		Timestamp:   time.Now().UTC(),
		Pair:        fmt.Sprintf("%s-%s", req.InputMint, req.OutputMint),
		InputMint:   req.InputMint,
		OutputMint:  req.OutputMint,
		Amount:      req.Amount,
		Mode:        string(req.Mode),
		Criteria:    string(req.Criteria),
		RoutesFound: resp.TotalRoutesFound,
		Success:     resp.Success,
		DemoMode:    resp.DemoMode,
		DurationMS:  d.Milliseconds(),
	}
	if resp.BestRoute != nil {
		rec.BestRouteID = resp.BestRoute.RouteID
		rec.BestScore = resp.BestRoute.Score
		rec.BestOutAmount = resp.BestRoute.OutAmount
	}

	// best-effort; sink failures never affect the response
	if a.cache != nil {
		if err := a.cache.AddRecentAnalysis(ctx, rec); err != nil {
			a.log.WithError(err).Debug("recent-analysis cache write failed")
		}
	}
	if a.store != nil {
		if err := a.store.InsertAnalysis(ctx, rec); err != nil {
			a.log.WithError(err).Debug("analysis store write failed")
		}
	}
}

func (a *Analyzer) recordExecution(ctx context.Context, req SwapRequest, outcome *ExecutionOutcome) {
	if a.cache == nil && a.store == nil {
		return
	}

	rec := &models.ExecutionRecord{
		Timestamp:     time.Now().UTC(),
		TxID:          outcome.TxID,
		RouteID:       outcome.RouteID,
		Pair:          fmt.Sprintf("%s-%s", req.InputMint, req.OutputMint),
		UserPublicKey: req.UserPublicKey,
		OutAmount:     outcome.OutAmount,
		Success:       outcome.Success,
		Status:        outcome.Status,
		Error:         outcome.Error,
	}

	if a.cache != nil {
		if err := a.cache.PublishExecution(ctx, rec); err != nil {
			a.log.WithError(err).Debug("execution publish failed")
		}
	}
	if a.store != nil {
		if err := a.store.InsertExecution(ctx, rec); err != nil {
			a.log.WithError(err).Debug("execution store write failed")
		}
	}
}
