package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/analyzer"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/config"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/jupiter"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/tokens"
)

func loadEnv() {
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))
}

func main() {
	loadEnv()

	mode := flag.String("mode", "analyze", "analyze | auto | manual | execute")
	inTok := flag.String("in", "SOL", "input asset (symbol or mint address)")
	outTok := flag.String("out", "USDC", "output asset (symbol or mint address)")
	amount := flag.Uint64("amount", 0, "amount in base units (e.g. lamports)")
	slippageBps := flag.Int("slippage-bps", 50, "slippage in bps (e.g. 50 = 0.5%)")
	criteria := flag.String("criteria", "efficiency", "efficiency | speed | cost")
	signer := flag.String("signer", "", "signer public key (auto and execute modes)")
	routeID := flag.String("route-id", "", "route to execute (execute mode)")
	demo := flag.Bool("demo", false, "use canned demo routes instead of the live API")
	flag.Parse()

	if *amount == 0 {
		fmt.Println("missing -amount (must be > 0)")
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg := config.Load()

	inMint, err := tokens.ParseAsset(*inTok)
	if err != nil {
		fmt.Println("invalid -in:", err)
		os.Exit(2)
	}
	outMint, err := tokens.ParseAsset(*outTok)
	if err != nil {
		fmt.Println("invalid -out:", err)
		os.Exit(2)
	}
	crit, err := analyzer.ParseCriteria(*criteria, cfg.LenientCriteria)
	if err != nil {
		fmt.Println("invalid -criteria (use efficiency|speed|cost)")
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel) // keep stdout for JSON output

	var source analyzer.RouteSource = jupiter.NewClient(cfg.JupiterBaseURL, cfg.JupiterAPIKey)
	if *demo || cfg.DemoMode {
		source = jupiter.NewDemoSource()
	}
	a := analyzer.New(source, logger,
		analyzer.WithMaxRoutes(cfg.MaxRoutes),
		analyzer.WithDemoMode(*demo || cfg.DemoMode),
	)

	req := analyzer.SwapRequest{
		InputMint:     inMint,
		OutputMint:    outMint,
		Amount:        *amount,
		SlippageBps:   *slippageBps,
		UserPublicKey: *signer,
		WrapUnwrapSOL: true,
		Criteria:      crit,
	}

	switch *mode {
	case "analyze":
		req.Mode = analyzer.ModeAnalyzeOnly
		printJSON(a.Process(ctx, req))
	case "auto":
		req.Mode = analyzer.ModeAutoSwap
		resp := a.Process(ctx, req)
		printJSON(resp)
		if !resp.Success {
			os.Exit(1)
		}
	case "manual":
		req.Mode = analyzer.ModeManual
		printJSON(a.Process(ctx, req))
	case "execute":
		if *routeID == "" {
			fmt.Println("missing -route-id")
			os.Exit(2)
		}
		req.Mode = analyzer.ModeManual
		outcome := a.Execute(ctx, *routeID, req)
		printJSON(outcome)
		if !outcome.Success {
			os.Exit(1)
		}
	default:
		fmt.Println("invalid -mode (use analyze|auto|manual|execute)")
		os.Exit(2)
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println("failed to encode output:", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
