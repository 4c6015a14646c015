package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/analyzer"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/cache"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/config"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/flags"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/jupiter"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/server"
)

// env bootstrap function
func loadEnv(logger *logrus.Logger) {
	// Resolve the project root (where go.mod is) relative to this file
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

// main initializes all dependencies and starts the HTTP server with graceful
// shutdown. Redis and ClickHouse are optional: missing addresses disable the
// cache, toggles, and analytics sink without affecting route analysis.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	loadEnv(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Redis backs the recent-analyses cache and runtime toggles
	var (
		analysisCache *cache.RedisCache
		toggleStore   *flags.Store
	)
	if cfg.RedisAddr != "" {
		rclient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   0,
		})
		if err := rclient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Fatal("failed to connect to Redis")
		}

		analysisCache = cache.NewRedisCacheFromClient(rclient, logger)

		store, err := flags.NewStore(rclient)
		if err != nil {
			logger.WithError(err).Fatal("failed to create toggle store")
		}
		toggleStore = store
	} else {
		logger.Warn("REDIS_ADDR not set, recent-analyses cache and runtime toggles disabled")
	}

	// ClickHouse receives one row per analysis and execution for reporting
	var analyticsStore *cache.ClickHouseStore
	if cfg.ClickHouseAddr != "" {
		store, err := cache.NewClickHouseStore(ctx, cache.ClickHouseConfig{
			Addr:     cfg.ClickHouseAddr,
			Database: cfg.ClickHouseDatabase,
			Username: cfg.ClickHouseUsername,
			Password: cfg.ClickHousePassword,
		})
		if err != nil {
			logger.WithError(err).Warn("failed to connect to ClickHouse, analytics sink disabled")
		} else {
			analyticsStore = store
			defer func() {
				_ = analyticsStore.Close()
			}()
		}
	}

	liveOpts := []analyzer.Option{analyzer.WithMaxRoutes(cfg.MaxRoutes)}
	demoOpts := []analyzer.Option{analyzer.WithMaxRoutes(cfg.MaxRoutes), analyzer.WithDemoMode(true)}
	if analysisCache != nil {
		liveOpts = append(liveOpts, analyzer.WithCache(analysisCache))
		demoOpts = append(demoOpts, analyzer.WithCache(analysisCache))
	}
	if analyticsStore != nil {
		liveOpts = append(liveOpts, analyzer.WithStore(analyticsStore))
		demoOpts = append(demoOpts, analyzer.WithStore(analyticsStore))
	}

	live := analyzer.New(jupiter.NewClient(cfg.JupiterBaseURL, cfg.JupiterAPIKey), logger, liveOpts...)
	demo := analyzer.New(jupiter.NewDemoSource(), logger, demoOpts...)

	h := &server.Handlers{
		Live:            live,
		Demo:            demo,
		Toggles:         toggleStore,
		Logger:          logger,
		DevMode:         cfg.DevMode,
		LenientCriteria: cfg.LenientCriteria,
		ForceDemoMode:   cfg.DemoMode,
		DefaultSlippage: cfg.DefaultSlippageBps,
		RequestTimeout:  cfg.RequestTimeout,
	}
	if analysisCache != nil {
		// keep the interface field nil when Redis is disabled
		h.Cache = analysisCache
	}

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: h,
		Config: server.ServerConfig{
			Addr:    cfg.APIAddr,
			DevMode: cfg.DevMode,
			APIKey:  cfg.APIKey,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create http server")
	}

	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
		_ = srv.Shutdown(context.Background())
	}()

	logger.WithField("addr", cfg.APIAddr).Info("api server starting")
	if err := srv.Start(); err != nil {
		// "http: Server closed" is expected during graceful shutdown
		if err.Error() == "http: Server closed" {
			return
		}
		logger.WithError(err).Fatal("api server failed")
	}

	if err := srv.WaitClosed(context.Background()); err != nil {
		fmt.Println(err)
	}
}
