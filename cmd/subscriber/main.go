package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/cache"
	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/config"
)

// Tails the live execution feed published by the API. Useful for watching
// auto-swaps land during demos and for feeding simple dashboards.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	_ = godotenv.Load(filepath.Join(projectRoot, ".env"))

	cfg := config.Load()
	if cfg.RedisAddr == "" {
		logger.Fatal("REDIS_ADDR is required for the execution subscriber")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down subscriber")
		cancel()
	}()

	rclient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rclient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("failed to connect to Redis")
	}

	c := cache.NewRedisCacheFromClient(rclient, logger)
	events, err := c.SubscribeExecutions(ctx)
	if err != nil {
		logger.WithError(err).Fatal("failed to subscribe to execution feed")
	}

	logger.Info("execution subscriber running")
	for rec := range events {
		entry := logger.WithFields(logrus.Fields{
			"pair":    rec.Pair,
			"route":   rec.RouteID,
			"txid":    rec.TxID,
			"out":     rec.OutAmount,
			"status":  rec.Status,
			"success": rec.Success,
		})
		if !rec.Success {
			entry.WithField("error", rec.Error).Warn("execution failed")
			continue
		}
		entry.Info("execution landed")
	}
}
