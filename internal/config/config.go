package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// HTTP API
	APIAddr string
	APIKey  string
	DevMode bool

	// Jupiter quote/swap API
	JupiterBaseURL string
	JupiterAPIKey  string
	RequestTimeout time.Duration

	// Analysis defaults
	MaxRoutes          int
	DefaultSlippageBps int
	LenientCriteria    bool
	DemoMode           bool

	// Redis (optional; empty disables the operational cache and toggles)
	RedisAddr string

	// ClickHouse (optional; empty disables the analytics sink)
	ClickHouseAddr     string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string
}

func Load() *Config {
	return &Config{
		APIAddr: getEnv("API_ADDR", ":8090"),
		APIKey:  getEnv("API_KEY", ""),
		DevMode: getBoolEnv("DEV_MODE", false),

		JupiterBaseURL: getEnv("JUPITER_BASE_URL", "https://quote-api.jup.ag/v6"),
		JupiterAPIKey:  getEnv("JUPITER_API_KEY", ""),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),

		MaxRoutes:          getIntEnv("MAX_ROUTES", 5),
		DefaultSlippageBps: getIntEnv("DEFAULT_SLIPPAGE_BPS", 50),
		LenientCriteria:    getBoolEnv("LENIENT_CRITERIA", false),
		DemoMode:           getBoolEnv("DEMO_MODE", false),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		ClickHouseAddr:     getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "routes"),
		ClickHouseUsername: getEnv("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),
	}
}

func (c *Config) Validate() error {
	if c.APIAddr == "" {
		return fmt.Errorf("API_ADDR must not be empty")
	}
	if c.MaxRoutes <= 0 {
		return fmt.Errorf("MAX_ROUTES must be > 0")
	}
	if c.DefaultSlippageBps < 0 || c.DefaultSlippageBps > 10000 {
		return fmt.Errorf("DEFAULT_SLIPPAGE_BPS must be within [0, 10000]")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be > 0")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
