package cache

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/models"
)

// ClickHouseConfig holds connection settings for the analytics sink.
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
}

// ClickHouseStore writes one row per analysis run and per execution attempt.
type ClickHouseStore struct {
	conn driver.Conn
}

func NewClickHouseStore(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseStore{conn: conn}, nil
}

func (s *ClickHouseStore) InsertAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	query := `
		INSERT INTO route_analyses (
			timestamp, pair, input_mint, output_mint, amount,
			mode, criteria, routes_found, success,
			best_route_id, best_score, best_out_amount,
			demo_mode, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		rec.Timestamp,
		rec.Pair,
		rec.InputMint,
		rec.OutputMint,
		rec.Amount,
		rec.Mode,
		rec.Criteria,
		rec.RoutesFound,
		rec.Success,
		rec.BestRouteID,
		rec.BestScore,
		rec.BestOutAmount,
		rec.DemoMode,
		rec.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

func (s *ClickHouseStore) InsertExecution(ctx context.Context, rec *models.ExecutionRecord) error {
	query := `
		INSERT INTO route_executions (
			timestamp, txid, route_id, pair, user_public_key,
			amount_out, success, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		rec.Timestamp,
		rec.TxID,
		rec.RouteID,
		rec.Pair,
		rec.UserPublicKey,
		rec.OutAmount,
		rec.Success,
		rec.Status,
		rec.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert execution: %w", err)
	}
	return nil
}

func (s *ClickHouseStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

func (s *ClickHouseStore) Close() error {
	return s.conn.Close()
}
