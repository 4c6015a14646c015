package storage

import (
	"context"
	"io"

	"github.com/vignesh-075/Route-Efficiency-Analyzer/internal/models"
)

// AnalysisCache is the fast operational cache (Redis-backed in production).
// All writes are best-effort; the analysis pipeline never depends on them.
type AnalysisCache interface {
	// AddRecentAnalysis pushes an analysis onto the recent-analyses list.
	AddRecentAnalysis(ctx context.Context, rec *models.AnalysisRecord) error

	// GetRecentAnalyses returns the most recent analyses, newest first.
	GetRecentAnalyses(ctx context.Context, limit int64) ([]*models.AnalysisRecord, error)

	// PublishExecution publishes an execution event to subscribers.
	PublishExecution(ctx context.Context, rec *models.ExecutionRecord) error

	// Ping checks if the cache is reachable.
	Ping(ctx context.Context) error

	io.Closer
}

// AnalysisStore is the durable analytics sink (ClickHouse-backed in
// production).
type AnalysisStore interface {
	InsertAnalysis(ctx context.Context, rec *models.AnalysisRecord) error
	InsertExecution(ctx context.Context, rec *models.ExecutionRecord) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	io.Closer
}
