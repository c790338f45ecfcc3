// internal/domain/sov/service.go

package sov

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a persisted document does not exist yet.
var ErrNotFound = errors.New("not found")

// Service is the core share-of-voice capability consumed by the HTTP
// and CLI transports.
type Service interface {
	// Overall returns the aggregate metrics over all collected records,
	// recomputing from the raw records when the persisted document is
	// missing.
	Overall(ctx context.Context) (MetricsResult, error)

	// ByKeyword returns one independently computed MetricsResult per
	// distinct keyword present in the collected records.
	ByKeyword(ctx context.Context) (map[string]MetricsResult, error)

	// Records returns the raw collected records, optionally filtered to
	// a single keyword.
	Records(ctx context.Context, keyword string) ([]Record, error)

	// Insights returns the persisted narrative text, or ErrNotFound when
	// none has been generated.
	Insights(ctx context.Context) (string, error)

	// Refresh re-runs collection and aggregation end-to-end, overwrites
	// every persisted document and invalidates cached copies.
	Refresh(ctx context.Context) (RefreshSummary, error)

	// Filters returns the filter values driving the dashboard selectors.
	Filters(ctx context.Context) (Filters, error)
}

// InsightGenerator turns computed metrics into a block of prose. Any
// deterministic or AI-backed text service satisfies the contract; a
// failure must never prevent the numeric metrics from being computed,
// persisted or displayed.
type InsightGenerator interface {
	Generate(ctx context.Context, overall MetricsResult, byKeyword map[string]MetricsResult) (string, error)
}
