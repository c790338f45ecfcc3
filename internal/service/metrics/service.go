// internal/service/metrics/service.go

package metrics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"sovradar/internal/domain/sov"
	"sovradar/internal/service/listening"
)

// Store persists the flat JSON documents produced by a run. Documents
// are overwritten wholesale on refresh; loads return sov.ErrNotFound
// for documents that have never been written.
type Store interface {
	SaveRecords(ctx context.Context, records []sov.Record) error
	LoadRecords(ctx context.Context) ([]sov.Record, error)
	SaveOverall(ctx context.Context, result sov.MetricsResult) error
	LoadOverall(ctx context.Context) (sov.MetricsResult, error)
	SaveByKeyword(ctx context.Context, results map[string]sov.MetricsResult) error
	LoadByKeyword(ctx context.Context) (map[string]sov.MetricsResult, error)
	SaveInsights(ctx context.Context, text string) error
	LoadInsights(ctx context.Context) (string, error)
	SaveRunInfo(ctx context.Context, info sov.RunInfo) error
	LoadRunInfo(ctx context.Context) (sov.RunInfo, error)
}

// ServiceConfig carries the deployment-wide analysis configuration.
type ServiceConfig struct {
	Keywords   []string
	Catalog    sov.BrandCatalog
	FocusBrand string
}

// Service wires the collector, aggregator and store into the
// share-of-voice capability consumed by the transports. Collection runs
// are serialized; the design assumes at most one run at a time against
// a given output path.
type Service struct {
	collector  *listening.Collector
	aggregator *Aggregator
	store      Store
	insights   sov.InsightGenerator // nil disables narrative generation
	config     ServiceConfig

	mu              sync.Mutex
	cachedOverall   *sov.MetricsResult
	cachedByKeyword map[string]sov.MetricsResult
}

// NewService creates the service. insights may be nil, in which case
// refresh skips narrative generation entirely.
func NewService(
	collector *listening.Collector,
	aggregator *Aggregator,
	store Store,
	insights sov.InsightGenerator,
	config ServiceConfig,
) *Service {
	return &Service{
		collector:  collector,
		aggregator: aggregator,
		store:      store,
		insights:   insights,
		config:     config,
	}
}

// Overall returns the aggregate metrics. A missing persisted document
// triggers an on-demand recompute from the raw records; with no records
// collected yet the result is all-zero metrics for every brand.
func (s *Service) Overall(ctx context.Context) (sov.MetricsResult, error) {
	s.mu.Lock()
	if s.cachedOverall != nil {
		result := *s.cachedOverall
		s.mu.Unlock()
		return result, nil
	}
	s.mu.Unlock()

	result, err := s.store.LoadOverall(ctx)
	if errors.Is(err, sov.ErrNotFound) {
		result, _, err = s.recompute(ctx)
	}
	if err != nil {
		return sov.MetricsResult{}, err
	}

	s.mu.Lock()
	s.cachedOverall = &result
	s.mu.Unlock()
	return result, nil
}

// ByKeyword returns one MetricsResult per distinct keyword, recomputing
// from the raw records when the persisted document is missing.
func (s *Service) ByKeyword(ctx context.Context) (map[string]sov.MetricsResult, error) {
	s.mu.Lock()
	if s.cachedByKeyword != nil {
		results := s.cachedByKeyword
		s.mu.Unlock()
		return results, nil
	}
	s.mu.Unlock()

	results, err := s.store.LoadByKeyword(ctx)
	if errors.Is(err, sov.ErrNotFound) {
		_, results, err = s.recompute(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cachedByKeyword = results
	s.mu.Unlock()
	return results, nil
}

// Records returns the raw collected records, filtered to one keyword
// when keyword is non-empty. No records collected yet is not an error.
func (s *Service) Records(ctx context.Context, keyword string) ([]sov.Record, error) {
	records, err := s.store.LoadRecords(ctx)
	if errors.Is(err, sov.ErrNotFound) {
		return []sov.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	if keyword != "" {
		records = FilterByKeyword(records, keyword)
	}
	return records, nil
}

// Insights returns the persisted narrative text.
func (s *Service) Insights(ctx context.Context) (string, error) {
	return s.store.LoadInsights(ctx)
}

// Refresh re-runs collection, aggregation and narrative generation
// end-to-end, overwriting every persisted document. An insight failure
// is reported as a warning on the summary, never as an error.
func (s *Service) Refresh(ctx context.Context) (sov.RefreshSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.collector.CollectAll(ctx)
	if err != nil {
		return sov.RefreshSummary{}, fmt.Errorf("collect: %w", err)
	}

	overall, byKeyword := s.aggregator.ComputeOverallAndByKeyword(records)

	if err := s.store.SaveRecords(ctx, records); err != nil {
		return sov.RefreshSummary{}, fmt.Errorf("save records: %w", err)
	}
	if err := s.store.SaveOverall(ctx, overall); err != nil {
		return sov.RefreshSummary{}, fmt.Errorf("save overall metrics: %w", err)
	}
	if err := s.store.SaveByKeyword(ctx, byKeyword); err != nil {
		return sov.RefreshSummary{}, fmt.Errorf("save per-keyword metrics: %w", err)
	}

	info := sov.RunInfo{
		RunID:             uuid.NewString(),
		Platform:          sov.PlatformYouTube,
		CollectedAt:       time.Now().UTC(),
		TotalRecords:      len(records),
		RecordsPerKeyword: make(map[string]int),
	}
	for _, rec := range records {
		info.RecordsPerKeyword[rec.Keyword]++
	}
	if err := s.store.SaveRunInfo(ctx, info); err != nil {
		return sov.RefreshSummary{}, fmt.Errorf("save run info: %w", err)
	}

	summary := sov.RefreshSummary{
		RunID:        info.RunID,
		TotalRecords: len(records),
		Keywords:     keywordsOf(byKeyword),
	}

	if s.insights != nil {
		text, err := s.insights.Generate(ctx, overall, byKeyword)
		if err != nil {
			// Narrative generation is optional enrichment; the numeric
			// documents above are already persisted.
			log.Printf("Insight generation failed: %v", err)
			summary.Warning = fmt.Sprintf("insight generation failed: %v", err)
		} else if err := s.store.SaveInsights(ctx, text); err != nil {
			log.Printf("Saving insights failed: %v", err)
			summary.Warning = fmt.Sprintf("saving insights failed: %v", err)
		}
	}

	s.cachedOverall = &overall
	s.cachedByKeyword = byKeyword

	return summary, nil
}

// Filters returns the values driving the dashboard selectors.
func (s *Service) Filters(ctx context.Context) (sov.Filters, error) {
	return sov.Filters{
		Platforms:  []string{sov.PlatformYouTube},
		Keywords:   s.config.Keywords,
		Brands:     s.config.Catalog.Names(),
		FocusBrand: s.config.FocusBrand,
		Metrics: []sov.MetricOption{
			{Key: "sov_content", Label: "Content SoV (share of videos mentioning brand)"},
			{Key: "sov_engagement", Label: "Engagement SoV (views + 10×likes + 20×comments)"},
			{Key: "sov_comments", Label: "Comment SoV (share of brand mentions in comments)"},
			{Key: "share_of_positive_voice", Label: "Share of Positive Voice (SoPV)"},
		},
	}, nil
}

// recompute rebuilds both metrics documents from the raw records and
// persists them. With no records collected yet it returns empty (all
// zero) results without touching the store.
func (s *Service) recompute(ctx context.Context) (sov.MetricsResult, map[string]sov.MetricsResult, error) {
	records, err := s.store.LoadRecords(ctx)
	if errors.Is(err, sov.ErrNotFound) {
		overall, byKeyword := s.aggregator.ComputeOverallAndByKeyword(nil)
		return overall, byKeyword, nil
	}
	if err != nil {
		return sov.MetricsResult{}, nil, err
	}

	overall, byKeyword := s.aggregator.ComputeOverallAndByKeyword(records)
	if err := s.store.SaveOverall(ctx, overall); err != nil {
		return sov.MetricsResult{}, nil, fmt.Errorf("save recomputed overall metrics: %w", err)
	}
	if err := s.store.SaveByKeyword(ctx, byKeyword); err != nil {
		return sov.MetricsResult{}, nil, fmt.Errorf("save recomputed per-keyword metrics: %w", err)
	}
	return overall, byKeyword, nil
}

func keywordsOf(byKeyword map[string]sov.MetricsResult) []string {
	keywords := make([]string, 0, len(byKeyword))
	for kw := range byKeyword {
		keywords = append(keywords, kw)
	}
	return keywords
}
