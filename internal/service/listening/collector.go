// internal/service/listening/collector.go

// Package listening collects raw posts from the configured platform,
// keyword by keyword.
package listening

import (
	"context"
	"fmt"
	"log"

	"sovradar/internal/domain/sov"
)

// VideoSource is the upstream search-and-statistics service. The only
// implementation today talks to the YouTube Data API.
type VideoSource interface {
	// SearchVideos returns search hits for the keyword, hydrated with
	// statistics but without comments.
	SearchVideos(ctx context.Context, keyword string, maxResults int) ([]sov.Record, error)

	// FetchComments returns a bounded sample of top-level comments for
	// a video.
	FetchComments(ctx context.Context, videoID string, maxComments int) ([]sov.Comment, error)
}

// CollectorConfig bounds a collection run.
type CollectorConfig struct {
	Keywords             []string
	MaxResultsPerKeyword int
	MaxCommentsPerVideo  int
}

// Collector walks the configured keywords strictly sequentially and
// produces a flat list of fully hydrated records.
type Collector struct {
	source VideoSource
	config CollectorConfig
}

// NewCollector creates a collector over the given source.
func NewCollector(source VideoSource, config CollectorConfig) *Collector {
	return &Collector{
		source: source,
		config: config,
	}
}

// CollectAll fetches records for every configured keyword. A failed
// search aborts the run; a failed comment fetch (comments disabled,
// restricted videos) is logged and skipped, leaving the record with an
// empty comment list.
func (c *Collector) CollectAll(ctx context.Context) ([]sov.Record, error) {
	all := make([]sov.Record, 0)

	for _, keyword := range c.config.Keywords {
		log.Printf("Collecting for keyword %q", keyword)

		records, err := c.source.SearchVideos(ctx, keyword, c.config.MaxResultsPerKeyword)
		if err != nil {
			return nil, fmt.Errorf("search for keyword %q: %w", keyword, err)
		}

		for i := range records {
			comments, err := c.source.FetchComments(ctx, records[i].VideoID, c.config.MaxCommentsPerVideo)
			if err != nil {
				log.Printf("Skipping comments for video %s: %v", records[i].VideoID, err)
				comments = []sov.Comment{}
			}
			records[i].Comments = comments
		}

		log.Printf("Collected %d videos for keyword %q", len(records), keyword)
		all = append(all, records...)
	}

	return all, nil
}
