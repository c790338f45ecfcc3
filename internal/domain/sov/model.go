// internal/domain/sov/model.go

package sov

import (
	"time"
)

// PlatformYouTube is the only collection source currently wired in.
// The platform field is carried on every record so additional sources
// can be added without a data migration.
const PlatformYouTube = "youtube"

// Comment is a single top-level comment on a collected post.
type Comment struct {
	Text      string `json:"text"`
	LikeCount int    `json:"like_count"`
}

// Record is one fetched search hit, hydrated with statistics and a
// bounded sample of comments. Immutable once fetched.
type Record struct {
	Platform     string    `json:"platform"`
	Keyword      string    `json:"keyword"`
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Channel      string    `json:"channel"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	CommentCount int64     `json:"comments_count"`
	Comments     []Comment `json:"comments"`
}

// Brand is one catalogued brand with its recognized surface aliases.
// Aliases are matched case-insensitively and may be multi-word phrases.
type Brand struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// BrandCatalog is the fixed set of brands tracked by a deployment,
// loaded once at startup and never mutated.
type BrandCatalog struct {
	Brands []Brand `json:"brands"`
}

// Names returns the brand names in catalog order.
func (c BrandCatalog) Names() []string {
	names := make([]string, 0, len(c.Brands))
	for _, b := range c.Brands {
		names = append(names, b.Name)
	}
	return names
}

// Lexicon holds the positive and negative word lists used for the
// lightweight comment sentiment score.
type Lexicon struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// BrandMetrics holds the four share-of-voice ratios for one brand.
// Every ratio lies in [0, 1] and is exactly 0 when its denominator is 0.
type BrandMetrics struct {
	PostsWithBrand     int     `json:"posts_with_brand"`
	ContentShare       float64 `json:"sov_content"`
	EngagementShare    float64 `json:"sov_engagement"`
	CommentShare       float64 `json:"sov_comments"`
	PositiveVoiceShare float64 `json:"share_of_positive_voice"`
}

// MetricsResult is the output of one aggregation pass over a set of
// records. Produced fresh on every call, never mutated after creation.
type MetricsResult struct {
	Brands  []string                `json:"brands"`
	Metrics map[string]BrandMetrics `json:"metrics"`
}

// RunInfo describes one completed collection run.
type RunInfo struct {
	RunID             string         `json:"run_id"`
	Platform          string         `json:"platform"`
	CollectedAt       time.Time      `json:"collected_at"`
	TotalRecords      int            `json:"total_records"`
	RecordsPerKeyword map[string]int `json:"records_per_keyword"`
}

// RefreshSummary is returned by a full refresh. Warning carries a
// non-fatal insight-generation failure; the numeric documents are
// always written when Warning is set.
type RefreshSummary struct {
	RunID        string   `json:"run_id"`
	TotalRecords int      `json:"total_records"`
	Keywords     []string `json:"keywords"`
	Warning      string   `json:"warning,omitempty"`
}

// Filters lists the values the dashboard can filter on.
type Filters struct {
	Platforms  []string       `json:"platforms"`
	Keywords   []string       `json:"keywords"`
	Brands     []string       `json:"brands"`
	FocusBrand string         `json:"focus_brand"`
	Metrics    []MetricOption `json:"metrics"`
}

// MetricOption maps a metric key in BrandMetrics to a display label.
type MetricOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
