// internal/service/metrics/aggregator.go

// Package metrics turns collected records into share-of-voice results
// and orchestrates the collect-aggregate-persist pipeline.
package metrics

import (
	"sovradar/internal/domain/sov"
)

// Engagement weights applied to a record's raw statistics.
const (
	likeWeight    = 10
	commentWeight = 20
)

// TextMatcher detects brand mentions and scores sentiment in free text.
type TextMatcher interface {
	DetectBrands(text string) map[string]int
	SentimentScore(text string) float64
}

// Aggregator reduces a flat list of records into per-brand share
// metrics. Stateless; every call produces a fresh result.
type Aggregator struct {
	catalog sov.BrandCatalog
	matcher TextMatcher
}

// NewAggregator creates an aggregator over the given catalog.
func NewAggregator(catalog sov.BrandCatalog, matcher TextMatcher) *Aggregator {
	return &Aggregator{
		catalog: catalog,
		matcher: matcher,
	}
}

// Compute reduces the records into one MetricsResult.
//
// A post or comment mentioning several brands contributes its full
// weight to every brand it mentions. That multi-counting is deliberate
// and observable in the output; it is not normalized into a split.
func (a *Aggregator) Compute(records []sov.Record) sov.MetricsResult {
	postMentions := make(map[string]int)
	totalPostsWithAnyBrand := 0

	engagementPerBrand := make(map[string]float64)
	engagementTotal := 0.0

	commentMentions := make(map[string]int)
	totalCommentMentions := 0

	positiveVoice := make(map[string]float64)
	totalPositiveVoice := 0.0

	for _, rec := range records {
		postCounts := a.matcher.DetectBrands(rec.Title + "\n" + rec.Description)

		anyBrand := false
		for _, n := range postCounts {
			if n > 0 {
				anyBrand = true
				break
			}
		}
		if anyBrand {
			totalPostsWithAnyBrand++
		}

		engagement := float64(rec.Views + likeWeight*rec.Likes + commentWeight*rec.CommentCount)

		for brand, n := range postCounts {
			if n > 0 {
				postMentions[brand]++
				engagementPerBrand[brand] += engagement
				engagementTotal += engagement
			}
		}

		for _, c := range rec.Comments {
			commentCounts := a.matcher.DetectBrands(c.Text)
			score := a.matcher.SentimentScore(c.Text)

			for brand, n := range commentCounts {
				if n > 0 {
					commentMentions[brand] += n
					totalCommentMentions += n
					if score > 0 {
						positiveVoice[brand] += score
						totalPositiveVoice += score
					}
				}
			}
		}
	}

	brands := a.catalog.Names()
	result := sov.MetricsResult{
		Brands:  brands,
		Metrics: make(map[string]sov.BrandMetrics, len(brands)),
	}

	for _, brand := range brands {
		result.Metrics[brand] = sov.BrandMetrics{
			PostsWithBrand:     postMentions[brand],
			ContentShare:       share(float64(postMentions[brand]), float64(totalPostsWithAnyBrand)),
			EngagementShare:    share(engagementPerBrand[brand], engagementTotal),
			CommentShare:       share(float64(commentMentions[brand]), float64(totalCommentMentions)),
			PositiveVoiceShare: share(positiveVoice[brand], totalPositiveVoice),
		}
	}

	return result
}

// ComputeOverallAndByKeyword runs the reduction over all records, then
// independently re-runs it over each keyword's subset.
func (a *Aggregator) ComputeOverallAndByKeyword(records []sov.Record) (sov.MetricsResult, map[string]sov.MetricsResult) {
	overall := a.Compute(records)

	byKeyword := make(map[string]sov.MetricsResult)
	for _, kw := range distinctKeywords(records) {
		byKeyword[kw] = a.Compute(FilterByKeyword(records, kw))
	}

	return overall, byKeyword
}

// FilterByKeyword returns the subset of records collected for keyword.
func FilterByKeyword(records []sov.Record, keyword string) []sov.Record {
	out := make([]sov.Record, 0, len(records))
	for _, rec := range records {
		if rec.Keyword == keyword {
			out = append(out, rec)
		}
	}
	return out
}

// share is 0.0 on a zero denominator, never an error or NaN.
func share(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	return numerator / denominator
}

func distinctKeywords(records []sov.Record) []string {
	seen := make(map[string]bool)
	keywords := make([]string, 0)
	for _, rec := range records {
		if !seen[rec.Keyword] {
			seen[rec.Keyword] = true
			keywords = append(keywords, rec.Keyword)
		}
	}
	return keywords
}
