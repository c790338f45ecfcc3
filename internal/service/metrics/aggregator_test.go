package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovradar/internal/domain/sov"
	"sovradar/internal/service/matching"
)

func twoBrandCatalog() sov.BrandCatalog {
	return sov.BrandCatalog{Brands: []sov.Brand{
		{Name: "a", Aliases: []string{"a"}},
		{Name: "b", Aliases: []string{"b"}},
	}}
}

func newTestAggregator(catalog sov.BrandCatalog) *Aggregator {
	lexicon := sov.Lexicon{
		Positive: []string{"good", "great"},
		Negative: []string{"bad"},
	}
	return NewAggregator(catalog, matching.NewMatcher(catalog, lexicon))
}

func record(keyword, title string, views, likes, comments int64, texts ...string) sov.Record {
	rec := sov.Record{
		Platform:     sov.PlatformYouTube,
		Keyword:      keyword,
		VideoID:      "vid-" + title,
		Title:        title,
		Views:        views,
		Likes:        likes,
		CommentCount: comments,
		Comments:     []sov.Comment{},
	}
	for _, text := range texts {
		rec.Comments = append(rec.Comments, sov.Comment{Text: text})
	}
	return rec
}

func TestCompute_ContentAndEngagementShares(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	records := []sov.Record{
		record("smart fan", "a launches", 100, 0, 0),
		record("smart fan", "b launches", 300, 0, 0),
	}

	result := agg.Compute(records)

	require.Equal(t, []string{"a", "b"}, result.Brands)
	assert.Equal(t, 1, result.Metrics["a"].PostsWithBrand)
	assert.InDelta(t, 0.5, result.Metrics["a"].ContentShare, 1e-9)
	assert.InDelta(t, 0.5, result.Metrics["b"].ContentShare, 1e-9)
	assert.InDelta(t, 0.25, result.Metrics["a"].EngagementShare, 1e-9)
	assert.InDelta(t, 0.75, result.Metrics["b"].EngagementShare, 1e-9)
}

func TestCompute_EngagementWeights(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	// a: 100 views. b: 2 likes + 4 comment count = 100 weighted.
	records := []sov.Record{
		record("k", "a fan", 100, 0, 0),
		record("k", "b fan", 0, 2, 4),
	}

	result := agg.Compute(records)

	assert.InDelta(t, 0.5, result.Metrics["a"].EngagementShare, 1e-9)
	assert.InDelta(t, 0.5, result.Metrics["b"].EngagementShare, 1e-9)
}

func TestCompute_SharesSumToOne(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	records := []sov.Record{
		record("k1", "a review", 500, 10, 3, "a is good", "nothing here"),
		record("k1", "b review", 200, 5, 8, "b is great", "b b b"),
		record("k2", "a again", 50, 1, 1, "good a", "bad a"),
		record("k2", "no brands", 9999, 99, 99, "good video"),
	}

	result := agg.Compute(records)

	sums := map[string]float64{}
	for _, brand := range result.Brands {
		m := result.Metrics[brand]
		for name, v := range map[string]float64{
			"content":  m.ContentShare,
			"engage":   m.EngagementShare,
			"comments": m.CommentShare,
			"positive": m.PositiveVoiceShare,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "%s for %s", name, brand)
			assert.LessOrEqual(t, v, 1.0, "%s for %s", name, brand)
			sums[name] += v
		}
	}

	for name, sum := range sums {
		assert.InDelta(t, 1.0, sum, 1e-9, "sum of %s shares", name)
	}
}

func TestCompute_MultiBrandPostCountsFullyForEach(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	records := []sov.Record{
		record("k", "a vs b comparison", 1000, 0, 0),
	}

	result := agg.Compute(records)

	// One post mentions both brands: each gets the full post and the
	// full engagement weight, and the engagement denominator is
	// multi-counted so the engagement shares still sum to 1.
	assert.InDelta(t, 1.0, result.Metrics["a"].ContentShare, 1e-9)
	assert.InDelta(t, 1.0, result.Metrics["b"].ContentShare, 1e-9)
	assert.InDelta(t, 0.5, result.Metrics["a"].EngagementShare, 1e-9)
	assert.InDelta(t, 0.5, result.Metrics["b"].EngagementShare, 1e-9)
}

func TestCompute_ContentDenominatorCountsPostsOnce(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	// Two posts with any brand: the dual-mention post is one post, not
	// two, in the content denominator.
	records := []sov.Record{
		record("k", "a vs b comparison", 10, 0, 0),
		record("k", "a alone", 10, 0, 0),
	}

	result := agg.Compute(records)

	assert.Equal(t, 2, result.Metrics["a"].PostsWithBrand)
	assert.Equal(t, 1, result.Metrics["b"].PostsWithBrand)
	assert.InDelta(t, 1.0, result.Metrics["a"].ContentShare, 1e-9)
	assert.InDelta(t, 0.5, result.Metrics["b"].ContentShare, 1e-9)
}

func TestCompute_CommentShareCountsOccurrences(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	records := []sov.Record{
		record("k", "plain title", 0, 0, 0, "a a a", "b"),
	}

	result := agg.Compute(records)

	assert.InDelta(t, 0.75, result.Metrics["a"].CommentShare, 1e-9)
	assert.InDelta(t, 0.25, result.Metrics["b"].CommentShare, 1e-9)
}

func TestCompute_PositiveVoiceIgnoresNonPositiveComments(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	records := []sov.Record{
		record("k", "plain title", 0, 0, 0,
			"a is good",       // +1.0 toward a
			"a is bad",        // negative, excluded
			"b is good good"), // +1.0 toward b
	}

	result := agg.Compute(records)

	assert.InDelta(t, 0.5, result.Metrics["a"].PositiveVoiceShare, 1e-9)
	assert.InDelta(t, 0.5, result.Metrics["b"].PositiveVoiceShare, 1e-9)
}

func TestCompute_ZeroDenominators(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	t.Run("no records", func(t *testing.T) {
		result := agg.Compute(nil)
		for _, brand := range result.Brands {
			m := result.Metrics[brand]
			assert.Zero(t, m.PostsWithBrand)
			assert.Equal(t, 0.0, m.ContentShare)
			assert.Equal(t, 0.0, m.EngagementShare)
			assert.Equal(t, 0.0, m.CommentShare)
			assert.Equal(t, 0.0, m.PositiveVoiceShare)
		}
	})

	t.Run("records without comments", func(t *testing.T) {
		result := agg.Compute([]sov.Record{
			record("k", "a fan review", 100, 2, 3),
		})
		assert.Equal(t, 0.0, result.Metrics["a"].CommentShare)
		assert.Equal(t, 0.0, result.Metrics["a"].PositiveVoiceShare)
		assert.InDelta(t, 1.0, result.Metrics["a"].ContentShare, 1e-9)
	})

	t.Run("comments mention no brand", func(t *testing.T) {
		result := agg.Compute([]sov.Record{
			record("k", "a fan review", 100, 2, 3, "good video", "bad audio"),
		})
		for _, brand := range result.Brands {
			assert.Equal(t, 0.0, result.Metrics[brand].CommentShare)
			assert.Equal(t, 0.0, result.Metrics[brand].PositiveVoiceShare)
		}
	})
}

func TestComputeOverallAndByKeyword(t *testing.T) {
	agg := newTestAggregator(twoBrandCatalog())

	records := []sov.Record{
		record("smart fan", "a smart", 100, 0, 0),
		record("smart fan", "b smart", 100, 0, 0),
		record("bldc fan", "a bldc", 100, 0, 0),
	}

	overall, byKeyword := agg.ComputeOverallAndByKeyword(records)

	require.Len(t, byKeyword, 2)
	assert.Equal(t, 2, overall.Metrics["a"].PostsWithBrand)

	// Each keyword subset is reduced independently from scratch.
	assert.InDelta(t, 0.5, byKeyword["smart fan"].Metrics["a"].ContentShare, 1e-9)
	assert.InDelta(t, 1.0, byKeyword["bldc fan"].Metrics["a"].ContentShare, 1e-9)
	assert.Equal(t, 0, byKeyword["bldc fan"].Metrics["b"].PostsWithBrand)
}

func TestFilterByKeyword(t *testing.T) {
	records := []sov.Record{
		record("smart fan", "one", 0, 0, 0),
		record("bldc fan", "two", 0, 0, 0),
		record("smart fan", "three", 0, 0, 0),
	}

	filtered := FilterByKeyword(records, "smart fan")

	require.Len(t, filtered, 2)
	assert.Equal(t, "one", filtered[0].Title)
	assert.Equal(t, "three", filtered[1].Title)
	assert.Empty(t, FilterByKeyword(records, "unknown"))
}
