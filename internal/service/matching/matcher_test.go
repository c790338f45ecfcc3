package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovradar/internal/domain/sov"
)

func testCatalog() sov.BrandCatalog {
	return sov.BrandCatalog{Brands: []sov.Brand{
		{Name: "atomberg", Aliases: []string{"atomberg", "atom berg"}},
		{Name: "havells", Aliases: []string{"havells"}},
		{Name: "orient", Aliases: []string{"orient", "orient electric"}},
	}}
}

func testLexicon() sov.Lexicon {
	return sov.Lexicon{
		Positive: []string{"good", "great", "love"},
		Negative: []string{"bad", "noisy"},
	}
}

func TestDetectBrands_MultipleAliases(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	counts := m.DetectBrands("I love my Atomberg fan, atom berg is great")

	require.GreaterOrEqual(t, counts["atomberg"], 2, "both aliases should match")
	assert.Zero(t, counts["havells"])
	assert.Zero(t, counts["orient"])
}

func TestDetectBrands_WholeWordOnly(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	counts := m.DetectBrands("havellsx and xhavells are not mentions, Havells is")

	assert.Equal(t, 1, counts["havells"])
}

func TestDetectBrands_OverlappingAliasesCountIndependently(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	// "orient electric" contains the bare "orient" alias too, so the
	// brand counts it twice. No suppression within or across brands.
	counts := m.DetectBrands("orient electric makes ceiling fans")

	assert.Equal(t, 2, counts["orient"])
}

func TestDetectBrands_NoSuppressionAcrossBrands(t *testing.T) {
	catalog := sov.BrandCatalog{Brands: []sov.Brand{
		{Name: "smartfanco", Aliases: []string{"smart fan"}},
		{Name: "fanco", Aliases: []string{"fan"}},
	}}
	m := NewMatcher(catalog, testLexicon())

	counts := m.DetectBrands("the smart fan is here")

	assert.Equal(t, 1, counts["smartfanco"])
	assert.Equal(t, 1, counts["fanco"])
}

func TestDetectBrands_EveryBrandPresentInResult(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	counts := m.DetectBrands("no brands here at all")

	require.Len(t, counts, 3)
	for brand, n := range counts {
		assert.Zero(t, n, "brand %s", brand)
	}
}

func TestSentimentScore_NoLexiconWords(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	assert.Equal(t, 0.0, m.SentimentScore("this text mentions nothing scored"))
	assert.Equal(t, 0.0, m.SentimentScore(""))
}

func TestSentimentScore_MixedWords(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	// (2 - 1) / 3
	assert.InDelta(t, 0.333, m.SentimentScore("good good bad"), 0.001)
}

func TestSentimentScore_Bounds(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	assert.Equal(t, 1.0, m.SentimentScore("good great love"))
	assert.Equal(t, -1.0, m.SentimentScore("bad noisy bad"))
}

func TestSentimentScore_CaseInsensitive(t *testing.T) {
	m := NewMatcher(testCatalog(), testLexicon())

	assert.Equal(t, 1.0, m.SentimentScore("GOOD and Great"))
}
