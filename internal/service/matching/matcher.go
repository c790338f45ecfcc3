// internal/service/matching/matcher.go

// Package matching detects brand mentions and computes a lightweight
// lexicon-based sentiment score over free text.
package matching

import (
	"regexp"
	"strings"

	"sovradar/internal/domain/sov"
)

// Matcher matches catalogued brand aliases and lexicon words against
// free text. Safe for concurrent use once constructed.
type Matcher struct {
	catalog  sov.BrandCatalog
	patterns map[string][]*regexp.Regexp
	positive []string
	negative []string
}

// NewMatcher compiles whole-word patterns for every alias in the
// catalog. Aliases are matched case-insensitively and independently per
// brand: an alias being a substring of another brand's alias causes no
// cross-brand suppression.
func NewMatcher(catalog sov.BrandCatalog, lexicon sov.Lexicon) *Matcher {
	patterns := make(map[string][]*regexp.Regexp, len(catalog.Brands))
	for _, b := range catalog.Brands {
		pats := make([]*regexp.Regexp, 0, len(b.Aliases))
		for _, alias := range b.Aliases {
			pats = append(pats, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(alias))+`\b`))
		}
		patterns[b.Name] = pats
	}

	return &Matcher{
		catalog:  catalog,
		patterns: patterns,
		positive: lowerAll(lexicon.Positive),
		negative: lowerAll(lexicon.Negative),
	}
}

// DetectBrands counts alias matches per brand in the given text. Every
// catalogued brand appears in the result, with 0 when unmentioned.
func (m *Matcher) DetectBrands(text string) map[string]int {
	lower := strings.ToLower(text)
	counts := make(map[string]int, len(m.catalog.Brands))
	for _, b := range m.catalog.Brands {
		n := 0
		for _, pat := range m.patterns[b.Name] {
			n += len(pat.FindAllStringIndex(lower, -1))
		}
		counts[b.Name] = n
	}
	return counts
}

// SentimentScore returns (pos - neg) / max(pos + neg, 1) in [-1, 1],
// counting lexicon entries as substring occurrences in the lowercased
// text. 0.0 when no lexicon entry appears.
func (m *Matcher) SentimentScore(text string) float64 {
	lower := strings.ToLower(text)

	pos := 0
	for _, w := range m.positive {
		pos += strings.Count(lower, w)
	}
	neg := 0
	for _, w := range m.negative {
		neg += strings.Count(lower, w)
	}

	if pos == 0 && neg == 0 {
		return 0.0
	}
	total := pos + neg
	if total < 1 {
		total = 1
	}
	return float64(pos-neg) / float64(total)
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(w))
	}
	return out
}
