// internal/config/defaults.go

package config

import "sovradar/internal/domain/sov"

// Keywords chosen to cover multiple intents around smart fans.
var defaultKeywords = []string{
	"smart fan",
	"bldc fan",
	"smart ceiling fan",
	"energy saving fan",
}

// defaultCatalog is the built-in brand dictionary; extendable via the
// SOV_BRANDS environment variable.
func defaultCatalog() sov.BrandCatalog {
	return sov.BrandCatalog{Brands: []sov.Brand{
		{Name: "atomberg", Aliases: []string{"atomberg", "atom berg"}},
		{Name: "havells", Aliases: []string{"havells"}},
		{Name: "crompton", Aliases: []string{"crompton"}},
		{Name: "orient", Aliases: []string{"orient", "orient electric"}},
		{Name: "usha", Aliases: []string{"usha"}},
		{Name: "bajaj", Aliases: []string{"bajaj"}},
		{Name: "luminous", Aliases: []string{"luminous"}},
	}}
}

// Simple lexicon-based sentiment word lists for comments.
var defaultPositiveWords = []string{
	"good", "great", "love", "awesome", "amazing", "best", "excellent",
	"efficient", "silent", "quiet", "worth", "recommended", "happy",
	"satisfied", "energy saving", "saves electricity",
}

var defaultNegativeWords = []string{
	"bad", "worst", "hate", "problem", "issues", "noisy", "noise",
	"disappointed", "waste", "poor", "slow", "not good", "not worth",
}
