// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sovradar/internal/domain/sov"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Storage     StorageConfig
	YouTube     YouTubeConfig
	Insight     InsightConfig
	SOV         SOVConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RefreshTimeout  time.Duration
	CorsOrigins     []string
}

// StorageConfig holds snapshot storage configuration
type StorageConfig struct {
	DataDir string
}

// YouTubeConfig holds YouTube Data API configuration
type YouTubeConfig struct {
	APIKey               string
	BaseURL              string
	MaxResultsPerKeyword int
	MaxCommentsPerVideo  int
}

// InsightConfig holds narrative generation configuration. An empty
// Token disables the insight step; everything else keeps working.
type InsightConfig struct {
	Token   string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// SOVConfig holds the analysis configuration: tracked keywords, the
// brand catalog and the sentiment lexicons.
type SOVConfig struct {
	Keywords   []string
	FocusBrand string
	Catalog    sov.BrandCatalog
	Lexicon    sov.Lexicon
}

// Load loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Minute),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RefreshTimeout:  getEnvAsDuration("SERVER_REFRESH_TIMEOUT", 10*time.Minute),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		YouTube: YouTubeConfig{
			APIKey:               getEnv("YOUTUBE_API_KEY", ""),
			BaseURL:              getEnv("YOUTUBE_BASE_URL", "https://www.googleapis.com"),
			MaxResultsPerKeyword: getEnvAsInt("YOUTUBE_MAX_RESULTS", 30),
			MaxCommentsPerVideo:  getEnvAsInt("YOUTUBE_MAX_COMMENTS", 50),
		},
		Insight: InsightConfig{
			Token:   getEnv("INSIGHT_API_TOKEN", os.Getenv("GITHUB_TOKEN")),
			Model:   getEnv("INSIGHT_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("INSIGHT_BASE_URL", "https://models.inference.ai.azure.com"),
			Timeout: getEnvAsDuration("INSIGHT_TIMEOUT", 60*time.Second),
		},
		SOV: SOVConfig{
			Keywords:   getEnvAsSlice("SOV_KEYWORDS", defaultKeywords),
			FocusBrand: getEnv("SOV_FOCUS_BRAND", "atomberg"),
			Catalog:    parseCatalog(getEnv("SOV_BRANDS", "")),
			Lexicon: sov.Lexicon{
				Positive: getEnvAsSlice("SOV_POSITIVE_WORDS", defaultPositiveWords),
				Negative: getEnvAsSlice("SOV_NEGATIVE_WORDS", defaultNegativeWords),
			},
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.YouTube.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if len(config.SOV.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	if len(config.SOV.Catalog.Brands) == 0 {
		return fmt.Errorf("brand catalog must not be empty")
	}
	return nil
}

// parseCatalog parses "brand:alias1|alias2,brand2:alias3" into a
// catalog, falling back to the built-in smart-fan catalog when the
// value is empty or malformed.
func parseCatalog(value string) sov.BrandCatalog {
	if value == "" {
		return defaultCatalog()
	}

	catalog := sov.BrandCatalog{}
	for _, entry := range strings.Split(value, ",") {
		name, aliasList, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || name == "" {
			continue
		}
		aliases := []string{}
		for _, alias := range strings.Split(aliasList, "|") {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases = append(aliases, alias)
			}
		}
		if len(aliases) == 0 {
			aliases = []string{name}
		}
		catalog.Brands = append(catalog.Brands, sov.Brand{Name: name, Aliases: aliases})
	}

	if len(catalog.Brands) == 0 {
		return defaultCatalog()
	}
	return catalog
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
