// Package main provides the sovradar CLI entry point.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"sovradar/internal/adapter/insight"
	"sovradar/internal/adapter/storage"
	"sovradar/internal/adapter/youtube"
	"sovradar/internal/config"
	"sovradar/internal/domain/sov"
	"sovradar/internal/server"
	"sovradar/internal/service/listening"
	"sovradar/internal/service/matching"
	"sovradar/internal/service/metrics"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for the sovradar CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sovradar",
		Short:   "YouTube share-of-voice tracking for brand keywords",
		Long:    "Sovradar collects YouTube search results and comments for marketing keywords,\ncomputes per-brand share-of-voice metrics and serves them in a dashboard.",
		Version: version,
	}

	rootCmd.SetVersionTemplate("sovradar version {{.Version}}\n")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCollectCmd())

	return rootCmd
}

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			service := buildService(cfg)
			httpServer := server.NewServer(cfg.Server, service)

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			go func() {
				log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("HTTP server error: %v", err)
				}
			}()

			<-shutdown
			log.Println("Shutdown signal received")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("HTTP server shutdown error: %v", err)
			}

			log.Println("Shutdown complete")
			return nil
		},
	}
}

// newCollectCmd creates the collect subcommand.
func newCollectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Run collection and aggregation once and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			service := buildService(cfg)

			summary, err := service.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if summary.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", summary.Warning)
			}

			overall, err := service.Overall(cmd.Context())
			if err != nil {
				return err
			}
			byKeyword, err := service.ByKeyword(cmd.Context())
			if err != nil {
				return err
			}

			printSummary(cmd, summary, overall, byKeyword)
			return nil
		},
	}
}

// buildService wires the adapters and services from configuration.
func buildService(cfg config.Config) *metrics.Service {
	source := youtube.NewClient(cfg.YouTube.APIKey, youtube.WithBaseURL(cfg.YouTube.BaseURL))

	collector := listening.NewCollector(source, listening.CollectorConfig{
		Keywords:             cfg.SOV.Keywords,
		MaxResultsPerKeyword: cfg.YouTube.MaxResultsPerKeyword,
		MaxCommentsPerVideo:  cfg.YouTube.MaxCommentsPerVideo,
	})

	matcher := matching.NewMatcher(cfg.SOV.Catalog, cfg.SOV.Lexicon)
	aggregator := metrics.NewAggregator(cfg.SOV.Catalog, matcher)
	store := storage.NewSnapshotStore(cfg.Storage.DataDir)

	var generator sov.InsightGenerator
	if cfg.Insight.Token != "" {
		generator = insight.NewClient(insight.Config{
			Token:      cfg.Insight.Token,
			Model:      cfg.Insight.Model,
			BaseURL:    cfg.Insight.BaseURL,
			FocusBrand: cfg.SOV.FocusBrand,
			Timeout:    cfg.Insight.Timeout,
		})
	} else {
		log.Println("No insight API token configured, narrative generation disabled")
	}

	return metrics.NewService(collector, aggregator, store, generator, metrics.ServiceConfig{
		Keywords:   cfg.SOV.Keywords,
		Catalog:    cfg.SOV.Catalog,
		FocusBrand: cfg.SOV.FocusBrand,
	})
}

// printSummary prints the console report for a completed run.
func printSummary(cmd *cobra.Command, summary sov.RefreshSummary, overall sov.MetricsResult, byKeyword map[string]sov.MetricsResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\nRun %s: %d videos collected across %d keywords\n",
		summary.RunID, summary.TotalRecords, len(summary.Keywords))

	fmt.Fprintln(out, "\n=== Overall Share of Voice Metrics ===")
	for _, brand := range overall.Brands {
		m := overall.Metrics[brand]
		fmt.Fprintf(out, "\nBrand: %s\n", brand)
		fmt.Fprintf(out, "  Posts with brand:          %d\n", m.PostsWithBrand)
		fmt.Fprintf(out, "  SoV (content):             %.2f%%\n", m.ContentShare*100)
		fmt.Fprintf(out, "  SoV (engagement-weighted): %.2f%%\n", m.EngagementShare*100)
		fmt.Fprintf(out, "  SoV (comments):            %.2f%%\n", m.CommentShare*100)
		fmt.Fprintf(out, "  Share of positive voice:   %.2f%%\n", m.PositiveVoiceShare*100)
	}

	keywords := make([]string, 0, len(byKeyword))
	for kw := range byKeyword {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	fmt.Fprintln(out, "\n=== Per-keyword Share of Voice ===")
	for _, kw := range keywords {
		fmt.Fprintf(out, "\nKeyword: %q\n", kw)
		result := byKeyword[kw]
		for _, brand := range result.Brands {
			m := result.Metrics[brand]
			if m.PostsWithBrand == 0 {
				continue
			}
			fmt.Fprintf(out, "  %-10s | content: %.2f%% | engagement: %.2f%% | SoPV: %.2f%%\n",
				brand, m.ContentShare*100, m.EngagementShare*100, m.PositiveVoiceShare*100)
		}
	}
}
