// Package cli implements the nextact command-line interface using
// cobra. It is the composition root: initServices wires stores,
// services and matchers together before any command runs.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/config/file"
	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/match/edlib"
	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/match/fuzzy"
	"github.com/clearday-labs/nextact-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driven"
	"github.com/clearday-labs/nextact-cli/internal/core/ports/driving"
	"github.com/clearday-labs/nextact-cli/internal/core/services"
	"github.com/clearday-labs/nextact-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose bool
	dataDir string
)

// Services and stores shared by the commands. Wired by initServices;
// tests inject mocks directly.
var (
	configStore     driven.ConfigStore
	entityStore     driven.EntityStore
	searchService   driving.SearchService
	historyService  driving.HistoryService
	forecastService driving.ForecastService
	reviewService   driving.ReviewService

	store *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "nextact",
	Short: "A fast, local-first task manager",
	Long: `Nextact keeps your actions, projects and commitments in a local
SQLite database and makes them searchable in milliseconds.

All data stays on your machine under ~/.nextact.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.nextact/data)")
}

// Execute runs the root command.
func Execute() error {
	defer closeStore()
	return rootCmd.Execute()
}

// initServices wires the application together. Commands whose
// services are already set (tests) are left alone.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if searchService != nil {
		return nil
	}

	var err error
	configStore, err = file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening data store: %w", err)
	}

	entityStore = store.EntityStore()

	history := services.NewHistoryService(store.HistoryStore())
	historyService = history

	search := services.NewSearchService(newMatcher(configStore), history)
	searchService = search

	forecastService = services.NewForecastService(entityStore)
	reviewService = services.NewReviewService(entityStore, 0)

	// Build indexes up front so every command searches current data.
	collections, err := entityStore.Collections(context.Background())
	if err != nil {
		return fmt.Errorf("loading collections: %w", err)
	}
	search.InitializeIndexes(*collections)

	return nil
}

// newMatcher picks the fuzzy algorithm from config. Defaults to the
// subsequence matcher; "edlib" selects edit-distance matching.
func newMatcher(config driven.ConfigStore) driven.Matcher {
	switch config.GetString("search.matcher") {
	case "edlib":
		return edlib.NewMatcher()
	case "levenshtein":
		return edlib.NewLevenshteinMatcher()
	default:
		return fuzzy.NewMatcher()
	}
}

func closeStore() {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("Closing data store: %v", err)
	}
	store = nil
}
