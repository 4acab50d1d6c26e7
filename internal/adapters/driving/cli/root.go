// Package cli is the cobra-based command line adapter. It wires the
// configuration, the response cache and the Senate LDA data source into
// the core search service and renders its output.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cachememory "github.com/OneFellSwoop1/lobbying-disclosure-app/internal/adapters/driven/cache/memory"
	cachesqlite "github.com/OneFellSwoop1/lobbying-disclosure-app/internal/adapters/driven/cache/sqlite"
	configfile "github.com/OneFellSwoop1/lobbying-disclosure-app/internal/adapters/driven/config/file"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/connectors/senate"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driven"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driving"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/services"
	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/logger"
)

const version = "1.0.0"

var (
	verboseFlag bool
	configPath  string
	mockFlag    bool

	// searchService is set by setup, or injected directly by tests.
	searchService driving.SearchService

	// responseCache is kept for shutdown.
	responseCache driven.ResponseCache
)

var rootCmd = &cobra.Command{
	Use:   "lobbying-disclosure",
	Short: "Search U.S. Senate lobbying disclosure filings",
	Long: `Searches the U.S. Senate Lobbying Disclosure Act (LDA) database
for filings by client, registrant or lobbyist name, with filtering,
detail lookup, CSV export and chart-ready aggregation.

An API key is read from the config file or the LDA_API_KEY environment
variable. Without a usable live API the tool serves clearly labelled,
deterministically generated sample data.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Fatal errors are rendered through the
// logger rather than cobra's default printer.
func Execute() error {
	defer func() {
		if responseCache != nil {
			responseCache.Close()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&mockFlag, "mock", false, "serve generated sample data only")
}

// setup builds the service graph before any command runs. Tests that
// inject their own searchService skip the wiring.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if searchService != nil {
		return nil
	}

	path := configPath
	if path == "" {
		defaultPath, err := configfile.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
		path = defaultPath
	}

	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}

	cache, err := buildCache(cfg.Cache)
	if err != nil {
		return err
	}
	responseCache = cache

	useMock := cfg.UseMockData || mockFlag
	if !useMock && cfg.APIKey == "" {
		logger.Warn("No API key configured, serving generated sample data")
		useMock = true
	}

	source := senate.New(senate.Config{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.APIBaseURL,
		UseMockData:  useMock,
		MockFallback: cfg.MockFallback,
	}, cache)

	searchService = services.NewSearchService(source)
	return nil
}

func buildCache(cfg configfile.CacheConfig) (driven.ResponseCache, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second

	switch cfg.Backend {
	case "none":
		return nil, nil
	case "sqlite":
		return cachesqlite.NewCache("", cfg.MaxEntries, ttl)
	case "memory", "":
		return cachememory.NewCache(cfg.MaxEntries, ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
