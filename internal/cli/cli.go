package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nps-sites/internal/cache"
	"github.com/pfrederiksen/nps-sites/internal/config"
	"github.com/pfrederiksen/nps-sites/internal/fetch"
	"github.com/pfrederiksen/nps-sites/internal/logger"
	"github.com/pfrederiksen/nps-sites/internal/places"
	"github.com/pfrederiksen/nps-sites/internal/scraper"
	"github.com/pfrederiksen/nps-sites/internal/session"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

type options struct {
	configPath   string
	cacheFile    string
	cacheBackend string
	apiKey       string
	verbose      bool
	format       string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "nps-sites",
		Short: "Browse national parks by state and find places nearby",
		Long: `An interactive tool for exploring nps.gov state by state.
Pick a state to list its national sites, then pick a site to see places
within 10 miles of it. Every page and API response is cached on disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/nps-sites/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.cacheFile, "cache-file", "", "Response cache location")
	cmd.PersistentFlags().StringVar(&opts.cacheBackend, "cache-backend", "", "Cache backend: json or sqlite")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging on stderr")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "MapQuest API key (or set "+config.APIKeyEnv+")")

	cmd.AddCommand(newCacheCmd(opts))

	return cmd
}

// loadConfig merges the config file with flag overrides and sets up logging.
func loadConfig(opts *options, stderr io.Writer) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.cacheFile != "" {
		cfg.CacheFile = opts.cacheFile
	}
	if opts.cacheBackend != "" {
		cfg.CacheBackend = strings.ToLower(opts.cacheBackend)
	}
	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(logger.New(level, stderr))

	return cfg, nil
}

// openCache builds the response cache for the configured backend.
// The returned close function releases the backend.
func openCache(cfg *config.Config) (*cache.Cache, func() error, error) {
	fetcher := fetch.New(fetch.Options{
		UserAgent: cfg.UserAgent,
		Contact:   cfg.Contact,
		Timeout:   cfg.HTTPTimeout,
	})

	path := cfg.ResolvedCacheFile()
	noop := func() error { return nil }

	switch cfg.CacheBackend {
	case config.BackendSQLite:
		store, err := cache.OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return cache.New(store, fetcher), store.Close, nil
	default:
		store, err := cache.NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return cache.New(store, fetcher), noop, nil
	}
}

func runSession(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		logger.Warn("no API key configured, nearby lookups will fail", logger.Fields{"env": config.APIKeyEnv})
	}

	c, closeCache, err := openCache(cfg)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer closeCache() //nolint:errcheck

	logger.Debug("cache ready", logger.Fields{
		"backend": cfg.CacheBackend,
		"path":    cfg.ResolvedCacheFile(),
		"entries": c.Len(),
	})

	s := session.New(scraper.New(c), places.NewClient(cfg.APIKey, c), cmd.InOrStdin(), cmd.OutOrStdout())
	if err := s.Run(); err != nil {
		return err
	}

	logger.Info("session finished", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
