package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/kamusis/sdm-cli/internal/browser"
	"github.com/kamusis/sdm-cli/internal/cache"
	"github.com/kamusis/sdm-cli/internal/config"
	"github.com/kamusis/sdm-cli/internal/fetch"
	"github.com/kamusis/sdm-cli/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "sdm",
	Short:        "Browse Smart Data Models from the terminal",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `sdm loads the Smart Data Models catalog, lets you filter repositories
and models, inspects model schemas and generates JavaScript declarations
for the properties you select.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor {
			color.NoColor = true
		}
	},
}

var (
	flagVerbose  bool
	flagIndexURL string
	flagTimeout  time.Duration
	flagNoColor  bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&flagIndexURL, "index-url", "", "Catalog location (URL or local path)")
	pf.DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (default from sdm.yaml)")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable coloured output")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session bundles what catalog commands need: the loaded config, the
// diagnostic logger and a browser with a fresh model cache.
type session struct {
	cfg     *config.Config
	log     *logger.Logger
	browser *browser.Browser
}

// Close releases the log file, if any.
func (s *session) Close() error {
	return s.log.Close()
}

// openSession loads config and applies the global flags on top of it.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'sdm init' to rewrite it.", err)
	}
	if flagIndexURL != "" {
		cfg.IndexURL = flagIndexURL
	}
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("cannot set up logging: %w", err)
	}

	token, err := config.GetConfigValue("SDM_GITHUB_TOKEN")
	if err != nil {
		log.Warn("cannot read dotenv file", "error", err)
	}

	f := fetch.New(fetch.Options{
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
		Token:   token,
		Logger:  log.Logger,
	})
	b := browser.New(f, cache.New(), browser.Options{
		IndexURL:         cfg.IndexURL,
		ModelURLTemplate: cfg.ModelURLTemplate,
		Logger:           log.Logger,
	})
	return &session{cfg: cfg, log: log, browser: b}, nil
}
