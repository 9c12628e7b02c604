package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kamusis/sdm-cli/internal/config"
	"github.com/kamusis/sdm-cli/internal/logger"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that sdm's configuration is valid and that the catalog can be
reached. Run this command when something seems wrong, or before filing a
bug report.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("sdm doctor")
	fmt.Println()

	// ── Check 1: sdm.yaml ─────────────────────────────────────────────────────
	fmt.Println("[ sdm.yaml ]")
	cfgPath, err := config.ConfigPath()
	if err != nil {
		failD("cannot determine home directory: %v", err)
	} else if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not found, using defaults (run 'sdm init' to create it)", cfgPath))
	}
	cfg, loadErr := config.Load()
	if loadErr != nil {
		failD("cannot parse sdm.yaml: %v", loadErr)
	} else {
		printOK("", fmt.Sprintf("timeout %s, %d retries", cfg.Timeout, cfg.Retries))
	}
	fmt.Println()

	// ── Check 2: .env ─────────────────────────────────────────────────────────
	fmt.Println("[ .env ]")
	if env, err := config.LoadDotEnv(); err != nil {
		failD("%v", err)
	} else {
		printOK("", fmt.Sprintf("%d key(s) defined", len(env)))
	}
	if tok, _ := config.GetConfigValue("SDM_GITHUB_TOKEN"); tok != "" {
		printOK("", "SDM_GITHUB_TOKEN is set")
	} else {
		printInfo("", "SDM_GITHUB_TOKEN not set (anonymous requests are rate limited)")
	}
	fmt.Println()

	if loadErr != nil {
		printWarn("", "remaining checks skipped (sdm.yaml not loaded)")
		return fmt.Errorf("doctor found issues")
	}

	// ── Check 3: logging ──────────────────────────────────────────────────────
	fmt.Println("[ Logging ]")
	if _, err := logger.ParseLevel(cfg.Log.Level); err != nil {
		failD("%v", err)
	} else {
		printOK("", fmt.Sprintf("level %s, format %s", orDefault(cfg.Log.Level, "warn"), orDefault(cfg.Log.Format, "text")))
	}
	if cfg.Log.File != "" {
		printInfo("", fmt.Sprintf("log file: %s", cfg.Log.File))
	}
	fmt.Println()

	// ── Check 4: model URL template ───────────────────────────────────────────
	fmt.Println("[ Model URL template ]")
	if !strings.Contains(cfg.ModelURLTemplate, "{repo}") || !strings.Contains(cfg.ModelURLTemplate, "{model}") {
		failD("template must contain {repo} and {model}: %s", cfg.ModelURLTemplate)
	} else {
		printOK("", cfg.ModelURLTemplate)
	}
	fmt.Println()

	// ── Check 5: catalog reachable ────────────────────────────────────────────
	fmt.Println("[ Catalog ]")
	s, err := openSession()
	if err != nil {
		failD("%v", err)
	} else {
		defer s.Close()
		ctx, cancel := context.WithTimeout(cmdContext(cmd), s.cfg.Timeout+5*time.Second)
		defer cancel()
		start := time.Now()
		idx, err := s.browser.LoadCatalog(ctx)
		if err != nil {
			failD("%v", err)
		} else {
			printOK("", fmt.Sprintf("%s: %d repositories, %d models (%s)",
				s.browser.IndexURL(), len(idx.Entries), idx.ModelCount(), time.Since(start).Round(time.Millisecond)))
		}
	}
	fmt.Println()

	// ── Summary ───────────────────────────────────────────────────────────────
	fmt.Println("===================")
	if allOK {
		fmt.Println("✓  All checks passed. sdm is ready to use.")
	} else {
		fmt.Fprintln(os.Stderr, "✗  One or more checks failed. See details above.")
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
