package cmd

import (
	"fmt"
	"os"

	"github.com/kamusis/sdm-cli/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.sdm/ with a default sdm.yaml and .env template",
	Long: `Initialize sdm's configuration directory at ~/.sdm/.

Writes sdm.yaml with the public catalog locations and a .env template for
secrets such as SDM_GITHUB_TOKEN. Existing files are left alone unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagInitForce bool

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing sdm.yaml with defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.sdm directory ───────────────────────────────────────────
	sdmDir, err := config.SdmDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	// ── 2. Create ~/.sdm/ if it doesn't exist ─────────────────────────────────
	if err := os.MkdirAll(sdmDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", sdmDir, err)
	}
	printOK("", fmt.Sprintf("sdm directory ready: %s", sdmDir))

	// ── 3. Write sdm.yaml if missing ──────────────────────────────────────────
	_, statErr := os.Stat(cfgPath)
	if os.IsNotExist(statErr) || flagInitForce {
		cfg := config.DefaultConfig()
		if flagIndexURL != "" {
			cfg.IndexURL = flagIndexURL
		}
		if flagTimeout > 0 {
			cfg.Timeout = flagTimeout
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}

	// ── 4. Write .env template ────────────────────────────────────────────────
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	printOK("", fmt.Sprintf(".env ready: %s", envPath))

	// ── 5. Validate the result ────────────────────────────────────────────────
	if _, err := config.Load(); err != nil {
		return err
	}

	fmt.Println("\n✓  sdm init complete. Run 'sdm doctor' to verify your environment.")
	return nil
}
