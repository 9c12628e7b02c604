package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/kamusis/sdm-cli/internal/catalog"
	"gopkg.in/yaml.v3"
)

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// Config is the in-memory representation of ~/.sdm/sdm.yaml.
type Config struct {
	IndexURL         string        `yaml:"index_url"`
	ModelURLTemplate string        `yaml:"model_url_template"`
	Timeout          time.Duration `yaml:"timeout,omitempty"`
	Retries          int           `yaml:"retries,omitempty"`
	Log              LogConfig     `yaml:"log,omitempty"`
}

// SdmDir returns the absolute path to ~/.sdm/.
func SdmDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".sdm"), nil
}

// ConfigPath returns the absolute path to ~/.sdm/sdm.yaml.
func ConfigPath() (string, error) {
	dir, err := SdmDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sdm.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the configuration written on first sdm init.
func DefaultConfig() *Config {
	return &Config{
		IndexURL:         catalog.DefaultIndexURL,
		ModelURLTemplate: catalog.DefaultModelURLTemplate,
		Timeout:          30 * time.Second,
		Retries:          2,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads ~/.sdm/sdm.yaml. A missing file yields DefaultConfig. Values
// from the environment (or ~/.sdm/.env) override the file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Log.File != "" {
		cfg.Log.File, err = ExpandPath(cfg.Log.File)
		if err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	overrides := []struct {
		key string
		dst *string
	}{
		{"SDM_INDEX_URL", &cfg.IndexURL},
		{"SDM_MODEL_URL_TEMPLATE", &cfg.ModelURLTemplate},
		{"SDM_LOG_LEVEL", &cfg.Log.Level},
	}
	for _, o := range overrides {
		v, err := GetConfigValue(o.key)
		if err != nil {
			return err
		}
		if v != "" {
			*o.dst = v
		}
	}
	return nil
}

// Save marshals cfg and writes it to ~/.sdm/sdm.yaml. Concurrent writers are
// serialized through a lock file next to the config.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	l := flock.New(path + ".lock")
	if err := l.Lock(); err != nil {
		return fmt.Errorf("cannot lock config %s: %w", path, err)
	}
	defer func() { _ = l.Unlock() }()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
