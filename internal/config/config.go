package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/trknhr/cooktime/internal/logger"
	"github.com/trknhr/cooktime/internal/model"
	"github.com/trknhr/cooktime/internal/model/dataset"
	"github.com/trknhr/cooktime/internal/model/forest"
	"github.com/trknhr/cooktime/internal/model/linear"
)

const appName = "cooktime"

// Config holds all settings for the application. Zero fields in the file
// keep their defaults.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	DBPath      string `yaml:"db_path"`
	Journal     bool   `yaml:"journal"`
	MetricsAddr string `yaml:"metrics_addr"`

	// Models is a comma-separated list of regressors: forest, ridge.
	Models     string        `yaml:"models"`
	Forest     forest.Params `yaml:"forest"`
	Ridge      linear.Params `yaml:"ridge"`
	GridSearch bool          `yaml:"grid_search"`
	Folds      int           `yaml:"folds"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Journal:  true,
		Models:   "forest",
		Forest:   forest.DefaultParams(),
		Ridge:    linear.DefaultParams(),
		Folds:    3,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/cooktime/config.yaml, falling back to
// the OS user config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.yaml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

// Load reads path (DefaultPath when empty), applies environment overrides
// and validates the result. A missing file is not an error unless path was
// given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		logger.Debug("loaded config from %s", path)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logger.Debug("no config at %s, using defaults", path)
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COOKTIME_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("COOKTIME_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("COOKTIME_MODELS"); v != "" {
		cfg.Models = v
	}
	if v := os.Getenv("COOKTIME_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
}

func (c *Config) Validate() error {
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	models, err := model.ParseModels(c.Models)
	if err != nil {
		return err
	}
	if c.Forest.Trees < 1 {
		return fmt.Errorf("forest.trees must be at least 1, got %d", c.Forest.Trees)
	}
	if c.Forest.MaxDepth < 0 {
		return fmt.Errorf("forest.max_depth must not be negative, got %d", c.Forest.MaxDepth)
	}
	if c.Forest.MinSamplesLeaf < 1 {
		return fmt.Errorf("forest.min_samples_leaf must be at least 1, got %d", c.Forest.MinSamplesLeaf)
	}
	if c.Ridge.Lambda < 0 {
		return fmt.Errorf("ridge.lambda must not be negative, got %g", c.Ridge.Lambda)
	}
	if c.Ridge.Lambda == 0 && slices.Contains(models, "ridge") {
		// The catalog has more feature columns than the dataset has rows.
		return fmt.Errorf("ridge.lambda must be positive when ridge is selected")
	}
	if c.GridSearch && c.Folds < 2 {
		return fmt.Errorf("folds must be at least 2 for grid search, got %d", c.Folds)
	}
	ds, err := dataset.Builtin()
	if err != nil {
		return err
	}
	if c.Folds > ds.Len() {
		return fmt.Errorf("folds must not exceed the %d training rows, got %d", ds.Len(), c.Folds)
	}
	return nil
}

// ModelOptions converts the model settings for model.GenerateModel.
func (c *Config) ModelOptions() model.Options {
	opts := model.DefaultOptions()
	opts.Models = c.Models
	opts.Forest = c.Forest
	opts.Ridge = c.Ridge
	opts.GridSearch = c.GridSearch
	if c.Folds > 0 {
		opts.Folds = c.Folds
	}
	return opts
}
