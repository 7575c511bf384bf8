package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"bikeshare/internal/logger"
)

// ErrNoCities is returned when a config file parses but lists no cities.
var ErrNoCities = errors.New("config lists no cities")

const (
	defaultPageSize  = 5
	defaultCacheSize = 3
)

// Default returns the built-in configuration: the three bikeshare cities
// with their CSV files in the current directory.
func Default() Config {
	return Config{
		DataDir:   ".",
		PageSize:  defaultPageSize,
		CacheSize: defaultCacheSize,
		Cities: []City{
			{Name: "chicago", File: "chicago.csv"},
			{Name: "new york city", File: "new_york_city.csv"},
			{Name: "washington", File: "washington.csv"},
		},
	}
}

// LoadConfig reads the YAML config at configFile.
// A missing file is not an error: the built-in defaults are returned instead,
// so the tool works out of the box next to the three city CSVs.
func LoadConfig(configFile string) (Config, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("[DEBUG] No config at %s, using defaults\n", configFile)
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal %s: %w", configFile, err)
	}

	if len(cfg.Cities) == 0 {
		return Config{}, fmt.Errorf("%s: %w", configFile, ErrNoCities)
	}

	// Normalize so lookups match what the prompt produces (trimmed, lower-case)
	for i := range cfg.Cities {
		cfg.Cities[i].Name = strings.ToLower(strings.TrimSpace(cfg.Cities[i].Name))
		if cfg.Cities[i].Name == "" || cfg.Cities[i].File == "" {
			return Config{}, fmt.Errorf("%s: city #%d needs both name and file", configFile, i+1)
		}
	}

	// A relative data_dir is resolved against the config file, not the cwd
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(configFile)
	} else if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(configFile), cfg.DataDir)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}

	logger.Debug("[DEBUG] Loaded %d cities from %s (data dir %s)\n", len(cfg.Cities), configFile, cfg.DataDir)
	return cfg, nil
}

// DatasetPath resolves a city's file against the data directory.
func (c Config) DatasetPath(city City) string {
	if filepath.IsAbs(city.File) {
		return city.File
	}
	return filepath.Join(c.DataDir, city.File)
}
