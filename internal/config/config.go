// Package config loads the shop configuration from a small YAML file.
// Every front-end process sharing a data root must run with the same
// config, since thresholds and file locations are part of the shared
// contract between them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the core needs to know about its environment.
// The YAML shape lives in rawConfig; see Load.
type Config struct {
	// DataDir is the root holding all catalog and ledger files.
	DataDir string

	// ImagesDirName and BackupsDirName are subdirectories of DataDir.
	ImagesDirName  string
	BackupsDirName string

	// MaxStock caps product stock; refills clamp to it.
	MaxStock int

	// RefillThreshold is the stock level at or below which a product is
	// flagged for restocking.
	RefillThreshold int

	// DefaultStartingStock is applied when a legacy product record has a
	// recipe but no recorded stock.
	DefaultStartingStock int

	// WatchDebounce is how long the change watcher waits after a file
	// event before reloading, letting the writer finish.
	WatchDebounce time.Duration

	// BackupRetention is how many snapshot folders to keep.
	BackupRetention int

	// Currency is the ISO 4217 code used when rendering receipts.
	Currency string
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		DataDir:              "data",
		ImagesDirName:        "images",
		BackupsDirName:       "backups",
		MaxStock:             20,
		RefillThreshold:      5,
		DefaultStartingStock: 20,
		WatchDebounce:        200 * time.Millisecond,
		BackupRetention:      10,
		Currency:             "USD",
	}
}

// rawConfig is the YAML shape. Durations are strings ("200ms", "1s")
// since yaml.v3 has no native duration support.
type rawConfig struct {
	DataDir              string `yaml:"data_dir"`
	ImagesDirName        string `yaml:"images_dir"`
	BackupsDirName       string `yaml:"backups_dir"`
	MaxStock             int    `yaml:"max_stock"`
	RefillThreshold      *int   `yaml:"refill_threshold"`
	DefaultStartingStock *int   `yaml:"default_starting_stock"`
	WatchDebounce        string `yaml:"watch_debounce"`
	BackupRetention      int    `yaml:"backup_retention"`
	Currency             string `yaml:"currency"`
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults apply. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if raw.DataDir != "" {
		cfg.DataDir = raw.DataDir
	}
	if raw.ImagesDirName != "" {
		cfg.ImagesDirName = raw.ImagesDirName
	}
	if raw.BackupsDirName != "" {
		cfg.BackupsDirName = raw.BackupsDirName
	}
	if raw.MaxStock != 0 {
		cfg.MaxStock = raw.MaxStock
	}
	if raw.RefillThreshold != nil {
		cfg.RefillThreshold = *raw.RefillThreshold
	}
	if raw.DefaultStartingStock != nil {
		cfg.DefaultStartingStock = *raw.DefaultStartingStock
	}
	if raw.WatchDebounce != "" {
		d, err := time.ParseDuration(raw.WatchDebounce)
		if err != nil {
			return nil, fmt.Errorf("invalid config %s: watch_debounce: %w", path, err)
		}
		cfg.WatchDebounce = d
	}
	if raw.BackupRetention != 0 {
		cfg.BackupRetention = raw.BackupRetention
	}
	if raw.Currency != "" {
		cfg.Currency = raw.Currency
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.MaxStock <= 0 {
		return fmt.Errorf("max_stock must be positive, got %d", c.MaxStock)
	}
	if c.RefillThreshold < 0 || c.RefillThreshold > c.MaxStock {
		return fmt.Errorf("refill_threshold %d must be within [0, max_stock=%d]", c.RefillThreshold, c.MaxStock)
	}
	if c.DefaultStartingStock < 0 || c.DefaultStartingStock > c.MaxStock {
		return fmt.Errorf("default_starting_stock %d must be within [0, max_stock=%d]", c.DefaultStartingStock, c.MaxStock)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative")
	}
	if c.BackupRetention < 1 {
		return fmt.Errorf("backup_retention must be at least 1, got %d", c.BackupRetention)
	}
	return nil
}
