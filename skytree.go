package skytree

import (
	"fmt"
	"runtime"
)

// Config controls index construction and divide-and-conquer execution.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// MaxEntries is the R-tree fan-out M: the maximum number of entries a
	// node may hold before it splits. Non-root nodes keep at least
	// ceil(M/2) entries. Must be >= 2. Default: 4.
	MaxEntries int

	// Partitions is the number of strips the divide-and-conquer variants
	// cut the dataset into. 1 disables partitioning. Set to 0 to use the
	// default. Must be >= 1. Default: 2.
	Partitions int

	// Workers is the number of goroutines used to build and search
	// partitions concurrently. Partition results are merged after all
	// workers join, so the value never affects query answers.
	// 0 means use runtime.NumCPU(). Default: 0 (auto).
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 4,
		Partitions: 2,
	}
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = 4
	}
	if cfg.Partitions == 0 {
		cfg.Partitions = 2
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive
// error if not.
func validateConfig(cfg *Config) error {
	if cfg.MaxEntries < 2 {
		return fmt.Errorf("skytree: MaxEntries must be >= 2, got %d: %w", cfg.MaxEntries, ErrConfiguration)
	}
	if cfg.Partitions < 1 {
		return fmt.Errorf("skytree: Partitions must be >= 1, got %d: %w", cfg.Partitions, ErrConfiguration)
	}
	return nil
}
