package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger struct {
		Verbosity string `yaml:"verbosity"`
	} `yaml:"logger"`
	Probe struct {
		// Timeout bounds every external probe command (sysctl, nvidia-smi,
		// system_profiler).
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"probe"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Serve   struct {
		ListenAddress string `yaml:"listenAddress"`
	} `yaml:"serve"`
}

// AdvisorConfig holds the memory thresholds driving the recommended settings.
// The defaults are the supported values; overrides exist for lab tuning.
type AdvisorConfig struct {
	// Below this many GB of RAM, recommend offloading model weights to CPU.
	OffloadThresholdGB int `yaml:"offloadThresholdGB"`
	// Below this many GB, additionally recommend offloading the DiT stack.
	DiTOffloadThresholdGB int `yaml:"ditOffloadThresholdGB"`
	// Batch size is total RAM divided by this, clamped to [1, MaxBatchSize].
	BatchDivisorGB int `yaml:"batchDivisorGB"`
	MaxBatchSize   int `yaml:"maxBatchSize"`
	// Assumed total RAM when the memory probe fails.
	DefaultTotalGB int `yaml:"defaultTotalGB"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Logger.Verbosity = "info"
	cfg.Probe.Timeout = 5 * time.Second
	cfg.Advisor = AdvisorConfig{
		OffloadThresholdGB:    32,
		DiTOffloadThresholdGB: 16,
		BatchDivisorGB:        8,
		MaxBatchSize:          4,
		DefaultTotalGB:        8,
	}
	cfg.Serve.ListenAddress = ":8080"
	return cfg
}

// Load reads a YAML config from path, layered over the defaults. A missing
// file is not an error; an unreadable or malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %s", c.Probe.Timeout)
	}
	if c.Advisor.BatchDivisorGB <= 0 {
		return fmt.Errorf("batch divisor must be positive, got %d", c.Advisor.BatchDivisorGB)
	}
	if c.Advisor.MaxBatchSize < 1 {
		return fmt.Errorf("max batch size must be at least 1, got %d", c.Advisor.MaxBatchSize)
	}
	return nil
}
