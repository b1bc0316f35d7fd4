package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/pion/logging"
	"gopkg.in/yaml.v3"

	"github.com/backkem/matter-binding/pkg/binding"
)

// Config is the optional YAML configuration file.
//
//	storage: /var/lib/matter/kvs
//	capacity: 64
//	log_level: warn
type Config struct {
	// Storage is the directory of the file-backed key-value store.
	Storage string `yaml:"storage"`

	// Capacity is the number of binding slots. It must match the capacity
	// the device was built with, or persisted slot numbers may not fit.
	Capacity int `yaml:"capacity"`

	// LogLevel is one of disabled, error, warn, info, debug or trace.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Storage:  "matter-kvs",
		Capacity: binding.DefaultCapacity,
		LogLevel: "warn",
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Storage == "" {
		return fmt.Errorf("storage directory is required")
	}
	if c.Capacity < 1 || c.Capacity > binding.MaxCapacity {
		return fmt.Errorf("capacity must be 1-%d, got %d", binding.MaxCapacity, c.Capacity)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a level name to a pion/logging level.
func ParseLogLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(s) {
	case "disabled", "off":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}
