package app

import (
	"strings"

	"github.com/specialistvlad/firmgen/internal/errors"
)

// Default values for optional Config fields.
const (
	DefaultOutputDir = "build"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // .hcl/.yaml file or directory
	OutputDir  string

	LogFormat string
	LogLevel  string
	// DryRun prints main.cpp to the output writer instead of writing files.
	DryRun bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.WithHint(
			errors.Newf("invalid log-level %q", cfg.LogLevel),
			"must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.WithHint(
			errors.Newf("invalid log-format %q", cfg.LogFormat),
			"must be 'text' or 'json'")
	}
	return &cfg, nil
}
