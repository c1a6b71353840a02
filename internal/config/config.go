// Package config loads service configuration from an optional YAML file
// with environment-variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"archcost/internal/logging"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  logging.Config `yaml:"logging"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Docgen   DocgenConfig   `yaml:"docgen"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// Region labels every estimate; pricing is region-independent so
	// this is display metadata only.
	Region string `yaml:"region"`

	// MaxUploadBytes caps diagram upload size.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// AnalysisConfig configures the vision-model call.
type AnalysisConfig struct {
	// Endpoint is the diagram-analysis service URL. When empty, the
	// analyze API reports itself unconfigured instead of estimating.
	Endpoint string `yaml:"endpoint"`

	Timeout Duration `yaml:"timeout"`
}

// DocgenConfig tunes batch document generation.
type DocgenConfig struct {
	MaxAttempts   int      `yaml:"max_attempts"`
	BaseDelay     Duration `yaml:"base_delay"`
	InterDocDelay Duration `yaml:"inter_doc_delay"`
	CallTimeout   Duration `yaml:"call_timeout"`
}

// Default returns the configuration used when no file or overrides are
// present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			Region:         "us-east-1",
			MaxUploadBytes: 10 << 20,
		},
		Logging: logging.DefaultConfig(),
		Analysis: AnalysisConfig{
			Timeout: Duration(90 * time.Second),
		},
		Docgen: DocgenConfig{
			MaxAttempts:   3,
			BaseDelay:     Duration(2 * time.Second),
			InterDocDelay: Duration(1 * time.Second),
			CallTimeout:   Duration(60 * time.Second),
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path
// if path is non-empty, then ARCHCOST_* environment overrides. A
// missing file at an explicitly given path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv layers ARCHCOST_* variables over the loaded values. Invalid
// numeric or duration values are ignored in favor of what is already
// set.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ARCHCOST_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ARCHCOST_REGION"); v != "" {
		cfg.Server.Region = v
	}
	if v := os.Getenv("ARCHCOST_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Server.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("ARCHCOST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ARCHCOST_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("ARCHCOST_ANALYSIS_ENDPOINT"); v != "" {
		cfg.Analysis.Endpoint = v
	}
	if v := os.Getenv("ARCHCOST_ANALYSIS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Analysis.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("ARCHCOST_DOCGEN_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Docgen.MaxAttempts = n
		}
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Analysis.Timeout <= 0 {
		return fmt.Errorf("analysis.timeout must be positive, got %s", c.Analysis.Timeout)
	}
	if c.Docgen.MaxAttempts < 1 {
		return fmt.Errorf("docgen.max_attempts must be at least 1, got %d", c.Docgen.MaxAttempts)
	}
	return nil
}
