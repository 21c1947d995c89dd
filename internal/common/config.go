package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	Extraction  ExtractionConfig `toml:"extraction"`
	FMCSA       FMCSAConfig      `toml:"fmcsa"`
	GitHub      GitHubConfig     `toml:"github"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=1,lte=65535"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// ExtractionConfig controls the per-job extraction pipeline: pacing between
// lookups, the retry policy, lookup timeout, and job admission.
type ExtractionConfig struct {
	RequestsPerMinute int      `toml:"requests_per_minute" validate:"gte=1"`
	MaxRetries        int      `toml:"max_retries" validate:"gte=0"`
	RetryBaseDelay    Duration `toml:"retry_base_delay" validate:"gt=0"`
	RequestTimeout    Duration `toml:"request_timeout" validate:"gt=0"`
	MaxConcurrentJobs int      `toml:"max_concurrent_jobs" validate:"gte=1"`
}

// FMCSAConfig configures the FMCSA carrier search client
type FMCSAConfig struct {
	BaseURL           string `toml:"base_url" validate:"required,url"`
	UserAgent         string `toml:"user_agent"`
	RequestsPerSecond int    `toml:"requests_per_second" validate:"gte=1"`
}

// GitHubConfig configures the GitHub identifier-list provider
type GitHubConfig struct {
	Token string `toml:"token"` // empty token means unauthenticated access to public repos
}

// Duration wraps time.Duration so TOML values can be written as "2s"-style
// strings. go-toml only decodes such strings into types implementing
// encoding.TextUnmarshaler.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the wrapped time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

var configValidator = validator.New()

// NewDefaultConfig returns the built-in defaults, matching a small local
// deployment. Files, env vars, and CLI flags layer on top.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/carriervet",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05.000",
		},
		Extraction: ExtractionConfig{
			RequestsPerMinute: 10,
			MaxRetries:        3,
			RetryBaseDelay:    Duration(2 * time.Second),
			RequestTimeout:    Duration(30 * time.Second),
			MaxConcurrentJobs: 4,
		},
		FMCSA: FMCSAConfig{
			BaseURL:           "https://ai.fmcsa.dot.gov/SMS/Tools/CarrierSearch.aspx",
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			RequestsPerSecond: 1,
		},
		GitHub: GitHubConfig{},
	}
}

// LoadFromFile loads configuration from a single TOML file on top of defaults
func LoadFromFile(path string) (*Config, error) {
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration in priority order: defaults, then each
// file in turn (later files override earlier ones), then environment
// variables. Flag overrides are applied separately by the caller.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies CARRIERVET_* environment variable overrides
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("CARRIERVET_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("CARRIERVET_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("CARRIERVET_STORAGE_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("CARRIERVET_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("CARRIERVET_REQUESTS_PER_MINUTE"); v != "" {
		if rpm, err := strconv.Atoi(v); err == nil {
			config.Extraction.RequestsPerMinute = rpm
		}
	}
	if v := os.Getenv("CARRIERVET_MAX_RETRIES"); v != "" {
		if retries, err := strconv.Atoi(v); err == nil {
			config.Extraction.MaxRetries = retries
		}
	}
	if v := os.Getenv("CARRIERVET_FMCSA_BASE_URL"); v != "" {
		config.FMCSA.BaseURL = v
	}
	if v := os.Getenv("CARRIERVET_GITHUB_TOKEN"); v != "" {
		config.GitHub.Token = v
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
