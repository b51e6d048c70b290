package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the email collector.
type Config struct {
	// Upstream profile service settings
	Instagram InstagramConfig `yaml:"instagram" json:"instagram"`

	// External link crawling settings
	Crawl CrawlConfig `yaml:"crawl" json:"crawl"`

	// Batch processing settings
	Batch BatchConfig `yaml:"batch" json:"batch"`

	// Upstream request pacing
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Result export settings
	Export ExportConfig `yaml:"export" json:"export"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InstagramConfig holds settings for the unauthenticated profile fetcher.
type InstagramConfig struct {
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// CrawlConfig holds settings for crawling external profile links.
type CrawlConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// BatchConfig holds settings for batch profile processing.
type BatchConfig struct {
	// Delay is the pause applied before each profile (and grown by the
	// backoff multiplier between retry attempts).
	Delay time.Duration `yaml:"delay" json:"delay"`
	// MaxAttempts is the per-profile retry budget.
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`
	// Limit caps how many profiles one run processes.
	Limit int `yaml:"limit" json:"limit"`
	// BackoffMultiplier grows the delay between attempts.
	BackoffMultiplier float64 `yaml:"backoff_multiplier" json:"backoff_multiplier"`
}

// RateLimitConfig paces requests against the upstream service.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// ExportConfig holds result export settings.
type ExportConfig struct {
	Directory string `yaml:"directory" json:"directory"`
	Format    string `yaml:"format" json:"format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Instagram: InstagramConfig{
			UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			RequestTimeout: 15 * time.Second,
		},
		Crawl: CrawlConfig{
			Timeout:   10 * time.Second,
			UserAgent: "Mozilla/5.0 (compatible; EmailCollector/1.0)",
		},
		Batch: BatchConfig{
			Delay:             time.Second,
			MaxAttempts:       2,
			Limit:             100,
			BackoffMultiplier: 1.5,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Export: ExportConfig{
			Directory: "./results",
			Format:    "csv",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from all sources in precedence order:
// defaults, then config file, then environment, then explicit flags.
func Load(path string, flags map[string]interface{}) (*Config, error) {
	cfg := DefaultConfig()

	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg.MergeFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file. An empty path falls
// back to the standard locations; finding none is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func findConfigFile() string {
	locations := []string{
		".igcollector.yaml",
		".igcollector.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "igcollector", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".igcollector.yaml"),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// LoadFromEnv applies IGCOLLECTOR_* environment overrides.
func (c *Config) LoadFromEnv() error {
	if ua := os.Getenv("IGCOLLECTOR_USER_AGENT"); ua != "" {
		c.Instagram.UserAgent = ua
	}
	if v := os.Getenv("IGCOLLECTOR_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid IGCOLLECTOR_DELAY: %w", err)
		}
		c.Batch.Delay = d
	}
	if v := os.Getenv("IGCOLLECTOR_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Batch.MaxAttempts = n
		}
	}
	if v := os.Getenv("IGCOLLECTOR_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Batch.Limit = n
		}
	}
	if v := os.Getenv("IGCOLLECTOR_REQUESTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimit.RequestsPerMinute = n
		}
	}
	if dir := os.Getenv("IGCOLLECTOR_EXPORT_DIR"); dir != "" {
		c.Export.Directory = dir
	}
	if lvl := os.Getenv("IGCOLLECTOR_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	return nil
}

// MergeFlags merges command line flag values into the configuration.
func (c *Config) MergeFlags(flags map[string]interface{}) {
	if flags == nil {
		return
	}
	if delay, ok := flags["delay"].(time.Duration); ok {
		c.Batch.Delay = delay
	}
	if attempts, ok := flags["max-attempts"].(int); ok && attempts > 0 {
		c.Batch.MaxAttempts = attempts
	}
	if limit, ok := flags["limit"].(int); ok && limit > 0 {
		c.Batch.Limit = limit
	}
	if timeout, ok := flags["crawl-timeout"].(time.Duration); ok && timeout > 0 {
		c.Crawl.Timeout = timeout
	}
	if rpm, ok := flags["requests-per-minute"].(int); ok && rpm > 0 {
		c.RateLimit.RequestsPerMinute = rpm
	}
	if dir, ok := flags["output"].(string); ok && dir != "" {
		c.Export.Directory = dir
	}
	if format, ok := flags["format"].(string); ok && format != "" {
		c.Export.Format = format
	}
	if lvl, ok := flags["log-level"].(string); ok && lvl != "" {
		c.Logging.Level = lvl
	}
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	var errs []error

	if c.Batch.Delay < 0 || c.Batch.Delay > 5*time.Second {
		errs = append(errs, errors.New("delay must be between 0 and 5 seconds"))
	}
	if c.Batch.MaxAttempts < 1 || c.Batch.MaxAttempts > 5 {
		errs = append(errs, errors.New("max attempts must be between 1 and 5"))
	}
	if c.Batch.Limit < 1 || c.Batch.Limit > 2000 {
		errs = append(errs, errors.New("limit must be between 1 and 2000"))
	}
	if c.Batch.BackoffMultiplier < 1 {
		errs = append(errs, errors.New("backoff multiplier must be at least 1"))
	}
	if c.Crawl.Timeout < time.Second || c.Crawl.Timeout > 15*time.Second {
		errs = append(errs, errors.New("crawl timeout must be between 1 and 15 seconds"))
	}
	if c.Instagram.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.Export.Directory == "" {
		errs = append(errs, errors.New("export directory is required"))
	}

	switch strings.ToLower(c.Export.Format) {
	case "csv", "json":
	default:
		errs = append(errs, errors.New("export format must be csv or json"))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
