// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/CodePeacock/pdf-parser/internal/fetch"
	"github.com/CodePeacock/pdf-parser/internal/reference"
)

// Default reference endpoints.
const (
	DefaultSkillsURL       = "https://api.npoint.io/81a5d37fea0d63fea458"
	DefaultDesignationsURL = "https://api.npoint.io/5bb9a9836361d1fc9396"
)

// Duration is a time.Duration that reads from JSON as "30s" or as a number
// of seconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", data)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the configuration loaded from a JSON file, the
// environment and CLI flags. Zero values are filled from Default.
type Config struct {
	// Reference data
	SkillsURL               string   `json:"skills_url,omitempty" validate:"required,url"`
	DesignationsURL         string   `json:"designations_url,omitempty" validate:"required,url"`
	ReferenceCacheDir       string   `json:"reference_cache_dir,omitempty" validate:"required"`
	FetchTimeout            Duration `json:"fetch_timeout,omitempty" validate:"gt=0"`
	DesignationPollInterval Duration `json:"designation_poll_interval,omitempty" validate:"gt=0"`
	DesignationMaxAttempts  int      `json:"designation_max_attempts,omitempty" validate:"gt=0"`

	// Extraction
	AliasesPath string `json:"aliases_path,omitempty"` // Section alias YAML; empty uses the built-in table
	OutDir      string `json:"out_dir,omitempty"`
	Concurrency int    `json:"concurrency,omitempty" validate:"gte=0,lte=64"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=text json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SkillsURL:               DefaultSkillsURL,
		DesignationsURL:         DefaultDesignationsURL,
		ReferenceCacheDir:       ".",
		FetchTimeout:            Duration(fetch.DefaultTimeout),
		DesignationPollInterval: Duration(reference.DefaultRetryPolicy.Delay),
		DesignationMaxAttempts:  reference.DefaultRetryPolicy.MaxAttempts,
		Concurrency:             1,
		Port:                    8080,
		LogLevel:                "info",
		LogFormat:               "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the file at path (optional),
// then environment overrides, then defaults for anything still unset.
// The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("SKILLS_URL", &c.SkillsURL)
	str("DESIGNATIONS_URL", &c.DesignationsURL)
	str("REFERENCE_CACHE_DIR", &c.ReferenceCacheDir)
	str("ALIASES_PATH", &c.AliasesPath)
	str("DATABASE_URL", &c.DatabaseURL)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)

	var errs []error
	dur := func(key string, dst *Duration) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config error: %s: %w", key, err))
			return
		}
		*dst = Duration(parsed)
	}
	num := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config error: %s: %w", key, err))
			return
		}
		*dst = n
	}
	dur("FETCH_TIMEOUT", &c.FetchTimeout)
	dur("DESIGNATION_POLL_INTERVAL", &c.DesignationPollInterval)
	num("DESIGNATION_MAX_ATTEMPTS", &c.DesignationMaxAttempts)
	num("PORT", &c.Port)

	return errors.Join(errs...)
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.AliasesPath != "" {
		if _, err := os.Stat(c.AliasesPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: aliases file not found: %s", c.AliasesPath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SkillsURL == "" {
		result.SkillsURL = defaults.SkillsURL
	}
	if result.DesignationsURL == "" {
		result.DesignationsURL = defaults.DesignationsURL
	}
	if result.ReferenceCacheDir == "" {
		result.ReferenceCacheDir = defaults.ReferenceCacheDir
	}
	if result.AliasesPath == "" {
		result.AliasesPath = defaults.AliasesPath
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.FetchTimeout == 0 {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.DesignationPollInterval == 0 {
		result.DesignationPollInterval = defaults.DesignationPollInterval
	}
	if result.DesignationMaxAttempts == 0 {
		result.DesignationMaxAttempts = defaults.DesignationMaxAttempts
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// SkillsSource is the reference source for the skill list.
func (c *Config) SkillsSource() reference.Source {
	return reference.Source{
		Kind:      reference.Skills,
		URL:       c.SkillsURL,
		CachePath: filepath.Join(c.ReferenceCacheDir, reference.Skills.DefaultCacheFile()),
	}
}

// DesignationsSource is the reference source for the designation list.
func (c *Config) DesignationsSource() reference.Source {
	return reference.Source{
		Kind:      reference.Designations,
		URL:       c.DesignationsURL,
		CachePath: filepath.Join(c.ReferenceCacheDir, reference.Designations.DefaultCacheFile()),
	}
}

// RetryPolicy is the polling policy for the designation list.
func (c *Config) RetryPolicy() reference.RetryPolicy {
	return reference.RetryPolicy{
		Delay:       time.Duration(c.DesignationPollInterval),
		MaxAttempts: c.DesignationMaxAttempts,
	}
}

// FetchOptions are the HTTP options for reference downloads.
func (c *Config) FetchOptions() *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.Timeout = time.Duration(c.FetchTimeout)
	return opts
}
