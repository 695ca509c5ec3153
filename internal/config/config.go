// Package config provides configuration loading and validation for the CLI and the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config represents the settings that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, then from Defaults.
type Config struct {
	// Storage
	DataDir     string `json:"data_dir,omitempty"`     // Directory of the file store
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL; when set, replaces the file store
	StoreKey    string `json:"store_key,omitempty"`    // Key the record is stored under

	// Server
	Addr string `json:"addr,omitempty"` // Listen address for serve

	// Logging
	LogMode string `json:"log_mode,omitempty"` // "development" or "production"
	Verbose bool   `json:"verbose,omitempty"`  // Debug level logging

	// Export
	OutputDir            string `json:"output_dir,omitempty"`             // Directory exported files are written to
	ChromePath           string `json:"chrome_path,omitempty"`            // Browser binary for exports
	ExportTimeoutSeconds int    `json:"export_timeout_seconds,omitempty"` // Upper bound for a single export
	SettleDelayMS        int    `json:"settle_delay_ms,omitempty"`        // Wait after fonts are ready, before capture
	SaveDelayMS          int    `json:"save_delay_ms,omitempty"`          // Debounce for text edits

	// Object storage upload (optional)
	S3 S3 `json:"s3,omitempty"`
}

// S3 configures uploading exports to an S3-compatible bucket such as Cloudflare R2.
type S3 struct {
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
}

// Enabled reports whether uploads are configured.
func (s S3) Enabled() bool {
	return strings.TrimSpace(s.Bucket) != ""
}

// Defaults returns the built-in settings.
func Defaults() Config {
	dataDir := ".resume-builder"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".resume-builder")
	}
	return Config{
		DataDir:              dataDir,
		StoreKey:             "resume_builder.v1",
		Addr:                 "127.0.0.1:8080",
		LogMode:              "development",
		OutputDir:            ".",
		ExportTimeoutSeconds: 60,
		SettleDelayMS:        250,
		SaveDelayMS:          300,
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

// ApplyEnv fills empty fields from environment variables using lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(dst *string, key string) {
		if *dst != "" {
			return
		}
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(dst *int, key string) error {
		if *dst != 0 {
			return nil
		}
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}

	str(&c.DataDir, "RESUME_DATA_DIR")
	str(&c.DatabaseURL, "DATABASE_URL")
	str(&c.StoreKey, "RESUME_STORE_KEY")
	str(&c.Addr, "RESUME_ADDR")
	str(&c.LogMode, "LOG_MODE")
	str(&c.OutputDir, "RESUME_OUTPUT_DIR")
	str(&c.ChromePath, "CHROME_PATH")
	str(&c.S3.Bucket, "S3_BUCKET")
	str(&c.S3.Prefix, "S3_PREFIX")
	str(&c.S3.Region, "S3_REGION")
	str(&c.S3.Endpoint, "S3_ENDPOINT")
	str(&c.S3.AccountID, "R2_ACCOUNT_ID")
	str(&c.S3.AccessKey, "R2_ACCESS_KEY")
	str(&c.S3.SecretKey, "R2_SECRET_KEY")

	if !c.Verbose {
		if v, ok := lookup("RESUME_VERBOSE"); ok {
			c.Verbose, _ = strconv.ParseBool(v)
		}
	}

	if err := num(&c.ExportTimeoutSeconds, "RESUME_EXPORT_TIMEOUT_SECONDS"); err != nil {
		return err
	}
	if err := num(&c.SettleDelayMS, "RESUME_SETTLE_DELAY_MS"); err != nil {
		return err
	}
	return num(&c.SaveDelayMS, "RESUME_SAVE_DELAY_MS")
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ExportTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'export_timeout_seconds' must be non-negative")
	}
	if c.SettleDelayMS < 0 {
		return fmt.Errorf("config error: 'settle_delay_ms' must be non-negative")
	}
	if c.SaveDelayMS < 0 {
		return fmt.Errorf("config error: 'save_delay_ms' must be non-negative")
	}

	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("config error: unknown log_mode %q", c.LogMode)
	}

	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	if c.S3.Enabled() && (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		return fmt.Errorf("config error: s3 access_key and secret_key must be set together")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.StoreKey == "" {
		result.StoreKey = defaults.StoreKey
	}
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if !result.S3.Enabled() {
		result.S3 = defaults.S3
	}

	// Int fields: use default if zero
	if result.ExportTimeoutSeconds == 0 {
		result.ExportTimeoutSeconds = defaults.ExportTimeoutSeconds
	}
	if result.SettleDelayMS == 0 {
		result.SettleDelayMS = defaults.SettleDelayMS
	}
	if result.SaveDelayMS == 0 {
		result.SaveDelayMS = defaults.SaveDelayMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ExportTimeout returns the export timeout as a duration.
func (c *Config) ExportTimeout() time.Duration {
	return time.Duration(c.ExportTimeoutSeconds) * time.Second
}

// SettleDelay returns the settle delay as a duration.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// SaveDelay returns the text edit debounce as a duration.
func (c *Config) SaveDelay() time.Duration {
	return time.Duration(c.SaveDelayMS) * time.Millisecond
}
