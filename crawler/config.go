package crawler

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxPages is the hard cap on the number of pages visited in one crawl.
const MaxPages = 1000

const defaultUserAgent = "linkscout/1.0 (+https://github.com/scoutlab/linkscout)"

// Config holds engine configuration.
type Config struct {
	SeedURL        string        // Starting URL; a missing scheme is filled with https
	MaxRetries     int           // Attempts per request before giving up (default 3)
	TimeoutSeconds int           // Per-attempt deadline in seconds (default 10)
	MaxConcurrent  int           // Admission gate size shared by both phases (default 5)
	RetryDelay     time.Duration // Fixed pause between attempts (default 500ms)
	RequestTimeout time.Duration // Per-attempt deadline; overrides TimeoutSeconds when set
	UserAgent      string
}

// DefaultConfig returns a Config with the engine defaults.
func DefaultConfig(seedURL string) Config {
	return Config{
		SeedURL:        seedURL,
		MaxRetries:     3,
		TimeoutSeconds: 10,
		MaxConcurrent:  5,
		RetryDelay:     500 * time.Millisecond,
		UserAgent:      defaultUserAgent,
	}
}

// timeout returns the effective per-attempt deadline.
func (c Config) timeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// fileConfig mirrors the YAML config file. Pointer fields so that absent keys
// leave the base configuration untouched.
type fileConfig struct {
	MaxRetries     *int    `yaml:"max_retries"`
	TimeoutSeconds *int    `yaml:"timeout_seconds"`
	MaxConcurrent  *int    `yaml:"max_concurrent"`
	UserAgent      *string `yaml:"user_agent"`
}

// LoadConfig overlays the YAML file at path onto base. Fields the file sets
// win over base; everything else passes through.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.MaxRetries != nil {
		base.MaxRetries = *fc.MaxRetries
	}
	if fc.TimeoutSeconds != nil {
		base.TimeoutSeconds = *fc.TimeoutSeconds
	}
	if fc.MaxConcurrent != nil {
		base.MaxConcurrent = *fc.MaxConcurrent
	}
	if fc.UserAgent != nil {
		base.UserAgent = *fc.UserAgent
	}
	return base, nil
}
