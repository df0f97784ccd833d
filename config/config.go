// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Extraction collaborator
	ExtractionURL     string
	ExtractionTimeout time.Duration

	// Report defaults
	DefaultTaxPercent float64

	// Upload limits
	MaxUploadMB int64
}

func Load() *Config {
	return &Config{
		ExtractionURL:     getEnv("QUOTES_EXTRACTION_URL", ""),
		ExtractionTimeout: getEnvDuration("QUOTES_EXTRACTION_TIMEOUT", 180*time.Second),
		DefaultTaxPercent: getEnvFloat("QUOTES_DEFAULT_TAX_PERCENT", 12.0),
		MaxUploadMB:       int64(getEnvInt("QUOTES_MAX_UPLOAD_MB", 10)),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.ExtractionURL != "" {
		parsed, err := url.Parse(c.ExtractionURL)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid extraction URL %q: %v", c.ExtractionURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errs = append(errs, fmt.Sprintf("invalid extraction URL scheme %q: must be http or https", parsed.Scheme))
		}
	}

	if c.ExtractionTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid extraction timeout %v: must be at least 1 second", c.ExtractionTimeout))
	} else if c.ExtractionTimeout > time.Hour {
		errs = append(errs, fmt.Sprintf("invalid extraction timeout %v: must be at most 1 hour", c.ExtractionTimeout))
	}

	if c.DefaultTaxPercent < 0 {
		errs = append(errs, fmt.Sprintf("invalid default tax percent %v: must be >= 0", c.DefaultTaxPercent))
	}

	if c.MaxUploadMB < 1 || c.MaxUploadMB > 100 {
		errs = append(errs, fmt.Sprintf("invalid max upload size %dMB: must be between 1 and 100", c.MaxUploadMB))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
