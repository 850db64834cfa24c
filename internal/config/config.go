// Package config loads engine settings from an optional YAML file plus
// environment overrides. A missing file yields defaults; a malformed file is
// an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full engine configuration. Durations are strings in the file
// ("5m", "1h") and parsed on access.
type Config struct {
	Gemini struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"gemini"`

	Cache struct {
		MaxSize int    `yaml:"max_size"`
		TTL     string `yaml:"ttl"`
	} `yaml:"cache"`

	Pending struct {
		TTL      string `yaml:"ttl"`
		Capacity int    `yaml:"capacity"`
	} `yaml:"pending"`

	Quota struct {
		DailyLimit int    `yaml:"daily_limit"`
		StorePath  string `yaml:"store_path"`
	} `yaml:"quota"`

	HistoryLimit int `yaml:"history_limit"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	c.Gemini.Model = "gemini-1.5-flash"
	c.Gemini.Timeout = "30s"
	c.Cache.MaxSize = 100
	c.Cache.TTL = "1h"
	c.Pending.TTL = "5m"
	c.Pending.Capacity = 10
	c.Quota.DailyLimit = 1500
	c.HistoryLimit = 20
	return c
}

// Load reads the YAML file at path (missing file is fine), loads a local
// .env if present, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	// Best-effort: a developer .env feeds the same overrides.
	_ = godotenv.Load()

	if v := os.Getenv("VENEZIA_GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("VENEZIA_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("VENEZIA_DAILY_QUOTA"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("VENEZIA_DAILY_QUOTA: %w", err)
		}
		cfg.Quota.DailyLimit = n
	}
	if v := os.Getenv("VENEZIA_QUOTA_STORE"); v != "" {
		cfg.Quota.StorePath = v
	}

	return cfg, nil
}

// GeminiTimeout parses the Gemini HTTP timeout.
func (c Config) GeminiTimeout() time.Duration { return parseDuration(c.Gemini.Timeout, 30*time.Second) }

// CacheTTL parses the response cache TTL.
func (c Config) CacheTTL() time.Duration { return parseDuration(c.Cache.TTL, time.Hour) }

// PendingTTL parses the confirmation window.
func (c Config) PendingTTL() time.Duration { return parseDuration(c.Pending.TTL, 5*time.Minute) }

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
