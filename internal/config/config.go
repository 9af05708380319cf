// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct, built once at startup
// and passed to the components that need it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the last-resort backend address used when neither a
// runtime nor a build-time value is available.
const DefaultAPIURL = "http://localhost:8000"

// BuildAPIURL is the build-time backend address. Set it with
//
//	go build -ldflags "-X folio/internal/config.BuildAPIURL=https://api.example.com"
var BuildAPIURL = ""

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Blog backend
	APIURL     string
	APITimeout time.Duration

	// Site profile (About page). Empty means the embedded default.
	SiteFile string

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json
	LogFile   string // optional rotated log file

	// Valkey (Redis-compatible cache). Empty host disables the page cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	PageCacheTTL   time.Duration

	// Per-IP rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. An optional dotenv file (ENV_FILE,
// default ".env") is loaded first; variables already set in the process
// environment win. Returns an error if a value cannot be parsed or if
// critical values are missing in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(envOrDefault("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		APIURL: ResolveAPIURL(os.Getenv("API_URL"), BuildAPIURL),

		SiteFile: os.Getenv("SITE_FILE"),

		LogLevel:  envOrDefault("LOG_LEVEL", "debug"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
		LogFile:   os.Getenv("LOG_FILE"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var err error
	if cfg.APITimeout, err = durationOrDefault("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.PageCacheTTL, err = durationOrDefault("PAGE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = floatOrDefault("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = intOrDefault("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}

	if cfg.Env == "production" {
		if cfg.APIURL == DefaultAPIURL {
			return nil, fmt.Errorf("API_URL must be set in production")
		}
	}

	return cfg, nil
}

// ResolveAPIURL applies the backend address resolution order: the runtime
// value injected at process start, then the build-time value, then
// DefaultAPIURL.
func ResolveAPIURL(runtime, build string) string {
	if runtime != "" {
		return runtime
	}
	if build != "" {
		return build
	}
	return DefaultAPIURL
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host was configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func floatOrDefault(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
