// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Auth holds the secret-key acceptance policy.
	Auth Auth `envPrefix:"AUTH_"`

	// RateLimit bounds how many requests a single key may issue per window.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Workers holds configuration for the client-side background sync worker.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after environment
	// variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds network and timeout settings for the inbound HTTP layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on, in
	// "host:port" format (e.g. "0.0.0.0:3001").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups configuration for the persistence backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the document store.
type DB struct {
	// DSN selects and configures the backend. A "postgres://" (or
	// "postgresql://") URI opens PostgreSQL; anything else is treated as
	// a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Auth holds the secret-key acceptance policy enforced by the auth gate.
type Auth struct {
	// MinSecretKeyLength is the minimum number of characters a secret key
	// must have to be considered well-formed. Shorter or missing keys are
	// rejected with the same response, so callers cannot distinguish the
	// two cases.
	// Env: AUTH_MIN_SECRET_KEY_LENGTH
	MinSecretKeyLength int `env:"MIN_SECRET_KEY_LENGTH"`
}

// RateLimit configures the per-key request limiter. These are operational
// abuse-protection knobs, not part of the protocol contract.
type RateLimit struct {
	// MaxRequests is the number of requests a single key may issue within
	// one window.
	// Env: RATE_LIMIT_MAX_REQUESTS
	MaxRequests int `env:"MAX_REQUESTS"`

	// Window is the length of the rate-limit window (e.g. "1m").
	// Env: RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`
}

// Workers holds configuration for the client-side background sync worker.
type Workers struct {
	// SyncInterval is how often the background worker pushes the local
	// snapshot (e.g. "5m"). Used by cmd/client only.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Defaults applied after all sources are merged. The rate-limit and key
// policy values mirror what production clients already expect.
const (
	DefaultHTTPAddress        = "0.0.0.0:3001"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultDSN                = "onda-sync.db"
	DefaultMinSecretKeyLength = 8
	DefaultRateLimitRequests  = 60
	DefaultRateLimitWindow    = time.Minute
)

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for any field it sets):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults fill any field still unset after the merge.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Auth.MinSecretKeyLength == 0 {
		cfg.Auth.MinSecretKeyLength = DefaultMinSecretKeyLength
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = DefaultRateLimitRequests
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = DefaultRateLimitWindow
	}
}
