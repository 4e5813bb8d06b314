// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the casesync
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and
	// the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// relational database and the local payload cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Restore holds the knobs of the restore engine.
	Restore Restore `envPrefix:"RESTORE_"`

	// Cleanliness holds the knobs of the ownership-cleanliness tracker.
	Cleanliness Cleanliness `envPrefix:"CLEANLINESS_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// jsonFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	jsonFilePath string
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to verify device JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim expected on every device token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token remains valid
	// (e.g. "24h"). Only used by the token-issuing helper endpoints.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application,
	// exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DBConfig `envPrefix:"DB_"`

	// Cache holds the local payload-cache settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// DBConfig holds the relational database connection settings.
type DBConfig struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DSN (or DATABASE_URI via flags/JSON).
	DSN string `env:"DSN"`
}

// Cache holds settings for the SQLite-backed response payload cache.
type Cache struct {
	// Path is the SQLite database file holding cached restore payloads.
	// ":memory:" keeps the cache process-local.
	// Env: STORAGE_CACHE_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the total handling time of one inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Restore holds the restore-engine knobs.
type Restore struct {
	// Timeout is the wall-clock budget of one restore computation. A
	// computation exceeding it aborts cleanly with a retryable timeout
	// error and persists nothing.
	// Env: RESTORE_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// CacheDisabled turns the cached-payload short-circuit off globally.
	// Caching is on by default.
	// Env: RESTORE_CACHE_DISABLED
	CacheDisabled bool `env:"CACHE_DISABLED"`
}

// Cleanliness holds the ownership-cleanliness tracker knobs.
type Cleanliness struct {
	// SampleProbability is the chance, per non-forced recompute request,
	// that a full flag recompute actually runs. Bounds the recomputation
	// cost of the incremental maintenance path. Forced recomputes ignore
	// it.
	// Env: CLEANLINESS_SAMPLE_PROBABILITY
	SampleProbability float64 `env:"SAMPLE_PROBABILITY"`

	// FootprintDepthCap bounds the footprint traversal depth as a safety
	// net against pathological index chains. Hitting the cap logs a
	// data-quality diagnostic; it is not an error.
	// Env: CLEANLINESS_FOOTPRINT_DEPTH_CAP
	FootprintDepthCap int `env:"FOOTPRINT_DEPTH_CAP"`

	// TogglesPath is the optional YAML file with per-domain feature
	// switches. The file is watched and hot-reloaded.
	// Env: CLEANLINESS_TOGGLES_PATH
	TogglesPath string `env:"TOGGLES_PATH"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RecomputeQueueSize bounds the queue of pending (domain, owner)
	// cleanliness recomputes. A full queue drops the sampled recompute;
	// eventual correction is guaranteed by later samples.
	// Env: WORKERS_RECOMPUTE_QUEUE_SIZE
	RecomputeQueueSize int `env:"RECOMPUTE_QUEUE_SIZE"`
}

// Defaults applied by [GetStructuredConfig] when neither env, flags nor the
// JSON file set a value.
const (
	DefaultHTTPAddress       = "localhost:8080"
	DefaultRequestTimeout    = 60 * time.Second
	DefaultRestoreTimeout    = 30 * time.Second
	DefaultSampleProbability = 0.01
	DefaultDepthCap          = 500
	DefaultQueueSize         = 1024
)

// GetStructuredConfig builds the final configuration by merging, in order of
// precedence: command-line flags, environment variables, and the optional
// JSON file. Defaults are applied last.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withFlags().
		withEnv().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, cfg.validate()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Restore.Timeout == 0 {
		cfg.Restore.Timeout = DefaultRestoreTimeout
	}
	if cfg.Cleanliness.SampleProbability == 0 {
		cfg.Cleanliness.SampleProbability = DefaultSampleProbability
	}
	if cfg.Cleanliness.FootprintDepthCap == 0 {
		cfg.Cleanliness.FootprintDepthCap = DefaultDepthCap
	}
	if cfg.Workers.RecomputeQueueSize == 0 {
		cfg.Workers.RecomputeQueueSize = DefaultQueueSize
	}
}
