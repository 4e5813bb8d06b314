package config

import (
	"errors"
	"flag"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return a.Host + ":" + strconv.Itoa(a.Port)
}

func (a *NetAddress) Set(value string) error {
	host, portString, found := strings.Cut(value, ":")
	if !found {
		return errors.New("need address in a form host:port")
	}

	port, err := strconv.Atoi(portString)
	if err != nil {
		return err
	}

	a.Host = host
	a.Port = port
	return nil
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-cache-path sqlite payload cache path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-restore-timeout restore computation budget (e.g., "30s")
//	-restore-cache-disabled disable the restore payload cache
//	-cleanliness-sample-probability probability of a sampled full recompute
//	-footprint-depth-cap footprint traversal depth cap
//	-toggles per-domain feature toggles YAML path
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var cachePath string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var requestTimeout time.Duration
	var restoreTimeout time.Duration
	var restoreCacheDisabled bool
	var sampleProbability float64
	var depthCap int
	var togglesPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&cachePath, "cache-path", "", "SQLite payload cache path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&restoreTimeout, "restore-timeout", 0, "Restore computation budget (e.g., 30s)")
	flag.BoolVar(&restoreCacheDisabled, "restore-cache-disabled", false, "Disable restore payload cache")
	flag.Float64Var(&sampleProbability, "cleanliness-sample-probability", 0, "Sampled recompute probability (0..1)")
	flag.IntVar(&depthCap, "footprint-depth-cap", 0, "Footprint traversal depth cap")
	flag.StringVar(&togglesPath, "toggles", "", "Per-domain feature toggles YAML path")

	flag.Parse()

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Storage: Storage{
			DB:    DBConfig{DSN: databaseDSN},
			Cache: Cache{Path: cachePath},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Restore: Restore{
			Timeout:       restoreTimeout,
			CacheDisabled: restoreCacheDisabled,
		},
		Cleanliness: Cleanliness{
			SampleProbability: sampleProbability,
			FootprintDepthCap: depthCap,
			TogglesPath:       togglesPath,
		},
		jsonFilePath: jsonConfigPath,
	}

	return cfg
}
