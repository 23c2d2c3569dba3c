// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package config

import "time"

// Config holds all configuration for the octolink CLI.
type Config struct {
	Printer PrinterConfig `koanf:"printer"`
	Breaker BreakerConfig `koanf:"breaker"`
	Logging LoggingConfig `koanf:"logging"`
}

// PrinterConfig holds the OctoPrint host connection settings.
//
// Environment Variables:
//   - OCTOPRINT_HOST: host name or IP, optionally with http:// or https:// (required)
//   - OCTOPRINT_PORT: TCP port (default: 80)
//   - OCTOPRINT_API_KEY: application or global API key (required)
//   - OCTOPRINT_TIMEOUT: per-request timeout (default: 30s)
//   - OCTOPRINT_RATE_LIMIT: max requests per second, 0 disables (default: 0)
//   - OCTOPRINT_RATE_BURST: requests allowed at once above the rate (default: 1)
type PrinterConfig struct {
	Host      string        `koanf:"host"`
	Port      int           `koanf:"port"`
	APIKey    string        `koanf:"api_key"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`
	RateBurst int           `koanf:"rate_burst"`
}

// BreakerConfig holds circuit breaker settings for printer calls.
//
// Environment Variables:
//   - OCTOPRINT_BREAKER_ENABLED: wrap the client in a circuit breaker (default: true)
//   - OCTOPRINT_BREAKER_MAX_REQUESTS: trial requests while half-open (default: 3)
//   - OCTOPRINT_BREAKER_INTERVAL: counting window while closed (default: 1m)
//   - OCTOPRINT_BREAKER_TIMEOUT: open duration before probing (default: 2m)
//   - OCTOPRINT_BREAKER_MIN_REQUESTS: requests before the ratio applies (default: 10)
//   - OCTOPRINT_BREAKER_FAILURE_RATIO: ratio that opens the circuit (default: 0.6)
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// LoggingConfig holds structured logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error, off (default: info; case-insensitive)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is the output format: json or console. Logs always go to
	// stderr; stdout carries command output only.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}
