// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/octolink/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validatePrinter(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validatePrinter validates the OctoPrint host settings
func (c *Config) validatePrinter() error {
	if strings.TrimSpace(c.Printer.Host) == "" {
		return fmt.Errorf("OCTOPRINT_HOST is required")
	}
	if c.Printer.APIKey == "" {
		return fmt.Errorf("OCTOPRINT_API_KEY is required")
	}
	if c.Printer.Port < 1 || c.Printer.Port > 65535 {
		return fmt.Errorf("OCTOPRINT_PORT must be between 1 and 65535, got %d", c.Printer.Port)
	}
	if c.Printer.Timeout <= 0 {
		return fmt.Errorf("OCTOPRINT_TIMEOUT must be positive, got %v", c.Printer.Timeout)
	}
	if c.Printer.RateLimit < 0 {
		return fmt.Errorf("OCTOPRINT_RATE_LIMIT must not be negative, got %v", c.Printer.RateLimit)
	}
	if c.Printer.RateLimit > 0 && c.Printer.RateBurst < 1 {
		return fmt.Errorf("OCTOPRINT_RATE_BURST must be at least 1 when OCTOPRINT_RATE_LIMIT is set")
	}
	return nil
}

// validateBreaker validates circuit breaker settings (only if enabled)
func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("OCTOPRINT_BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout < 0 || c.Breaker.Interval < 0 {
		return fmt.Errorf("OCTOPRINT_BREAKER_TIMEOUT and OCTOPRINT_BREAKER_INTERVAL must not be negative")
	}
	return nil
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, off")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
