// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

// Package logging provides centralized zerolog-based structured logging for Octolink.
//
// # Quick Start
//
//	import "github.com/tomtom215/octolink/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Debug().Str("printer", host).Msg("connected")
//	logging.Ctx(ctx).Debug().Int("status", 204).Msg("printer response")
//
// # Configuration
//
// The CLI maps these settings from internal/config:
//   - LOG_LEVEL: trace, debug, info, warn, error, disabled (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// # Request IDs
//
// Every printer exchange carries an X-Request-Id header. If the caller's
// context already holds a request ID (ContextWithRequestID), it is reused,
// otherwise EnsureRequestID generates one. Ctx and CtxWith add request_id
// and correlation_id fields automatically.
//
// # Secrets
//
// API keys never appear in log output. SanitizeToken, SanitizeValue and
// SanitizeURL mask secrets for the few places where a value might.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Warn().Str("key", "value").Msg("message")  // Correct
//	logging.Warn().Str("key", "value")                 // WRONG - log not emitted
package logging
