// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

// Package validation provides struct validation using go-playground/validator v10.
//
// Printer commands are validated here before they are encoded, so that a
// value the host would reject (a feedrate factor of 3.0, an empty axis list)
// never costs a round trip.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - A custom "toolname" tag for tool<N> identifiers
//   - Human-readable error messages
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type FeedrateCommand struct {
//	    Factor float64 `validate:"gte=0.5,lte=2"`
//	}
//
//	if verr := validation.ValidateStruct(cmd); verr != nil {
//	    fmt.Println(verr.Fields(), verr.Error())
//	}
//
// # Custom Validation Tags
//
//   - toolname: string matching ^tool[0-9]+$; usable on map keys with
//     dive,keys,toolname,endkeys
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
