// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

/*
Package octoprint provides a typed client for the OctoPrint REST API.

The package covers version info, connection management, file listing and
management, job control, and printer telemetry and commands for the tool,
bed, printhead and SD card.

# Quick Start

	printer, err := octoprint.NewBuilder("octopi.local", apiKey).
	    Port(80).
	    Timeout(10 * time.Second).
	    Build()
	if err != nil {
	    return err
	}

	job, err := printer.GetJob(ctx)
	if err != nil {
	    return err
	}
	fmt.Println(job.State)

# Errors

Every failed call returns an *Error carrying exactly one Kind:

  - KindTransport: no HTTP response was received
  - KindServer: the host answered 5xx
  - KindBadRequest: the host answered 400, or a command failed client-side validation
  - KindConflict: the host answered 409 (printer not operational, busy, etc.)
  - KindNotFound: the host answered 404 for an addressed file or resource
  - KindParse: a 2xx body did not match the expected payload shape
  - KindUnexpectedStatus: the host answered with a status the operation does not document

Sentinel errors allow matching with errors.Is:

	if errors.Is(err, octoprint.ErrConflict) {
	    // printer busy, try later
	}

Parse failures carry the structural path of the first mismatch, for example
"files[2].gcodeAnalysis.filament", so that drift in the host's payload
shape can be located without a packet capture.

# Commands

Commands are closed families of small structs (ConnectCommand, JogCommand,
ToolTargetCommand, ...). Each family encodes to one flat wire record whose
unset fields are omitted. Range constraints such as the feedrate factor
are checked before any request is sent.

# Resilience

CircuitBreakerClient wraps any PrinterAPI with sony/gobreaker. Only
transport failures, 5xx answers and undocumented statuses count against
the breaker; 4xx answers describe the printer's state, not its health.

# Thread Safety

A Printer holds only immutable configuration and may be shared by any
number of goroutines. The library keeps no cache and never retries.
*/
package octoprint
