// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the class of a failed call. Exactly one Kind is produced
// per failed call.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors not produced by this package.
	KindUnknown Kind = iota
	KindTransport
	KindServer
	KindBadRequest
	KindConflict
	KindNotFound
	KindParse
	KindUnexpectedStatus
)

// String returns the stable snake_case name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport_failure"
	case KindServer:
		return "server_error"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindParse:
		return "parse_failure"
	case KindUnexpectedStatus:
		return "unexpected_status"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is matching against an *Error.
var (
	ErrTransport        = errors.New("octoprint: transport failure")
	ErrServer           = errors.New("octoprint: server error")
	ErrBadRequest       = errors.New("octoprint: bad request")
	ErrConflict         = errors.New("octoprint: conflict")
	ErrNotFound         = errors.New("octoprint: not found")
	ErrParse            = errors.New("octoprint: parse failure")
	ErrUnexpectedStatus = errors.New("octoprint: unexpected status")
)

func (k Kind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindServer:
		return ErrServer
	case KindBadRequest:
		return ErrBadRequest
	case KindConflict:
		return ErrConflict
	case KindNotFound:
		return ErrNotFound
	case KindParse:
		return ErrParse
	case KindUnexpectedStatus:
		return ErrUnexpectedStatus
	default:
		return nil
	}
}

// Error is returned by every Printer operation that fails.
type Error struct {
	// Op is the operation name, e.g. "get files".
	Op string

	Kind Kind

	// StatusCode is the HTTP status answered by the host, or 0 when no
	// response was received or the call was rejected before sending.
	StatusCode int

	// Body is the raw response text for status-classified failures,
	// truncated to maxErrorBodySize.
	Body string

	// Path is the structural location of a parse failure, e.g.
	// "files[2].gcodeAnalysis.filament". Empty for other kinds.
	Path string

	// Fields names the command or query fields that failed local
	// validation, e.g. ["Factor"]. Empty for other kinds.
	Fields []string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("octoprint: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}

	switch e.Kind {
	case KindParse:
		fmt.Fprintf(&b, "parse failure at %s", displayPath(e.Path))
		if e.Err != nil {
			var se *ShapeError
			if errors.As(e.Err, &se) {
				b.WriteString(": ")
				b.WriteString(se.Reason)
			} else {
				b.WriteString(": ")
				b.WriteString(e.Err.Error())
			}
		}
		return b.String()
	case KindUnexpectedStatus:
		fmt.Fprintf(&b, "unexpected status %d", e.StatusCode)
	case KindTransport:
		b.WriteString("transport failure")
	default:
		b.WriteString(strings.ReplaceAll(e.Kind.String(), "_", " "))
		if e.StatusCode != 0 {
			fmt.Fprintf(&b, " (status %d)", e.StatusCode)
		}
	}

	switch {
	case e.Body != "":
		b.WriteString(": ")
		b.WriteString(e.Body)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause so that context and network errors
// remain matchable with errors.Is.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of err if it is or wraps an *Error, and
// KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
