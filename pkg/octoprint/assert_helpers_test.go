// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/octolink/internal/octoprinttest"
)

// Test assertion helpers with "check" prefix.
// Using t.Helper() ensures error messages point to the calling line.

// checkStringEqual checks that got equals want, failing if not
func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

// checkIntEqual checks that got equals want
func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

// checkStringPtrNil checks that ptr is nil
func checkStringPtrNil(t *testing.T, fieldName string, ptr *string) {
	t.Helper()
	if ptr != nil {
		t.Errorf("%s should be nil, got %q", fieldName, *ptr)
	}
}

// checkStringPtrEqual checks that ptr is not nil and equals want
func checkStringPtrEqual(t *testing.T, fieldName string, ptr *string, want string) {
	t.Helper()
	if ptr == nil {
		t.Errorf("%s should not be nil, expected %q", fieldName, want)
		return
	}
	if *ptr != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, *ptr)
	}
}

// checkIntPtrEqual checks that ptr is not nil and equals want
func checkIntPtrEqual(t *testing.T, fieldName string, ptr *int, want int) {
	t.Helper()
	if ptr == nil {
		t.Errorf("%s should not be nil, expected %d", fieldName, want)
		return
	}
	if *ptr != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, *ptr)
	}
}

// checkInt64PtrEqual checks that ptr is not nil and equals want
func checkInt64PtrEqual(t *testing.T, fieldName string, ptr *int64, want int64) {
	t.Helper()
	if ptr == nil {
		t.Errorf("%s should not be nil, expected %d", fieldName, want)
		return
	}
	if *ptr != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, *ptr)
	}
}

// checkFloat64PtrEqual checks that ptr is not nil and equals want
func checkFloat64PtrEqual(t *testing.T, fieldName string, ptr *float64, want float64) {
	t.Helper()
	if ptr == nil {
		t.Errorf("%s should not be nil, expected %f", fieldName, want)
		return
	}
	if *ptr != want {
		t.Errorf("%s: expected %f, got %f", fieldName, want, *ptr)
	}
}

// checkNoError fails the test if err is not nil
func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// checkErrorContains fails the test if err is nil or doesn't contain substr
func checkErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", substr)
	}
	if got := err.Error(); !strings.Contains(got, substr) {
		t.Errorf("expected error containing %q, got %q", substr, got)
	}
}

// checkKind fails the test unless err is an *Error of the given kind
func checkKind(t *testing.T, err error, want Kind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if e.Kind != want {
		t.Fatalf("expected kind %s, got %s (%v)", want, e.Kind, err)
	}
	return e
}

// checkSliceLen checks that slice has expected length
func checkSliceLen(t *testing.T, name string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected length %d, got %d", name, want, got)
	}
}

// checkTrue checks that condition is true
func checkTrue(t *testing.T, description string, condition bool) {
	t.Helper()
	if !condition {
		t.Errorf("expected %s to be true", description)
	}
}

// newTestPrinter starts a fake host and a Printer pointed at it.
func newTestPrinter(t *testing.T) (*Printer, *octoprinttest.Server) {
	t.Helper()
	srv := octoprinttest.NewServer(t)
	p, err := NewBuilder(srv.Host(), octoprinttest.APIKey).Port(srv.Port()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p, srv
}

// lastRequest returns the most recent request received by srv.
func lastRequest(t *testing.T, srv *octoprinttest.Server) octoprinttest.Request {
	t.Helper()
	req, ok := srv.LastRequest()
	if !ok {
		t.Fatal("expected a request to reach the host, got none")
	}
	return req
}

var bg = context.Background()
