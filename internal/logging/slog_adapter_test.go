// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func withGlobalLevel(t *testing.T, level zerolog.Level) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(level)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestSlogLogger_WritesThroughZerolog(t *testing.T) {
	withGlobalLevel(t, zerolog.TraceLevel)

	var buf bytes.Buffer
	slogger := NewSlogLogger(zerolog.New(&buf))
	slogger.Warn("service restarted",
		"service", "job-poller",
		"attempt", 3,
		"backoff", 2*time.Second,
		"ok", false,
	)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"message":"service restarted"`,
		`"service":"job-poller"`,
		`"attempt":3`,
		`"ok":false`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output: %s", want, out)
		}
	}
}

func TestSlogLogger_AttrsAndGroups(t *testing.T) {
	withGlobalLevel(t, zerolog.TraceLevel)

	var buf bytes.Buffer
	slogger := NewSlogLogger(zerolog.New(&buf)).
		With("supervisor", "octolink").
		WithGroup("event")
	slogger.Info("terminated", slog.Group("service", slog.String("name", "poller")), "restarting", true)

	out := buf.String()
	for _, want := range []string{
		`"supervisor":"octolink"`,
		`"event.service.name":"poller"`,
		`"event.restarting":true`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output: %s", want, out)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	withGlobalLevel(t, zerolog.TraceLevel)

	h := &SlogHandler{logger: zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel)}
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected info to be disabled on a warn logger")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("expected error to be enabled on a warn logger")
	}

	zerolog.SetGlobalLevel(zerolog.Disabled)
	if h.Enabled(ctx, slog.LevelError) {
		t.Error("expected nothing enabled when logging is globally off")
	}
}

func TestToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := toZerologLevel(tt.in); got != tt.want {
			t.Errorf("toZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
