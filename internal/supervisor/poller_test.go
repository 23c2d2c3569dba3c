// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/octolink/internal/octoprinttest"
	"github.com/tomtom215/octolink/pkg/octoprint"
)

const idleJobJSON = `{
	"job": {
		"file": {"name": null, "origin": null, "size": null, "date": null},
		"estimatedPrintTime": null,
		"lastPrintTime": null,
		"filament": null
	},
	"progress": {"completion": null, "filepos": null, "printTime": null, "printTimeLeft": null},
	"state": "Operational"
}`

const operationalJSON = `{"state":{"text":"Operational","flags":{
	"operational":true,"paused":false,"printing":false,"sdReady":false,"error":false,"ready":true,"closedOrError":false}}}`

func newTestPrinter(t *testing.T) (*octoprint.Printer, *octoprinttest.Server) {
	t.Helper()
	srv := octoprinttest.NewServer(t)
	p, err := octoprint.NewBuilder(srv.Host(), octoprinttest.APIKey).
		Port(srv.Port()).
		Logger(zerolog.Nop()).
		Build()
	if err != nil {
		t.Fatalf("build printer: %v", err)
	}
	return p, srv
}

// collector gathers snapshots and signals when n have arrived.
type collector struct {
	mu    sync.Mutex
	snaps []Snapshot
	n     int
	done  chan struct{}
}

func newCollector(n int) *collector {
	return &collector{n: n, done: make(chan struct{})}
}

func (c *collector) emit(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps = append(c.snaps, s)
	if len(c.snaps) == c.n {
		close(c.done)
	}
}

func (c *collector) wait(t *testing.T) []Snapshot {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshots")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Snapshot(nil), c.snaps...)
}

func TestJobPoller_EmitsSnapshots(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteJob, http.StatusOK, idleJobJSON)
	srv.Reply(http.MethodGet, octoprinttest.RoutePrinter, http.StatusOK, operationalJSON)

	c := newCollector(2)
	poller := NewJobPoller(p, 10*time.Millisecond, c.emit)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- poller.Serve(ctx) }()

	snaps := c.wait(t)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if snaps[0].Job.State != "Operational" {
		t.Errorf("Job.State = %q, want Operational", snaps[0].Job.State)
	}
	if snaps[0].Printer == nil || !snaps[0].Printer.State.Flags.Operational {
		t.Errorf("expected operational printer state, got %+v", snaps[0].Printer)
	}

	for _, req := range srv.Requests() {
		if req.Path == octoprinttest.RoutePrinter && req.RawQuery != "exclude=sd" {
			t.Errorf("printer query = %q, want exclude=sd", req.RawQuery)
		}
	}
}

func TestJobPoller_ConflictLeavesPrinterNil(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteJob, http.StatusOK, idleJobJSON)
	srv.Reply(http.MethodGet, octoprinttest.RoutePrinter, http.StatusConflict, "Printer is not operational")

	var got []Snapshot
	poller := NewJobPoller(p, time.Hour, func(s Snapshot) { got = append(got, s) })

	if err := poller.poll(context.Background()); err != nil {
		t.Fatalf("poll() = %v, want nil", err)
	}
	if len(got) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(got))
	}
	if got[0].Printer != nil {
		t.Errorf("Printer = %+v, want nil", got[0].Printer)
	}
}

func TestJobPoller_PollOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		wantKind octoprint.Kind
	}{
		{name: "server error fails", status: http.StatusInternalServerError, wantErr: true, wantKind: octoprint.KindServer},
		{name: "unauthorized fails", status: http.StatusUnauthorized, wantErr: true, wantKind: octoprint.KindUnexpectedStatus},
		{name: "malformed body skips", status: http.StatusOK, body: `{"state":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, srv := newTestPrinter(t)
			srv.Reply(http.MethodGet, octoprinttest.RouteJob, tt.status, tt.body)

			emitted := 0
			poller := NewJobPoller(p, time.Hour, func(Snapshot) { emitted++ })
			poller.logger = zerolog.Nop()

			err := poller.poll(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("poll() = nil, want error")
				}
				if kind := octoprint.KindOf(err); kind != tt.wantKind {
					t.Errorf("KindOf(err) = %v, want %v", kind, tt.wantKind)
				}
			} else if err != nil {
				t.Errorf("poll() = %v, want nil", err)
			}
			if emitted != 0 {
				t.Errorf("emitted = %d, want 0", emitted)
			}
		})
	}
}

func TestJobPoller_DefaultInterval(t *testing.T) {
	poller := NewJobPoller(nil, 0, func(Snapshot) {})
	if poller.interval != DefaultPollInterval {
		t.Errorf("interval = %v, want %v", poller.interval, DefaultPollInterval)
	}
	if poller.String() != "job-poller" {
		t.Errorf("String() = %q, want job-poller", poller.String())
	}
}
