// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/octolink/internal/logging"
	"github.com/tomtom215/octolink/pkg/octoprint"
)

// StatusReader is the part of octoprint.PrinterAPI the poller needs.
type StatusReader interface {
	GetJob(ctx context.Context) (*octoprint.JobInfo, error)
	GetPrinterState(ctx context.Context, q octoprint.PrinterStateQuery) (*octoprint.PrinterState, error)
}

var _ StatusReader = (octoprint.PrinterAPI)(nil)

// Snapshot is one observation of the printer.
type Snapshot struct {
	At  time.Time          `json:"at"`
	Job *octoprint.JobInfo `json:"job"`
	// Printer is nil while the printer is not operational.
	Printer *octoprint.PrinterState `json:"printer,omitempty"`
}

// DefaultPollInterval is used when JobPoller gets a non-positive interval.
const DefaultPollInterval = 5 * time.Second

// JobPoller reads job and printer state on a fixed interval and hands each
// Snapshot to emit. It implements suture.Service.
//
// Transport, server and unexpected-status failures end Serve with an error
// so the supervisor restarts it under its backoff policy. Other kinds are
// answers about the printer and only skip the tick.
type JobPoller struct {
	api      StatusReader
	interval time.Duration
	emit     func(Snapshot)
	logger   zerolog.Logger
	name     string
}

// NewJobPoller creates a poller. emit is called from the Serve goroutine.
func NewJobPoller(api StatusReader, interval time.Duration, emit func(Snapshot)) *JobPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &JobPoller{
		api:      api,
		interval: interval,
		emit:     emit,
		logger:   logging.WithComponent("job-poller"),
		name:     "job-poller",
	}
}

// Serve implements suture.Service. It polls once immediately, then on every
// tick until ctx is canceled.
func (p *JobPoller) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// poll takes one snapshot. A nil error with no emit means the tick was
// skipped.
func (p *JobPoller) poll(ctx context.Context) error {
	job, err := p.api.GetJob(ctx)
	if err != nil {
		return p.skipOrFail("get job", err)
	}

	snap := Snapshot{At: time.Now().UTC(), Job: job}

	printer, err := p.api.GetPrinterState(ctx, octoprint.PrinterStateQuery{Exclude: []string{"sd"}})
	switch {
	case err == nil:
		snap.Printer = printer
	case octoprint.KindOf(err) == octoprint.KindConflict:
		// Not operational; the job state still says why.
	default:
		return p.skipOrFail("get printer state", err)
	}

	p.emit(snap)
	return nil
}

func (p *JobPoller) skipOrFail(step string, err error) error {
	switch octoprint.KindOf(err) {
	case octoprint.KindTransport, octoprint.KindServer, octoprint.KindUnexpectedStatus:
		return fmt.Errorf("%s: %w", step, err)
	default:
		p.logger.Warn().Err(err).Str("step", step).Msg("Skipping poll")
		return nil
	}
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (p *JobPoller) String() string {
	return p.name
}
