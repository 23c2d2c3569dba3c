// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/octolink/internal/logging"
	"github.com/tomtom215/octolink/internal/metrics"
)

// Ensure CircuitBreakerClient implements PrinterAPI
var _ PrinterAPI = (*CircuitBreakerClient)(nil)

// BreakerSettings configures CircuitBreakerClient.
type BreakerSettings struct {
	// Name labels the breaker in logs and metrics.
	Name string
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
	// Interval is the window after which counts are reset while closed.
	Interval time.Duration
	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration
	// MinRequests is the number of requests in a window before the
	// failure ratio is considered.
	MinRequests uint32
	// FailureRatio opens the circuit once reached.
	FailureRatio float64
}

// DefaultBreakerSettings returns the settings used when none are configured:
// 3 half-open trial requests, 1 minute window, 2 minute open timeout, and opening at
// a 60% failure ratio over at least 10 requests.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "octoprint-api",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerClient wraps a PrinterAPI with a circuit breaker. Only
// failures that say the host is unhealthy (transport failures, 5xx and
// unexpected statuses) count towards opening the circuit; declared answers
// such as 409 or 404 and client-side rejections do not.
//
// While the circuit is open, calls fail immediately with a KindTransport
// *Error wrapping gobreaker.ErrOpenState or gobreaker.ErrTooManyRequests.
type CircuitBreakerClient struct {
	client PrinterAPI
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client. Zero fields of settings fall back to
// DefaultBreakerSettings.
func NewCircuitBreakerClient(client PrinterAPI, settings BreakerSettings) *CircuitBreakerClient {
	settings = withBreakerDefaults(settings)
	cbName := settings.Name
	logger := logging.WithComponent("circuit-breaker")

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= settings.FailureRatio

			if shouldTrip {
				logger.Warn().
					Str("breaker", cbName).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening printer circuit")
			}

			return shouldTrip
		},

		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logger.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

func withBreakerDefaults(s BreakerSettings) BreakerSettings {
	d := DefaultBreakerSettings()
	if s.Name == "" {
		s.Name = d.Name
	}
	if s.MaxRequests == 0 {
		s.MaxRequests = d.MaxRequests
	}
	if s.Interval <= 0 {
		s.Interval = d.Interval
	}
	if s.Timeout <= 0 {
		s.Timeout = d.Timeout
	}
	if s.MinRequests == 0 {
		s.MinRequests = d.MinRequests
	}
	if s.FailureRatio <= 0 || s.FailureRatio > 1 {
		s.FailureRatio = d.FailureRatio
	}
	return s
}

// countsAsFailure reports whether err says the host is unhealthy.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	switch KindOf(err) {
	case KindTransport, KindServer, KindUnexpectedStatus:
		return true
	default:
		return false
	}
}

// State returns the current breaker state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

// Counts returns the breaker's counters for the current window.
func (cbc *CircuitBreakerClient) Counts() gobreaker.Counts {
	return cbc.cb.Counts()
}

// execute wraps one printer call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(op string, fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(func() (interface{}, error) {
		return fn()
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", cbc.name).Str("op", op).Msg("[CIRCUIT BREAKER] Printer request rejected")
			return nil, &Error{Op: op, Kind: KindTransport, Err: err}
		}
		if countsAsFailure(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
			return nil, err
		}
	}

	// Declared answers (400, 404, 409, parse) count as healthy for the
	// breaker but are labelled apart from real successes.
	outcome := "success"
	if err != nil {
		outcome = "declared_failure"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, outcome).Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)

	return result, err
}

// rejected returns a call refused by a local check without consulting the
// breaker, so an open circuit never hides a BadRequest.
func (cbc *CircuitBreakerClient) rejected(e *Error) error {
	metrics.RecordCommandRejected(e.Op)
	logging.Debug().Str("breaker", cbc.name).Str("op", e.Op).Strs("fields", e.Fields).Msg("[CIRCUIT BREAKER] Rejected before sending")
	return e
}

// run is execute for calls without a result.
func (cbc *CircuitBreakerClient) run(op string, fn func() error) error {
	_, err := cbc.execute(op, func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// castResult safely type-casts the circuit breaker result with error checking
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func (cbc *CircuitBreakerClient) GetAPIVersion(ctx context.Context) (*APIVersion, error) {
	return castResult[APIVersion](cbc.execute(epGetVersion.op, func() (interface{}, error) {
		return cbc.client.GetAPIVersion(ctx)
	}))
}

func (cbc *CircuitBreakerClient) GetConnection(ctx context.Context) (*ConnectionInfo, error) {
	return castResult[ConnectionInfo](cbc.execute(epGetConnection.op, func() (interface{}, error) {
		return cbc.client.GetConnection(ctx)
	}))
}

func (cbc *CircuitBreakerClient) SetConnection(ctx context.Context, cmd ConnectionCommand) error {
	if e := checkSetConnection(cmd); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epSetConnection.op, func() error {
		return cbc.client.SetConnection(ctx, cmd)
	})
}

func (cbc *CircuitBreakerClient) GetFiles(ctx context.Context, q FilesQuery) (*FileList, error) {
	if e := checkFilesQuery(q); e != nil {
		return nil, cbc.rejected(e)
	}
	return castResult[FileList](cbc.execute(epGetFiles.op, func() (interface{}, error) {
		return cbc.client.GetFiles(ctx, q)
	}))
}

// GetFile returns *File or *Folder, so the result is asserted to Entry
// rather than cast to a concrete pointer type.
func (cbc *CircuitBreakerClient) GetFile(ctx context.Context, q FileQuery) (Entry, error) {
	if e := checkFilePath(epGetFile, q.File); e != nil {
		return nil, cbc.rejected(e)
	}
	result, err := cbc.execute(epGetFile.op, func() (interface{}, error) {
		return cbc.client.GetFile(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	entry, ok := result.(Entry)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return entry, nil
}

func (cbc *CircuitBreakerClient) IssueFileCommand(ctx context.Context, file FilePath, cmd FileCommand) error {
	if e := checkFileCommand(file, cmd); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epFileCommand.op, func() error {
		return cbc.client.IssueFileCommand(ctx, file, cmd)
	})
}

func (cbc *CircuitBreakerClient) DeleteFile(ctx context.Context, file FilePath) error {
	if e := checkFilePath(epDeleteFile, file); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epDeleteFile.op, func() error {
		return cbc.client.DeleteFile(ctx, file)
	})
}

func (cbc *CircuitBreakerClient) GetJob(ctx context.Context) (*JobInfo, error) {
	return castResult[JobInfo](cbc.execute(epGetJob.op, func() (interface{}, error) {
		return cbc.client.GetJob(ctx)
	}))
}

func (cbc *CircuitBreakerClient) IssueJobCommand(ctx context.Context, cmd JobCommand) error {
	if e := checkJobCommand(cmd); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epJobCommand.op, func() error {
		return cbc.client.IssueJobCommand(ctx, cmd)
	})
}

func (cbc *CircuitBreakerClient) GetPrinterState(ctx context.Context, q PrinterStateQuery) (*PrinterState, error) {
	if e := checkFields(epGetPrinter, q); e != nil {
		return nil, cbc.rejected(e)
	}
	return castResult[PrinterState](cbc.execute(epGetPrinter.op, func() (interface{}, error) {
		return cbc.client.GetPrinterState(ctx, q)
	}))
}

func (cbc *CircuitBreakerClient) IssuePrintheadCommand(ctx context.Context, cmd PrintheadCommand) error {
	if e := checkPrintheadCommand(epPrintheadCommand, cmd); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epPrintheadCommand.op, func() error {
		return cbc.client.IssuePrintheadCommand(ctx, cmd)
	})
}

func (cbc *CircuitBreakerClient) ChangePrintheadFeedrate(ctx context.Context, factor float64) error {
	if e := checkPrintheadCommand(epFeedrate, FeedrateCommand{Factor: factor}); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epFeedrate.op, func() error {
		return cbc.client.ChangePrintheadFeedrate(ctx, factor)
	})
}

func (cbc *CircuitBreakerClient) GetToolState(ctx context.Context, q HistoryQuery) (*ToolState, error) {
	if e := checkFields(epGetTool, q); e != nil {
		return nil, cbc.rejected(e)
	}
	return castResult[ToolState](cbc.execute(epGetTool.op, func() (interface{}, error) {
		return cbc.client.GetToolState(ctx, q)
	}))
}

func (cbc *CircuitBreakerClient) IssueToolCommand(ctx context.Context, cmd ToolCommand) error {
	if e := checkToolCommand(epToolCommand, cmd); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epToolCommand.op, func() error {
		return cbc.client.IssueToolCommand(ctx, cmd)
	})
}

func (cbc *CircuitBreakerClient) ChangeToolFlowrate(ctx context.Context, factor float64) error {
	if e := checkToolCommand(epFlowrate, FlowrateCommand{Factor: factor}); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epFlowrate.op, func() error {
		return cbc.client.ChangeToolFlowrate(ctx, factor)
	})
}

func (cbc *CircuitBreakerClient) GetBedState(ctx context.Context, q HistoryQuery) (*BedState, error) {
	if e := checkFields(epGetBed, q); e != nil {
		return nil, cbc.rejected(e)
	}
	return castResult[BedState](cbc.execute(epGetBed.op, func() (interface{}, error) {
		return cbc.client.GetBedState(ctx, q)
	}))
}

func (cbc *CircuitBreakerClient) IssueBedCommand(ctx context.Context, cmd BedCommand) error {
	if e := checkBedCommand(cmd); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epBedCommand.op, func() error {
		return cbc.client.IssueBedCommand(ctx, cmd)
	})
}

func (cbc *CircuitBreakerClient) GetSDState(ctx context.Context) (*SDState, error) {
	return castResult[SDState](cbc.execute(epGetSD.op, func() (interface{}, error) {
		return cbc.client.GetSDState(ctx)
	}))
}

func (cbc *CircuitBreakerClient) IssueSDCommand(ctx context.Context, cmd SDCommand) error {
	if e := checkSDCommand(cmd); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epSDCommand.op, func() error {
		return cbc.client.IssueSDCommand(ctx, cmd)
	})
}

func (cbc *CircuitBreakerClient) SendCommands(ctx context.Context, commands ...string) error {
	if e := checkSendCommands(commands); e != nil {
		return cbc.rejected(e)
	}
	return cbc.run(epSendCommands.op, func() error {
		return cbc.client.SendCommands(ctx, commands...)
	})
}
