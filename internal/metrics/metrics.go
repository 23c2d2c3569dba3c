// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for PrinterRequests. Failure outcomes use the
// error kind names of pkg/octoprint (server_error, conflict, ...).
const (
	OutcomeSuccess = "success"
)

var (
	// Printer API Metrics
	PrinterRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octoprint_requests_total",
			Help: "Total number of OctoPrint API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	PrinterRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "octoprint_request_duration_seconds",
			Help:    "Duration of OctoPrint API round trips in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	PrinterResponseStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octoprint_response_status_total",
			Help: "HTTP status codes answered by the OctoPrint host",
		},
		[]string{"operation", "status"},
	)

	PrinterCommandsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "octoprint_commands_rejected_total",
			Help: "Commands rejected by client-side validation before sending",
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "declared_failure", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordPrinterRequest records one completed API call. statusCode is 0 when
// no response was received.
func RecordPrinterRequest(operation, outcome string, statusCode int, duration time.Duration) {
	PrinterRequests.WithLabelValues(operation, outcome).Inc()
	PrinterRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if statusCode != 0 {
		PrinterResponseStatus.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
	}
}

// RecordCommandRejected records a command that failed validation and was
// never sent.
func RecordCommandRejected(operation string) {
	PrinterCommandsRejected.WithLabelValues(operation).Inc()
	PrinterRequests.WithLabelValues(operation, "bad_request").Inc()
}
