// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

/*
Package metrics provides Prometheus metrics for OctoPrint API calls.

Collectors are registered on the default registry with promauto, so an
application embedding the client only needs to expose
prometheus.DefaultGatherer (for example with promhttp.Handler()).

# Available Metrics

Printer API Metrics:

  - octoprint_requests_total: API calls (counter)
    Labels: operation, outcome (success, server_error, conflict, ...)
  - octoprint_request_duration_seconds: Round trip latency (histogram)
    Labels: operation
  - octoprint_response_status_total: Status codes answered by the host (counter)
    Labels: operation, status
  - octoprint_commands_rejected_total: Commands rejected before sending (counter)
    Labels: operation

Circuit Breaker Metrics:

  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through the breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
    Labels: name
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

# Example Queries

Conflict rate per operation (printer busy or not operational):

	sum by (operation) (rate(octoprint_requests_total{outcome="conflict"}[5m]))

95th percentile latency:

	histogram_quantile(0.95, sum by (le, operation) (rate(octoprint_request_duration_seconds_bucket[5m])))

Alert when the breaker has been open for a while:

	- alert: OctoPrintCircuitOpen
	  expr: circuit_breaker_state{name=~"octoprint.*"} == 2
	  for: 5m
*/
package metrics
