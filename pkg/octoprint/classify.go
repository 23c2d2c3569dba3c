// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"errors"
	"net/http"
	"slices"
)

const (
	// maxResponseSize bounds how much of a success body is read.
	maxResponseSize = 32 << 20

	// maxErrorBodySize bounds the body text kept on an *Error.
	maxErrorBodySize = 64 * 1024
)

// branch flags the optional status branches an operation can produce.
// 5xx is reachable for every operation.
type branch uint8

const (
	allowNotFound branch = 1 << iota
	allowBadRequest
	allowConflict
)

// endpoint describes how responses of one operation are classified.
type endpoint struct {
	op       string
	branches branch

	// payload operations decode every 2xx body into the destination.
	payload bool

	// accepted lists the 2xx statuses of a no-payload operation.
	accepted []int
}

func (ep endpoint) allows(b branch) bool {
	return ep.branches&b != 0
}

func queryEndpoint(op string, branches branch) endpoint {
	return endpoint{op: op, branches: branches, payload: true}
}

func commandEndpoint(op string, branches branch, accepted ...int) endpoint {
	if len(accepted) == 0 {
		accepted = []int{http.StatusNoContent}
	}
	return endpoint{op: op, branches: branches, accepted: accepted}
}

// Operation table. Branch sets follow the host's documented answers.
var (
	epGetVersion       = queryEndpoint("get api version", 0)
	epGetConnection    = queryEndpoint("get connection", 0)
	epSetConnection    = commandEndpoint("set connection", allowBadRequest)
	epGetFiles         = queryEndpoint("get files", allowNotFound)
	epGetFile          = queryEndpoint("get file", allowNotFound)
	epFileCommand      = commandEndpoint("issue file command", allowBadRequest|allowConflict, http.StatusCreated, http.StatusNoContent)
	epDeleteFile       = commandEndpoint("delete file", allowNotFound|allowConflict)
	epJobCommand       = commandEndpoint("issue job command", allowConflict)
	epGetJob           = queryEndpoint("get job", 0)
	epGetPrinter       = queryEndpoint("get printer state", allowConflict)
	epPrintheadCommand = commandEndpoint("issue printhead command", allowBadRequest|allowConflict)
	epFeedrate         = commandEndpoint("change printhead feedrate", allowBadRequest|allowConflict)
	epToolCommand      = commandEndpoint("issue tool command", allowBadRequest|allowConflict, http.StatusOK, http.StatusNoContent)
	epFlowrate         = commandEndpoint("change tool flowrate", allowBadRequest|allowConflict, http.StatusOK, http.StatusNoContent)
	epBedCommand       = commandEndpoint("issue bed command", allowBadRequest|allowConflict)
	epGetTool          = queryEndpoint("get tool state", allowConflict)
	epGetBed           = queryEndpoint("get bed state", allowConflict)
	epGetSD            = queryEndpoint("get sd state", allowNotFound)
	epSDCommand        = commandEndpoint("issue sd command", allowNotFound|allowConflict)
	epSendCommands     = commandEndpoint("send commands", allowBadRequest|allowConflict)
)

// classify maps one completed exchange onto the operation's result. A
// transport failure short-circuits before any status or body inspection.
// dst is only written for payload operations answered with 2xx.
func classify(ep endpoint, status int, body []byte, transportErr error, dst any) error {
	if transportErr != nil {
		return &Error{Op: ep.op, Kind: KindTransport, Err: transportErr}
	}

	switch {
	case status >= 500 && status <= 599:
		return statusError(ep, KindServer, status, body)
	case status == http.StatusConflict && ep.allows(allowConflict):
		return statusError(ep, KindConflict, status, body)
	case status == http.StatusNotFound && ep.allows(allowNotFound):
		return statusError(ep, KindNotFound, status, body)
	case status == http.StatusBadRequest && ep.allows(allowBadRequest):
		return statusError(ep, KindBadRequest, status, body)
	case status >= 200 && status <= 299:
		if ep.payload {
			if err := decodeStrict(body, dst); err != nil {
				return parseError(ep, status, err)
			}
			return nil
		}
		if slices.Contains(ep.accepted, status) {
			return nil
		}
	}

	return statusError(ep, KindUnexpectedStatus, status, body)
}

func statusError(ep endpoint, kind Kind, status int, body []byte) *Error {
	return &Error{Op: ep.op, Kind: kind, StatusCode: status, Body: bodyText(body)}
}

func parseError(ep endpoint, status int, err error) *Error {
	e := &Error{Op: ep.op, Kind: KindParse, StatusCode: status, Err: err}
	var se *ShapeError
	if errors.As(err, &se) {
		e.Path = se.Path
	}
	return e
}

// bodyText keeps at most maxErrorBodySize bytes of body as diagnostic text.
func bodyText(body []byte) string {
	if len(body) > maxErrorBodySize {
		return string(body[:maxErrorBodySize]) + "... (truncated)"
	}
	return string(body)
}
