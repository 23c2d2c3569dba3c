// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"context"
	"net/http"
)

// GetAPIVersion retrieves the API and server version of the host.
func (p *Printer) GetAPIVersion(ctx context.Context) (*APIVersion, error) {
	var v APIVersion
	if err := p.call(ctx, epGetVersion, http.MethodGet, "/api/version", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetConnection retrieves the current connection state and the options
// accepted by ConnectCommand.
func (p *Printer) GetConnection(ctx context.Context) (*ConnectionInfo, error) {
	var info ConnectionInfo
	if err := p.call(ctx, epGetConnection, http.MethodGet, "/api/connection", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SetConnection connects, disconnects or fake-acks the serial connection.
// The host answers 204 on success and 400 for an invalid port, baudrate or
// printer profile.
func (p *Printer) SetConnection(ctx context.Context, cmd ConnectionCommand) error {
	if e := checkSetConnection(cmd); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, epSetConnection, http.MethodPost, "/api/connection", EncodeConnection(cmd), nil)
}
