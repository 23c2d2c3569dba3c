// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"context"
	"net/http"
)

// GetJob retrieves the current job and its progress.
func (p *Printer) GetJob(ctx context.Context) (*JobInfo, error) {
	var info JobInfo
	if err := p.call(ctx, epGetJob, http.MethodGet, "/api/job", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// IssueJobCommand starts, cancels, restarts, pauses or resumes the job.
// The host answers 409 when the command does not fit the printer's state,
// e.g. starting while already printing.
func (p *Printer) IssueJobCommand(ctx context.Context, cmd JobCommand) error {
	if e := checkJobCommand(cmd); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, epJobCommand, http.MethodPost, "/api/job", EncodeJob(cmd), nil)
}
