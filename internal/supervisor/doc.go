// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

/*
Package supervisor runs long-lived printer services under a suture v4
supervisor.

The only service today is JobPoller, which backs "octolink watch". It
reads the job and printer state on an interval and reports each Snapshot.
When the host stops answering, the poller returns and suture restarts it,
backing off once FailureThreshold is exceeded. Supervisor events are
logged through sutureslog and the zerolog slog bridge in internal/logging.

	tree := supervisor.NewTree("octolink", logging.NewSlogLogger(logging.Logger()), supervisor.TreeConfig{})
	tree.Add(supervisor.NewJobPoller(api, 5*time.Second, print))
	err := tree.Serve(ctx)

The octoprint client itself never polls; this package is where repeated
calls live.
*/
package supervisor
