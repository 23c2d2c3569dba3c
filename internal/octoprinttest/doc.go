// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

/*
Package octoprinttest provides a fake OctoPrint host for tests.

The fake serves the REST routes used by pkg/octoprint with a chi router,
answers each route with a configured Reply, records every request it
receives, and rejects requests without the expected X-Api-Key with 403.

	srv := octoprinttest.NewServer(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteVersion, http.StatusOK,
		`{"api":"0.1","server":"1.10.2","text":"OctoPrint 1.10.2"}`)

	p, _ := octoprint.NewBuilder(srv.Host(), octoprinttest.APIKey).
		Port(srv.Port()).
		Build()

Routes without a configured reply answer 501.
*/
package octoprinttest
