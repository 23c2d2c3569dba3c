// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

// Package main is the octolink command line client.
//
// It loads configuration (Koanf v2: defaults, optional YAML file, then
// environment), builds a typed OctoPrint client, runs one operation and
// prints the typed result as indented JSON on stdout. Logs go to stderr.
//
// # Usage
//
//	octolink version
//	octolink connection [disconnect]
//	octolink files [--origin local|sdcard] [--force] [--recursive]
//	octolink file <origin> <path>
//	octolink job [start|cancel|restart|pause|resume|toggle]
//	octolink printer [--history] [--limit N] [--exclude temperature,sd,state]
//	octolink gcode <command>...
//	octolink watch [--interval 5s] [--count N]
//
// Every command accepts --help.
//
// watch prints one JSON line per snapshot until interrupted or until N
// snapshots were printed. It runs under a supervisor that restarts polling
// when the host stops answering.
//
// # Configuration
//
//	export OCTOPRINT_HOST=octopi.local
//	export OCTOPRINT_API_KEY=your-api-key
//	export OCTOPRINT_PORT=80          # optional
//	export LOG_LEVEL=debug            # optional
//	./octolink job
//
// # Exit Codes
//
//   - 0: success
//   - 1: the printer call failed; the error kind is printed on stderr
//   - 2: usage or configuration error
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/octolink/internal/logging"
	"github.com/tomtom215/octolink/pkg/octoprint"
)

const (
	exitOK    = 0
	exitCall  = 1
	exitUsage = 2
)

// maxErrorOutput caps error text on stderr; host error bodies can be long.
const maxErrorOutput = 1024

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	// cobra reads os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return exitOK
	}

	var ce *callError
	if errors.As(err, &ce) {
		logging.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("Command failed")
		fmt.Fprintf(stderr, "octolink: %s: %s\n", octoprint.KindOf(err), logging.Truncate(err.Error(), maxErrorOutput))
		return exitCall
	}

	fmt.Fprintf(stderr, "octolink: %v\nRun '%s --help' for usage.\n", err, cmd.CommandPath())
	return exitUsage
}
