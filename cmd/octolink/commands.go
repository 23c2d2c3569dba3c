// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/octolink/internal/config"
	"github.com/tomtom215/octolink/internal/logging"
	"github.com/tomtom215/octolink/internal/supervisor"
	"github.com/tomtom215/octolink/pkg/octoprint"
)

// callError marks a failure after the command line was accepted: a printer
// call or writing its result. Every other command error is a usage error.
type callError struct {
	err error
}

func (c *callError) Error() string {
	return c.err.Error()
}

func (c *callError) Unwrap() error {
	return c.err
}

// newRootCommand builds the command tree. Configuration is loaded only once
// a subcommand's arguments have been accepted.
func newRootCommand(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "octolink",
		Short:         "typed OctoPrint REST client",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return errors.New("a command is required")
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		newVersionCommand(),
		newConnectionCommand(),
		newFilesCommand(),
		newFileCommand(),
		newJobCommand(),
		newPrinterCommand(),
		newGcodeCommand(),
		newWatchCommand(),
	)
	return root
}

// connect loads configuration, initialises logging on the command's error
// writer and builds the printer client.
func connect(cmd *cobra.Command) (context.Context, *config.Config, octoprint.PrinterAPI, error) {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return nil, nil, nil, err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})

	logging.Debug().
		Str("host", cfg.Printer.Host).
		Int("port", cfg.Printer.Port).
		Str("api_key", logging.SanitizeValue("api_key", cfg.Printer.APIKey)).
		Dur("timeout", cfg.Printer.Timeout).
		Bool("breaker", cfg.Breaker.Enabled).
		Float64("rate_limit", cfg.Printer.RateLimit).
		Msg("Configuration loaded")

	api, err := newPrinterAPI(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := logging.ContextWithCorrelationID(cmd.Context(), logging.GenerateCorrelationID())
	return ctx, cfg, api, nil
}

// newPrinterAPI builds the client, wrapped in a circuit breaker when enabled.
func newPrinterAPI(cfg *config.Config) (octoprint.PrinterAPI, error) {
	printer, err := octoprint.NewBuilder(cfg.Printer.Host, cfg.Printer.APIKey).
		Port(uint16(cfg.Printer.Port)). //nolint:gosec // range checked by config validation
		Timeout(cfg.Printer.Timeout).
		RateLimit(cfg.Printer.RateLimit, cfg.Printer.RateBurst).
		Logger(logging.WithComponent("octoprint")).
		Build()
	if err != nil {
		return nil, err
	}

	if !cfg.Breaker.Enabled {
		return printer, nil
	}
	return octoprint.NewCircuitBreakerClient(printer, cfg.BreakerSettings()), nil
}

// callFunc performs one printer call. A nil result means nothing is printed.
type callFunc func(ctx context.Context, api octoprint.PrinterAPI) (any, error)

// runCall connects, runs fn under the request timeout and prints its result
// as indented JSON.
func runCall(cmd *cobra.Command, fn callFunc) error {
	ctx, cfg, api, err := connect(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Printer.Timeout+5*time.Second)
	defer cancel()

	result, err := fn(ctx, api)
	if err != nil {
		return &callError{err: err}
	}
	if result == nil {
		return nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return &callError{err: fmt.Errorf("encode result: %w", err)}
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
		return &callError{err: fmt.Errorf("write result: %w", err)}
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "API and server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return api.GetAPIVersion(ctx)
			})
		},
	}
}

func newConnectionCommand() *cobra.Command {
	connection := &cobra.Command{
		Use:   "connection",
		Short: "connection state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return api.GetConnection(ctx)
			})
		},
	}

	disconnect := &cobra.Command{
		Use:   "disconnect",
		Short: "disconnect from the printer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return nil, api.SetConnection(ctx, octoprint.DisconnectCommand{})
			})
		},
	}

	connection.AddCommand(disconnect)
	return connection
}

func newFilesCommand() *cobra.Command {
	files := &cobra.Command{
		Use:   "files",
		Short: "list files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			origin, _ := cmd.Flags().GetString("origin")
			force, _ := cmd.Flags().GetBool("force")
			recursive, _ := cmd.Flags().GetBool("recursive")
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return api.GetFiles(ctx, octoprint.FilesQuery{
					Origin:    octoprint.Origin(origin),
					Force:     force,
					Recursive: recursive,
				})
			})
		},
	}
	files.Flags().String("origin", "", "limit the listing to local or sdcard")
	files.Flags().Bool("force", false, "refresh the sdcard file list first")
	files.Flags().Bool("recursive", false, "include nested folder contents")
	return files
}

func newFileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "file <origin> <path>",
		Short: "one file or folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return api.GetFile(ctx, octoprint.FileQuery{
					File: octoprint.FilePath{Origin: octoprint.Origin(args[0]), Path: args[1]},
				})
			})
		},
	}
}

// jobActions maps job subcommands to their commands.
var jobActions = map[string]octoprint.JobCommand{
	"start":   octoprint.StartCommand{},
	"cancel":  octoprint.CancelCommand{},
	"restart": octoprint.RestartCommand{},
	"pause":   octoprint.PauseCommand{},
	"resume":  octoprint.ResumeCommand{},
	"toggle":  octoprint.TogglePauseCommand{},
}

func newJobCommand() *cobra.Command {
	job := &cobra.Command{
		Use:   "job",
		Short: "current job state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return api.GetJob(ctx)
			})
		},
	}

	names := make([]string, 0, len(jobActions))
	for name := range jobActions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action := jobActions[name]
		job.AddCommand(&cobra.Command{
			Use:   name,
			Short: name + " the job",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
					return nil, api.IssueJobCommand(ctx, action)
				})
			},
		})
	}
	return job
}

func newPrinterCommand() *cobra.Command {
	printer := &cobra.Command{
		Use:   "printer",
		Short: "temperature, SD and state telemetry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, _ := cmd.Flags().GetBool("history")
			limit, _ := cmd.Flags().GetInt("limit")
			exclude, _ := cmd.Flags().GetStringSlice("exclude")

			q := octoprint.PrinterStateQuery{History: history, Limit: limit}
			for _, part := range exclude {
				if part = strings.TrimSpace(part); part != "" {
					q.Exclude = append(q.Exclude, part)
				}
			}
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return api.GetPrinterState(ctx, q)
			})
		},
	}
	printer.Flags().Bool("history", false, "include temperature history")
	printer.Flags().Int("limit", 0, "limit history entries (with --history)")
	printer.Flags().StringSlice("exclude", nil, "sections to leave out: temperature, sd, state")
	return printer
}

func newGcodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gcode <command>...",
		Short: "send raw G-code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, func(ctx context.Context, api octoprint.PrinterAPI) (any, error) {
				return nil, api.SendCommands(ctx, args...)
			})
		},
	}
}

func newWatchCommand() *cobra.Command {
	watch := &cobra.Command{
		Use:   "watch",
		Short: "poll job and printer state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")
			count, _ := cmd.Flags().GetInt("count")
			if interval <= 0 || count < 0 {
				return errors.New("--interval must be positive and --count not negative")
			}

			ctx, _, api, err := connect(cmd)
			if err != nil {
				return err
			}
			if err := runWatch(ctx, api, interval, count, cmd.OutOrStdout()); err != nil {
				return &callError{err: err}
			}
			return nil
		},
	}
	watch.Flags().Duration("interval", supervisor.DefaultPollInterval, "time between polls")
	watch.Flags().Int("count", 0, "stop after N snapshots (0 runs until interrupted)")
	return watch
}

// runWatch polls under a supervisor until ctx ends or count snapshots were
// written.
func runWatch(ctx context.Context, api octoprint.PrinterAPI, interval time.Duration, count int, stdout io.Writer) error {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	written := 0
	var writeErr error
	emit := func(s supervisor.Snapshot) {
		line, err := json.Marshal(s)
		if err == nil {
			_, err = fmt.Fprintln(stdout, string(line))
		}
		if err != nil {
			writeErr = err
			cancel()
			return
		}
		written++
		if count > 0 && written >= count {
			cancel()
		}
	}

	tree := supervisor.NewTree("octolink", logging.NewSlogLogger(logging.WithComponent("supervisor")), supervisor.TreeConfig{
		FailureBackoff: interval,
	})
	tree.Add(supervisor.NewJobPoller(api, interval, emit))

	err := tree.Serve(watchCtx)
	if writeErr != nil {
		return fmt.Errorf("write snapshot: %w", writeErr)
	}
	// The tree only stops when watchCtx ends: interrupt, or count reached.
	if watchCtx.Err() != nil {
		return nil
	}
	return err
}
