// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"errors"

	"github.com/tomtom215/octolink/internal/validation"
)

// Local argument checks, one per operation that takes arguments. Each
// returns a BadRequest *Error with StatusCode 0, or nil when the call may be
// sent. Printer and CircuitBreakerClient both run them before anything else.

const invalidFilePath = "file path requires a known origin and a non-empty path"

func invalidArgument(ep endpoint, msg string) *Error {
	return &Error{Op: ep.op, Kind: KindBadRequest, Err: errors.New(msg)}
}

// checkFields runs v's validation tags. Fields on the returned error lists
// every field that failed.
func checkFields(ep endpoint, v any) *Error {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	return &Error{Op: ep.op, Kind: KindBadRequest, Fields: verr.Fields(), Err: verr}
}

func checkCommand(ep endpoint, what string, cmd any) *Error {
	if cmd == nil {
		return invalidArgument(ep, what+" command is required")
	}
	return checkFields(ep, cmd)
}

func checkFilePath(ep endpoint, file FilePath) *Error {
	if file.resourcePath() == "" {
		return invalidArgument(ep, invalidFilePath)
	}
	return nil
}

func checkSetConnection(cmd ConnectionCommand) *Error {
	return checkCommand(epSetConnection, "connection", cmd)
}

func checkFilesQuery(q FilesQuery) *Error {
	if q.Origin != "" && !q.Origin.Valid() {
		return invalidArgument(epGetFiles, "unknown origin "+string(q.Origin))
	}
	return nil
}

func checkFileCommand(file FilePath, cmd FileCommand) *Error {
	if e := checkFilePath(epFileCommand, file); e != nil {
		return e
	}
	return checkCommand(epFileCommand, "file", cmd)
}

func checkJobCommand(cmd JobCommand) *Error {
	if cmd == nil {
		return invalidArgument(epJobCommand, "job command is required")
	}
	return nil
}

func checkPrintheadCommand(ep endpoint, cmd PrintheadCommand) *Error {
	return checkCommand(ep, "printhead", cmd)
}

func checkToolCommand(ep endpoint, cmd ToolCommand) *Error {
	return checkCommand(ep, "tool", cmd)
}

func checkBedCommand(cmd BedCommand) *Error {
	return checkCommand(epBedCommand, "bed", cmd)
}

func checkSDCommand(cmd SDCommand) *Error {
	return checkFields(epSDCommand, EncodeSD(cmd))
}

func checkSendCommands(commands []string) *Error {
	return checkFields(epSendCommands, CommandRequest{Commands: commands})
}
