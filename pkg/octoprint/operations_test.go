// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/octolink/internal/octoprinttest"
)

// ============================================================================
// Connection
// ============================================================================

func TestSetConnection_Connect(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteConnection, http.StatusNoContent, "")

	err := p.SetConnection(bg, ConnectCommand{
		Port:           "/dev/ttyACM0",
		Baudrate:       115200,
		PrinterProfile: "p1",
		Save:           true,
		Autoconnect:    true,
	})
	checkNoError(t, err)

	req := lastRequest(t, srv)
	checkStringEqual(t, "method", req.Method, http.MethodPost)
	checkStringEqual(t, "path", req.Path, "/api/connection")
	checkStringEqual(t, "Content-Type", req.Header.Get("Content-Type"), "application/json")
	checkStringEqual(t, "body", string(req.Body),
		`{"command":"connect","port":"/dev/ttyACM0","baudrate":115200,"printerProfile":"p1","save":true,"autoconnect":true}`)
}

func TestSetConnection_Statuses(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusBadRequest, KindBadRequest},
		{http.StatusInternalServerError, KindServer},
		{http.StatusConflict, KindUnexpectedStatus},
		{http.StatusOK, KindUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p, srv := newTestPrinter(t)
			srv.Reply(http.MethodPost, octoprinttest.RouteConnection, tt.status, `{"error":"x"}`)

			checkKind(t, p.SetConnection(bg, DisconnectCommand{}), tt.want)
		})
	}
}

func TestSetConnection_RejectedLocally(t *testing.T) {
	p, srv := newTestPrinter(t)

	checkKind(t, p.SetConnection(bg, nil), KindBadRequest)
	e := checkKind(t, p.SetConnection(bg, ConnectCommand{Port: "/dev/ttyACM0"}), KindBadRequest)
	checkIntEqual(t, "StatusCode", e.StatusCode, 0)
	checkErrorContains(t, e, "Baudrate must be greater than 0")
	checkIntEqual(t, "requests", srv.RequestCount(), 0)
}

func TestGetConnection(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteConnection, http.StatusOK, `{
		"current": {"state": "Operational", "port": "/dev/ttyACM0", "baudrate": 250000, "printerProfile": "_default"},
		"options": {
			"ports": ["/dev/ttyACM0", "VIRTUAL"],
			"baudrates": [250000, 230400, 115200],
			"printerProfiles": [{"name": "Default", "id": "_default"}],
			"portPreference": "/dev/ttyACM0",
			"baudratePreference": 250000,
			"printerProfilePreference": "_default",
			"autoconnect": true
		}
	}`)

	info, err := p.GetConnection(bg)
	checkNoError(t, err)
	checkStringEqual(t, "Current.State", info.Current.State, "Operational")
	checkStringPtrEqual(t, "Current.Port", info.Current.Port, "/dev/ttyACM0")
	checkIntPtrEqual(t, "Current.Baudrate", info.Current.Baudrate, 250000)
	checkSliceLen(t, "Options.Baudrates", len(info.Options.Baudrates), 3)
	checkStringEqual(t, "PrinterProfiles[0].ID", info.Options.PrinterProfiles[0].ID, "_default")
	checkTrue(t, "Autoconnect", info.Options.Autoconnect != nil && *info.Options.Autoconnect)
}

func TestGetConnection_RequiredOptions(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteConnection, http.StatusOK, `{
		"current": {"state": "Closed", "port": null, "baudrate": null, "printerProfile": "_default"},
		"options": {}
	}`)

	info, err := p.GetConnection(bg)
	e := checkKind(t, err, KindParse)
	checkStringEqual(t, "Path", e.Path, "options.ports")
	checkTrue(t, "no payload", info == nil)
}

// ============================================================================
// Files
// ============================================================================

func TestGetFiles_Paths(t *testing.T) {
	tests := []struct {
		name      string
		query     FilesQuery
		wantPath  string
		wantQuery string
	}{
		{name: "all origins", query: FilesQuery{}, wantPath: "/api/files", wantQuery: ""},
		{name: "local recursive", query: FilesQuery{Origin: OriginLocal, Recursive: true}, wantPath: "/api/files/local", wantQuery: "recursive=true"},
		{name: "sdcard forced", query: FilesQuery{Origin: OriginSDCard, Force: true}, wantPath: "/api/files/sdcard", wantQuery: "force=true"},
		{name: "force before recursive", query: FilesQuery{Force: true, Recursive: true}, wantPath: "/api/files", wantQuery: "force=true&recursive=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, srv := newTestPrinter(t)
			srv.Reply(http.MethodGet, octoprinttest.RouteFiles, http.StatusOK, `{"files":[]}`)
			srv.Reply(http.MethodGet, octoprinttest.RouteOrigin, http.StatusOK, `{"files":[]}`)

			list, err := p.GetFiles(bg, tt.query)
			checkNoError(t, err)
			checkSliceLen(t, "Files", len(list.Files), 0)

			req := lastRequest(t, srv)
			checkStringEqual(t, "path", req.Path, tt.wantPath)
			checkStringEqual(t, "query", req.RawQuery, tt.wantQuery)
		})
	}
}

func TestGetFiles_FolderWithLocalChild(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteFiles, http.StatusOK, folderWithLocalChildJSON)

	list, err := p.GetFiles(bg, FilesQuery{})
	checkNoError(t, err)

	folders := list.Files.Folders()
	checkSliceLen(t, "top-level folders", len(folders), 1)
	checkSliceLen(t, "children", len(folders[0].Children), 1)
	checkStringEqual(t, "child origin", string(folders[0].Children[0].Common().Origin), "local")
}

func TestGetFiles_Errors(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteOrigin, http.StatusNotFound, "Unknown origin")

	_, err := p.GetFiles(bg, FilesQuery{Origin: OriginSDCard})
	e := checkKind(t, err, KindNotFound)
	checkStringEqual(t, "Body", e.Body, "Unknown origin")

	_, err = p.GetFiles(bg, FilesQuery{Origin: "usb"})
	checkKind(t, err, KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 1)
}

func TestGetFile_EscapesPath(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteFile, http.StatusOK,
		`{"name":"my part #2.gcode","path":"new folder/my part #2.gcode","type":"machinecode","typePath":["machinecode","gcode"],"origin":"local"}`)

	entry, err := p.GetFile(bg, FileQuery{File: FilePath{Origin: OriginLocal, Path: "/new folder/my part #2.gcode"}})
	checkNoError(t, err)

	file, ok := entry.(*File)
	if !ok {
		t.Fatalf("expected *File, got %T", entry)
	}
	checkStringEqual(t, "Name", file.Name, "my part #2.gcode")

	req := lastRequest(t, srv)
	checkStringEqual(t, "path", req.Path, "/api/files/local/new%20folder/my%20part%20%232.gcode")
}

func TestGetFile_Folder(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteFile, http.StatusOK,
		`{"name":"parts","path":"parts","type":"folder","origin":"local","children":[{"name":"a.stl","path":"parts/a.stl","type":"model","origin":"local"}]}`)

	entry, err := p.GetFile(bg, FileQuery{File: FilePath{Origin: OriginLocal, Path: "parts"}, Recursive: true})
	checkNoError(t, err)
	checkTrue(t, "entry is folder", entry.Kind() == EntryFolder)
	checkSliceLen(t, "files", len(entry.(*Folder).Children.Files()), 1)
	checkStringEqual(t, "query", lastRequest(t, srv).RawQuery, "recursive=true")
}

func TestGetFile_InvalidPath(t *testing.T) {
	p, srv := newTestPrinter(t)

	tests := []FilePath{
		{Origin: OriginLocal, Path: ""},
		{Origin: OriginLocal, Path: "/"},
		{Origin: "usb", Path: "a.gcode"},
	}
	for _, fp := range tests {
		_, err := p.GetFile(bg, FileQuery{File: fp})
		checkKind(t, err, KindBadRequest)
	}
	checkIntEqual(t, "requests", srv.RequestCount(), 0)
}

func TestIssueFileCommand(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteFile, http.StatusNoContent, "")

	err := p.IssueFileCommand(bg, FilePath{Origin: OriginLocal, Path: "whistle.gcode"}, SelectCommand{Print: true})
	checkNoError(t, err)

	req := lastRequest(t, srv)
	checkStringEqual(t, "path", req.Path, "/api/files/local/whistle.gcode")
	checkStringEqual(t, "body", string(req.Body), `{"command":"select","print":true}`)
}

func TestIssueFileCommand_CopyAnswers201(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteFile, http.StatusCreated, `{"origin":"local","name":"a.gcode","path":"archive/a.gcode"}`)

	checkNoError(t, p.IssueFileCommand(bg, FilePath{Origin: OriginLocal, Path: "a.gcode"}, CopyCommand{Destination: "archive"}))
}

func TestIssueFileCommand_Errors(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusBadRequest, KindBadRequest},
		{http.StatusConflict, KindConflict},
		{http.StatusNotFound, KindUnexpectedStatus},
		{http.StatusInternalServerError, KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p, srv := newTestPrinter(t)
			srv.Reply(http.MethodPost, octoprinttest.RouteFile, tt.status, "nope")

			checkKind(t, p.IssueFileCommand(bg, FilePath{Origin: OriginLocal, Path: "a.gcode"}, UnselectCommand{}), tt.want)
		})
	}

	p, srv := newTestPrinter(t)
	checkKind(t, p.IssueFileCommand(bg, FilePath{Origin: OriginLocal, Path: "a.gcode"}, MoveCommand{}), KindBadRequest)
	checkKind(t, p.IssueFileCommand(bg, FilePath{Origin: OriginLocal, Path: "a.gcode"}, nil), KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 0)
}

func TestDeleteFile(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodDelete, octoprinttest.RouteFile, http.StatusNoContent, "")

	checkNoError(t, p.DeleteFile(bg, FilePath{Origin: OriginSDCard, Path: "old.gcode"}))
	req := lastRequest(t, srv)
	checkStringEqual(t, "method", req.Method, http.MethodDelete)
	checkStringEqual(t, "path", req.Path, "/api/files/sdcard/old.gcode")

	srv.Reply(http.MethodDelete, octoprinttest.RouteFile, http.StatusConflict, "File is currently being printed")
	e := checkKind(t, p.DeleteFile(bg, FilePath{Origin: OriginSDCard, Path: "old.gcode"}), KindConflict)
	checkStringEqual(t, "Body", e.Body, "File is currently being printed")

	srv.Reply(http.MethodDelete, octoprinttest.RouteFile, http.StatusNotFound, "")
	checkKind(t, p.DeleteFile(bg, FilePath{Origin: OriginSDCard, Path: "old.gcode"}), KindNotFound)
}

// ============================================================================
// Job
// ============================================================================

func TestGetJob(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteJob, http.StatusOK, jobJSON)

	info, err := p.GetJob(bg)
	checkNoError(t, err)
	checkStringEqual(t, "State", info.State, "Printing")
	checkInt64PtrEqual(t, "PrintTime", info.Progress.PrintTime, 276)
}

func TestIssueJobCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  JobCommand
		body string
	}{
		{"start", StartCommand{}, `{"command":"start"}`},
		{"cancel", CancelCommand{}, `{"command":"cancel"}`},
		{"restart", RestartCommand{}, `{"command":"restart"}`},
		{"pause", PauseCommand{}, `{"command":"pause","action":"pause"}`},
		{"resume", ResumeCommand{}, `{"command":"pause","action":"resume"}`},
		{"toggle", TogglePauseCommand{}, `{"command":"pause","action":"toggle"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, srv := newTestPrinter(t)
			srv.Reply(http.MethodPost, octoprinttest.RouteJob, http.StatusNoContent, "")

			checkNoError(t, p.IssueJobCommand(bg, tt.cmd))
			checkStringEqual(t, "body", string(lastRequest(t, srv).Body), tt.body)
		})
	}
}

func TestIssueJobCommand_Conflict(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteJob, http.StatusConflict, "Printer is not operational or already printing")

	e := checkKind(t, p.IssueJobCommand(bg, StartCommand{}), KindConflict)
	checkIntEqual(t, "StatusCode", e.StatusCode, http.StatusConflict)
	checkStringEqual(t, "Body", e.Body, "Printer is not operational or already printing")
}

// ============================================================================
// Printer
// ============================================================================

func TestGetPrinterState(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RoutePrinter, http.StatusOK, printerStateJSON)

	st, err := p.GetPrinterState(bg, PrinterStateQuery{History: true, Limit: 2, Exclude: []string{"sd"}})
	checkNoError(t, err)
	checkTrue(t, "flags.ready", st.State.Flags.Ready)

	checkStringEqual(t, "query", lastRequest(t, srv).RawQuery, "history=true&limit=2&exclude=sd")
}

func TestGetPrinterState_Queries(t *testing.T) {
	tests := []struct {
		name  string
		query PrinterStateQuery
		want  string
	}{
		{"empty", PrinterStateQuery{}, ""},
		{"limit without history", PrinterStateQuery{Limit: 5}, ""},
		{"history only", PrinterStateQuery{History: true}, "history=true"},
		{"exclude many", PrinterStateQuery{Exclude: []string{"temperature", "state"}}, "exclude=temperature,state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, srv := newTestPrinter(t)
			srv.Reply(http.MethodGet, octoprinttest.RoutePrinter, http.StatusOK, `{}`)

			_, err := p.GetPrinterState(bg, tt.query)
			checkNoError(t, err)
			checkStringEqual(t, "query", lastRequest(t, srv).RawQuery, tt.want)
		})
	}
}

func TestGetPrinterState_Conflict(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RoutePrinter, http.StatusConflict, "Printer is not operational")

	_, err := p.GetPrinterState(bg, PrinterStateQuery{})
	e := checkKind(t, err, KindConflict)
	checkStringEqual(t, "Body", e.Body, "Printer is not operational")
}

func TestGetPrinterState_InvalidExclude(t *testing.T) {
	p, srv := newTestPrinter(t)

	_, err := p.GetPrinterState(bg, PrinterStateQuery{Exclude: []string{"camera"}})
	checkKind(t, err, KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 0)
}

func TestIssuePrintheadCommand(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RoutePrinthead, http.StatusNoContent, "")

	checkNoError(t, p.IssuePrintheadCommand(bg, HomeCommand{Axes: []Axis{AxisX, AxisY, AxisZ}}))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"home","axes":["x","y","z"]}`)

	y := 5.0
	checkNoError(t, p.IssuePrintheadCommand(bg, JogCommand{Y: &y}))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"jog","y":5}`)
}

func TestIssuePrintheadCommand_RejectedLocally(t *testing.T) {
	p, srv := newTestPrinter(t)

	checkKind(t, p.IssuePrintheadCommand(bg, HomeCommand{}), KindBadRequest)
	checkKind(t, p.IssuePrintheadCommand(bg, HomeCommand{Axes: []Axis{"e"}}), KindBadRequest)
	checkKind(t, p.IssuePrintheadCommand(bg, JogCommand{}), KindBadRequest)
	checkKind(t, p.IssuePrintheadCommand(bg, nil), KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 0)
}

func TestChangePrintheadFeedrate(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RoutePrinthead, http.StatusNoContent, "")

	checkNoError(t, p.ChangePrintheadFeedrate(bg, 0.5))
	checkNoError(t, p.ChangePrintheadFeedrate(bg, 2.0))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"feedrate","factor":2}`)
}

func TestChangePrintheadFeedrate_OutOfRange(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RoutePrinthead, http.StatusNoContent, "")

	for _, factor := range []float64{3.0, 0.49, -1} {
		e := checkKind(t, p.ChangePrintheadFeedrate(bg, factor), KindBadRequest)
		checkIntEqual(t, "StatusCode", e.StatusCode, 0)
		checkStringEqual(t, "Fields", strings.Join(e.Fields, ","), "Factor")
	}
	checkIntEqual(t, "requests", srv.RequestCount(), 0)
}

func TestGetToolState(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteTool, http.StatusOK,
		`{"tool0":{"actual":214.8,"target":220,"offset":0},"history":[{"time":1395651928,"tool0":{"actual":214.8,"target":220}}]}`)

	st, err := p.GetToolState(bg, HistoryQuery{History: true, Limit: 1})
	checkNoError(t, err)
	tool0, ok := st.Heater("tool0")
	checkTrue(t, "tool0 reported", ok)
	checkFloat64PtrEqual(t, "tool0.Target", tool0.Target, 220)
	checkSliceLen(t, "History", len(st.History), 1)
	checkStringEqual(t, "query", lastRequest(t, srv).RawQuery, "history=true&limit=1")
}

func TestIssueToolCommand(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteTool, http.StatusNoContent, "")

	checkNoError(t, p.IssueToolCommand(bg, ToolTargetCommand{Targets: map[string]float64{"tool0": 220}}))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"target","targets":{"tool0":220}}`)

	checkNoError(t, p.IssueToolCommand(bg, ToolSelectCommand{Tool: "tool1"}))
	checkNoError(t, p.IssueToolCommand(bg, ExtrudeCommand{Amount: -2}))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"extrude","amount":-2}`)
}

func TestIssueToolCommand_RejectedLocally(t *testing.T) {
	p, srv := newTestPrinter(t)

	checkKind(t, p.IssueToolCommand(bg, ToolTargetCommand{}), KindBadRequest)
	checkKind(t, p.IssueToolCommand(bg, ToolTargetCommand{Targets: map[string]float64{"hotend": 200}}), KindBadRequest)
	checkKind(t, p.IssueToolCommand(bg, ToolOffsetCommand{Offsets: map[string]float64{"tool0": 80}}), KindBadRequest)
	checkKind(t, p.IssueToolCommand(bg, ToolSelectCommand{Tool: "bed"}), KindBadRequest)
	checkKind(t, p.IssueToolCommand(bg, nil), KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 0)
}

func TestChangeToolFlowrate(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteTool, http.StatusNoContent, "")

	checkNoError(t, p.ChangeToolFlowrate(bg, 1.1))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"flowrate","factor":1.1}`)

	checkKind(t, p.ChangeToolFlowrate(bg, 1.5), KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 1)
}

func TestGetBedState(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteBed, http.StatusOK, `{"bed":{"actual":50.2,"target":70,"offset":5}}`)

	st, err := p.GetBedState(bg, HistoryQuery{})
	checkNoError(t, err)
	bed, ok := st.Heater("bed")
	checkTrue(t, "bed reported", ok)
	checkFloat64PtrEqual(t, "bed.Offset", bed.Offset, 5)
	checkTrue(t, "no history", st.History == nil)
	checkStringEqual(t, "query", lastRequest(t, srv).RawQuery, "")

	srv.Reply(http.MethodGet, octoprinttest.RouteBed, http.StatusConflict, "Printer is not operational")
	_, err = p.GetBedState(bg, HistoryQuery{})
	checkKind(t, err, KindConflict)
}

func TestIssueBedCommand(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteBed, http.StatusNoContent, "")

	checkNoError(t, p.IssueBedCommand(bg, BedTargetCommand{Target: 75}))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"target","target":75}`)

	checkKind(t, p.IssueBedCommand(bg, BedTargetCommand{Target: -1}), KindBadRequest)
	checkKind(t, p.IssueBedCommand(bg, BedOffsetCommand{Offset: 60}), KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 1)
}

func TestSDState(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodGet, octoprinttest.RouteSD, http.StatusOK, `{"ready":true}`)
	srv.Reply(http.MethodPost, octoprinttest.RouteSD, http.StatusNoContent, "")

	st, err := p.GetSDState(bg)
	checkNoError(t, err)
	checkTrue(t, "ready", st.Ready)

	checkNoError(t, p.IssueSDCommand(bg, SDRelease))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"command":"release"}`)

	checkKind(t, p.IssueSDCommand(bg, SDCommand("format")), KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 2)

	srv.Reply(http.MethodGet, octoprinttest.RouteSD, http.StatusNotFound, "SD support is disabled")
	_, err = p.GetSDState(bg)
	checkKind(t, err, KindNotFound)
}

func TestSendCommands(t *testing.T) {
	p, srv := newTestPrinter(t)
	srv.Reply(http.MethodPost, octoprinttest.RouteCommand, http.StatusNoContent, "")

	checkNoError(t, p.SendCommands(bg, "M106 S255", "G28"))
	checkStringEqual(t, "body", string(lastRequest(t, srv).Body), `{"commands":["M106 S255","G28"]}`)

	checkKind(t, p.SendCommands(bg), KindBadRequest)
	checkKind(t, p.SendCommands(bg, "G28", ""), KindBadRequest)
	checkIntEqual(t, "requests", srv.RequestCount(), 1)

	srv.Reply(http.MethodPost, octoprinttest.RouteCommand, http.StatusConflict, "Printer is not operational")
	checkKind(t, p.SendCommands(bg, "G28"), KindConflict)
}
