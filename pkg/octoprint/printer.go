// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// PrinterStateQuery selects what GET /api/printer reports.
type PrinterStateQuery struct {
	// History includes the temperature history.
	History bool
	// Limit caps the number of history samples; ignored without History.
	Limit int `validate:"gte=0"`
	// Exclude drops sections from the answer: "temperature", "sd", "state".
	Exclude []string `validate:"dive,oneof=temperature sd state"`
}

// HistoryQuery selects the temperature history of a tool or bed reading.
type HistoryQuery struct {
	History bool
	Limit   int `validate:"gte=0"`
}

// historyQuery renders history and limit in that order; limit is only
// sent together with history.
func historyQuery(history bool, limit int) []string {
	if !history {
		return nil
	}
	params := []string{"history=true"}
	if limit > 0 {
		params = append(params, "limit="+strconv.Itoa(limit))
	}
	return params
}

func joinQuery(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "?" + strings.Join(params, "&")
}

// GetPrinterState retrieves temperature, SD and state telemetry. The host
// answers 409 while the printer is not operational.
func (p *Printer) GetPrinterState(ctx context.Context, q PrinterStateQuery) (*PrinterState, error) {
	if e := checkFields(epGetPrinter, q); e != nil {
		return nil, p.rejected(ctx, e)
	}
	params := historyQuery(q.History, q.Limit)
	if len(q.Exclude) > 0 {
		params = append(params, "exclude="+strings.Join(q.Exclude, ","))
	}

	var state PrinterState
	if err := p.call(ctx, epGetPrinter, http.MethodGet, "/api/printer"+joinQuery(params), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// IssuePrintheadCommand jogs or homes the printhead, or sets the feedrate.
func (p *Printer) IssuePrintheadCommand(ctx context.Context, cmd PrintheadCommand) error {
	return p.printhead(ctx, epPrintheadCommand, cmd)
}

// ChangePrintheadFeedrate sets the feedrate factor. Factors outside
// [0.5, 2.0] are rejected as BadRequest without contacting the host.
func (p *Printer) ChangePrintheadFeedrate(ctx context.Context, factor float64) error {
	return p.printhead(ctx, epFeedrate, FeedrateCommand{Factor: factor})
}

func (p *Printer) printhead(ctx context.Context, ep endpoint, cmd PrintheadCommand) error {
	if e := checkPrintheadCommand(ep, cmd); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, ep, http.MethodPost, "/api/printer/printhead", EncodePrinthead(cmd), nil)
}

// GetToolState retrieves the temperature of every tool.
func (p *Printer) GetToolState(ctx context.Context, q HistoryQuery) (*ToolState, error) {
	return p.heaterState(ctx, epGetTool, "/api/printer/tool", q)
}

// IssueToolCommand sets tool targets or offsets, selects a tool, extrudes,
// or sets the flow rate.
func (p *Printer) IssueToolCommand(ctx context.Context, cmd ToolCommand) error {
	return p.tool(ctx, epToolCommand, cmd)
}

// ChangeToolFlowrate sets the flow rate factor. Factors outside
// [0.75, 1.25] are rejected as BadRequest without contacting the host.
func (p *Printer) ChangeToolFlowrate(ctx context.Context, factor float64) error {
	return p.tool(ctx, epFlowrate, FlowrateCommand{Factor: factor})
}

func (p *Printer) tool(ctx context.Context, ep endpoint, cmd ToolCommand) error {
	if e := checkToolCommand(ep, cmd); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, ep, http.MethodPost, "/api/printer/tool", EncodeTool(cmd), nil)
}

// GetBedState retrieves the bed temperature.
func (p *Printer) GetBedState(ctx context.Context, q HistoryQuery) (*BedState, error) {
	return p.heaterState(ctx, epGetBed, "/api/printer/bed", q)
}

// IssueBedCommand sets the bed target or offset.
func (p *Printer) IssueBedCommand(ctx context.Context, cmd BedCommand) error {
	if e := checkBedCommand(cmd); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, epBedCommand, http.MethodPost, "/api/printer/bed", EncodeBed(cmd), nil)
}

func (p *Printer) heaterState(ctx context.Context, ep endpoint, path string, q HistoryQuery) (*TemperatureState, error) {
	if e := checkFields(ep, q); e != nil {
		return nil, p.rejected(ctx, e)
	}
	var state TemperatureState
	if err := p.call(ctx, ep, http.MethodGet, path+joinQuery(historyQuery(q.History, q.Limit)), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// GetSDState reports whether the SD card is ready. The host answers 404
// when SD support is disabled.
func (p *Printer) GetSDState(ctx context.Context) (*SDState, error) {
	var state SDState
	if err := p.call(ctx, epGetSD, http.MethodGet, "/api/printer/sd", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// IssueSDCommand initializes, refreshes or releases the SD card.
func (p *Printer) IssueSDCommand(ctx context.Context, cmd SDCommand) error {
	if e := checkSDCommand(cmd); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, epSDCommand, http.MethodPost, "/api/printer/sd", EncodeSD(cmd), nil)
}

// SendCommands sends raw G-code lines to the printer in order.
func (p *Printer) SendCommands(ctx context.Context, commands ...string) error {
	if e := checkSendCommands(commands); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, epSendCommands, http.MethodPost, "/api/printer/command", CommandRequest{Commands: commands}, nil)
}
