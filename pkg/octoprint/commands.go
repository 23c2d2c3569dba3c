// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

// Each command family is a closed interface: only the variant types in this
// file implement it. Each family encodes to one flat request record whose
// optional fields are pointers so unset fields are omitted on the wire.

// ============================================================================
// Connection
// ============================================================================

// ConnectionCommand is one of ConnectCommand, DisconnectCommand or FakeAckCommand.
type ConnectionCommand interface {
	connectionRequest() ConnectionRequest
}

// ConnectCommand opens a serial connection. Use GetConnection for the
// accepted ports, baudrates and printer profiles.
type ConnectCommand struct {
	Port           string `validate:"required"`
	Baudrate       int    `validate:"gt=0"`
	PrinterProfile string `validate:"required"`
	// Save stores the settings as the new connection preference.
	Save bool
	// Autoconnect connects on host startup.
	Autoconnect bool
}

// DisconnectCommand closes the serial connection.
type DisconnectCommand struct{}

// FakeAckCommand sends a fake acknowledgement to the firmware.
type FakeAckCommand struct{}

// ConnectionRequest is the wire body of POST /api/connection.
type ConnectionRequest struct {
	Command        string  `json:"command"`
	Port           *string `json:"port,omitempty"`
	Baudrate       *int    `json:"baudrate,omitempty"`
	PrinterProfile *string `json:"printerProfile,omitempty"`
	Save           *bool   `json:"save,omitempty"`
	Autoconnect    *bool   `json:"autoconnect,omitempty"`
}

func (c ConnectCommand) connectionRequest() ConnectionRequest {
	return ConnectionRequest{
		Command:        "connect",
		Port:           ptr(c.Port),
		Baudrate:       ptr(c.Baudrate),
		PrinterProfile: ptr(c.PrinterProfile),
		Save:           ptr(c.Save),
		Autoconnect:    ptr(c.Autoconnect),
	}
}

func (DisconnectCommand) connectionRequest() ConnectionRequest {
	return ConnectionRequest{Command: "disconnect"}
}

func (FakeAckCommand) connectionRequest() ConnectionRequest {
	return ConnectionRequest{Command: "fake_ack"}
}

// EncodeConnection returns the wire record for cmd.
func EncodeConnection(cmd ConnectionCommand) ConnectionRequest {
	return cmd.connectionRequest()
}

// ============================================================================
// Files
// ============================================================================

// FileCommand is one of SelectCommand, UnselectCommand, CopyCommand or MoveCommand.
type FileCommand interface {
	fileRequest() FileRequest
}

// SelectCommand selects a file for printing, optionally starting the print.
type SelectCommand struct {
	Print bool
}

// UnselectCommand clears the current selection.
type UnselectCommand struct{}

// CopyCommand copies a file or folder to Destination on the same origin.
type CopyCommand struct {
	Destination string `validate:"required"`
}

// MoveCommand moves a file or folder to Destination on the same origin.
type MoveCommand struct {
	Destination string `validate:"required"`
}

// FileRequest is the wire body of POST /api/files/{origin}/{path}.
type FileRequest struct {
	Command     string  `json:"command"`
	Print       *bool   `json:"print,omitempty"`
	Destination *string `json:"destination,omitempty"`
}

func (c SelectCommand) fileRequest() FileRequest {
	return FileRequest{Command: "select", Print: ptr(c.Print)}
}

func (UnselectCommand) fileRequest() FileRequest {
	return FileRequest{Command: "unselect"}
}

func (c CopyCommand) fileRequest() FileRequest {
	return FileRequest{Command: "copy", Destination: ptr(c.Destination)}
}

func (c MoveCommand) fileRequest() FileRequest {
	return FileRequest{Command: "move", Destination: ptr(c.Destination)}
}

// EncodeFile returns the wire record for cmd.
func EncodeFile(cmd FileCommand) FileRequest {
	return cmd.fileRequest()
}

// ============================================================================
// Job
// ============================================================================

// JobCommand is one of StartCommand, CancelCommand, RestartCommand,
// PauseCommand, ResumeCommand or TogglePauseCommand.
type JobCommand interface {
	jobRequest() JobRequest
}

// StartCommand starts printing the selected file.
type StartCommand struct{}

// CancelCommand cancels the active print.
type CancelCommand struct{}

// RestartCommand restarts a paused print from the beginning.
type RestartCommand struct{}

// PauseCommand pauses the active print.
type PauseCommand struct{}

// ResumeCommand resumes a paused print.
type ResumeCommand struct{}

// TogglePauseCommand pauses a running print or resumes a paused one.
type TogglePauseCommand struct{}

// JobRequest is the wire body of POST /api/job.
type JobRequest struct {
	Command string  `json:"command"`
	Action  *string `json:"action,omitempty"`
}

func (StartCommand) jobRequest() JobRequest   { return JobRequest{Command: "start"} }
func (CancelCommand) jobRequest() JobRequest  { return JobRequest{Command: "cancel"} }
func (RestartCommand) jobRequest() JobRequest { return JobRequest{Command: "restart"} }

func (PauseCommand) jobRequest() JobRequest {
	return JobRequest{Command: "pause", Action: ptr("pause")}
}

func (ResumeCommand) jobRequest() JobRequest {
	return JobRequest{Command: "pause", Action: ptr("resume")}
}

func (TogglePauseCommand) jobRequest() JobRequest {
	return JobRequest{Command: "pause", Action: ptr("toggle")}
}

// EncodeJob returns the wire record for cmd.
func EncodeJob(cmd JobCommand) JobRequest {
	return cmd.jobRequest()
}

// ============================================================================
// Printhead
// ============================================================================

// Axis names a printhead axis.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// PrintheadCommand is one of HomeCommand, JogCommand or FeedrateCommand.
type PrintheadCommand interface {
	printheadRequest() PrintheadRequest
}

// HomeCommand homes the given axes.
type HomeCommand struct {
	Axes []Axis `validate:"min=1,dive,oneof=x y z"`
}

// JogCommand moves the printhead. Nil axes are left untouched. With
// Absolute unset the amounts are relative to the current position.
type JogCommand struct {
	X        *float64 `validate:"required_without_all=Y Z"`
	Y        *float64
	Z        *float64
	Absolute bool
	// Speed is in mm/min; nil uses the host default.
	Speed *int `validate:"omitempty,gt=0"`
}

// FeedrateCommand sets the feedrate factor, 1.0 being 100%.
type FeedrateCommand struct {
	Factor float64 `validate:"gte=0.5,lte=2"`
}

// PrintheadRequest is the wire body of POST /api/printer/printhead.
type PrintheadRequest struct {
	Command  string   `json:"command"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Z        *float64 `json:"z,omitempty"`
	Absolute *bool    `json:"absolute,omitempty"`
	Speed    *int     `json:"speed,omitempty"`
	Axes     []Axis   `json:"axes,omitempty"`
	Factor   *float64 `json:"factor,omitempty"`
}

func (c HomeCommand) printheadRequest() PrintheadRequest {
	return PrintheadRequest{Command: "home", Axes: c.Axes}
}

func (c JogCommand) printheadRequest() PrintheadRequest {
	req := PrintheadRequest{Command: "jog", X: c.X, Y: c.Y, Z: c.Z, Speed: c.Speed}
	if c.Absolute {
		req.Absolute = ptr(true)
	}
	return req
}

func (c FeedrateCommand) printheadRequest() PrintheadRequest {
	return PrintheadRequest{Command: "feedrate", Factor: ptr(c.Factor)}
}

// EncodePrinthead returns the wire record for cmd.
func EncodePrinthead(cmd PrintheadCommand) PrintheadRequest {
	return cmd.printheadRequest()
}

// ============================================================================
// Tool
// ============================================================================

// ToolCommand is one of ToolTargetCommand, ToolOffsetCommand,
// ToolSelectCommand, ExtrudeCommand or FlowrateCommand.
type ToolCommand interface {
	toolRequest() ToolRequest
}

// ToolTargetCommand sets target temperatures keyed by tool ("tool0", ...).
type ToolTargetCommand struct {
	Targets map[string]float64 `validate:"min=1,dive,keys,toolname,endkeys,gte=0"`
}

// ToolOffsetCommand sets temperature offsets keyed by tool.
type ToolOffsetCommand struct {
	Offsets map[string]float64 `validate:"min=1,dive,keys,toolname,endkeys,gte=-50,lte=50"`
}

// ToolSelectCommand makes Tool the active tool.
type ToolSelectCommand struct {
	Tool string `validate:"toolname"`
}

// ExtrudeCommand extrudes Amount millimetres of filament on the active
// tool; a negative Amount retracts.
type ExtrudeCommand struct {
	Amount float64
	// Speed is in mm/min; nil uses the host default.
	Speed *int `validate:"omitempty,gt=0"`
}

// FlowrateCommand sets the flow rate factor, 1.0 being 100%.
type FlowrateCommand struct {
	Factor float64 `validate:"gte=0.75,lte=1.25"`
}

// ToolRequest is the wire body of POST /api/printer/tool.
type ToolRequest struct {
	Command string             `json:"command"`
	Targets map[string]float64 `json:"targets,omitempty"`
	Offsets map[string]float64 `json:"offsets,omitempty"`
	Tool    *string            `json:"tool,omitempty"`
	Amount  *float64           `json:"amount,omitempty"`
	Speed   *int               `json:"speed,omitempty"`
	Factor  *float64           `json:"factor,omitempty"`
}

func (c ToolTargetCommand) toolRequest() ToolRequest {
	return ToolRequest{Command: "target", Targets: c.Targets}
}

func (c ToolOffsetCommand) toolRequest() ToolRequest {
	return ToolRequest{Command: "offset", Offsets: c.Offsets}
}

func (c ToolSelectCommand) toolRequest() ToolRequest {
	return ToolRequest{Command: "select", Tool: ptr(c.Tool)}
}

func (c ExtrudeCommand) toolRequest() ToolRequest {
	return ToolRequest{Command: "extrude", Amount: ptr(c.Amount), Speed: c.Speed}
}

func (c FlowrateCommand) toolRequest() ToolRequest {
	return ToolRequest{Command: "flowrate", Factor: ptr(c.Factor)}
}

// EncodeTool returns the wire record for cmd.
func EncodeTool(cmd ToolCommand) ToolRequest {
	return cmd.toolRequest()
}

// ============================================================================
// Bed
// ============================================================================

// BedCommand is one of BedTargetCommand or BedOffsetCommand.
type BedCommand interface {
	bedRequest() BedRequest
}

// BedTargetCommand sets the bed target temperature.
type BedTargetCommand struct {
	Target float64 `validate:"gte=0"`
}

// BedOffsetCommand sets the bed temperature offset.
type BedOffsetCommand struct {
	Offset float64 `validate:"gte=-50,lte=50"`
}

// BedRequest is the wire body of POST /api/printer/bed.
type BedRequest struct {
	Command string   `json:"command"`
	Target  *float64 `json:"target,omitempty"`
	Offset  *float64 `json:"offset,omitempty"`
}

func (c BedTargetCommand) bedRequest() BedRequest {
	return BedRequest{Command: "target", Target: ptr(c.Target)}
}

func (c BedOffsetCommand) bedRequest() BedRequest {
	return BedRequest{Command: "offset", Offset: ptr(c.Offset)}
}

// EncodeBed returns the wire record for cmd.
func EncodeBed(cmd BedCommand) BedRequest {
	return cmd.bedRequest()
}

// ============================================================================
// SD card
// ============================================================================

// SDCommand instructs the host to init, refresh or release the SD card.
type SDCommand string

const (
	SDInit    SDCommand = "init"
	SDRefresh SDCommand = "refresh"
	SDRelease SDCommand = "release"
)

// SDRequest is the wire body of POST /api/printer/sd.
type SDRequest struct {
	Command string `json:"command" validate:"oneof=init refresh release"`
}

// EncodeSD returns the wire record for cmd.
func EncodeSD(cmd SDCommand) SDRequest {
	return SDRequest{Command: string(cmd)}
}

// ============================================================================
// Arbitrary G-code
// ============================================================================

// CommandRequest is the wire body of POST /api/printer/command.
type CommandRequest struct {
	Commands []string `json:"commands" validate:"min=1,dive,required"`
}

func ptr[T any](v T) *T {
	return &v
}
