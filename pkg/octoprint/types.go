// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

// APIVersion is returned by GET /api/version.
type APIVersion struct {
	API    string `json:"api"`
	Server string `json:"server"`
	Text   string `json:"text"`
}

// ConnectionInfo is returned by GET /api/connection.
type ConnectionInfo struct {
	Current ConnectionCurrent `json:"current"`
	Options ConnectionOptions `json:"options"`
}

// ConnectionCurrent describes the active serial connection. Port and
// Baudrate are nil while the printer is disconnected.
type ConnectionCurrent struct {
	State          string  `json:"state"`
	Port           *string `json:"port"`
	Baudrate       *int    `json:"baudrate"`
	PrinterProfile string  `json:"printerProfile"`
}

// ConnectionOptions lists the values accepted by ConnectCommand.
type ConnectionOptions struct {
	Ports                    []string         `json:"ports"`
	Baudrates                []int            `json:"baudrates"`
	PrinterProfiles          []PrinterProfile `json:"printerProfiles"`
	PortPreference           *string          `json:"portPreference,omitempty"`
	BaudratePreference       *int             `json:"baudratePreference,omitempty"`
	PrinterProfilePreference *string          `json:"printerProfilePreference,omitempty"`
	Autoconnect              *bool            `json:"autoconnect,omitempty"`
}

// PrinterProfile is a named printer profile known to the host.
type PrinterProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JobInfo is returned by GET /api/job.
type JobInfo struct {
	Job      Job         `json:"job"`
	Progress JobProgress `json:"progress"`
	State    string      `json:"state"`

	// Error is set by newer hosts when State is an error state.
	Error *string `json:"error,omitempty"`
}

// Job describes the currently selected file. Every field is optional
// because the host reports nulls when no file is selected.
type Job struct {
	File               JobFile                  `json:"file"`
	EstimatedPrintTime *float64                 `json:"estimatedPrintTime"`
	LastPrintTime      *float64                 `json:"lastPrintTime"`
	Filament           map[string]FilamentUsage `json:"filament,omitempty"`
	User               *string                  `json:"user,omitempty"`
}

// JobFile identifies the selected file.
type JobFile struct {
	Name    *string `json:"name"`
	Display *string `json:"display,omitempty"`
	Path    *string `json:"path,omitempty"`
	Origin  *Origin `json:"origin"`
	Size    *int64  `json:"size"`
	Date    *int64  `json:"date"`
}

// JobProgress reports progress of the active print.
type JobProgress struct {
	Completion      *float64 `json:"completion"`
	Filepos         *int64   `json:"filepos"`
	PrintTime       *int64   `json:"printTime"`
	PrintTimeLeft   *int64   `json:"printTimeLeft"`
	PrintTimeOrigin *string  `json:"printTimeOrigin,omitempty"`
}

// FilamentUsage is the estimated filament consumption of one tool.
type FilamentUsage struct {
	Length *float64 `json:"length"`
	Volume *float64 `json:"volume"`
}

// Dimension is the bounding size of a print, in millimetres.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Area is an axis-aligned bounding box, in millimetres.
type Area struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MinZ float64 `json:"minZ"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
	MaxZ float64 `json:"maxZ"`
}

// GcodeAnalysis is the host's slicer-independent analysis of a file.
type GcodeAnalysis struct {
	EstimatedPrintTime *float64                 `json:"estimatedPrintTime"`
	Filament           map[string]FilamentUsage `json:"filament,omitempty"`
	Dimensions         *Dimension               `json:"dimensions,omitempty"`
	PrintingArea       *Area                    `json:"printingArea,omitempty"`
	TravelArea         *Area                    `json:"travelArea,omitempty"`
	TravelDimensions   *Dimension               `json:"travelDimensions,omitempty"`
}

// PrintHistory counts past prints of a file.
type PrintHistory struct {
	Success int               `json:"success"`
	Failure int               `json:"failure"`
	Last    *PrintHistoryLast `json:"last,omitempty"`
}

// PrintHistoryLast describes the most recent print of a file.
type PrintHistoryLast struct {
	Date      float64  `json:"date"`
	PrintTime *float64 `json:"printTime,omitempty"`
	Success   bool     `json:"success"`
}

// Statistics holds per-printer-profile print time statistics.
type Statistics struct {
	AveragePrintTime map[string]float64 `json:"averagePrintTime"`
	LastPrintTime    map[string]float64 `json:"lastPrintTime"`
}

// Refs holds resource URLs for a file entry.
type Refs struct {
	Resource string  `json:"resource"`
	Download *string `json:"download,omitempty"`
	Model    *string `json:"model,omitempty"`
}

// FileList is returned by GET /api/files and GET /api/files/{origin}.
// Free and Total are only reported for local storage.
type FileList struct {
	Files Entries `json:"files,omitempty"`
	Free  *int64  `json:"free,omitempty"`
	Total *int64  `json:"total,omitempty"`
}
