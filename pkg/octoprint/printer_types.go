// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"reflect"
	"sort"

	"github.com/goccy/go-json"
)

// PrinterState is returned by GET /api/printer. Sections excluded with
// PrinterStateQuery.Exclude are nil.
type PrinterState struct {
	Temperature *TemperatureState `json:"temperature,omitempty"`
	SD          *SDState          `json:"sd,omitempty"`
	State       *PrinterStatus    `json:"state,omitempty"`
}

// SDState is returned by GET /api/printer/sd and embedded in PrinterState.
type SDState struct {
	Ready bool `json:"ready"`
}

// PrinterStatus is the host's textual state plus its flag set.
type PrinterStatus struct {
	Text  string       `json:"text"`
	Flags PrinterFlags `json:"flags"`
}

// PrinterFlags mirrors the host's state flags.
type PrinterFlags struct {
	Operational   bool  `json:"operational"`
	Paused        bool  `json:"paused"`
	Printing      bool  `json:"printing"`
	Pausing       *bool `json:"pausing,omitempty"`
	Cancelling    *bool `json:"cancelling,omitempty"`
	SDReady       bool  `json:"sdReady"`
	Error         bool  `json:"error"`
	Ready         bool  `json:"ready"`
	ClosedOrError bool  `json:"closedOrError"`
}

// TemperatureData is the current reading of one heater.
type TemperatureData struct {
	Actual float64  `json:"actual"`
	Target *float64 `json:"target"`
	Offset *float64 `json:"offset,omitempty"`
}

// TemperatureReading is one heater's sample inside a history entry.
type TemperatureReading struct {
	Actual float64  `json:"actual"`
	Target *float64 `json:"target"`
}

// TemperatureState maps heater names ("tool0", "bed", "chamber") to their
// current readings. History is only present when requested.
type TemperatureState struct {
	Heaters map[string]TemperatureData
	History []TemperatureHistoryEntry
}

// Heater returns the reading for name and whether it was reported.
func (s TemperatureState) Heater(name string) (TemperatureData, bool) {
	d, ok := s.Heaters[name]
	return d, ok
}

// Names returns the reported heater names in sorted order.
func (s TemperatureState) Names() []string {
	names := make([]string, 0, len(s.Heaters))
	for k := range s.Heaters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

const historyKey = "history"

var (
	temperatureDataType    = reflect.TypeOf(TemperatureData{})
	temperatureReadingType = reflect.TypeOf(TemperatureReading{})
	historyType            = reflect.TypeOf([]TemperatureHistoryEntry(nil))
)

// UnmarshalJSON flattens heater keys beside the optional history array.
func (s *TemperatureState) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := TemperatureState{Heaters: make(map[string]TemperatureData, len(fields))}
	for k, raw := range fields {
		if k == historyKey {
			if err := json.Unmarshal(raw, &out.History); err != nil {
				return err
			}
			continue
		}
		var d TemperatureData
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		out.Heaters[k] = d
	}
	*s = out
	return nil
}

// MarshalJSON re-flattens heaters and history into one object.
func (s TemperatureState) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(s.Heaters)+1)
	for k, v := range s.Heaters {
		obj[k] = v
	}
	if s.History != nil {
		obj[historyKey] = s.History
	}
	return json.Marshal(obj)
}

func (TemperatureState) checkShape(raw any, path string) error {
	obj, ok := raw.(map[string]any)
	if !ok {
		return &ShapeError{Path: path, Reason: "expected object, got " + jsonKind(raw)}
	}
	for _, k := range sortedKeys(obj) {
		target := temperatureDataType
		if k == historyKey {
			target = historyType
		}
		if err := checkValue(obj[k], target, fieldPath(path, k)); err != nil {
			return err
		}
	}
	return nil
}

// TemperatureHistoryEntry is one sample of the temperature history.
type TemperatureHistoryEntry struct {
	Time     int64
	Readings map[string]TemperatureReading
}

// UnmarshalJSON splits the "time" key from the per-heater readings.
func (e *TemperatureHistoryEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := TemperatureHistoryEntry{Readings: make(map[string]TemperatureReading, len(fields))}
	for k, raw := range fields {
		if k == "time" {
			var t float64
			if err := json.Unmarshal(raw, &t); err != nil {
				return err
			}
			out.Time = int64(t)
			continue
		}
		var r TemperatureReading
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		out.Readings[k] = r
	}
	*e = out
	return nil
}

// MarshalJSON emits the wire form with "time" beside the readings.
func (e TemperatureHistoryEntry) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(e.Readings)+1)
	for k, v := range e.Readings {
		obj[k] = v
	}
	obj["time"] = e.Time
	return json.Marshal(obj)
}

var int64Type = reflect.TypeOf(int64(0))

func (TemperatureHistoryEntry) checkShape(raw any, path string) error {
	obj, ok := raw.(map[string]any)
	if !ok {
		return &ShapeError{Path: path, Reason: "expected object, got " + jsonKind(raw)}
	}
	t, present := obj["time"]
	if !present {
		return &ShapeError{Path: fieldPath(path, "time"), Reason: "missing required field"}
	}
	if err := checkValue(t, int64Type, fieldPath(path, "time")); err != nil {
		return err
	}
	for _, k := range sortedKeys(obj) {
		if k == "time" {
			continue
		}
		if err := checkValue(obj[k], temperatureReadingType, fieldPath(path, k)); err != nil {
			return err
		}
	}
	return nil
}

// ToolState is returned by GET /api/printer/tool.
type ToolState = TemperatureState

// BedState is returned by GET /api/printer/bed.
type BedState = TemperatureState
