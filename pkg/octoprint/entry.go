// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Origin is the storage location of a file.
type Origin string

const (
	OriginLocal  Origin = "local"
	OriginSDCard Origin = "sdcard"
)

// Valid reports whether o is a known storage location.
func (o Origin) Valid() bool {
	return o == OriginLocal || o == OriginSDCard
}

func (o Origin) checkShape(raw any, path string) error {
	s, ok := raw.(string)
	if !ok {
		return &ShapeError{Path: path, Reason: "expected string, got " + jsonKind(raw)}
	}
	if !Origin(s).Valid() {
		return &ShapeError{Path: path, Reason: fmt.Sprintf("unknown origin %q", s)}
	}
	return nil
}

// EntryKind is the logical variant of a file tree entry.
type EntryKind int

const (
	EntryFile EntryKind = iota + 1
	EntryFolder
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// entryTypeAliases maps every discriminator spelling the host has used to
// its variant. Tags not listed here fail to parse.
var entryTypeAliases = map[string]EntryKind{
	"machinecode": EntryFile,
	"model":       EntryFile,
	"folder":      EntryFolder,
}

// Entry is a node of the host's file tree: either *File or *Folder.
type Entry interface {
	Kind() EntryKind
	Common() *EntryCommon
	isEntry()
}

var (
	_ Entry = (*File)(nil)
	_ Entry = (*Folder)(nil)
)

// EntryCommon holds the fields shared by files and folders.
type EntryCommon struct {
	Name     string   `json:"name"`
	Display  *string  `json:"display,omitempty"`
	Path     string   `json:"path"`
	Origin   Origin   `json:"origin"`
	TypePath []string `json:"typePath,omitempty"`
	Refs     *Refs    `json:"refs,omitempty"`
}

// File is a printable or model file.
type File struct {
	EntryCommon

	// Type is the wire discriminator, "machinecode" or "model".
	Type          string         `json:"type"`
	Hash          *string        `json:"hash,omitempty"`
	Size          *int64         `json:"size,omitempty"`
	Date          *int64         `json:"date,omitempty"`
	GcodeAnalysis *GcodeAnalysis `json:"gcodeAnalysis,omitempty"`
	Print         *PrintHistory  `json:"prints,omitempty"`
	Statistics    *Statistics    `json:"statistics,omitempty"`
}

func (*File) Kind() EntryKind          { return EntryFile }
func (f *File) Common() *EntryCommon   { return &f.EntryCommon }
func (*File) isEntry()                 {}
func (*Folder) Kind() EntryKind        { return EntryFolder }
func (f *Folder) Common() *EntryCommon { return &f.EntryCommon }
func (*Folder) isEntry()               {}

// Folder is a directory with its (possibly partial) children.
type Folder struct {
	EntryCommon

	Type     string  `json:"type"`
	Size     *int64  `json:"size,omitempty"`
	Children Entries `json:"children,omitempty"`
}

// Entries is an ordered list of file tree entries decoded by discriminator.
type Entries []Entry

// Files returns the direct children that are files.
func (es Entries) Files() []*File {
	var out []*File
	for _, e := range es {
		if f, ok := e.(*File); ok {
			out = append(out, f)
		}
	}
	return out
}

// Folders returns the direct children that are folders.
func (es Entries) Folders() []*Folder {
	var out []*Folder
	for _, e := range es {
		if f, ok := e.(*Folder); ok {
			out = append(out, f)
		}
	}
	return out
}

// Walk visits every entry depth-first, parents before children, stopping
// at the first error returned by fn.
func (es Entries) Walk(fn func(Entry) error) error {
	for _, e := range es {
		if err := fn(e); err != nil {
			return err
		}
		if folder, ok := e.(*Folder); ok {
			if err := folder.Children.Walk(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// entryEnvelope reads only the discriminator of an entry.
type entryEnvelope struct {
	Type string `json:"type"`
}

func lookupEntryKind(tag string) (EntryKind, bool) {
	k, ok := entryTypeAliases[tag]
	return k, ok
}

// UnmarshalJSON decodes each element by its "type" discriminator.
func (es *Entries) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if raws == nil {
		*es = nil
		return nil
	}

	out := make(Entries, 0, len(raws))
	for i, raw := range raws {
		entry, err := decodeEntry(raw)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, entry)
	}
	*es = out
	return nil
}

func decodeEntry(raw json.RawMessage) (Entry, error) {
	var env entryEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	kind, ok := lookupEntryKind(env.Type)
	if !ok {
		return nil, fmt.Errorf("unknown entry type %q", env.Type)
	}

	switch kind {
	case EntryFolder:
		var f Folder
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, err
		}
		return &f, nil
	default:
		var f File
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, err
		}
		return &f, nil
	}
}

// MarshalJSON encodes the concrete entries in order.
func (es Entries) MarshalJSON() ([]byte, error) {
	if es == nil {
		return []byte("null"), nil
	}
	items := make([]any, len(es))
	for i, e := range es {
		items[i] = e
	}
	return json.Marshal(items)
}

var (
	fileType   = reflect.TypeOf(File{})
	folderType = reflect.TypeOf(Folder{})
)

func (Entries) checkShape(raw any, path string) error {
	arr, ok := raw.([]any)
	if !ok {
		return &ShapeError{Path: path, Reason: "expected array, got " + jsonKind(raw)}
	}
	for i, elem := range arr {
		if err := checkEntryShape(elem, indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

func checkEntryShape(raw any, path string) error {
	obj, ok := raw.(map[string]any)
	if !ok {
		return &ShapeError{Path: path, Reason: "expected object, got " + jsonKind(raw)}
	}

	tp := fieldPath(path, "type")
	tagRaw, present := obj["type"]
	if !present {
		return &ShapeError{Path: tp, Reason: "missing required field"}
	}
	tag, ok := tagRaw.(string)
	if !ok {
		return &ShapeError{Path: tp, Reason: "expected string, got " + jsonKind(tagRaw)}
	}
	kind, ok := lookupEntryKind(tag)
	if !ok {
		return &ShapeError{Path: tp, Reason: fmt.Sprintf("unknown entry type %q", tag)}
	}

	target := fileType
	if kind == EntryFolder {
		target = folderType
	}
	return checkValue(obj, target, path)
}

// singleEntry decodes the body of GET /api/files/{origin}/{path}.
type singleEntry struct {
	entry Entry
}

func (s *singleEntry) UnmarshalJSON(data []byte) error {
	e, err := decodeEntry(data)
	if err != nil {
		return err
	}
	s.entry = e
	return nil
}

func (singleEntry) checkShape(raw any, path string) error {
	return checkEntryShape(raw, path)
}
