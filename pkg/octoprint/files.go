// Octolink - Typed OctoPrint REST API Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/octolink

package octoprint

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// FilePath addresses a file or folder on one origin.
type FilePath struct {
	Origin Origin
	// Path is relative to the origin root; a leading "/" is ignored.
	Path string
}

// FilesQuery selects a listing for GetFiles.
type FilesQuery struct {
	// Origin limits the listing to one storage location; "" lists both.
	Origin Origin
	// Force refreshes the host's file list cache (sdcard) before answering.
	Force bool
	// Recursive includes nested folder contents.
	Recursive bool
}

// FileQuery selects a single entry for GetFile.
type FileQuery struct {
	File      FilePath
	Force     bool
	Recursive bool
}

// listingQuery renders the flags in their fixed order, force before
// recursive, emitting only flags that are set.
func listingQuery(force, recursive bool) string {
	var params []string
	if force {
		params = append(params, "force=true")
	}
	if recursive {
		params = append(params, "recursive=true")
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + strings.Join(params, "&")
}

// resourcePath returns "/api/files/{origin}/{path}" with every path segment
// escaped, or "" when fp cannot address a resource.
func (fp FilePath) resourcePath() string {
	if !fp.Origin.Valid() {
		return ""
	}
	p := strings.TrimPrefix(fp.Path, "/")
	if p == "" {
		return ""
	}
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/api/files/" + string(fp.Origin) + "/" + strings.Join(segments, "/")
}

// GetFiles lists files on both origins or on q.Origin.
func (p *Printer) GetFiles(ctx context.Context, q FilesQuery) (*FileList, error) {
	if e := checkFilesQuery(q); e != nil {
		return nil, p.rejected(ctx, e)
	}
	path := "/api/files"
	if q.Origin != "" {
		path += "/" + string(q.Origin)
	}

	var list FileList
	if err := p.call(ctx, epGetFiles, http.MethodGet, path+listingQuery(q.Force, q.Recursive), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetFile retrieves one file or folder. The result is *File or *Folder.
func (p *Printer) GetFile(ctx context.Context, q FileQuery) (Entry, error) {
	if e := checkFilePath(epGetFile, q.File); e != nil {
		return nil, p.rejected(ctx, e)
	}
	path := q.File.resourcePath()

	var e singleEntry
	if err := p.call(ctx, epGetFile, http.MethodGet, path+listingQuery(q.Force, q.Recursive), nil, &e); err != nil {
		return nil, err
	}
	return e.entry, nil
}

// IssueFileCommand selects, unselects, copies or moves a file. The host
// answers 409 while the printer is busy with the file.
func (p *Printer) IssueFileCommand(ctx context.Context, file FilePath, cmd FileCommand) error {
	if e := checkFileCommand(file, cmd); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, epFileCommand, http.MethodPost, file.resourcePath(), EncodeFile(cmd), nil)
}

// DeleteFile deletes a file or folder. The host answers 409 when the file
// is being printed.
func (p *Printer) DeleteFile(ctx context.Context, file FilePath) error {
	if e := checkFilePath(epDeleteFile, file); e != nil {
		return p.rejected(ctx, e)
	}
	return p.call(ctx, epDeleteFile, http.MethodDelete, file.resourcePath(), nil, nil)
}
