// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the enex-convert pipeline:
// the parsed export (Export, Note, Resource), values derived from a note title
// (ExtractedInfo), per-resource outcomes (ResourceStatus), and stage
// configuration.
package types

import "fmt"

// MimePDF is the only attachment type extracted to disk.
const MimePDF = "application/pdf"

// Export is one parsed archive file: the root element attributes and the
// notes in document order.
type Export struct {
	// ExportDate is the en-export export-date attribute (YYYYMMDDTHHMMSSZ).
	ExportDate string `json:"export_date,omitempty" yaml:"export_date,omitempty"`

	// Application names the exporting client (e.g. "Evernote").
	Application string `json:"application,omitempty" yaml:"application,omitempty"`

	// Version is the exporting client version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Notes holds every note in document order.
	Notes []Note `json:"notes" yaml:"notes"`
}

// Note is one exported note. Resources and Tags are always sequences,
// whether the source held zero, one, or many of them.
type Note struct {
	Title   string `json:"title" yaml:"title"`
	Created string `json:"created" yaml:"created"`
	Updated string `json:"updated" yaml:"updated"`

	// Tags lists the note tags in source order.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	Attributes NoteAttributes `json:"attributes" yaml:"attributes"`

	// Content is the ENML body, kept verbatim.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	Resources []Resource `json:"resources" yaml:"resources"`
}

// NoteAttributes holds the optional note-attributes block.
type NoteAttributes struct {
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Resource is a binary attachment embedded in a note.
type Resource struct {
	// Data is the base64 payload as found in the export, whitespace removed.
	Data string `json:"data" yaml:"data"`

	// Mime lists the declared MIME types. Only the first entry is meaningful.
	Mime []string `json:"mime" yaml:"mime"`

	Attributes ResourceAttributes `json:"resource_attributes" yaml:"resource_attributes"`
}

// ResourceAttributes holds the optional resource-attributes block.
// FileName is informational and never used to name output files.
type ResourceAttributes struct {
	FileName  string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// PrimaryMime returns the first declared MIME type, or "" when none is set.
func (r Resource) PrimaryMime() string {
	if len(r.Mime) == 0 {
		return ""
	}
	return r.Mime[0]
}

// IsPDF reports whether the resource's primary MIME type is PDF.
func (r Resource) IsPDF() bool {
	return r.PrimaryMime() == MimePDF
}

// ExtractedInfo is derived from a raw note title: the cleaned display title
// and the D.M.YYYY date token found in it, if any.
type ExtractedInfo struct {
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date,omitempty" yaml:"date,omitempty"`
}

// ResourceStatus records what happened to one resource during a run.
type ResourceStatus string

const (
	ResourceWritten   ResourceStatus = "written"
	ResourceUnchanged ResourceStatus = "unchanged"
	ResourceCollision ResourceStatus = "collision"
	ResourceSkipped   ResourceStatus = "skipped"
	ResourceFailed    ResourceStatus = "failed"
)

// ResourceStatuses lists every status in pipeline order.
var ResourceStatuses = []ResourceStatus{
	ResourceWritten, ResourceUnchanged, ResourceCollision, ResourceSkipped, ResourceFailed,
}

// ParseResourceStatus returns the status named s. The empty string is
// accepted and means no status.
func ParseResourceStatus(s string) (ResourceStatus, error) {
	if s == "" {
		return "", nil
	}
	for _, st := range ResourceStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown resource status %q (want written, unchanged, collision, skipped, or failed)", s)
}
