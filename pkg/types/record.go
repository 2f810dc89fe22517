// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArchiveRecord is the outcome of converting one archive file, as stored in
// the extraction catalog.
type ArchiveRecord struct {
	// Archive is the source file name (e.g. "notebook 2.enex").
	Archive string `json:"archive" yaml:"archive"`

	// Base is the destination folder name shared by all chunks of a notebook.
	Base string `json:"base" yaml:"base"`

	// JSONPath is where the parsed note list was written.
	JSONPath string `json:"json_path" yaml:"json_path"`

	// ExportDate, Application and Version are the en-export root
	// attributes. The JSON dump holds only the note list.
	ExportDate  string    `json:"export_date,omitempty" yaml:"export_date,omitempty"`
	Application string    `json:"application,omitempty" yaml:"application,omitempty"`
	Version     string    `json:"version,omitempty" yaml:"version,omitempty"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`

	Notes []NoteRecord `json:"notes" yaml:"notes"`
}

// NoteRecord is the outcome for one note of an archive.
type NoteRecord struct {
	// Index is the note position in the archive, zero-based.
	Index int `json:"index" yaml:"index"`

	RawTitle  string   `json:"raw_title" yaml:"raw_title"`
	Title     string   `json:"title" yaml:"title"`
	Date      string   `json:"date" yaml:"date"`
	Created   string   `json:"created" yaml:"created"`
	Updated   string   `json:"updated" yaml:"updated"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	SourceURL string   `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	Resources []ResourceRecord `json:"resources" yaml:"resources"`
}

// ResourceRecord is the outcome for one attachment of a note.
type ResourceRecord struct {
	// Index is the resource position within its note, zero-based.
	Index int `json:"index" yaml:"index"`

	Hash     string         `json:"hash" yaml:"hash"`
	Mime     string         `json:"mime" yaml:"mime"`
	FileName string         `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Path     string         `json:"path,omitempty" yaml:"path,omitempty"`
	Status   ResourceStatus `json:"status" yaml:"status"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
}
