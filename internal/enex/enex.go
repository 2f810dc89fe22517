// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enex decodes Evernote export (ENEX) documents into the shared
// types.Export model.
//
// Repeatable elements (note, tag, resource, mime) are collected into slices
// at this boundary, so callers never distinguish a single occurrence from
// many.
package enex

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	converr "github.com/pdiddy/enex-convert/internal/errors"
	"github.com/pdiddy/enex-convert/pkg/types"
)

// ENEX XML structures.
type enExport struct {
	XMLName     xml.Name `xml:"en-export"`
	ExportDate  string   `xml:"export-date,attr"`
	Application string   `xml:"application,attr"`
	Version     string   `xml:"version,attr"`
	Notes       []enNote `xml:"note"`
}

type enNote struct {
	Title      string       `xml:"title"`
	Content    string       `xml:"content"`
	Created    string       `xml:"created"`
	Updated    string       `xml:"updated"`
	Tags       []string     `xml:"tag"`
	Attributes enNoteAttrs  `xml:"note-attributes"`
	Resources  []enResource `xml:"resource"`
}

type enNoteAttrs struct {
	SourceURL string `xml:"source-url"`
	Author    string `xml:"author"`
	Source    string `xml:"source"`
}

type enResource struct {
	Data       enData          `xml:"data"`
	Mime       []string        `xml:"mime"`
	Attributes enResourceAttrs `xml:"resource-attributes"`
}

type enData struct {
	Encoding string `xml:"encoding,attr"`
	Value    string `xml:",chardata"`
}

type enResourceAttrs struct {
	FileName  string `xml:"file-name"`
	SourceURL string `xml:"source-url"`
}

// Parse decodes one ENEX document from r. Malformed XML, or a document whose
// root is not en-export, yields a PARSE_ERROR. Note order is preserved.
func Parse(r io.Reader) (*types.Export, error) {
	return parse(r, "")
}

// ParseFile opens and decodes the ENEX document at path. Read failures are
// IO_ERRORs; decode failures are PARSE_ERRORs.
func ParseFile(path string) (*types.Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, converr.NewIO("open", path, err)
	}
	defer f.Close()
	return parse(f, path)
}

func parse(r io.Reader, path string) (*types.Export, error) {
	dec := xml.NewDecoder(r)
	// Titles exported from the web clipper carry HTML entities such as &nbsp;.
	dec.Entity = xml.HTMLEntity

	var doc enExport
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			err = fmt.Errorf("empty document")
		}
		return nil, converr.NewParse(path, err)
	}

	export := &types.Export{
		ExportDate:  strings.TrimSpace(doc.ExportDate),
		Application: strings.TrimSpace(doc.Application),
		Version:     strings.TrimSpace(doc.Version),
		Notes:       make([]types.Note, 0, len(doc.Notes)),
	}
	for _, n := range doc.Notes {
		export.Notes = append(export.Notes, convertNote(n))
	}
	return export, nil
}

func convertNote(n enNote) types.Note {
	note := types.Note{
		Title:   n.Title,
		Created: strings.TrimSpace(n.Created),
		Updated: strings.TrimSpace(n.Updated),
		Attributes: types.NoteAttributes{
			SourceURL: strings.TrimSpace(n.Attributes.SourceURL),
			Author:    strings.TrimSpace(n.Attributes.Author),
			Source:    strings.TrimSpace(n.Attributes.Source),
		},
		Content:   n.Content,
		Resources: make([]types.Resource, 0, len(n.Resources)),
	}
	for _, tag := range n.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			note.Tags = append(note.Tags, tag)
		}
	}
	for _, res := range n.Resources {
		note.Resources = append(note.Resources, convertResource(res))
	}
	return note
}

func convertResource(r enResource) types.Resource {
	res := types.Resource{
		Data: stripSpace(r.Data.Value),
		Mime: make([]string, 0, len(r.Mime)),
		Attributes: types.ResourceAttributes{
			FileName:  strings.TrimSpace(r.Attributes.FileName),
			SourceURL: strings.TrimSpace(r.Attributes.SourceURL),
		},
	}
	for _, m := range r.Mime {
		if m = strings.TrimSpace(m); m != "" {
			res.Mime = append(res.Mime, m)
		}
	}
	return res
}

// DecodeData decodes a resource's base64 payload. Line breaks and other
// whitespace inside the payload are ignored.
func DecodeData(data string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(stripSpace(data))
	if err != nil {
		return nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return b, nil
}

// stripSpace removes all whitespace from s.
func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
