// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"path/filepath"

	"github.com/pdiddy/enex-convert/internal/layout"
	"github.com/pdiddy/enex-convert/internal/naming"
	"github.com/pdiddy/enex-convert/pkg/types"
)

// Skip reasons recorded on attachments that are not written.
const (
	SkipNotPDF    = "not a PDF"
	SkipBadDate   = "unresolvable note date"
	SkipNoPayload = "empty payload"
)

// Plan is the list of writes for one archive. Building a Plan never touches
// the filesystem; Execute carries it out.
type Plan struct {
	Archive  string     `json:"archive" yaml:"archive"`
	Base     string     `json:"base" yaml:"base"`
	JSONPath string     `json:"json_path" yaml:"json_path"`
	Notes    []NotePlan `json:"notes" yaml:"notes"`

	export *types.Export
}

// NotePlan holds the resolved name and attachment writes of one note.
type NotePlan struct {
	Index    int    `json:"index" yaml:"index"`
	RawTitle string `json:"raw_title" yaml:"raw_title"`
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`

	// Error explains why Date could not be resolved.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`

	note types.Note
}

// Attachment is a planned write (Path set) or a planned skip (Skip set).
type Attachment struct {
	Index    int      `json:"index" yaml:"index"`
	Mime     []string `json:"mime" yaml:"mime"`
	FileName string   `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Hash     string   `json:"hash" yaml:"hash"`
	Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
	Skip     string   `json:"skip,omitempty" yaml:"skip,omitempty"`

	payload string
}

// PlanArchive maps a parsed archive onto destination paths under dist.
// file is the archive file name; only its base name is used.
func PlanArchive(dist, file string, export *types.Export) *Plan {
	base := layout.ArchiveBase(file)
	p := &Plan{
		Archive:  filepath.Base(file),
		Base:     base,
		JSONPath: layout.JSONPath(dist, file),
		Notes:    make([]NotePlan, 0, len(export.Notes)),
		export:   export,
	}

	for i, note := range export.Notes {
		np := NotePlan{Index: i, RawTitle: note.Title, note: note}

		norm, err := naming.Normalize(note.Title, note.Created)
		if err != nil {
			np.Title = naming.CleanTitle(note.Title)
			np.Error = err.Error()
		} else {
			np.Title = norm.Title
			np.Date = norm.Date
		}

		for j, res := range note.Resources {
			a := Attachment{
				Index:    j,
				Mime:     res.Mime,
				FileName: res.Attributes.FileName,
				Hash:     layout.ContentHash(res.Data),
				payload:  res.Data,
			}
			switch {
			case !res.IsPDF():
				a.Skip = SkipNotPDF
			case err != nil:
				a.Skip = SkipBadDate
			case res.Data == "":
				a.Skip = SkipNoPayload
			default:
				a.Path = layout.ResourcePath(dist, base, np.Date, np.Title, res.Data)
			}
			np.Attachments = append(np.Attachments, a)
		}
		p.Notes = append(p.Notes, np)
	}
	return p
}

// Writes returns the number of attachment files the plan would write.
func (p *Plan) Writes() int {
	n := 0
	for _, np := range p.Notes {
		for _, a := range np.Attachments {
			if a.Path != "" {
				n++
			}
		}
	}
	return n
}
