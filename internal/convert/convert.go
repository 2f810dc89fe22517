// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the archive conversion pipeline: parse each archive,
// dump it as JSON, and extract its PDF attachments into a date-based tree.
//
// Archives are processed one at a time and resources in document order.
// A failing archive or resource is logged and counted; the batch continues.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/enex-convert/internal/archive"
	"github.com/pdiddy/enex-convert/internal/enex"
	converr "github.com/pdiddy/enex-convert/internal/errors"
	"github.com/pdiddy/enex-convert/internal/writer"
	"github.com/pdiddy/enex-convert/pkg/types"
)

// Recorder persists the outcome of each converted archive. The catalog
// store implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.ArchiveRecord) error
}

// now is replaced in tests.
var now = time.Now

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Converted int
	Failed    int

	Notes      int
	Written    int
	Unchanged  int
	Collisions int
	Skipped    int
	// ResourceFailures counts attachments that could not be decoded or written.
	ResourceFailures int

	// Plans holds one plan per parsed archive in dry-run mode.
	Plans []*Plan
}

// Total returns the number of archives processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any archive or attachment failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0 || r.ResourceFailures > 0
}

func (r *BatchResult) add(rec types.ArchiveRecord) {
	r.Notes += len(rec.Notes)
	for _, n := range rec.Notes {
		for _, res := range n.Resources {
			switch res.Status {
			case types.ResourceWritten:
				r.Written++
			case types.ResourceUnchanged:
				r.Unchanged++
			case types.ResourceCollision:
				r.Collisions++
			case types.ResourceSkipped:
				r.Skipped++
			case types.ResourceFailed:
				r.ResourceFailures++
			}
		}
	}
}

// Prepare lists the archives in cfg.SourceDir and, unless this is a dry run
// or cfg.Reset is false, deletes and recreates cfg.DestDir. Any error here
// is fatal for the run.
func Prepare(cfg types.ConvertConfig, log zerolog.Logger) ([]string, error) {
	files, err := archive.List(cfg.SourceDir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", cfg.SourceDir).Int("archives", len(files)).Strs("files", files).Msg("found archives")

	if cfg.Reset && !cfg.DryRun {
		if err := writer.Reset(cfg.DestDir, cfg.SourceDir); err != nil {
			return nil, err
		}
		log.Info().Str("dest", cfg.DestDir).Msg("reset destination")
	}
	return files, nil
}

// ConvertBatch converts each archive file (names relative to cfg.SourceDir)
// in order. rec may be nil. It stops early only when ctx is cancelled.
func ConvertBatch(ctx context.Context, cfg types.ConvertConfig, files []string, rec Recorder, log zerolog.Logger) (BatchResult, error) {
	if abs, err := filepath.Abs(cfg.DestDir); err == nil {
		cfg.DestDir = abs
	}

	var result BatchResult
	for _, file := range files {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		alog := log.With().Str("archive", file).Logger()
		alog.Info().Msg("converting archive")

		record, plan, err := ConvertArchive(cfg, file, alog)
		if err != nil {
			alog.Error().Err(err).Msg("archive failed")
			result.Failed++
			continue
		}
		result.Converted++

		if cfg.DryRun {
			result.Notes += len(plan.Notes)
			result.Plans = append(result.Plans, plan)
			continue
		}
		result.add(record)

		if rec != nil {
			if err := rec.Record(ctx, record); err != nil {
				alog.Warn().Err(err).Msg("catalog update failed")
			}
		}
	}

	log.Info().
		Int("converted", result.Converted).
		Int("failed", result.Failed).
		Int("notes", result.Notes).
		Int("written", result.Written).
		Int("unchanged", result.Unchanged).
		Int("collisions", result.Collisions).
		Int("skipped", result.Skipped).
		Int("resource_failures", result.ResourceFailures).
		Msg(fmt.Sprintf("batch summary: %d converted, %d failed (total: %d)",
			result.Converted, result.Failed, result.Total()))
	return result, nil
}

// ConvertArchive parses one archive and, unless cfg.DryRun is set, writes its
// JSON dump and PDF attachments. Parse and JSON write failures are returned;
// attachment failures are recorded per resource.
func ConvertArchive(cfg types.ConvertConfig, file string, log zerolog.Logger) (types.ArchiveRecord, *Plan, error) {
	export, err := enex.ParseFile(filepath.Join(cfg.SourceDir, file))
	if err != nil {
		return types.ArchiveRecord{}, nil, err
	}
	log.Debug().Str("export_date", export.ExportDate).Str("application", export.Application).
		Int("notes", len(export.Notes)).Msg("parsed archive")

	plan := PlanArchive(cfg.DestDir, file, export)
	if cfg.DryRun {
		log.Info().Int("notes", len(plan.Notes)).Int("writes", plan.Writes()).Msg("planned archive")
		return types.ArchiveRecord{}, plan, nil
	}

	record, err := Execute(plan, log)
	return record, plan, err
}

// Execute carries out a plan: the JSON dump first, then each attachment in
// document order. A JSON write failure aborts the archive. Attachment
// conflicts are skips; other attachment failures are logged and recorded.
func Execute(plan *Plan, log zerolog.Logger) (types.ArchiveRecord, error) {
	record := types.ArchiveRecord{
		Archive:     plan.Archive,
		Base:        plan.Base,
		JSONPath:    plan.JSONPath,
		ExportDate:  plan.export.ExportDate,
		Application: plan.export.Application,
		Version:     plan.export.Version,
		ConvertedAt: now().UTC(),
		Notes:       make([]types.NoteRecord, 0, len(plan.Notes)),
	}

	notes := plan.export.Notes
	if notes == nil {
		notes = []types.Note{}
	}
	if err := writer.WriteJSON(notes, plan.JSONPath); err != nil {
		return record, err
	}
	log.Info().Str("path", plan.JSONPath).Int("notes", len(notes)).Msg("wrote archive JSON")

	for _, np := range plan.Notes {
		record.Notes = append(record.Notes, executeNote(np, log))
	}
	return record, nil
}

func executeNote(np NotePlan, log zerolog.Logger) types.NoteRecord {
	nr := types.NoteRecord{
		Index:     np.Index,
		RawTitle:  np.RawTitle,
		Title:     np.Title,
		Date:      np.Date,
		Created:   np.note.Created,
		Updated:   np.note.Updated,
		Tags:      np.note.Tags,
		SourceURL: np.note.Attributes.SourceURL,
		Resources: make([]types.ResourceRecord, 0, len(np.Attachments)),
	}

	nlog := log.With().Int("note_index", np.Index).Str("note", np.RawTitle).Logger()
	if np.Error != "" {
		nlog.Error().Str("created", np.note.Created).Str("error", np.Error).Msg("cannot resolve note date")
	} else {
		nlog.Info().Str("date", np.Date).Str("title", np.Title).Int("resources", len(np.Attachments)).Msg("note")
	}

	for _, a := range np.Attachments {
		nr.Resources = append(nr.Resources, executeAttachment(a, nlog))
	}
	return nr
}

func executeAttachment(a Attachment, log zerolog.Logger) types.ResourceRecord {
	rr := types.ResourceRecord{
		Index:    a.Index,
		Hash:     a.Hash,
		FileName: a.FileName,
		Path:     a.Path,
	}
	if len(a.Mime) > 0 {
		rr.Mime = a.Mime[0]
	}

	rlog := log.With().Int("resource", a.Index).Str("file_name", a.FileName).Strs("mime", a.Mime).Logger()
	if len(a.Mime) > 1 {
		rlog.Warn().Msg("resource declares more than one MIME type, using the first")
	}

	if a.Skip != "" {
		rlog.Warn().Str("reason", a.Skip).Msg("skipped attachment")
		rr.Status = types.ResourceSkipped
		rr.Error = a.Skip
		return rr
	}

	data, err := enex.DecodeData(a.payload)
	if err != nil {
		rlog.Error().Err(err).Msg("attachment failed")
		rr.Status = types.ResourceFailed
		rr.Error = err.Error()
		return rr
	}

	status, err := writer.WriteResource(data, a.Path)
	rr.Status = status
	switch {
	case err == nil:
		rlog.Info().Str("path", a.Path).Str("hash", a.Hash).Int("bytes", len(data)).Msg("wrote attachment")
	case converr.Is(err, converr.ErrWriteConflict) && status == types.ResourceCollision:
		rlog.Warn().Str("path", a.Path).Str("hash", a.Hash).Msg("hash collision with different content, kept existing file")
	case converr.Is(err, converr.ErrWriteConflict):
		rlog.Info().Str("path", a.Path).Str("hash", a.Hash).Msg("attachment already exists, skipped")
	default:
		rlog.Error().Err(err).Str("path", a.Path).Msg("attachment failed")
		rr.Error = err.Error()
	}
	return rr
}
