// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/enex-convert/pkg/types"
)

// QueryOptions filters catalog queries. Empty fields do not filter.
type QueryOptions struct {
	// Archive matches either the archive file name or its base folder name.
	Archive string

	// Year matches the YYYY part of the note date.
	Year string

	// Title is a case-insensitive substring of the cleaned note title.
	Title string

	// Hash matches a resource content hash exactly.
	Hash string

	Status types.ResourceStatus

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Result is one attachment row joined with its note and archive.
type Result struct {
	Archive   string               `json:"archive" yaml:"archive"`
	Base      string               `json:"base" yaml:"base"`
	NoteIndex int                  `json:"note_index" yaml:"note_index"`
	Title     string               `json:"title" yaml:"title"`
	Date      string               `json:"date" yaml:"date"`
	Index     int                  `json:"index" yaml:"index"`
	Hash      string               `json:"hash" yaml:"hash"`
	Mime      string               `json:"mime" yaml:"mime"`
	FileName  string               `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Path      string               `json:"path,omitempty" yaml:"path,omitempty"`
	Status    types.ResourceStatus `json:"status" yaml:"status"`
	Error     string               `json:"error,omitempty" yaml:"error,omitempty"`
}

// Resources returns attachments matching opts, ordered by date, archive,
// and document position.
func (s *Store) Resources(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT a.name, a.base, n.idx, n.title, n.date,
			r.idx, r.hash, r.mime, r.file_name, r.path, r.status, r.error
		FROM resources r
		JOIN notes n ON n.archive = r.archive AND n.idx = r.note_idx
		JOIN archives a ON a.name = r.archive
		WHERE 1=1`)

	if opts.Archive != "" {
		qb.WriteString(` AND (a.name = ? OR a.base = ?)`)
		args = append(args, opts.Archive, opts.Archive)
	}
	if opts.Year != "" {
		qb.WriteString(` AND substr(n.date, 1, 4) = ?`)
		args = append(args, opts.Year)
	}
	if opts.Title != "" {
		qb.WriteString(` AND lower(n.title) LIKE ?`)
		args = append(args, "%"+strings.ToLower(opts.Title)+"%")
	}
	if opts.Hash != "" {
		qb.WriteString(` AND r.hash = ?`)
		args = append(args, opts.Hash)
	}
	if opts.Status != "" {
		qb.WriteString(` AND r.status = ?`)
		args = append(args, string(opts.Status))
	}
	qb.WriteString(` ORDER BY n.date, a.name, n.idx, r.idx LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying resources: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r                                       Result
			date, mime, fileName, path, status, msg *string
		)
		if err := rows.Scan(&r.Archive, &r.Base, &r.NoteIndex, &r.Title, &date,
			&r.Index, &r.Hash, &mime, &fileName, &path, &status, &msg); err != nil {
			return nil, fmt.Errorf("scanning resource row: %w", err)
		}
		r.Date = deref(date)
		r.Mime = deref(mime)
		r.FileName = deref(fileName)
		r.Path = deref(path)
		r.Status = types.ResourceStatus(deref(status))
		r.Error = deref(msg)
		results = append(results, r)
	}
	return results, rows.Err()
}

// StatusCounts returns the number of recorded attachments per status.
func (s *Store) StatusCounts(ctx context.Context) (map[types.ResourceStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) FROM resources GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting resources: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.ResourceStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[types.ResourceStatus(status)] = n
	}
	return counts, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
