// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records converted archives, notes, and attachment outcomes
// in a SQLite database under the destination root, and answers queries
// about them.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/enex-convert/pkg/types"
)

// DBFile is the catalog file name inside the destination root.
const DBFile = "catalog.db"

const defaultMaxResults = 50

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Path returns the catalog location for a destination root.
func Path(destDir string) string {
	return filepath.Join(destDir, DBFile)
}

// NewStore opens or creates the catalog at cfg.DestDir/catalog.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", err)
	}

	db, err := sql.Open("sqlite3", Path(cfg.DestDir)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// OpenExisting opens the catalog under destDir without creating it.
func OpenExisting(cfg types.CatalogConfig) (*Store, error) {
	path := Path(cfg.DestDir)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no catalog at %s: %w", path, err)
	}
	return NewStore(cfg)
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS archives (
			name TEXT PRIMARY KEY,
			base TEXT NOT NULL,
			json_path TEXT NOT NULL,
			export_date TEXT,
			application TEXT,
			version TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			archive TEXT NOT NULL REFERENCES archives(name) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			raw_title TEXT,
			title TEXT,
			date TEXT,
			created TEXT,
			updated TEXT,
			tags TEXT,
			source_url TEXT,
			PRIMARY KEY (archive, idx)
		)`,
		`CREATE TABLE IF NOT EXISTS resources (
			archive TEXT NOT NULL,
			note_idx INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			hash TEXT NOT NULL,
			mime TEXT,
			file_name TEXT,
			path TEXT,
			status TEXT NOT NULL,
			error TEXT,
			PRIMARY KEY (archive, note_idx, idx),
			FOREIGN KEY (archive, note_idx) REFERENCES notes(archive, idx) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_date ON notes(date)`,
		`CREATE INDEX IF NOT EXISTS idx_resources_hash ON resources(hash)`,
		`CREATE INDEX IF NOT EXISTS idx_resources_status ON resources(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record replaces everything stored for rec.Archive with rec, in one
// transaction.
func (s *Store) Record(ctx context.Context, rec types.ArchiveRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM archives WHERE name = ?`, rec.Archive); err != nil {
		return fmt.Errorf("deleting old archive record: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO archives (name, base, json_path, export_date, application, version, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Archive, rec.Base, rec.JSONPath, rec.ExportDate, rec.Application, rec.Version,
		rec.ConvertedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting archive: %w", err)
	}

	noteStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO notes (archive, idx, raw_title, title, date, created, updated, tags, source_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing note insert: %w", err)
	}
	defer noteStmt.Close()

	resStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO resources (archive, note_idx, idx, hash, mime, file_name, path, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing resource insert: %w", err)
	}
	defer resStmt.Close()

	for _, n := range rec.Notes {
		tagsJSON, _ := json.Marshal(n.Tags)
		if _, err := noteStmt.ExecContext(ctx,
			rec.Archive, n.Index, n.RawTitle, n.Title, n.Date, n.Created, n.Updated,
			string(tagsJSON), n.SourceURL,
		); err != nil {
			return fmt.Errorf("inserting note %d: %w", n.Index, err)
		}
		for _, r := range n.Resources {
			if _, err := resStmt.ExecContext(ctx,
				rec.Archive, n.Index, r.Index, r.Hash, r.Mime, r.FileName, r.Path,
				string(r.Status), r.Error,
			); err != nil {
				return fmt.Errorf("inserting resource %d of note %d: %w", r.Index, n.Index, err)
			}
		}
	}

	return tx.Commit()
}
