// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings for the convert stage.
type ConvertConfig struct {
	// SourceDir is the directory scanned for .enex archives.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// DestDir is the destination root for JSON dumps and extracted PDFs.
	DestDir string `json:"dest_dir" yaml:"dest_dir"`

	// Reset deletes and recreates DestDir before the batch. When false, a
	// run only fills gaps left by earlier runs.
	Reset bool `json:"reset" yaml:"reset"`

	// Catalog records every archive, note, and resource outcome in
	// DestDir/catalog.db.
	Catalog bool `json:"catalog" yaml:"catalog"`

	// DryRun plans the writes without touching the filesystem.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// CatalogConfig holds settings for reading the extraction catalog.
type CatalogConfig struct {
	// DestDir is the destination root that holds catalog.db.
	DestDir string `json:"dest_dir" yaml:"dest_dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
