// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive locates Evernote export archives in a source directory.
package archive

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	converr "github.com/pdiddy/enex-convert/internal/errors"
)

// Ext is the export archive file extension, matched case-insensitively.
const Ext = ".enex"

// IsArchive reports whether name carries the export extension.
func IsArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Ext)
}

// List returns the names of the archive files directly inside dir, sorted by
// name. Subdirectories are ignored even when their name matches. A missing or
// unreadable dir yields an IO_ERROR.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, converr.NewIO("list", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsArchive(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
