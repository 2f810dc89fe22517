// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout resolves destination paths for archive dumps and extracted
// attachments. All functions are pure; dist is expected to be absolute.
//
// Layout under dist:
//
//	<base>/<stem>.json
//	<base>/<YYYY>/<MM>/<YYYY-MM-DD> <title> <hash>.pdf
//
// where stem is the archive file name without extension and base is the
// stem with any chunk suffix removed.
package layout

import (
	"crypto/sha1"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// HashLen is the number of hex characters kept from the payload digest.
const HashLen = 6

// maxTitleBytes bounds the title part of a file name so that
// "<date> <title> <hash>.pdf" stays under common 255-byte name limits.
const maxTitleBytes = 200

// chunkSuffix matches the " 2" or ".03" numbering that multi-part exports
// append to a notebook name.
var chunkSuffix = regexp.MustCompile(`[ .]\d{1,2}$`)

// ArchiveStem returns the archive file name without directory and extension.
func ArchiveStem(file string) string {
	name := filepath.Base(file)
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, ".enex") {
		name = name[:len(name)-len(ext)]
	}
	return name
}

// ArchiveBase returns the notebook name for an archive file: the stem with a
// trailing chunk suffix removed, so "notebook 2.enex" and "notebook.enex"
// share one destination folder.
func ArchiveBase(file string) string {
	stem := ArchiveStem(file)
	base := strings.TrimSpace(chunkSuffix.ReplaceAllString(stem, ""))
	if base == "" {
		return stem
	}
	return base
}

// JSONPath returns dist/<base>/<stem>.json for an archive file. Chunks of
// one notebook share the folder but keep separate dumps.
func JSONPath(dist, file string) string {
	return filepath.Join(dist, ArchiveBase(file), ArchiveStem(file)+".json")
}

// NoteDir returns dist/<base>/<YYYY>/<MM> for a canonical YYYY-MM-DD date.
func NoteDir(dist, base, date string) string {
	return filepath.Join(dist, base, date[:4], date[5:7])
}

// NoteStem returns "<date> <title>", or just the date for an empty title.
func NoteStem(date, title string) string {
	title = truncate(title, maxTitleBytes)
	if title == "" {
		return date
	}
	return date + " " + title
}

// ContentHash returns the first HashLen hex characters of the SHA-1 digest
// of a resource's base64 payload. The parser has already removed whitespace,
// so differently wrapped copies of one attachment share a hash.
func ContentHash(payload string) string {
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])[:HashLen]
}

// ResourcePath returns the destination of a PDF attachment:
// dist/<base>/<YYYY>/<MM>/<date> <title> <hash>.pdf.
func ResourcePath(dist, base, date, title, payload string) string {
	name := NoteStem(date, title) + " " + ContentHash(payload) + ".pdf"
	return filepath.Join(NoteDir(dist, base, date), name)
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimSpace(s[:n])
}
