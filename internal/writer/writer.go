// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writer performs every filesystem write of the convert pipeline:
// JSON dumps, no-clobber attachment writes, and the destination reset.
package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	converr "github.com/pdiddy/enex-convert/internal/errors"
	"github.com/pdiddy/enex-convert/pkg/types"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteJSON writes v as 2-space indented JSON to path, creating parent
// directories. An existing file is replaced through a temp file and rename,
// so a failed write leaves the previous content in place.
func WriteJSON(v any, path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return converr.NewIO("encode", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return converr.NewIO("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".enex-convert-*.tmp")
	if err != nil {
		return converr.NewIO("create", path, err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(buf.Bytes())
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return converr.NewIO("write", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return converr.NewIO("close", path, closeErr)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		os.Remove(tmpPath)
		return converr.NewIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return converr.NewIO("rename", path, err)
	}
	return nil
}

// WriteResource writes data to path only if nothing exists there yet.
//
// On success it returns ResourceWritten. When path already exists it returns
// a WRITE_CONFLICT error together with ResourceUnchanged (same bytes on disk)
// or ResourceCollision (different bytes under the same hashed name); the
// existing file is never touched. Other failures return ResourceFailed and an
// IO_ERROR, and no partial file is left behind.
func WriteResource(data []byte, path string) (types.ResourceStatus, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return types.ResourceFailed, converr.NewIO("mkdir", dir, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if os.IsExist(err) {
			return existingStatus(data, path), converr.NewWriteConflict(path)
		}
		return types.ResourceFailed, converr.NewIO("create", path, err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		os.Remove(path)
		return types.ResourceFailed, converr.NewIO("write", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return types.ResourceFailed, converr.NewIO("close", path, closeErr)
	}
	return types.ResourceWritten, nil
}

// existingStatus compares data with the file already at path.
func existingStatus(data []byte, path string) types.ResourceStatus {
	existing, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(existing, data) {
		return types.ResourceCollision
	}
	return types.ResourceUnchanged
}

// Reset deletes dist recursively and recreates it empty. It refuses to
// delete the filesystem root, the working directory or one of its parents,
// and any directory that is or contains source.
func Reset(dist, source string) error {
	absDist, err := filepath.Abs(dist)
	if err != nil {
		return converr.NewIO("resolve", dist, err)
	}
	if err := checkResettable(absDist, source); err != nil {
		return converr.NewIO("reset", absDist, err)
	}

	if err := os.RemoveAll(absDist); err != nil {
		return converr.NewIO("remove", absDist, err)
	}
	if err := os.MkdirAll(absDist, dirPerm); err != nil {
		return converr.NewIO("mkdir", absDist, err)
	}
	return nil
}

func checkResettable(absDist, source string) error {
	if filepath.Dir(absDist) == absDist {
		return fmt.Errorf("refusing to delete filesystem root")
	}
	if wd, err := os.Getwd(); err == nil && contains(absDist, wd) {
		return fmt.Errorf("refusing to delete the working directory or its parent")
	}
	if source != "" {
		absSource, err := filepath.Abs(source)
		if err != nil {
			return err
		}
		if contains(absDist, absSource) {
			return fmt.Errorf("destination contains source directory %s", absSource)
		}
	}
	return nil
}

// contains reports whether path equals dir or lies beneath it.
func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
