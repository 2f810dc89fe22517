// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	converr "github.com/pdiddy/enex-convert/internal/errors"
	"github.com/pdiddy/enex-convert/pkg/types"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nb", "nb.json")
	notes := []types.Note{{
		Title:     "Quick Note",
		Created:   "20230915T120000Z",
		Updated:   "20230915T120000Z",
		Content:   "<en-note>a & b</en-note>",
		Resources: []types.Resource{},
	}}

	require.NoError(t, WriteJSON(notes, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "[\n  {\n    \"title\": \"Quick Note\""), "got %q", content)
	assert.Contains(t, content, "<en-note>a & b</en-note>", "HTML must not be escaped")
	assert.Contains(t, content, `"resources": []`)

	var back []types.Note
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, notes, back)

	// Field order follows the struct: title, created, updated.
	ti := strings.Index(content, `"title"`)
	ci := strings.Index(content, `"created"`)
	ui := strings.Index(content, `"updated"`)
	assert.True(t, ti < ci && ci < ui)
}

func TestWriteJSON_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteJSON(map[string]int{"a": 1}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteJSON_UnwritableParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteJSON([]int{1}, filepath.Join(blocker, "sub", "out.json"))
	require.Error(t, err)
	assert.True(t, converr.Is(err, converr.ErrIO))
}

func TestWriteResource(t *testing.T) {
	tests := []struct {
		name       string
		existing   []byte
		data       []byte
		wantStatus types.ResourceStatus
		wantCode   converr.ErrorCode
		wantOnDisk string
	}{
		{
			name:       "writes new file",
			data:       []byte("%PDF new"),
			wantStatus: types.ResourceWritten,
			wantOnDisk: "%PDF new",
		},
		{
			name:       "identical file is unchanged conflict",
			existing:   []byte("%PDF same"),
			data:       []byte("%PDF same"),
			wantStatus: types.ResourceUnchanged,
			wantCode:   converr.ErrWriteConflict,
			wantOnDisk: "%PDF same",
		},
		{
			name:       "different content is a collision and not overwritten",
			existing:   []byte("%PDF first"),
			data:       []byte("%PDF second"),
			wantStatus: types.ResourceCollision,
			wantCode:   converr.ErrWriteConflict,
			wantOnDisk: "%PDF first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nb", "2022", "04", "2022-04-03 Trip abc123.pdf")
			if tt.existing != nil {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, tt.existing, 0o644))
			}

			status, err := WriteResource(tt.data, path)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantCode == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, converr.Is(err, tt.wantCode), "got %v", err)
			}

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOnDisk, string(got))
		})
	}
}

func TestWriteResource_MkdirFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	status, err := WriteResource([]byte("pdf"), filepath.Join(blocker, "a.pdf"))
	assert.Equal(t, types.ResourceFailed, status)
	assert.True(t, converr.Is(err, converr.ErrIO))
}

func TestReset(t *testing.T) {
	root := t.TempDir()
	dist := filepath.Join(root, "dist")
	require.NoError(t, os.MkdirAll(filepath.Join(dist, "nb", "2022"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "nb", "nb.json"), []byte("[]"), 0o644))

	require.NoError(t, Reset(dist, filepath.Join(root, "data")))

	entries, err := os.ReadDir(dist)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReset_CreatesMissing(t *testing.T) {
	dist := filepath.Join(t.TempDir(), "new", "dist")
	require.NoError(t, Reset(dist, ""))

	info, err := os.Stat(dist)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestReset_Refuses(t *testing.T) {
	root := t.TempDir()
	source := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(source, 0o755))
	marker := filepath.Join(source, "keep.enex")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0o644))

	tests := []struct {
		name string
		dist string
	}{
		{"filesystem root", string(filepath.Separator)},
		{"same as source", source},
		{"parent of source", root},
		{"working directory", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Reset(tt.dist, source)
			require.Error(t, err)
			assert.True(t, converr.Is(err, converr.ErrIO))
			_, statErr := os.Stat(marker)
			assert.NoError(t, statErr, "source must survive a refused reset")
		})
	}
}
