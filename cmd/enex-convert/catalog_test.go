// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/enex-convert/internal/catalog"
	"github.com/pdiddy/enex-convert/pkg/types"
)

func TestFormatCatalogOutput(t *testing.T) {
	results := []catalog.Result{{
		Archive: "notebook.enex", Base: "notebook", Title: "Reisebericht Italien",
		Date: "2022-04-03", Hash: "abc123", Status: types.ResourceWritten,
		Path: "/dist/notebook/2022/04/2022-04-03 Reisebericht Italien abc123.pdf",
	}}

	var buf bytes.Buffer
	require.NoError(t, formatCatalogOutput(&buf, results, false))
	out := buf.String()
	assert.Contains(t, out, "Date")
	assert.Contains(t, out, "2022-04-03")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "written")

	buf.Reset()
	require.NoError(t, formatCatalogOutput(&buf, nil, false))
	assert.Equal(t, "No attachments found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatCatalogOutput(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, formatCatalogOutput(&buf, results, true))
	assert.Contains(t, buf.String(), `"hash": "abc123"`)
}

func TestCatalogQueryFromFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   map[string]string
		args    []string
		want    catalog.QueryOptions
		wantErr bool
	}{
		{"no filters", nil, nil, catalog.QueryOptions{}, false},
		{
			"all filters",
			map[string]string{"archive": "notebook", "year": "2022", "hash": "abc123", "status": "collision"},
			[]string{"italien"},
			catalog.QueryOptions{Archive: "notebook", Year: "2022", Hash: "abc123", Status: types.ResourceCollision, Title: "italien"},
			false,
		},
		{"misspelled status", map[string]string{"status": "writen"}, nil, catalog.QueryOptions{}, true},
		{"status is case sensitive", map[string]string{"status": "Written"}, nil, catalog.QueryOptions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			addCatalogFlags(cmd)
			for k, v := range tt.flags {
				require.NoError(t, cmd.Flags().Set(k, v))
			}

			got, err := catalogQueryFromFlags(cmd, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown resource status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintStatusCounts(t *testing.T) {
	var buf bytes.Buffer
	printStatusCounts(&buf, map[types.ResourceStatus]int{
		types.ResourceWritten: 3,
		types.ResourceSkipped: 1,
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "skipped"))
	assert.True(t, strings.HasPrefix(lines[1], "written"))
	assert.Equal(t, "total      4", lines[2])
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg...", clip("abcdefghijklmnop", 10))
	assert.Equal(t, "äöüäöüä...", clip("äöüäöüäöüäöü", 10))
}

func TestConvertConfig(t *testing.T) {
	cfg := convertConfig([]string{"/exports"})
	assert.Equal(t, "/exports", cfg.SourceDir)
	assert.True(t, cfg.Reset)
	assert.True(t, cfg.Catalog)
	assert.False(t, cfg.DryRun)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, false, true)
	log.Debug().Msg("hidden")
	log.Info().Str("archive", "notebook.enex").Msg("visible")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"archive":"notebook.enex"`)

	buf.Reset()
	log = newLogger(&buf, true, false)
	log.Debug().Msg("debug line")
	assert.Contains(t, buf.String(), "debug line")
}
