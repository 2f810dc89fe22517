// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceStatus(t *testing.T) {
	for _, st := range ResourceStatuses {
		got, err := ParseResourceStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	got, err := ParseResourceStatus("")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"writen", "WRITTEN", " written", "ok"} {
		_, err := ParseResourceStatus(bad)
		assert.Error(t, err, bad)
	}
}

func TestResource_PrimaryMime(t *testing.T) {
	assert.True(t, Resource{Mime: []string{MimePDF, "image/png"}}.IsPDF())
	assert.False(t, Resource{Mime: []string{"image/png", MimePDF}}.IsPDF())
	assert.False(t, Resource{}.IsPDF())
	assert.Empty(t, Resource{}.PrimaryMime())
}
