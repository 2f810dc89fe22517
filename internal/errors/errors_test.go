// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ConvertError
		want string
	}{
		{"io with cause", NewIO("create", "/dist/a.pdf", fs.ErrPermission), "IO_ERROR: create /dist/a.pdf: permission denied"},
		{"parse with cause", NewParse("data/nb.enex", stderrors.New("empty document")), "PARSE_ERROR: parse data/nb.enex: empty document"},
		{"conflict without cause", NewWriteConflict("/dist/a.pdf"), "WRITE_CONFLICT: write /dist/a.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestConvertError_Unwrap(t *testing.T) {
	err := NewIO("open", "data", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, NewWriteConflict("x").Unwrap())
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", NewParse("x", nil), ErrParse, true},
		{"other code", NewParse("x", nil), ErrIO, false},
		{"wrapped", fmt.Errorf("archive: %w", NewWriteConflict("x")), ErrWriteConflict, true},
		{"plain error", stderrors.New("boom"), ErrIO, false},
		{"nil", nil, ErrIO, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Is(tt.err, tt.code))
		})
	}
}
