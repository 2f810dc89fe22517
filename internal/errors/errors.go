// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errors defines the error taxonomy of the convert pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a pipeline failure.
type ErrorCode string

const (
	// ErrIO is a directory or file read/write failure. Fatal for the file
	// being processed; fatal for the run only when listing the source.
	ErrIO ErrorCode = "IO_ERROR"

	// ErrParse is a malformed export document. The file is skipped.
	ErrParse ErrorCode = "PARSE_ERROR"

	// ErrWriteConflict means the resource destination already exists.
	// Logged and skipped, never fatal.
	ErrWriteConflict ErrorCode = "WRITE_CONFLICT"
)

// ConvertError is a classified error carrying the failing operation and path.
type ConvertError struct {
	Code ErrorCode
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Code, e.Op, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// NewIO wraps err as an IO_ERROR for op on path.
func NewIO(op, path string, err error) *ConvertError {
	return &ConvertError{Code: ErrIO, Op: op, Path: path, Err: err}
}

// NewParse wraps err as a PARSE_ERROR for path.
func NewParse(path string, err error) *ConvertError {
	return &ConvertError{Code: ErrParse, Op: "parse", Path: path, Err: err}
}

// NewWriteConflict reports that path already exists.
func NewWriteConflict(path string) *ConvertError {
	return &ConvertError{Code: ErrWriteConflict, Op: "write", Path: path}
}

// Is reports whether err, or any error it wraps, is a ConvertError with code.
func Is(err error, code ErrorCode) bool {
	var cErr *ConvertError
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}
