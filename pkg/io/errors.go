package io

import (
	"fmt"

	"github.com/matzehuels/isofixture/pkg/errors"
)

// FormatError reports a malformed fixture file.
type FormatError struct {
	Path string // file path, set by ImportText
	Line int    // 1-based line number, 0 when the problem is not tied to a line
	Msg  string
	Err  error // underlying parse or validation error, if any
}

func (e *FormatError) Error() string {
	prefix := ""
	if e.Path != "" {
		prefix = e.Path + ":"
	}
	if e.Line > 0 {
		prefix += fmt.Sprintf("%d:", e.Line)
	}
	if prefix != "" {
		prefix += " "
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %v", prefix, e.Msg, e.Err)
	}
	return prefix + e.Msg
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error { return e.Err }

// Code reports INVALID_FORMAT so errors.Is(err, errors.ErrCodeInvalidFormat) matches.
func (e *FormatError) Code() errors.Code { return errors.ErrCodeInvalidFormat }

func formatErr(line int, err error, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...), Err: err}
}
