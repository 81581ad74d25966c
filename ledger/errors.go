package ledger

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
)

// NotFoundError reports a missing file or an entry index past the end of the
// daily ledger.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

// SchemaError reports required columns absent from the source ledger header.
// Missing holds the exact header titles that were not found.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source ledger missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ParseError reports a file that exists but cannot be read as a workbook of
// the expected shape.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteKind classifies a failed write of the daily ledger.
type WriteKind string

const (
	WriteFileLocked       WriteKind = "file_locked"
	WritePermissionDenied WriteKind = "permission_denied"
	WriteIOFailure        WriteKind = "io_failure"
)

type WriteError struct {
	Kind WriteKind
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func classifyWriteError(path string, err error) *WriteError {
	switch {
	case errors.Is(err, os.ErrPermission):
		return &WriteError{Kind: WritePermissionDenied, Path: path, Err: err}
	case errors.Is(err, syscall.EBUSY), errors.Is(err, syscall.ETXTBSY), isSharingViolation(err):
		return &WriteError{Kind: WriteFileLocked, Path: path, Err: err}
	}
	return &WriteError{Kind: WriteIOFailure, Path: path, Err: err}
}

// isSharingViolation matches the Windows errors raised when the target
// workbook is open in Excel. POSIX systems do not lock files against opens,
// so there the locked subkind only ever comes from EBUSY.
func isSharingViolation(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "used by another process") || strings.Contains(s, "sharing violation")
}
