package mergesplit

import (
	"errors"
	"fmt"
)

// ErrRead indicates the input could not be opened or is not a readable workbook.
var ErrRead = errors.New("read error")

// ErrMergeParse indicates the merge markup of the worksheet could not be parsed.
var ErrMergeParse = errors.New("merge parse error")

// ErrWrite indicates the output workbook could not be created.
var ErrWrite = errors.New("write error")

// ErrConfig indicates the process configuration could not be resolved.
var ErrConfig = errors.New("config error")

// ErrCanceled indicates the context was done before processing finished.
var ErrCanceled = errors.New("processing canceled")

// ErrorKind names the pipeline stage that failed.
type ErrorKind string

const (
	KindRead       ErrorKind = "ReadError"
	KindMergeParse ErrorKind = "MergeParseError"
	KindWrite      ErrorKind = "WriteError"
	KindConfig     ErrorKind = "ConfigError"
	KindCanceled   ErrorKind = "Canceled"
)

var kindSentinels = map[ErrorKind]error{
	KindRead:       ErrRead,
	KindMergeParse: ErrMergeParse,
	KindWrite:      ErrWrite,
	KindConfig:     ErrConfig,
	KindCanceled:   ErrCanceled,
}

// ProcessError is a fatal error that stopped processing.
type ProcessError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s on %q: %v", e.Kind, e.Path, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind, so errors.Is(err, ErrRead) works.
func (e *ProcessError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// NewProcessError creates a new ProcessError.
func NewProcessError(kind ErrorKind, path string, err error) *ProcessError {
	return &ProcessError{
		Kind: kind,
		Path: path,
		Err:  err,
	}
}
