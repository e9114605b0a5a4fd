package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest pipeline
var (
	// ErrInvalidConfig indicates the configuration cannot be used for a run
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStreamNotSupported indicates a record with streamed contents
	ErrStreamNotSupported = errors.New("streams are not supported")

	// ErrNotFound indicates a local reference that does not exist on disk
	ErrNotFound = errors.New("file not found")
)

// PluginError is an error raised by the transform, optionally tied to the
// record being processed.
type PluginError struct {
	Plugin string
	File   string
	Msg    string
	Err    error
}

func (e *PluginError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.Plugin, e.File, msg)
	}
	return fmt.Sprintf("%s: %s", e.Plugin, msg)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

func newConfigError(msg string) error {
	return &PluginError{Plugin: PluginName, Msg: msg, Err: ErrInvalidConfig}
}

// NewConfigError returns a configuration error for callers that assemble a
// Config from untyped sources.
func NewConfigError(format string, args ...any) error {
	return newConfigError(fmt.Sprintf(format, args...))
}

func newStreamError(path string) error {
	return &PluginError{Plugin: PluginName, File: path, Msg: "Streams are not supported!", Err: ErrStreamNotSupported}
}

// SkipReason explains why a reference produced no manifest entry.
type SkipReason string

// Skip reasons, in the order the pipeline checks them.
const (
	SkipNone      SkipReason = ""
	SkipDuplicate SkipReason = "already recorded"
	SkipExtension SkipReason = "extension not allowed"
	SkipDataURI   SkipReason = "already encoded"
	SkipMask      SkipReason = "SVG mask"
	SkipRemote    SkipReason = "is remote resource"
	SkipNotFound  SkipReason = "file not found"
)
