package shader

import (
	"errors"
	"fmt"
)

// Failure names the step of a shader build that went wrong. The values are
// the codes printed in diagnostics.
type Failure string

const (
	FailedToOpenFile  Failure = "FAILED_TO_OPEN_FILE"
	CompilationFailed Failure = "COMPILATION_FAILED"
	LinkingFailed     Failure = "LINKING_FAILED"
)

// ErrOpenFile matches any BuildError caused by an unreadable shader file.
var ErrOpenFile = errors.New("failed to open shader file")

// BuildError describes a failed read, compile or link.
type BuildError struct {
	Stage   string // VERTEX, FRAGMENT or PROGRAM; empty for file errors
	Failure Failure
	Path    string
	Log     string // driver info log, truncated to MaxInfoLog bytes
	Err     error
}

func (e *BuildError) Error() string {
	msg := "ERROR::SHADER::"
	if e.Stage != "" {
		msg += e.Stage + "::"
	}
	msg += string(e.Failure)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Log != "" {
		msg += "\n" + e.Log
	}
	return msg
}

func (e *BuildError) Unwrap() error { return e.Err }

func (e *BuildError) Is(target error) bool {
	return target == ErrOpenFile && e.Failure == FailedToOpenFile
}
