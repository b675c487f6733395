package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnknownCommand is matched by every *UnknownCommandError.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrToolNotFound is matched by every *ToolNotFoundError.
	ErrToolNotFound = errors.New("tool not found")

	// ErrStageFailed is matched by every *StageFailure.
	ErrStageFailed = errors.New("stage failed")
)

// ConfigurationError reports a fatal problem with the environment or project configuration.
type ConfigurationError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UnknownCommandError reports an operation name that is not build, upload or clean.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q (expected one of: build, upload, clean)", e.Name)
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

// ToolNotFoundError reports an executable that could not be located or launched.
type ToolNotFoundError struct {
	Path string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tool not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("tool not found: %s", e.Path)
}

func (e *ToolNotFoundError) Is(target error) bool { return target == ErrToolNotFound }

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// StageFailure reports a stage whose tool exited nonzero or never started.
// It is an expected outcome, not a programming error.
type StageFailure struct {
	Stage    StageName
	ExitCode int
	Err      error
}

func (e *StageFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("stage %s failed with exit code %d", e.Stage, e.ExitCode)
}

func (e *StageFailure) Is(target error) bool { return target == ErrStageFailed }

func (e *StageFailure) Unwrap() error { return e.Err }
