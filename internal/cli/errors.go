// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - error types and exit codes shared by all commands.
//
// Handlers return errors and never exit; main displays them once and picks
// the exit code.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/mmq-tui/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	// ExitUsageError covers bad arguments and input rejected before any request
	ExitUsageError = 2
	// ExitConfigError covers an unreadable or invalid config file
	ExitConfigError = 3
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError is a failed request. Message is the generic text users see;
// Err keeps the cause for logs.
type CommandError struct {
	Command string
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError is input rejected before anything was sent.
type ValidationError struct {
	Field   string
	Value   string
	Reason  string
	Example string
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NewCommandError creates a request failure.
func NewCommandError(command, message string, err error) error {
	return &CommandError{Command: command, Message: message, Err: err}
}

// ErrMissingArgument reports a missing required argument with a usage example.
func ErrMissingArgument(argName, usage string) error {
	return &ValidationError{Field: argName, Reason: "required argument missing", Example: usage}
}

// alertError wraps an alert text from a screen controller as a usage error.
func alertError(text string) error {
	return &ValidationError{Reason: text}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to w in text or JSON form.
func DisplayError(w io.Writer, command string, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(w, command, err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// DisplayErrorJSON writes an error response with its error type.
func DisplayErrorJSON(w io.Writer, command string, err error) {
	resp := NewJSONErrorResponse(command, err)

	var cmdErr *CommandError
	var valErr *ValidationError
	var cfgErr config.ValidateErrors
	switch {
	case errors.As(err, &cmdErr):
		resp.ErrorType = "request_error"
	case errors.As(err, &valErr):
		resp.ErrorType = "validation_error"
	case errors.As(err, &cfgErr):
		resp.ErrorType = "config_error"
	default:
		resp.ErrorType = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(resp)
}

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return ExitUsageError
	}

	var cfgErr config.ValidateErrors
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	return ExitGeneralError
}
