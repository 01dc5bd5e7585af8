// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the rustmap CLI.
//
// This package defines UserError, a type that carries structured error
// information including what went wrong, why it happened, and how to fix it.
// It also defines consistent exit codes for the different error categories of
// the extraction pipeline.
//
// # Exit Codes
//
// The package defines semantic exit codes following Unix conventions:
//   - ExitSuccess (0): Successful execution (including broken-pipe exits)
//   - ExitConfig (1): Configuration errors (invalid config, bad project root)
//   - ExitInput (4): Invalid user input (bad arguments, unknown formats)
//   - ExitNotFound (6): Resource not found (element ID, file)
//   - ExitInternal (10): Internal errors (bugs, panics)
//
// Per-file extraction failures are not errors in this sense: they accumulate
// into a PartialFailure value on the extraction result and the CLI reports
// them as a warning, not an exit.
package errors

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitConfig indicates configuration or project-boundary errors.
	ExitConfig = 1

	// ExitInput indicates invalid user input (bad arguments, validation).
	ExitInput = 4

	// ExitNotFound indicates a missing resource (element, file, project).
	ExitNotFound = 6

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	// Exit code 10 signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information:
//   - Message: what went wrong (user-facing error description)
//   - Cause: why it happened (diagnostic information)
//   - Fix: how to fix it (actionable suggestion)
//
// UserError also carries an exit code for consistent CLI exit behavior and
// optionally wraps an underlying error for error chain compatibility.
type UserError struct {
	// Message describes what went wrong in user-friendly language.
	Message string

	// Cause explains why the error occurred.
	Cause string

	// Fix provides an actionable suggestion on how to resolve the error.
	Fix string

	// ExitCode is used when exiting due to this error.
	ExitCode int

	// Err is the underlying error, enabling errors.Is/As.
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error with exit code ExitConfig.
//
// Use this for invalid configuration values, an unreadable config file, or a
// project root that is not a Rust project.
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitConfig, Err: err}
}

// NewInputError creates an input validation error with exit code ExitInput.
// Input errors typically do not wrap an underlying error.
func NewInputError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInput}
}

// NewNotFoundError creates a resource not found error with exit code
// ExitNotFound.
func NewNotFoundError(msg, cause, fix string) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitNotFound}
}

// NewSerializationError creates an internal error for a failed output
// projection. Serialization failures are surfaced to the caller; there is no
// retry.
func NewSerializationError(format string, err error) *UserError {
	return &UserError{
		Message:  fmt.Sprintf("Failed to serialize %s output", format),
		Cause:    "The output projection could not be encoded",
		Fix:      "This is a bug. Please report it at github.com/kraklabs/rustmap/issues",
		ExitCode: ExitInternal,
		Err:      err,
	}
}

// NewInternalError creates an internal error with exit code ExitInternal.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{Message: msg, Cause: cause, Fix: fix, ExitCode: ExitInternal, Err: err}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display: Error in
// red, Cause in yellow, Fix in green. Colors respect NO_COLOR and the
// noColor parameter.
func (e *UserError) Format(noColor bool) string {
	var b strings.Builder

	write := func(c *color.Color, label, text string) {
		if text == "" {
			return
		}
		if noColor {
			fmt.Fprintf(&b, "%s %s\n", label, text)
			return
		}
		fmt.Fprintf(&b, "%s %s\n", c.Sprint(label), text)
	}

	write(colorError, "Error:", e.Message)
	write(colorCause, "Cause:", e.Cause)
	write(colorFix, "Fix:  ", e.Fix)
	return b.String()
}

// ToJSON returns the machine-readable representation of the error.
func (e *UserError) ToJSON() map[string]any {
	out := map[string]any{
		"error":     e.Message,
		"exit_code": e.ExitCode,
	}
	if e.Cause != "" {
		out["cause"] = e.Cause
	}
	if e.Fix != "" {
		out["fix"] = e.Fix
	}
	if e.Err != nil {
		out["detail"] = e.Err.Error()
	}
	return out
}

// FatalError prints an error and exits with its exit code. Non-UserError
// values exit with ExitInternal. When jsonOutput is set the error is emitted
// as JSON on stderr instead of colored text.
func FatalError(err error, jsonOutput bool) {
	userErr, ok := err.(*UserError)
	if !ok {
		userErr = NewInternalError("Unexpected error", err.Error(), "This is a bug. Please report it at github.com/kraklabs/rustmap/issues", err)
	}

	if jsonOutput {
		_ = json.NewEncoder(os.Stderr).Encode(userErr.ToJSON())
	} else {
		fmt.Fprint(os.Stderr, userErr.Format(false))
	}
	os.Exit(userErr.ExitCode)
}
