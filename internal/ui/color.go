// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package ui provides user interface utilities for the rustmap CLI.
//
// This package offers color output helpers that respect the --no-color flag
// and NO_COLOR environment variable. Colors are automatically disabled when
// the output is not a TTY (e.g., when piped).
//
// Color usage guidelines:
//   - Red: Errors, failures, very high complexity
//   - Yellow: Warnings, partial failures, high complexity
//   - Green: Success, completions, low complexity
//   - Cyan: Info, neutral messages
//   - Bold: Headers, important labels
//   - Dim: Less important details, paths
package ui

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/kraklabs/rustmap/pkg/complexity"
)

// Pre-configured color instances for consistent CLI output.
//
// These are initialized at package load time and respect the global
// color.NoColor setting when called.
var (
	// Red is used for error messages and failures.
	Red = color.New(color.FgRed)

	// Yellow is used for warnings and partial failures.
	Yellow = color.New(color.FgYellow)

	// Green is used for success messages.
	Green = color.New(color.FgGreen)

	// Cyan is used for informational messages.
	Cyan = color.New(color.FgCyan)

	// Bold is used for headers and important labels.
	Bold = color.New(color.Bold)

	// Dim is used for less important details like paths.
	Dim = color.New(color.Faint)
)

// InitColors configures global color output based on the noColor flag.
//
// This should be called early in main() after parsing flags. The fatih/color
// library already respects NO_COLOR automatically; this provides explicit
// control via the CLI flag.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

// Success prints a green success message with a checkmark prefix.
//
// Example output: "✓ Extracted 42 files"
func Success(msg string) {
	_, _ = Green.Println("✓ " + msg)
}

// Successf prints a formatted green success message with a checkmark prefix.
func Successf(format string, args ...any) {
	_, _ = Green.Printf("✓ "+format+"\n", args...)
}

// Warning prints a yellow warning message with a warning symbol prefix.
//
// Example output: "⚠ 3 files failed to parse"
func Warning(msg string) {
	_, _ = Yellow.Println("⚠ " + msg)
}

// Warningf prints a formatted yellow warning message.
func Warningf(format string, args ...any) {
	_, _ = Yellow.Printf("⚠ "+format+"\n", args...)
}

// Errorf prints a formatted red error message with a cross prefix.
func Errorf(format string, args ...any) {
	_, _ = Red.Printf("✗ "+format+"\n", args...)
}

// Info prints a cyan informational message.
func Info(msg string) {
	_, _ = Cyan.Println(msg)
}

// Infof prints a formatted cyan informational message.
func Infof(format string, args ...any) {
	_, _ = Cyan.Printf(format+"\n", args...)
}

// Header prints a bold section header.
func Header(msg string) {
	_, _ = Bold.Println(msg)
}

// ComplexityLevel renders a complexity level with its conventional color:
// green for Low, cyan for Medium, yellow for High, red for VeryHigh.
func ComplexityLevel(level complexity.Level) string {
	switch level {
	case complexity.LevelLow:
		return Green.Sprint(string(level))
	case complexity.LevelMedium:
		return Cyan.Sprint(string(level))
	case complexity.LevelHigh:
		return Yellow.Sprint(string(level))
	default:
		return Red.Sprint(string(level))
	}
}

// Path renders a file path dimmed.
func Path(path string) string {
	return Dim.Sprint(path)
}

// Count renders a labeled count, e.g. "functions: 42".
func Count(label string, n int) string {
	return fmt.Sprintf("%s: %s", label, Bold.Sprint(n))
}
