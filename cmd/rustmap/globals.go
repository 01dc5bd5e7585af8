// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rustmap/internal/ui"
)

// GlobalFlags are the flags shared by every command.
type GlobalFlags struct {
	// JSON switches output to machine-readable JSON; implies Quiet.
	JSON bool

	// Quiet suppresses progress bars and informational output.
	Quiet bool

	// NoColor disables colored output.
	NoColor bool

	// Debug enables debug logging.
	Debug bool
}

// addGlobalFlags registers the shared flags on a command flag set.
func addGlobalFlags(fs *flag.FlagSet, globals *GlobalFlags) {
	fs.BoolVar(&globals.JSON, "json", false, "Machine-readable JSON output")
	fs.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress progress and informational output")
	fs.BoolVar(&globals.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&globals.Debug, "debug", false, "Enable debug logging")
}

// setupGlobals applies the shared flags: color handling and the default
// logger. JSON output implies quiet.
func setupGlobals(globals *GlobalFlags) *slog.Logger {
	if globals.JSON {
		globals.Quiet = true
	}
	ui.InitColors(globals.NoColor)

	level := slog.LevelWarn
	if globals.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
