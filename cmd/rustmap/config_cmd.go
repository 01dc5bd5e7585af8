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
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rustmap/internal/errors"
	"github.com/kraklabs/rustmap/internal/output"
	"github.com/kraklabs/rustmap/internal/ui"
	"github.com/kraklabs/rustmap/pkg/config"
)

// runConfig executes the 'config' subcommands: init, validate, show,
// template.
func runConfig(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: rustmap config {init|validate|show|template}")
		os.Exit(errors.ExitInput)
	}

	sub := args[0]
	fs := flag.NewFlagSet("config "+sub, flag.ExitOnError)
	var globals GlobalFlags
	addGlobalFlags(fs, &globals)
	root := fs.String("root", ".", "Project root directory")
	if err := fs.Parse(args[1:]); err != nil {
		os.Exit(errors.ExitInput)
	}
	setupGlobals(&globals)

	switch sub {
	case "init":
		path := filepath.Join(*root, "rustmap.toml")
		if err := config.WriteTemplate(path); err != nil {
			errors.FatalError(errors.NewConfigError(
				"Cannot create configuration",
				err.Error(),
				"Remove the existing file first, or edit it in place",
				err,
			), globals.JSON)
		}
		ui.Successf("Created %s", path)

	case "validate":
		cfg, path, err := config.LoadOrDefault(*root)
		if err != nil {
			errors.FatalError(errors.NewConfigError("Cannot load configuration", err.Error(), "Fix the file syntax", err), globals.JSON)
		}
		if err := cfg.Validate(); err != nil {
			errors.FatalError(errors.NewConfigError("Invalid configuration", err.Error(), "Fix the value or regenerate with: rustmap config template", err), globals.JSON)
		}
		if path == "" {
			ui.Success("No config file; defaults are valid")
		} else {
			ui.Successf("%s is valid", path)
		}

	case "show":
		cfg, path, err := config.LoadOrDefault(*root)
		if err != nil {
			errors.FatalError(errors.NewConfigError("Cannot load configuration", err.Error(), "Fix the file syntax", err), globals.JSON)
		}
		if !globals.Quiet && path != "" {
			ui.Infof("# loaded from %s", path)
		}
		if err := output.JSON(cfg); err != nil {
			if output.IsBrokenPipe(err) {
				os.Exit(errors.ExitSuccess)
			}
			errors.FatalError(errors.NewSerializationError("json", err), globals.JSON)
		}

	case "template":
		fmt.Print(config.Template())

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", sub)
		os.Exit(errors.ExitInput)
	}
}
