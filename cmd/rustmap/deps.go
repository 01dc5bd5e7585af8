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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rustmap/internal/errors"
	"github.com/kraklabs/rustmap/internal/output"
	"github.com/kraklabs/rustmap/internal/ui"
	"github.com/kraklabs/rustmap/pkg/config"
	"github.com/kraklabs/rustmap/pkg/extractor"
	"github.com/kraklabs/rustmap/pkg/formats"
	"github.com/kraklabs/rustmap/pkg/graph"
	"github.com/kraklabs/rustmap/pkg/model"
)

// runDeps executes the 'deps' command: walk the dependency graph from an
// element, forward by default, backward with --reverse.
//
// The model comes from a prior `extract --format json` run via --model, or
// is extracted on the fly from --root.
func runDeps(args []string) {
	fs := flag.NewFlagSet("deps", flag.ExitOnError)
	var globals GlobalFlags
	addGlobalFlags(fs, &globals)

	root := fs.String("root", ".", "Project root directory")
	modelPath := fs.String("model", "", "Read a previously extracted JSON model instead of re-extracting")
	reverse := fs.Bool("reverse", false, "Walk dependents instead of dependencies")
	maxDepth := fs.Int("max-depth", 0, "Depth bound (0 = unbounded)")
	cycles := fs.Bool("cycles", false, "Report dependency cycles instead of walking")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rustmap deps <element-id> [options]

Walks the dependency graph from an element. Element IDs look like
Function_parse_3; find them with 'rustmap extract'.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitInput)
	}

	logger := setupGlobals(&globals)

	rest := fs.Args()
	if len(rest) != 1 && !*cycles {
		errors.FatalError(errors.NewInputError(
			"Missing element ID",
			"deps takes exactly one element ID argument",
			"Run: rustmap deps <element-id>",
		), globals.JSON)
	}

	m := loadModel(*modelPath, *root, &globals, logger)
	g := graph.Build(m)

	if *cycles {
		analysis := g.AnalyzeDependencies()
		if globals.JSON {
			emitJSON(analysis, &globals)
			return
		}
		if len(analysis.Cycles) == 0 {
			ui.Success("No dependency cycles")
			return
		}
		ui.Warningf("%d dependency cycles", len(analysis.Cycles))
		for _, cycle := range analysis.Cycles {
			fmt.Println("  " + strings.Join(cycle.Elements, " -> "))
		}
		return
	}

	elementID := rest[0]
	if m.ElementByID(elementID) == nil {
		errors.FatalError(errors.NewNotFoundError(
			"Element not found",
			fmt.Sprintf("No element with ID %q in the model", elementID),
			"List element IDs with: rustmap extract --format json",
		), globals.JSON)
	}

	var paths []graph.DependencyPath
	if *reverse {
		paths = g.FindDependents(elementID, *maxDepth)
	} else {
		paths = g.FindDependencies(elementID, *maxDepth)
	}

	if globals.JSON {
		emitJSON(paths, &globals)
		return
	}
	if len(paths) == 0 {
		ui.Info("No edges from " + elementID)
		return
	}
	for _, path := range paths {
		fmt.Printf("%s  %s\n",
			strings.Join(path.Path, " -> "),
			ui.Dim.Sprintf("(depth %d, %s)", path.Depth, path.RelType))
	}
}

// loadModel reads a serialized model or extracts one from the project root.
func loadModel(modelPath, root string, globals *GlobalFlags, logger *slog.Logger) *model.ProjectModel {
	if modelPath != "" {
		f, err := os.Open(modelPath)
		if err != nil {
			errors.FatalError(errors.NewNotFoundError(
				"Cannot open model file",
				err.Error(),
				"Generate one with: rustmap extract --format json --out "+modelPath,
			), globals.JSON)
		}
		defer f.Close()
		m, err := formats.ReadJSON(f)
		if err != nil {
			errors.FatalError(errors.NewInputError(
				"Cannot parse model file",
				err.Error(),
				"Regenerate it with: rustmap extract --format json",
			), globals.JSON)
		}
		return m
	}

	cfg, _, err := config.LoadOrDefault(root)
	if err != nil {
		errors.FatalError(errors.NewConfigError("Cannot load configuration", err.Error(), "Fix the config file or run: rustmap config init", err), globals.JSON)
	}

	result, err := extractor.New(extractor.Options{
		IncludeDocs:    cfg.Extraction.IncludeDocs,
		IncludePrivate: cfg.Extraction.IncludePrivate,
		Workers:        cfg.Extraction.Workers,
	}, logger).ExtractProject(context.Background(), root, extractor.DiscoveryOptions{
		Include:     cfg.Filters.Include,
		Exclude:     cfg.Filters.Exclude,
		MaxFileSize: cfg.Extraction.MaxFileSize,
	})
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Extraction failed",
			err.Error(),
			"Point --root at a Rust project or pass --model",
			err,
		), globals.JSON)
	}
	return result.Model
}

// emitJSON writes a value to stdout, treating a broken pipe as success.
func emitJSON(v any, globals *GlobalFlags) {
	if err := output.JSON(v); err != nil {
		if output.IsBrokenPipe(err) {
			os.Exit(errors.ExitSuccess)
		}
		errors.FatalError(errors.NewSerializationError("json", err), globals.JSON)
	}
}
