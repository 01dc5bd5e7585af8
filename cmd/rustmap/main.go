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

// Package main implements the rustmap CLI for extracting a structured,
// queryable model of a Rust source tree.
//
// Usage:
//
//	rustmap extract [--format json|markdown|rag|graph]   Extract the project model
//	rustmap deps <element-id> [--reverse]                Walk the dependency graph
//	rustmap metrics [--top N]                            Show complexity metrics
//	rustmap config {init,validate,show,template}         Manage configuration
package main

import (
	"flag"
	"fmt"
	"os"
)

// Version information (set via ldflags during build)
var (
	version = "dev"     // Version string
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `rustmap - Rust source tree extractor

Usage:
  rustmap <command> [options]

Commands:
  extract       Extract the project model and serialize it
  deps          Walk the dependency graph from an element
  metrics       Show project and per-element complexity metrics
  config        Manage configuration (init, validate, show, template)

Global Options:
  --version     Show version and exit

Examples:
  rustmap extract                          Extract to JSON on stdout
  rustmap extract --format markdown        Render the Markdown report
  rustmap extract --format rag --out doc.json
  rustmap deps Function_parse_3 --max-depth 4
  rustmap metrics --top 10
  rustmap config init                      Create rustmap.toml

Configuration:
  rustmap reads rustmap.toml (or .rustmap/config.yaml) from the project
  root. Flags override the file.

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("rustmap version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "extract":
		runExtract(cmdArgs)
	case "deps":
		runDeps(cmdArgs)
	case "metrics":
		runMetrics(cmdArgs)
	case "config":
		runConfig(cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
