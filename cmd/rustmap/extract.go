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
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rustmap/internal/errors"
	"github.com/kraklabs/rustmap/internal/output"
	"github.com/kraklabs/rustmap/internal/ui"
	"github.com/kraklabs/rustmap/pkg/config"
	"github.com/kraklabs/rustmap/pkg/extractor"
	"github.com/kraklabs/rustmap/pkg/formats"
	"github.com/kraklabs/rustmap/pkg/graph"
	"github.com/kraklabs/rustmap/pkg/rag"
)

// runExtract executes the 'extract' command: discover, parse, resolve, and
// serialize the selected projection.
//
// Flags:
//   - --root: project root (default ".")
//   - --format: json | markdown | rag | graph (overrides config)
//   - --out: output file (default stdout)
//   - --pretty: pretty-print JSON output
//   - --include-private: keep private items
//   - --no-docs: skip doc-comment extraction
//   - --workers: per-file parse parallelism
//   - --metrics-addr: HTTP address for Prometheus metrics (default: disabled)
func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	var globals GlobalFlags
	addGlobalFlags(fs, &globals)

	root := fs.String("root", ".", "Project root directory")
	format := fs.String("format", "", "Output format: json, markdown, rag, graph")
	outPath := fs.String("out", "", "Output file (default stdout)")
	pretty := fs.Bool("pretty", true, "Pretty-print JSON output")
	includePrivate := fs.Bool("include-private", false, "Include private items")
	noDocs := fs.Bool("no-docs", false, "Skip doc-comment extraction")
	workers := fs.Int("workers", 0, "Per-file parse parallelism (0 = from config)")
	metricsAddr := fs.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rustmap extract [options]

Extracts the project model from the Rust project at --root and serializes
it in the configured output format.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitInput)
	}

	logger := setupGlobals(&globals)

	cfg, cfgPath, err := config.LoadOrDefault(*root)
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot load configuration",
			err.Error(),
			"Fix the config file or run: rustmap config init",
			err,
		), globals.JSON)
	}
	if cfgPath != "" {
		logger.Debug("config.loaded", "path", cfgPath)
	}

	// Flag overrides.
	if *format != "" {
		cfg.Output.Format = *format
	}
	if fs.Changed("pretty") {
		cfg.Output.Pretty = *pretty
	}
	if *includePrivate {
		cfg.Extraction.IncludePrivate = true
	}
	if *noDocs {
		cfg.Extraction.IncludeDocs = false
	}
	if *workers > 0 {
		cfg.Extraction.Workers = *workers
	}

	if err := cfg.Validate(); err != nil {
		errors.FatalError(errors.NewConfigError(
			"Invalid configuration",
			err.Error(),
			"Fix the value or regenerate with: rustmap config template",
			err,
		), globals.JSON)
	}

	// Optional Prometheus endpoint.
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			srv := &http.Server{Addr: *metricsAddr, Handler: mux}
			logger.Info("metrics.http.start", "addr", *metricsAddr, "path", "/metrics")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics.http.error", "err", err)
			}
		}()
	}

	// Graceful cancellation: a cancelled extraction yields no model.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	discovery, err := extractor.DiscoverProject(*root, extractor.DiscoveryOptions{
		Include:     cfg.Filters.Include,
		Exclude:     cfg.Filters.Exclude,
		MaxFileSize: cfg.Extraction.MaxFileSize,
	}, logger)
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Not a Rust project",
			err.Error(),
			"Point --root at a directory containing Cargo.toml",
			err,
		), globals.JSON)
	}

	progressCfg := NewProgressConfig(globals)
	bar := NewProgressBar(progressCfg, int64(len(discovery.Files)), "extracting")

	opts := extractor.Options{
		IncludeDocs:    cfg.Extraction.IncludeDocs,
		IncludePrivate: cfg.Extraction.IncludePrivate,
		Workers:        cfg.Extraction.Workers,
	}
	if bar != nil {
		opts.OnFileParsed = func() { _ = bar.Add(1) }
	}

	result, err := extractor.New(opts, logger).ExtractDiscovered(ctx, discovery)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if ctx.Err() != nil {
			os.Exit(errors.ExitInternal)
		}
		errors.FatalError(errors.NewInternalError(
			"Extraction failed",
			err.Error(),
			"Re-run with --debug for details",
			err,
		), globals.JSON)
	}

	if result.Partial != nil && !globals.Quiet {
		ui.Warningf("%d of %d files failed; model built from the rest",
			result.Partial.FailedCount, result.Partial.TotalCount)
	}

	if err := emitModel(result, cfg, *outPath); err != nil {
		if output.IsBrokenPipe(err) {
			os.Exit(errors.ExitSuccess)
		}
		errors.FatalError(errors.NewSerializationError(cfg.Output.Format, err), globals.JSON)
	}

	if !globals.Quiet && *outPath != "" {
		ui.Successf("Extracted %d files, %d elements -> %s",
			result.Model.Metrics.TotalFiles,
			len(result.Model.AllElements()),
			*outPath)
	}
}

// emitModel serializes the model in the configured projection.
func emitModel(result *extractor.Result, cfg config.Config, outPath string) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch cfg.Output.Format {
	case config.FormatJSON:
		return formats.WriteJSON(w, result.Model, cfg.Output.Pretty)
	case config.FormatMarkdown:
		return formats.WriteMarkdown(w, result.Model)
	case config.FormatRag:
		doc := rag.NewChunker(cfg.Rag).Format(result.Model)
		return formats.WriteRagJSON(w, doc, cfg.Output.Pretty)
	case config.FormatGraph:
		g := graph.Build(result.Model)
		return formats.WriteGraphRecords(w, formats.BuildGraphRecords(result.Model, g), cfg.Output.Pretty)
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
}
