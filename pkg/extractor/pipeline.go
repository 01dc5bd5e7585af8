// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/kraklabs/rustmap/pkg/model"
	"github.com/kraklabs/rustmap/pkg/xref"
)

// Extractor runs the full pipeline for one project.
type Extractor struct {
	opts   Options
	logger *slog.Logger
}

// New creates an extractor. A nil logger falls back to slog.Default().
func New(opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{opts: opts, logger: logger}
}

// Result is the outcome of one extraction run.
type Result struct {
	// Model is the canonical project model built from successful files.
	Model *model.ProjectModel

	// RunID uniquely identifies this extraction run.
	RunID string

	// Partial is non-nil when some but not all files failed.
	Partial *model.PartialFailure

	// UnresolvedReferences counts cross-references left unresolved.
	UnresolvedReferences int

	ParseDuration   time.Duration
	ResolveDuration time.Duration
	TotalDuration   time.Duration
}

// fileSlice is one file's isolated contribution, produced by its own visitor.
type fileSlice struct {
	file      *model.FileModel
	refs      []model.Reference
	namespace *model.NamespaceResolver
	fileErr   *model.FileError
}

// ExtractProject discovers and extracts a project rooted at rootPath.
func (e *Extractor) ExtractProject(ctx context.Context, rootPath string, dopts DiscoveryOptions) (*Result, error) {
	discovery, err := DiscoverProject(rootPath, dopts, e.logger)
	if err != nil {
		return nil, err
	}
	return e.ExtractDiscovered(ctx, discovery)
}

// ExtractDiscovered extracts an already-discovered file set. Per-file parse
// failures accumulate into a PartialFailure; cancellation aborts the run
// without a model.
func (e *Extractor) ExtractDiscovered(ctx context.Context, d *Discovery) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	e.logger.Info("extract.start",
		"run_id", runID,
		"project", d.Project.Name,
		"files", len(d.Files),
		"workers", e.opts.Workers,
	)

	parseStart := time.Now()
	slices, err := e.parseFiles(ctx, d.Files)
	if err != nil {
		return nil, err
	}
	parseDuration := time.Since(parseStart)
	observeParseDuration(parseDuration)

	// Per-visitor ordinals restart at 1; renumber globally in discovery
	// order so IDs are unique across the model and identical regardless of
	// worker count.
	renumberOrdinals(slices)

	var files []*model.FileModel
	var fileErrors []model.FileError
	fileErrors = append(fileErrors, d.ReadErrors...)
	var allElements []*model.CodeElement
	for _, s := range slices {
		if s.fileErr != nil {
			fileErrors = append(fileErrors, *s.fileErr)
			recordParseError()
			continue
		}
		files = append(files, s.file)
		allElements = append(allElements, s.file.Elements...)
		recordFileParsed()
		recordElements(len(s.file.Elements))
	}

	total := len(d.Files) + len(d.ReadErrors)
	if total > 0 && len(fileErrors) == total {
		return nil, fmt.Errorf("extraction failed for all %d files: %s", total, fileErrors[0].Error())
	}

	// Finalization: children index, import-alias merge, name registration.
	model.PopulateChildren(allElements)
	mergeAliases(allElements, slices)

	resolveStart := time.Now()
	resolver := xref.NewResolver()
	for _, element := range allElements {
		resolver.Register(element)
	}
	var crossRefs []model.CrossReference
	unresolved := 0
	for _, s := range slices {
		if s.fileErr != nil {
			continue
		}
		for _, ref := range s.refs {
			cr := resolver.Resolve(ref, s.namespace)
			if !cr.IsResolved {
				unresolved++
			}
			crossRefs = append(crossRefs, cr)
		}
	}
	resolveDuration := time.Since(resolveStart)
	recordReferences(len(crossRefs), unresolved)
	observeResolveDuration(resolveDuration)

	projectModel := &model.ProjectModel{
		Project:         d.Project,
		Files:           files,
		CrossReferences: crossRefs,
		ExtractedAt:     time.Now().UTC(),
	}
	projectModel.ComputeMetrics()

	result := &Result{
		Model:                projectModel,
		RunID:                runID,
		UnresolvedReferences: unresolved,
		ParseDuration:        parseDuration,
		ResolveDuration:      resolveDuration,
		TotalDuration:        time.Since(started),
	}
	if len(fileErrors) > 0 {
		result.Partial = &model.PartialFailure{
			FailedCount: len(fileErrors),
			TotalCount:  total,
			Errors:      fileErrors,
		}
	}

	e.logger.Info("extract.complete",
		"run_id", runID,
		"files", len(files),
		"elements", len(allElements),
		"cross_references", len(crossRefs),
		"unresolved", unresolved,
		"failed_files", len(fileErrors),
		"duration", result.TotalDuration,
	)
	return result, nil
}

// parseFiles parses every file, sequentially or with a bounded worker pool.
// Slices come back indexed by discovery order either way.
func (e *Extractor) parseFiles(ctx context.Context, files []SourceFile) ([]fileSlice, error) {
	slices := make([]fileSlice, len(files))

	workers := e.opts.Workers
	if workers <= 1 || len(files) < 2 {
		for i, sf := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			slices[i] = e.parseFile(ctx, sf)
			if e.opts.OnFileParsed != nil {
				e.opts.OnFileParsed()
			}
		}
		return slices, nil
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				slices[i] = e.parseFile(ctx, files[i])
				if e.opts.OnFileParsed != nil {
					e.opts.OnFileParsed()
				}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices, nil
}

// parseFile parses and visits one file. Tree-sitter is error-tolerant: a tree
// with syntax errors is still traversed, matching the per-file error policy
// of recording rather than aborting.
func (e *Extractor) parseFile(ctx context.Context, sf SourceFile) fileSlice {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, sf.Content)
	if err != nil {
		e.logger.Warn("extract.file.parse_error", "path", sf.RelPath, "err", err)
		return fileSlice{fileErr: &model.FileError{Path: sf.RelPath, Stage: "parse", Err: err.Error()}}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		e.logger.Warn("extract.file.syntax_errors", "path", sf.RelPath)
	}

	v := newVisitor(sf.RelPath, sf.Content, e.opts)
	v.visitFile(root)

	return fileSlice{
		file: &model.FileModel{
			Path:         sf.AbsPath,
			RelativePath: sf.RelPath,
			Elements:     v.elements,
			Imports:      v.imports,
			FileMetrics:  computeFileMetrics(sf.Content, v.elements),
		},
		refs:      v.refs,
		namespace: v.namespace,
	}
}

// renumberOrdinals rewrites element IDs with a single global counter walked
// in discovery order, then maps every ID-bearing field through the rewrite:
// parent pointers, reference origins and reference scope chains. Children are
// not populated yet at this point.
func renumberOrdinals(slices []fileSlice) {
	ordinal := 1
	for _, s := range slices {
		if s.fileErr != nil {
			continue
		}
		mapping := make(map[string]string, len(s.file.Elements))
		for _, element := range s.file.Elements {
			newID := model.ElementID(element.Kind, element.Name, ordinal)
			ordinal++
			mapping[element.ID] = newID
			element.ID = newID
			element.Hierarchy.Namespace.Name = element.Name
		}
		for _, element := range s.file.Elements {
			if pid := element.Hierarchy.ParentID; pid != "" {
				if mapped, ok := mapping[pid]; ok {
					element.Hierarchy.ParentID = mapped
				}
			}
		}
		for i := range s.refs {
			ref := &s.refs[i]
			if mapped, ok := mapping[ref.FromElementID]; ok {
				ref.FromElementID = mapped
			}
			if ref.Context.Scope != "" {
				parts := strings.Split(ref.Context.Scope, "::")
				for j, part := range parts {
					if mapped, ok := mapping[part]; ok {
						parts[j] = mapped
					}
				}
				ref.Context.Scope = strings.Join(parts, "::")
			}
		}
	}
}

// mergeAliases folds every file's import aliases into the namespaces of the
// elements they target. Imports in any file can alias any element.
func mergeAliases(elements []*model.CodeElement, slices []fileSlice) {
	for _, element := range elements {
		canonical := element.Hierarchy.Namespace.CanonicalPath
		for _, s := range slices {
			if s.fileErr != nil {
				continue
			}
			for _, alias := range s.namespace.AliasesForPath(canonical) {
				element.Hierarchy.Namespace.AddAlias(alias)
			}
		}
	}
}

// computeFileMetrics derives the per-file summary from source and elements.
func computeFileMetrics(content []byte, elements []*model.CodeElement) model.FileMetrics {
	metrics := model.FileMetrics{
		LinesOfCode:   countLines(content),
		ElementCounts: make(map[model.ElementKind]uint32),
	}
	for _, element := range elements {
		metrics.ElementCounts[element.Kind]++
		if element.Complexity != nil {
			metrics.TotalComplexity += *element.Complexity
		}
	}
	return metrics
}

func countLines(content []byte) uint32 {
	if len(content) == 0 {
		return 0
	}
	lines := uint32(1)
	for _, b := range content {
		if b == '\n' {
			lines++
		}
	}
	if content[len(content)-1] == '\n' {
		lines--
	}
	return lines
}
