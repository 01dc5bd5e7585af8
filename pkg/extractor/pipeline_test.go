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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/rustmap/pkg/model"
)

// writeProject lays out a minimal Cargo project in a temp dir.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	manifest := `[package]
name = "demo"
version = "0.1.0"
edition = "2021"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(manifest), 0o644))
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func extract(t *testing.T, root string, opts Options) *Result {
	t.Helper()
	result, err := New(opts, nil).ExtractProject(context.Background(), root, DiscoveryOptions{})
	require.NoError(t, err)
	require.NotNil(t, result.Model)
	return result
}

const libSrc = `
use crate::parser::parse;

/// Entry point helpers.
pub fn run() -> i32 {
    parse("x")
}

pub mod config {
    pub struct Settings {
        pub verbose: bool,
    }
}
`

const parserSrc = `
/// Parses input.
pub fn parse(input: &str) -> i32 {
    if input.is_empty() {
        return 0;
    }
    input.len() as i32
}
`

func TestExtractProjectEndToEnd(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs":    libSrc,
		"src/parser.rs": parserSrc,
	})

	result := extract(t, root, Options{IncludeDocs: true, IncludePrivate: true})
	m := result.Model

	assert.Equal(t, "demo", m.Project.Name)
	assert.Equal(t, "0.1.0", m.Project.Version)
	assert.Equal(t, "2021", m.Project.RustEdition)
	require.Len(t, m.Files, 2)

	// Discovery order is sorted by relative path.
	assert.Equal(t, "src/lib.rs", m.Files[0].RelativePath)
	assert.Equal(t, "src/parser.rs", m.Files[1].RelativePath)

	require.NoError(t, m.Validate(), "all model invariants hold")
	assert.Nil(t, result.Partial)
	assert.NotEmpty(t, result.RunID)
}

func TestElementIDsGloballyUnique(t *testing.T) {
	// Same function name in both files forces the renumbering to matter.
	root := writeProject(t, map[string]string{
		"src/a.rs": "pub fn same_name() {}",
		"src/b.rs": "pub fn same_name() {}",
	})

	result := extract(t, root, Options{IncludeDocs: true, IncludePrivate: true})
	seen := make(map[string]bool)
	for _, e := range result.Model.AllElements() {
		assert.False(t, seen[e.ID], "duplicate ID %s", e.ID)
		seen[e.ID] = true
	}
	require.Len(t, seen, 2)
}

// Two extractions of the same input produce equal models modulo the
// timestamp.
func TestDeterminism(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs":    libSrc,
		"src/parser.rs": parserSrc,
	})

	opts := Options{IncludeDocs: true, IncludePrivate: true}
	first := extract(t, root, opts).Model
	second := extract(t, root, opts).Model

	first.ExtractedAt = time.Time{}
	second.ExtractedAt = time.Time{}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

// Parallel extraction must match the sequential model bit for bit.
func TestParallelMatchesSequential(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs":    libSrc,
		"src/parser.rs": parserSrc,
		"src/extra.rs":  "pub fn extra() { }\npub fn same_name() {}",
		"src/more.rs":   "pub fn same_name() {}",
	})

	sequential := extract(t, root, Options{IncludeDocs: true, IncludePrivate: true, Workers: 1}).Model
	parallel := extract(t, root, Options{IncludeDocs: true, IncludePrivate: true, Workers: 4}).Model

	sequential.ExtractedAt = time.Time{}
	parallel.ExtractedAt = time.Time{}

	a, err := json.Marshal(sequential)
	require.NoError(t, err)
	b, err := json.Marshal(parallel)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestCrossFileResolution(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs":    libSrc,
		"src/parser.rs": parserSrc,
	})

	result := extract(t, root, Options{IncludeDocs: true, IncludePrivate: true})
	m := result.Model

	var parseID string
	for _, e := range m.AllElements() {
		if e.Name == "parse" {
			parseID = e.ID
		}
	}
	require.NotEmpty(t, parseID)

	var resolved bool
	for _, ref := range m.CrossReferences {
		if ref.Type == model.RefFunctionCall && ref.Text == "parse" && ref.IsResolved {
			assert.Equal(t, parseID, ref.ToElementID)
			resolved = true
		}
	}
	assert.True(t, resolved, "imported call resolves across files")
}

func TestImportAliasMergedIntoNamespace(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs":    "use crate::util::helper as shortcut;\npub fn f() { shortcut(); }",
		"src/util.rs":   "pub fn helper() {}",
	})

	result := extract(t, root, Options{IncludeDocs: true, IncludePrivate: true})

	var helper *model.CodeElement
	for _, e := range result.Model.AllElements() {
		if e.Name == "helper" {
			helper = e
		}
	}
	require.NotNil(t, helper)
	assert.Contains(t, helper.Hierarchy.Namespace.Aliases, "shortcut")

	// The aliased call resolves to the helper.
	var resolved bool
	for _, ref := range result.Model.CrossReferences {
		if ref.Text == "shortcut" && ref.IsResolved {
			assert.Equal(t, helper.ID, ref.ToElementID)
			resolved = true
		}
	}
	assert.True(t, resolved)
}

func TestPartialFailureFromReadErrors(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs": "pub fn ok() {}",
	})
	discovery, err := DiscoverProject(root, DiscoveryOptions{}, nil)
	require.NoError(t, err)
	discovery.ReadErrors = append(discovery.ReadErrors, model.FileError{
		Path: "src/broken.rs", Stage: "read", Err: "permission denied",
	})

	result, err := New(Options{IncludeDocs: true, IncludePrivate: true}, nil).
		ExtractDiscovered(context.Background(), discovery)
	require.NoError(t, err)
	require.NotNil(t, result.Partial)
	assert.Equal(t, 1, result.Partial.FailedCount)
	assert.Equal(t, 2, result.Partial.TotalCount)
	require.Len(t, result.Partial.Errors, 1)
	assert.Equal(t, "src/broken.rs", result.Partial.Errors[0].Path)
}

func TestCancelledExtractionYieldsNoModel(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs": "pub fn ok() {}",
	})
	discovery, err := DiscoverProject(root, DiscoveryOptions{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(Options{}, nil).ExtractDiscovered(ctx, discovery)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidProjectRoot(t *testing.T) {
	_, err := New(Options{}, nil).ExtractProject(context.Background(), t.TempDir(), DiscoveryOptions{})
	assert.Error(t, err, "no Cargo.toml means no project")
}

func TestRecursiveFunctionReference(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/lib.rs": `
pub fn fib(n: u32) -> u32 {
    if n < 2 { n } else { fib(n - 1) + fib(n - 2) }
}
`,
	})

	result := extract(t, root, Options{IncludeDocs: true, IncludePrivate: true})

	var fibID string
	for _, e := range result.Model.AllElements() {
		if e.Name == "fib" {
			fibID = e.ID
		}
	}
	require.NotEmpty(t, fibID)

	selfCalls := 0
	for _, ref := range result.Model.CrossReferences {
		if ref.Type == model.RefFunctionCall && ref.Text == "fib" {
			require.True(t, ref.IsResolved)
			assert.Equal(t, fibID, ref.ToElementID)
			assert.Equal(t, fibID, ref.FromElementID)
			selfCalls++
		}
	}
	assert.GreaterOrEqual(t, selfCalls, 2, "both recursive call sites recorded")
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, uint32(0), countLines(nil))
	assert.Equal(t, uint32(1), countLines([]byte("one")))
	assert.Equal(t, uint32(2), countLines([]byte("one\ntwo")))
	assert.Equal(t, uint32(2), countLines([]byte("one\ntwo\n")))
}
