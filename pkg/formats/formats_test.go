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

package formats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/rustmap/pkg/graph"
	"github.com/kraklabs/rustmap/pkg/model"
	"github.com/kraklabs/rustmap/pkg/rag"
)

func score(n uint32) *uint32 { return &n }

func sampleModel() *model.ProjectModel {
	parse := &model.CodeElement{
		ID: "Function_parse_1", Kind: model.KindFunction, Name: "parse",
		Signature:   "pub fn parse(input: &str) -> i32",
		Visibility:  model.Public(),
		DocComments: []string{"Parses the input."},
		Complexity:  score(3),
		Location:    model.Location{LineStart: 1, LineEnd: 5, FilePath: "src/lib.rs"},
		Hierarchy: model.ElementHierarchy{
			ModulePath:    "crate",
			QualifiedName: "crate::parse",
			Namespace:     model.ElementNamespace{Name: "parse", CanonicalPath: "crate::parse"},
		},
	}
	m := &model.ProjectModel{
		Project: model.ProjectInfo{Name: "demo", Version: "0.1.0", RustEdition: "2021", RootPath: "/tmp/demo"},
		Files: []*model.FileModel{{
			Path:         "/tmp/demo/src/lib.rs",
			RelativePath: "src/lib.rs",
			Elements:     []*model.CodeElement{parse},
			FileMetrics:  model.FileMetrics{LinesOfCode: 5, TotalComplexity: 3},
		}},
		CrossReferences: []model.CrossReference{
			model.Resolved(model.Reference{
				FromElementID: "Function_parse_1",
				Type:          model.RefFunctionCall,
				Text:          "parse",
				Location:      model.Location{LineStart: 3, LineEnd: 3, FilePath: "src/lib.rs"},
			}, "Function_parse_1"),
		},
		ExtractedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	m.ComputeMetrics()
	return m
}

func TestJSONRoundTrip(t *testing.T) {
	m := sampleModel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, m, false))

	decoded, err := ReadJSON(&buf)
	require.NoError(t, err)

	var first, second bytes.Buffer
	require.NoError(t, WriteJSON(&first, m, false))
	require.NoError(t, WriteJSON(&second, decoded, false))
	assert.Equal(t, first.String(), second.String(), "serialize -> deserialize -> serialize is byte-identical")
}

func TestMarkdownSectionOrder(t *testing.T) {
	m := sampleModel()

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, m))
	out := buf.String()

	title := strings.Index(out, "# demo")
	metrics := strings.Index(out, "## Project Metrics")
	file := strings.Index(out, "## src/lib.rs")
	element := strings.Index(out, "### Function `parse`")

	require.GreaterOrEqual(t, title, 0)
	assert.Less(t, title, metrics, "title before metrics")
	assert.Less(t, metrics, file, "metrics before files")
	assert.Less(t, file, element, "file section before its elements")

	assert.Contains(t, out, "> Parses the input.")
	assert.Contains(t, out, "```rust\npub fn parse(input: &str) -> i32\n```")
	assert.Contains(t, out, "- Functions: 1")
}

func TestGraphRecords(t *testing.T) {
	m := sampleModel()
	g := graph.Build(m)
	records := BuildGraphRecords(m, g)

	assert.Equal(t, "demo", records.Project.Name)
	require.Len(t, records.Files, 1)
	require.Len(t, records.Elements, 1)

	element := records.Elements[0]
	assert.Equal(t, "Function_parse_1", element.ID)
	assert.Equal(t, "crate::parse", element.QualifiedName)
	assert.Equal(t, "pub", element.Visibility)
	assert.Equal(t, "Parses the input.", element.Documentation)

	// The self-call becomes a recursive call edge.
	require.Len(t, records.CallEdges, 1)
	assert.True(t, records.CallEdges[0].IsRecursive)

	var buf bytes.Buffer
	require.NoError(t, WriteGraphRecords(&buf, records, true))
	assert.Contains(t, buf.String(), "\"call_edges\"")
}

func TestRagJSONL(t *testing.T) {
	m := sampleModel()
	doc := rag.NewChunker(rag.DefaultConfig()).Format(m)

	var buf bytes.Buffer
	require.NoError(t, WriteRagJSONL(&buf, doc))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+len(doc.Chunks), "metadata line plus one line per chunk")
	assert.Contains(t, lines[0], "\"project_name\":\"demo\"")
	assert.Contains(t, lines[1], "\"id\":\"chunk_1\"")
}

func TestRagJSON(t *testing.T) {
	m := sampleModel()
	doc := rag.NewChunker(rag.DefaultConfig()).Format(m)

	var buf bytes.Buffer
	require.NoError(t, WriteRagJSON(&buf, doc, true))
	assert.Contains(t, buf.String(), "\"chunks\"")
	assert.Contains(t, buf.String(), "\"api_surface\"")
}
