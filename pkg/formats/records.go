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
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kraklabs/rustmap/pkg/graph"
	"github.com/kraklabs/rustmap/pkg/model"
)

// ProjectRecord is the project row. Rows are keyed by (name, version);
// element IDs are the stable identity linking rows across tables.
type ProjectRecord struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	RustEdition string    `json:"rust_edition"`
	RootPath    string    `json:"root_path"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// FileRecord is one file row.
type FileRecord struct {
	Path            string `json:"path"`
	RelativePath    string `json:"relative_path"`
	LinesOfCode     uint32 `json:"lines_of_code"`
	ElementCount    int    `json:"element_count"`
	TotalComplexity uint32 `json:"total_complexity"`
}

// ElementRecord is one element row, flattened for relational storage.
type ElementRecord struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	QualifiedName string  `json:"qualified_name"`
	ModulePath    string  `json:"module_path"`
	Visibility    string  `json:"visibility"`
	FilePath      string  `json:"file_path"`
	LineStart     uint32  `json:"line_start"`
	LineEnd       uint32  `json:"line_end"`
	Complexity    *uint32 `json:"complexity,omitempty"`
	ParentID      string  `json:"parent_id,omitempty"`
	Signature     string  `json:"signature,omitempty"`
	Documentation string  `json:"documentation,omitempty"`
}

// GraphRecords bundles the row sets the persistence collaborator consumes:
// project, files, elements, plus the three edge tables.
type GraphRecords struct {
	Project           ProjectRecord            `json:"project"`
	Files             []FileRecord             `json:"files"`
	Elements          []ElementRecord          `json:"elements"`
	CallEdges         []graph.CallEdge         `json:"call_edges"`
	DependencyEdges   []graph.DependencyEdge   `json:"dependency_edges"`
	TypeRelationships []graph.TypeRelationship `json:"type_relationships"`
}

// BuildGraphRecords flattens the model and its derived graph into records.
func BuildGraphRecords(m *model.ProjectModel, g *graph.Graph) *GraphRecords {
	records := &GraphRecords{
		Project: ProjectRecord{
			Name:        m.Project.Name,
			Version:     m.Project.Version,
			RustEdition: m.Project.RustEdition,
			RootPath:    m.Project.RootPath,
			ExtractedAt: m.ExtractedAt,
		},
		CallEdges:         g.CallEdges,
		DependencyEdges:   g.DependencyEdges,
		TypeRelationships: g.TypeRelationships,
	}

	for _, file := range m.Files {
		records.Files = append(records.Files, FileRecord{
			Path:            file.Path,
			RelativePath:    file.RelativePath,
			LinesOfCode:     file.FileMetrics.LinesOfCode,
			ElementCount:    len(file.Elements),
			TotalComplexity: file.FileMetrics.TotalComplexity,
		})
		for _, element := range file.Elements {
			records.Elements = append(records.Elements, ElementRecord{
				ID:            element.ID,
				Kind:          string(element.Kind),
				Name:          element.Name,
				QualifiedName: element.Hierarchy.QualifiedName,
				ModulePath:    element.Hierarchy.ModulePath,
				Visibility:    element.Visibility.String(),
				FilePath:      element.Location.FilePath,
				LineStart:     element.Location.LineStart,
				LineEnd:       element.Location.LineEnd,
				Complexity:    element.Complexity,
				ParentID:      element.Hierarchy.ParentID,
				Signature:     element.Signature,
				Documentation: joinDocs(element.DocComments),
			})
		}
	}
	return records
}

func joinDocs(docs []string) string {
	if len(docs) == 0 {
		return ""
	}
	joined := docs[0]
	for _, line := range docs[1:] {
		joined += "\n" + line
	}
	return joined
}

// WriteGraphRecords serializes the record bundle as JSON.
func WriteGraphRecords(w io.Writer, records *GraphRecords, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode graph records: %w", err)
	}
	return nil
}
