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
	"fmt"
	"io"
	"strings"

	"github.com/kraklabs/rustmap/pkg/model"
)

// WriteMarkdown renders the report in its fixed section order: title,
// metadata, project metrics, then one section per file with element
// subsections.
func WriteMarkdown(w io.Writer, m *model.ProjectModel) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.Project.Name)

	fmt.Fprintf(&b, "**Version:** %s  \n", m.Project.Version)
	fmt.Fprintf(&b, "**Edition:** %s  \n", m.Project.RustEdition)
	fmt.Fprintf(&b, "**Extracted:** %s\n\n", m.ExtractedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Project Metrics\n\n")
	fmt.Fprintf(&b, "- Files: %d\n", m.Metrics.TotalFiles)
	fmt.Fprintf(&b, "- Lines of code: %d\n", m.Metrics.TotalLines)
	fmt.Fprintf(&b, "- Functions: %d\n", m.Metrics.TotalFunctions)
	fmt.Fprintf(&b, "- Structs: %d\n", m.Metrics.TotalStructs)
	fmt.Fprintf(&b, "- Enums: %d\n", m.Metrics.TotalEnums)
	fmt.Fprintf(&b, "- Traits: %d\n", m.Metrics.TotalTraits)
	fmt.Fprintf(&b, "- Impl blocks: %d\n", m.Metrics.TotalImpls)
	fmt.Fprintf(&b, "- Modules: %d\n", m.Metrics.TotalModules)
	fmt.Fprintf(&b, "- Average complexity: %.2f\n\n", m.Metrics.ComplexityAverage)

	for _, file := range m.Files {
		fmt.Fprintf(&b, "## %s\n\n", file.RelativePath)
		for _, element := range file.Elements {
			writeElementSection(&b, element)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeElementSection(b *strings.Builder, element *model.CodeElement) {
	fmt.Fprintf(b, "### %s `%s`\n\n", element.Kind, element.Name)

	if len(element.DocComments) > 0 {
		for _, line := range element.DocComments {
			fmt.Fprintf(b, "> %s\n", line)
		}
		b.WriteString("\n")
	}

	if element.Signature != "" {
		b.WriteString("```rust\n")
		b.WriteString(element.Signature)
		b.WriteString("\n```\n\n")
	}

	if element.Complexity != nil {
		fmt.Fprintf(b, "*Complexity: %d*\n\n", *element.Complexity)
	}
}
