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
	"sort"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rustmap/internal/errors"
	"github.com/kraklabs/rustmap/internal/ui"
	"github.com/kraklabs/rustmap/pkg/model"
)

// complexityRow pairs an element with its score for the top-N table.
type complexityRow struct {
	ID            string `json:"id"`
	QualifiedName string `json:"qualified_name"`
	FilePath      string `json:"file_path"`
	Complexity    uint32 `json:"complexity"`
	Level         string `json:"level"`
}

// metricsReport is the machine-readable output of the metrics command.
type metricsReport struct {
	Project     model.ProjectInfo    `json:"project"`
	Metrics     model.ProjectMetrics `json:"metrics"`
	MostComplex []complexityRow      `json:"most_complex,omitempty"`
}

// runMetrics executes the 'metrics' command: project totals plus the N most
// complex elements.
func runMetrics(args []string) {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	var globals GlobalFlags
	addGlobalFlags(fs, &globals)

	root := fs.String("root", ".", "Project root directory")
	modelPath := fs.String("model", "", "Read a previously extracted JSON model instead of re-extracting")
	top := fs.Int("top", 10, "Number of most-complex elements to show")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rustmap metrics [options]

Shows aggregated project metrics and the most complex elements.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(errors.ExitInput)
	}

	logger := setupGlobals(&globals)
	m := loadModel(*modelPath, *root, &globals, logger)

	report := metricsReport{
		Project:     m.Project,
		Metrics:     m.Metrics,
		MostComplex: topComplex(m, *top),
	}

	if globals.JSON {
		emitJSON(report, &globals)
		return
	}

	ui.Header(fmt.Sprintf("%s %s", m.Project.Name, m.Project.Version))
	fmt.Println()
	fmt.Println("  " + ui.Count("files", report.Metrics.TotalFiles))
	fmt.Println("  " + ui.Count("lines", int(report.Metrics.TotalLines)))
	fmt.Println("  " + ui.Count("functions", report.Metrics.TotalFunctions))
	fmt.Println("  " + ui.Count("structs", report.Metrics.TotalStructs))
	fmt.Println("  " + ui.Count("enums", report.Metrics.TotalEnums))
	fmt.Println("  " + ui.Count("traits", report.Metrics.TotalTraits))
	fmt.Println("  " + ui.Count("impl blocks", report.Metrics.TotalImpls))
	fmt.Println("  " + ui.Count("modules", report.Metrics.TotalModules))
	fmt.Printf("  average complexity: %.2f\n", report.Metrics.ComplexityAverage)

	if len(report.MostComplex) > 0 {
		fmt.Println()
		ui.Header("Most complex elements")
		for _, row := range report.MostComplex {
			fmt.Printf("  %3d  %-10s %s  %s\n",
				row.Complexity, row.Level, row.QualifiedName, ui.Path(row.FilePath))
		}
	}
}

// topComplex ranks elements by overall complexity, ties by qualified name.
func topComplex(m *model.ProjectModel, n int) []complexityRow {
	var rows []complexityRow
	for _, element := range m.AllElements() {
		if element.Complexity == nil || element.ComplexityMetrics == nil {
			continue
		}
		rows = append(rows, complexityRow{
			ID:            element.ID,
			QualifiedName: element.Hierarchy.QualifiedName,
			FilePath:      element.Location.FilePath,
			Complexity:    *element.Complexity,
			Level:         string(element.ComplexityMetrics.Level()),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Complexity != rows[j].Complexity {
			return rows[i].Complexity > rows[j].Complexity
		}
		return rows[i].QualifiedName < rows[j].QualifiedName
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
