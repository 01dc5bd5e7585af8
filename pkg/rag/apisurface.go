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

package rag

import (
	"strings"

	"github.com/kraklabs/rustmap/pkg/model"
)

// analyzeAPISurface copies every public element into its kind bucket and
// summarizes the surface. Impl blocks are skipped: they are public by
// construction, not part of the declared API.
func (c *Chunker) analyzeAPISurface(m *model.ProjectModel, chunks []Chunk) APISurface {
	chunkByQualified := make(map[string]string, len(chunks))
	for _, chunk := range chunks {
		if _, ok := chunkByQualified[chunk.Metadata.QualifiedName]; !ok {
			chunkByQualified[chunk.Metadata.QualifiedName] = chunk.ID
		}
	}

	var surface APISurface
	var paramSum, paramCount, genericCount, documented, public int

	for _, file := range m.Files {
		for _, element := range file.Elements {
			if !element.IsPublic() || element.Kind == model.KindImpl {
				continue
			}

			api := APIElement{
				Name:          element.Name,
				QualifiedName: element.Hierarchy.QualifiedName,
				ElementKind:   string(element.Kind),
				Signature:     element.Signature,
				Documentation: strings.Join(element.DocComments, "\n"),
				ChunkID:       chunkByQualified[element.Hierarchy.QualifiedName],
			}

			switch element.Kind {
			case model.KindFunction:
				surface.PublicFunctions = append(surface.PublicFunctions, api)
				if element.Name == "main" {
					surface.EntryPoints = append(surface.EntryPoints, element.Hierarchy.QualifiedName)
				}
			case model.KindStruct, model.KindEnum:
				surface.PublicTypes = append(surface.PublicTypes, api)
			case model.KindTrait:
				surface.PublicTraits = append(surface.PublicTraits, api)
			case model.KindModule:
				surface.Modules = append(surface.Modules, api)
			default:
				continue
			}

			public++
			if len(element.GenericParams) > 0 {
				genericCount++
			}
			if len(element.DocComments) > 0 {
				documented++
			}
			if element.ComplexityMetrics != nil && element.Kind == model.KindFunction {
				params := int(element.ComplexityMetrics.ParameterCount)
				paramSum += params
				paramCount++
				if params > surface.ComplexityMetrics.MaxParameterCount {
					surface.ComplexityMetrics.MaxParameterCount = params
				}
			}
		}
	}

	surface.ComplexityMetrics.TotalPublicItems = len(surface.PublicFunctions) +
		len(surface.PublicTypes) + len(surface.PublicTraits) + len(surface.Modules)
	if paramCount > 0 {
		surface.ComplexityMetrics.AvgParameterCount = float64(paramSum) / float64(paramCount)
	}
	if public > 0 {
		surface.ComplexityMetrics.GenericUsageRatio = float64(genericCount) / float64(public)
		surface.ComplexityMetrics.DocumentationCoverage = float64(documented) / float64(public)
	}
	return surface
}
