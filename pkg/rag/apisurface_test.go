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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/rustmap/pkg/complexity"
	"github.com/kraklabs/rustmap/pkg/model"
)

func surfaceModel() *model.ProjectModel {
	elements := []*model.CodeElement{
		{
			ID: "Function_main_1", Kind: model.KindFunction, Name: "main",
			Visibility:        model.Public(),
			Signature:         "pub fn main()",
			ComplexityMetrics: &complexity.Metrics{ParameterCount: 0},
			Hierarchy:         model.ElementHierarchy{QualifiedName: "crate::main"},
		},
		{
			ID: "Function_parse_2", Kind: model.KindFunction, Name: "parse",
			Visibility:        model.Public(),
			Signature:         "pub fn parse(a: &str, b: bool) -> i32",
			DocComments:       []string{"Parses."},
			GenericParams:     []string{"T"},
			ComplexityMetrics: &complexity.Metrics{ParameterCount: 2},
			Hierarchy:         model.ElementHierarchy{QualifiedName: "crate::parse"},
		},
		{
			ID: "Struct_Config_3", Kind: model.KindStruct, Name: "Config",
			Visibility: model.Public(),
			Hierarchy:  model.ElementHierarchy{QualifiedName: "crate::Config"},
		},
		{
			ID: "Enum_Mode_4", Kind: model.KindEnum, Name: "Mode",
			Visibility: model.Public(),
			Hierarchy:  model.ElementHierarchy{QualifiedName: "crate::Mode"},
		},
		{
			ID: "Trait_Run_5", Kind: model.KindTrait, Name: "Run",
			Visibility: model.Public(),
			Hierarchy:  model.ElementHierarchy{QualifiedName: "crate::Run"},
		},
		{
			ID: "Module_util_6", Kind: model.KindModule, Name: "util",
			Visibility: model.Public(),
			Hierarchy:  model.ElementHierarchy{QualifiedName: "crate::util"},
		},
		{
			ID: "Impl_x_7", Kind: model.KindImpl, Name: "impl Config",
			Visibility: model.Public(),
			Hierarchy:  model.ElementHierarchy{QualifiedName: "crate::impl Config"},
		},
		{
			ID: "Function_hidden_8", Kind: model.KindFunction, Name: "hidden",
			Visibility: model.Private(),
			Hierarchy:  model.ElementHierarchy{QualifiedName: "crate::hidden"},
		},
	}
	return &model.ProjectModel{
		Project: model.ProjectInfo{Name: "demo"},
		Files:   []*model.FileModel{{RelativePath: "src/lib.rs", Elements: elements}},
	}
}

func TestAPISurfaceBuckets(t *testing.T) {
	doc := NewChunker(DefaultConfig()).Format(surfaceModel())
	surface := doc.Semantics.APISurface

	require.Len(t, surface.PublicFunctions, 2)
	require.Len(t, surface.PublicTypes, 2, "structs and enums share the types bucket")
	require.Len(t, surface.PublicTraits, 1)
	require.Len(t, surface.Modules, 1)

	// total_public_items is the sum of the four list sizes.
	assert.Equal(t, 6, surface.ComplexityMetrics.TotalPublicItems)
	assert.Equal(t, []string{"crate::main"}, surface.EntryPoints)
}

func TestAPISurfaceExcludesImplAndPrivate(t *testing.T) {
	doc := NewChunker(DefaultConfig()).Format(surfaceModel())
	surface := doc.Semantics.APISurface

	for _, api := range surface.PublicFunctions {
		assert.NotEqual(t, "hidden", api.Name)
	}
	for _, api := range surface.PublicTypes {
		assert.NotContains(t, api.Name, "impl")
	}
}

func TestAPISurfaceComplexityMetrics(t *testing.T) {
	doc := NewChunker(DefaultConfig()).Format(surfaceModel())
	metrics := doc.Semantics.APISurface.ComplexityMetrics

	assert.Equal(t, 2, metrics.MaxParameterCount)
	assert.InDelta(t, 1.0, metrics.AvgParameterCount, 1e-9, "(0+2)/2")
	assert.InDelta(t, 1.0/6.0, metrics.GenericUsageRatio, 1e-9)
	assert.InDelta(t, 1.0/6.0, metrics.DocumentationCoverage, 1e-9)
}

func TestAPISurfaceLinksChunks(t *testing.T) {
	doc := NewChunker(DefaultConfig()).Format(surfaceModel())
	surface := doc.Semantics.APISurface

	for _, api := range surface.PublicFunctions {
		if api.Name == "parse" {
			assert.NotEmpty(t, api.ChunkID, "public documented function links to its chunk")
		}
	}
}
