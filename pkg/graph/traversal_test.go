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

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainGraph builds a -> b -> c -> d with one shortcut a -> d.
func chainGraph() *Graph {
	return &Graph{
		DependencyEdges: []DependencyEdge{
			{FromID: "a", ToID: "b", DependencyType: "TypeUsage", Strength: 0.1, IsDirect: true, PathLength: 1},
			{FromID: "b", ToID: "c", DependencyType: "TypeUsage", Strength: 0.1, IsDirect: true, PathLength: 1},
			{FromID: "c", ToID: "d", DependencyType: "TypeUsage", Strength: 0.1, IsDirect: true, PathLength: 1},
			{FromID: "a", ToID: "d", DependencyType: "TypeUsage", Strength: 0.9, IsDirect: true, PathLength: 1},
		},
	}
}

func TestWalkDependenciesForward(t *testing.T) {
	g := chainGraph()
	paths := g.FindDependencies("a", 0)

	reached := make(map[string]bool)
	for _, p := range paths {
		reached[p.TargetID] = true
	}
	assert.True(t, reached["b"])
	assert.True(t, reached["c"])
	assert.True(t, reached["d"])
}

func TestWalkDepthBound(t *testing.T) {
	g := chainGraph()
	paths := g.FindDependencies("a", 1)

	for _, p := range paths {
		assert.LessOrEqual(t, p.Depth, 1)
	}
}

func TestWalkDependentsBackward(t *testing.T) {
	g := chainGraph()
	paths := g.FindDependents("d", 0)

	reached := make(map[string]bool)
	for _, p := range paths {
		reached[p.TargetID] = true
	}
	assert.True(t, reached["a"])
	assert.True(t, reached["c"])
}

func TestShortestPathPrefersLowWeight(t *testing.T) {
	g := chainGraph()

	sp := g.ShortestPath("a", "d", Dependencies)
	require.NotNil(t, sp)
	// Three hops at 0.1 beat the direct 0.9 edge.
	assert.Equal(t, []string{"a", "b", "c", "d"}, sp.Path)
	assert.InDelta(t, 0.3, sp.TotalDistance, 1e-9)
	assert.Equal(t, 3, sp.EdgeCount)
}

func TestShortestPathMissing(t *testing.T) {
	g := chainGraph()
	assert.Nil(t, g.ShortestPath("d", "a", Dependencies), "no backward path forward")
}

func TestAllPaths(t *testing.T) {
	g := chainGraph()
	paths := g.AllPaths("a", "d", Dependencies, 5)

	require.Len(t, paths, 2)
	lengths := map[int]bool{}
	for _, p := range paths {
		lengths[p.Length] = true
		assert.Equal(t, "a", p.Elements[0])
		assert.Equal(t, "d", p.Elements[len(p.Elements)-1])
	}
	assert.True(t, lengths[2], "direct path")
	assert.True(t, lengths[4], "chain path")
}

func TestAllPathsDepthBound(t *testing.T) {
	g := chainGraph()
	paths := g.AllPaths("a", "d", Dependencies, 1)
	require.Len(t, paths, 1, "only the direct edge fits the bound")
	assert.Equal(t, 2, paths[0].Length)
}

func TestAllPathsTerminatesOnCycles(t *testing.T) {
	g := &Graph{
		DependencyEdges: []DependencyEdge{
			{FromID: "a", ToID: "b", Strength: 0.5},
			{FromID: "b", ToID: "a", Strength: 0.5},
			{FromID: "b", ToID: "c", Strength: 0.5},
		},
	}
	paths := g.AllPaths("a", "c", Dependencies, 10)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"a", "b", "c"}, paths[0].Elements)
}

func TestCallChainTraversal(t *testing.T) {
	g := &Graph{
		CallEdges: []CallEdge{
			{CallerID: "main", CalleeID: "run", CallType: CallDirect, CallCount: 1},
			{CallerID: "run", CalleeID: "step", CallType: CallDirect, CallCount: 1},
			{CallerID: "step", CalleeID: "step", CallType: CallDirect, CallCount: 2, IsRecursive: true},
		},
	}

	analysis := g.AnalyzeCallChain("run", 0)
	assert.Equal(t, "run", analysis.RootFunctionID)

	forward := make(map[string]bool)
	for _, p := range analysis.ForwardCalls {
		forward[p.TargetID] = true
	}
	assert.True(t, forward["step"])

	backward := make(map[string]bool)
	for _, p := range analysis.BackwardCalls {
		backward[p.TargetID] = true
	}
	assert.True(t, backward["main"])

	assert.Empty(t, analysis.RecursiveCalls, "run itself is not recursive")

	stepAnalysis := g.AnalyzeCallChain("step", 0)
	require.Len(t, stepAnalysis.RecursiveCalls, 1)
	assert.True(t, stepAnalysis.RecursiveCalls[0].IsRecursive)
}

func TestAnalyzeDependencies(t *testing.T) {
	g := &Graph{
		DependencyEdges: []DependencyEdge{
			{FromID: "a", ToID: "b", IsDirect: true, IsCyclic: true, PathLength: 1},
			{FromID: "b", ToID: "a", IsDirect: true, IsCyclic: true, PathLength: 1},
			{FromID: "a", ToID: "c", IsDirect: true, PathLength: 1},
			{FromID: "c", ToID: "d", IsDirect: false, PathLength: 2},
		},
		Cycles: []Cycle{{Elements: []string{"a", "b"}, Length: 2, Strength: 0.5}},
	}

	analysis := g.AnalyzeDependencies()
	assert.Equal(t, 4, analysis.TotalDependencies)
	assert.Equal(t, 3, analysis.DirectDependencies)
	assert.Equal(t, 2, analysis.CyclicDependencies)
	require.Len(t, analysis.Cycles, 1)
	assert.InDelta(t, 1.25, analysis.AverageDependencyDepth, 1e-9)

	require.NotEmpty(t, analysis.MostDependentElements)
	assert.Equal(t, "a", analysis.MostDependentElements[0].ElementID)
	assert.Equal(t, 2, analysis.MostDependentElements[0].Count)
}
