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

import "sort"

// ElementCount pairs an element with how many dependencies originate there.
type ElementCount struct {
	ElementID string `json:"element_id"`
	Count     int    `json:"count"`
}

// DependencyAnalysis summarizes the dependency table of a project.
type DependencyAnalysis struct {
	TotalDependencies      int            `json:"total_dependencies"`
	DirectDependencies     int            `json:"direct_dependencies"`
	CyclicDependencies     int            `json:"cyclic_dependencies"`
	Cycles                 []Cycle        `json:"cycles,omitempty"`
	MostDependentElements  []ElementCount `json:"most_dependent_elements,omitempty"`
	AverageDependencyDepth float64        `json:"average_dependency_depth"`
}

// AnalyzeDependencies computes the dependency summary: totals, cycle counts,
// and the ten elements with the most outgoing dependencies.
func (g *Graph) AnalyzeDependencies() DependencyAnalysis {
	analysis := DependencyAnalysis{
		TotalDependencies: len(g.DependencyEdges),
		Cycles:            g.Cycles,
	}

	counts := make(map[string]int)
	var depthSum int
	for _, edge := range g.DependencyEdges {
		if edge.IsDirect {
			analysis.DirectDependencies++
		}
		if edge.IsCyclic {
			analysis.CyclicDependencies++
		}
		counts[edge.FromID]++
		depthSum += edge.PathLength
	}
	if analysis.TotalDependencies > 0 {
		analysis.AverageDependencyDepth = float64(depthSum) / float64(analysis.TotalDependencies)
	}

	most := make([]ElementCount, 0, len(counts))
	for id, count := range counts {
		most = append(most, ElementCount{ElementID: id, Count: count})
	}
	sort.Slice(most, func(i, j int) bool {
		if most[i].Count != most[j].Count {
			return most[i].Count > most[j].Count
		}
		return most[i].ElementID < most[j].ElementID
	})
	if len(most) > 10 {
		most = most[:10]
	}
	analysis.MostDependentElements = most
	return analysis
}

// CallChainAnalysis summarizes the call graph around one function.
type CallChainAnalysis struct {
	RootFunctionID string           `json:"root_function_id"`
	ForwardCalls   []DependencyPath `json:"forward_calls,omitempty"`
	BackwardCalls  []DependencyPath `json:"backward_calls,omitempty"`
	RecursiveCalls []CallEdge       `json:"recursive_calls,omitempty"`
	MaxDepth       int              `json:"max_depth"`
	TotalCalls     int              `json:"total_calls"`
}

// AnalyzeCallChain traces calls forward and backward from a function and
// collects its recursive edges.
func (g *Graph) AnalyzeCallChain(functionID string, maxDepth int) CallChainAnalysis {
	analysis := CallChainAnalysis{
		RootFunctionID: functionID,
		ForwardCalls:   g.Walk(functionID, CallChains, maxDepth),
		BackwardCalls:  g.Walk(functionID, CallersChain, maxDepth),
	}
	for _, edge := range g.CallEdges {
		if edge.CallerID == functionID && edge.IsRecursive {
			analysis.RecursiveCalls = append(analysis.RecursiveCalls, edge)
		}
	}
	for _, path := range analysis.ForwardCalls {
		if path.Depth > analysis.MaxDepth {
			analysis.MaxDepth = path.Depth
		}
	}
	analysis.TotalCalls = len(analysis.ForwardCalls) + len(analysis.BackwardCalls)
	return analysis
}
