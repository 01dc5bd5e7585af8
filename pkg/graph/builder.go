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
	"sort"
	"strings"

	"github.com/kraklabs/rustmap/pkg/model"
)

// Call types derived from the reference text.
const (
	CallDirect = "direct"
	CallMethod = "method"
	CallStatic = "static"
)

// CallEdge is one aggregated caller->callee relationship.
type CallEdge struct {
	CallerID string `json:"caller_id"`
	CalleeID string `json:"callee_id"`

	// CallType is static for `::` paths, method for `.` calls, direct
	// otherwise.
	CallType string `json:"call_type"`

	// CallSites are the source lines of each call, in reference order.
	CallSites []uint32 `json:"call_sites"`

	CallCount   int  `json:"call_count"`
	IsRecursive bool `json:"is_recursive"`

	// RecursionDepth is set for self-calls (direct recursion is depth 1).
	RecursionDepth *int `json:"recursion_depth,omitempty"`
}

// DependencyEdge links two elements through a non-call usage.
type DependencyEdge struct {
	FromID         string  `json:"from_id"`
	ToID           string  `json:"to_id"`
	DependencyType string  `json:"dependency_type"`
	Strength       float64 `json:"strength"`
	IsDirect       bool    `json:"is_direct"`
	IsCyclic       bool    `json:"is_cyclic"`
	PathLength     int     `json:"path_length"`
}

// TypeRelationship links two type definitions.
type TypeRelationship struct {
	FromTypeID         string   `json:"from_type_id"`
	ToTypeID           string   `json:"to_type_id"`
	RelationshipType   string   `json:"relationship_type"` // implements | uses | extends | contains
	Strength           float64  `json:"strength"`
	IsGeneric          bool     `json:"is_generic"`
	GenericConstraints []string `json:"generic_constraints,omitempty"`
}

// Cycle is one dependency cycle found during detection.
type Cycle struct {
	Elements []string `json:"elements"`
	Length   int      `json:"length"`
	Strength float64  `json:"strength"`
}

// Graph holds the three edge tables plus detected cycles.
type Graph struct {
	CallEdges         []CallEdge         `json:"call_edges"`
	DependencyEdges   []DependencyEdge   `json:"dependency_edges"`
	TypeRelationships []TypeRelationship `json:"type_relationships"`
	Cycles            []Cycle            `json:"cycles,omitempty"`
}

// Build derives the edge tables from a project model. References with a
// missing endpoint are dropped silently; unresolved references never produce
// edges.
func Build(m *model.ProjectModel) *Graph {
	byID := make(map[string]*model.CodeElement)
	for _, element := range m.AllElements() {
		byID[element.ID] = element
	}

	g := &Graph{}
	g.buildCallEdges(m.CrossReferences, byID)
	g.buildDependencyEdges(m.CrossReferences, byID)
	g.buildTypeRelationships(m.CrossReferences, byID)
	g.detectCycles()
	return g
}

// buildCallEdges aggregates resolved function calls between Function
// elements, merging call sites per (caller, callee) pair.
func (g *Graph) buildCallEdges(refs []model.CrossReference, byID map[string]*model.CodeElement) {
	edgeIndex := make(map[string]int)
	for _, ref := range refs {
		if !ref.IsResolved || ref.Type != model.RefFunctionCall {
			continue
		}
		caller, callee := byID[ref.FromElementID], byID[ref.ToElementID]
		if caller == nil || callee == nil {
			continue
		}
		if caller.Kind != model.KindFunction || callee.Kind != model.KindFunction {
			continue
		}

		key := ref.FromElementID + "->" + ref.ToElementID
		if idx, ok := edgeIndex[key]; ok {
			edge := &g.CallEdges[idx]
			edge.CallSites = append(edge.CallSites, ref.Location.LineStart)
			edge.CallCount++
			continue
		}

		edge := CallEdge{
			CallerID:  ref.FromElementID,
			CalleeID:  ref.ToElementID,
			CallType:  callTypeOf(ref.Text),
			CallSites: []uint32{ref.Location.LineStart},
			CallCount: 1,
		}
		if edge.CallerID == edge.CalleeID {
			edge.IsRecursive = true
			depth := 1
			edge.RecursionDepth = &depth
		}
		edgeIndex[key] = len(g.CallEdges)
		g.CallEdges = append(g.CallEdges, edge)
	}
}

// callTypeOf classifies the call from its reference text: static for
// path-qualified calls, method for dotted calls, direct otherwise.
func callTypeOf(text string) string {
	switch {
	case strings.Contains(text, "::"):
		return CallStatic
	case strings.Contains(text, "."):
		return CallMethod
	default:
		return CallDirect
	}
}

// buildDependencyEdges emits one edge per distinct (from, to, type) triple
// for type usages, variable accesses and module references.
func (g *Graph) buildDependencyEdges(refs []model.CrossReference, byID map[string]*model.CodeElement) {
	seen := make(map[string]bool)
	for _, ref := range refs {
		if !ref.IsResolved {
			continue
		}
		switch ref.Type {
		case model.RefTypeUsage, model.RefVariableAccess, model.RefModuleReference:
		default:
			continue
		}
		if byID[ref.FromElementID] == nil || byID[ref.ToElementID] == nil {
			continue
		}
		if ref.FromElementID == ref.ToElementID {
			continue
		}

		key := ref.FromElementID + "->" + ref.ToElementID + "|" + string(ref.Type)
		if seen[key] {
			continue
		}
		seen[key] = true

		g.DependencyEdges = append(g.DependencyEdges, DependencyEdge{
			FromID:         ref.FromElementID,
			ToID:           ref.ToElementID,
			DependencyType: string(ref.Type),
			Strength:       DependencyStrength(ref.Type),
			IsDirect:       ref.Type != model.RefModuleReference,
			PathLength:     1,
		})
	}
}

// DependencyStrength maps a reference kind to its edge weight.
func DependencyStrength(refType model.ReferenceType) float64 {
	switch refType {
	case model.RefTypeUsage:
		return 0.9
	case model.RefVariableAccess:
		return 0.8
	case model.RefFunctionCall:
		return 0.7
	case model.RefModuleReference:
		return 0.3
	default:
		return 0.5
	}
}

// buildTypeRelationships emits implements/uses links between type
// definitions. The from endpoint may be an impl block (trait implementations
// originate there); the to endpoint must be a type definition.
func (g *Graph) buildTypeRelationships(refs []model.CrossReference, byID map[string]*model.CodeElement) {
	seen := make(map[string]bool)
	for _, ref := range refs {
		if !ref.IsResolved {
			continue
		}

		var relType string
		var strength float64
		switch ref.Type {
		case model.RefTraitImplementation:
			relType, strength = "implements", 0.9
		case model.RefTypeUsage:
			relType, strength = "uses", 0.6
		default:
			continue
		}

		from, to := byID[ref.FromElementID], byID[ref.ToElementID]
		if from == nil || to == nil || !to.Kind.IsType() {
			continue
		}
		if !from.Kind.IsType() && from.Kind != model.KindImpl {
			continue
		}
		if from.ID == to.ID {
			continue
		}

		key := from.ID + "->" + to.ID + "|" + relType
		if seen[key] {
			continue
		}
		seen[key] = true

		g.TypeRelationships = append(g.TypeRelationships, TypeRelationship{
			FromTypeID:         from.ID,
			ToTypeID:           to.ID,
			RelationshipType:   relType,
			Strength:           strength,
			IsGeneric:          strings.Contains(ref.Text, "<"),
			GenericConstraints: genericConstraints(ref.Text),
		})
	}
}

// genericConstraints parses the angle-bracket arguments of a reference text.
func genericConstraints(text string) []string {
	open := strings.Index(text, "<")
	closing := strings.LastIndex(text, ">")
	if open < 0 || closing <= open {
		return nil
	}
	var out []string
	for _, part := range strings.Split(text[open+1:closing], ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// detectCycles runs an iterative DFS over the dependency adjacency, records
// each cycle, and flags the edges lying on one. The path length is bounded by
// the node count.
func (g *Graph) detectCycles() {
	adjacency := make(map[string][]string)
	nodes := make(map[string]bool)
	for _, edge := range g.DependencyEdges {
		adjacency[edge.FromID] = append(adjacency[edge.FromID], edge.ToID)
		nodes[edge.FromID] = true
		nodes[edge.ToID] = true
	}
	if len(nodes) == 0 {
		return
	}
	maxPath := len(nodes)

	starts := make([]string, 0, len(adjacency))
	for node := range adjacency {
		starts = append(starts, node)
	}
	sort.Strings(starts)

	const (
		unvisited = 0
		onPath    = 1
		done      = 2
	)
	state := make(map[string]int, len(nodes))

	type frame struct {
		node string
		next int
	}

	var cyclicEdges map[string]bool
	for _, start := range starts {
		if state[start] != unvisited {
			continue
		}
		stack := []frame{{node: start}}
		path := []string{start}
		state[start] = onPath

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := adjacency[top.node]

			if top.next < len(neighbors) && len(path) <= maxPath {
				next := neighbors[top.next]
				top.next++
				switch state[next] {
				case unvisited:
					state[next] = onPath
					stack = append(stack, frame{node: next})
					path = append(path, next)
				case onPath:
					// Back-edge: the cycle is the path slice from the
					// revisited node onward.
					for idx, node := range path {
						if node == next {
							cycle := append([]string(nil), path[idx:]...)
							g.Cycles = append(g.Cycles, Cycle{
								Elements: cycle,
								Length:   len(cycle),
								Strength: 1.0 / float64(len(cycle)),
							})
							if cyclicEdges == nil {
								cyclicEdges = make(map[string]bool)
							}
							for i, from := range cycle {
								to := cycle[(i+1)%len(cycle)]
								cyclicEdges[from+"->"+to] = true
							}
							break
						}
					}
				}
			} else {
				state[top.node] = done
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
			}
		}
	}

	for i := range g.DependencyEdges {
		edge := &g.DependencyEdges[i]
		if cyclicEdges[edge.FromID+"->"+edge.ToID] {
			edge.IsCyclic = true
		}
	}
}
