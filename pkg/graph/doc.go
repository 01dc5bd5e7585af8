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

// Package graph derives call, dependency and type-relationship edges from
// resolved cross-references, and answers traversal queries over them.
//
// Call edges aggregate per (caller, callee) pair with their call sites;
// dependency edges carry a strength per reference kind and are flagged when
// they participate in a cycle; type relationships capture implements/uses
// links between type definitions, including generic constraints parsed from
// the reference text.
//
// Every traversal (cycle detection, BFS dependency walks, Dijkstra shortest
// path, all-paths enumeration) is iterative with an explicit stack, queue or
// heap, so deep graphs cannot exhaust the call stack. Cycle detection bounds
// its path by the node count, and all-paths enumeration and the walks take a
// caller depth bound (a walk given zero or less is limited only by its
// visited set). Dijkstra shortest path has no depth bound; its visited set
// ends the search.
package graph
