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

// Package model defines the Project Model: the canonical in-memory
// representation of an extracted Rust source tree.
//
// The root aggregate is ProjectModel, which holds per-file FileModel slices in
// discovery order, resolved CrossReferences, and aggregated ProjectMetrics.
// The central entity is CodeElement: one per declarative item (function,
// struct, enum, trait, impl, module, constant, static, type alias, macro,
// union), carrying identity, visibility, documentation, location, complexity
// and hierarchy information.
//
// Identity is handled by HierarchyBuilder, which generates stable element IDs
// of the form <Kind>_<Name>_<Ordinal> and tracks the module path and scope
// stack during traversal. NamespaceResolver accumulates import aliases so that
// every element knows the full set of names it can be referenced by.
//
// Everything in this package is a plain value. Elements and edges are created
// during extraction and are immutable afterward; serialization never mutates
// the model.
package model
