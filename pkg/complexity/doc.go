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

// Package complexity computes per-element code metrics over Tree-sitter Rust
// syntax subtrees: cyclomatic and cognitive complexity, Halstead measures,
// nesting depth, parameter and return-point counts for callables, and
// structural metrics for type-like items.
//
// All entry points are pure over the subtree they are given; the internal
// Calculator is the only mutable state and it never escapes a call.
package complexity
