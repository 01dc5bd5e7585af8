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

// Package xref resolves raw references against the extracted element table.
//
// Elements register under every name in their reference-name set (simple
// name, canonical path, aliases) plus their scope-qualified name. Resolution
// is single-pass and purely syntactic: the enclosing scope chain is tried
// innermost first, then the file's import map, then the reference text
// verbatim. Ambiguity is settled by the longest shared module-path prefix
// with the referencing element, ties by the lower element ordinal.
//
// Unresolved references are values, not errors; downstream consumers may
// apply additional heuristics.
package xref
