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

package model

import "strings"

// ImportInfo is one `use` declaration as it appears in source.
type ImportInfo struct {
	// ModulePath is the source text of the imported path, without the leaf
	// list: for `use a::b::{c, d}` it is "a::b".
	ModulePath string `json:"module_path"`

	// ImportedItems are the leaf names brought into scope.
	ImportedItems []string `json:"imported_items,omitempty"`

	// IsGlob marks `use a::b::*`.
	IsGlob bool `json:"is_glob"`

	// Alias is the local rename from `use a::b as c`, empty otherwise.
	Alias string `json:"alias,omitempty"`
}

// NamespaceResolver accumulates use statements for a file and answers alias
// queries against canonical paths. It backs the finalization pass that merges
// import aliases into element namespaces, and the import step of
// cross-reference resolution.
type NamespaceResolver struct {
	modulePath string

	// canonicalByLocal maps a local name (leaf or alias) to the canonical
	// path it refers to.
	canonicalByLocal map[string]string

	// localsByCanonical is the reverse index: canonical path -> local names.
	localsByCanonical map[string][]string

	// globs are the module paths imported with `::*`.
	globs []string
}

// NewNamespaceResolver creates a resolver for a file rooted at modulePath.
func NewNamespaceResolver(modulePath string) *NamespaceResolver {
	return &NamespaceResolver{
		modulePath:        modulePath,
		canonicalByLocal:  make(map[string]string),
		localsByCanonical: make(map[string][]string),
	}
}

// AddUse records one import declaration.
func (r *NamespaceResolver) AddUse(imp ImportInfo) {
	if imp.IsGlob {
		r.globs = append(r.globs, imp.ModulePath)
		return
	}
	for _, item := range imp.ImportedItems {
		canonical := joinPath(imp.ModulePath, item)
		local := item
		if imp.Alias != "" && len(imp.ImportedItems) == 1 {
			local = imp.Alias
		}
		r.record(local, canonical)
	}
	// A bare `use a::b as c` with no item list imports the path itself.
	if len(imp.ImportedItems) == 0 && imp.ModulePath != "" {
		local := imp.Alias
		if local == "" {
			local = lastSegment(imp.ModulePath)
		}
		r.record(local, imp.ModulePath)
	}
}

func (r *NamespaceResolver) record(local, canonical string) {
	if local == "" || local == "self" {
		return
	}
	r.canonicalByLocal[local] = canonical
	r.localsByCanonical[canonical] = append(r.localsByCanonical[canonical], local)
}

// Resolve maps a local name to its imported canonical path. The second return
// is false when the name was not introduced by any use statement.
func (r *NamespaceResolver) Resolve(local string) (string, bool) {
	canonical, ok := r.canonicalByLocal[local]
	return canonical, ok
}

// GlobPaths returns the module paths imported via glob, in declaration order.
func (r *NamespaceResolver) GlobPaths() []string { return r.globs }

// AliasesForPath returns the local names that refer to the given canonical
// path. Paths are compared both verbatim and with the crate prefix stripped,
// since use statements inside a crate commonly spell `crate::x` while element
// canonical paths always carry it.
func (r *NamespaceResolver) AliasesForPath(canonical string) []string {
	var out []string
	out = append(out, r.localsByCanonical[canonical]...)
	if trimmed := strings.TrimPrefix(canonical, "crate::"); trimmed != canonical {
		out = append(out, r.localsByCanonical[trimmed]...)
	}
	return out
}

func joinPath(base, leaf string) string {
	if base == "" {
		return leaf
	}
	return base + "::" + leaf
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "::"); idx >= 0 {
		return path[idx+2:]
	}
	return path
}
