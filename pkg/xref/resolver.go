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

package xref

import (
	"strings"

	"github.com/kraklabs/rustmap/pkg/model"
)

// entry is one resolvable registration of an element under a name.
type entry struct {
	id         string
	modulePath string
	ordinal    int
}

// Resolver holds the name index built during finalization. Registration must
// happen in element order (parents precede children), which traversal order
// guarantees.
type Resolver struct {
	index    map[string][]entry
	elements map[string]*model.CodeElement
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		index:    make(map[string][]entry),
		elements: make(map[string]*model.CodeElement),
	}
}

// Register indexes an element under all of its reference names and under its
// scope-qualified name, so scope-chain lookups can find it.
func (r *Resolver) Register(element *model.CodeElement) {
	r.elements[element.ID] = element

	en := entry{
		id:         element.ID,
		modulePath: element.Hierarchy.ModulePath,
		ordinal:    element.Ordinal(),
	}
	for _, name := range element.Hierarchy.Namespace.ReferenceNames() {
		r.add(name, en)
	}
	if chain := r.scopeChain(element); len(chain) > 0 {
		r.add(strings.Join(chain, "::")+"::"+element.Name, en)
	}
}

func (r *Resolver) add(name string, en entry) {
	if name == "" {
		return
	}
	for _, existing := range r.index[name] {
		if existing.id == en.id {
			return
		}
	}
	r.index[name] = append(r.index[name], en)
}

// scopeChain walks parent pointers to the chain of enclosing element IDs,
// outermost first.
func (r *Resolver) scopeChain(element *model.CodeElement) []string {
	var chain []string
	for pid := element.Hierarchy.ParentID; pid != ""; {
		parent, ok := r.elements[pid]
		if !ok {
			break
		}
		chain = append([]string{parent.ID}, chain...)
		pid = parent.Hierarchy.ParentID
	}
	return chain
}

// Resolve matches one raw reference. The resolution order is fixed:
//
//  1. the enclosing scope chain, innermost first;
//  2. the file's import map, substituting the canonical path;
//  3. the reference text as-is.
//
// The file's namespace resolver may be nil when the file declared no imports.
func (r *Resolver) Resolve(ref model.Reference, ns *model.NamespaceResolver) model.CrossReference {
	texts := lookupTexts(ref.Text)

	// 1. Scope chain, innermost first.
	if ref.Context.Scope != "" {
		chain := strings.Split(ref.Context.Scope, "::")
		for i := len(chain); i >= 1; i-- {
			prefix := strings.Join(chain[:i], "::")
			for _, text := range texts {
				if id, ok := r.lookup(prefix+"::"+text, ref.FromElementID); ok {
					return model.Resolved(ref, id)
				}
			}
		}
	}

	// 2. Import map: substitute the imported canonical path.
	if ns != nil {
		for _, text := range texts {
			head, rest := splitFirstSegment(text)
			canonical, ok := ns.Resolve(head)
			if !ok {
				continue
			}
			candidate := canonical
			if rest != "" {
				candidate += "::" + rest
			}
			for _, key := range canonicalVariants(candidate) {
				if id, ok := r.lookup(key, ref.FromElementID); ok {
					return model.Resolved(ref, id)
				}
			}
		}
		// Glob imports bring every leaf of a module into scope.
		for _, glob := range ns.GlobPaths() {
			for _, text := range texts {
				for _, key := range canonicalVariants(glob + "::" + text) {
					if id, ok := r.lookup(key, ref.FromElementID); ok {
						return model.Resolved(ref, id)
					}
				}
			}
		}
	}

	// 3. The text as-is.
	for _, text := range texts {
		if id, ok := r.lookup(text, ref.FromElementID); ok {
			return model.Resolved(ref, id)
		}
	}

	return model.Unresolved(ref)
}

// lookup finds a unique element for a name. Multiple matches prefer the
// longest shared module-path prefix with the referencing element; remaining
// ties break to the lower ordinal, which keeps resolution deterministic.
func (r *Resolver) lookup(name, fromID string) (string, bool) {
	entries := r.index[name]
	switch len(entries) {
	case 0:
		return "", false
	case 1:
		return entries[0].id, true
	}

	fromModule := ""
	if from, ok := r.elements[fromID]; ok {
		fromModule = from.Hierarchy.ModulePath
	}

	best := entries[0]
	bestShared := sharedPrefixLen(fromModule, best.modulePath)
	for _, candidate := range entries[1:] {
		shared := sharedPrefixLen(fromModule, candidate.modulePath)
		if shared > bestShared || (shared == bestShared && candidate.ordinal < best.ordinal) {
			best = candidate
			bestShared = shared
		}
	}
	return best.id, true
}

// sharedPrefixLen counts the leading module-path segments two paths share.
func sharedPrefixLen(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	as := strings.Split(a, "::")
	bs := strings.Split(b, "::")
	n := 0
	for n < len(as) && n < len(bs) && as[n] == bs[n] {
		n++
	}
	return n
}

// lookupTexts expands a reference text into its lookup candidates. Method
// call texts like "recv.m" also try the bare method name, which is what the
// method registered under.
func lookupTexts(text string) []string {
	texts := []string{text}
	if idx := strings.LastIndex(text, "."); idx >= 0 && idx < len(text)-1 {
		texts = append(texts, text[idx+1:])
	}
	return texts
}

// splitFirstSegment splits "a::b::c" into "a" and "b::c".
func splitFirstSegment(text string) (head, rest string) {
	if idx := strings.Index(text, "::"); idx >= 0 {
		return text[:idx], text[idx+2:]
	}
	return text, ""
}

// canonicalVariants returns the candidate keys for an import-substituted
// path: verbatim, and crate-anchored when the import spelled a bare path.
func canonicalVariants(path string) []string {
	if strings.HasPrefix(path, "crate::") {
		return []string{path}
	}
	return []string{path, "crate::" + path}
}
