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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kraklabs/rustmap/pkg/complexity"
)

// ElementKind identifies the declarative item kind of a CodeElement.
type ElementKind string

// Element kinds, one per Rust declarative item.
const (
	KindFunction  ElementKind = "Function"
	KindStruct    ElementKind = "Struct"
	KindEnum      ElementKind = "Enum"
	KindTrait     ElementKind = "Trait"
	KindImpl      ElementKind = "Impl"
	KindModule    ElementKind = "Module"
	KindConstant  ElementKind = "Constant"
	KindStatic    ElementKind = "Static"
	KindTypeAlias ElementKind = "TypeAlias"
	KindMacro     ElementKind = "Macro"
	KindUnion     ElementKind = "Union"
)

// IsType reports whether the kind names a type definition (struct, enum,
// trait, type alias, or union). Used by the graph builder to decide which
// resolved references become type relationships.
func (k ElementKind) IsType() bool {
	switch k {
	case KindStruct, KindEnum, KindTrait, KindTypeAlias, KindUnion:
		return true
	default:
		return false
	}
}

// VisibilityKind discriminates the Visibility variant.
type VisibilityKind string

const (
	// VisibilityPublic corresponds to `pub`.
	VisibilityPublic VisibilityKind = "public"

	// VisibilityPrivate is the default (inherited) visibility.
	VisibilityPrivate VisibilityKind = "private"

	// VisibilityRestricted corresponds to `pub(crate)`, `pub(super)`, and
	// `pub(in path)`. The restriction text is kept verbatim.
	VisibilityRestricted VisibilityKind = "restricted"
)

// Visibility is the visibility of a declared item.
type Visibility struct {
	Kind VisibilityKind `json:"kind"`

	// Scope holds the source text of the restriction for Restricted
	// visibility (e.g. "pub(crate)"); empty otherwise.
	Scope string `json:"scope,omitempty"`
}

// Public returns the Public visibility value.
func Public() Visibility { return Visibility{Kind: VisibilityPublic} }

// Private returns the Private visibility value.
func Private() Visibility { return Visibility{Kind: VisibilityPrivate} }

// Restricted returns a Restricted visibility carrying the source text of the
// restriction.
func Restricted(scope string) Visibility {
	return Visibility{Kind: VisibilityRestricted, Scope: scope}
}

// IsPublic reports whether the visibility is Public.
func (v Visibility) IsPublic() bool { return v.Kind == VisibilityPublic }

// IsPrivate reports whether the visibility is Private. Restricted visibility
// is treated as non-private by the extraction gate.
func (v Visibility) IsPrivate() bool { return v.Kind == VisibilityPrivate }

// String renders the visibility the way it reads in source.
func (v Visibility) String() string {
	switch v.Kind {
	case VisibilityPublic:
		return "pub"
	case VisibilityRestricted:
		return v.Scope
	default:
		return "private"
	}
}

// Location is a source span. Lines are 1-based inclusive; character offsets
// are 0-based byte offsets into the file.
type Location struct {
	LineStart uint32 `json:"line_start"`
	LineEnd   uint32 `json:"line_end"`
	CharStart uint32 `json:"char_start"`
	CharEnd   uint32 `json:"char_end"`
	FilePath  string `json:"file_path"`
}

// Valid reports whether the span is well formed (end not before start).
func (l Location) Valid() bool {
	return l.LineEnd >= l.LineStart && l.CharEnd >= l.CharStart
}

// CodeElement is one declarative source item with its identity, metrics and
// hierarchy information.
type CodeElement struct {
	// ID is the stable identifier <Kind>_<Name>_<Ordinal>, unique within a
	// ProjectModel.
	ID string `json:"id"`

	Kind ElementKind `json:"kind"`
	Name string      `json:"name"`

	// Signature holds the source form of the declarative header, when the
	// item has one (functions and methods).
	Signature string `json:"signature,omitempty"`

	Visibility Visibility `json:"visibility"`

	// DocComments are the leading `///` / `//!` lines with the leading space
	// trimmed and empty entries discarded. Empty when doc extraction is off.
	DocComments []string `json:"doc_comments,omitempty"`

	// InlineComments are plain `//` comments found inside the element body.
	InlineComments []string `json:"inline_comments,omitempty"`

	// Attributes holds the source text of each declaration attribute.
	Attributes []string `json:"attributes,omitempty"`

	Location Location `json:"location"`

	// Complexity is the overall score; nil when metrics were not computed
	// for this kind.
	Complexity *uint32 `json:"complexity,omitempty"`

	// ComplexityMetrics is the full metric record, when computed.
	ComplexityMetrics *complexity.Metrics `json:"complexity_metrics,omitempty"`

	// Dependencies are simple names this element declares a dependency on
	// (type parameters, explicit uses in its header).
	Dependencies []string `json:"dependencies,omitempty"`

	// GenericParams are the generic parameter source forms in declaration
	// order.
	GenericParams []string `json:"generic_params,omitempty"`

	// Metadata is an open extension map.
	Metadata map[string]any `json:"metadata,omitempty"`

	Hierarchy ElementHierarchy `json:"hierarchy"`
}

// IsPublic reports whether the element is publicly visible.
func (e *CodeElement) IsPublic() bool { return e.Visibility.IsPublic() }

// QualifiedName returns the module-qualified name of the element.
func (e *CodeElement) QualifiedName() string { return e.Hierarchy.QualifiedName }

// Ordinal extracts the trailing ordinal from the element ID. It is used as the
// deterministic tie-breaker during cross-reference resolution. Returns 0 when
// the ID does not end in an ordinal.
func (e *CodeElement) Ordinal() int {
	idx := strings.LastIndex(e.ID, "_")
	if idx < 0 || idx == len(e.ID)-1 {
		return 0
	}
	n, err := strconv.Atoi(e.ID[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

// ElementID formats a stable element identifier from its parts.
func ElementID(kind ElementKind, name string, ordinal int) string {
	return fmt.Sprintf("%s_%s_%d", kind, name, ordinal)
}
