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

package complexity

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ForStructural computes metrics for non-callable items. Structs weigh fields
// and generics, enums weigh variants (field-carrying variants count twice into
// cognitive), traits weigh methods and associated types, impl blocks weigh
// methods. Anything else gets base complexity 1/1.
func ForStructural(node *sitter.Node) Metrics {
	var m Metrics
	m.LinesOfCode = spanLines(node)

	switch node.Type() {
	case "struct_item", "union_item":
		fieldCount := countStructFields(node.ChildByFieldName("body"))
		genericCount := countGenerics(node.ChildByFieldName("type_parameters"))
		m.Cyclomatic = 1 + fieldCount/3 + genericCount
		m.Cognitive = fieldCount/2 + genericCount

	case "enum_item":
		variants, complexVariants := countEnumVariants(node.ChildByFieldName("body"))
		m.Cyclomatic = variants
		m.Cognitive = variants + complexVariants

	case "trait_item":
		methods, assocTypes := countTraitItems(node.ChildByFieldName("body"))
		m.Cyclomatic = methods + assocTypes
		m.Cognitive = methods*2 + assocTypes

	case "impl_item":
		methods := countImplMethods(node.ChildByFieldName("body"))
		m.Cyclomatic = methods
		m.Cognitive = methods

	default:
		m.Cyclomatic = 1
		m.Cognitive = 1
	}

	return m
}

// countStructFields counts declared fields in either named or tuple form.
func countStructFields(body *sitter.Node) uint32 {
	if body == nil {
		return 0
	}
	var count uint32
	switch body.Type() {
	case "field_declaration_list":
		for i := 0; i < int(body.NamedChildCount()); i++ {
			if body.NamedChild(i).Type() == "field_declaration" {
				count++
			}
		}
	case "ordered_field_declaration_list":
		for i := 0; i < int(body.NamedChildCount()); i++ {
			switch body.NamedChild(i).Type() {
			case "attribute_item", "visibility_modifier":
			default:
				count++
			}
		}
	}
	return count
}

// countGenerics counts the declared generic parameters.
func countGenerics(typeParams *sitter.Node) uint32 {
	if typeParams == nil {
		return 0
	}
	return uint32(typeParams.NamedChildCount())
}

// countEnumVariants returns total variants and the number of complex variants
// (variants that carry fields).
func countEnumVariants(body *sitter.Node) (variants, complexVariants uint32) {
	if body == nil {
		return 0, 0
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "enum_variant" {
			continue
		}
		variants++
		if child.ChildByFieldName("body") != nil {
			complexVariants++
		}
	}
	return variants, complexVariants
}

// countTraitItems returns the method and associated-type counts of a trait
// declaration list. Signature-only and defaulted methods both count.
func countTraitItems(body *sitter.Node) (methods, assocTypes uint32) {
	if body == nil {
		return 0, 0
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		switch body.NamedChild(i).Type() {
		case "function_item", "function_signature_item":
			methods++
		case "associated_type":
			assocTypes++
		}
	}
	return methods, assocTypes
}

// countImplMethods counts the function items of an impl declaration list.
func countImplMethods(body *sitter.Node) uint32 {
	if body == nil {
		return 0
	}
	var methods uint32
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if body.NamedChild(i).Type() == "function_item" {
			methods++
		}
	}
	return methods
}
