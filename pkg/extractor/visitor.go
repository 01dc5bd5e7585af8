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

package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/rustmap/pkg/complexity"
	"github.com/kraklabs/rustmap/pkg/model"
)

// Options control what the visitor emits.
type Options struct {
	// IncludeDocs controls doc-comment extraction. When false every
	// element's doc_comments is empty.
	IncludeDocs bool

	// IncludePrivate controls the visibility gate. When false, private
	// items are skipped along with their children. Restricted visibility
	// is treated as non-private.
	IncludePrivate bool

	// Workers is the per-file parse parallelism; <=1 runs sequentially.
	Workers int

	// OnFileParsed, when set, fires after each file finishes parsing. It
	// must be safe for concurrent use when Workers > 1.
	OnFileParsed func()
}

// visitor performs the single traversal of one parsed file. It owns its
// hierarchy builder (and thus its ordinal counter) and produces an isolated
// per-file slice of the model.
type visitor struct {
	opts      Options
	src       []byte
	relPath   string
	builder   *model.HierarchyBuilder
	namespace *model.NamespaceResolver

	elements []*model.CodeElement
	imports  []model.ImportInfo
	refs     []model.Reference

	// elemStack tracks the element raw references are attributed to. It is
	// pushed alongside the builder scope, plus briefly for items (consts,
	// statics) whose initializers reference other elements without opening
	// a scope of their own.
	elemStack []string
}

func newVisitor(relPath string, src []byte, opts Options) *visitor {
	modulePath := model.ModulePathForFile(relPath)
	return &visitor{
		opts:      opts,
		src:       src,
		relPath:   relPath,
		builder:   model.NewHierarchyBuilder(modulePath),
		namespace: model.NewNamespaceResolver(modulePath),
	}
}

// visitFile traverses the root node of a parsed file.
func (v *visitor) visitFile(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		v.visitNode(root.NamedChild(i))
	}
}

// visitNode dispatches one declarative item.
func (v *visitor) visitNode(node *sitter.Node) {
	switch node.Type() {
	case "function_item":
		v.visitFunction(node)
	case "struct_item":
		v.visitStructLike(node, model.KindStruct)
	case "union_item":
		v.visitStructLike(node, model.KindUnion)
	case "enum_item":
		v.visitEnum(node)
	case "trait_item":
		v.visitTrait(node)
	case "impl_item":
		v.visitImpl(node)
	case "mod_item":
		v.visitModule(node)
	case "const_item":
		v.visitValueItem(node, model.KindConstant)
	case "static_item":
		v.visitValueItem(node, model.KindStatic)
	case "type_item":
		v.visitTypeAlias(node)
	case "macro_definition":
		v.visitMacro(node)
	case "use_declaration":
		v.collectImport(node)
	}
}

// gate applies the visibility filter. Restricted visibility passes.
func (v *visitor) gate(vis model.Visibility) bool {
	return v.opts.IncludePrivate || !vis.IsPrivate()
}

func (v *visitor) visitFunction(node *sitter.Node) {
	vis := visibilityOf(node, v.src)
	if !v.gate(vis) {
		return
	}
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	metrics := complexity.ForFunction(node, v.src)
	element := v.emit(node, model.KindFunction, name, vis, &metrics)
	element.Signature = functionSignature(node, v.src)
	element.GenericParams = genericParams(node, v.src)
	element.Dependencies = genericParamNames(node, v.src)

	v.enterElement(element.ID)
	v.walkParameterTypes(node.ChildByFieldName("parameters"))
	v.walkType(node.ChildByFieldName("return_type"))
	v.walkBody(node.ChildByFieldName("body"))
	v.exitElement()
}

func (v *visitor) visitStructLike(node *sitter.Node, kind model.ElementKind) {
	vis := visibilityOf(node, v.src)
	if !v.gate(vis) {
		return
	}
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	metrics := complexity.ForStructural(node)
	element := v.emit(node, kind, name, vis, &metrics)
	element.GenericParams = genericParams(node, v.src)
	element.Dependencies = genericParamNames(node, v.src)

	v.enterElement(element.ID)
	v.walkFieldTypes(node.ChildByFieldName("body"))
	v.exitElement()
}

func (v *visitor) visitEnum(node *sitter.Node) {
	vis := visibilityOf(node, v.src)
	if !v.gate(vis) {
		return
	}
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	metrics := complexity.ForStructural(node)
	element := v.emit(node, model.KindEnum, name, vis, &metrics)
	element.GenericParams = genericParams(node, v.src)
	element.Dependencies = genericParamNames(node, v.src)

	v.enterElement(element.ID)
	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			variant := body.NamedChild(i)
			if variant.Type() == "enum_variant" {
				v.walkFieldTypes(variant.ChildByFieldName("body"))
			}
		}
	}
	v.exitElement()
}

func (v *visitor) visitTrait(node *sitter.Node) {
	vis := visibilityOf(node, v.src)
	if !v.gate(vis) {
		return
	}
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	metrics := complexity.ForStructural(node)
	element := v.emit(node, model.KindTrait, name, vis, &metrics)
	element.GenericParams = genericParams(node, v.src)
	element.Dependencies = genericParamNames(node, v.src)

	// Trait method signatures are not elements of their own; their types
	// still count as usages from the trait.
	v.enterElement(element.ID)
	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			item := body.NamedChild(i)
			switch item.Type() {
			case "function_item", "function_signature_item":
				v.walkParameterTypes(item.ChildByFieldName("parameters"))
				v.walkType(item.ChildByFieldName("return_type"))
				v.walkBody(item.ChildByFieldName("body"))
			case "associated_type", "const_item":
				v.walkType(item.ChildByFieldName("type"))
			}
		}
	}
	v.exitElement()
}

func (v *visitor) visitImpl(node *sitter.Node) {
	traitNode := node.ChildByFieldName("trait")
	typeNode := node.ChildByFieldName("type")
	selfType := nodeText(typeNode, v.src)

	var name string
	if traitNode != nil {
		name = nodeText(traitNode, v.src) + " for " + selfType
	} else {
		name = "impl " + selfType
	}

	// Impl blocks carry no visibility modifier.
	metrics := complexity.ForStructural(node)
	element := v.emit(node, model.KindImpl, name, model.Public(), &metrics)
	element.GenericParams = genericParams(node, v.src)
	if base := baseTypeName(selfType); base != "" {
		element.Dependencies = append(element.Dependencies, base)
	}

	v.enterElement(element.ID)
	if traitNode != nil {
		v.trackRef(model.RefTraitImplementation, nodeText(traitNode, v.src), traitNode)
	}
	if typeNode != nil {
		v.walkType(typeNode)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			v.visitNode(body.NamedChild(i))
		}
	}
	v.exitElement()
}

func (v *visitor) visitModule(node *sitter.Node) {
	vis := visibilityOf(node, v.src)
	if !v.gate(vis) {
		return
	}
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	element := v.emit(node, model.KindModule, name, vis, nil)
	base := uint32(1)
	element.Complexity = &base

	body := node.ChildByFieldName("body")
	if body == nil {
		// `mod name;` declares an out-of-line module resolved through its
		// own file; record the reference and move on. trackRef keeps it only
		// when the declaration sits inside another element, so a top-level
		// `mod name;` records no reference.
		v.trackRef(model.RefModuleReference, name, node)
		return
	}

	v.builder.EnterModule(name)
	v.enterElement(element.ID)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		v.visitNode(body.NamedChild(i))
	}
	v.exitElement()
	v.builder.ExitModule()
}

func (v *visitor) visitValueItem(node *sitter.Node, kind model.ElementKind) {
	vis := visibilityOf(node, v.src)
	if !v.gate(vis) {
		return
	}
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	metrics := complexity.ForStructural(node)
	element := v.emit(node, kind, name, vis, &metrics)

	// Constants and statics do not open a scope; attribute initializer
	// references to the item itself.
	v.elemStack = append(v.elemStack, element.ID)
	v.walkType(node.ChildByFieldName("type"))
	v.walkBody(node.ChildByFieldName("value"))
	v.elemStack = v.elemStack[:len(v.elemStack)-1]
}

func (v *visitor) visitTypeAlias(node *sitter.Node) {
	vis := visibilityOf(node, v.src)
	if !v.gate(vis) {
		return
	}
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	metrics := complexity.ForStructural(node)
	element := v.emit(node, model.KindTypeAlias, name, vis, &metrics)
	element.GenericParams = genericParams(node, v.src)

	v.elemStack = append(v.elemStack, element.ID)
	v.walkType(node.ChildByFieldName("type"))
	v.elemStack = v.elemStack[:len(v.elemStack)-1]
}

func (v *visitor) visitMacro(node *sitter.Node) {
	name := fieldText(node, "name", v.src)
	if name == "" {
		return
	}

	// macro_rules! has no visibility modifier; #[macro_export] makes it
	// part of the public surface.
	docs, attrs := v.leadingTrivia(node)
	vis := model.Private()
	for _, attr := range attrs {
		if strings.Contains(attr, "macro_export") {
			vis = model.Public()
			break
		}
	}
	if !v.gate(vis) {
		return
	}

	metrics := complexity.ForStructural(node)
	v.emitWithTrivia(node, model.KindMacro, name, vis, &metrics, docs, attrs)
}

// emit creates an element for a node, collecting its leading trivia.
func (v *visitor) emit(node *sitter.Node, kind model.ElementKind, name string, vis model.Visibility, metrics *complexity.Metrics) *model.CodeElement {
	docs, attrs := v.leadingTrivia(node)
	return v.emitWithTrivia(node, kind, name, vis, metrics, docs, attrs)
}

func (v *visitor) emitWithTrivia(node *sitter.Node, kind model.ElementKind, name string, vis model.Visibility, metrics *complexity.Metrics, docs, attrs []string) *model.CodeElement {
	id := v.builder.GenerateID(kind, name)
	element := &model.CodeElement{
		ID:             id,
		Kind:           kind,
		Name:           name,
		Visibility:     vis,
		DocComments:    docs,
		InlineComments: v.inlineComments(node),
		Attributes:     attrs,
		Location:       v.location(node),
		Hierarchy:      v.builder.BuildHierarchy(name),
	}
	if metrics != nil {
		score := metrics.OverallScore()
		element.Complexity = &score
		element.ComplexityMetrics = metrics
	}
	v.elements = append(v.elements, element)
	return element
}

func (v *visitor) enterElement(id string) {
	v.builder.EnterScope(id)
	v.elemStack = append(v.elemStack, id)
}

func (v *visitor) exitElement() {
	v.builder.ExitScope()
	if len(v.elemStack) > 0 {
		v.elemStack = v.elemStack[:len(v.elemStack)-1]
	}
}

// trackRef records a raw reference attributed to the innermost element.
// References outside any element are dropped.
func (v *visitor) trackRef(refType model.ReferenceType, text string, node *sitter.Node) {
	if len(v.elemStack) == 0 || text == "" {
		return
	}
	v.refs = append(v.refs, model.Reference{
		FromElementID: v.elemStack[len(v.elemStack)-1],
		Type:          refType,
		Text:          text,
		Location:      v.location(node),
		Context: model.ReferenceContext{
			Scope: strings.Join(v.elemStack, "::"),
		},
	})
}

// walkBody traverses expression and statement territory, recording references
// and dispatching back to visitNode for nested declarative items.
func (v *visitor) walkBody(node *sitter.Node) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_item", "struct_item", "enum_item", "trait_item",
		"impl_item", "mod_item", "const_item", "static_item", "type_item",
		"macro_definition", "union_item":
		v.visitNode(node)
		return

	case "use_declaration":
		v.collectImport(node)
		return

	case "call_expression":
		v.recordCall(node)
		return

	case "macro_invocation":
		v.trackRef(model.RefMacroInvocation, fieldText(node, "macro", v.src), node)
		return

	case "identifier":
		v.trackRef(model.RefVariableAccess, node.Content(v.src), node)
		return

	case "scoped_identifier":
		v.recordModulePrefix(node)
		return

	case "field_expression":
		// `a.b` reads a; the field name is not a reference of its own.
		v.walkBody(node.ChildByFieldName("value"))
		return

	case "let_declaration":
		v.walkType(node.ChildByFieldName("type"))
		v.walkBody(node.ChildByFieldName("value"))
		return

	// Pattern positions bind names rather than read them; walk only the
	// expression parts.
	case "match_arm":
		v.walkBody(node.ChildByFieldName("value"))
		return

	case "for_expression":
		v.walkBody(node.ChildByFieldName("value"))
		v.walkBody(node.ChildByFieldName("body"))
		return

	case "closure_expression":
		v.walkBody(node.ChildByFieldName("body"))
		return

	case "type_identifier", "scoped_type_identifier", "generic_type",
		"reference_type", "pointer_type", "array_type", "tuple_type",
		"function_type", "dynamic_type", "abstract_type":
		v.walkType(node)
		return

	case "line_comment", "block_comment":
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		v.walkBody(node.NamedChild(i))
	}
}

// recordCall classifies a call expression. Single-segment paths and
// `a::b(..)` paths are function calls; `x.m(..)` keeps the receiver in the
// reference text when the receiver is a plain identifier, which is what the
// graph builder later reads the call type from.
func (v *visitor) recordCall(node *sitter.Node) {
	fn := node.ChildByFieldName("function")
	// Turbofish: foo::<T>(..) wraps the callee in a generic_function node.
	if fn != nil && fn.Type() == "generic_function" {
		fn = fn.ChildByFieldName("function")
	}

	if fn != nil {
		switch fn.Type() {
		case "identifier":
			v.trackRef(model.RefFunctionCall, fn.Content(v.src), node)
		case "scoped_identifier":
			v.trackRef(model.RefFunctionCall, fn.Content(v.src), node)
		case "field_expression":
			receiver := fn.ChildByFieldName("value")
			method := fieldText(fn, "field", v.src)
			text := method
			if receiver != nil && receiver.Type() == "identifier" {
				text = receiver.Content(v.src) + "." + method
			}
			v.trackRef(model.RefFunctionCall, text, node)
			v.walkBody(receiver)
		default:
			v.walkBody(fn)
		}
	}
	v.walkBody(node.ChildByFieldName("arguments"))
}

// recordModulePrefix emits a ModuleReference for crate-anchored paths. Other
// multi-segment value paths (enum variants, associated items) are left to the
// call and type walkers.
func (v *visitor) recordModulePrefix(scoped *sitter.Node) {
	text := scoped.Content(v.src)
	if !strings.HasPrefix(text, "crate::") && !strings.HasPrefix(text, "super::") && !strings.HasPrefix(text, "self::") {
		return
	}
	if idx := strings.LastIndex(text, "::"); idx > 0 {
		v.trackRef(model.RefModuleReference, text[:idx], scoped)
	}
}

// walkType records type usages inside a type position.
func (v *visitor) walkType(node *sitter.Node) {
	if node == nil {
		return
	}
	switch node.Type() {
	case "type_identifier":
		v.trackRef(model.RefTypeUsage, node.Content(v.src), node)
	case "scoped_type_identifier":
		v.trackRef(model.RefTypeUsage, node.Content(v.src), node)
	case "generic_type":
		v.walkType(node.ChildByFieldName("type"))
		if args := node.ChildByFieldName("type_arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				v.walkType(args.NamedChild(i))
			}
		}
	case "primitive_type":
		// Builtins never resolve to project elements; skip.
	default:
		for i := 0; i < int(node.NamedChildCount()); i++ {
			v.walkType(node.NamedChild(i))
		}
	}
}

func (v *visitor) walkParameterTypes(params *sitter.Node) {
	if params == nil {
		return
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		if param.Type() == "parameter" {
			v.walkType(param.ChildByFieldName("type"))
		}
	}
}

func (v *visitor) walkFieldTypes(body *sitter.Node) {
	if body == nil {
		return
	}
	switch body.Type() {
	case "field_declaration_list":
		for i := 0; i < int(body.NamedChildCount()); i++ {
			field := body.NamedChild(i)
			if field.Type() == "field_declaration" {
				v.walkType(field.ChildByFieldName("type"))
			}
		}
	case "ordered_field_declaration_list":
		for i := 0; i < int(body.NamedChildCount()); i++ {
			v.walkType(body.NamedChild(i))
		}
	}
}

// collectImport parses one use declaration into ImportInfo records.
func (v *visitor) collectImport(node *sitter.Node) {
	arg := node.ChildByFieldName("argument")
	if arg == nil {
		return
	}
	for _, imp := range parseUseTree(arg, v.src, "") {
		v.imports = append(v.imports, imp)
		v.namespace.AddUse(imp)
	}
}

// parseUseTree flattens a use tree into one ImportInfo per imported leaf.
// prefix is the already-consumed path for nested lists.
func parseUseTree(node *sitter.Node, src []byte, prefix string) []model.ImportInfo {
	switch node.Type() {
	case "identifier", "scoped_identifier", "crate", "super", "self":
		full := joinUsePath(prefix, node.Content(src))
		path, leaf := splitUsePath(full)
		return []model.ImportInfo{{ModulePath: path, ImportedItems: leafItems(leaf)}}

	case "use_as_clause":
		inner := node.ChildByFieldName("path")
		alias := fieldText(node, "alias", src)
		full := joinUsePath(prefix, nodeText(inner, src))
		path, leaf := splitUsePath(full)
		return []model.ImportInfo{{ModulePath: path, ImportedItems: leafItems(leaf), Alias: alias}}

	case "use_wildcard":
		base := prefix
		for i := 0; i < int(node.NamedChildCount()); i++ {
			base = joinUsePath(base, node.NamedChild(i).Content(src))
		}
		return []model.ImportInfo{{ModulePath: base, IsGlob: true}}

	case "scoped_use_list":
		base := joinUsePath(prefix, fieldText(node, "path", src))
		list := node.ChildByFieldName("list")
		if list == nil {
			return nil
		}
		var out []model.ImportInfo
		for i := 0; i < int(list.NamedChildCount()); i++ {
			out = append(out, parseUseTree(list.NamedChild(i), src, base)...)
		}
		return out

	case "use_list":
		var out []model.ImportInfo
		for i := 0; i < int(node.NamedChildCount()); i++ {
			out = append(out, parseUseTree(node.NamedChild(i), src, prefix)...)
		}
		return out
	}
	return nil
}

func joinUsePath(prefix, rest string) string {
	if prefix == "" {
		return rest
	}
	if rest == "" {
		return prefix
	}
	return prefix + "::" + rest
}

// splitUsePath splits a full use path into its module path and leaf name.
func splitUsePath(full string) (path, leaf string) {
	if idx := strings.LastIndex(full, "::"); idx >= 0 {
		return full[:idx], full[idx+2:]
	}
	return full, ""
}

// leafItems wraps the leaf in a one-element list, mapping `self` imports
// (use a::b::{self}) to no leaf at all.
func leafItems(leaf string) []string {
	if leaf == "" || leaf == "self" {
		return nil
	}
	return []string{leaf}
}

// leadingTrivia collects doc comments and attributes from the siblings
// immediately preceding an item. A plain comment terminates the scan; it is
// not part of the item's documentation.
func (v *visitor) leadingTrivia(node *sitter.Node) (docs, attrs []string) {
	for sib := node.PrevNamedSibling(); sib != nil; sib = sib.PrevNamedSibling() {
		switch sib.Type() {
		case "attribute_item":
			attrs = append([]string{sib.Content(v.src)}, attrs...)
		case "line_comment":
			text := sib.Content(v.src)
			cleaned, isDoc := cleanDocLine(text)
			if !isDoc {
				return docs, attrs
			}
			if cleaned != "" {
				docs = append([]string{cleaned}, docs...)
			}
		case "block_comment":
			text := sib.Content(v.src)
			if !strings.HasPrefix(text, "/**") {
				return docs, attrs
			}
			docs = append(blockDocLines(text), docs...)
		default:
			return docs, attrs
		}
	}
	if !v.opts.IncludeDocs {
		docs = nil
	}
	return docs, attrs
}

// cleanDocLine strips the doc-comment marker and one leading space. The
// second return is false for plain comments.
func cleanDocLine(text string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(text, "///"):
		rest = strings.TrimPrefix(text, "///")
	case strings.HasPrefix(text, "//!"):
		rest = strings.TrimPrefix(text, "//!")
	default:
		return "", false
	}
	rest = strings.TrimPrefix(rest, " ")
	if strings.TrimSpace(rest) == "" {
		return "", true
	}
	return rest, true
}

// blockDocLines splits a /** .. */ doc comment into cleaned lines.
func blockDocLines(text string) []string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// inlineComments collects plain // comments inside the element's span.
func (v *visitor) inlineComments(node *sitter.Node) []string {
	var out []string
	var collect func(n *sitter.Node)
	collect = func(n *sitter.Node) {
		if n.Type() == "line_comment" {
			text := n.Content(v.src)
			if !strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "//!") {
				cleaned := strings.TrimPrefix(strings.TrimPrefix(text, "//"), " ")
				if strings.TrimSpace(cleaned) != "" {
					out = append(out, cleaned)
				}
			}
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			collect(n.NamedChild(i))
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		collect(body)
	}
	return out
}

func (v *visitor) location(node *sitter.Node) model.Location {
	return model.Location{
		LineStart: node.StartPoint().Row + 1,
		LineEnd:   node.EndPoint().Row + 1,
		CharStart: node.StartByte(),
		CharEnd:   node.EndByte(),
		FilePath:  v.relPath,
	}
}

// fieldText returns the source text of a named field child, or "".
func fieldText(node *sitter.Node, field string, src []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(src)
}

func nodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(src)
}

// functionSignature slices the declarative header: everything from the item
// start up to the body, with a trailing semicolon or whitespace trimmed.
func functionSignature(node *sitter.Node, src []byte) string {
	end := node.EndByte()
	if body := node.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	sig := strings.TrimSpace(string(src[node.StartByte():end]))
	return strings.TrimSuffix(sig, ";")
}

// genericParams returns the source form of each declared generic parameter.
func genericParams(node *sitter.Node, src []byte) []string {
	params := node.ChildByFieldName("type_parameters")
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		out = append(out, params.NamedChild(i).Content(src))
	}
	return out
}

// genericParamNames extracts the simple names declared by generic parameters,
// skipping lifetimes.
func genericParamNames(node *sitter.Node, src []byte) []string {
	params := node.ChildByFieldName("type_parameters")
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		switch child.Type() {
		case "type_identifier":
			out = append(out, child.Content(src))
		case "constrained_type_parameter", "optional_type_parameter":
			if left := child.ChildByFieldName("left"); left != nil && left.Type() == "type_identifier" {
				out = append(out, left.Content(src))
			} else if name := child.ChildByFieldName("name"); name != nil {
				out = append(out, name.Content(src))
			}
		case "const_parameter":
			if name := child.ChildByFieldName("name"); name != nil {
				out = append(out, name.Content(src))
			}
		}
	}
	return out
}

// visibilityOf maps a visibility_modifier child to the model variant.
func visibilityOf(node *sitter.Node, src []byte) model.Visibility {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "visibility_modifier" {
			text := child.Content(src)
			if text == "pub" {
				return model.Public()
			}
			return model.Restricted(text)
		}
	}
	return model.Private()
}

// baseTypeName strips references, generics and paths down to the simple type
// name: `&mut Foo<T>` -> Foo, `a::b::Foo` -> Foo.
func baseTypeName(typeText string) string {
	s := strings.TrimSpace(typeText)
	s = strings.TrimPrefix(s, "&")
	s = strings.TrimSpace(strings.TrimPrefix(s, "mut "))
	if idx := strings.Index(s, "<"); idx > 0 {
		s = s[:idx]
	}
	if idx := strings.LastIndex(s, "::"); idx >= 0 {
		s = s[idx+2:]
	}
	return s
}
