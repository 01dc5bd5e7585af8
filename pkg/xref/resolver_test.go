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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/rustmap/pkg/model"
)

// element builds a registered test element.
func element(id string, kind model.ElementKind, name, modulePath, parentID string) *model.CodeElement {
	return &model.CodeElement{
		ID:   id,
		Kind: kind,
		Name: name,
		Hierarchy: model.ElementHierarchy{
			ModulePath:    modulePath,
			QualifiedName: modulePath + "::" + name,
			ParentID:      parentID,
			Namespace: model.ElementNamespace{
				Name:          name,
				CanonicalPath: modulePath + "::" + name,
			},
		},
	}
}

func ref(fromID, text string, refType model.ReferenceType, scope string) model.Reference {
	return model.Reference{
		FromElementID: fromID,
		Type:          refType,
		Text:          text,
		Context:       model.ReferenceContext{Scope: scope},
	}
}

func TestResolveBySimpleName(t *testing.T) {
	r := NewResolver()
	target := element("Function_helper_1", model.KindFunction, "helper", "crate", "")
	caller := element("Function_main_2", model.KindFunction, "main", "crate", "")
	r.Register(target)
	r.Register(caller)

	cr := r.Resolve(ref(caller.ID, "helper", model.RefFunctionCall, caller.ID), nil)
	require.True(t, cr.IsResolved)
	assert.Equal(t, target.ID, cr.ToElementID)
}

func TestResolveByCanonicalPath(t *testing.T) {
	r := NewResolver()
	target := element("Function_parse_1", model.KindFunction, "parse", "crate::parser", "")
	caller := element("Function_main_2", model.KindFunction, "main", "crate", "")
	r.Register(target)
	r.Register(caller)

	cr := r.Resolve(ref(caller.ID, "crate::parser::parse", model.RefFunctionCall, caller.ID), nil)
	require.True(t, cr.IsResolved)
	assert.Equal(t, target.ID, cr.ToElementID)
}

func TestResolveViaImportMap(t *testing.T) {
	r := NewResolver()
	target := element("Function_parse_1", model.KindFunction, "parse", "crate::parser", "")
	caller := element("Function_main_2", model.KindFunction, "main", "crate", "")
	r.Register(target)
	r.Register(caller)

	ns := model.NewNamespaceResolver("crate")
	ns.AddUse(model.ImportInfo{ModulePath: "crate::parser", ImportedItems: []string{"parse"}})

	// The reference spells only the leaf; the import map supplies the path.
	cr := r.Resolve(ref(caller.ID, "parse", model.RefFunctionCall, caller.ID), ns)
	require.True(t, cr.IsResolved)
	assert.Equal(t, target.ID, cr.ToElementID)
}

func TestResolveViaImportAlias(t *testing.T) {
	r := NewResolver()
	target := element("Function_parse_1", model.KindFunction, "parse", "crate::parser", "")
	caller := element("Function_main_2", model.KindFunction, "main", "crate", "")
	r.Register(target)
	r.Register(caller)

	ns := model.NewNamespaceResolver("crate")
	ns.AddUse(model.ImportInfo{ModulePath: "crate::parser", ImportedItems: []string{"parse"}, Alias: "p"})

	cr := r.Resolve(ref(caller.ID, "p", model.RefFunctionCall, caller.ID), ns)
	require.True(t, cr.IsResolved)
	assert.Equal(t, target.ID, cr.ToElementID)
}

func TestResolveViaGlobImport(t *testing.T) {
	r := NewResolver()
	target := element("Function_parse_1", model.KindFunction, "parse", "crate::parser", "")
	caller := element("Function_main_2", model.KindFunction, "main", "crate", "")
	r.Register(target)
	r.Register(caller)

	ns := model.NewNamespaceResolver("crate")
	ns.AddUse(model.ImportInfo{ModulePath: "crate::parser", IsGlob: true})

	cr := r.Resolve(ref(caller.ID, "parse", model.RefFunctionCall, caller.ID), ns)
	require.True(t, cr.IsResolved)
	assert.Equal(t, target.ID, cr.ToElementID)
}

func TestScopeChainInnermostFirst(t *testing.T) {
	r := NewResolver()
	module := element("Module_m_1", model.KindModule, "m", "crate", "")
	inner := element("Function_helper_2", model.KindFunction, "helper", "crate::m", module.ID)
	outer := element("Function_helper_3", model.KindFunction, "helper", "crate", "")
	caller := element("Function_caller_4", model.KindFunction, "caller", "crate::m", module.ID)
	r.Register(module)
	r.Register(inner)
	r.Register(outer)
	r.Register(caller)

	// From inside the module, the scoped registration wins over the
	// top-level one.
	scope := module.ID + "::" + caller.ID
	cr := r.Resolve(ref(caller.ID, "helper", model.RefFunctionCall, scope), nil)
	require.True(t, cr.IsResolved)
	assert.Equal(t, inner.ID, cr.ToElementID)
}

func TestAmbiguityPrefersSharedModulePrefix(t *testing.T) {
	r := NewResolver()
	near := element("Function_helper_5", model.KindFunction, "helper", "crate::a::b", "")
	far := element("Function_helper_2", model.KindFunction, "helper", "crate::z", "")
	caller := element("Function_caller_9", model.KindFunction, "caller", "crate::a::b", "")
	r.Register(far)
	r.Register(near)
	r.Register(caller)

	cr := r.Resolve(ref(caller.ID, "helper", model.RefFunctionCall, caller.ID), nil)
	require.True(t, cr.IsResolved)
	assert.Equal(t, near.ID, cr.ToElementID, "longest shared module prefix wins")
}

func TestAmbiguityTieBreaksToLowerOrdinal(t *testing.T) {
	r := NewResolver()
	second := element("Function_helper_7", model.KindFunction, "helper", "crate::x", "")
	first := element("Function_helper_3", model.KindFunction, "helper", "crate::y", "")
	caller := element("Function_caller_9", model.KindFunction, "caller", "crate", "")
	r.Register(second)
	r.Register(first)
	r.Register(caller)

	cr := r.Resolve(ref(caller.ID, "helper", model.RefFunctionCall, caller.ID), nil)
	require.True(t, cr.IsResolved)
	assert.Equal(t, first.ID, cr.ToElementID, "equal prefixes fall back to the lower ordinal")
}

func TestUnresolvedIsAValue(t *testing.T) {
	r := NewResolver()
	caller := element("Function_main_1", model.KindFunction, "main", "crate", "")
	r.Register(caller)

	cr := r.Resolve(ref(caller.ID, "println", model.RefMacroInvocation, caller.ID), nil)
	assert.False(t, cr.IsResolved)
	assert.Empty(t, cr.ToElementID)
	assert.Equal(t, "println", cr.Text)
}

func TestMethodTextFallsBackToMethodName(t *testing.T) {
	r := NewResolver()
	method := element("Function_run_1", model.KindFunction, "run", "crate", "")
	caller := element("Function_main_2", model.KindFunction, "main", "crate", "")
	r.Register(method)
	r.Register(caller)

	cr := r.Resolve(ref(caller.ID, "server.run", model.RefFunctionCall, caller.ID), nil)
	require.True(t, cr.IsResolved)
	assert.Equal(t, method.ID, cr.ToElementID)
}

func TestResolveByRegisteredAlias(t *testing.T) {
	r := NewResolver()
	target := element("Struct_Settings_1", model.KindStruct, "Settings", "crate::config", "")
	target.Hierarchy.Namespace.AddAlias("Config")
	caller := element("Function_main_2", model.KindFunction, "main", "crate", "")
	r.Register(target)
	r.Register(caller)

	cr := r.Resolve(ref(caller.ID, "Config", model.RefTypeUsage, caller.ID), nil)
	require.True(t, cr.IsResolved)
	assert.Equal(t, target.ID, cr.ToElementID)
}
