// Copyright 2024-2026 The Syster Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/symtab"
)

// An import declared in an enclosing scope is visible from every scope
// nested inside it.
func TestResolveImportFromEnclosingScope(t *testing.T) {
	tab := symtab.New()
	pkg := tab.EnterScope()
	tab.Insert(def("Vehicle", "pkg::Vehicle", pkg))
	require.NoError(t, tab.ExitScope())

	tab.EnterScope()
	tab.AddImport("a.sysml", symtab.NewImport("pkg::*", false))
	nested := tab.EnterScope()

	r := New(tab)
	res, ok := r.Resolve("a.sysml", nested, "Vehicle")
	require.True(t, ok)
	assert.Equal(t, ImportNamespace, res.Strategy)
	assert.Equal(t, "pkg::Vehicle", res.Symbol.QualifiedName)
}

// When two imports could both supply a name, the one declared in the
// nearer scope wins, the same way a nearer declaration shadows a farther
// one.
func TestResolveNearerScopeImportShadowsOuter(t *testing.T) {
	tab := symtab.New()
	p1 := tab.EnterScope()
	tab.Insert(def("Vehicle", "pkg1::Vehicle", p1))
	require.NoError(t, tab.ExitScope())
	p2 := tab.EnterScope()
	tab.Insert(def("Vehicle", "pkg2::Vehicle", p2))
	require.NoError(t, tab.ExitScope())

	tab.AddImport("a.sysml", symtab.NewImport("pkg2::*", false))
	inner := tab.EnterScope()
	tab.AddImport("a.sysml", symtab.NewImport("pkg1::*", false))

	r := New(tab)
	res, ok := r.Resolve("a.sysml", inner, "Vehicle")
	require.True(t, ok)
	assert.Equal(t, "pkg1::Vehicle", res.Symbol.QualifiedName)

	res, ok = r.Resolve("a.sysml", symtab.RootScope, "Vehicle")
	require.True(t, ok)
	assert.Equal(t, "pkg2::Vehicle", res.Symbol.QualifiedName)
}

// An import declared in a sibling scope of the same file is still reachable
// as a last-resort file-level walk, for callers resolving from a vantage
// the declaring scope doesn't enclose.
func TestResolveImportFromSiblingScopeViaFileFallback(t *testing.T) {
	tab := symtab.New()
	pkg := tab.EnterScope()
	tab.Insert(def("Vehicle", "pkg::Vehicle", pkg))
	require.NoError(t, tab.ExitScope())

	tab.EnterScope()
	tab.AddImport("a.sysml", symtab.NewImport("pkg::*", false))
	require.NoError(t, tab.ExitScope())
	sibling := tab.EnterScope()

	r := New(tab)
	res, ok := r.Resolve("a.sysml", sibling, "Vehicle")
	require.True(t, ok)
	assert.Equal(t, ImportNamespace, res.Strategy)
	assert.Equal(t, "pkg::Vehicle", res.Symbol.QualifiedName)
}

// A scope-chain declaration still beats any import: imports are strategy 3,
// the scope walk is strategy 2.
func TestResolveDeclarationShadowsImport(t *testing.T) {
	tab := symtab.New()
	pkg := tab.EnterScope()
	tab.Insert(def("Vehicle", "pkg::Vehicle", pkg))
	require.NoError(t, tab.ExitScope())

	local := tab.EnterScope()
	tab.AddImport("a.sysml", symtab.NewImport("pkg::*", false))
	tab.Insert(def("Vehicle", "local::Vehicle", local))

	r := New(tab)
	res, ok := r.Resolve("a.sysml", local, "Vehicle")
	require.True(t, ok)
	assert.Equal(t, ScopeChain, res.Strategy)
	assert.Equal(t, "local::Vehicle", res.Symbol.QualifiedName)
}
