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

package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/ast/astbuild"
	"github.com/kerml-tools/syster/internal/semantic/graph"
	"github.com/kerml-tools/syster/internal/semantic/refindex"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
)

func TestSysMLPopulateRecordsSymbolsAndRelationships(t *testing.T) {
	tab := symtab.New()
	g := graph.New()
	ri := refindex.New()

	vehicle := astbuild.Definition("Vehicle", "part", astbuild.Ref("Vehicle").Span, ast.Relationships{})
	car := astbuild.Definition("Car", "part", astbuild.Ref("Car").Span, ast.Relationships{
		Specializes: []ast.Ref{astbuild.Ref("Vehicle")},
	})
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(vehicle).Add(car).Build()

	a := NewSysML(tab, g, ri)
	diags := a.Populate(file)
	assert.Empty(t, diags)

	_, ok := tab.LookupQualified("Car")
	require.True(t, ok)

	targets, ok := g.GetTargets(graph.Specialization, "Car")
	require.True(t, ok)
	assert.Equal(t, []string{"Vehicle"}, targets)

	assert.Contains(t, ri.GetSources("Vehicle"), "Car")
}

func TestSysMLPopulateReportsDuplicates(t *testing.T) {
	tab := symtab.New()
	g := graph.New()
	ri := refindex.New()

	a1 := astbuild.Definition("Car", "part", astbuild.Ref("Car").Span, ast.Relationships{})
	a2 := astbuild.Definition("Car", "part", astbuild.Ref("Car").Span, ast.Relationships{})
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(a1).Add(a2).Build()

	a := NewSysML(tab, g, ri)
	diags := a.Populate(file)
	require.Len(t, diags, 1)
}

func TestSysMLPopulateNestedPackageQualifiesNames(t *testing.T) {
	tab := symtab.New()
	g := graph.New()
	ri := refindex.New()

	inner := astbuild.Definition("Car", "part", astbuild.Ref("Car").Span, ast.Relationships{})
	pkg := astbuild.Package("vehicles", astbuild.Ref("vehicles").Span, inner)
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(pkg).Build()

	a := NewSysML(tab, g, ri)
	diags := a.Populate(file)
	assert.Empty(t, diags)

	_, ok := tab.LookupQualified("vehicles::Car")
	assert.True(t, ok)
}

func TestSysMLPopulateTypingIsOneToOne(t *testing.T) {
	tab := symtab.New()
	g := graph.New()
	ri := refindex.New()

	ref := astbuild.Ref("Engine")
	usage := astbuild.Usage("engine1", "part", astbuild.Ref("engine1").Span, ast.Relationships{TypedBy: &ref})
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(usage).Build()

	a := NewSysML(tab, g, ri)
	a.Populate(file)

	targets, ok := g.GetTargets(graph.Typing, "engine1")
	require.True(t, ok)
	assert.Equal(t, []string{"Engine"}, targets)
}
