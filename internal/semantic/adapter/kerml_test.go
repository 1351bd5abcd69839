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

func TestKerMLPopulateClassifierHierarchy(t *testing.T) {
	tab := symtab.New()
	g := graph.New()
	ri := refindex.New()

	base := astbuild.Classifier("Thing", "class", astbuild.Ref("Thing").Span, ast.Relationships{})
	derived := astbuild.Classifier("Widget", "class", astbuild.Ref("Widget").Span, ast.Relationships{
		Specializes: []ast.Ref{astbuild.Ref("Thing")},
	})
	file := astbuild.File("a.kerml", ast.DialectKerML).Add(base).Add(derived).Build()

	a := NewKerML(tab, g, ri)
	diags := a.Populate(file)
	assert.Empty(t, diags)

	assert.True(t, g.HasTransitivePath(graph.Specialization, "Widget", "Thing"))
}

func TestKerMLPopulateFeatureInsideClassifierIsQualified(t *testing.T) {
	tab := symtab.New()
	g := graph.New()
	ri := refindex.New()

	feat := astbuild.Feature("mass", astbuild.Ref("mass").Span, ast.Relationships{})
	cl := astbuild.Classifier("Widget", "class", astbuild.Ref("Widget").Span, ast.Relationships{}, feat)
	file := astbuild.File("a.kerml", ast.DialectKerML).Add(cl).Build()

	a := NewKerML(tab, g, ri)
	a.Populate(file)

	_, ok := tab.LookupQualified("Widget::mass")
	require.True(t, ok)
}
