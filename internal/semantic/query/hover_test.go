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

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/ast/astbuild"
	"github.com/kerml-tools/syster/internal/semantic/source"
)

func TestHoverOnDeclarationShowsKindAndRelationships(t *testing.T) {
	vehicle := astbuild.Definition("Vehicle", "part", astbuild.Ref("Vehicle").Span, ast.Relationships{})
	carSpan := source.NewSpan(source.NewPosition(1, 0), source.NewPosition(1, 30))
	car := astbuild.Definition("Car", "part", carSpan, ast.Relationships{
		Specializes: []ast.Ref{astbuild.Ref("Vehicle")},
	})
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(vehicle).Add(car).Build()

	ws, diags := populate(t, "a.sysml", ast.DialectSysML, file)
	require.Empty(t, diags)

	result, ok := Hover(ws, "a.sysml", carSpan.Start)
	require.True(t, ok)
	assert.Contains(t, result.Contents, "Car")
	assert.Contains(t, result.Contents, "part")
	assert.Contains(t, result.Contents, "specializes")
	assert.Contains(t, result.Contents, "Vehicle")
}

func TestHoverOutsideAnySpanReturnsNoResult(t *testing.T) {
	car := astbuild.Definition("Car", "part", astbuild.Ref("Car").Span, ast.Relationships{})
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(car).Build()
	ws, _ := populate(t, "a.sysml", ast.DialectSysML, file)

	_, ok := Hover(ws, "a.sysml", source.NewPosition(999, 0))
	assert.False(t, ok)
}
