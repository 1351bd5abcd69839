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

func TestDefinitionJumpsFromUsageToDeclaration(t *testing.T) {
	vehicleSpan := source.NewSpan(source.NewPosition(0, 0), source.NewPosition(0, 20))
	vehicle := astbuild.Definition("Vehicle", "part", vehicleSpan, ast.Relationships{})

	refSpan := source.NewSpan(source.NewPosition(3, 10), source.NewPosition(3, 17))
	car := astbuild.Definition("Car", "part", source.NewSpan(source.NewPosition(3, 0), source.NewPosition(3, 30)), ast.Relationships{
		Specializes: []ast.Ref{astbuild.RefAt("Vehicle", refSpan)},
	})
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(vehicle).Add(car).Build()

	ws, diags := populate(t, "a.sysml", ast.DialectSysML, file)
	require.Empty(t, diags)

	loc, ok := Definition(ws, "a.sysml", source.NewPosition(3, 12))
	require.True(t, ok)
	assert.Equal(t, "a.sysml", loc.File)
	assert.Equal(t, vehicleSpan, loc.Span)
}

func TestDefinitionOnUnresolvedNameReturnsNoResult(t *testing.T) {
	refSpan := source.NewSpan(source.NewPosition(0, 10), source.NewPosition(0, 17))
	car := astbuild.Definition("Car", "part", source.NewSpan(source.NewPosition(0, 0), source.NewPosition(0, 30)), ast.Relationships{
		Specializes: []ast.Ref{astbuild.RefAt("Nonexistent", refSpan)},
	})
	file := astbuild.File("a.sysml", ast.DialectSysML).Add(car).Build()
	ws, _ := populate(t, "a.sysml", ast.DialectSysML, file)

	_, ok := Definition(ws, "a.sysml", source.NewPosition(0, 12))
	assert.False(t, ok)
}
