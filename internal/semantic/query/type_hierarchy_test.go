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

// Vehicle <- Car <- SportsCar, a three-level specialization chain.
func buildSpecializationChain() ast.File {
	vehicleSpan := source.NewSpan(source.NewPosition(0, 0), source.NewPosition(0, 20))
	vehicle := astbuild.Definition("Vehicle", "part", vehicleSpan, ast.Relationships{})

	carSpan := source.NewSpan(source.NewPosition(1, 0), source.NewPosition(1, 30))
	car := astbuild.Definition("Car", "part", carSpan, ast.Relationships{
		Specializes: []ast.Ref{astbuild.Ref("Vehicle")},
	})

	sportsCarSpan := source.NewSpan(source.NewPosition(2, 0), source.NewPosition(2, 30))
	sportsCar := astbuild.Definition("SportsCar", "part", sportsCarSpan, ast.Relationships{
		Specializes: []ast.Ref{astbuild.Ref("Car")},
	})

	return astbuild.File("a.sysml", ast.DialectSysML).Add(vehicle).Add(car).Add(sportsCar).Build()
}

func TestTypeHierarchyWalksSupertypesAndSubtypes(t *testing.T) {
	file := buildSpecializationChain()
	ws, diags := populate(t, "a.sysml", ast.DialectSysML, file)
	require.Empty(t, diags)

	item, ok := PrepareTypeHierarchy(ws, "a.sysml", source.NewPosition(1, 0))
	require.True(t, ok)
	assert.Equal(t, "Car", item.QualifiedName)

	supers := Supertypes(ws, item)
	if assert.Len(t, supers, 1) {
		assert.Equal(t, "Vehicle", supers[0].QualifiedName)
	}

	subs := Subtypes(ws, item)
	if assert.Len(t, subs, 1) {
		assert.Equal(t, "SportsCar", subs[0].QualifiedName)
	}
}

func TestTypeHierarchyOnLeafHasNoSubtypes(t *testing.T) {
	file := buildSpecializationChain()
	ws, _ := populate(t, "a.sysml", ast.DialectSysML, file)

	item, ok := PrepareTypeHierarchy(ws, "a.sysml", source.NewPosition(2, 0))
	require.True(t, ok)
	assert.Equal(t, "SportsCar", item.QualifiedName)
	assert.Empty(t, Subtypes(ws, item))
}
