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

func TestCallHierarchyWalksPerformEdges(t *testing.T) {
	startSpan := source.NewSpan(source.NewPosition(0, 0), source.NewPosition(0, 20))
	start := astbuild.Definition("Start", "action", startSpan, ast.Relationships{})

	driveSpan := source.NewSpan(source.NewPosition(1, 0), source.NewPosition(1, 30))
	drive := astbuild.Definition("Drive", "action", driveSpan, ast.Relationships{
		Performs: []ast.Ref{astbuild.Ref("Start")},
	})

	file := astbuild.File("a.sysml", ast.DialectSysML).Add(start).Add(drive).Build()
	ws, diags := populate(t, "a.sysml", ast.DialectSysML, file)
	require.Empty(t, diags)

	item, ok := PrepareCallHierarchy(ws, "a.sysml", source.NewPosition(1, 0))
	require.True(t, ok)
	assert.Equal(t, "Drive", item.QualifiedName)

	outgoing := OutgoingCalls(ws, item)
	if assert.Len(t, outgoing, 1) {
		assert.Equal(t, "Start", outgoing[0].QualifiedName)
	}

	startItem, ok := PrepareCallHierarchy(ws, "a.sysml", source.NewPosition(0, 0))
	require.True(t, ok)
	incoming := IncomingCalls(ws, startItem)
	if assert.Len(t, incoming, 1) {
		assert.Equal(t, "Drive", incoming[0].QualifiedName)
	}
}
