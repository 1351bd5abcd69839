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
)

func TestDiagramRestrictsNodesToRequestedFile(t *testing.T) {
	file := buildSpecializationChain()
	ws, diags := populate(t, "a.sysml", ast.DialectSysML, file)
	require.Empty(t, diags)

	full := Diagram(ws, DiagramRequest{})
	assert.Len(t, full.Nodes, 3)
	assert.NotEmpty(t, full.Edges)

	path := "a.sysml"
	scoped := Diagram(ws, DiagramRequest{File: &path})
	assert.Len(t, scoped.Nodes, 3)
}

func TestDiagramOnEmptyWorkspaceHasNoNodes(t *testing.T) {
	empty := astbuild.File("empty.sysml", ast.DialectSysML).Build()
	ws, _ := populate(t, "empty.sysml", ast.DialectSysML, empty)

	resp := Diagram(ws, DiagramRequest{})
	assert.Empty(t, resp.Nodes)
	assert.Empty(t, resp.Edges)
}
