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

package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/ast/astbuild"
	"github.com/kerml-tools/syster/internal/semantic/graph"
)

func baseFile() ast.File {
	base := astbuild.Classifier("Thing", "class", astbuild.Ref("Thing").Span, ast.Relationships{})
	return astbuild.File("base.kerml", ast.DialectKerML).Add(base).Build()
}

func derivedFile() ast.File {
	derived := astbuild.Classifier("Widget", "class", astbuild.Ref("Widget").Span, ast.Relationships{
		Specializes: []ast.Ref{astbuild.Ref("Thing")},
	})
	imp := astbuild.Import("Thing", false, astbuild.Ref("Thing").Span)
	return astbuild.File("derived.kerml", ast.DialectKerML).Add(imp).Add(derived).Build()
}

func TestPopulateAllResolvesCrossFileSpecialization(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())
	ws.AddFile("derived.kerml", derivedFile())

	diags, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.True(t, ws.RelationshipGraph().HasTransitivePath(graph.Specialization, "Widget", "Thing"))
}

func TestPopulateAllRecordsFileDependencyFromImport(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())
	ws.AddFile("derived.kerml", derivedFile())

	_, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)

	assert.Contains(t, ws.GetFileDependents("base.kerml"), "derived.kerml")
}

func TestUpdateFileInvalidatesPriorPopulation(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())
	_, err := ws.PopulateFile(context.Background(), "base.kerml")
	require.NoError(t, err)

	f, ok := ws.File("base.kerml")
	require.True(t, ok)
	assert.True(t, f.IsPopulated)

	ws.UpdateFile("base.kerml", baseFile())

	f, ok = ws.File("base.kerml")
	require.True(t, ok)
	assert.False(t, f.IsPopulated)
	assert.Equal(t, 1, f.Version)
}

func TestUpdateFileWithAutoInvalidationCascadesToDependents(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())
	ws.AddFile("derived.kerml", derivedFile())
	_, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)

	ws.UpdateFile("base.kerml", baseFile())

	derived, ok := ws.File("derived.kerml")
	require.True(t, ok)
	assert.False(t, derived.IsPopulated, "auto-invalidation should mark dependents unpopulated too")
}

func TestUpdateFileWithoutAutoInvalidationOnlyMarksItself(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())
	ws.AddFile("derived.kerml", derivedFile())
	_, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)

	ws.EnableAutoInvalidation(false)
	ws.UpdateFile("base.kerml", baseFile())

	derived, ok := ws.File("derived.kerml")
	require.True(t, ok)
	assert.True(t, derived.IsPopulated)
}

func TestPopulateAffectedRepopulatesTransitiveDependents(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())
	ws.AddFile("derived.kerml", derivedFile())
	_, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)

	ws.UpdateFile("base.kerml", baseFile())

	_, err = ws.PopulateAffected(context.Background(), "base.kerml")
	require.NoError(t, err)

	derived, ok := ws.File("derived.kerml")
	require.True(t, ok)
	assert.True(t, derived.IsPopulated)
	assert.True(t, ws.RelationshipGraph().HasTransitivePath(graph.Specialization, "Widget", "Thing"))
}

func TestRemoveFileDropsItsSymbolsAndEdges(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())
	ws.AddFile("derived.kerml", derivedFile())
	_, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)

	ws.RemoveFile("base.kerml")

	_, ok := ws.SymbolTable().LookupQualified("Thing")
	assert.False(t, ok)
	_, ok = ws.File("base.kerml")
	assert.False(t, ok)
}

func TestPopulateFileOnUnknownPathReturnsError(t *testing.T) {
	ws := New()
	_, err := ws.PopulateFile(context.Background(), "nope.kerml")
	require.Error(t, err)
	assert.ErrorAs(t, err, &ErrUnknownFile{})
}

func TestPopulateAllIsIdempotentOnAlreadyPopulatedFiles(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())

	diags1, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diags1)

	diags2, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, diags2)

	_, ok := ws.SymbolTable().LookupQualified("Thing")
	assert.True(t, ok)
}

func TestFilePathsIsSortedAndComplete(t *testing.T) {
	ws := New()
	ws.AddFile("b.kerml", baseFile())
	ws.AddFile("a.kerml", baseFile())

	assert.Equal(t, []string{"a.kerml", "b.kerml"}, ws.FilePaths())
}

func TestPopulateAllRespectsCancelledContext(t *testing.T) {
	ws := New()
	ws.AddFile("base.kerml", baseFile())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ws.PopulateAll(ctx)
	assert.Error(t, err)
}
