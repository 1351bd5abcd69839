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

package syslsp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/ast/astbuild"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

func stubParse(path, _ string) (ast.File, error) {
	return astbuild.File(path, ast.DialectKerML).
		Add(astbuild.Classifier("Thing", "class", astbuild.Ref("Thing").Span, ast.Relationships{})).
		Build(), nil
}

func TestOpenAddsFileToWorkspace(t *testing.T) {
	ws := workspace.New()
	fm := newFileManager(ws, stubParse)
	u := filePathToURI("/w/a.kerml")

	require.NoError(t, fm.open(context.Background(), u, 1, "class Thing;"))

	path, ok := fm.path(u)
	require.True(t, ok)
	assert.Equal(t, "/w/a.kerml", path)

	f, ok := ws.File("/w/a.kerml")
	require.True(t, ok)
	assert.Equal(t, 0, f.Version)
	assert.False(t, f.IsPopulated)
}

func TestUpdateBumpsWorkspaceVersion(t *testing.T) {
	ws := workspace.New()
	fm := newFileManager(ws, stubParse)
	u := filePathToURI("/w/a.kerml")

	require.NoError(t, fm.open(context.Background(), u, 1, "class Thing;"))
	require.NoError(t, fm.update(context.Background(), u, 2, "class Thing; class More;"))

	f, ok := ws.File("/w/a.kerml")
	require.True(t, ok)
	assert.Equal(t, 1, f.Version)
}

func TestCloseForgetsTheDocButKeepsTheFile(t *testing.T) {
	ws := workspace.New()
	fm := newFileManager(ws, stubParse)
	u := filePathToURI("/w/a.kerml")

	require.NoError(t, fm.open(context.Background(), u, 1, "class Thing;"))
	fm.close(context.Background(), u)

	_, ok := fm.path(u)
	assert.False(t, ok)

	// The project still contains the file; only the editor tab is gone.
	_, ok = ws.File("/w/a.kerml")
	assert.True(t, ok)
}

func TestOpenSurfacesParseError(t *testing.T) {
	parseErr := errors.New("unexpected token")
	fm := newFileManager(workspace.New(), func(string, string) (ast.File, error) {
		return ast.File{}, parseErr
	})
	u := filePathToURI("/w/bad.kerml")

	err := fm.open(context.Background(), u, 1, "cl@ss")
	assert.ErrorIs(t, err, parseErr)

	// The doc is still tracked so a later fixed version can update it.
	_, ok := fm.path(u)
	assert.True(t, ok)
}
