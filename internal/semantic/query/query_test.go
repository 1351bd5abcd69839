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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// populate adds a single file to a fresh workspace and populates it,
// failing the test on any population error (not on diagnostics, which are
// returned to the caller to assert on if it cares).
func populate(t *testing.T, path string, dialect ast.Dialect, file ast.File) (*workspace.Workspace, []string) {
	t.Helper()
	ws := workspace.New()
	ws.AddFile(path, file)
	diags, err := ws.PopulateFile(context.Background(), path)
	require.NoError(t, err)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return ws, msgs
}

// populateAll adds every file in files to a fresh workspace and populates
// it, failing the test on any population error.
func populateAll(t *testing.T, files map[string]ast.File) *workspace.Workspace {
	t.Helper()
	ws := workspace.New()
	for path, file := range files {
		ws.AddFile(path, file)
	}
	_, err := ws.PopulateAll(context.Background())
	require.NoError(t, err)
	return ws
}
