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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/diag"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o600))
}

func TestLoadConfigFindsFileInRoot(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "recursiveImportLimit: 500\nseverity:\n  undefined_reference: error\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.RecursiveImportLimit)

	s, ok := cfg.severityOverride(diag.UndefinedReference)
	require.True(t, ok)
	assert.Equal(t, "error", s)
}

func TestLoadConfigWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "recursiveImportLimit: 7\n")
	nested := filepath.Join(root, "models", "vehicles")
	require.NoError(t, os.MkdirAll(nested, 0o700))

	cfg, err := LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RecursiveImportLimit)
}

func TestLoadConfigDefaultsWhenAbsent(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, ok := cfg.severityOverride(diag.Cycle)
	assert.False(t, ok)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "severity: [not, a, map\n")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
