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

// This file defines the on-disk configuration for the server, discovered by
// walking upward from the workspace root so settings are scoped to a
// workspace rather than passed on the command line.

package syslsp

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kerml-tools/syster/internal/semantic/diag"
)

// configFileName is the file this package looks for in the workspace root
// and every ancestor directory above it.
const configFileName = "syster.yaml"

// Config holds the knobs a workspace can override. The semantic core itself
// is not configurable — these only affect how the server reports what the
// core already computed.
type Config struct {
	// Severity remaps a diag.Kind (by its String() name) to an LSP
	// severity override; kinds absent here keep kindSeverity's built-in
	// default.
	Severity map[string]string `yaml:"severity"`
	// RecursiveImportLimit caps how many qualified names the resolver's
	// recursive-import fallback will scan before giving up, guarding against
	// pathological workspaces. Zero means no limit.
	RecursiveImportLimit int `yaml:"recursiveImportLimit"`
}

// defaultConfig is used when no syster.yaml is found anywhere above root.
func defaultConfig() Config {
	return Config{}
}

// LoadConfig walks upward from root looking for syster.yaml and parses the
// first one it finds. It is not an error for no config file to exist.
func LoadConfig(root string) (Config, error) {
	dir, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("syslsp: resolving config root: %w", err)
	}

	for {
		candidate := filepath.Join(dir, configFileName)
		data, err := os.ReadFile(candidate)
		if err == nil {
			var cfg Config
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("syslsp: parsing %s: %w", candidate, err)
			}
			return cfg, nil
		}
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("syslsp: reading %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return defaultConfig(), nil
		}
		dir = parent
	}
}

// severityOverride looks up a user-configured severity string for kind, if
// any was set in syster.yaml.
func (c Config) severityOverride(kind diag.Kind) (string, bool) {
	s, ok := c.Severity[kind.String()]
	return s, ok
}
