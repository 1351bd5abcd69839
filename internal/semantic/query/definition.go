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
	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// Definition resolves the symbol at (file, pos) and returns where it was
// declared. A symbol with no recorded source file/span (there are none in
// this module — every variant that reaches the table carries one — but a
// future "builtin" symbol might not) reports ok=false rather than a
// meaningless zero Location.
func Definition(ws *workspace.Workspace, file string, pos source.Position) (Location, bool) {
	ws.RLock()
	defer ws.RUnlock()

	sym, ok := locateSymbol(ws, file, pos)
	if !ok || !sym.HasSpan || sym.SourceFile == "" {
		return Location{}, false
	}
	return Location{File: sym.SourceFile, Span: *sym.Span}, true
}
