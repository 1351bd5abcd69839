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

// References resolves the symbol at (file, pos) and returns every location
// that mentions it: reference-index entries, relationship-graph edge
// locations, and import statements naming it, unioned and deduplicated.
// includeDeclaration additionally includes the symbol's own declaration
// span.
func References(ws *workspace.Workspace, file string, pos source.Position, includeDeclaration bool) []Location {
	ws.RLock()
	defer ws.RUnlock()

	sym, ok := locateSymbol(ws, file, pos)
	if !ok {
		return nil
	}
	return referencesToLocked(ws, sym.QualifiedName, includeDeclaration)
}

func referencesToLocked(ws *workspace.Workspace, qualifiedName string, includeDeclaration bool) []Location {
	seen := make(map[Location]bool)
	var out []Location
	add := func(loc Location) {
		if loc.File == "" || seen[loc] {
			return
		}
		seen[loc] = true
		out = append(out, loc)
	}

	for _, ref := range ws.ReferenceIndex().GetReferences(qualifiedName) {
		add(Location{File: ref.File, Span: ref.Span})
	}
	for _, rl := range ws.RelationshipGraph().GetReferencesTo(qualifiedName) {
		add(Location{File: rl.File, Span: rl.Span})
	}
	for _, rl := range ws.SymbolTable().GetImportReferences(qualifiedName) {
		add(Location{File: rl.File, Span: rl.Span})
	}

	if includeDeclaration {
		if sym, ok := ws.SymbolTable().LookupQualified(qualifiedName); ok && sym.HasSpan {
			add(Location{File: sym.SourceFile, Span: *sym.Span})
		}
	}

	return out
}
