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
	"github.com/kerml-tools/syster/internal/semantic/symtab"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// DocumentLink is one clickable range in a file that navigates to a
// location in another (or the same) file.
type DocumentLink struct {
	Source Location
	Target Location
}

// DocumentLinks emits one link per import statement, pointing at the file
// that defines the imported package, and one per relationship-edge mention
// recorded in file, pointing at the target symbol's defining file. An
// import or edge whose target doesn't resolve to anything yet
// contributes no link rather than a broken one.
func DocumentLinks(ws *workspace.Workspace, file string) []DocumentLink {
	ws.RLock()
	defer ws.RUnlock()

	var out []DocumentLink

	for _, imp := range ws.SymbolTable().GetFileImports(file) {
		targetName := imp.Path
		if imp.IsNamespace {
			targetName = symtab.NamespacePrefix(imp.Path)
		}
		targetSym, ok := ws.SymbolTable().LookupQualified(targetName)
		if !ok || targetSym.SourceFile == "" || !targetSym.HasSpan {
			continue
		}
		for _, ref := range ws.SymbolTable().GetImportReferences(imp.Path) {
			if ref.File != file {
				continue
			}
			out = append(out, DocumentLink{
				Source: Location{File: file, Span: ref.Span},
				Target: Location{File: targetSym.SourceFile, Span: *targetSym.Span},
			})
		}
	}

	for _, edge := range ws.RelationshipGraph().GetEdgesInFile(file) {
		targetSym, ok := ws.SymbolTable().LookupQualified(edge.Target)
		if !ok || targetSym.SourceFile == "" || !targetSym.HasSpan {
			continue
		}
		out = append(out, DocumentLink{
			Source: Location{File: file, Span: edge.Span},
			Target: Location{File: targetSym.SourceFile, Span: *targetSym.Span},
		})
	}

	return out
}
