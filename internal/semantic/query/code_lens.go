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
	"fmt"

	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// CodeLens is a "N references" annotation anchored at a top-level
// definition's span.
type CodeLens struct {
	Span  source.Span
	Title string
	Count int
}

// CodeLenses emits one lens per top-level Package/Classifier/Definition
// symbol declared in file that has at least one reference. Usages and
// features don't get a lens — only the three declaration-level variants.
func CodeLenses(ws *workspace.Workspace, file string) []CodeLens {
	ws.RLock()
	defer ws.RUnlock()

	var out []CodeLens
	for _, sym := range ws.SymbolTable().GetSymbolsForFile(file) {
		if !isLensEligible(sym.Kind) || !sym.HasSpan {
			continue
		}
		n := len(referencesToLocked(ws, sym.QualifiedName, false))
		if n == 0 {
			continue
		}
		out = append(out, CodeLens{
			Span:  *sym.Span,
			Title: fmt.Sprintf("%d references", n),
			Count: n,
		})
	}
	return out
}

func isLensEligible(kind symtab.Kind) bool {
	switch kind.(type) {
	case symtab.Package, symtab.Classifier, symtab.Definition:
		return true
	default:
		return false
	}
}
