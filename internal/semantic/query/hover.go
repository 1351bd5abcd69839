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
	"strings"

	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// HoverResult is the rendered content for a hover request, plus the span it
// should be anchored to (so the editor can highlight the hovered range).
type HoverResult struct {
	Contents string
	Span     source.Span
}

// Hover resolves the symbol at (file, pos) and renders a Markdown block
// naming its qualified name, kind, and outgoing relationships.
func Hover(ws *workspace.Workspace, file string, pos source.Position) (HoverResult, bool) {
	ws.RLock()
	defer ws.RUnlock()

	sym, ok := locateSymbol(ws, file, pos)
	if !ok {
		return HoverResult{}, false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** _(%s)_\n\n`%s`", sym.Name, symbolKindLabel(sym), sym.QualifiedName)

	if lines := ws.RelationshipGraph().GetFormattedRelationships(sym.QualifiedName); len(lines) > 0 {
		b.WriteString("\n")
		for _, line := range lines {
			b.WriteString("\n- ")
			b.WriteString(line)
		}
	}

	span := source.Span{}
	if sym.HasSpan {
		span = *sym.Span
	}
	return HoverResult{Contents: b.String(), Span: span}, true
}
