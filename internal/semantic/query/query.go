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

// Package query implements the editor-facing read operations: hover,
// go-to-definition, find-references, document links, code
// lens, folding ranges, type hierarchy, call hierarchy, and diagram data.
// Every function here is a pure read over a *workspace.Workspace's symbol
// table, relationship graph, and reference index — none of them mutate
// anything, and none of them return a Go error; a query with nothing to
// say returns ok=false or an empty slice, matching its "no
// result, never an error" contract. internal/syslsp translates these
// results to LSP wire types; nothing in this package knows about
// go.lsp.dev/protocol.
package query

import (
	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// Location names a span in a specific file, the common currency every
// query service that points somewhere in source returns.
type Location struct {
	File string
	Span source.Span
}

// locateSymbol finds the symbol the cursor at (file, pos) refers to. There
// is no lexer in this module to find "the word at position" from raw text
// (its own phrasing), so this reconstructs the same answer from
// the spans the adapters already recorded, picking whichever candidate span
// containing pos is narrowest:
//
//   - A declaration's own span (hovering the name being defined) — this is
//     usually the span of the whole declaration statement, so it also
//     contains every reference nested inside it (a type annotation, a
//     specialization clause).
//   - A reference occurrence's span (hovering a name used inside some
//     other declaration), resolved from the mentioning symbol's defining
//     scope so shadowing and imports apply exactly as they would at edit
//     time.
//   - A relationship-edge location, as a fallback for edges recorded
//     without a matching reference-index entry.
//
// Because a reference's span nests inside its enclosing declaration's span,
// always preferring the narrowest match is what makes "hover over the
// Vehicle in `part Car :> Vehicle`" resolve to Vehicle rather than to Car.
// Returns ok=false if pos doesn't fall inside anything this module knows
// about, which every caller treats as "no result" rather than an error.
func locateSymbol(ws *workspace.Workspace, file string, pos source.Position) (*symtab.Symbol, bool) {
	var bestSpan source.Span
	var resolve func() (*symtab.Symbol, bool)
	haveBest := false

	consider := func(span source.Span, r func() (*symtab.Symbol, bool)) {
		if !span.Contains(pos) {
			return
		}
		if haveBest && !narrower(span, bestSpan) {
			return
		}
		bestSpan, resolve, haveBest = span, r, true
	}

	for _, sym := range ws.SymbolTable().GetSymbolsForFile(file) {
		if !sym.HasSpan {
			continue
		}
		sym := sym
		consider(*sym.Span, func() (*symtab.Symbol, bool) { return sym, true })
	}

	for _, ref := range ws.ReferenceIndex().GetReferencesInFile(file) {
		ref := ref
		consider(ref.Span, func() (*symtab.Symbol, bool) { return resolveMention(ws, ref.SourceQName, ref.TargetName) })
	}

	// The narrowest span containing pos is the definitive match for this
	// cursor position: once found, an unresolved reference there means "no
	// result", not a fallback to whatever wider declaration also happens to
	// contain pos.
	if haveBest {
		return resolve()
	}

	if target, ok := ws.RelationshipGraph().GetBindingAtPosition(file, pos); ok {
		if sym, ok := ws.SymbolTable().LookupQualified(target); ok {
			return sym, true
		}
		if sym, ok := ws.SymbolTable().LookupGlobal(target); ok {
			return sym, true
		}
	}

	return nil, false
}

// narrower reports whether a covers strictly less source than b, by line
// span first and then column span within a single line, which is enough to
// order the spans this module ever compares (declaration statements versus
// the smaller reference occurrences nested inside them).
func narrower(a, b source.Span) bool {
	aLines := a.End.Line - a.Start.Line
	bLines := b.End.Line - b.Start.Line
	if aLines != bLines {
		return aLines < bLines
	}
	aCols := a.End.Column - a.Start.Column
	bCols := b.End.Column - b.Start.Column
	return aCols < bCols
}

// resolveMention resolves targetName as it would be seen from the scope
// that declared sourceQName, falling back to returning nothing rather than
// guessing if sourceQName itself isn't in the table (e.g. it was removed by
// a concurrent update the harness didn't yet re-populate around).
func resolveMention(ws *workspace.Workspace, sourceQName, targetName string) (*symtab.Symbol, bool) {
	src, ok := ws.SymbolTable().LookupQualified(sourceQName)
	if !ok {
		return nil, false
	}
	res, ok := ws.Resolver().Resolve(src.SourceFile, src.ScopeID, targetName)
	if !ok {
		return nil, false
	}
	return res.Symbol, true
}

// symbolKindLabel renders a Symbol's variant as a short, human-readable
// label for hover text and diagram nodes.
func symbolKindLabel(sym *symtab.Symbol) string {
	return sym.KindLabel()
}
