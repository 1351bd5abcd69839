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
	"sort"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// FoldingKind distinguishes a plain symbol-body fold from the two
// synthetic folds this package calls out by name.
type FoldingKind int

const (
	FoldingRegion FoldingKind = iota
	FoldingImports
	FoldingComment
)

// FoldingRange is one collapsible range in a file.
type FoldingRange struct {
	Span source.Span
	Kind FoldingKind
}

// FoldingRanges emits a region fold for every multi-line symbol declared in
// file, plus one Imports fold and one Comment fold per contiguous run of
// two or more import/comment elements.
func FoldingRanges(ws *workspace.Workspace, file string) []FoldingRange {
	ws.RLock()
	defer ws.RUnlock()

	var out []FoldingRange

	for _, sym := range ws.SymbolTable().GetSymbolsForFile(file) {
		if sym.HasSpan && sym.Span.MultiLine() {
			out = append(out, FoldingRange{Span: *sym.Span, Kind: FoldingRegion})
		}
	}

	f, ok := ws.File(file)
	if !ok {
		return out
	}

	var imports, comments []source.Span
	var walk func(els []ast.Element)
	walk = func(els []ast.Element) {
		for _, el := range els {
			switch v := el.(type) {
			case ast.Import:
				imports = append(imports, v.Span)
			case ast.Comment:
				comments = append(comments, v.Span)
			}
			walk(el.Header().Body)
		}
	}
	walk(f.AST.Root)

	out = append(out, coalesce(imports, FoldingImports)...)
	out = append(out, coalesce(comments, FoldingComment)...)
	return out
}

// coalesce groups spans that sit on contiguous or adjacent lines into a
// single fold per run, matching its "coalesce contiguous import
// lines and contiguous comment lines". A run of one span alone isn't
// foldable as a group — the per-symbol region fold above already covers a
// lone multi-line element — so only runs of two or more contribute here.
func coalesce(spans []source.Span, kind FoldingKind) []FoldingRange {
	if len(spans) == 0 {
		return nil
	}
	sorted := append([]source.Span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var out []FoldingRange
	var runs [][]source.Span
	cur := []source.Span{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		prev := cur[len(cur)-1]
		if sorted[i].Start.Line <= prev.End.Line+1 {
			cur = append(cur, sorted[i])
			continue
		}
		runs = append(runs, cur)
		cur = []source.Span{sorted[i]}
	}
	runs = append(runs, cur)

	for _, run := range runs {
		if len(run) < 2 {
			continue
		}
		out = append(out, FoldingRange{Span: source.NewSpan(run[0].Start, run[len(run)-1].End), Kind: kind})
	}
	return out
}
