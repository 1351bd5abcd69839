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

package workspace

import (
	"context"
	"sort"

	"github.com/kerml-tools/syster/internal/semantic/diag"
	"github.com/kerml-tools/syster/internal/semantic/graph"
	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
)

// cycleCheckedKinds are the refinement relations a loop is actually wrong
// in: a classifier specializing itself through any chain, a feature
// subsetting or redefining itself. Typing is one-to-one and checked
// nowhere — `myCar : Car` can't loop through the relations this module
// records — and the behavioural relations (perform, satisfy, exhibit,
// include) legitimately recurse in real models.
var cycleCheckedKinds = []string{graph.Specialization, graph.Subsetting, graph.Redefinition}

// Validate runs the analysis-time checks over every populated file: type
// annotations that don't resolve (UndefinedReference), annotations that
// resolve to something that can't type a usage (InvalidType), relationship
// targets that don't resolve (UndefinedReference), and refinement loops
// (Cycle). Population-time problems (duplicate symbols) are not re-derived
// here; they were already reported by the populate call that found them.
//
// Validation is resolution from the defining scope: a type name is looked
// up exactly as the declaration would see it, so `Pkg1::myFeature :
// Vehicle` binds to Pkg1::Vehicle even when a Pkg2::Vehicle exists too.
//
// The context is advisory, checked between files: on cancellation Validate
// returns what it has so far.
func (w *Workspace) Validate(ctx context.Context) map[string][]diag.Diagnostic {
	w.mu.RLock()
	defer w.mu.RUnlock()

	results := make(map[string][]diag.Diagnostic)

	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if ctx.Err() != nil {
			return results
		}
		for _, d := range w.validateFileLocked(path) {
			results[path] = append(results[path], d)
		}
	}

	for _, d := range w.validateCyclesLocked() {
		results[d.File] = append(results[d.File], d)
	}
	return results
}

func (w *Workspace) validateFileLocked(path string) []diag.Diagnostic {
	var out []diag.Diagnostic

	for _, sym := range w.symtab.GetSymbolsForFile(path) {
		ref := sym.Kind.TypeReference()
		if ref == "" {
			continue
		}
		span := source.Span{}
		if sym.HasSpan {
			span = *sym.Span
		}
		if loc, ok := w.typeAnnotationSpanLocked(sym.QualifiedName); ok {
			span = loc
		}

		res, ok := w.resolver.Resolve(path, sym.ScopeID, ref)
		if !ok {
			out = append(out, diag.Undefined(ref, path, span))
			continue
		}
		if isTypedKind(sym.Kind) && !res.Symbol.Kind.IsType() {
			out = append(out, diag.NotAType(ref, res.Symbol.KindLabel(), path, span))
		}
	}

	// Relationship targets beyond the typing edge: specialization,
	// subsetting, and the rest were recorded by name at population time; a
	// name neither canonical in the table nor resolvable from its source's
	// scope points at nothing.
	for _, edge := range w.graph.GetEdgesInFile(path) {
		if edge.Kind == graph.Typing {
			continue // covered by the annotation check above
		}
		if _, ok := w.symtab.LookupQualified(edge.Target); ok {
			continue
		}
		scope := symtab.RootScope
		if src, ok := w.symtab.LookupQualified(edge.Source); ok {
			scope = src.ScopeID
		}
		if _, ok := w.resolver.Resolve(path, scope, edge.Target); !ok {
			out = append(out, diag.Undefined(edge.Target, path, edge.Span))
		}
	}

	return out
}

// typeAnnotationSpanLocked finds the span of qname's typing clause, so an
// invalid-type diagnostic underlines `: Vehicle` rather than the whole
// declaration.
func (w *Workspace) typeAnnotationSpanLocked(qname string) (source.Span, bool) {
	for _, tr := range w.graph.GetTargetsWithLocations(graph.Typing, qname) {
		if tr.HasLocation {
			return tr.Span, true
		}
	}
	return source.Span{}, false
}

func (w *Workspace) validateCyclesLocked() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, kind := range cycleCheckedKinds {
		reported := make(map[string]bool)
		for _, cycle := range w.graph.FindCycles(kind) {
			for _, member := range cycle {
				if reported[member] {
					continue
				}
				reported[member] = true
				sym, ok := w.symtab.LookupQualified(member)
				if !ok || sym.SourceFile == "" || !sym.HasSpan {
					continue
				}
				out = append(out, diag.CircularChain(graph.RelationLabel(kind), cycle, sym.SourceFile, *sym.Span))
			}
		}
	}
	return out
}

// isTypedKind reports whether sym's variant carries a type *annotation* —
// the `: T` on a usage or feature — as opposed to an alias target, which
// may legitimately name a package or another alias.
func isTypedKind(k symtab.Kind) bool {
	switch k.(type) {
	case symtab.Usage, symtab.Feature:
		return true
	default:
		return false
	}
}
