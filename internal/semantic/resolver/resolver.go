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

// Package resolver implements name resolution: given a name as it appears
// in source (possibly unqualified, possibly relative to some scope and
// file), find the symbol it refers to. Resolution tries four strategies in
// order and stops at the first that succeeds:
//
//  1. Qualified fast path: when name contains "::", treat it as already
//     fully qualified.
//  2. Scope-chain walk: look for name declared in the current scope or any
//     enclosing one.
//  3. Import walk: check the imports visible from the reference's scope —
//     each scope on the chain contributes its own import list, nearest
//     scope first, then any remaining imports declared elsewhere in the
//     reference's file — for an exact import, `::*` namespace import, or
//     `::**` recursive import that brings name into scope.
//  4. Global fallback: scan every symbol in the table for one whose
//     unqualified name matches. Iteration order is unspecified, so when
//     more than one symbol shares that name this strategy's result is
//     intentionally dependent on map order — a well-formed model should
//     never need to reach this strategy to begin with.
package resolver

import (
	"strings"

	"github.com/kerml-tools/syster/internal/semantic/symtab"
)

// Resolver resolves names against a single SymbolTable.
type Resolver struct {
	symtab *symtab.SymbolTable

	// recursiveImportLimit caps how many symbols resolveRecursive will scan
	// before giving up. Zero (the default) means no limit.
	recursiveImportLimit int
}

// New constructs a Resolver over tab.
func New(tab *symtab.SymbolTable) *Resolver {
	return &Resolver{symtab: tab}
}

// SetRecursiveImportLimit bounds how many qualified names a `::**`
// recursive-import lookup will scan before giving up, guarding against a
// pathological workspace where a deep recursive import makes every
// unresolved reference fall through to a full table scan. Zero disables
// the limit.
func (r *Resolver) SetRecursiveImportLimit(n int) {
	r.recursiveImportLimit = n
}

// Strategy names the lookup path that produced a Resolve result, so callers
// that care (diagnostics, tests) can tell a clean scope-chain hit from a
// global-fallback guess.
type Strategy int

const (
	NotResolved Strategy = iota
	QualifiedFastPath
	ScopeChain
	ImportExact
	ImportNamespace
	ImportRecursive
	GlobalFallback
)

// Result is what Resolve returns on success.
type Result struct {
	Symbol   *symtab.Symbol
	Strategy Strategy
}

// Resolve looks up name as it would be seen from scopeID in file, per the
// four-strategy order documented on the package.
func (r *Resolver) Resolve(file string, scopeID symtab.ScopeID, name string) (Result, bool) {
	if strings.Contains(name, "::") {
		if sym, ok := r.symtab.LookupQualified(name); ok {
			return Result{Symbol: sym, Strategy: QualifiedFastPath}, true
		}
	}

	if sym, ok := r.symtab.LookupFromScope(scopeID, name); ok {
		return Result{Symbol: sym, Strategy: ScopeChain}, true
	}

	if res, ok := r.resolveViaImports(file, scopeID, name); ok {
		return res, true
	}

	if sym, ok := r.symtab.LookupGlobal(name); ok {
		return Result{Symbol: sym, Strategy: GlobalFallback}, true
	}

	return Result{}, false
}

// resolveViaImports walks the imports visible from scopeID — each scope on
// the chain contributes its own import list, nearest scope first — and then
// the remaining imports declared elsewhere in file, for callers resolving
// from a vantage scope (the root, a sibling) that an import's declaring
// scope doesn't enclose.
func (r *Resolver) resolveViaImports(file string, scopeID symtab.ScopeID, name string) (Result, bool) {
	chain := r.symtab.ScopeChainImports(scopeID)
	seen := make(map[symtab.Import]bool, len(chain))
	for _, imp := range chain {
		seen[imp] = true
		if res, ok := r.resolveOneImport(imp, name); ok {
			return res, true
		}
	}
	for _, imp := range r.symtab.GetFileImports(file) {
		if seen[imp] {
			continue
		}
		if res, ok := r.resolveOneImport(imp, name); ok {
			return res, true
		}
	}
	return Result{}, false
}

func (r *Resolver) resolveOneImport(imp symtab.Import, name string) (Result, bool) {
	if !imp.IsNamespace {
		// Exact import: `import pkg::Vehicle;` brings only the name
		// Vehicle into scope, bound to that exact qualified name.
		if lastSegment(imp.Path) == name {
			if sym, ok := r.symtab.LookupQualified(imp.Path); ok {
				return Result{Symbol: sym, Strategy: ImportExact}, true
			}
		}
		return Result{}, false
	}

	prefix := symtab.NamespacePrefix(imp.Path)
	if imp.IsRecursive {
		if sym, ok := r.resolveRecursive(prefix, name); ok {
			return Result{Symbol: sym, Strategy: ImportRecursive}, true
		}
		return Result{}, false
	}
	if sym, ok := r.symtab.LookupQualified(prefix + "::" + name); ok {
		return Result{Symbol: sym, Strategy: ImportNamespace}, true
	}
	return Result{}, false
}

// resolveRecursive implements `import pkg::**`: any symbol nested anywhere
// under pkg (at any depth, not just directly) whose own name is name. This
// is a prefix-and-suffix match over qualified names rather than an exact
// one, a known limitation: an unrelated symbol that
// merely happens to start with "pkg::" and end with "::name" matches too,
// and the first match in qualified-name order (AllSymbols sorts its
// result) decides between them when that happens.
func (r *Resolver) resolveRecursive(prefix, name string) (*symtab.Symbol, bool) {
	wantPrefix := prefix + "::"
	wantSuffix := "::" + name
	for i, sym := range r.symtab.AllSymbols() {
		if r.recursiveImportLimit > 0 && i >= r.recursiveImportLimit {
			break
		}
		if strings.HasPrefix(sym.QualifiedName, wantPrefix) && strings.HasSuffix(sym.QualifiedName, wantSuffix) {
			return sym, true
		}
	}
	return nil, false
}

func lastSegment(qualifiedName string) string {
	if idx := strings.LastIndex(qualifiedName, "::"); idx >= 0 {
		return qualifiedName[idx+2:]
	}
	return qualifiedName
}
