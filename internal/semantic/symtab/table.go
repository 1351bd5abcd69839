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

// Package symtab holds the scope tree and flat symbol store every adapter
// populates and every query service reads from. Symbols are keyed by plain
// strings rather than interned handles: a SymbolTable lives one-per-file-set
// (usually one per workspace) and the string-keyed maps here are already the
// hot path's bottleneck, so adding an interning layer on top would just move
// the cost around. The relationship graphs and reference index, which fan
// out across far more edges, are where interning earns its keep.
package symtab

import (
	"fmt"
	"sort"
	"sync"
)

// ErrNoParentScope is returned by ExitScope when called on the root scope.
var ErrNoParentScope = fmt.Errorf("symtab: exit_scope called with no parent scope")

// SymbolTable is the scope tree plus the flat store of every symbol
// inserted into it. The zero value is not usable; construct with New.
type SymbolTable struct {
	mu sync.RWMutex

	scopes []*scope
	cursor ScopeID

	// symbols is the single source of truth, keyed by qualified name.
	symbols map[string]*Symbol

	// symbolsByFile indexes qualified names by the file they came from, in
	// insertion order, so RemoveFile and get_symbols_for_file don't need to
	// scan the whole table.
	symbolsByFile map[string][]string

	// importsByFile indexes raw Import symbols (which are never given their
	// own scope-tree entry — an import is a statement, not a declaration)
	// by the file that declared them.
	importsByFile map[string][]Import

	// importReferences is the reverse index from an import's path to every
	// location in source that names it, independent of the forward
	// Header.References list any resolved symbol also carries.
	importReferences map[string][]RefLocation
}

// New constructs a SymbolTable with a single root scope and cursor parked
// on it.
func New() *SymbolTable {
	return &SymbolTable{
		scopes:           []*scope{newScope(0, false)},
		cursor:           0,
		symbols:          make(map[string]*Symbol),
		symbolsByFile:    make(map[string][]string),
		importsByFile:    make(map[string][]Import),
		importReferences: make(map[string][]RefLocation),
	}
}

// RootScope is the ScopeID every table starts with.
const RootScope ScopeID = 0

// CurrentScope returns the table's scope cursor.
func (t *SymbolTable) CurrentScope() ScopeID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor
}

// EnterScope creates a new child scope under the cursor and moves the
// cursor into it, returning the new scope's ID. Scopes are never deleted:
// once handed out, a ScopeID stays a valid lookup key for the life of the
// table, even after every symbol that used to live there has been removed
// by RemoveFile.
func (t *SymbolTable) EnterScope() ScopeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, newScope(t.cursor, true))
	t.scopes[t.cursor].children = append(t.scopes[t.cursor].children, id)
	t.cursor = id
	return id
}

// ExitScope moves the cursor to the current scope's parent. It returns
// ErrNoParentScope if the cursor is already on the root.
func (t *SymbolTable) ExitScope() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.scopes[t.cursor]
	if !cur.hasParent {
		return ErrNoParentScope
	}
	t.cursor = cur.parent
	return nil
}

// EnterScopeAt moves the cursor directly to an existing scope, for adapters
// that revisit a scope created on an earlier pass (e.g. re-populating a
// single file without rebuilding the whole tree).
func (t *SymbolTable) EnterScopeAt(id ScopeID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor = id
}

// Insert adds sym under the cursor's current scope (or sym.ScopeID if the
// caller already set it). It reports duplicate=true when another symbol of
// the same unqualified name already exists directly in that scope, and
// then rejects sym outright — the first definition is retained verbatim,
// so a later "duplicate symbol" diagnostic never leaves
// go-to-definition/hover pointing at the wrong declaration.
func (t *SymbolTable) Insert(sym Symbol) (duplicate bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if sym.ScopeID == 0 && t.cursor != 0 {
		sym.ScopeID = t.cursor
	}
	sc := t.scopes[sym.ScopeID]
	existing := sc.names[sym.Name]
	if len(existing) > 0 {
		return true
	}
	sc.names[sym.Name] = append(existing, sym.QualifiedName)

	stored := sym
	t.symbols[sym.QualifiedName] = &stored

	if sym.SourceFile != "" {
		t.symbolsByFile[sym.SourceFile] = append(t.symbolsByFile[sym.SourceFile], sym.QualifiedName)
	}
	return false
}

// LookupQualified finds a symbol by its fully qualified name: the resolver's
// fast path.
func (t *SymbolTable) LookupQualified(qualifiedName string) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sym, ok := t.symbols[qualifiedName]
	return sym, ok
}

// Lookup walks the scope chain starting at the cursor, returning the
// nearest symbol named name. Adapters use this mid-population; everything
// after population resolves from an explicit scope instead.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolveInScopeLocked(t.cursor, name)
}

// LookupFromScope walks the scope chain starting at scopeID up to the root,
// returning the first symbol named name found directly in any scope on the
// path. This is the resolver's scope-chain walk.
func (t *SymbolTable) LookupFromScope(scopeID ScopeID, name string) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.resolveInScopeLocked(scopeID, name)
}

// ResolveInScope is an alias of LookupFromScope kept distinct at the API
// level because callers outside the resolver (hover, definition) reach for
// "what does this name mean here" without caring that it happens to be
// implemented as a scope-chain walk.
func (t *SymbolTable) ResolveInScope(scopeID ScopeID, name string) (*Symbol, bool) {
	return t.LookupFromScope(scopeID, name)
}

func (t *SymbolTable) resolveInScopeLocked(scopeID ScopeID, name string) (*Symbol, bool) {
	for {
		sc := t.scopes[scopeID]
		if names, ok := sc.names[name]; ok && len(names) > 0 {
			if sym, ok := t.symbols[names[0]]; ok {
				return sym, true
			}
		}
		if !sc.hasParent {
			return nil, false
		}
		scopeID = sc.parent
	}
}

// LookupGlobal is the resolver's last-resort fallback: the
// first symbol with this unqualified name found by iterating every symbol
// in the table. Go map iteration order is unspecified, and that is
// intentional here, not a bug to fix — the fallback's "first match wins" is
// explicitly documented as depending on insertion/iteration order that a
// well-formed model should never need to rely on.
func (t *SymbolTable) LookupGlobal(name string) (*Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, sym := range t.symbols {
		if sym.Name == name {
			return sym, true
		}
	}
	return nil, false
}

// AddImport records an Import symbol in the scope the cursor currently sits
// in, and against the file that declared it. The scope attribution is what
// the resolver's import walk keys on; the per-file index serves per-file
// queries (dependency edges, document links) and RemoveFile.
func (t *SymbolTable) AddImport(file string, imp Import) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scopes[t.cursor].imports = append(t.scopes[t.cursor].imports, scopedImport{imp: imp, file: file})
	t.importsByFile[file] = append(t.importsByFile[file], imp)
}

// ScopeImports returns the imports declared directly in scopeID, in
// declaration order.
func (t *SymbolTable) ScopeImports(scopeID ScopeID) []Import {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Import, 0, len(t.scopes[scopeID].imports))
	for _, si := range t.scopes[scopeID].imports {
		out = append(out, si.imp)
	}
	return out
}

// ScopeChainImports returns every import visible from scopeID: the chain is
// walked from scopeID up to the root, each scope contributing its imports in
// declaration order, nearest scope first. The resolver's import walk
// (strategy 3) iterates exactly this slice.
func (t *SymbolTable) ScopeChainImports(scopeID ScopeID) []Import {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Import
	for {
		sc := t.scopes[scopeID]
		for _, si := range sc.imports {
			out = append(out, si.imp)
		}
		if !sc.hasParent {
			return out
		}
		scopeID = sc.parent
	}
}

// GetFileImports returns every import declared by file, in insertion order.
func (t *SymbolTable) GetFileImports(file string) []Import {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Import(nil), t.importsByFile[file]...)
}

// GetSymbolsForFile returns every symbol whose SourceFile is file.
func (t *SymbolTable) GetSymbolsForFile(file string) []*Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := t.symbolsByFile[file]
	out := make([]*Symbol, 0, len(names))
	for _, qn := range names {
		if sym, ok := t.symbols[qn]; ok {
			out = append(out, sym)
		}
	}
	return out
}

// GetQualifiedNamesForFile returns the qualified names of every symbol
// declared in file, without dereferencing them.
func (t *SymbolTable) GetQualifiedNamesForFile(file string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.symbolsByFile[file]...)
}

// AddReferencesToSymbol appends reference locations to an already-inserted
// symbol's Header.References list.
func (t *SymbolTable) AddReferencesToSymbol(qualifiedName string, locs ...RefLocation) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	sym, ok := t.symbols[qualifiedName]
	if !ok {
		return false
	}
	sym.AddReference(locs...)
	return true
}

// AddImportReference records that loc names the import path importPath,
// independent of whether importPath resolves to anything.
func (t *SymbolTable) AddImportReference(importPath string, loc RefLocation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.importReferences[importPath] = append(t.importReferences[importPath], loc)
}

// GetImportReferences returns every recorded reference to importPath.
func (t *SymbolTable) GetImportReferences(importPath string) []RefLocation {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]RefLocation(nil), t.importReferences[importPath]...)
}

// ClearImportReferencesForFile drops every import reference whose
// RefLocation.File is file, used when a file is about to be re-populated.
func (t *SymbolTable) ClearImportReferencesForFile(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for path, locs := range t.importReferences {
		kept := locs[:0]
		for _, loc := range locs {
			if loc.File != file {
				kept = append(kept, loc)
			}
		}
		if len(kept) == 0 {
			delete(t.importReferences, path)
		} else {
			t.importReferences[path] = kept
		}
	}
}

// AllSymbols returns every symbol currently in the table, ordered by
// qualified name, for callers that need to scan the whole set (the
// resolver's recursive-import and global-fallback strategies; diagram
// export). The table itself is keyed by a Go map, so this order is imposed
// at read time rather than reflecting insertion order — without it, a
// caller that bounds its scan (resolveRecursive's recursiveImportLimit)
// would see which symbols get scanned change across process restarts.
func (t *SymbolTable) AllSymbols() []*Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Symbol, 0, len(t.symbols))
	for _, sym := range t.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName < out[j].QualifiedName })
	return out
}

// RemoveFile drops every symbol and import declared by file from the table.
// Scopes created while populating file are left in place (empty) rather
// than torn down, matching EnterScope's "ScopeIDs are forever" contract:
// another file's symbols may have been inserted into a scope nested inside
// one of file's scopes via an import, and walking a dangling ScopeID must
// stay safe even if that's never actually produced by an adapter.
func (t *SymbolTable) RemoveFile(file string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, qn := range t.symbolsByFile[file] {
		sym, ok := t.symbols[qn]
		if !ok {
			continue
		}
		sc := t.scopes[sym.ScopeID]
		if names, ok := sc.names[sym.Name]; ok {
			kept := names[:0]
			for _, n := range names {
				if n != qn {
					kept = append(kept, n)
				}
			}
			if len(kept) == 0 {
				delete(sc.names, sym.Name)
			} else {
				sc.names[sym.Name] = kept
			}
		}
		delete(t.symbols, qn)
	}
	delete(t.symbolsByFile, file)
	delete(t.importsByFile, file)

	// Scope-attributed imports are withdrawn scope by scope; the scopes
	// themselves stay. Without this, re-populating a file would stack a
	// second copy of each of its imports into the root scope.
	for _, sc := range t.scopes {
		if len(sc.imports) == 0 {
			continue
		}
		kept := sc.imports[:0]
		for _, si := range sc.imports {
			if si.file != file {
				kept = append(kept, si)
			}
		}
		sc.imports = kept
	}
}
