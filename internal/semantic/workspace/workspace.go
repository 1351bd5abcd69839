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

// Package workspace owns every file the semantic core knows about and the
// symbol table, relationship graph, reference index, and dependency graph
// built from them. It is the one type query services read through; every
// mutation (adding, updating, removing, populating a file) goes through
// here so invalidation and re-population stay consistent.
//
// The core is single-threaded-cooperative: a Workspace takes exclusive
// locks around mutation and shared locks around reads, but it assumes an
// outer harness (internal/syslsp) serializes incoming requests the way an
// LSP server naturally does — it does not itself run a worker pool or
// dispatch concurrent populate calls.
package workspace

import (
	"context"
	"sort"
	"sync"

	"github.com/kerml-tools/syster/internal/semantic/adapter"
	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/diag"
	"github.com/kerml-tools/syster/internal/semantic/graph"
	"github.com/kerml-tools/syster/internal/semantic/refindex"
	"github.com/kerml-tools/syster/internal/semantic/resolver"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
)

// File is one file the workspace tracks: its most recently parsed AST, an
// opaque version stamp supplied by the caller (an LSP document version, or
// a content hash for a CLI batch run), and whether it has been populated
// into the shared tables since it was last added or updated.
type File struct {
	Path        string
	AST         ast.File
	Version     int
	IsPopulated bool
}

// Workspace is the semantic core's top-level state.
type Workspace struct {
	mu sync.RWMutex

	files map[string]*File

	symtab   *symtab.SymbolTable
	graph    *graph.RelationshipGraph
	refindex *refindex.Index
	resolver *resolver.Resolver
	deps     *DependencyGraph

	autoInvalidate bool
}

// New constructs an empty Workspace.
func New() *Workspace {
	tab := symtab.New()
	return &Workspace{
		files:          make(map[string]*File),
		symtab:         tab,
		graph:          graph.New(),
		refindex:       refindex.New(),
		resolver:       resolver.New(tab),
		deps:           NewDependencyGraph(),
		autoInvalidate: true,
	}
}

// SymbolTable exposes the shared symbol table for query services.
func (w *Workspace) SymbolTable() *symtab.SymbolTable { return w.symtab }

// RelationshipGraph exposes the shared relationship graph for query
// services.
func (w *Workspace) RelationshipGraph() *graph.RelationshipGraph { return w.graph }

// ReferenceIndex exposes the shared reference index for query services.
func (w *Workspace) ReferenceIndex() *refindex.Index { return w.refindex }

// Resolver exposes the shared resolver for query services.
func (w *Workspace) Resolver() *resolver.Resolver { return w.resolver }

// DependencyGraph exposes the file-level dependency graph.
func (w *Workspace) DependencyGraph() *DependencyGraph { return w.deps }

// EnableAutoInvalidation controls whether UpdateFile also marks every file
// that transitively depends on the updated one unpopulated, or merely marks
// the file itself. UpdateFile never re-populates; the caller decides when
// to call PopulateAffected or PopulateAll.
// Batch CLI runs that are about to PopulateAll anyway typically disable
// this to avoid redundant work.
func (w *Workspace) EnableAutoInvalidation(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.autoInvalidate = enabled
}

// AddFile registers a new file at version 0, unpopulated.
func (w *Workspace) AddFile(path string, file ast.File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = &File{Path: path, AST: file, Version: 0}
}

// UpdateFile replaces path's AST and bumps its version, invalidating
// whatever the previous population recorded. If auto-invalidation is
// enabled, every file that depends on path is also marked unpopulated so a
// later PopulateAll / PopulateAffected call catches up; otherwise only path
// itself is marked. Reports whether path was already tracked; an unknown
// path is registered as if by AddFile.
func (w *Workspace) UpdateFile(path string, file ast.File) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Captured before any edges are torn down: the cascade below is the
	// whole reason the dependency graph exists.
	dependents := w.deps.TransitiveDependents(path)

	w.invalidateLocked(path)
	// Only the file's own imports are withdrawn. Its dependents still
	// import from it — their edges must survive the update so the next
	// PopulateAffected can find them.
	w.deps.RemoveDependenciesOf(path)

	f, existed := w.files[path]
	if !existed {
		f = &File{Path: path}
		w.files[path] = f
	}
	f.AST = file
	f.Version++
	f.IsPopulated = false

	if w.autoInvalidate {
		for _, dependent := range dependents {
			if df, ok := w.files[dependent]; ok {
				df.IsPopulated = false
			}
		}
	}
	return existed
}

// RemoveFile drops path entirely: its AST, every symbol and relationship
// edge it contributed, and its place in the dependency graph. Reports
// whether path was tracked at all.
func (w *Workspace) RemoveFile(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, existed := w.files[path]
	w.invalidateLocked(path)
	w.deps.RemoveFile(path)
	delete(w.files, path)
	return existed
}

// invalidateLocked undoes everything path's last population recorded in the
// shared tables. Dependency-graph edges are handled by the caller: an
// update withdraws only outgoing edges, a removal withdraws both
// directions.
func (w *Workspace) invalidateLocked(path string) {
	w.symtab.RemoveFile(path)
	w.graph.RemoveForFile(path)
	w.refindex.RemoveReferencesFromFile(path)
	w.symtab.ClearImportReferencesForFile(path)
}

// GetFileDependents returns every file that directly imports from path.
func (w *Workspace) GetFileDependents(path string) []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.deps.GetDependents(path)
}

// RLock/RUnlock let query services (internal/semantic/query) hold the
// workspace's shared lock across a multi-step read — e.g. resolving a
// symbol and then walking the relationship graph from it — without a
// mutation landing in between. Mutating methods on Workspace take their own
// lock internally and must not be called while a caller already holds
// RLock.
func (w *Workspace) RLock()   { w.mu.RLock() }
func (w *Workspace) RUnlock() { w.mu.RUnlock() }

// File returns a copy of the tracked file at path, so callers can read its
// AST/version/population state without holding the workspace lock open.
func (w *Workspace) File(path string) (File, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	f, ok := w.files[path]
	if !ok {
		return File{}, false
	}
	return *f, true
}

// FilePaths returns every path the workspace tracks, sorted for
// deterministic iteration (workspace-wide diagram export, batch folding).
func (w *Workspace) FilePaths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// PopulateFile re-populates a single file: it first undoes whatever its
// previous population recorded (remove-then-readapt, so re-population is
// idempotent even if called twice without an intervening UpdateFile), then
// runs the dialect-appropriate adapter and records any import-derived
// dependency edges.
func (w *Workspace) PopulateFile(ctx context.Context, path string) ([]diag.Diagnostic, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.populateLocked(path)
}

func (w *Workspace) populateLocked(path string) ([]diag.Diagnostic, error) {
	f, ok := w.files[path]
	if !ok {
		return nil, ErrUnknownFile{Path: path}
	}

	w.invalidateLocked(path)
	w.deps.RemoveDependenciesOf(path)

	var diags []diag.Diagnostic
	switch f.AST.Dialect {
	case ast.DialectKerML:
		diags = adapter.NewKerML(w.symtab, w.graph, w.refindex).Populate(f.AST)
	default:
		diags = adapter.NewSysML(w.symtab, w.graph, w.refindex).Populate(f.AST)
	}

	w.recordDependencyEdges(path)
	f.IsPopulated = true
	return diags, nil
}

// recordDependencyEdges resolves path's import statements against the
// symbol table to find which file declares each imported package, and
// records a file-level dependency edge for each one it can find. An import
// that doesn't resolve to anything yet (the target file hasn't been
// populated) simply contributes no edge; the batch populate entry points
// re-run this over every populated file once the whole table is built, so
// edge presence never depends on population order.
func (w *Workspace) recordDependencyEdges(path string) {
	for _, imp := range w.symtab.GetFileImports(path) {
		target := imp.Path
		if imp.IsNamespace {
			target = symtab.NamespacePrefix(imp.Path)
		}
		if sym, ok := w.symtab.LookupQualified(target); ok && sym.SourceFile != "" {
			w.deps.AddDependency(path, sym.SourceFile)
		}
	}
}

// PopulateAll (re-)populates every unpopulated file, then runs a
// resolve-targets pass over every directed relation kind so edges recorded
// against a name that wasn't yet resolvable at population time get rewritten
// to the symbol's canonical qualified name now that every file has been
// seen. Files are populated in an unspecified order; because adapters
// record relationships by name rather than requiring the target to already
// exist, population order never needs to match dependency order.
func (w *Workspace) PopulateAll(ctx context.Context) (map[string][]diag.Diagnostic, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	results := make(map[string][]diag.Diagnostic)
	for path, f := range w.files {
		if f.IsPopulated {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}
		diags, err := w.populateLocked(path)
		if err != nil {
			return results, err
		}
		if len(diags) > 0 {
			results[path] = diags
		}
	}

	w.recordAllDependencyEdgesLocked()
	w.resolveAllTargetsLocked()
	return results, nil
}

// PopulateAffected re-populates path and, cycle-tolerant, every file that
// transitively depends on it, then re-runs the resolve-targets pass.
func (w *Workspace) PopulateAffected(ctx context.Context, path string) (map[string][]diag.Diagnostic, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	results := make(map[string][]diag.Diagnostic)
	toVisit := append([]string{path}, w.deps.TransitiveDependents(path)...)
	visited := make(map[string]bool)
	for _, p := range toVisit {
		if visited[p] {
			continue
		}
		visited[p] = true
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if _, ok := w.files[p]; !ok {
			continue
		}
		diags, err := w.populateLocked(p)
		if err != nil {
			return results, err
		}
		if len(diags) > 0 {
			results[p] = diags
		}
	}

	w.recordAllDependencyEdgesLocked()
	w.resolveAllTargetsLocked()
	return results, nil
}

// recordAllDependencyEdgesLocked re-derives import edges for every
// populated file against the now-complete symbol table. populateLocked
// already recorded what it could see mid-batch; this pass picks up imports
// whose target file happened to populate later.
func (w *Workspace) recordAllDependencyEdgesLocked() {
	for path, f := range w.files {
		if f.IsPopulated {
			w.recordDependencyEdges(path)
		}
	}
}

func (w *Workspace) resolveAllTargetsLocked() {
	for _, kind := range w.graph.RelationshipTypes() {
		w.graph.ResolveTargets(kind, func(source, target string) (string, bool) {
			if _, ok := w.symtab.LookupQualified(target); ok {
				return "", false // already canonical, nothing to rewrite
			}
			srcSym, ok := w.symtab.LookupQualified(source)
			if !ok {
				return "", false
			}
			res, ok := w.resolver.Resolve(srcSym.SourceFile, srcSym.ScopeID, target)
			if !ok || res.Symbol.QualifiedName == target {
				return "", false
			}
			return res.Symbol.QualifiedName, true
		})
	}
}

// ErrUnknownFile is returned by operations given a path the workspace has
// not been told about via AddFile.
type ErrUnknownFile struct{ Path string }

func (e ErrUnknownFile) Error() string { return "workspace: unknown file " + e.Path }
