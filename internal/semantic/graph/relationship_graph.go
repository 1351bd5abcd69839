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

package graph

import (
	"sort"
	"strings"
	"sync"

	"github.com/kerml-tools/syster/internal/semantic/intern"
	"github.com/kerml-tools/syster/internal/semantic/source"
)

// RelationshipGraph aggregates one named graph per relation kind behind a
// single interner, so every qualified name used across specialization,
// typing, satisfy, and every other tracked relation shares one Handle
// space. A workspace owns exactly one RelationshipGraph.
type RelationshipGraph struct {
	mu       sync.RWMutex
	interner *intern.Interner
	oneMany  map[string]*OneToMany
	oneOne   map[string]*OneToOne
	symm     map[string]*Symmetric
}

// New constructs an empty RelationshipGraph with its own Interner.
func New() *RelationshipGraph {
	return &RelationshipGraph{
		interner: intern.New(),
		oneMany:  make(map[string]*OneToMany),
		oneOne:   make(map[string]*OneToOne),
		symm:     make(map[string]*Symmetric),
	}
}

// Interner exposes the graph's shared interner so callers (the reference
// index, the resolver) can intern compatible handles.
func (g *RelationshipGraph) Interner() *intern.Interner { return g.interner }

func (g *RelationshipGraph) oneManyFor(kind string) *OneToMany {
	if graph, ok := g.oneMany[kind]; ok {
		return graph
	}
	graph := NewOneToMany()
	g.oneMany[kind] = graph
	return graph
}

func (g *RelationshipGraph) oneOneFor(kind string) *OneToOne {
	if graph, ok := g.oneOne[kind]; ok {
		return graph
	}
	graph := NewOneToOne()
	g.oneOne[kind] = graph
	return graph
}

func (g *RelationshipGraph) symmFor(kind string) *Symmetric {
	if graph, ok := g.symm[kind]; ok {
		return graph
	}
	graph := NewSymmetric()
	g.symm[kind] = graph
	return graph
}

// Add records a directed edge of the given relation kind. Kinds in
// oneToOneKinds route to a OneToOne graph (reassigning any prior target);
// every other kind routes to a OneToMany graph (deduplicated by target).
// file/span are optional; pass file="" and hasLoc=false when no source
// mention backs the edge.
func (g *RelationshipGraph) Add(kind, src, target, file string, span source.Span, hasLoc bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.interner.Intern(src)
	t := g.interner.Intern(target)
	var f intern.Handle
	hasFile := file != ""
	if hasFile {
		f = g.interner.Intern(file)
	}
	loc := RefLocation{File: f, Span: span}

	if isOneToOne(kind) {
		g.oneOneFor(kind).Add(s, t, f, hasFile, loc, hasLoc)
		return
	}
	g.oneManyFor(kind).Add(s, t, f, hasFile, loc, hasLoc)
}

// AddSymmetric records an undirected edge of the given relation kind.
func (g *RelationshipGraph) AddSymmetric(kind, a, b string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.symmFor(kind).Add(g.interner.Intern(a), g.interner.Intern(b))
}

// GetTargets returns every target src points at under kind.
func (g *RelationshipGraph) GetTargets(kind, src string) ([]string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, ok := g.lookupLocked(src)
	if !ok {
		return nil, false
	}
	if isOneToOne(kind) {
		graph, ok := g.oneOne[kind]
		if !ok {
			return nil, false
		}
		target, ok := graph.GetTarget(s)
		if !ok {
			return nil, false
		}
		return []string{g.interner.Resolve(target)}, true
	}
	graph, ok := g.oneMany[kind]
	if !ok {
		return nil, false
	}
	handles, ok := graph.GetTargets(s)
	if !ok {
		return nil, false
	}
	return g.resolveAll(handles), true
}

// GetSources returns every source pointing at target under kind.
func (g *RelationshipGraph) GetSources(kind, target string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	t, ok := g.lookupLocked(target)
	if !ok {
		return nil
	}
	if isOneToOne(kind) {
		graph, ok := g.oneOne[kind]
		if !ok {
			return nil
		}
		return g.resolveAll(graph.GetSources(t))
	}
	graph, ok := g.oneMany[kind]
	if !ok {
		return nil
	}
	return g.resolveAll(graph.GetSources(t))
}

// GetSymmetric returns every element related to element under kind.
func (g *RelationshipGraph) GetSymmetric(kind, element string) ([]string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.lookupLocked(element)
	if !ok {
		return nil, false
	}
	graph, ok := g.symm[kind]
	if !ok {
		return nil, false
	}
	related, ok := graph.GetRelated(e)
	if !ok {
		return nil, false
	}
	return g.resolveAll(related), true
}

// HasTransitivePath reports whether to is reachable from from by following
// kind's edges. Only meaningful for OneToMany-backed kinds; always false
// for a OneToOne kind since those never model transitive chains here.
func (g *RelationshipGraph) HasTransitivePath(kind, from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	graph, ok := g.oneMany[kind]
	if !ok {
		return false
	}
	f, ok := g.lookupLocked(from)
	if !ok {
		return false
	}
	t, ok := g.lookupLocked(to)
	if !ok {
		return false
	}
	return graph.HasPath(f, t)
}

// RemoveForSource drops every edge (any kind, any direction) originating at
// source.
func (g *RelationshipGraph) RemoveForSource(src string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.lookupLocked(src)
	if !ok {
		return
	}
	for _, graph := range g.oneMany {
		graph.RemoveSource(s)
	}
	for _, graph := range g.oneOne {
		graph.RemoveSource(s)
	}
	for _, graph := range g.symm {
		graph.RemoveElement(s)
	}
}

// RemoveForFile drops every edge recorded against file, across every
// directed relation kind. Symmetric edges carry no per-file index and are
// left untouched; RemoveForSource on each of the file's symbols is what
// clears those.
func (g *RelationshipGraph) RemoveForFile(file string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f, ok := g.lookupLocked(file)
	if !ok {
		return
	}
	for _, graph := range g.oneMany {
		graph.RemoveByFile(f)
	}
	for _, graph := range g.oneOne {
		graph.RemoveByFile(f)
	}
}

// RelationshipTypes returns every relation kind with at least one graph
// allocated, sorted for deterministic output.
func (g *RelationshipGraph) RelationshipTypes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	seen := make(map[string]bool)
	for k := range g.oneMany {
		seen[k] = true
	}
	for k := range g.oneOne {
		seen[k] = true
	}
	for k := range g.symm {
		seen[k] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RelationSet pairs a relation kind with the targets/peers element has
// under it.
type RelationSet struct {
	Kind    string
	Targets []string
}

// GetAllRelationships returns every relation kind element participates in
// as a source (or, for symmetric kinds, as either peer), together with its
// targets.
func (g *RelationshipGraph) GetAllRelationships(element string) []RelationSet {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.lookupLocked(element)
	if !ok {
		return nil
	}
	var out []RelationSet
	for kind, graph := range g.oneMany {
		if targets, ok := graph.GetTargets(e); ok {
			out = append(out, RelationSet{Kind: kind, Targets: g.resolveAll(targets)})
		}
	}
	for kind, graph := range g.oneOne {
		if target, ok := graph.GetTarget(e); ok {
			out = append(out, RelationSet{Kind: kind, Targets: []string{g.interner.Resolve(target)}})
		}
	}
	for kind, graph := range g.symm {
		if related, ok := graph.GetRelated(e); ok {
			out = append(out, RelationSet{Kind: kind, Targets: g.resolveAll(related)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// TargetReference is a resolved forward edge: the target's name plus the
// span of the source mention that recorded it, when one exists.
type TargetReference struct {
	Target      string
	File        string
	Span        source.Span
	HasLocation bool
}

// GetTargetsWithLocations is GetTargets plus each edge's recorded source
// location, for callers (document links, go-to-definition on a relation
// clause) that need the span the edge was written at.
func (g *RelationshipGraph) GetTargetsWithLocations(kind, src string) []TargetReference {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s, ok := g.lookupLocked(src)
	if !ok {
		return nil
	}
	var entries []TargetLocation
	if isOneToOne(kind) {
		graph, ok := g.oneOne[kind]
		if !ok {
			return nil
		}
		tl, ok := graph.GetTargetWithLocation(s)
		if !ok {
			return nil
		}
		entries = []TargetLocation{tl}
	} else {
		graph, ok := g.oneMany[kind]
		if !ok {
			return nil
		}
		entries, ok = graph.GetTargetsWithLocations(s)
		if !ok {
			return nil
		}
	}
	out := make([]TargetReference, len(entries))
	for i, tl := range entries {
		out[i] = TargetReference{Target: g.interner.Resolve(tl.Peer), HasLocation: tl.HasLocation}
		if tl.HasLocation {
			out[i].File = g.interner.Resolve(tl.Location.File)
			out[i].Span = tl.Location.Span
		}
	}
	return out
}

// FindCycles returns every cycle in kind's forward edges, each as the
// sequence of element names forming the loop. An empty result means the
// kind's graph is a DAG. OneToOne and symmetric kinds report no cycles: a
// typing chain can't loop through the relations this module records, and an
// undirected pair is trivially "circular" in a way no diagnostic cares
// about.
func (g *RelationshipGraph) FindCycles(kind string) [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	graph, ok := g.oneMany[kind]
	if !ok {
		return nil
	}
	var out [][]string
	for _, cycle := range graph.FindCycles() {
		out = append(out, g.resolveAll(cycle))
	}
	return out
}

// HasCircularDependency reports whether following kind's forward edges out
// of element ever leads back to element.
func (g *RelationshipGraph) HasCircularDependency(kind, element string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	graph, ok := g.oneMany[kind]
	if !ok {
		return false
	}
	e, ok := g.lookupLocked(element)
	if !ok {
		return false
	}
	return graph.HasCircularDependency(e)
}

// GetFormattedRelationships renders every relation element participates in
// as a source, one "label: target, target" line per kind, sorted by kind.
// Hover and diagram surfaces print these verbatim.
func (g *RelationshipGraph) GetFormattedRelationships(element string) []string {
	sets := g.GetAllRelationships(element)
	out := make([]string, 0, len(sets))
	for _, set := range sets {
		out = append(out, RelationLabel(set.Kind)+": "+strings.Join(set.Targets, ", "))
	}
	return out
}

// ReferenceLocation is a resolved (file path, span) pair, handed back to
// callers that never intern anything themselves.
type ReferenceLocation struct {
	File string
	Span source.Span
}

// GetReferencesTo returns every located source mention of target across
// every directed relation kind, used by find-references and hover.
func (g *RelationshipGraph) GetReferencesTo(target string) []ReferenceLocation {
	g.mu.RLock()
	defer g.mu.RUnlock()
	t, ok := g.lookupLocked(target)
	if !ok {
		return nil
	}
	var out []ReferenceLocation
	for _, graph := range g.oneMany {
		for _, tl := range graph.GetSourcesWithLocations(t) {
			if tl.HasLocation {
				out = append(out, ReferenceLocation{File: g.interner.Resolve(tl.Location.File), Span: tl.Location.Span})
			}
		}
	}
	for _, graph := range g.oneOne {
		for _, tl := range graph.GetSourcesWithLocations(t) {
			if tl.HasLocation {
				out = append(out, ReferenceLocation{File: g.interner.Resolve(tl.Location.File), Span: tl.Location.Span})
			}
		}
	}
	return out
}

// FileEdge is one directed edge located in a specific file, used by
// document-link and code-lens style queries that need to enumerate every
// edge a file contributes rather than look one up by element.
type FileEdge struct {
	Kind   string
	Source string
	Target string
	Span   source.Span
}

// GetEdgesInFile returns every directed edge (any kind) whose recorded
// location is in file.
func (g *RelationshipGraph) GetEdgesInFile(file string) []FileEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []FileEdge
	for kind, graph := range g.oneMany {
		for _, e := range graph.AllEntries() {
			if e.HasLocation && g.interner.Resolve(e.Location.File) == file {
				out = append(out, FileEdge{Kind: kind, Source: g.interner.Resolve(e.Source), Target: g.interner.Resolve(e.Target), Span: e.Location.Span})
			}
		}
	}
	for kind, graph := range g.oneOne {
		for _, e := range graph.AllEntries() {
			if e.HasLocation && g.interner.Resolve(e.Location.File) == file {
				out = append(out, FileEdge{Kind: kind, Source: g.interner.Resolve(e.Source), Target: g.interner.Resolve(e.Target), Span: e.Location.Span})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Span.Start != out[j].Span.Start {
			return out[i].Span.Start.Before(out[j].Span.Start)
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// GetBindingAtPosition returns the resolved target name referenced at
// (file, pos), if any directed edge's location contains that position.
func (g *RelationshipGraph) GetBindingAtPosition(file string, pos source.Position) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, graph := range g.oneOne {
		for _, e := range graph.AllEntries() {
			if e.HasLocation && g.interner.Resolve(e.Location.File) == file && e.Location.Span.Contains(pos) {
				return g.interner.Resolve(e.Target), true
			}
		}
	}
	for _, graph := range g.oneMany {
		for _, e := range graph.AllEntries() {
			if e.HasLocation && g.interner.Resolve(e.Location.File) == file && e.Location.Span.Contains(pos) {
				return g.interner.Resolve(e.Target), true
			}
		}
	}
	return "", false
}

// ResolveTargets rewrites every unresolved target under kind using
// resolver, which is given (source qualified name, current target name)
// and returns the resolved qualified name, if any.
func (g *RelationshipGraph) ResolveTargets(kind string, resolver func(source, target string) (string, bool)) {
	g.mu.Lock()
	defer g.mu.Unlock()

	wrap := func(s, t intern.Handle) (intern.Handle, bool) {
		resolved, ok := resolver(g.interner.Resolve(s), g.interner.Resolve(t))
		if !ok {
			return intern.Handle{}, false
		}
		return g.interner.Intern(resolved), true
	}

	if isOneToOne(kind) {
		graph, ok := g.oneOne[kind]
		if !ok {
			return
		}
		var updates []struct {
			source, newTarget intern.Handle
		}
		for _, e := range graph.AllEntries() {
			if nt, ok := wrap(e.Source, e.Target); ok {
				updates = append(updates, struct{ source, newTarget intern.Handle }{e.Source, nt})
			}
		}
		for _, u := range updates {
			graph.UpdateTarget(u.source, u.newTarget)
		}
		return
	}
	if graph, ok := g.oneMany[kind]; ok {
		graph.ResolveTargets(wrap)
	}
}

func (g *RelationshipGraph) lookupLocked(s string) (intern.Handle, bool) {
	// Interning here (rather than only resolving) keeps queries by name
	// valid even before any edge referencing it has been added — the handle
	// is allocated either way the first time a caller mentions the string.
	return g.interner.Intern(s), true
}

func (g *RelationshipGraph) resolveAll(handles []intern.Handle) []string {
	out := make([]string, len(handles))
	for i, h := range handles {
		out[i] = g.interner.Resolve(h)
	}
	return out
}
