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

import "github.com/kerml-tools/syster/internal/semantic/intern"

type fileEntry struct {
	source intern.Handle
	target intern.Handle
}

// OneToMany is a directed graph where a source may point at many distinct
// targets (specialization, subsetting, and every other "may have several"
// relation). Adding the same (source, target) pair twice is a no-op: the
// forward list is deduplicated by target.
type OneToMany struct {
	forward       map[intern.Handle][]located
	reverse       map[intern.Handle][]located
	entriesByFile map[intern.Handle][]fileEntry
}

// NewOneToMany constructs an empty graph.
func NewOneToMany() *OneToMany {
	return &OneToMany{
		forward:       make(map[intern.Handle][]located),
		reverse:       make(map[intern.Handle][]located),
		entriesByFile: make(map[intern.Handle][]fileEntry),
	}
}

// Add records source -> target. file/hasFile and span/hasSpan should be
// supplied together; an edge synthesized without a source mention passes
// hasFile=false.
func (g *OneToMany) Add(source, target intern.Handle, file intern.Handle, hasFile bool, span RefLocation, hasSpan bool) {
	for _, existing := range g.forward[source] {
		if existing.peer == target {
			return
		}
	}
	hasLoc := hasFile && hasSpan
	entry := located{peer: target, loc: span, hasLoc: hasLoc}
	g.forward[source] = append(g.forward[source], entry)
	g.reverse[target] = append(g.reverse[target], located{peer: source, loc: span, hasLoc: hasLoc})
	if hasFile {
		g.entriesByFile[file] = append(g.entriesByFile[file], fileEntry{source: source, target: target})
	}
}

// GetTargets returns every target source points at, or (nil, false) if
// source has no recorded edges.
func (g *OneToMany) GetTargets(source intern.Handle) ([]intern.Handle, bool) {
	entries, ok := g.forward[source]
	if !ok {
		return nil, false
	}
	out := make([]intern.Handle, len(entries))
	for i, e := range entries {
		out[i] = e.peer
	}
	return out, true
}

// GetTargetsWithLocations is GetTargets plus each edge's RefLocation, when
// one was recorded.
func (g *OneToMany) GetTargetsWithLocations(source intern.Handle) ([]TargetLocation, bool) {
	entries, ok := g.forward[source]
	if !ok {
		return nil, false
	}
	out := make([]TargetLocation, len(entries))
	for i, e := range entries {
		out[i] = TargetLocation{Peer: e.peer, Location: e.loc, HasLocation: e.hasLoc}
	}
	return out, true
}

// TargetLocation pairs a peer handle with its optional source location.
type TargetLocation struct {
	Peer        intern.Handle
	Location    RefLocation
	HasLocation bool
}

// GetSources returns every source with an edge pointing at target.
func (g *OneToMany) GetSources(target intern.Handle) []intern.Handle {
	entries := g.reverse[target]
	out := make([]intern.Handle, len(entries))
	for i, e := range entries {
		out[i] = e.peer
	}
	return out
}

// GetSourcesWithLocations is GetSources plus each edge's location.
func (g *OneToMany) GetSourcesWithLocations(target intern.Handle) []TargetLocation {
	entries := g.reverse[target]
	out := make([]TargetLocation, len(entries))
	for i, e := range entries {
		out[i] = TargetLocation{Peer: e.peer, Location: e.loc, HasLocation: e.hasLoc}
	}
	return out
}

// CountSources reports how many sources point at target.
func (g *OneToMany) CountSources(target intern.Handle) int {
	return len(g.reverse[target])
}

// RemoveSource drops every edge originating at source.
func (g *OneToMany) RemoveSource(source intern.Handle) {
	targets, ok := g.forward[source]
	if !ok {
		return
	}
	for _, t := range targets {
		g.removeFromReverse(t.peer, source)
	}
	delete(g.forward, source)
	for file, entries := range g.entriesByFile {
		kept := entries[:0]
		for _, e := range entries {
			if e.source != source {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(g.entriesByFile, file)
		} else {
			g.entriesByFile[file] = kept
		}
	}
}

// RemoveByFile drops every edge recorded against file.
func (g *OneToMany) RemoveByFile(file intern.Handle) {
	entries, ok := g.entriesByFile[file]
	if !ok {
		return
	}
	delete(g.entriesByFile, file)
	for _, e := range entries {
		g.removeFromForward(e.source, e.target)
		g.removeFromReverse(e.target, e.source)
	}
}

func (g *OneToMany) removeFromForward(source, target intern.Handle) {
	entries := g.forward[source]
	kept := entries[:0]
	for _, e := range entries {
		if e.peer != target {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(g.forward, source)
	} else {
		g.forward[source] = kept
	}
}

func (g *OneToMany) removeFromReverse(target, source intern.Handle) {
	entries := g.reverse[target]
	kept := entries[:0]
	for _, e := range entries {
		if e.peer != source {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(g.reverse, target)
	} else {
		g.reverse[target] = kept
	}
}

// HasPath reports whether to is reachable from from by following forward
// edges, via a DFS that tolerates cycles.
func (g *OneToMany) HasPath(from, to intern.Handle) bool {
	if from == to {
		return true
	}
	visited := make(map[intern.Handle]bool)
	stack := []intern.Handle{from}
	for len(stack) > 0 {
		n := len(stack) - 1
		current := stack[n]
		stack = stack[:n]
		if current == to {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		if targets, ok := g.GetTargets(current); ok {
			stack = append(stack, targets...)
		}
	}
	return false
}

// FindCycles returns every distinct cycle reachable from any source node,
// as the handle sequence starting at the cycle's earliest-visited member.
func (g *OneToMany) FindCycles() [][]intern.Handle {
	var cycles [][]intern.Handle
	visited := make(map[intern.Handle]bool)
	var path []intern.Handle

	var dfs func(node intern.Handle)
	dfs = func(node intern.Handle) {
		for _, p := range path {
			if p == node {
				idx := -1
				for i, q := range path {
					if q == node {
						idx = i
						break
					}
				}
				cycle := append([]intern.Handle(nil), path[idx:]...)
				cycles = append(cycles, cycle)
				return
			}
		}
		if visited[node] {
			return
		}
		path = append(path, node)
		if targets, ok := g.GetTargets(node); ok {
			for _, t := range targets {
				dfs(t)
			}
		}
		visited[node] = true
		path = path[:len(path)-1]
	}

	for source := range g.forward {
		if !visited[source] {
			dfs(source)
		}
	}
	return cycles
}

// HasCircularDependency reports whether following edges out of element ever
// leads back to element.
func (g *OneToMany) HasCircularDependency(element intern.Handle) bool {
	visited := make(map[intern.Handle]bool)
	var dfs func(current intern.Handle) bool
	dfs = func(current intern.Handle) bool {
		if visited[current] {
			return false
		}
		visited[current] = true
		targets, ok := g.GetTargets(current)
		if !ok {
			return false
		}
		for _, t := range targets {
			if t == element {
				return true
			}
			if dfs(t) {
				return true
			}
		}
		return false
	}
	return dfs(element)
}

// Entry is one (source, target, location) triple, used by AllEntries and
// by ResolveTargets.
type Entry struct {
	Source      intern.Handle
	Target      intern.Handle
	Location    RefLocation
	HasLocation bool
}

// AllEntries returns every edge currently stored.
func (g *OneToMany) AllEntries() []Entry {
	var out []Entry
	for source, targets := range g.forward {
		for _, t := range targets {
			out = append(out, Entry{Source: source, Target: t.peer, Location: t.loc, HasLocation: t.hasLoc})
		}
	}
	return out
}

// ResolveTargets rewrites targets in place: for each (source, target) edge,
// resolver is asked whether target should become something else; when it
// returns (newTarget, true), the forward and reverse indices are updated to
// point at newTarget while keeping the original edge's location.
func (g *OneToMany) ResolveTargets(resolver func(source, target intern.Handle) (intern.Handle, bool)) {
	type update struct {
		source, oldTarget, newTarget intern.Handle
		loc                          RefLocation
		hasLoc                       bool
	}
	var updates []update
	for source, targets := range g.forward {
		for _, t := range targets {
			if newTarget, ok := resolver(source, t.peer); ok {
				updates = append(updates, update{source: source, oldTarget: t.peer, newTarget: newTarget, loc: t.loc, hasLoc: t.hasLoc})
			}
		}
	}
	for _, u := range updates {
		entries := g.forward[u.source]
		for i, e := range entries {
			if e.peer == u.oldTarget {
				entries[i].peer = u.newTarget
			}
		}
		g.forward[u.source] = entries
		g.removeFromReverse(u.oldTarget, u.source)
		g.reverse[u.newTarget] = append(g.reverse[u.newTarget], located{peer: u.source, loc: u.loc, hasLoc: u.hasLoc})
	}
}
