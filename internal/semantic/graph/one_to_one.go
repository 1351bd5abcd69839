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

// OneToOne is a directed graph where a source has at most one target (the
// typing relation is the canonical example: a usage is typed by exactly one
// definition at a time). Adding a new target for a source that already has
// one reassigns it, fixing up the reverse index rather than accumulating a
// second edge.
type OneToOne struct {
	forward       map[intern.Handle]located
	reverse       map[intern.Handle][]located
	sourcesByFile map[intern.Handle][]intern.Handle
}

// NewOneToOne constructs an empty graph.
func NewOneToOne() *OneToOne {
	return &OneToOne{
		forward:       make(map[intern.Handle]located),
		reverse:       make(map[intern.Handle][]located),
		sourcesByFile: make(map[intern.Handle][]intern.Handle),
	}
}

// Add sets source's target, replacing any prior one.
func (g *OneToOne) Add(source, target intern.Handle, file intern.Handle, hasFile bool, span RefLocation, hasSpan bool) {
	if old, ok := g.forward[source]; ok {
		g.removeFromReverse(old.peer, source)
	}
	hasLoc := hasFile && hasSpan
	g.forward[source] = located{peer: target, loc: span, hasLoc: hasLoc}
	g.reverse[target] = append(g.reverse[target], located{peer: source, loc: span, hasLoc: hasLoc})
	if hasFile {
		g.sourcesByFile[file] = append(g.sourcesByFile[file], source)
	}
}

// GetTarget returns source's target, if any.
func (g *OneToOne) GetTarget(source intern.Handle) (intern.Handle, bool) {
	l, ok := g.forward[source]
	return l.peer, ok
}

// GetTargetWithLocation is GetTarget plus the edge's recorded location.
func (g *OneToOne) GetTargetWithLocation(source intern.Handle) (TargetLocation, bool) {
	l, ok := g.forward[source]
	if !ok {
		return TargetLocation{}, false
	}
	return TargetLocation{Peer: l.peer, Location: l.loc, HasLocation: l.hasLoc}, true
}

// HasRelationship reports whether source has a target.
func (g *OneToOne) HasRelationship(source intern.Handle) bool {
	_, ok := g.forward[source]
	return ok
}

// GetSources returns every source whose target is target.
func (g *OneToOne) GetSources(target intern.Handle) []intern.Handle {
	entries := g.reverse[target]
	out := make([]intern.Handle, len(entries))
	for i, e := range entries {
		out[i] = e.peer
	}
	return out
}

// GetSourcesWithLocations is GetSources plus each edge's location.
func (g *OneToOne) GetSourcesWithLocations(target intern.Handle) []TargetLocation {
	entries := g.reverse[target]
	out := make([]TargetLocation, len(entries))
	for i, e := range entries {
		out[i] = TargetLocation{Peer: e.peer, Location: e.loc, HasLocation: e.hasLoc}
	}
	return out
}

// RemoveSource drops source's edge, if any.
func (g *OneToOne) RemoveSource(source intern.Handle) {
	if old, ok := g.forward[source]; ok {
		g.removeFromReverse(old.peer, source)
	}
	delete(g.forward, source)
}

// RemoveByFile drops every edge recorded against file.
func (g *OneToOne) RemoveByFile(file intern.Handle) {
	sources, ok := g.sourcesByFile[file]
	if !ok {
		return
	}
	delete(g.sourcesByFile, file)
	for _, source := range sources {
		if old, ok := g.forward[source]; ok {
			g.removeFromReverse(old.peer, source)
		}
		delete(g.forward, source)
	}
}

func (g *OneToOne) removeFromReverse(target, source intern.Handle) {
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

// AllEntries returns every (source, target) edge, with its location.
func (g *OneToOne) AllEntries() []Entry {
	out := make([]Entry, 0, len(g.forward))
	for source, l := range g.forward {
		out = append(out, Entry{Source: source, Target: l.peer, Location: l.loc, HasLocation: l.hasLoc})
	}
	return out
}

// UpdateTarget reassigns source's target to newTarget, preserving the
// original edge's location, fixing up the reverse index.
func (g *OneToOne) UpdateTarget(source, newTarget intern.Handle) {
	old, ok := g.forward[source]
	if !ok {
		return
	}
	g.removeFromReverse(old.peer, source)
	g.forward[source] = located{peer: newTarget, loc: old.loc, hasLoc: old.hasLoc}
	g.reverse[newTarget] = append(g.reverse[newTarget], located{peer: source, loc: old.loc, hasLoc: old.hasLoc})
}
