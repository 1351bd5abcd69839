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

// Symmetric is an undirected relation: adding (a, b) makes a see b among
// its related elements and vice versa, with no forward/reverse distinction.
// Used for relations like "conjugates" where there is no natural source and
// target, only two peers.
type Symmetric struct {
	related map[intern.Handle][]intern.Handle
}

// NewSymmetric constructs an empty graph.
func NewSymmetric() *Symmetric {
	return &Symmetric{related: make(map[intern.Handle][]intern.Handle)}
}

// Add records that a and b are related, in both directions, deduplicated.
func (g *Symmetric) Add(a, b intern.Handle) {
	g.addDirected(a, b)
	g.addDirected(b, a)
}

func (g *Symmetric) addDirected(from, to intern.Handle) {
	for _, existing := range g.related[from] {
		if existing == to {
			return
		}
	}
	g.related[from] = append(g.related[from], to)
}

// GetRelated returns every element related to element, or (nil, false) if
// none are recorded.
func (g *Symmetric) GetRelated(element intern.Handle) ([]intern.Handle, bool) {
	related, ok := g.related[element]
	return related, ok
}

// RemoveElement drops element from the relation entirely, in both
// directions.
func (g *Symmetric) RemoveElement(element intern.Handle) {
	peers := g.related[element]
	delete(g.related, element)
	for _, peer := range peers {
		entries := g.related[peer]
		kept := entries[:0]
		for _, e := range entries {
			if e != element {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(g.related, peer)
		} else {
			g.related[peer] = kept
		}
	}
}
