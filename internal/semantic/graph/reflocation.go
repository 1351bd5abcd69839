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

// Package graph holds the relationship-graph family: directed one-to-many
// (specialization, subsetting), directed one-to-one (typing), and
// symmetric (e.g. "connected to") edge stores, each keeping forward,
// reverse, and per-file indices in step so every lookup direction and every
// invalidation stays O(1) relative to the edges actually touched.
//
// Unlike symtab, these graphs key everything on intern.Handle rather than
// raw strings: a workspace's relationship graphs fan out across far more
// edges than it has symbols, so a RelationshipGraph owns its own
// *intern.Interner to keep edge lookups cheap.
package graph

import (
	"github.com/kerml-tools/syster/internal/semantic/intern"
	"github.com/kerml-tools/syster/internal/semantic/source"
)

// RefLocation is the optional (file, span) attached to an edge: present
// when the edge came from an actual source mention, absent for edges an
// adapter synthesizes without a specific span to blame (rare, but the
// resolver's global-fallback rewrite of unresolved names is one case).
type RefLocation struct {
	File intern.Handle
	Span source.Span
}

// located is the payload every forward/reverse slot stores: a peer handle
// plus whether a location was actually recorded for it, which matters
// because "no location" is a legitimate state, not a missing value we want
// to zero-compare past.
type located struct {
	peer   intern.Handle
	loc    RefLocation
	hasLoc bool
}
