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
	"github.com/kerml-tools/syster/internal/semantic/graph"
	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// PrepareCallHierarchy resolves the symbol at (file, pos) as the root of a
// call-hierarchy request. Same shape as PrepareTypeHierarchy, but the walk
// it anchors runs over the "perform" relation rather than specialization.
func PrepareCallHierarchy(ws *workspace.Workspace, file string, pos source.Position) (HierarchyItem, bool) {
	return PrepareTypeHierarchy(ws, file, pos)
}

// IncomingCalls returns every element that performs item — the reverse
// walk over the perform relation.
func IncomingCalls(ws *workspace.Workspace, item HierarchyItem) []HierarchyItem {
	ws.RLock()
	defer ws.RUnlock()
	sources := ws.RelationshipGraph().GetSources(graph.Perform, item.QualifiedName)
	return resolveItems(ws, sources)
}

// OutgoingCalls returns every element item performs — the forward walk
// over the perform relation.
func OutgoingCalls(ws *workspace.Workspace, item HierarchyItem) []HierarchyItem {
	ws.RLock()
	defer ws.RUnlock()
	targets, _ := ws.RelationshipGraph().GetTargets(graph.Perform, item.QualifiedName)
	return resolveItems(ws, targets)
}
