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
	"github.com/kerml-tools/syster/internal/semantic/symtab"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// HierarchyItem is one node in a type- or call-hierarchy tree: enough to
// both identify the symbol and let the editor show/jump to it.
type HierarchyItem struct {
	QualifiedName string
	Kind          string
	Location      Location
}

func itemFor(sym *symtab.Symbol) HierarchyItem {
	item := HierarchyItem{QualifiedName: sym.QualifiedName, Kind: symbolKindLabel(sym)}
	if sym.HasSpan {
		item.Location = Location{File: sym.SourceFile, Span: *sym.Span}
	}
	return item
}

// PrepareTypeHierarchy resolves the symbol at (file, pos) as the root of a
// type-hierarchy request.
func PrepareTypeHierarchy(ws *workspace.Workspace, file string, pos source.Position) (HierarchyItem, bool) {
	ws.RLock()
	defer ws.RUnlock()
	sym, ok := locateSymbol(ws, file, pos)
	if !ok {
		return HierarchyItem{}, false
	}
	return itemFor(sym), true
}

// Supertypes walks item's specialization edges forward: the types item
// directly specializes.
func Supertypes(ws *workspace.Workspace, item HierarchyItem) []HierarchyItem {
	ws.RLock()
	defer ws.RUnlock()
	targets, _ := ws.RelationshipGraph().GetTargets(graph.Specialization, item.QualifiedName)
	return resolveItems(ws, targets)
}

// Subtypes walks item's specialization edges in reverse: the types that
// directly specialize item.
func Subtypes(ws *workspace.Workspace, item HierarchyItem) []HierarchyItem {
	ws.RLock()
	defer ws.RUnlock()
	sources := ws.RelationshipGraph().GetSources(graph.Specialization, item.QualifiedName)
	return resolveItems(ws, sources)
}

func resolveItems(ws *workspace.Workspace, qualifiedNames []string) []HierarchyItem {
	var out []HierarchyItem
	for _, qn := range qualifiedNames {
		if sym, ok := ws.SymbolTable().LookupQualified(qn); ok {
			out = append(out, itemFor(sym))
		} else {
			out = append(out, HierarchyItem{QualifiedName: qn})
		}
	}
	return out
}
