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
	"sort"

	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// DiagramRequest restricts diagram data to a single file, or asks for the
// whole workspace when File is nil.
type DiagramRequest struct {
	File *string
}

// DiagramNode is one element worth drawing: a package, classifier,
// definition, or usage.
type DiagramNode struct {
	QualifiedName string
	Kind          string
	DefiningFile  string
	Span          source.Span
}

// DiagramEdge is one reference-index forward edge rendered as a diagram
// relationship between two named elements.
type DiagramEdge struct {
	Source string
	Target string
}

// DiagramResponse is the shape a diagram rendering front-end consumes.
type DiagramResponse struct {
	Nodes []DiagramNode
	Edges []DiagramEdge
}

// Diagram enumerates symbols (restricted to req.File when set) as nodes,
// and reference-index forward edges as relationships between them.
func Diagram(ws *workspace.Workspace, req DiagramRequest) DiagramResponse {
	ws.RLock()
	defer ws.RUnlock()

	var symbols []*symtab.Symbol
	if req.File != nil {
		symbols = ws.SymbolTable().GetSymbolsForFile(*req.File)
	} else {
		symbols = ws.SymbolTable().AllSymbols()
	}

	nodeSet := make(map[string]bool)
	var resp DiagramResponse
	for _, sym := range symbols {
		if !isDiagramNode(sym.Kind) {
			continue
		}
		node := DiagramNode{QualifiedName: sym.QualifiedName, Kind: symbolKindLabel(sym), DefiningFile: sym.SourceFile}
		if sym.HasSpan {
			node.Span = *sym.Span
		}
		resp.Nodes = append(resp.Nodes, node)
		nodeSet[sym.QualifiedName] = true
	}
	sort.Slice(resp.Nodes, func(i, j int) bool { return resp.Nodes[i].QualifiedName < resp.Nodes[j].QualifiedName })

	for _, source := range ws.ReferenceIndex().SourceQNames() {
		if !nodeSet[source] {
			continue
		}
		for _, target := range ws.ReferenceIndex().GetTargets(source) {
			resp.Edges = append(resp.Edges, DiagramEdge{Source: source, Target: target})
		}
	}

	return resp
}

func isDiagramNode(kind symtab.Kind) bool {
	switch kind.(type) {
	case symtab.Package, symtab.Classifier, symtab.Definition, symtab.Usage:
		return true
	default:
		return false
	}
}
