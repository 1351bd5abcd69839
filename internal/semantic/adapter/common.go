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

// Package adapter walks a parsed ast.File and populates a symbol table,
// relationship graph, and reference index from it. There is one adapter
// per dialect (KerML's classifiers/features, SysML's definitions/usages)
// since the two have different element vocabularies, but both share the
// namespace-tracking, symbol-inserting, and relationship-recording
// machinery in this file — only the per-element-kind visit logic differs.
package adapter

import (
	"fmt"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/diag"
	"github.com/kerml-tools/syster/internal/semantic/graph"
	"github.com/kerml-tools/syster/internal/semantic/refindex"
	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
)

// common holds the state shared by the KerML and SysML adapters: the
// tables being populated, the current namespace path (for qualifying
// names), and accumulated diagnostics.
type common struct {
	symtab   *symtab.SymbolTable
	graph    *graph.RelationshipGraph
	refindex *refindex.Index

	file      string
	namespace []string
	errors    []diag.Diagnostic
}

func newCommon(file string, tab *symtab.SymbolTable, g *graph.RelationshipGraph, ri *refindex.Index) *common {
	return &common{symtab: tab, graph: g, refindex: ri, file: file}
}

func (c *common) qualify(name string) string {
	if len(c.namespace) == 0 {
		return name
	}
	qn := c.namespace[0]
	for _, n := range c.namespace[1:] {
		qn += "::" + n
	}
	return qn + "::" + name
}

func (c *common) enterNamespace(name string) {
	c.namespace = append(c.namespace, name)
	c.symtab.EnterScope()
}

func (c *common) exitNamespace() {
	if len(c.namespace) == 0 {
		return
	}
	c.namespace = c.namespace[:len(c.namespace)-1]
	// The root scope never has a parent; exitNamespace is only called to
	// balance a prior enterNamespace, so this error cannot occur in
	// practice, but a broken caller should see it rather than silently
	// desync the scope cursor from the namespace stack.
	if err := c.symtab.ExitScope(); err != nil {
		c.errors = append(c.errors, diag.New(diag.ParseError, err.Error(), c.file, source.Span{}))
	}
}

func (c *common) insertSymbol(sym symtab.Symbol) {
	if c.symtab.Insert(sym) {
		c.errors = append(c.errors, diag.DuplicateDefinition(sym.Name, sym.SourceFile, *sym.Span))
	}
}

// recordRefs records every Ref in refs as both a relationship-graph edge
// of the given kind and a reference-index entry from sourceQName.
func (c *common) recordRefs(kind, sourceQName string, refs []ast.Ref) {
	for _, r := range refs {
		c.graph.Add(kind, sourceQName, r.Name, c.file, r.Span, true)
		c.refindex.AddReference(sourceQName, r.Name, c.file, r.Span)
	}
}

func (c *common) recordOne(kind, sourceQName string, ref *ast.Ref) {
	if ref == nil {
		return
	}
	c.graph.Add(kind, sourceQName, ref.Name, c.file, ref.Span, true)
	c.refindex.AddReference(sourceQName, ref.Name, c.file, ref.Span)
}

func (c *common) visitImport(imp ast.Import) {
	c.symtab.AddImport(c.file, symtab.NewImport(imp.Path, imp.IsRecursive))
	// Recorded so find-references and document-links can surface the
	// import statement itself as a mention of the path it names.
	c.symtab.AddImportReference(imp.Path, symtab.RefLocation{File: c.file, Span: imp.Span})
}

func (c *common) visitComment(ast.Comment) {
	// Comments carry no symbol or relationship of their own; document-link
	// and hover read them directly off the AST node they're attached to,
	// not from the symbol table.
}

func (c *common) visitAlias(a ast.Alias) {
	name := a.Header().Name
	if name == "" {
		return
	}
	qn := c.qualify(name)
	span := a.Header().Span
	c.insertSymbol(symtab.Symbol{
		Header: symtab.Header{Name: name, QualifiedName: qn, SourceFile: c.file, Span: &span, HasSpan: true, ScopeID: c.symtab.CurrentScope()},
		Kind:   symtab.Alias{Target: a.Target.Name},
	})
	c.graph.Add(graph.Specialization, qn, a.Target.Name, c.file, a.Target.Span, true)
	c.refindex.AddReference(qn, a.Target.Name, c.file, a.Target.Span)
}

// recordRelationships records every relation an ast.Relationships payload
// carries, per the relation-to-graph-kind mapping: typing is a one-to-one
// edge (a usage is typed by one thing at a time); specialization,
// redefinition, subsetting, reference-subsetting, and cross-subsetting are
// all one-to-many.
func (c *common) recordRelationships(qn string, rel ast.Relationships) {
	c.recordRefs(graph.Specialization, qn, rel.Specializes)
	c.recordRefs(graph.Redefinition, qn, rel.Redefines)
	c.recordRefs(graph.Subsetting, qn, rel.Subsets)
	c.recordOne(graph.Typing, qn, rel.TypedBy)
	c.recordRefs(graph.ReferenceSubsetting, qn, rel.References)
	c.recordRefs(graph.CrossSubsetting, qn, rel.Crosses)
	c.recordRefs(graph.Perform, qn, rel.Performs)
	c.recordRefs(graph.Satisfy, qn, rel.Satisfies)
	c.recordRefs(graph.Exhibit, qn, rel.Exhibits)
	c.recordRefs(graph.Include, qn, rel.Includes)
}

func (c *common) errorsOrNil() []diag.Diagnostic {
	if len(c.errors) == 0 {
		return nil
	}
	return c.errors
}

func unexpectedElement(el ast.Element) error {
	return fmt.Errorf("adapter: unexpected element type %T", el)
}
