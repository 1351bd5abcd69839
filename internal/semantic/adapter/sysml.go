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

package adapter

import (
	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/diag"
	"github.com/kerml-tools/syster/internal/semantic/graph"
	"github.com/kerml-tools/syster/internal/semantic/refindex"
	"github.com/kerml-tools/syster/internal/semantic/symtab"
)

// SysML populates a symbol table, relationship graph, and reference index
// from a SysML ast.File: packages, definitions, usages, imports, comments,
// and aliases.
type SysML struct{ *common }

// NewSysML constructs a SysML adapter writing into the given tables.
func NewSysML(tab *symtab.SymbolTable, g *graph.RelationshipGraph, ri *refindex.Index) *SysML {
	return &SysML{common: newCommon("", tab, g, ri)}
}

// Populate walks file and records everything it declares. A non-nil
// diagnostics slice does not mean population stopped early: every element
// is still visited, and the caller decides what to do with each reported
// problem.
func (a *SysML) Populate(file ast.File) []diag.Diagnostic {
	a.common = newCommon(file.Path, a.symtab, a.graph, a.refindex)
	for _, el := range file.Root {
		a.visit(el)
	}
	return a.errorsOrNil()
}

func (a *SysML) visit(el ast.Element) {
	switch v := el.(type) {
	case ast.Package:
		a.visitPackage(v)
	case ast.Definition:
		a.visitDefinition(v)
	case ast.Usage:
		a.visitUsage(v)
	case ast.Import:
		a.visitImport(v)
	case ast.Comment:
		a.visitComment(v)
	case ast.Alias:
		a.visitAlias(v)
	}
}

func (a *SysML) visitPackage(p ast.Package) {
	if p.Name == "" {
		for _, child := range p.Body {
			a.visit(child)
		}
		return
	}
	qn := a.qualify(p.Name)
	span := p.Span
	a.insertSymbol(symtab.Symbol{
		Header: symtab.Header{Name: p.Name, QualifiedName: qn, SourceFile: a.file, Span: &span, HasSpan: true, ScopeID: a.symtab.CurrentScope()},
		Kind:   symtab.Package{},
	})
	a.enterNamespace(p.Name)
	for _, child := range p.Body {
		a.visit(child)
	}
	a.exitNamespace()
}

func (a *SysML) visitDefinition(d ast.Definition) {
	if d.Name == "" {
		return
	}
	qn := a.qualify(d.Name)
	span := d.Span
	a.insertSymbol(symtab.Symbol{
		Header: symtab.Header{Name: d.Name, QualifiedName: qn, SourceFile: a.file, Span: &span, HasSpan: true, ScopeID: a.symtab.CurrentScope()},
		Kind:   symtab.Definition{DefinitionKind: symtab.DefinitionKind(d.Kind)},
	})
	a.recordRelationships(qn, d.Relationships)

	a.enterNamespace(d.Name)
	for _, child := range d.Body {
		a.visit(child)
	}
	a.exitNamespace()
}

func (a *SysML) visitUsage(u ast.Usage) {
	if u.Name == "" {
		return
	}
	qn := a.qualify(u.Name)
	span := u.Span
	typeName := ""
	if u.Relationships.TypedBy != nil {
		typeName = u.Relationships.TypedBy.Name
	}
	a.insertSymbol(symtab.Symbol{
		Header: symtab.Header{Name: u.Name, QualifiedName: qn, SourceFile: a.file, Span: &span, HasSpan: true, ScopeID: a.symtab.CurrentScope()},
		Kind:   symtab.Usage{UsageKind: symtab.UsageKind(u.Kind), UsageType: typeName},
	})
	a.recordRelationships(qn, u.Relationships)

	a.enterNamespace(u.Name)
	for _, child := range u.Body {
		a.visit(child)
	}
	a.exitNamespace()
}

// recordRelationships records every relation an ast.Relationships payload
// carries. See common.go's recordRelationships for the kind mapping; both
// dialect adapters share it since the relationship vocabulary itself
// doesn't differ between a SysML usage and a KerML feature.
func (a *SysML) recordRelationships(qn string, rel ast.Relationships) {
	a.common.recordRelationships(qn, rel)
}
