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

// KerML populates a symbol table, relationship graph, and reference index
// from a KerML ast.File: packages, classifiers, features, imports,
// comments, and aliases.
type KerML struct{ *common }

// NewKerML constructs a KerML adapter writing into the given tables.
func NewKerML(tab *symtab.SymbolTable, g *graph.RelationshipGraph, ri *refindex.Index) *KerML {
	return &KerML{common: newCommon("", tab, g, ri)}
}

// Populate walks file and records everything it declares.
func (a *KerML) Populate(file ast.File) []diag.Diagnostic {
	a.common = newCommon(file.Path, a.symtab, a.graph, a.refindex)
	for _, el := range file.Root {
		a.visit(el)
	}
	return a.errorsOrNil()
}

func (a *KerML) visit(el ast.Element) {
	switch v := el.(type) {
	case ast.Package:
		a.visitPackage(v)
	case ast.Classifier:
		a.visitClassifier(v)
	case ast.Feature:
		a.visitFeature(v)
	case ast.Import:
		a.visitImport(v)
	case ast.Comment:
		a.visitComment(v)
	case ast.Alias:
		a.visitAlias(v)
	}
}

func (a *KerML) visitPackage(p ast.Package) {
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

func (a *KerML) visitClassifier(cl ast.Classifier) {
	if cl.Name == "" {
		return
	}
	qn := a.qualify(cl.Name)
	span := cl.Span
	a.insertSymbol(symtab.Symbol{
		Header: symtab.Header{Name: cl.Name, QualifiedName: qn, SourceFile: a.file, Span: &span, HasSpan: true, ScopeID: a.symtab.CurrentScope()},
		Kind:   symtab.Classifier{ClassifierKind: symtab.ClassifierKind(cl.Kind), IsAbstract: cl.IsAbstract},
	})
	a.recordRelationships(qn, cl.Relationships)

	a.enterNamespace(cl.Name)
	for _, child := range cl.Body {
		a.visit(child)
	}
	a.exitNamespace()
}

func (a *KerML) visitFeature(f ast.Feature) {
	if f.Name == "" {
		return
	}
	qn := a.qualify(f.Name)
	span := f.Span
	typeName := ""
	if f.Relationships.TypedBy != nil {
		typeName = f.Relationships.TypedBy.Name
	}
	a.insertSymbol(symtab.Symbol{
		Header: symtab.Header{Name: f.Name, QualifiedName: qn, SourceFile: a.file, Span: &span, HasSpan: true, ScopeID: a.symtab.CurrentScope()},
		Kind:   symtab.Feature{FeatureType: typeName, IsDerived: f.IsDerived, IsReadonly: f.IsReadonly},
	})
	a.recordRelationships(qn, f.Relationships)

	a.enterNamespace(f.Name)
	for _, child := range f.Body {
		a.visit(child)
	}
	a.exitNamespace()
}
