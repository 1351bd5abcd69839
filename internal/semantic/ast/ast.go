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

// Package ast defines the typed tree an adapter walks: a dialect-neutral
// contract for "here is a KerML or SysML file, already parsed" that the
// semantic core builds on without ever parsing source text itself. Nothing
// in this module owns a grammar or a lexer — a real deployment plugs a
// pest/ANTLR/hand-written parser in front of this package and translates
// its concrete syntax tree into these types once, at the boundary.
package ast

import "github.com/kerml-tools/syster/internal/semantic/source"

// Dialect distinguishes the two concrete syntaxes this module understands.
type Dialect int

const (
	DialectKerML Dialect = iota
	DialectSysML
)

func (d Dialect) String() string {
	if d == DialectSysML {
		return "sysml"
	}
	return "kerml"
}

// Ref is a named reference to another element as it appeared in source: the
// text that named it, plus the span that text occupied, so the adapter can
// both record a relationship edge and a reference-index entry from the
// same value.
type Ref struct {
	Name string
	Span source.Span
}

// Relationships collects every relation an Element's declaration can carry
// inline, e.g. `part myCar : Car :> Vehicle;` has both a TypedBy and a
// Subsets entry. Every field is optional; the zero value means "none of
// this kind appeared".
type Relationships struct {
	Specializes []Ref
	Redefines   []Ref
	Subsets     []Ref
	TypedBy     *Ref
	References  []Ref
	Crosses     []Ref
	Performs    []Ref
	Satisfies   []Ref
	Exhibits    []Ref
	Includes    []Ref
}

// None reports whether no relationship was recorded.
func (r Relationships) None() bool {
	return len(r.Specializes) == 0 && len(r.Redefines) == 0 && len(r.Subsets) == 0 &&
		r.TypedBy == nil && len(r.References) == 0 && len(r.Crosses) == 0 &&
		len(r.Performs) == 0 && len(r.Satisfies) == 0 && len(r.Exhibits) == 0 && len(r.Includes) == 0
}

// Node is the common header every Element carries: its own name (if any),
// source span, and nested body elements.
type Node struct {
	Name string
	Span source.Span
	Body []Element
}

// Element is the sum type over everything that can appear at any nesting
// level of a file: packages, imports, comments, classifiers, features,
// definitions, usages, and aliases.
type Element interface {
	isElement()
	Header() Node
}

// Package introduces a namespace.
type Package struct {
	Node
}

func (Package) isElement()     {}
func (p Package) Header() Node { return p.Node }

// Import is an `import` statement.
type Import struct {
	Node
	Path        string
	IsRecursive bool
}

func (Import) isElement()     {}
func (i Import) Header() Node { return i.Node }

// Comment is a documentation or annotation comment attached to the
// enclosing scope, kept so hover/document-link can surface it.
type Comment struct {
	Node
	Content string
}

func (Comment) isElement()     {}
func (c Comment) Header() Node { return c.Node }

// Classifier is a KerML classifier declaration (class, struct, behavior,
// association, interaction, metaclass, datatype).
type Classifier struct {
	Node
	Kind          string // one of the symtab.ClassifierKind string values
	IsAbstract    bool
	Relationships Relationships
}

func (Classifier) isElement()     {}
func (c Classifier) Header() Node { return c.Node }

// Feature is a KerML feature declaration (attribute or reference slot).
type Feature struct {
	Node
	IsDerived     bool
	IsReadonly    bool
	Relationships Relationships
}

func (Feature) isElement()     {}
func (f Feature) Header() Node { return f.Node }

// Definition is a SysML definition-level declaration.
type Definition struct {
	Node
	Kind          string // one of the symtab.DefinitionKind string values
	Relationships Relationships
}

func (Definition) isElement()     {}
func (d Definition) Header() Node { return d.Node }

// Usage is a SysML usage-level declaration.
type Usage struct {
	Node
	Kind          string // one of the symtab.UsageKind string values
	Relationships Relationships
}

func (Usage) isElement()     {}
func (u Usage) Header() Node { return u.Node }

// Alias is an `alias X for Y` declaration.
type Alias struct {
	Node
	Target Ref
}

func (Alias) isElement()     {}
func (a Alias) Header() Node { return a.Node }

// File is a single parsed translation unit.
type File struct {
	Path    string
	Dialect Dialect
	Root    []Element
}
