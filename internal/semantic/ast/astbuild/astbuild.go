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

// Package astbuild builds ast.File values by hand for tests, so adapter and
// workspace tests don't need a real parser in front of them. Element
// helpers take the span from the caller, Ref places a reference at a fixed
// span on line 0, and RefAt takes an explicit one, which is enough to
// exercise span-dependent behavior (folding ranges, position lookups)
// without coupling tests to real source text.
package astbuild

import (
	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/source"
)

// File starts a new fixture for path under dialect.
func File(path string, dialect ast.Dialect) *FileBuilder {
	return &FileBuilder{file: ast.File{Path: path, Dialect: dialect}}
}

// FileBuilder accumulates top-level elements for one ast.File.
type FileBuilder struct {
	file     ast.File
	nextLine uint32
}

func (b *FileBuilder) span() source.Span {
	s := source.NewSpan(source.NewPosition(b.nextLine, 0), source.NewPosition(b.nextLine, 80))
	b.nextLine++
	return s
}

// Add appends an already-built element (e.g. one produced by Definition()
// or Classifier() below).
func (b *FileBuilder) Add(el ast.Element) *FileBuilder {
	b.file.Root = append(b.file.Root, el)
	return b
}

// Build returns the finished file.
func (b *FileBuilder) Build() ast.File { return b.file }

// Ref builds an ast.Ref to name at the fixed span (0,0)-(0,len(name)).
func Ref(name string) ast.Ref {
	return ast.Ref{Name: name, Span: source.NewSpan(source.NewPosition(0, 0), source.NewPosition(0, uint32(len(name))))}
}

// RefAt builds an ast.Ref to name at an explicit span, for tests that care
// exactly where the reference sits.
func RefAt(name string, span source.Span) ast.Ref {
	return ast.Ref{Name: name, Span: span}
}

// Package builds a Package element.
func Package(name string, span source.Span, body ...ast.Element) ast.Package {
	return ast.Package{Node: ast.Node{Name: name, Span: span, Body: body}}
}

// Import builds an Import element.
func Import(path string, recursive bool, span source.Span) ast.Import {
	return ast.Import{Node: ast.Node{Span: span}, Path: path, IsRecursive: recursive}
}

// Classifier builds a Classifier element.
func Classifier(name, kind string, span source.Span, rel ast.Relationships, body ...ast.Element) ast.Classifier {
	return ast.Classifier{Node: ast.Node{Name: name, Span: span, Body: body}, Kind: kind, Relationships: rel}
}

// Feature builds a Feature element.
func Feature(name string, span source.Span, rel ast.Relationships, body ...ast.Element) ast.Feature {
	return ast.Feature{Node: ast.Node{Name: name, Span: span, Body: body}, Relationships: rel}
}

// Definition builds a Definition element.
func Definition(name, kind string, span source.Span, rel ast.Relationships, body ...ast.Element) ast.Definition {
	return ast.Definition{Node: ast.Node{Name: name, Span: span, Body: body}, Kind: kind, Relationships: rel}
}

// Usage builds a Usage element.
func Usage(name, kind string, span source.Span, rel ast.Relationships, body ...ast.Element) ast.Usage {
	return ast.Usage{Node: ast.Node{Name: name, Span: span, Body: body}, Kind: kind, Relationships: rel}
}
