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

// Package diag holds the semantic-error taxonomy adapters and the resolver
// report. Nothing in the semantic core ever returns one of these as a Go
// error for control flow — collecting them into a slice and continuing is
// the point, since one bad element in a 2000-element file should not stop
// the other 1999 from being indexed.
package diag

import (
	"strings"

	"github.com/kerml-tools/syster/internal/semantic/source"
)

// Kind discriminates the handful of problems the semantic core can detect
// on its own, independent of any parse error a front-end already reported.
type Kind int

const (
	// ParseError wraps a problem the front-end parser itself reported,
	// carried through so query services have one place to look for "why is
	// this file red".
	ParseError Kind = iota
	// DuplicateSymbol: two declarations in the same scope claim the same
	// name. The table keeps the first and rejects the second.
	DuplicateSymbol
	// UndefinedReference: a name could not be resolved by any of the
	// resolver's four lookup strategies.
	UndefinedReference
	// InvalidType: a usage's type annotation resolved to a symbol that
	// cannot serve as a type (e.g. a Package or a Feature).
	InvalidType
	// Cycle: a specialization/subsetting/redefinition chain loops back on
	// itself.
	Cycle
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "parse_error"
	case DuplicateSymbol:
		return "duplicate_symbol"
	case UndefinedReference:
		return "undefined_reference"
	case InvalidType:
		return "invalid_type"
	case Cycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, located in source.
type Diagnostic struct {
	Kind    Kind
	Message string
	File    string
	Span    source.Span
}

func (d Diagnostic) Error() string { return d.Message }

// New constructs a Diagnostic.
func New(kind Kind, message, file string, span source.Span) Diagnostic {
	return Diagnostic{Kind: kind, Message: message, File: file, Span: span}
}

// DuplicateDefinition builds a DuplicateSymbol diagnostic for name,
// re-declared at span in file.
func DuplicateDefinition(name, file string, span source.Span) Diagnostic {
	return New(DuplicateSymbol, "duplicate definition: "+name, file, span)
}

// Undefined builds an UndefinedReference diagnostic for name, mentioned at
// span in file.
func Undefined(name, file string, span source.Span) Diagnostic {
	return New(UndefinedReference, "undefined reference: "+name, file, span)
}

// NotAType builds an InvalidType diagnostic: name resolved, but to a symbol
// of kindLabel (a package, a feature) that cannot type anything.
func NotAType(name, kindLabel, file string, span source.Span) Diagnostic {
	return New(InvalidType, "invalid type: "+name+" is a "+kindLabel+", not a type", file, span)
}

// CircularChain builds a Cycle diagnostic for one participant in a
// relation loop, naming the full chain so the user can see the loop from
// any of its members.
func CircularChain(relation string, chain []string, file string, span source.Span) Diagnostic {
	return New(Cycle, "circular "+relation+": "+strings.Join(chain, " -> "), file, span)
}
