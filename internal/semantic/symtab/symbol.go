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

package symtab

import "github.com/kerml-tools/syster/internal/semantic/source"

// ScopeID identifies a scope in a SymbolTable's scope vector. Scope 0 is
// always the root.
type ScopeID int

// RefLocation is a (file, span) pair recording where a symbol was
// mentioned, used both for the symbol's own append-only reference list and
// for reverse import-reference lookups.
type RefLocation struct {
	File string
	Span source.Span
}

// ClassifierKind enumerates the KerML classifier kinds a Classifier symbol
// can carry.
type ClassifierKind string

const (
	ClassifierClass       ClassifierKind = "class"
	ClassifierStruct      ClassifierKind = "struct"
	ClassifierBehavior    ClassifierKind = "behavior"
	ClassifierAssociation ClassifierKind = "association"
	ClassifierInteraction ClassifierKind = "interaction"
	ClassifierMetaclass   ClassifierKind = "metaclass"
	ClassifierDataType    ClassifierKind = "datatype"
)

// DefinitionKind enumerates the SysML definition kinds a Definition symbol
// can carry.
type DefinitionKind string

const (
	DefinitionPart             DefinitionKind = "part"
	DefinitionAction           DefinitionKind = "action"
	DefinitionRequirement      DefinitionKind = "requirement"
	DefinitionPort             DefinitionKind = "port"
	DefinitionItem             DefinitionKind = "item"
	DefinitionAttribute        DefinitionKind = "attribute"
	DefinitionConcern          DefinitionKind = "concern"
	DefinitionCase             DefinitionKind = "case"
	DefinitionAnalysisCase     DefinitionKind = "analysis_case"
	DefinitionVerificationCase DefinitionKind = "verification_case"
	DefinitionUseCase          DefinitionKind = "use_case"
	DefinitionView             DefinitionKind = "view"
	DefinitionViewpoint        DefinitionKind = "viewpoint"
	DefinitionRendering        DefinitionKind = "rendering"
)

// UsageKind enumerates the SysML usage kinds a Usage symbol can carry.
type UsageKind string

const (
	UsageTypePart        UsageKind = "part"
	UsageTypeAction      UsageKind = "action"
	UsageTypeRequirement UsageKind = "requirement"
	UsageTypePort        UsageKind = "port"
	UsageTypeItem        UsageKind = "item"
	UsageTypeAttribute   UsageKind = "attribute"
	UsageTypeConcern     UsageKind = "concern"
	UsageTypeCase        UsageKind = "case"
	UsageTypeView        UsageKind = "view"
)

// Header holds the fields common to every Symbol variant.
type Header struct {
	Name          string
	QualifiedName string
	ScopeID       ScopeID
	SourceFile    string // empty when the symbol has no source file
	Span          *source.Span
	HasSpan       bool
	References    []RefLocation
}

// AddReference appends a reference location to this symbol's append-only
// reference list, used by the reference collector.
func (h *Header) AddReference(locs ...RefLocation) {
	h.References = append(h.References, locs...)
}

// Kind discriminates the Symbol sum type. Implemented by every symbol
// variant below.
type Kind interface {
	isSymbolKind()
	// TypeReference returns the name this symbol's type annotation or
	// alias target refers to, if any; used by the resolver's "validate
	// types" pass. Empty string means "no type reference".
	TypeReference() string
	// IsType reports whether a symbol of this kind can serve as the type
	// of a usage (an invalid-type usage).
	IsType() bool
}

// Symbol is a tagged union over the variants this module describes: every
// symbol has a Header plus variant-specific payload in Kind.
type Symbol struct {
	Header
	Kind Kind
}

// KindLabel renders the symbol's variant as a short human-readable label:
// the specific classifier/definition/usage kind when there is one, the
// variant's own name otherwise.
func (s *Symbol) KindLabel() string {
	switch k := s.Kind.(type) {
	case Package:
		return "package"
	case Classifier:
		return string(k.ClassifierKind)
	case Definition:
		return string(k.DefinitionKind)
	case Usage:
		return string(k.UsageKind)
	case Feature:
		return "feature"
	case Alias:
		return "alias"
	case Import:
		return "import"
	default:
		return "symbol"
	}
}

// --- Variants ---

// Package is an empty-payload namespace-introducing symbol.
type Package struct{}

func (Package) isSymbolKind()         {}
func (Package) TypeReference() string { return "" }
func (Package) IsType() bool          { return false }

// Classifier is a KerML type-like symbol (class, struct, behavior, ...).
type Classifier struct {
	ClassifierKind ClassifierKind
	IsAbstract     bool
}

func (Classifier) isSymbolKind()         {}
func (Classifier) TypeReference() string { return "" }
func (Classifier) IsType() bool          { return true }

// Definition is a SysML definition-level symbol.
type Definition struct {
	DefinitionKind DefinitionKind
	SemanticRole   string // empty when absent
}

func (Definition) isSymbolKind()         {}
func (Definition) TypeReference() string { return "" }
func (Definition) IsType() bool          { return true }

// Usage is a SysML usage-level symbol: an instance-like occurrence typed by
// some Definition or Classifier.
type Usage struct {
	UsageKind    UsageKind
	UsageType    string // unresolved or resolved type name, empty if untyped
	SemanticRole string
}

func (Usage) isSymbolKind()           {}
func (u Usage) TypeReference() string { return u.UsageType }
func (Usage) IsType() bool            { return false }

// Feature is a KerML feature (attribute/reference slot) symbol.
type Feature struct {
	FeatureType string // empty when untyped
	IsDerived   bool
	IsReadonly  bool
}

func (Feature) isSymbolKind()           {}
func (f Feature) TypeReference() string { return f.FeatureType }
func (Feature) IsType() bool            { return false }

// Alias is a `alias X for Y` style symbol whose meaning is entirely
// "look up Target instead".
type Alias struct {
	Target string // qualified name of the aliased symbol
}

func (Alias) isSymbolKind()           {}
func (a Alias) TypeReference() string { return a.Target }
func (Alias) IsType() bool            { return false }

// Import is a symbol recording an import statement: `import path` or
// `import path::*` / `import path::**`.
type Import struct {
	Path        string
	IsRecursive bool
	IsNamespace bool // derived from the ::* / ::** suffix
}

func (Import) isSymbolKind()         {}
func (Import) TypeReference() string { return "" }
func (Import) IsType() bool          { return false }

// NewImport builds an Import symbol, deriving IsNamespace from path's
// suffix.
func NewImport(path string, isRecursive bool) Import {
	return Import{
		Path:        path,
		IsRecursive: isRecursive,
		IsNamespace: hasNamespaceSuffix(path),
	}
}

func hasNamespaceSuffix(path string) bool {
	return len(path) >= 3 && path[len(path)-3:] == "::*" ||
		len(path) >= 4 && path[len(path)-4:] == "::**"
}

// NamespacePrefix strips a trailing ::* or ::** suffix from an import path,
// returning the namespace being imported from.
func NamespacePrefix(path string) string {
	switch {
	case len(path) >= 4 && path[len(path)-4:] == "::**":
		return path[:len(path)-4]
	case len(path) >= 3 && path[len(path)-3:] == "::*":
		return path[:len(path)-3]
	default:
		return path
	}
}
