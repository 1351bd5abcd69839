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

// Package refindex is a bidirectional index of name references distinct
// from the relationship graphs: a graph edge means "this symbol
// specializes/types/satisfies that one", already resolved to a relation
// kind, while a ReferenceIndex entry means only "this name was mentioned
// here", independent of which relation (or none at all, for an unresolved
// name) the mention turned out to express. Find-references and
// find-specializations read from here; type-hierarchy and call-hierarchy
// read from the relationship graphs instead.
//
// Unlike the graph package, ReferenceIndex keys on plain qualified-name
// strings rather than interned handles — it holds one entry per reference
// site, not one edge per distinct (source, target) pair, so the access
// pattern never amortizes an interning cost the way the relationship
// graphs do.
package refindex

import (
	"sort"

	"github.com/kerml-tools/syster/internal/semantic/source"
)

// Reference is a single mention of targetName, found inside sourceQName's
// declaration, at a specific file and span.
type Reference struct {
	SourceQName string
	TargetName  string
	File        string
	Span        source.Span
}

// Index is a bidirectional reference store: reverse (target -> references)
// for "find references", forward (source -> target names) for "find
// specializations"/hover.
type Index struct {
	reverse      map[string][]Reference
	forward      map[string]map[string]struct{}
	sourceToFile map[string]string
}

// New constructs an empty Index.
func New() *Index {
	return &Index{
		reverse:      make(map[string][]Reference),
		forward:      make(map[string]map[string]struct{}),
		sourceToFile: make(map[string]string),
	}
}

// AddReference records that sourceQName's declaration, at (file, span),
// mentions targetName. A reference with no file (file == "") is not
// recorded: the index only ever answers "where", so an entry with nowhere
// to point would be useless noise, not a placeholder worth keeping.
func (ix *Index) AddReference(sourceQName, targetName, file string, span source.Span) {
	if file == "" {
		return
	}
	ref := Reference{SourceQName: sourceQName, TargetName: targetName, File: file, Span: span}
	for _, existing := range ix.reverse[targetName] {
		if existing == ref {
			return
		}
	}
	ix.reverse[targetName] = append(ix.reverse[targetName], ref)

	targets, ok := ix.forward[sourceQName]
	if !ok {
		targets = make(map[string]struct{})
		ix.forward[sourceQName] = targets
	}
	targets[targetName] = struct{}{}

	ix.sourceToFile[sourceQName] = file
}

// GetReferences returns every recorded reference to target.
func (ix *Index) GetReferences(target string) []Reference {
	return append([]Reference(nil), ix.reverse[target]...)
}

// GetTargets returns the distinct target names sourceQName references,
// sorted for deterministic output.
func (ix *Index) GetTargets(sourceQName string) []string {
	targets := ix.forward[sourceQName]
	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// GetSources returns the distinct qualified names that reference target.
func (ix *Index) GetSources(target string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ref := range ix.reverse[target] {
		if !seen[ref.SourceQName] {
			seen[ref.SourceQName] = true
			out = append(out, ref.SourceQName)
		}
	}
	return out
}

// HasReferences reports whether target has any recorded reference.
func (ix *Index) HasReferences(target string) bool {
	return len(ix.reverse[target]) > 0
}

// SourceQNames returns every qualified name with at least one recorded
// outgoing reference, sorted for deterministic iteration (diagram export).
func (ix *Index) SourceQNames() []string {
	out := make([]string, 0, len(ix.forward))
	for s := range ix.forward {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Targets returns every target name with at least one reference.
func (ix *Index) Targets() []string {
	out := make([]string, 0, len(ix.reverse))
	for t := range ix.reverse {
		out = append(out, t)
	}
	return out
}

// RemoveReferencesFromFile drops every reference whose File is filePath,
// and stops tracking any source that was declared in filePath.
func (ix *Index) RemoveReferencesFromFile(filePath string) {
	for target, refs := range ix.reverse {
		kept := refs[:0]
		for _, r := range refs {
			if r.File != filePath {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(ix.reverse, target)
		} else {
			ix.reverse[target] = kept
		}
	}

	var toRemove []string
	for source, file := range ix.sourceToFile {
		if file == filePath {
			toRemove = append(toRemove, source)
		}
	}
	for _, s := range toRemove {
		delete(ix.sourceToFile, s)
		delete(ix.forward, s)
	}
}

// RemoveSource drops every reference originating from sourceQName.
func (ix *Index) RemoveSource(sourceQName string) {
	delete(ix.sourceToFile, sourceQName)
	delete(ix.forward, sourceQName)
	for target, refs := range ix.reverse {
		kept := refs[:0]
		for _, r := range refs {
			if r.SourceQName != sourceQName {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(ix.reverse, target)
		} else {
			ix.reverse[target] = kept
		}
	}
}

// Clear empties the index.
func (ix *Index) Clear() {
	ix.reverse = make(map[string][]Reference)
	ix.forward = make(map[string]map[string]struct{})
	ix.sourceToFile = make(map[string]string)
}

// TargetCount returns the number of distinct targets with a reference.
func (ix *Index) TargetCount() int { return len(ix.reverse) }

// ReferenceCount returns the total number of recorded references.
func (ix *Index) ReferenceCount() int {
	n := 0
	for _, refs := range ix.reverse {
		n += len(refs)
	}
	return n
}

// GetReferencesInFile returns every reference whose File is filePath,
// across every target, for semantic-token style highlighting.
func (ix *Index) GetReferencesInFile(filePath string) []Reference {
	var out []Reference
	for _, refs := range ix.reverse {
		for _, r := range refs {
			if r.File == filePath {
				out = append(out, r)
			}
		}
	}
	return out
}
