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

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerml-tools/syster/internal/semantic/source"
)

func testSpan() source.Span {
	return source.NewSpan(source.NewPosition(0, 0), source.NewPosition(0, 5))
}

func TestOneToManySpecializationChain(t *testing.T) {
	g := New()
	g.Add(Specialization, "Car", "Vehicle", "a.sysml", testSpan(), true)
	g.Add(Specialization, "Vehicle", "Thing", "a.sysml", testSpan(), true)

	assert.True(t, g.HasTransitivePath(Specialization, "Car", "Thing"))
	assert.False(t, g.HasTransitivePath(Specialization, "Thing", "Car"))

	targets, ok := g.GetTargets(Specialization, "Car")
	require.True(t, ok)
	assert.Equal(t, []string{"Vehicle"}, targets)

	sources := g.GetSources(Specialization, "Vehicle")
	assert.Equal(t, []string{"Car"}, sources)
}

func TestOneToManyDedupesByTarget(t *testing.T) {
	g := New()
	g.Add(Subsetting, "a", "b", "f.sysml", testSpan(), true)
	g.Add(Subsetting, "a", "b", "f.sysml", testSpan(), true)

	targets, ok := g.GetTargets(Subsetting, "a")
	require.True(t, ok)
	assert.Len(t, targets, 1)
}

func TestOneToOneTypingReassigns(t *testing.T) {
	g := New()
	g.Add(Typing, "part1", "PartDef", "a.sysml", testSpan(), true)
	g.Add(Typing, "part1", "OtherDef", "a.sysml", testSpan(), true)

	targets, ok := g.GetTargets(Typing, "part1")
	require.True(t, ok)
	assert.Equal(t, []string{"OtherDef"}, targets)

	// Reverse index should no longer show part1 under PartDef.
	assert.NotContains(t, g.GetSources(Typing, "PartDef"), "part1")
	assert.Contains(t, g.GetSources(Typing, "OtherDef"), "part1")
}

func TestRemoveForFileClearsDirectedEdges(t *testing.T) {
	g := New()
	g.Add(Specialization, "Car", "Vehicle", "a.sysml", testSpan(), true)
	g.Add(Specialization, "Truck", "Vehicle", "b.sysml", testSpan(), true)

	g.RemoveForFile("a.sysml")

	_, ok := g.GetTargets(Specialization, "Car")
	assert.False(t, ok)
	assert.Equal(t, []string{"Truck"}, g.GetSources(Specialization, "Vehicle"))
}

func TestCircularDependencyToleratesCycles(t *testing.T) {
	g := New()
	g.Add(Perform, "A", "B", "", source.Span{}, false)
	g.Add(Perform, "B", "C", "", source.Span{}, false)
	g.Add(Perform, "C", "A", "", source.Span{}, false)

	graph := g.oneManyFor(Perform)
	aHandle := g.interner.Intern("A")
	assert.True(t, graph.HasCircularDependency(aHandle))

	cycles := graph.FindCycles()
	require.NotEmpty(t, cycles)
}

func TestResolveTargetsRewritesOneToMany(t *testing.T) {
	g := New()
	g.Add(Subsetting, "a", "unresolved::Vehicle", "f.sysml", testSpan(), true)

	g.ResolveTargets(Subsetting, func(source, target string) (string, bool) {
		if target == "unresolved::Vehicle" {
			return "pkg::Vehicle", true
		}
		return "", false
	})

	targets, ok := g.GetTargets(Subsetting, "a")
	require.True(t, ok)
	assert.Equal(t, []string{"pkg::Vehicle"}, targets)
}
