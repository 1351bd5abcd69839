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

func TestFindCyclesReportsLoopMembers(t *testing.T) {
	g := New()
	g.Add(Specialization, "A", "B", "", source.Span{}, false)
	g.Add(Specialization, "B", "C", "", source.Span{}, false)
	g.Add(Specialization, "C", "A", "", source.Span{}, false)

	cycles := g.FindCycles(Specialization)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, cycles[0])
}

func TestFindCyclesEmptyOnDAG(t *testing.T) {
	g := New()
	g.Add(Specialization, "Car", "Vehicle", "", source.Span{}, false)
	g.Add(Specialization, "Vehicle", "Thing", "", source.Span{}, false)

	assert.Empty(t, g.FindCycles(Specialization))
	assert.Empty(t, g.FindCycles(Typing), "one-to-one kinds never report cycles")
}

func TestHasCircularDependency(t *testing.T) {
	g := New()
	g.Add(Subsetting, "a", "b", "", source.Span{}, false)
	g.Add(Subsetting, "b", "a", "", source.Span{}, false)
	g.Add(Subsetting, "c", "a", "", source.Span{}, false)

	assert.True(t, g.HasCircularDependency(Subsetting, "a"))
	assert.True(t, g.HasCircularDependency(Subsetting, "b"))
	assert.False(t, g.HasCircularDependency(Subsetting, "c"))
	assert.False(t, g.HasCircularDependency(Subsetting, "unknown"))
}

func TestGetTargetsWithLocationsCarriesSpans(t *testing.T) {
	g := New()
	span := source.NewSpan(source.NewPosition(3, 10), source.NewPosition(3, 17))
	g.Add(Specialization, "Car", "Vehicle", "a.sysml", span, true)
	g.Add(Specialization, "Car", "Machine", "", source.Span{}, false)

	refs := g.GetTargetsWithLocations(Specialization, "Car")
	require.Len(t, refs, 2)
	assert.Equal(t, "Vehicle", refs[0].Target)
	assert.True(t, refs[0].HasLocation)
	assert.Equal(t, "a.sysml", refs[0].File)
	assert.Equal(t, span, refs[0].Span)
	assert.Equal(t, "Machine", refs[1].Target)
	assert.False(t, refs[1].HasLocation)
}

func TestGetTargetsWithLocationsOneToOne(t *testing.T) {
	g := New()
	span := source.NewSpan(source.NewPosition(1, 8), source.NewPosition(1, 15))
	g.Add(Typing, "myCar", "Vehicle", "a.sysml", span, true)

	refs := g.GetTargetsWithLocations(Typing, "myCar")
	require.Len(t, refs, 1)
	assert.Equal(t, "Vehicle", refs[0].Target)
	assert.Equal(t, span, refs[0].Span)
}

func TestGetFormattedRelationships(t *testing.T) {
	g := New()
	g.Add(Specialization, "Car", "Vehicle", "", source.Span{}, false)
	g.Add(Specialization, "Car", "Machine", "", source.Span{}, false)
	g.Add(Typing, "Car", "CarDef", "", source.Span{}, false)

	lines := g.GetFormattedRelationships("Car")
	assert.Equal(t, []string{
		"specializes: Vehicle, Machine",
		"typed by: CarDef",
	}, lines)

	assert.Empty(t, g.GetFormattedRelationships("Nothing"))
}

// add ; remove_source restores the original state, in every index.
func TestRemoveForSourceRoundTrip(t *testing.T) {
	g := New()
	g.Add(Specialization, "Car", "Vehicle", "a.sysml", testSpan(), true)
	g.RemoveForSource("Car")

	_, ok := g.GetTargets(Specialization, "Car")
	assert.False(t, ok)
	assert.Empty(t, g.GetSources(Specialization, "Vehicle"))
	assert.Empty(t, g.GetEdgesInFile("a.sysml"))
}

// Forward and reverse indices stay mirror images under mutation.
func TestForwardReverseConsistency(t *testing.T) {
	g := New()
	g.Add(Subsetting, "a", "x", "f.sysml", testSpan(), true)
	g.Add(Subsetting, "b", "x", "f.sysml", testSpan(), true)
	g.Add(Subsetting, "a", "y", "g.sysml", testSpan(), true)

	assert.ElementsMatch(t, []string{"a", "b"}, g.GetSources(Subsetting, "x"))

	g.RemoveForFile("f.sysml")

	targets, ok := g.GetTargets(Subsetting, "a")
	require.True(t, ok)
	assert.Equal(t, []string{"y"}, targets)
	assert.Empty(t, g.GetSources(Subsetting, "x"))
	assert.Equal(t, []string{"a"}, g.GetSources(Subsetting, "y"))
}

func TestSymmetricRelationSeenFromBothSides(t *testing.T) {
	g := New()
	g.AddSymmetric("conjugation", "PortA", "PortB")

	related, ok := g.GetSymmetric("conjugation", "PortA")
	require.True(t, ok)
	assert.Equal(t, []string{"PortB"}, related)

	related, ok = g.GetSymmetric("conjugation", "PortB")
	require.True(t, ok)
	assert.Equal(t, []string{"PortA"}, related)

	g.RemoveForSource("PortA")
	_, ok = g.GetSymmetric("conjugation", "PortB")
	assert.False(t, ok)
}

func TestRelationshipTypesListsAllocatedKinds(t *testing.T) {
	g := New()
	g.Add(Specialization, "a", "b", "", source.Span{}, false)
	g.Add(Typing, "a", "b", "", source.Span{}, false)
	g.AddSymmetric("conjugation", "a", "b")

	assert.Equal(t, []string{"conjugation", Specialization, Typing}, g.RelationshipTypes())
}
