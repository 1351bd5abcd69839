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

// Relation kind constants name every edge type an adapter can record. They
// are plain strings rather than an enum because RelationshipGraph keys its
// internal per-kind graphs on exactly these strings, and a new KerML/SysML
// relationship a future dialect adapter wants to record needs no API
// change to add.
const (
	Specialization      = "specialization"
	Redefinition        = "redefinition"
	Subsetting          = "subsetting"
	Typing              = "typing"
	ReferenceSubsetting = "reference_subsetting"
	CrossSubsetting     = "cross_subsetting"
	Satisfy             = "satisfy"
	Perform             = "perform"
	Exhibit             = "exhibit"
	Include             = "include"
)

// oneToOneKinds lists the relation kinds backed by a OneToOne graph rather
// than the OneToMany default. Typing is the only one-to-one relation;
// specialization, subsetting, redefinition, reference-subsetting, and the
// dialect-specific relations are all one-to-many.
var oneToOneKinds = map[string]bool{
	Typing: true,
}

func isOneToOne(kind string) bool { return oneToOneKinds[kind] }

// relationLabels gives each relation kind a human-readable label for
// display surfaces (hover text, diagram edges).
var relationLabels = map[string]string{
	Specialization:      "specializes",
	Redefinition:        "redefines",
	Subsetting:          "subsets",
	Typing:              "typed by",
	ReferenceSubsetting: "references",
	CrossSubsetting:     "cross-subsets",
	Satisfy:             "satisfies",
	Perform:             "performs",
	Exhibit:             "exhibits",
	Include:             "includes",
}

// RelationLabel returns kind's display label, or kind itself when no label
// is registered.
func RelationLabel(kind string) string {
	if label, ok := relationLabels[kind]; ok {
		return label
	}
	return kind
}
