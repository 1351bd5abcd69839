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

// Package source holds the coordinate primitives shared by every other
// semantic package: 0-indexed Positions and half-open Spans. Unlike the
// editor-facing protocol.Position (which is also 0-indexed, conveniently),
// these types have no dependency on any LSP or parser library, so the core
// can be exercised without either.
package source

import "fmt"

// Position is a 0-indexed line/column coordinate.
type Position struct {
	Line   uint32
	Column uint32
}

// NewPosition constructs a Position.
func NewPosition(line, column uint32) Position {
	return Position{Line: line, Column: column}
}

// Compare orders two positions, returning <0, 0, or >0.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool { return p.Compare(other) < 0 }

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open [Start, End) range over Positions.
type Span struct {
	Start Position
	End   Position
}

// NewSpan constructs a Span.
func NewSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// Contains reports whether p falls within the span: at or after Start, and
// strictly before End.
func (s Span) Contains(p Position) bool {
	return !p.Before(s.Start) && p.Before(s.End)
}

// MultiLine reports whether the span covers more than one line, which is
// what folding-range and "is this a foldable symbol" checks care about.
func (s Span) MultiLine() bool {
	return s.End.Line > s.Start.Line
}

// Join returns the smallest span containing both a and b.
func Join(a, b Span) Span {
	start, end := a.Start, a.End
	if b.Start.Before(start) {
		start = b.Start
	}
	if end.Before(b.End) {
		end = b.End
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
