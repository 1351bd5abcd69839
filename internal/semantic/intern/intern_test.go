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

package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDeduplicates(t *testing.T) {
	in := New()
	a := in.Intern("Vehicle")
	b := in.Intern("Vehicle")
	c := in.Intern("Car")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, in.Len())
}

func TestResolveRoundTrips(t *testing.T) {
	in := New()
	h := in.Intern("pkg::sub::Engine")
	assert.Equal(t, "pkg::sub::Engine", in.Resolve(h))
}

func TestResolveZeroHandlePanics(t *testing.T) {
	in := New()
	assert.Panics(t, func() { in.Resolve(Handle{}) })
}

func TestZeroReportsOnlyTheZeroHandle(t *testing.T) {
	in := New()
	assert.True(t, Handle{}.Zero())
	assert.False(t, in.Intern("x").Zero())
}

func TestLessOrdersByBytes(t *testing.T) {
	in := New()
	// Interned out of lexicographic order on purpose: ordering must come
	// from the bytes, not from handle allocation order.
	z := in.Intern("zebra")
	a := in.Intern("aardvark")

	assert.True(t, in.Less(a, z))
	assert.False(t, in.Less(z, a))
}

func TestInternIsSafeForConcurrentUse(t *testing.T) {
	in := New()
	var wg sync.WaitGroup
	handles := make([]Handle, 8)
	for i := range handles {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			handles[i] = in.Intern("shared")
		}()
	}
	wg.Wait()

	require.Equal(t, 1, in.Len())
	for _, h := range handles {
		assert.Equal(t, handles[0], h)
	}
}
