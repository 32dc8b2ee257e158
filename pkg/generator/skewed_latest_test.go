// Copyright 2024 The geobench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkewedLatestFavorsRecentKeys(t *testing.T) {
	r := testRand()

	basis := NewAcknowledgedCounter(0)
	for i := 0; i < 1000; i++ {
		basis.Acknowledge(basis.Next(r))
	}
	require.Equal(t, int64(999), basis.Last())

	g := NewSkewedLatest(basis)

	counts := make(map[int64]int)
	for i := 0; i < 100000; i++ {
		n := g.Next(r)
		require.GreaterOrEqual(t, n, int64(0))
		require.LessOrEqual(t, n, int64(999))
		counts[n]++
	}

	// The newest keys take the head of the distribution.
	assert.Greater(t, counts[999], counts[500])
	assert.Greater(t, counts[999], counts[0])
}

func TestSkewedLatestTracksBoundary(t *testing.T) {
	r := testRand()

	basis := NewAcknowledgedCounter(0)
	for i := 0; i < 10; i++ {
		basis.Acknowledge(basis.Next(r))
	}
	g := NewSkewedLatest(basis)

	for i := 0; i < 1000; i++ {
		require.LessOrEqual(t, g.Next(r), basis.Last())
	}

	// Advance the boundary; draws must follow it.
	for i := 0; i < 1000; i++ {
		basis.Acknowledge(basis.Next(r))
	}
	seenBeyondOld := false
	for i := 0; i < 10000; i++ {
		n := g.Next(r)
		require.LessOrEqual(t, n, basis.Last())
		if n > 9 {
			seenBeyondOld = true
		}
	}
	assert.True(t, seenBeyondOld)
}
