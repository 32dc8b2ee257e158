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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrambledZipfianInRange(t *testing.T) {
	r := testRand()
	min, max := int64(100), int64(1099)
	g, err := NewScrambledZipfian(min, max, ZipfianConstant)
	require.NoError(t, err)

	for i := 0; i < 100000; i++ {
		n := g.Next(r)
		require.GreaterOrEqual(t, n, min)
		require.LessOrEqual(t, n, max)
	}
}

func TestScrambledZipfianDeterministicPermutation(t *testing.T) {
	// The rank permutation is a pure function of the rank and the bounds, so
	// two instances fed the same random sequence must produce identical
	// values.
	a, err := NewScrambledZipfian(0, 999, ZipfianConstant)
	require.NoError(t, err)
	b, err := NewScrambledZipfian(0, 999, ZipfianConstant)
	require.NoError(t, err)

	ra := rand.New(rand.NewSource(7))
	rb := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		require.Equal(t, a.Next(ra), b.Next(rb))
	}
}

func mode(counts map[int64]int) int64 {
	var best int64
	bestCount := -1
	for v, c := range counts {
		if c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

func TestScrambledZipfianScattersPopularKeys(t *testing.T) {
	r := testRand()

	a, err := NewScrambledZipfian(0, 9999, ZipfianConstant)
	require.NoError(t, err)
	b, err := NewScrambledZipfian(0, 19999, ZipfianConstant)
	require.NoError(t, err)

	countsA := make(map[int64]int)
	countsB := make(map[int64]int)
	for i := 0; i < 200000; i++ {
		countsA[a.Next(r)]++
		countsB[b.Next(r)]++
	}

	hotA := mode(countsA)
	hotB := mode(countsB)

	// The popular keys are scattered by the hash, not pinned to the low end
	// of the range, and two different configurations disagree about which
	// key is hot.
	assert.NotEqual(t, int64(0), hotA)
	assert.NotEqual(t, hotA, hotB)
}
