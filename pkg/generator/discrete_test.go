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
)

func TestDiscreteProportions(t *testing.T) {
	r := testRand()
	g := NewDiscrete()
	g.Add(0.95, 1)
	g.Add(0.05, 2)

	counts := make(map[int64]int)
	total := 1000000
	for i := 0; i < total; i++ {
		counts[g.Next(r)]++
	}

	assert.InDelta(t, 0.95, float64(counts[1])/float64(total), 0.01)
	assert.InDelta(t, 0.05, float64(counts[2])/float64(total), 0.01)
}

func TestDiscreteZeroWeight(t *testing.T) {
	r := testRand()
	g := NewDiscrete()
	g.Add(0, 1)
	g.Add(0, 2)

	for i := 0; i < 100; i++ {
		assert.Equal(t, int64(0), g.Next(r))
	}
}

func TestDiscreteEmpty(t *testing.T) {
	r := testRand()
	g := NewDiscrete()
	assert.Equal(t, int64(0), g.Next(r))
}
