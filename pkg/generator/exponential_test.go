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

func TestExponentialPercentile(t *testing.T) {
	r := testRand()
	g := NewExponential(95, 1000)

	below := 0
	total := 100000
	for i := 0; i < total; i++ {
		n := g.Next(r)
		require.GreaterOrEqual(t, n, int64(0))
		if n < 1000 {
			below++
		}
	}

	assert.InDelta(t, 0.95, float64(below)/float64(total), 0.01)
}

func TestExponentialMean(t *testing.T) {
	r := testRand()
	g := NewExponentialWithMean(100)

	sum := int64(0)
	total := 100000
	for i := 0; i < total; i++ {
		sum += g.Next(r)
	}

	assert.InDelta(t, 100, float64(sum)/float64(total), 5)
}
