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

func TestUniformInRange(t *testing.T) {
	r := testRand()
	min, max := int64(100), int64(1000)
	g, err := NewUniform(min, max)
	require.NoError(t, err)

	sum := int64(0)
	for i := 0; i < 100000; i++ {
		n := g.Next(r)
		require.GreaterOrEqual(t, n, min)
		require.LessOrEqual(t, n, max)
		assert.Equal(t, n, g.Last())
		sum += n
	}

	mean := float64(sum) / 100000.0
	expected := float64(min+max) / 2.0
	assert.InDelta(t, expected, mean, 0.02*expected)
}

func TestUniformInvalidRange(t *testing.T) {
	_, err := NewUniform(10, 10)
	assert.Error(t, err)

	_, err = NewUniform(10, 1)
	assert.Error(t, err)
}
