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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func TestCounter(t *testing.T) {
	r := testRand()
	c := NewCounter(100)

	for i := int64(100); i < 200; i++ {
		assert.Equal(t, i, c.Next(r))
		assert.Equal(t, i, c.Last())
	}
}

func TestSequentialWrapsAround(t *testing.T) {
	r := testRand()
	s, err := NewSequential(10, 12)
	require.NoError(t, err)

	got := make([]int64, 0, 7)
	for i := 0; i < 7; i++ {
		got = append(got, s.Next(r))
	}
	assert.Equal(t, []int64{10, 11, 12, 10, 11, 12, 10}, got)
	assert.Equal(t, int64(10), s.Last())
}

func TestSequentialInvalidRange(t *testing.T) {
	_, err := NewSequential(10, 10)
	assert.Error(t, err)

	_, err = NewSequential(10, 5)
	assert.Error(t, err)
}

func TestConstant(t *testing.T) {
	r := testRand()
	c := NewConstant(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, int64(42), c.Next(r))
	}
	assert.Equal(t, int64(42), c.Last())
}
