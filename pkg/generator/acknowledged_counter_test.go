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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcknowledgedCounterSkippedPrefix(t *testing.T) {
	r := testRand()
	a := NewAcknowledgedCounter(0)

	for i := int64(0); i < 10; i++ {
		assert.Equal(t, i, a.Next(r))
	}

	// Acknowledge out of order, skipping 0: the boundary cannot move.
	a.Acknowledge(1)
	a.Acknowledge(2)
	a.Acknowledge(3)
	assert.Equal(t, int64(-1), a.Last())

	// Filling the gap advances past the whole contiguous prefix.
	a.Acknowledge(0)
	assert.Equal(t, int64(3), a.Last())
}

func TestAcknowledgedCounterIdempotent(t *testing.T) {
	r := testRand()
	a := NewAcknowledgedCounter(0)

	for i := 0; i < 5; i++ {
		a.Next(r)
	}

	a.Acknowledge(0)
	a.Acknowledge(0)
	assert.Equal(t, int64(0), a.Last())

	a.Acknowledge(1)
	a.Acknowledge(1)
	assert.Equal(t, int64(1), a.Last())
}

func TestAcknowledgedCounterConcurrent(t *testing.T) {
	r := testRand()
	a := NewAcknowledgedCounter(0)

	const n = 10000
	keys := make([]int64, n)
	for i := 0; i < n; i++ {
		keys[i] = a.Next(r)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < n; i += 8 {
				a.Acknowledge(keys[i])
			}
		}(w)
	}
	wg.Wait()

	// One more acknowledgment forces a final boundary sweep in case the last
	// writer lost the TryLock race.
	a.Acknowledge(keys[n-1])
	require.Equal(t, int64(n-1), a.Last())
}

func TestAcknowledgedCounterOverflowPanics(t *testing.T) {
	a := NewAcknowledgedCounter(0)
	assert.Panics(t, func() {
		a.Acknowledge(WindowSize + 1)
	})
}
