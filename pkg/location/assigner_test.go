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

package location

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssigner(t *testing.T, hotFraction float64) *Assigner {
	a, err := NewAssigner(0, 1<<30, 0, 1<<27, hotFraction)
	require.NoError(t, err)
	return a
}

func TestAssignStable(t *testing.T) {
	a := newTestAssigner(t, 0.8)
	th := a.Thread(rand.New(rand.NewSource(time.Now().UnixNano())))

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("user%d", i)
		first := th.Assign(key)
		assert.Equal(t, first, th.Assign(key))

		cached, ok := a.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, first, cached)
	}
	assert.Equal(t, 1000, a.Len())
}

func TestAssignHotFraction(t *testing.T) {
	a := newTestAssigner(t, 0.8)
	th := a.Thread(rand.New(rand.NewSource(time.Now().UnixNano())))

	hot := 0
	total := 100000
	for i := 0; i < total; i++ {
		code := th.Assign(fmt.Sprintf("user%d", i))
		require.GreaterOrEqual(t, code, int64(0))
		require.Less(t, code, int64(1<<30))
		if code < 1<<27 {
			hot++
		}
	}

	assert.InDelta(t, 0.8, float64(hot)/float64(total), 0.02)
}

func TestAssignColdNeverHot(t *testing.T) {
	// hotFraction 0 forces every assignment down the cold path.
	a := newTestAssigner(t, 0)
	th := a.Thread(rand.New(rand.NewSource(time.Now().UnixNano())))

	for i := 0; i < 100000; i++ {
		code := th.Assign(fmt.Sprintf("user%d", i))
		require.GreaterOrEqual(t, code, int64(1<<27))
		require.Less(t, code, int64(1<<30))
	}
}

func TestAssignFirstWriteWins(t *testing.T) {
	a := newTestAssigner(t, 0.8)

	const workers = 8
	const keys = 1000

	results := make([][]int64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			th := a.Thread(rand.New(rand.NewSource(int64(w))))
			results[w] = make([]int64, keys)
			for i := 0; i < keys; i++ {
				results[w][i] = th.Assign(fmt.Sprintf("user%d", i))
			}
		}(w)
	}
	wg.Wait()

	for i := 0; i < keys; i++ {
		for w := 1; w < workers; w++ {
			require.Equal(t, results[0][i], results[w][i])
		}
	}
}

func TestNewAssignerValidation(t *testing.T) {
	cases := []struct {
		name                                         string
		areaMin, areaMax, hotspotMin, hotspotMax     int64
		hotFraction                                  float64
	}{
		{"empty area", 10, 10, 0, 5, 0.8},
		{"empty hotspot", 0, 100, 50, 50, 0.8},
		{"hotspot below area", 10, 100, 0, 20, 0.8},
		{"hotspot above area", 0, 100, 50, 200, 0.8},
		{"hotspot covers area", 0, 100, 0, 100, 0.8},
		{"fraction too large", 0, 100, 0, 50, 1.5},
		{"fraction negative", 0, 100, 0, 50, -0.1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewAssigner(c.areaMin, c.areaMax, c.hotspotMin, c.hotspotMax, c.hotFraction)
			assert.Error(t, err)
		})
	}
}
