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
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
)

const (
	// WindowSize is the number of trailing sequence numbers whose
	// acknowledgment state is retained. Must be a power of two.
	WindowSize = int64(1 << 20)

	windowMask = WindowSize - 1
)

// AcknowledgedCounter issues a monotonic sequence of numbers and tracks which
// of them have completed, possibly out of order. Last reports the safe
// boundary: the largest number k such that every number <= k has been
// acknowledged. The boundary never decreases.
//
// Acknowledgment state is kept in a circular window of WindowSize slots.
// Acknowledging a number at or below the boundary is a no-op (it is already
// implied safe); acknowledging a number more than WindowSize ahead of the
// boundary means the issuer has outrun acknowledgment capacity and is a fatal
// usage error.
type AcknowledgedCounter struct {
	c Counter

	mu     sync.Mutex
	window []uint32
	limit  int64
}

// NewAcknowledgedCounter creates the AcknowledgedCounter, issuing numbers
// from start.
func NewAcknowledgedCounter(start int64) *AcknowledgedCounter {
	return &AcknowledgedCounter{
		c:      Counter{counter: start - 1},
		window: make([]uint32, WindowSize),
		limit:  start - 1,
	}
}

// Next implements the Generator Next interface, issuing the next sequence
// number.
func (a *AcknowledgedCounter) Next(r *rand.Rand) int64 {
	return a.c.Next(r)
}

// Last implements the Generator Last interface, returning the current safe
// boundary.
func (a *AcknowledgedCounter) Last() int64 {
	return atomic.LoadInt64(&a.limit)
}

// Acknowledge marks the sequence number as complete. It is safe to call
// concurrently, in any order, and is idempotent.
func (a *AcknowledgedCounter) Acknowledge(value int64) {
	limit := atomic.LoadInt64(&a.limit)
	if value <= limit {
		// Behind the boundary, already implied safe.
		return
	}
	if value-limit > WindowSize {
		panic(fmt.Sprintf("acknowledged counter window overflow: value %d is more than %d ahead of boundary %d", value, WindowSize, limit))
	}

	atomic.StoreUint32(&a.window[value&windowMask], 1)

	// Only one goroutine needs to sweep the boundary forward; the others can
	// leave their flag behind and move on.
	if !a.mu.TryLock() {
		return
	}
	defer a.mu.Unlock()

	limit = atomic.LoadInt64(&a.limit)
	for index := limit + 1; atomic.LoadUint32(&a.window[index&windowMask]) == 1; index++ {
		// Clear the consumed slot so a wraparound number can reuse it.
		atomic.StoreUint32(&a.window[index&windowMask], 0)
		atomic.StoreInt64(&a.limit, index)
	}
}
