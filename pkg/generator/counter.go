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
	"sync/atomic"
)

// Counter generates a sequence of successive integers, starting at a
// configured offset. It is safe for concurrent use.
type Counter struct {
	counter int64
}

// NewCounter creates the Counter generator.
func NewCounter(start int64) *Counter {
	return &Counter{
		counter: start - 1,
	}
}

// Next implements the Generator Next interface.
func (c *Counter) Next(_ *rand.Rand) int64 {
	return atomic.AddInt64(&c.counter, 1)
}

// Last implements the Generator Last interface.
func (c *Counter) Last() int64 {
	return atomic.LoadInt64(&c.counter)
}
