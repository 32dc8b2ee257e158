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

	"github.com/pingcap/errors"
)

// Sequential generates a sequence of integers [min, max], wrapping back to
// min after max. It is safe for concurrent use.
type Sequential struct {
	counter  int64
	min      int64
	interval int64
}

// NewSequential creates the Sequential generator.
func NewSequential(min int64, max int64) (*Sequential, error) {
	if min >= max {
		return nil, errors.Errorf("sequential: invalid range [%d, %d]", min, max)
	}

	return &Sequential{
		min:      min,
		interval: max - min + 1,
	}, nil
}

// Next implements the Generator Next interface.
func (s *Sequential) Next(_ *rand.Rand) int64 {
	n := atomic.AddInt64(&s.counter, 1) - 1
	return s.min + n%s.interval
}

// Last implements the Generator Last interface.
func (s *Sequential) Last() int64 {
	n := atomic.LoadInt64(&s.counter)
	return s.min + (n-1)%s.interval
}
