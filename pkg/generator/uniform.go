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

	"github.com/pingcap/errors"
)

// Uniform generates integers uniformly in [min, max], both inclusive.
type Uniform struct {
	Number
	min      int64
	max      int64
	interval int64
}

// NewUniform creates the Uniform generator.
func NewUniform(min int64, max int64) (*Uniform, error) {
	if min >= max {
		return nil, errors.Errorf("uniform: invalid range [%d, %d]", min, max)
	}

	return &Uniform{
		min:      min,
		max:      max,
		interval: max - min + 1,
	}, nil
}

// Next implements the Generator Next interface.
func (u *Uniform) Next(r *rand.Rand) int64 {
	n := u.min + r.Int63n(u.interval)
	u.SetLastValue(n)
	return n
}
