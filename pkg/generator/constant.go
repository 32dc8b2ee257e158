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

import "math/rand"

// Constant generates the same value every time.
type Constant struct {
	value int64
}

// NewConstant creates the Constant generator.
func NewConstant(value int64) *Constant {
	return &Constant{value: value}
}

// Next implements the Generator Next interface.
func (c *Constant) Next(_ *rand.Rand) int64 {
	return c.value
}

// Last implements the Generator Last interface.
func (c *Constant) Last() int64 {
	return c.value
}
