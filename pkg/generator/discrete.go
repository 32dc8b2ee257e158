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

type discretePair struct {
	Weight float64
	Value  int64
}

// Discrete generates values from a discrete weighted set. Values are added
// once at construction; the draw order over equal weights follows insertion
// order, so a fixed random sequence reproduces the same picks.
type Discrete struct {
	Number
	values []discretePair
}

// NewDiscrete creates the Discrete generator.
func NewDiscrete() *Discrete {
	return &Discrete{}
}

// Next implements the Generator Next interface. When no value with positive
// weight has been added, it returns 0.
func (d *Discrete) Next(r *rand.Rand) int64 {
	var sum float64
	for i := range d.values {
		sum += d.values[i].Weight
	}

	if sum <= 0 {
		d.SetLastValue(0)
		return 0
	}

	chooser := r.Float64() * sum
	for i := range d.values {
		if chooser < d.values[i].Weight {
			d.SetLastValue(d.values[i].Value)
			return d.values[i].Value
		}
		chooser -= d.values[i].Weight
	}

	// Guard against float rounding at the top of the range.
	last := d.values[len(d.values)-1].Value
	d.SetLastValue(last)
	return last
}

// Add adds a value with the given weight. Values with non-positive weight are
// omitted entirely.
func (d *Discrete) Add(weight float64, value int64) {
	if weight <= 0 {
		return
	}
	d.values = append(d.values, discretePair{Weight: weight, Value: value})
}
