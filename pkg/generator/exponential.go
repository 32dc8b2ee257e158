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
	"math"
	"math/rand"
)

// Exponential generates integers following an exponential distribution. The
// produced value is used by the workload as an offset back from the newest
// inserted key, so small values (recent keys) dominate. The rate parameter is
// derived so that the given percentile of draws falls below the given range.
type Exponential struct {
	Number
	gamma float64
}

// NewExponential creates an Exponential generator where percentile of the
// draws are below rng.
func NewExponential(percentile float64, rng float64) *Exponential {
	return &Exponential{
		gamma: -math.Log(1.0-percentile/100.0) / rng,
	}
}

// NewExponentialWithMean creates an Exponential generator with the given mean.
func NewExponentialWithMean(mean float64) *Exponential {
	return &Exponential{
		gamma: 1.0 / mean,
	}
}

// Next implements the Generator Next interface.
func (e *Exponential) Next(r *rand.Rand) int64 {
	u := r.Float64()
	for u == 0 {
		u = r.Float64()
	}
	n := int64(-math.Log(u) / e.gamma)
	e.SetLastValue(n)
	return n
}

// Mean returns the mean of the distribution.
func (e *Exponential) Mean() float64 {
	return 1.0 / e.gamma
}
