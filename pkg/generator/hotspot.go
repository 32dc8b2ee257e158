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

// Hotspot generates integers in [lowerBound, upperBound] where a "hot" slice
// of size hotsetFraction at the low end of the range receives hotOpnFraction
// of all draws, and the cold remainder receives the rest. Within the chosen
// slice the draw is uniform.
type Hotspot struct {
	Number

	lowerBound   int64
	upperBound   int64
	hotInterval  int64
	coldInterval int64

	hotsetFraction float64
	hotOpnFraction float64
}

func clampFraction(value float64) float64 {
	if value < 0.0 || value > 1.0 {
		return 0.0
	}
	return value
}

// NewHotspot creates the Hotspot generator.
func NewHotspot(lowerBound int64, upperBound int64, hotsetFraction float64, hotOpnFraction float64) (*Hotspot, error) {
	if lowerBound >= upperBound {
		return nil, errors.Errorf("hotspot: invalid range [%d, %d]", lowerBound, upperBound)
	}

	hotsetFraction = clampFraction(hotsetFraction)
	hotOpnFraction = clampFraction(hotOpnFraction)

	interval := upperBound - lowerBound + 1
	hotInterval := int64(float64(interval) * hotsetFraction)

	return &Hotspot{
		lowerBound:     lowerBound,
		upperBound:     upperBound,
		hotInterval:    hotInterval,
		coldInterval:   interval - hotInterval,
		hotsetFraction: hotsetFraction,
		hotOpnFraction: hotOpnFraction,
	}, nil
}

// Next implements the Generator Next interface.
func (h *Hotspot) Next(r *rand.Rand) int64 {
	var n int64
	if h.hotInterval > 0 && (h.coldInterval == 0 || r.Float64() < h.hotOpnFraction) {
		n = h.lowerBound + r.Int63n(h.hotInterval)
	} else {
		n = h.lowerBound + h.hotInterval + r.Int63n(h.coldInterval)
	}
	h.SetLastValue(n)
	return n
}
