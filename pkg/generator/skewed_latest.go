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

// SkewedLatest generates integers biased toward the most recently inserted
// keys: it draws a Zipfian offset and subtracts it from the safe boundary of
// the acknowledged insert sequence.
type SkewedLatest struct {
	Number

	basis   *AcknowledgedCounter
	zipfian *Zipfian
}

// NewSkewedLatest creates the SkewedLatest generator on top of the given
// acknowledged counter.
func NewSkewedLatest(basis *AcknowledgedCounter) *SkewedLatest {
	items := basis.Last()
	if items < 2 {
		items = 2
	}
	zipfian, _ := NewZipfianWithItems(items, ZipfianConstant)

	return &SkewedLatest{
		basis:   basis,
		zipfian: zipfian,
	}
}

// Next implements the Generator Next interface. The result is never beyond
// the current safe boundary; a draw that would go negative is retried.
func (s *SkewedLatest) Next(r *rand.Rand) int64 {
	for {
		max := s.basis.Last()
		n := max - s.zipfian.NextForItems(r, max)
		if n < 0 {
			continue
		}
		s.SetLastValue(n)
		return n
	}
}
