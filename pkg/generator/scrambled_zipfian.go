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

	"github.com/datafog/geobench/pkg/util"
	"github.com/pingcap/errors"
)

const (
	// scrambledZipfianItemCount is the fixed internal key space the raw
	// Zipfian rank is drawn from when the default skew is used.
	scrambledZipfianItemCount = int64(10000000000)
	// scrambledZetan is the precomputed zeta sum for
	// scrambledZipfianItemCount items at the default skew.
	scrambledZetan = float64(26.46902820178302)
)

// ScrambledZipfian generates integers in [min, max] with a Zipfian popularity
// shape, but with the identity of the popular values scattered across the
// range instead of clustered at min. The raw Zipfian rank is permuted through
// a fixed FNV hash and folded into the range, so a given rank always maps to
// the same value for one (min, max) configuration.
type ScrambledZipfian struct {
	Number

	gen       *Zipfian
	min       int64
	max       int64
	itemCount int64
}

// NewScrambledZipfian creates the ScrambledZipfian generator over [min, max]
// inclusive.
func NewScrambledZipfian(min int64, max int64, zipfianConstant float64) (*ScrambledZipfian, error) {
	if min >= max {
		return nil, errors.Errorf("scrambled zipfian: invalid range [%d, %d]", min, max)
	}

	s := &ScrambledZipfian{
		min:       min,
		max:       max,
		itemCount: max - min + 1,
	}

	if zipfianConstant == ZipfianConstant {
		s.gen = newZipfian(0, scrambledZipfianItemCount-1, zipfianConstant, scrambledZetan)
		return s, nil
	}

	// With a non-default skew the zeta sum for the huge fixed item count has
	// no precomputed value; fall back to the actual range. This can take a
	// while for large ranges.
	gen, err := NewZipfianWithRange(0, s.itemCount-1, zipfianConstant)
	if err != nil {
		return nil, err
	}
	s.gen = gen
	return s, nil
}

// Next implements the Generator Next interface.
func (s *ScrambledZipfian) Next(r *rand.Rand) int64 {
	rank := s.gen.Next(r)
	n := s.min + util.Hash64(rank)%s.itemCount
	s.SetLastValue(n)
	return n
}
