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
	"sync"

	"github.com/pingcap/errors"
)

// ZipfianConstant is the default skew of the Zipfian distribution.
const ZipfianConstant = float64(0.99)

// Zipfian generates integers in [min, max] following a Zipfian distribution,
// so that min is the most popular value, min+1 the next most popular, and so
// on. The algorithm is from "Quickly Generating Billion-Record Synthetic
// Databases", Jim Gray et al, SIGMOD 1994.
//
// The zeta harmonic sum for the item count is precomputed at construction.
// The item count may grow between draws; zeta is then re-derived
// incrementally, under the lock, without disturbing the shape of draws
// already issued.
type Zipfian struct {
	Number
	sync.Mutex

	items int64
	base  int64

	zipfianConstant float64

	alpha      float64
	zetan      float64
	eta        float64
	theta      float64
	zeta2Theta float64

	// The item count zetan was last computed for.
	countForZeta int64

	// If the item count is ever observed to shrink, recomputing zeta from
	// scratch is expensive for large item sets and almost always indicates a
	// caller bug, so it is only done when explicitly allowed.
	allowItemCountDecrease bool
}

// zetaStatic computes the zeta harmonic sum incrementally for a distribution
// that has n items now but had st items when sum was computed.
func zetaStatic(st int64, n int64, theta float64, sum float64) float64 {
	for i := st; i < n; i++ {
		sum += 1.0 / math.Pow(float64(i+1), theta)
	}
	return sum
}

// NewZipfianWithItems creates a Zipfian generator over [0, items).
func NewZipfianWithItems(items int64, zipfianConstant float64) (*Zipfian, error) {
	return NewZipfianWithRange(0, items-1, zipfianConstant)
}

// NewZipfianWithRange creates a Zipfian generator over [min, max] inclusive.
func NewZipfianWithRange(min int64, max int64, zipfianConstant float64) (*Zipfian, error) {
	if min >= max {
		return nil, errors.Errorf("zipfian: invalid range [%d, %d]", min, max)
	}
	return newZipfian(min, max, zipfianConstant, zetaStatic(0, max-min+1, zipfianConstant, 0)), nil
}

// newZipfian creates the generator using a precomputed zetan value.
func newZipfian(min int64, max int64, zipfianConstant float64, zetan float64) *Zipfian {
	items := max - min + 1
	theta := zipfianConstant
	zeta2Theta := zetaStatic(0, 2, theta, 0)

	z := &Zipfian{
		items:           items,
		base:            min,
		zipfianConstant: zipfianConstant,
		theta:           theta,
		zeta2Theta:      zeta2Theta,
		alpha:           1.0 / (1.0 - theta),
		zetan:           zetan,
		countForZeta:    items,
	}
	z.eta = (1 - math.Pow(2.0/float64(items), 1-theta)) / (1 - zeta2Theta/zetan)

	return z
}

// Next implements the Generator Next interface.
func (z *Zipfian) Next(r *rand.Rand) int64 {
	z.Lock()
	defer z.Unlock()

	return z.next(r, z.items)
}

// NextForItems draws from the distribution as if it covered itemCount items.
// A larger itemCount than seen before triggers an incremental zeta update.
func (z *Zipfian) NextForItems(r *rand.Rand, itemCount int64) int64 {
	z.Lock()
	defer z.Unlock()

	return z.next(r, itemCount)
}

func (z *Zipfian) next(r *rand.Rand, itemCount int64) int64 {
	if itemCount != z.countForZeta {
		if itemCount > z.countForZeta {
			// Incrementally extend the harmonic sum to the larger item count.
			z.zetan = zetaStatic(z.countForZeta, itemCount, z.theta, z.zetan)
			z.countForZeta = itemCount
			z.eta = (1 - math.Pow(2.0/float64(z.items), 1-z.theta)) / (1 - z.zeta2Theta/z.zetan)
		} else if itemCount < z.countForZeta && z.allowItemCountDecrease {
			z.zetan = zetaStatic(0, itemCount, z.theta, 0)
			z.countForZeta = itemCount
			z.eta = (1 - math.Pow(2.0/float64(z.items), 1-z.theta)) / (1 - z.zeta2Theta/z.zetan)
		}
	}

	// u == 0 falls into the first branch, so the rank always stays in range.
	u := r.Float64()
	uz := u * z.zetan

	var n int64
	switch {
	case uz < 1.0:
		n = z.base
	case uz < 1.0+math.Pow(0.5, z.theta):
		n = z.base + 1
	default:
		n = z.base + int64(float64(itemCount)*math.Pow(z.eta*u-z.eta+1, z.alpha))
	}

	z.SetLastValue(n)
	return n
}
