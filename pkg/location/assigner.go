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

package location

import (
	"math/rand"

	"github.com/pingcap/errors"

	"github.com/datafog/geobench/pkg/util"
)

// Assigner hands out a spatial bucket code per record key. Codes come from
// the half-open area range [areaMin, areaMax); a nested hotspot sub-range
// [hotspotMin, hotspotMax) receives hotFraction of the assignments, and cold
// assignments are redrawn until they fall outside the hotspot sub-range.
//
// The key -> code mapping is first-write-wins: once a key has a code, every
// later request for that key returns the same code, no matter which worker
// asks. The cache is shared across workers; the random streams are not (see
// Thread).
type Assigner struct {
	areaMin    int64
	areaMax    int64
	hotspotMin int64
	hotspotMax int64

	hotFraction float64

	cache *util.ShardedInt64Map
}

// NewAssigner creates the Assigner. The hotspot range must nest strictly
// inside the area range so that cold draws have somewhere to land.
func NewAssigner(areaMin, areaMax, hotspotMin, hotspotMax int64, hotFraction float64) (*Assigner, error) {
	if areaMin >= areaMax {
		return nil, errors.Errorf("location: invalid area range [%d, %d)", areaMin, areaMax)
	}
	if hotspotMin >= hotspotMax {
		return nil, errors.Errorf("location: invalid hotspot range [%d, %d)", hotspotMin, hotspotMax)
	}
	if hotspotMin < areaMin || hotspotMax > areaMax {
		return nil, errors.Errorf("location: hotspot range [%d, %d) not inside area range [%d, %d)",
			hotspotMin, hotspotMax, areaMin, areaMax)
	}
	if hotspotMin == areaMin && hotspotMax == areaMax {
		return nil, errors.Errorf("location: hotspot range covers the whole area, no cold codes exist")
	}
	if hotFraction < 0 || hotFraction > 1 {
		return nil, errors.Errorf("location: hot fraction %f out of [0, 1]", hotFraction)
	}

	return &Assigner{
		areaMin:     areaMin,
		areaMax:     areaMax,
		hotspotMin:  hotspotMin,
		hotspotMax:  hotspotMax,
		hotFraction: hotFraction,
		cache:       util.NewShardedInt64Map(),
	}, nil
}

// Lookup returns the cached code for key without assigning one.
func (a *Assigner) Lookup(key string) (int64, bool) {
	return a.cache.Load(key)
}

// Len returns the number of keys with an assigned code.
func (a *Assigner) Len() int {
	return a.cache.Len()
}

// Thread binds the Assigner to one worker's private random source. The
// returned Thread must not be shared between goroutines.
func (a *Assigner) Thread(r *rand.Rand) *Thread {
	return &Thread{a: a, r: r}
}

// Thread is a per-worker view of the Assigner, drawing from the worker's own
// random stream while sharing the process-wide key -> code cache.
type Thread struct {
	a *Assigner
	r *rand.Rand
}

// Assign returns the spatial code for key, drawing and caching a new one on
// first sight. If two workers race on a fresh key, the first stored code wins
// and both observe it.
func (t *Thread) Assign(key string) int64 {
	if code, ok := t.a.cache.Load(key); ok {
		return code
	}

	var code int64
	if t.r.Float64() < t.a.hotFraction {
		code = t.nextHot()
	} else {
		code = t.nextCold()
	}

	actual, _ := t.a.cache.LoadOrStore(key, code)
	return actual
}

func (t *Thread) nextHot() int64 {
	return t.a.hotspotMin + t.r.Int63n(t.a.hotspotMax-t.a.hotspotMin)
}

// nextCold rejects draws inside the hotspot sub-range so a cold key can never
// sit in the hot zone.
func (t *Thread) nextCold() int64 {
	for {
		code := t.a.areaMin + t.r.Int63n(t.a.areaMax-t.a.areaMin)
		if code < t.a.hotspotMin || code >= t.a.hotspotMax {
			return code
		}
	}
}
