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

package bench

import "math/rand"

// Generator generates a sequence of numbers following some distribution
// over a bounded integer domain.
type Generator interface {
	// Next advances the generator and returns the produced value. The passed
	// rand is owned by the calling worker, so stateless samplers need no
	// synchronization.
	Next(r *rand.Rand) int64

	// Last returns the most recently produced value without advancing.
	// It is well defined only after at least one call to Next.
	Last() int64
}
