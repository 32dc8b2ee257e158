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

package util

const (
	fnvOffsetBasis64 = uint64(0xCBF29CE484222325)
	fnvPrime64       = uint64(1099511628211)
)

// Hash64 returns a FNV-1a style 64 bit hash of the integer, folded to a
// non-negative value. The mapping is a pure function, so a hashed key
// number can always be recomputed from the plain one.
func Hash64(n int64) int64 {
	hash := fnvOffsetBasis64

	for i := 0; i < 8; i++ {
		octet := uint64(n) & 0x00ff
		n = n >> 8

		hash = hash ^ octet
		hash = hash * fnvPrime64
	}

	// Mask off the sign bit so the result can be folded with %.
	return int64(hash & (1<<63 - 1))
}

// BytesHash64 returns the FNV-1a hash of the bytes.
func BytesHash64(b []byte) int64 {
	hash := fnvOffsetBasis64

	for _, c := range b {
		hash = hash ^ uint64(c)
		hash = hash * fnvPrime64
	}

	return int64(hash)
}

// StringHash64 returns the FNV-1a hash of the string.
func StringHash64(s string) int64 {
	hash := fnvOffsetBasis64

	for i := 0; i < len(s); i++ {
		hash = hash ^ uint64(s[i])
		hash = hash * fnvPrime64
	}

	return int64(hash)
}
