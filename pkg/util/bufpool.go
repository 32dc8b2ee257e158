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

import "sync"

// BufPool is a pool of byte slices used as row encoding scratch buffers.
type BufPool struct {
	p *sync.Pool
}

// NewBufPool creates the BufPool.
func NewBufPool() *BufPool {
	p := &sync.Pool{
		New: func() interface{} {
			return make([]byte, 0, 256)
		},
	}
	return &BufPool{p: p}
}

// Get gets an empty buffer from the pool.
func (b *BufPool) Get() []byte {
	return b.p.Get().([]byte)[:0]
}

// Put returns a buffer to the pool.
func (b *BufPool) Put(buf []byte) {
	b.p.Put(buf)
}
