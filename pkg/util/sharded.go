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

const shardCount = 64

type shard struct {
	sync.RWMutex
	m map[string]int64
}

// ShardedInt64Map is a concurrent string -> int64 map, sharded by key hash so
// that unrelated keys never contend on one lock.
type ShardedInt64Map struct {
	shards [shardCount]shard
}

// NewShardedInt64Map creates an empty map.
func NewShardedInt64Map() *ShardedInt64Map {
	m := new(ShardedInt64Map)
	for i := range m.shards {
		m.shards[i].m = make(map[string]int64)
	}
	return m
}

func (m *ShardedInt64Map) shardFor(key string) *shard {
	return &m.shards[uint64(StringHash64(key))%shardCount]
}

// Load returns the value stored for key.
func (m *ShardedInt64Map) Load(key string) (int64, bool) {
	s := m.shardFor(key)
	s.RLock()
	v, ok := s.m[key]
	s.RUnlock()
	return v, ok
}

// Store sets the value for key, overwriting any previous value.
func (m *ShardedInt64Map) Store(key string, value int64) {
	s := m.shardFor(key)
	s.Lock()
	s.m[key] = value
	s.Unlock()
}

// LoadOrStore returns the existing value for key if present. Otherwise it
// stores value and returns it. loaded is true if the value was present.
func (m *ShardedInt64Map) LoadOrStore(key string, value int64) (actual int64, loaded bool) {
	s := m.shardFor(key)
	s.Lock()
	if v, ok := s.m[key]; ok {
		s.Unlock()
		return v, true
	}
	s.m[key] = value
	s.Unlock()
	return value, false
}

// Len returns the total number of entries.
func (m *ShardedInt64Map) Len() int {
	n := 0
	for i := range m.shards {
		s := &m.shards[i]
		s.RLock()
		n += len(s.m)
		s.RUnlock()
	}
	return n
}
