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

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/magiconair/properties"

	"github.com/datafog/geobench/pkg/bench"
)

// memoryDB keeps every record in process memory. It exists so a full
// load/run cycle, including read verification, can be exercised without an
// external store.
type memoryDB struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte
}

func (db *memoryDB) Close() error {
	return nil
}

func (db *memoryDB) InitThread(ctx context.Context, _ int, _ int) context.Context {
	return ctx
}

func (db *memoryDB) CleanupThread(_ context.Context) {

}

func (db *memoryDB) Read(_ context.Context, _ string, key string, fields []string) (map[string][]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row, ok := db.records[key]
	if !ok {
		return nil, nil
	}
	return copyRow(row, fields), nil
}

func (db *memoryDB) Scan(_ context.Context, _ string, startKey string, count int, fields []string) ([]map[string][]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	keys := make([]string, 0, len(db.records))
	for k := range db.records {
		if k >= startKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) > count {
		keys = keys[:count]
	}

	res := make([]map[string][]byte, 0, len(keys))
	for _, k := range keys {
		res = append(res, copyRow(db.records[k], fields))
	}
	return res, nil
}

func (db *memoryDB) Update(_ context.Context, _ string, key string, values map[string][]byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	row, ok := db.records[key]
	if !ok {
		row = make(map[string][]byte, len(values))
		db.records[key] = row
	}
	for f, v := range values {
		row[f] = append([]byte(nil), v...)
	}
	return nil
}

func (db *memoryDB) Insert(ctx context.Context, table string, key string, values map[string][]byte) error {
	return db.Update(ctx, table, key, values)
}

func (db *memoryDB) Delete(_ context.Context, _ string, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.records, key)
	return nil
}

func copyRow(row map[string][]byte, fields []string) map[string][]byte {
	res := make(map[string][]byte, len(row))
	if len(fields) == 0 {
		for f, v := range row {
			res[f] = append([]byte(nil), v...)
		}
		return res
	}
	for _, f := range fields {
		if v, ok := row[f]; ok {
			res[f] = append([]byte(nil), v...)
		}
	}
	return res
}

type memoryDBCreator struct{}

func (memoryDBCreator) Create(_ *properties.Properties) (bench.DB, error) {
	return &memoryDB{records: make(map[string]map[string][]byte)}, nil
}

func init() {
	bench.RegisterDBCreator("memory", memoryDBCreator{})
}
