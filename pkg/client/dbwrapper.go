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

package client

import (
	"context"
	"time"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/measurement"
)

// DbWrapper decorates a bench.DB with per-operation latency and status
// accounting.
type DbWrapper struct {
	bench.DB
}

func measure(op string, start time.Time, err error) {
	measurement.Measure(op, start, time.Since(start))
	if err != nil {
		measurement.ReportStatus(op, bench.StatusError)
		return
	}
	measurement.ReportStatus(op, bench.StatusOK)
}

// Read wraps the Read method in the interface of bench.DB.
func (db DbWrapper) Read(ctx context.Context, table string, key string, fields []string) (map[string][]byte, error) {
	start := time.Now()
	values, err := db.DB.Read(ctx, table, key, fields)
	measure("READ", start, err)
	return values, err
}

// Scan wraps the Scan method in the interface of bench.DB.
func (db DbWrapper) Scan(ctx context.Context, table string, startKey string, count int, fields []string) ([]map[string][]byte, error) {
	start := time.Now()
	values, err := db.DB.Scan(ctx, table, startKey, count, fields)
	measure("SCAN", start, err)
	return values, err
}

// Update wraps the Update method in the interface of bench.DB.
func (db DbWrapper) Update(ctx context.Context, table string, key string, values map[string][]byte) error {
	start := time.Now()
	err := db.DB.Update(ctx, table, key, values)
	measure("UPDATE", start, err)
	return err
}

// Insert wraps the Insert method in the interface of bench.DB.
func (db DbWrapper) Insert(ctx context.Context, table string, key string, values map[string][]byte) error {
	start := time.Now()
	err := db.DB.Insert(ctx, table, key, values)
	measure("INSERT", start, err)
	return err
}

// Delete wraps the Delete method in the interface of bench.DB.
func (db DbWrapper) Delete(ctx context.Context, table string, key string) error {
	start := time.Now()
	err := db.DB.Delete(ctx, table, key)
	measure("DELETE", start, err)
	return err
}
