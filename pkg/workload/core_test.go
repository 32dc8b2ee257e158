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

package workload

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/magiconair/properties"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafog/geobench/pkg/measurement"
	"github.com/datafog/geobench/pkg/prop"
	"github.com/datafog/geobench/pkg/util"
)

// mockDB is an in-memory store that counts calls and can be told to fail
// inserts.
type mockDB struct {
	mu      sync.Mutex
	records map[string]map[string][]byte

	readCounts   map[string]int
	insertCalls  int
	failInserts  int // fail this many inserts before succeeding
	failAlways   bool
	scanRequests []int
}

func newMockDB() *mockDB {
	return &mockDB{
		records:    make(map[string]map[string][]byte),
		readCounts: make(map[string]int),
	}
}

func (db *mockDB) Close() error { return nil }

func (db *mockDB) InitThread(ctx context.Context, _ int, _ int) context.Context {
	return ctx
}

func (db *mockDB) CleanupThread(_ context.Context) {}

func (db *mockDB) Read(_ context.Context, _ string, key string, _ []string) (map[string][]byte, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.readCounts[key]++
	row, ok := db.records[key]
	if !ok {
		return nil, nil
	}
	values := make(map[string][]byte, len(row))
	for f, v := range row {
		values[f] = v
	}
	return values, nil
}

func (db *mockDB) Scan(_ context.Context, _ string, _ string, count int, _ []string) ([]map[string][]byte, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.scanRequests = append(db.scanRequests, count)
	return nil, nil
}

func (db *mockDB) Update(_ context.Context, _ string, key string, values map[string][]byte) error {
	return db.write(key, values)
}

func (db *mockDB) Insert(_ context.Context, _ string, key string, values map[string][]byte) error {
	db.mu.Lock()
	db.insertCalls++
	shouldFail := db.failAlways || db.insertCalls <= db.failInserts
	db.mu.Unlock()
	if shouldFail {
		return errors.New("injected insert failure")
	}
	return db.write(key, values)
}

func (db *mockDB) Delete(_ context.Context, _ string, key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.records, key)
	return nil
}

func (db *mockDB) write(key string, values map[string][]byte) error {
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

func newTestCore(t *testing.T, settings map[string]string) (*core, context.Context) {
	t.Helper()

	p := properties.NewProperties()
	for k, v := range settings {
		p.Set(k, v)
	}
	measurement.InitMeasure(p)

	w, err := coreCreator{}.Create(p)
	require.NoError(t, err)
	c := w.(*core)
	ctx := c.InitThread(context.Background(), 0, 1)
	return c, ctx
}

func TestBuildKeyNameOrdered(t *testing.T) {
	c, _ := newTestCore(t, map[string]string{
		prop.RecordCount: "100",
		prop.InsertOrder: "ordered",
		prop.ZeroPadding: "8",
	})

	assert.Equal(t, "user00000227", c.buildKeyName(227))
	assert.Equal(t, "user00000000", c.buildKeyName(0))
}

func TestBuildKeyNameHashed(t *testing.T) {
	c, _ := newTestCore(t, map[string]string{
		prop.RecordCount: "100",
	})

	want := fmt.Sprintf("user%d", util.Hash64(227))
	assert.Equal(t, want, c.buildKeyName(227))
	// The mapping is a pure function of the key number.
	assert.Equal(t, c.buildKeyName(227), c.buildKeyName(227))
}

func loadKeys(t *testing.T, c *core, ctx context.Context, db *mockDB, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, c.DoInsert(ctx, db))
	}
	require.Len(t, db.records, count)
}

func TestHotspotTransactionDistribution(t *testing.T) {
	c, ctx := newTestCore(t, map[string]string{
		prop.RecordCount:         "100",
		prop.InsertOrder:         "ordered",
		prop.RequestDistribution: "hotspot",
		prop.HotspotDataFraction: "0.2",
		prop.HotspotOpnFraction:  "0.8",
		prop.ReadProportion:      "1",
		prop.UpdateProportion:    "0",
	})

	db := newMockDB()
	loadKeys(t, c, ctx, db, 100)

	total := 10000
	for i := 0; i < total; i++ {
		require.NoError(t, c.DoTransaction(ctx, db))
	}

	hot := 0
	for key, n := range db.readCounts {
		num, err := strconv.Atoi(strings.TrimPrefix(key, "user"))
		require.NoError(t, err)
		require.Less(t, num, 100)
		if num < 20 {
			hot += n
		}
	}

	assert.InDelta(t, 0.8, float64(hot)/float64(total), 0.02)
}

func TestInsertRetrySucceeds(t *testing.T) {
	c, ctx := newTestCore(t, map[string]string{
		prop.RecordCount:            "10",
		prop.InsertionRetryLimit:    "3",
		prop.InsertionRetryInterval: "0",
	})

	db := newMockDB()
	db.failInserts = 2

	require.NoError(t, c.DoInsert(ctx, db))
	assert.Equal(t, 3, db.insertCalls)
	assert.Len(t, db.records, 1)
}

func TestInsertRetryExhausted(t *testing.T) {
	c, ctx := newTestCore(t, map[string]string{
		prop.RecordCount:            "10",
		prop.InsertionRetryLimit:    "1",
		prop.InsertionRetryInterval: "0",
	})

	db := newMockDB()
	db.failAlways = true

	err := c.DoInsert(ctx, db)
	assert.Error(t, err)
	assert.Equal(t, 2, db.insertCalls)
}

func TestInsertCanceledContext(t *testing.T) {
	c, ctx := newTestCore(t, map[string]string{
		prop.RecordCount:            "10",
		prop.InsertionRetryLimit:    "5",
		prop.InsertionRetryInterval: "0",
	})

	db := newMockDB()
	db.failAlways = true

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	// A canceled run is not an insertion failure.
	assert.NoError(t, c.DoInsert(canceled, db))
}

func TestTransactionInsertAcknowledges(t *testing.T) {
	c, ctx := newTestCore(t, map[string]string{
		prop.RecordCount:      "100",
		prop.ReadProportion:   "0",
		prop.UpdateProportion: "0",
		prop.InsertProportion: "1",
	})

	db := newMockDB()

	require.Equal(t, int64(99), c.transactionInsertKeySequence.Last())
	require.NoError(t, c.DoTransaction(ctx, db))
	assert.Equal(t, int64(100), c.transactionInsertKeySequence.Last())
	assert.Len(t, db.records, 1)
}

func TestUpdateRefreshesTimestamp(t *testing.T) {
	c, ctx := newTestCore(t, map[string]string{
		prop.RecordCount:         "1",
		prop.InsertOrder:         "ordered",
		prop.RequestDistribution: "constant",
		prop.ReadProportion:      "0",
		prop.UpdateProportion:    "1",
	})

	db := newMockDB()
	loadKeys(t, c, ctx, db, 1)

	key := c.buildKeyName(0)
	require.NoError(t, c.DoTransaction(ctx, db))

	cached, ok := c.timestamps.Load(key)
	require.True(t, ok)

	row := db.records[key]
	require.Contains(t, row, TimestampField)
	clientID, millis, found := strings.Cut(string(row[TimestampField]), "|")
	require.True(t, found)
	assert.Equal(t, "0", clientID)
	assert.Equal(t, strconv.FormatInt(cached, 10), millis)

	// The spatial code was written at load time and updates leave it alone.
	require.Contains(t, row, LocationHashField)
	code, ok := c.assigner.Lookup(key)
	require.True(t, ok)
	assert.Equal(t, strconv.FormatInt(code, 10), string(row[LocationHashField]))
}

func TestVerifyRowOutcomes(t *testing.T) {
	settings := map[string]string{
		prop.RecordCount:         "1",
		prop.InsertOrder:         "ordered",
		prop.RequestDistribution: "constant",
		// csv output is the easiest to assert on.
		prop.MeasurementType: "csv",
	}

	t.Run("match", func(t *testing.T) {
		c, ctx := newTestCore(t, settings)
		db := newMockDB()
		loadKeys(t, c, ctx, db, 1)
		key := c.buildKeyName(0)

		row, err := db.Read(ctx, c.table, key, nil)
		require.NoError(t, err)
		c.verifyRow(key, row)

		assert.Contains(t, statusOutput(t), "VERIFY,OK,1")
	})

	t.Run("missing record", func(t *testing.T) {
		c, _ := newTestCore(t, settings)
		c.verifyRow("user0", nil)

		assert.Contains(t, statusOutput(t), "VERIFY,ERROR,1")
	})

	t.Run("mismatch", func(t *testing.T) {
		c, ctx := newTestCore(t, settings)
		db := newMockDB()
		loadKeys(t, c, ctx, db, 1)
		key := c.buildKeyName(0)

		db.records[key][TimestampField] = []byte("9|9999999999999999")
		row, err := db.Read(ctx, c.table, key, nil)
		require.NoError(t, err)
		c.verifyRow(key, row)

		assert.Contains(t, statusOutput(t), "VERIFY,UNEXPECTED_STATE,1")
	})

	t.Run("stale data from previous run", func(t *testing.T) {
		c, ctx := newTestCore(t, settings)
		db := newMockDB()
		loadKeys(t, c, ctx, db, 1)
		key := c.buildKeyName(0)

		db.records[key][TimestampField] = []byte("9|" + strconv.FormatInt(c.workloadStartTime-1000, 10))
		row, err := db.Read(ctx, c.table, key, nil)
		require.NoError(t, err)
		c.verifyRow(key, row)

		// Stale rows are skipped without recording an outcome.
		assert.NotContains(t, statusOutput(t), "VERIFY")
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		c, ctx := newTestCore(t, settings)
		db := newMockDB()
		loadKeys(t, c, ctx, db, 1)
		key := c.buildKeyName(0)

		db.records[key][TimestampField] = []byte("garbage")
		row, err := db.Read(ctx, c.table, key, nil)
		require.NoError(t, err)
		c.verifyRow(key, row)

		assert.Contains(t, statusOutput(t), "VERIFY,UNEXPECTED_STATE,1")
	})
}

// statusOutput renders the current global measurement in csv style and
// returns it.
func statusOutput(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, measurement.Output(&buf))
	return buf.String()
}

func TestScanLengthBounds(t *testing.T) {
	c, ctx := newTestCore(t, map[string]string{
		prop.RecordCount:    "100",
		prop.InsertOrder:    "ordered",
		prop.ReadProportion: "0",
		prop.ScanProportion: "1",
		prop.MaxScanLength:  "10",
	})

	db := newMockDB()
	loadKeys(t, c, ctx, db, 100)

	for i := 0; i < 1000; i++ {
		require.NoError(t, c.DoTransaction(ctx, db))
	}

	require.Len(t, db.scanRequests, 1000)
	for _, n := range db.scanRequests {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 10)
	}
}

func TestCreateValidation(t *testing.T) {
	p := properties.NewProperties()
	p.Set(prop.RecordCount, "10")
	p.Set(prop.InsertStart, "5")
	p.Set(prop.InsertCount, "10")
	_, err := coreCreator{}.Create(p)
	assert.Error(t, err)

	p = properties.NewProperties()
	p.Set(prop.RecordCount, "10")
	p.Set(prop.RequestDistribution, "nosuchdistribution")
	_, err = coreCreator{}.Create(p)
	assert.Error(t, err)
}
