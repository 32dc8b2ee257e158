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
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/magiconair/properties"
	"github.com/pingcap/errors"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/generator"
	"github.com/datafog/geobench/pkg/location"
	"github.com/datafog/geobench/pkg/measurement"
	"github.com/datafog/geobench/pkg/prop"
	"github.com/datafog/geobench/pkg/util"
)

// Record field names. Every record carries its spatial bucket code and the
// timestamp of its last write, tagged with the writing client.
const (
	LocationHashField = "s2geometry"
	TimestampField    = "timestamp"
)

type contextKey string

const stateKey = contextKey("core")

type coreState struct {
	r *rand.Rand
	// loc draws spatial codes from this worker's private streams.
	loc *location.Thread
}

type operationType int64

const (
	read operationType = iota + 1
	update
	insert
	scan
	readModifyWrite
)

// core is the standard benchmark scenario: a set of clients doing CRUD
// operations against spatially bucketed records, with the operation mix and
// key distribution controlled by properties.
type core struct {
	p *properties.Properties

	table      string
	fieldNames []string

	readAllFields  bool
	writeAllFields bool

	keySequence                  bench.Generator
	operationChooser             *generator.Discrete
	keyChooser                   bench.Generator
	transactionInsertKeySequence *generator.AcknowledgedCounter
	scanLength                   bench.Generator
	orderedInserts               bool
	recordCount                  int64
	zeroPadding                  int64
	keyPrefix                    string
	insertionRetryLimit          int64
	insertionRetryInterval       int64

	assigner *location.Assigner
	// timestamps remembers the last written timestamp per key, for verifying
	// what reads bring back. Last writer wins.
	timestamps *util.ShardedInt64Map

	clientID          string
	workloadStartTime int64
}

func createOperationGenerator(p *properties.Properties) *generator.Discrete {
	readProportion := p.GetFloat64(prop.ReadProportion, prop.ReadProportionDefault)
	updateProportion := p.GetFloat64(prop.UpdateProportion, prop.UpdateProportionDefault)
	insertProportion := p.GetFloat64(prop.InsertProportion, prop.InsertProportionDefault)
	scanProportion := p.GetFloat64(prop.ScanProportion, prop.ScanProportionDefault)
	readModifyWriteProportion := p.GetFloat64(prop.ReadModifyWriteProportion, prop.ReadModifyWriteProportionDefault)

	operationChooser := generator.NewDiscrete()
	if readProportion > 0 {
		operationChooser.Add(readProportion, int64(read))
	}

	if updateProportion > 0 {
		operationChooser.Add(updateProportion, int64(update))
	}

	if insertProportion > 0 {
		operationChooser.Add(insertProportion, int64(insert))
	}

	if scanProportion > 0 {
		operationChooser.Add(scanProportion, int64(scan))
	}

	if readModifyWriteProportion > 0 {
		operationChooser.Add(readModifyWriteProportion, int64(readModifyWrite))
	}

	return operationChooser
}

// InitThread implements the Workload InitThread interface.
func (c *core) InitThread(ctx context.Context, _ int, _ int) context.Context {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	state := &coreState{
		r:   r,
		loc: c.assigner.Thread(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	return context.WithValue(ctx, stateKey, state)
}

// CleanupThread implements the Workload CleanupThread interface.
func (c *core) CleanupThread(_ context.Context) {

}

// Close implements the Workload Close interface.
func (c *core) Close() error {
	return nil
}

func (c *core) buildKeyName(keyNum int64) string {
	if !c.orderedInserts {
		keyNum = util.Hash64(keyNum)
	}

	return fmt.Sprintf("%s%0[3]*[2]d", c.keyPrefix, keyNum, c.zeroPadding)
}

// buildValues builds the full record for key: its stable spatial code and a
// fresh write timestamp. The timestamp is remembered for later verification.
func (c *core) buildValues(state *coreState, key string) map[string][]byte {
	values := make(map[string][]byte, 2)

	locationHash := state.loc.Assign(key)
	values[LocationHashField] = []byte(strconv.FormatInt(locationHash, 10))

	values[TimestampField] = c.buildTimestamp(key)

	return values
}

// buildUpdate builds the fields an update writes. The spatial code never
// changes after assignment, so unless writeallfields asks for the full
// record only the timestamp is rewritten.
func (c *core) buildUpdate(state *coreState, key string) map[string][]byte {
	if c.writeAllFields {
		return c.buildValues(state, key)
	}

	values := make(map[string][]byte, 1)
	values[TimestampField] = c.buildTimestamp(key)
	return values
}

func (c *core) buildTimestamp(key string) []byte {
	now := time.Now().UnixMilli()
	c.timestamps.Store(key, now)
	return []byte(c.clientID + "|" + strconv.FormatInt(now, 10))
}

// verifyRow checks the timestamp a read brought back against the last one
// written for the key. A timestamp predating the start of this run is data
// from a previous run and is not compared. Outcomes are recorded under the
// VERIFY operation, as a latency sample and a status count.
func (c *core) verifyRow(key string, cells map[string][]byte) {
	verifyStatus := bench.StatusOK
	start := time.Now()

	if len(cells) == 0 {
		// Null data is never valid here.
		verifyStatus = bench.StatusError
	} else if expected, ok := c.timestamps.Load(key); ok {
		retrieved, err := parseTimestamp(cells[TimestampField])
		switch {
		case err != nil:
			verifyStatus = bench.StatusUnexpectedState
		case retrieved < c.workloadStartTime:
			return
		case retrieved != expected:
			verifyStatus = bench.StatusUnexpectedState
		}
	}

	measurement.Measure("VERIFY", start, time.Since(start))
	measurement.ReportStatus("VERIFY", verifyStatus)
}

// parseTimestamp extracts the write time from a "clientID|unixMillis" cell.
func parseTimestamp(cell []byte) (int64, error) {
	_, millis, found := strings.Cut(string(cell), "|")
	if !found {
		return 0, errors.Errorf("malformed timestamp cell %q", cell)
	}
	return strconv.ParseInt(millis, 10, 64)
}

func (c *core) readFields() []string {
	if c.readAllFields {
		return c.fieldNames
	}
	return []string{TimestampField}
}

// DoInsert implements the Workload DoInsert interface.
func (c *core) DoInsert(ctx context.Context, db bench.DB) error {
	state := ctx.Value(stateKey).(*coreState)
	keyNum := c.keySequence.Next(state.r)
	dbKey := c.buildKeyName(keyNum)
	values := c.buildValues(state, dbKey)

	err := c.insertWithRetry(ctx, db, dbKey, values)
	if errors.Cause(err) == context.Canceled {
		return nil
	}
	return err
}

// insertWithRetry inserts the record, retrying up to the configured limit
// with a sleep drawn from [0.8, 1.2) times the configured interval. Without
// retries configured a single failed insertion fails the load process.
func (c *core) insertWithRetry(ctx context.Context, db bench.DB, dbKey string, values map[string][]byte) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Duration(c.insertionRetryInterval) * time.Second
	bo.RandomizationFactor = 0.2
	bo.Multiplier = 1
	bo.MaxInterval = bo.InitialInterval
	bo.MaxElapsedTime = 0

	return backoff.RetryNotify(
		func() error {
			return db.Insert(ctx, c.table, dbKey, values)
		},
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.insertionRetryLimit)), ctx),
		func(err error, _ time.Duration) {
			fmt.Fprintf(os.Stderr, "retrying insertion of key %s: %v\n", dbKey, err)
		})
}

// DoTransaction implements the Workload DoTransaction interface.
func (c *core) DoTransaction(ctx context.Context, db bench.DB) error {
	state := ctx.Value(stateKey).(*coreState)

	operation := operationType(c.operationChooser.Next(state.r))
	switch operation {
	case read:
		return c.doTransactionRead(ctx, db, state)
	case update:
		return c.doTransactionUpdate(ctx, db, state)
	case insert:
		return c.doTransactionInsert(ctx, db, state)
	case scan:
		return c.doTransactionScan(ctx, db, state)
	case readModifyWrite:
		return c.doTransactionReadModifyWrite(ctx, db, state)
	default:
		return errors.New("no operation with a positive proportion is configured")
	}
}

// nextKeyNum picks a key number that is at or below the safe boundary of the
// insert sequence, so transactions never touch keys that are not fully
// inserted yet.
func (c *core) nextKeyNum(state *coreState) int64 {
	r := state.r
	keyNum := int64(0)
	if _, ok := c.keyChooser.(*generator.Exponential); ok {
		keyNum = -1
		for keyNum < 0 {
			keyNum = c.transactionInsertKeySequence.Last() - c.keyChooser.Next(r)
		}
	} else {
		keyNum = math.MaxInt64
		for keyNum > c.transactionInsertKeySequence.Last() {
			keyNum = c.keyChooser.Next(r)
		}
	}
	return keyNum
}

func (c *core) doTransactionRead(ctx context.Context, db bench.DB, state *coreState) error {
	keyNum := c.nextKeyNum(state)
	keyName := c.buildKeyName(keyNum)

	values, err := db.Read(ctx, c.table, keyName, c.readFields())
	if err != nil {
		return err
	}

	c.verifyRow(keyName, values)

	return nil
}

func (c *core) doTransactionReadModifyWrite(ctx context.Context, db bench.DB, state *coreState) error {
	start := time.Now()
	defer func() {
		lan := time.Since(start)
		measurement.Measure("READ_MODIFY_WRITE", start, lan)
		measurement.MeasureIntended("READ_MODIFY_WRITE", start, lan)
	}()

	keyNum := c.nextKeyNum(state)
	keyName := c.buildKeyName(keyNum)

	readValues, err := db.Read(ctx, c.table, keyName, c.readFields())
	if err != nil {
		return err
	}

	// Verify against the timestamp cached by the previous write, before
	// building the new record overwrites it.
	c.verifyRow(keyName, readValues)

	values := c.buildUpdate(state, keyName)

	return db.Update(ctx, c.table, keyName, values)
}

func (c *core) doTransactionInsert(ctx context.Context, db bench.DB, state *coreState) error {
	keyNum := c.transactionInsertKeySequence.Next(state.r)
	defer c.transactionInsertKeySequence.Acknowledge(keyNum)
	dbKey := c.buildKeyName(keyNum)
	values := c.buildValues(state, dbKey)

	return db.Insert(ctx, c.table, dbKey, values)
}

func (c *core) doTransactionScan(ctx context.Context, db bench.DB, state *coreState) error {
	keyNum := c.nextKeyNum(state)
	startKeyName := c.buildKeyName(keyNum)

	scanLen := c.scanLength.Next(state.r)

	_, err := db.Scan(ctx, c.table, startKeyName, int(scanLen), c.readFields())

	return err
}

func (c *core) doTransactionUpdate(ctx context.Context, db bench.DB, state *coreState) error {
	keyNum := c.nextKeyNum(state)
	keyName := c.buildKeyName(keyNum)

	values := c.buildUpdate(state, keyName)

	return db.Update(ctx, c.table, keyName, values)
}

// coreCreator creates the core workload.
type coreCreator struct {
}

// Create implements the WorkloadCreator Create interface.
func (coreCreator) Create(p *properties.Properties) (bench.Workload, error) {
	c := new(core)
	c.p = p
	c.table = p.GetString(prop.TableName, prop.TableNameDefault)
	c.fieldNames = []string{LocationHashField, TimestampField}
	c.recordCount = p.GetInt64(prop.RecordCount, prop.RecordCountDefault)
	if c.recordCount == 0 {
		c.recordCount = int64(math.MaxInt32)
	}

	requestDistrib := p.GetString(prop.RequestDistribution, prop.RequestDistributionDefault)
	maxScanLength := p.GetInt64(prop.MaxScanLength, prop.MaxScanLengthDefault)
	scanLengthDistrib := p.GetString(prop.ScanLengthDistribution, prop.ScanLengthDistributionDefault)

	insertStart := p.GetInt64(prop.InsertStart, prop.InsertStartDefault)
	insertCount := p.GetInt64(prop.InsertCount, c.recordCount-insertStart)
	if c.recordCount < insertStart+insertCount {
		return nil, errors.Errorf("record count %d must be bigger than insert start %d + count %d",
			c.recordCount, insertStart, insertCount)
	}
	c.zeroPadding = p.GetInt64(prop.ZeroPadding, prop.ZeroPaddingDefault)
	c.keyPrefix = p.GetString(prop.KeyPrefix, prop.KeyPrefixDefault)
	c.readAllFields = p.GetBool(prop.ReadAllFields, prop.ReadAllFieldsDefault)
	c.writeAllFields = p.GetBool(prop.WriteAllFields, prop.WriteAllFieldsDefault)

	if p.GetString(prop.InsertOrder, prop.InsertOrderDefault) == "hashed" {
		c.orderedInserts = false
	} else {
		c.orderedInserts = true
	}

	c.keySequence = generator.NewCounter(insertStart)
	c.operationChooser = createOperationGenerator(p)

	var err error
	c.transactionInsertKeySequence = generator.NewAcknowledgedCounter(c.recordCount)
	switch requestDistrib {
	case "uniform":
		c.keyChooser, err = generator.NewUniform(insertStart, insertStart+insertCount-1)
	case "sequential":
		c.keyChooser, err = generator.NewSequential(insertStart, insertStart+insertCount-1)
	case "zipfian":
		// The expected number of new keys is bounded by 2x the configured
		// insert proportion so that the chooser's key space covers keys
		// inserted during the run.
		insertProportion := p.GetFloat64(prop.InsertProportion, prop.InsertProportionDefault)
		opCount := p.GetInt64(prop.OperationCount, 0)
		expectedNewKeys := int64(float64(opCount) * insertProportion * 2.0)
		c.keyChooser, err = generator.NewScrambledZipfian(insertStart, insertStart+insertCount+expectedNewKeys, generator.ZipfianConstant)
	case "latest":
		c.keyChooser = generator.NewSkewedLatest(c.transactionInsertKeySequence)
	case "hotspot":
		hotsetFraction := p.GetFloat64(prop.HotspotDataFraction, prop.HotspotDataFractionDefault)
		hotopnFraction := p.GetFloat64(prop.HotspotOpnFraction, prop.HotspotOpnFractionDefault)
		c.keyChooser, err = generator.NewHotspot(insertStart, insertStart+insertCount-1, hotsetFraction, hotopnFraction)
	case "exponential":
		percentile := p.GetFloat64(prop.ExponentialPercentile, prop.ExponentialPercentileDefault)
		frac := p.GetFloat64(prop.ExponentialFrac, prop.ExponentialFracDefault)
		c.keyChooser = generator.NewExponential(percentile, float64(c.recordCount)*frac)
	case "constant":
		c.keyChooser = generator.NewConstant(insertStart)
	default:
		return nil, errors.Errorf("unknown request distribution %s", requestDistrib)
	}
	if err != nil {
		return nil, err
	}

	switch scanLengthDistrib {
	case "uniform":
		c.scanLength, err = generator.NewUniform(1, maxScanLength)
	case "zipfian":
		c.scanLength, err = generator.NewZipfianWithRange(1, maxScanLength, generator.ZipfianConstant)
	default:
		return nil, errors.Errorf("distribution %s not allowed for scan length", scanLengthDistrib)
	}
	if err != nil {
		return nil, err
	}

	areaMin := p.GetInt64(prop.AreaMin, prop.AreaMinDefault)
	areaMax := p.GetInt64(prop.AreaMax, prop.AreaMaxDefault)
	hotspotMin := p.GetInt64(prop.HotspotMin, prop.HotspotMinDefault)
	hotspotMax := p.GetInt64(prop.HotspotMax, prop.HotspotMaxDefault)
	hotFraction := p.GetFloat64(prop.LocationHotFraction, prop.LocationHotFractionDefault)
	c.assigner, err = location.NewAssigner(areaMin, areaMax, hotspotMin, hotspotMax, hotFraction)
	if err != nil {
		return nil, err
	}
	c.timestamps = util.NewShardedInt64Map()

	c.clientID = p.GetString(prop.ClientID, prop.ClientIDDefault)
	c.workloadStartTime = time.Now().UnixMilli()

	c.insertionRetryLimit = p.GetInt64(prop.InsertionRetryLimit, prop.InsertionRetryLimitDefault)
	c.insertionRetryInterval = p.GetInt64(prop.InsertionRetryInterval, prop.InsertionRetryIntervalDefault)

	return c, nil
}

func init() {
	bench.RegisterWorkloadCreator("core", coreCreator{})
}
