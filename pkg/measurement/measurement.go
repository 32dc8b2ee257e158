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

package measurement

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/magiconair/properties"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/prop"
)

type measurement struct {
	sync.RWMutex

	p *properties.Properties

	opMeasurement bench.Measurement
}

func (m *measurement) measure(op string, start time.Time, lan time.Duration) {
	m.Lock()
	m.opMeasurement.Measure(op, start, lan)
	m.Unlock()
}

func (m *measurement) reportStatus(op string, status bench.Status) {
	m.Lock()
	m.opMeasurement.ReportStatus(op, status)
	m.Unlock()
}

func (m *measurement) output(w io.Writer) error {
	m.RLock()
	defer m.RUnlock()

	return m.opMeasurement.Output(w)
}

func (m *measurement) info() map[string]bench.MeasurementInfo {
	m.RLock()
	defer m.RUnlock()

	return m.opMeasurement.Info()
}

func (m *measurement) getOpNames() []string {
	m.RLock()
	defer m.RUnlock()

	return m.opMeasurement.OpNames()
}

// InitMeasure initializes the global measurement.
func InitMeasure(p *properties.Properties) {
	globalMeasure = new(measurement)
	globalMeasure.p = p
	measurementType := p.GetString(prop.MeasurementType, prop.MeasurementTypeDefault)
	switch measurementType {
	case "histogram":
		globalMeasure.opMeasurement = InitHistograms(p)
	case "csv":
		globalMeasure.opMeasurement = InitCSV()
	default:
		panic("unsupported measurement type: " + measurementType)
	}
	EnableWarmUp(p.GetInt64(prop.WarmUpTime, 0) > 0)
}

// Output prints the measurement summary to w.
func Output(w io.Writer) error {
	return globalMeasure.output(w)
}

// GenerateExtendedOutputs dumps extra artifacts of the measurement, if any.
func GenerateExtendedOutputs() {
	if h, ok := globalMeasure.opMeasurement.(*histograms); ok {
		h.GenerateExtendedOutputs()
	}
}

// EnableWarmUp sets whether to enable warm-up.
func EnableWarmUp(b bool) {
	if b {
		atomic.StoreInt32(&warmUp, 1)
	} else {
		atomic.StoreInt32(&warmUp, 0)
	}
}

// IsWarmUpFinished returns whether warm-up is finished or not.
func IsWarmUpFinished() bool {
	return atomic.LoadInt32(&warmUp) == 0
}

// Measure measures the operation.
func Measure(op string, start time.Time, lan time.Duration) {
	if IsWarmUpFinished() {
		globalMeasure.measure(op, start, lan)
	}
}

// MeasureIntended measures the operation from its intended start time, which
// includes any throttling delay imposed before the operation was issued.
func MeasureIntended(op string, start time.Time, lan time.Duration) {
	if IsWarmUpFinished() {
		globalMeasure.measure("Intended-"+op, start, lan)
	}
}

// ReportStatus counts one outcome for the operation.
func ReportStatus(op string, status bench.Status) {
	if IsWarmUpFinished() {
		globalMeasure.reportStatus(op, status)
	}
}

// Info returns all the operations MeasurementInfo.
// The key of returned map is the operation name.
func Info() map[string]bench.MeasurementInfo {
	return globalMeasure.info()
}

// GetOpNames returns a string slice which contains all the operation name measured.
func GetOpNames() []string {
	return globalMeasure.getOpNames()
}

var globalMeasure *measurement
var warmUp int32 // use as bool, 1 means in warmup progress, 0 means warmup finished.
