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
	"bytes"
	"testing"
	"time"

	"github.com/magiconair/properties"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafog/geobench/pkg/bench"
	benchprop "github.com/datafog/geobench/pkg/prop"
)

func TestHistogramMeasurement(t *testing.T) {
	p := properties.NewProperties()
	InitMeasure(p)

	now := time.Now()
	for i := 1; i <= 100; i++ {
		Measure("READ", now, time.Duration(i)*time.Millisecond)
		ReportStatus("READ", bench.StatusOK)
	}
	MeasureIntended("READ", now, 5*time.Millisecond)
	ReportStatus("READ", bench.StatusNotFound)

	info := Info()
	require.Contains(t, info, "READ")
	require.Contains(t, info, "Intended-READ")
	assert.Equal(t, int64(100), info["READ"].Get(COUNT))
	assert.Nil(t, info["READ"].Get("NOSUCHMETRIC"))

	var buf bytes.Buffer
	require.NoError(t, Output(&buf))
	out := buf.String()
	assert.Contains(t, out, "READ")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "NOT_FOUND")
}

func TestCSVMeasurement(t *testing.T) {
	p := properties.NewProperties()
	p.Set(benchprop.MeasurementType, "csv")
	InitMeasure(p)

	now := time.Now()
	Measure("INSERT", now, 3*time.Millisecond)
	ReportStatus("INSERT", bench.StatusError)

	var buf bytes.Buffer
	require.NoError(t, Output(&buf))
	out := buf.String()
	assert.Contains(t, out, "operation,timestamp_us,latency_us")
	assert.Contains(t, out, "INSERT,")
	assert.Contains(t, out, "INSERT,ERROR,1")
}

func TestWarmUpGate(t *testing.T) {
	p := properties.NewProperties()
	p.Set(benchprop.WarmUpTime, "10")
	InitMeasure(p)

	Measure("READ", time.Now(), time.Millisecond)
	assert.NotContains(t, Info(), "READ")

	EnableWarmUp(false)
	Measure("READ", time.Now(), time.Millisecond)
	assert.Contains(t, Info(), "READ")
}
