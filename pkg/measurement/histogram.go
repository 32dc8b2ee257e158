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
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/util"
)

// Metric name.
const (
	ELAPSED   = "ELAPSED"
	COUNT     = "COUNT"
	QPS       = "QPS"
	AVG       = "AVG"
	MIN       = "MIN"
	MAX       = "MAX"
	PER99TH   = "PER99TH"
	PER999TH  = "PER999TH"
	PER9999TH = "PER9999TH"
)

// Latencies are recorded in microseconds, up to 24 hours.
const maxLatencyUs = int64(24) * 60 * 60 * 1000 * 1000

type histogram struct {
	hist      *hdrhistogram.Histogram
	startTime time.Time
}

func newHistogram() *histogram {
	return &histogram{
		hist:      hdrhistogram.New(1, maxLatencyUs, 3),
		startTime: time.Now(),
	}
}

func (h *histogram) Measure(latency time.Duration) {
	n := latency.Microseconds()
	if n > maxLatencyUs {
		n = maxLatencyUs
	}
	_ = h.hist.RecordValue(n)
}

func (h *histogram) Summary() []string {
	elapsed := time.Since(h.startTime).Seconds()
	count := h.hist.TotalCount()

	return []string{
		util.FloatToOneString(elapsed),
		util.IntToString(count),
		util.FloatToOneString(float64(count) / elapsed),
		util.FloatToOneString(h.hist.Mean()),
		util.IntToString(h.hist.Min()),
		util.IntToString(h.hist.Max()),
		util.IntToString(h.hist.ValueAtQuantile(99)),
		util.IntToString(h.hist.ValueAtQuantile(99.9)),
		util.IntToString(h.hist.ValueAtQuantile(99.99)),
	}
}

func (h *histogram) Info() bench.MeasurementInfo {
	elapsed := time.Since(h.startTime).Seconds()
	count := h.hist.TotalCount()

	res := make(map[string]interface{})
	res[ELAPSED] = elapsed
	res[COUNT] = count
	res[QPS] = float64(count) / elapsed
	res[AVG] = h.hist.Mean()
	res[MIN] = h.hist.Min()
	res[MAX] = h.hist.Max()
	res[PER99TH] = h.hist.ValueAtQuantile(99)
	res[PER999TH] = h.hist.ValueAtQuantile(99.9)
	res[PER9999TH] = h.hist.ValueAtQuantile(99.99)

	return newHistogramInfo(res)
}

type histogramInfo struct {
	info map[string]interface{}
}

func newHistogramInfo(info map[string]interface{}) *histogramInfo {
	return &histogramInfo{info: info}
}

func (hi *histogramInfo) Get(metricName string) interface{} {
	if value, ok := hi.info[metricName]; ok {
		return value
	}
	return nil
}
