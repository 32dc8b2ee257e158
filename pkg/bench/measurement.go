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

package bench

import (
	"io"
	"time"
)

// MeasurementInfo contains metrics of one measurement.
type MeasurementInfo interface {
	// Get returns the value corresponded to the specified metric, such as
	// QPS, MIN, MAX, etc. If the metric does not exist, the returned value
	// will be nil.
	Get(metricName string) interface{}
}

// Measurement is the sink for operation latencies and statuses.
type Measurement interface {
	// Measure measures the latency of an operation.
	Measure(op string, start time.Time, latency time.Duration)

	// ReportStatus counts one outcome for the operation.
	ReportStatus(op string, status Status)

	// Info returns the MeasurementInfo of every measured operation, keyed by
	// operation name.
	Info() map[string]MeasurementInfo

	// OpNames returns the names of all measured operations.
	OpNames() []string

	// Output writes the measurement results to the specified writer.
	Output(w io.Writer) error
}
