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
	"fmt"
	"io"
	"time"

	"github.com/datafog/geobench/pkg/bench"
)

type csventry struct {
	// start time of the operation in us from unix epoch
	startUs int64
	// latency of the operation in us
	latencyUs int64
}

// csvs records every single sample instead of aggregating, for offline
// analysis of the raw latency stream.
type csvs struct {
	opCsv    map[string][]csventry
	statuses *statusCounter
}

func InitCSV() *csvs {
	return &csvs{
		opCsv:    make(map[string][]csventry),
		statuses: newStatusCounter(),
	}
}

func (c *csvs) Measure(op string, start time.Time, lan time.Duration) {
	c.opCsv[op] = append(c.opCsv[op], csventry{
		startUs:   start.UnixMicro(),
		latencyUs: lan.Microseconds(),
	})
}

func (c *csvs) ReportStatus(op string, status bench.Status) {
	c.statuses.report(op, status)
}

func (c *csvs) Info() map[string]bench.MeasurementInfo {
	info := make(map[string]bench.MeasurementInfo, len(c.opCsv))
	for op := range c.opCsv {
		info[op] = nil
	}
	return info
}

func (c *csvs) OpNames() []string {
	names := make([]string, 0, len(c.opCsv))
	for op := range c.opCsv {
		names = append(names, op)
	}
	return names
}

func (c *csvs) Output(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "operation,timestamp_us,latency_us"); err != nil {
		return err
	}
	for op, entries := range c.opCsv {
		for _, entry := range entries {
			if _, err := fmt.Fprintf(w, "%s,%d,%d\n", op, entry.startUs, entry.latencyUs); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, "operation,status,count"); err != nil {
		return err
	}
	for _, line := range c.statuses.lines() {
		if _, err := fmt.Fprintf(w, "%s,%s,%s\n", line[0], line[1], line[2]); err != nil {
			return err
		}
	}
	return nil
}
