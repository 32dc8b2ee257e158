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
	"sort"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/util"
)

var statusHeader = []string{"Operation", "Status", "Count"}

// statusCounter tallies operation outcomes. It carries no lock of its own;
// callers serialize access through the surrounding measurement lock.
type statusCounter struct {
	counts map[string]map[bench.Status]int64
}

func newStatusCounter() *statusCounter {
	return &statusCounter{
		counts: make(map[string]map[bench.Status]int64, 16),
	}
}

func (s *statusCounter) report(op string, status bench.Status) {
	m, ok := s.counts[op]
	if !ok {
		m = make(map[bench.Status]int64, 4)
		s.counts[op] = m
	}
	m[status]++
}

// lines returns one row per (operation, status) pair, sorted for stable
// output.
func (s *statusCounter) lines() [][]string {
	ops := make([]string, 0, len(s.counts))
	for op := range s.counts {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	lines := [][]string{}
	for _, op := range ops {
		statuses := make([]bench.Status, 0, len(s.counts[op]))
		for status := range s.counts[op] {
			statuses = append(statuses, status)
		}
		sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

		for _, status := range statuses {
			lines = append(lines, []string{op, status.String(), util.IntToString(s.counts[op][status])})
		}
	}
	return lines
}
