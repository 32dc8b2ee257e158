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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/magiconair/properties"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/prop"
	"github.com/datafog/geobench/pkg/util"
)

var header = []string{"Operation", "Takes(s)", "Count", "OPS", "Avg(us)", "Min(us)", "Max(us)", "99th(us)", "99.9th(us)", "99.99th(us)"}

type histograms struct {
	p *properties.Properties

	histograms map[string]*histogram
	statuses   *statusCounter
}

func InitHistograms(p *properties.Properties) *histograms {
	return &histograms{
		p:          p,
		histograms: make(map[string]*histogram, 16),
		statuses:   newStatusCounter(),
	}
}

func (h *histograms) Measure(op string, _ time.Time, lan time.Duration) {
	opM, ok := h.histograms[op]
	if !ok {
		opM = newHistogram()
		h.histograms[op] = opM
	}

	opM.Measure(lan)
}

func (h *histograms) ReportStatus(op string, status bench.Status) {
	h.statuses.report(op, status)
}

func (h *histograms) summary() map[string][]string {
	summaries := make(map[string][]string, len(h.histograms))
	for op, opM := range h.histograms {
		summaries[op] = opM.Summary()
	}
	return summaries
}

func (h *histograms) Output(w io.Writer) error {
	summaries := h.summary()
	keys := make([]string, 0, len(summaries))
	for k := range summaries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := [][]string{}
	for _, op := range keys {
		line := []string{op}
		line = append(line, summaries[op]...)
		lines = append(lines, line)
	}

	statusLines := h.statuses.lines()

	outputStyle := h.p.GetString(prop.OutputStyle, util.OutputStylePlain)
	switch outputStyle {
	case util.OutputStylePlain:
		util.RenderString(w, "%-6s - %s\n", header, lines)
		util.RenderString(w, "%-6s - %s\n", statusHeader, statusLines)
	case util.OutputStyleJson:
		util.RenderJson(w, header, lines)
		util.RenderJson(w, statusHeader, statusLines)
	case util.OutputStyleTable:
		util.RenderTable(w, header, lines)
		util.RenderTable(w, statusHeader, statusLines)
	default:
		panic("unsupported outputstyle: " + outputStyle)
	}
	return nil
}

// GenerateExtendedOutputs dumps the full latency spectrum of every operation
// into per-operation percentile files when enabled.
func (h *histograms) GenerateExtendedOutputs() {
	if !h.p.GetBool(prop.MeasurementHistogramPercentileExport, prop.MeasurementHistogramPercentileExportDefault) {
		return
	}
	exportPath := h.p.GetString(prop.MeasurementHistogramPercentileExportFilepath, prop.MeasurementHistogramPercentileExportFilepathDefault)
	for op, opM := range h.histograms {
		outFile := fmt.Sprintf("%s%s-percentiles.txt", exportPath, op)
		fmt.Printf("Exporting the full latency spectrum for operation '%s' in percentile output format into file: %s.\n", op, outFile)
		f, err := os.Create(outFile)
		if err != nil {
			panic("failed to create percentile output file: " + err.Error())
		}
		w := bufio.NewWriter(f)
		_, err = opM.hist.PercentilesPrint(w, 1, 1.0)
		w.Flush()
		f.Close()
		if err != nil {
			panic("failed to print percentiles: " + err.Error())
		}
	}
}

func (h *histograms) Info() map[string]bench.MeasurementInfo {
	info := make(map[string]bench.MeasurementInfo, len(h.histograms))
	for op, opM := range h.histograms {
		info[op] = opM.Info()
	}
	return info
}

func (h *histograms) OpNames() []string {
	names := make([]string, 0, len(h.histograms))
	for op := range h.histograms {
		names = append(names, op)
	}
	return names
}
