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

package prop

// Properties
const (
	InsertStart        = "insertstart"
	InsertCount        = "insertcount"
	InsertStartDefault = int64(0)

	OperationCount     = "operationcount"
	RecordCount        = "recordcount"
	RecordCountDefault = int64(0)
	Workload           = "workload"
	DB                 = "db"
	ThreadCount        = "threadcount"
	ThreadCountDefault = int64(1)
	Target             = "target"
	MaxExecutionTime   = "maxexecutiontime"
	WarmUpTime         = "warmuptime"
	DoTransactions     = "dotransactions"

	TableName        = "table"
	TableNameDefault = "usertable"

	ReadAllFields         = "readallfields"
	ReadAllFieldsDefault  = true
	WriteAllFields        = "writeallfields"
	WriteAllFieldsDefault = false

	ReadProportion                   = "readproportion"
	ReadProportionDefault            = float64(0.95)
	UpdateProportion                 = "updateproportion"
	UpdateProportionDefault          = float64(0.05)
	InsertProportion                 = "insertproportion"
	InsertProportionDefault          = float64(0.0)
	ScanProportion                   = "scanproportion"
	ScanProportionDefault            = float64(0.0)
	ReadModifyWriteProportion        = "readmodifywriteproportion"
	ReadModifyWriteProportionDefault = float64(0.0)

	// "uniform", "zipfian", "hotspot", "sequential", "exponential", "latest" or "constant"
	RequestDistribution        = "requestdistribution"
	RequestDistributionDefault = "uniform"
	ZeroPadding                = "zeropadding"
	ZeroPaddingDefault         = int64(1)
	MaxScanLength              = "maxscanlength"
	MaxScanLengthDefault       = int64(1000)
	// "uniform", "zipfian"
	ScanLengthDistribution        = "scanlengthdistribution"
	ScanLengthDistributionDefault = "uniform"
	// "ordered", "hashed"
	InsertOrder        = "insertorder"
	InsertOrderDefault = "hashed"

	HotspotDataFraction        = "hotspotdatafraction"
	HotspotDataFractionDefault = float64(0.2)
	HotspotOpnFraction         = "hotspotopnfraction"
	HotspotOpnFractionDefault  = float64(0.8)

	// Numeric code range of the whole benchmark area and of the spatial
	// hotspot nested inside it. The hotspot range must be fully contained
	// in the area range.
	AreaMin           = "area_min"
	AreaMax           = "area_max"
	HotspotMin        = "hotspot_min"
	HotspotMax        = "hotspot_max"
	AreaMinDefault    = int64(0)
	AreaMaxDefault    = int64(1 << 30)
	HotspotMinDefault = int64(0)
	HotspotMaxDefault = int64(1 << 27)

	InsertionRetryLimit           = "core_workload_insertion_retry_limit"
	InsertionRetryLimitDefault    = int64(0)
	InsertionRetryInterval        = "core_workload_insertion_retry_interval"
	InsertionRetryIntervalDefault = int64(3)

	ExponentialPercentile        = "exponential.percentile"
	ExponentialPercentileDefault = float64(95)
	ExponentialFrac              = "exponential.frac"
	ExponentialFracDefault       = float64(0.8571428571)

	ClientID        = "clientid"
	ClientIDDefault = "0"

	KeyPrefix        = "keyprefix"
	KeyPrefixDefault = "user"

	DebugPprof        = "debug.pprof"
	DebugPprofDefault = ":6060"

	Verbose        = "verbose"
	VerboseDefault = false

	DropData        = "dropdata"
	DropDataDefault = false

	LogInterval = "measurement.interval"

	// "histogram" or "csv"
	MeasurementType        = "measurementtype"
	MeasurementTypeDefault = "histogram"

	OutputStyle = "measurement.output_style"

	MeasurementHistogramPercentileExport                = "measurement.histogram.verbose"
	MeasurementHistogramPercentileExportDefault         = false
	MeasurementHistogramPercentileExportFilepath        = "measurement.histogram.verbose.filepath"
	MeasurementHistogramPercentileExportFilepathDefault = ""

	// Probability that a fresh key is assigned a code from the hotspot
	// range instead of the cold remainder of the area.
	LocationHotFraction        = "location.hot_fraction"
	LocationHotFractionDefault = float64(0.8)
)
