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
	"context"

	"github.com/magiconair/properties"
)

// Workload defines different workload scenario to be run.
type Workload interface {
	// Close closes the workload.
	Close() error

	// InitThread initializes the state associated to the goroutine worker.
	// The Returned context will be passed to the following DoInsert and DoTransaction.
	InitThread(ctx context.Context, threadID int, threadCount int) context.Context

	// CleanupThread cleans up the state when the worker finishes.
	CleanupThread(ctx context.Context)

	// DoInsert does one insert operation for the load phase.
	DoInsert(ctx context.Context, db DB) error

	// DoTransaction does one operation of the run phase.
	DoTransaction(ctx context.Context, db DB) error
}

// WorkloadCreator creates a Workload.
type WorkloadCreator interface {
	Create(p *properties.Properties) (Workload, error)
}

var workloadCreators = map[string]WorkloadCreator{}

// RegisterWorkloadCreator registers a creator for the workload.
func RegisterWorkloadCreator(name string, creator WorkloadCreator) {
	_, ok := workloadCreators[name]
	if ok {
		panic("duplicate register workload " + name)
	}

	workloadCreators[name] = creator
}

// GetWorkloadCreator gets the WorkloadCreator for the workload.
func GetWorkloadCreator(name string) WorkloadCreator {
	return workloadCreators[name]
}
