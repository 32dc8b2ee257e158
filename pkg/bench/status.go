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

// Status is the outcome of one store operation or of one verification.
type Status int

const (
	// StatusOK means the operation succeeded and any returned data matched
	// what was expected.
	StatusOK Status = iota
	// StatusError means the operation failed or data was missing entirely.
	StatusError
	// StatusNotFound means the requested record does not exist.
	StatusNotFound
	// StatusUnexpectedState means the operation succeeded but returned data
	// that does not match the expected state.
	StatusUnexpectedState
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusError:
		return "ERROR"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusUnexpectedState:
		return "UNEXPECTED_STATE"
	default:
		return "UNKNOWN"
	}
}
