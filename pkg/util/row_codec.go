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

package util

import (
	"encoding/binary"

	"github.com/pingcap/errors"
)

// RowCodec encodes a field/value map into one opaque row value and back, for
// key-value stores that keep the whole record under a single key.
type RowCodec struct{}

// NewRowCodec creates the RowCodec.
func NewRowCodec() *RowCodec {
	return &RowCodec{}
}

// Encode appends the encoded row to buf and returns it.
func (c *RowCodec) Encode(buf []byte, values map[string][]byte) []byte {
	var scratch [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(scratch[:], uint64(len(values)))
	buf = append(buf, scratch[:n]...)

	for field, value := range values {
		n = binary.PutUvarint(scratch[:], uint64(len(field)))
		buf = append(buf, scratch[:n]...)
		buf = append(buf, field...)

		n = binary.PutUvarint(scratch[:], uint64(len(value)))
		buf = append(buf, scratch[:n]...)
		buf = append(buf, value...)
	}

	return buf
}

// Decode decodes the row and returns the fields asked for, or all fields when
// fields is nil.
func (c *RowCodec) Decode(row []byte, fields []string) (map[string][]byte, error) {
	count, n := binary.Uvarint(row)
	if n <= 0 {
		return nil, errors.New("invalid row encoding")
	}
	row = row[n:]

	var wanted map[string]struct{}
	if len(fields) > 0 {
		wanted = make(map[string]struct{}, len(fields))
		for _, f := range fields {
			wanted[f] = struct{}{}
		}
	}

	values := make(map[string][]byte, count)
	for i := uint64(0); i < count; i++ {
		fieldLen, n := binary.Uvarint(row)
		if n <= 0 || uint64(len(row[n:])) < fieldLen {
			return nil, errors.New("invalid row encoding")
		}
		field := string(row[n : n+int(fieldLen)])
		row = row[n+int(fieldLen):]

		valueLen, n := binary.Uvarint(row)
		if n <= 0 || uint64(len(row[n:])) < valueLen {
			return nil, errors.New("invalid row encoding")
		}
		value := row[n : n+int(valueLen)]
		row = row[n+int(valueLen):]

		if wanted != nil {
			if _, ok := wanted[field]; !ok {
				continue
			}
		}

		v := make([]byte, len(value))
		copy(v, value)
		values[field] = v
	}

	return values, nil
}
