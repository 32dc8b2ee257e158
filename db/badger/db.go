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

package badger

import (
	"context"
	"os"

	"github.com/dgraph-io/badger"
	"github.com/magiconair/properties"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/util"
)

// badger properties
const (
	badgerDir      = "badger.dir"
	badgerValueDir = "badger.valuedir"
	badgerDropData = "badger.dropdata"
)

type badgerCreator struct {
}

// badgerDB keeps each record under a single "table:key" entry, with the
// field map packed by RowCodec.
type badgerDB struct {
	p *properties.Properties

	db *badger.DB

	r       *util.RowCodec
	bufPool *util.BufPool
}

func (c badgerCreator) Create(p *properties.Properties) (bench.DB, error) {
	opts := badger.DefaultOptions
	opts.Dir = p.GetString(badgerDir, "/tmp/badger")
	opts.ValueDir = p.GetString(badgerValueDir, opts.Dir)

	if p.GetBool(badgerDropData, false) {
		os.RemoveAll(opts.Dir)
		os.RemoveAll(opts.ValueDir)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &badgerDB{
		p:       p,
		db:      db,
		r:       util.NewRowCodec(),
		bufPool: util.NewBufPool(),
	}, nil
}

func (db *badgerDB) Close() error {
	return db.db.Close()
}

func (db *badgerDB) InitThread(ctx context.Context, _ int, _ int) context.Context {
	return ctx
}

func (db *badgerDB) CleanupThread(_ context.Context) {
}

func getRowKey(table string, key string) []byte {
	return append(append([]byte(table), ':'), key...)
}

func (db *badgerDB) Read(_ context.Context, table string, key string, fields []string) (map[string][]byte, error) {
	var m map[string][]byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(getRowKey(table, key))
		if err != nil {
			return err
		}
		row, err := item.Value()
		if err != nil {
			return err
		}

		m, err = db.r.Decode(row, fields)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}

	return m, err
}

func (db *badgerDB) Scan(_ context.Context, table string, startKey string, count int, fields []string) ([]map[string][]byte, error) {
	res := make([]map[string][]byte, 0, count)
	err := db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(getRowKey(table, startKey)); it.Valid() && len(res) < count; it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			m, err := db.r.Decode(value, fields)
			if err != nil {
				return err
			}

			res = append(res, m)
		}

		return nil
	})

	return res, err
}

func (db *badgerDB) Update(_ context.Context, table string, key string, values map[string][]byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		rowKey := getRowKey(table, key)
		item, err := txn.Get(rowKey)
		if err != nil {
			return err
		}

		value, err := item.Value()
		if err != nil {
			return err
		}

		data, err := db.r.Decode(value, nil)
		if err != nil {
			return err
		}

		for field, value := range values {
			data[field] = value
		}

		buf := db.bufPool.Get()
		defer db.bufPool.Put(buf)

		return txn.Set(rowKey, db.r.Encode(buf, data))
	})
}

func (db *badgerDB) Insert(_ context.Context, table string, key string, values map[string][]byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		buf := db.bufPool.Get()
		defer db.bufPool.Put(buf)

		return txn.Set(getRowKey(table, key), db.r.Encode(buf, values))
	})
}

func (db *badgerDB) Delete(_ context.Context, table string, key string) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(getRowKey(table, key))
	})
}

func init() {
	bench.RegisterDBCreator("badger", badgerCreator{})
}
