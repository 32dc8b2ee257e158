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

package boltdb

import (
	"context"
	"os"

	"github.com/magiconair/properties"
	"github.com/pingcap/errors"
	"go.etcd.io/bbolt"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/prop"
	"github.com/datafog/geobench/pkg/util"
)

// bbolt properties
const (
	bboltPath            = "bbolt.path"
	bboltTimeout         = "bbolt.timeout"
	bboltNoGrowSync      = "bbolt.no_grow_sync"
	bboltReadOnly        = "bbolt.read_only"
	bboltMmapFlags       = "bbolt.mmap_flags"
	bboltInitialMmapSize = "bbolt.initial_mmap_size"
	bboltFreelistType    = "bbolt.freelist_type"
)

type bboltCreator struct {
}

// bboltDB keeps one bucket per table, one RowCodec-packed value per key.
type bboltDB struct {
	p *properties.Properties

	db *bbolt.DB

	r       *util.RowCodec
	bufPool *util.BufPool
}

func (c bboltCreator) Create(p *properties.Properties) (bench.DB, error) {
	path := p.GetString(bboltPath, "/tmp/bbolt")

	if p.GetBool(prop.DropData, prop.DropDataDefault) {
		os.RemoveAll(path)
	}

	opts := *bbolt.DefaultOptions
	opts.Timeout = p.GetDuration(bboltTimeout, 0)
	opts.NoGrowSync = p.GetBool(bboltNoGrowSync, false)
	opts.ReadOnly = p.GetBool(bboltReadOnly, false)
	opts.MmapFlags = p.GetInt(bboltMmapFlags, 0)
	opts.InitialMmapSize = p.GetInt(bboltInitialMmapSize, 0)
	opts.FreelistType = bbolt.FreelistType(p.GetString(bboltFreelistType, string(bbolt.FreelistArrayType)))

	db, err := bbolt.Open(path, 0600, &opts)
	if err != nil {
		return nil, err
	}

	return &bboltDB{
		p:       p,
		db:      db,
		r:       util.NewRowCodec(),
		bufPool: util.NewBufPool(),
	}, nil
}

func (db *bboltDB) Close() error {
	return db.db.Close()
}

func (db *bboltDB) InitThread(ctx context.Context, _ int, _ int) context.Context {
	return ctx
}

func (db *bboltDB) CleanupThread(_ context.Context) {
}

func (db *bboltDB) Read(_ context.Context, table string, key string, fields []string) (map[string][]byte, error) {
	var m map[string][]byte
	err := db.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}

		row := bucket.Get([]byte(key))
		if row == nil {
			return nil
		}

		var err error
		m, err = db.r.Decode(row, fields)
		return err
	})
	return m, err
}

func (db *bboltDB) Scan(_ context.Context, table string, startKey string, count int, fields []string) ([]map[string][]byte, error) {
	res := make([]map[string][]byte, 0, count)
	err := db.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for key, value := cursor.Seek([]byte(startKey)); key != nil && len(res) < count; key, value = cursor.Next() {
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

func (db *bboltDB) Update(_ context.Context, table string, key string, values map[string][]byte) error {
	return db.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return errors.Errorf("table not found: %s", table)
		}

		value := bucket.Get([]byte(key))
		if value == nil {
			return errors.Errorf("key not found: %s.%s", table, key)
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

		return bucket.Put([]byte(key), db.r.Encode(buf, data))
	})
}

func (db *bboltDB) Insert(_ context.Context, table string, key string, values map[string][]byte) error {
	return db.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return err
		}

		buf := db.bufPool.Get()
		defer db.bufPool.Put(buf)

		return bucket.Put([]byte(key), db.r.Encode(buf, values))
	})
}

func (db *bboltDB) Delete(_ context.Context, table string, key string) error {
	return db.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return err
		}

		if bucket.Stats().KeyN == 0 {
			_ = tx.DeleteBucket([]byte(table))
		}
		return nil
	})
}

func init() {
	bench.RegisterDBCreator("bbolt", bboltCreator{})
}
