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

package redis

import (
	"context"

	"github.com/go-redis/redis/v9"
	"github.com/magiconair/properties"
	"github.com/pingcap/errors"

	"github.com/datafog/geobench/pkg/bench"
)

// redis properties
const (
	redisAddr     = "redis.addr"
	redisPassword = "redis.password"
	redisDB       = "redis.db"
)

type redisCreator struct {
}

// redisDb keeps each record as a Redis hash keyed by "table/key".
type redisDb struct {
	client *redis.Client
}

func (c redisCreator) Create(p *properties.Properties) (bench.DB, error) {
	d := new(redisDb)
	d.client = redis.NewClient(&redis.Options{
		Addr:     p.GetString(redisAddr, "127.0.0.1:6379"),
		Password: p.GetString(redisPassword, ""),
		DB:       p.GetInt(redisDB, 0),
	})

	if err := d.client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return d, nil
}

func (db *redisDb) Close() error {
	return db.client.Close()
}

func (db *redisDb) InitThread(ctx context.Context, _ int, _ int) context.Context {
	return ctx
}

func (db *redisDb) CleanupThread(_ context.Context) {

}

func rowKey(table string, key string) string {
	return table + "/" + key
}

func (db *redisDb) Read(ctx context.Context, table string, key string, fields []string) (map[string][]byte, error) {
	if len(fields) == 0 {
		row, err := db.client.HGetAll(ctx, rowKey(table, key)).Result()
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			return nil, nil
		}
		values := make(map[string][]byte, len(row))
		for f, v := range row {
			values[f] = []byte(v)
		}
		return values, nil
	}

	row, err := db.client.HMGet(ctx, rowKey(table, key), fields...).Result()
	if err != nil {
		return nil, err
	}
	values := make(map[string][]byte, len(fields))
	for i, v := range row {
		if v == nil {
			continue
		}
		values[fields[i]] = []byte(v.(string))
	}
	return values, nil
}

// Scan is not supported: hashes carry no key ordering to range over.
func (db *redisDb) Scan(_ context.Context, _ string, _ string, _ int, _ []string) ([]map[string][]byte, error) {
	return nil, errors.New("redis: scan is not supported")
}

func (db *redisDb) Update(ctx context.Context, table string, key string, values map[string][]byte) error {
	args := make(map[string]interface{}, len(values))
	for f, v := range values {
		args[f] = v
	}
	return db.client.HSet(ctx, rowKey(table, key), args).Err()
}

func (db *redisDb) Insert(ctx context.Context, table string, key string, values map[string][]byte) error {
	return db.Update(ctx, table, key, values)
}

func (db *redisDb) Delete(ctx context.Context, table string, key string) error {
	return db.client.Del(ctx, rowKey(table, key)).Err()
}

func init() {
	bench.RegisterDBCreator("redis", redisCreator{})
}
