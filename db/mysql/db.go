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

package mysql

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	// mysql package
	_ "github.com/go-sql-driver/mysql"
	"github.com/magiconair/properties"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/prop"
)

// mysql properties
const (
	mysqlHost     = "mysql.host"
	mysqlPort     = "mysql.port"
	mysqlUser     = "mysql.user"
	mysqlPassword = "mysql.password"
	mysqlDBName   = "mysql.db"
)

type mysqlCreator struct {
}

type mysqlDB struct {
	p       *properties.Properties
	db      *sql.DB
	verbose bool
}

func (c mysqlCreator) Create(p *properties.Properties) (bench.DB, error) {
	d := new(mysqlDB)
	d.p = p
	host := p.GetString(mysqlHost, "127.0.0.1")
	port := p.GetInt(mysqlPort, 3306)
	user := p.GetString(mysqlUser, "root")
	password := p.GetString(mysqlPassword, "")
	dbName := p.GetString(mysqlDBName, "test")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", user, password, host, port, dbName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	threadCount := int(p.GetInt64(prop.ThreadCount, prop.ThreadCountDefault))
	db.SetMaxIdleConns(threadCount + 1)
	db.SetMaxOpenConns(threadCount * 2)

	d.db = db
	d.verbose = p.GetBool(prop.Verbose, prop.VerboseDefault)

	if err := d.createTable(); err != nil {
		return nil, err
	}

	return d, nil
}

func (db *mysqlDB) createTable() error {
	tableName := db.p.GetString(prop.TableName, prop.TableNameDefault)

	if db.p.GetBool(prop.DropData, prop.DropDataDefault) {
		if _, err := db.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
			return err
		}
	}

	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(64) PRIMARY KEY,
	s2geometry BIGINT,
	`+"`timestamp`"+` VARCHAR(64))`, tableName)

	_, err := db.db.Exec(query)
	return err
}

func (db *mysqlDB) Close() error {
	if db.db == nil {
		return nil
	}

	return db.db.Close()
}

func (db *mysqlDB) InitThread(ctx context.Context, _ int, _ int) context.Context {
	return ctx
}

func (db *mysqlDB) CleanupThread(_ context.Context) {

}

func quoteFields(fields []string) string {
	if len(fields) == 0 {
		return "*"
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "`" + f + "`"
	}
	return strings.Join(quoted, ", ")
}

func (db *mysqlDB) queryRows(ctx context.Context, query string, count int, args ...interface{}) ([]map[string][]byte, error) {
	if db.verbose {
		fmt.Printf("%s %v\n", query, args)
	}

	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	vs := make([]map[string][]byte, 0, count)
	for rows.Next() {
		m := make(map[string][]byte, len(cols))
		dest := make([]interface{}, len(cols))
		for i := 0; i < len(cols); i++ {
			v := new([]byte)
			dest[i] = v
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, err
		}

		for i, v := range dest {
			m[cols[i]] = *v.(*[]byte)
		}

		vs = append(vs, m)
	}

	return vs, rows.Err()
}

func (db *mysqlDB) Read(ctx context.Context, table string, key string, fields []string) (map[string][]byte, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", quoteFields(fields), table)

	rows, err := db.queryRows(ctx, query, 1, key)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

func (db *mysqlDB) Scan(ctx context.Context, table string, startKey string, count int, fields []string) ([]map[string][]byte, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id >= ? ORDER BY id LIMIT ?", quoteFields(fields), table)

	return db.queryRows(ctx, query, count, startKey, count)
}

func (db *mysqlDB) execQuery(ctx context.Context, query string, args ...interface{}) error {
	if db.verbose {
		fmt.Printf("%s %v\n", query, args)
	}

	_, err := db.db.ExecContext(ctx, query, args...)
	return err
}

func (db *mysqlDB) Update(ctx context.Context, table string, key string, values map[string][]byte) error {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "UPDATE %s SET ", table)
	args := make([]interface{}, 0, len(values)+1)
	first := true
	for field, value := range values {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		fmt.Fprintf(buf, "`%s` = ?", field)
		args = append(args, value)
	}
	buf.WriteString(" WHERE id = ?")
	args = append(args, key)

	return db.execQuery(ctx, buf.String(), args...)
}

func (db *mysqlDB) Insert(ctx context.Context, table string, key string, values map[string][]byte) error {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "INSERT IGNORE INTO %s (id", table)
	args := make([]interface{}, 0, len(values)+1)
	args = append(args, key)
	for field, value := range values {
		fmt.Fprintf(buf, ", `%s`", field)
		args = append(args, value)
	}
	buf.WriteString(") VALUES (?")
	buf.WriteString(strings.Repeat(", ?", len(values)))
	buf.WriteString(")")

	return db.execQuery(ctx, buf.String(), args...)
}

func (db *mysqlDB) Delete(ctx context.Context, table string, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)

	return db.execQuery(ctx, query, key)
}

func init() {
	bench.RegisterDBCreator("mysql", mysqlCreator{})
}
