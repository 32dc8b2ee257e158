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

package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/magiconair/properties"
	"github.com/spf13/cobra"

	"github.com/datafog/geobench/pkg/bench"
	"github.com/datafog/geobench/pkg/client"
	"github.com/datafog/geobench/pkg/measurement"
	"github.com/datafog/geobench/pkg/prop"
	"github.com/datafog/geobench/pkg/util"
	_ "github.com/datafog/geobench/pkg/workload"

	_ "github.com/datafog/geobench/db/badger"
	_ "github.com/datafog/geobench/db/basic"
	_ "github.com/datafog/geobench/db/bbolt"
	_ "github.com/datafog/geobench/db/memory"
	_ "github.com/datafog/geobench/db/mysql"
	_ "github.com/datafog/geobench/db/redis"
)

var (
	propertyFiles  []string
	propertyValues []string
	tableName      string

	globalContext context.Context
	globalCancel  context.CancelFunc

	globalDB       bench.DB
	globalWorkload bench.Workload
	globalProps    *properties.Properties
)

func initialGlobal(dbName string, onProperties func()) {
	globalProps = properties.NewProperties()
	if len(propertyFiles) > 0 {
		globalProps = properties.MustLoadFiles(propertyFiles, properties.UTF8, false)
	}

	for _, pv := range propertyValues {
		seps := strings.SplitN(pv, "=", 2)
		if len(seps) != 2 {
			util.Fatalf("bad property: %s, expected name=value", pv)
		}
		globalProps.Set(seps[0], seps[1])
	}

	if onProperties != nil {
		onProperties()
	}

	addr := globalProps.GetString(prop.DebugPprof, prop.DebugPprofDefault)
	go func() {
		http.ListenAndServe(addr, nil)
	}()

	measurement.InitMeasure(globalProps)

	if len(tableName) == 0 {
		tableName = globalProps.GetString(prop.TableName, prop.TableNameDefault)
	}

	workloadName := globalProps.GetString(prop.Workload, "core")
	workloadCreator := bench.GetWorkloadCreator(workloadName)
	if workloadCreator == nil {
		util.Fatalf("unknown workload %s", workloadName)
	}

	var err error
	if globalWorkload, err = workloadCreator.Create(globalProps); err != nil {
		util.Fatalf("create workload %s failed %v", workloadName, err)
	}

	dbCreator := bench.GetDBCreator(dbName)
	if dbCreator == nil {
		util.Fatalf("unknown db %s", dbName)
	}

	if globalDB, err = dbCreator.Create(globalProps); err != nil {
		util.Fatalf("create db %s failed %v", dbName, err)
	}

	globalDB = client.DbWrapper{DB: globalDB}
}

func main() {
	globalContext, globalCancel = context.WithCancel(context.Background())

	sc := make(chan os.Signal, 1)
	signal.Notify(sc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	go func() {
		sig := <-sc
		fmt.Printf("\nGot signal [%v] to exit.\n", sig)
		globalCancel()
	}()

	rootCmd := &cobra.Command{
		Use:   "geobench",
		Short: "geobench: a geo-hotspot workload benchmark for storage backends",
	}

	rootCmd.AddCommand(
		newLoadCommand(),
		newRunCommand(),
	)

	cobra.EnablePrefixMatching = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(rootCmd.UsageString())
	}

	globalCancel()
	if globalDB != nil {
		globalDB.Close()
	}

	if globalWorkload != nil {
		globalWorkload.Close()
	}
}
