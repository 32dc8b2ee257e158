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
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/datafog/geobench/pkg/client"
	"github.com/datafog/geobench/pkg/measurement"
	"github.com/datafog/geobench/pkg/prop"
)

func runClientCommandFunc(cmd *cobra.Command, args []string, doTransactions bool) {
	dbName := args[0]

	initialGlobal(dbName, func() {
		doTransFlag := "true"
		if !doTransactions {
			doTransFlag = "false"
		}
		globalProps.Set(prop.DoTransactions, doTransFlag)

		if cmd.Flags().Changed("threads") {
			// We set the threadArg via command line.
			globalProps.Set(prop.ThreadCount, strconv.Itoa(threadsArg))
		}

		if cmd.Flags().Changed("target") {
			globalProps.Set(prop.Target, strconv.Itoa(targetArg))
		}
	})

	fmt.Println("***************** properties *****************")
	for key, value := range globalProps.Map() {
		fmt.Printf("\"%s\"=\"%s\"\n", key, value)
	}
	fmt.Println("**********************************************")

	ctx := globalContext
	if doTransactions {
		if t := globalProps.GetInt64(prop.MaxExecutionTime, 0); t > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(globalContext, time.Duration(t)*time.Second)
			defer cancel()
		}

		if w := globalProps.GetInt64(prop.WarmUpTime, 0); w > 0 {
			warmCtx := ctx
			go func() {
				select {
				case <-time.After(time.Duration(w) * time.Second):
					measurement.EnableWarmUp(false)
				case <-warmCtx.Done():
				}
			}()
		}
	} else {
		// Warm-up only makes sense for the transaction phase.
		measurement.EnableWarmUp(false)
	}

	measureCtx, measureCancel := context.WithCancel(ctx)
	go func() {
		dur := globalProps.GetInt64(prop.LogInterval, 10)
		t := time.NewTicker(time.Duration(dur) * time.Second)
		defer t.Stop()

		for {
			select {
			case <-t.C:
				measurement.Output(os.Stdout)
			case <-measureCtx.Done():
				return
			}
		}
	}()

	start := time.Now()
	c := client.NewClient(globalProps, globalWorkload, globalDB)
	c.Run(ctx)
	c.Wait()

	measureCancel()

	fmt.Printf("Run finished, takes %s\n", time.Since(start))
	measurement.Output(os.Stdout)
	measurement.GenerateExtendedOutputs()
}

func runLoadCommandFunc(cmd *cobra.Command, args []string) {
	runClientCommandFunc(cmd, args, false)
}

func runTransCommandFunc(cmd *cobra.Command, args []string) {
	runClientCommandFunc(cmd, args, true)
}

var (
	threadsArg int
	targetArg  int
)

func initClientCommand(m *cobra.Command) {
	m.Flags().StringSliceVarP(&propertyFiles, "property_file", "P", nil, "Specify a property file")
	m.Flags().StringSliceVarP(&propertyValues, "prop", "p", nil, "Specify a property value with name=value")
	m.Flags().StringVar(&tableName, "table", "", "Use the table name instead of the default \""+prop.TableNameDefault+"\"")
	m.Flags().IntVar(&threadsArg, "threads", 1, "Execute using n threads - can also be specified as the \"threadcount\" property")
	m.Flags().IntVar(&targetArg, "target", 0, "Attempt to do n operations per second (default: unlimited) - can also be specified as the \"target\" property")
}

func newLoadCommand() *cobra.Command {
	m := &cobra.Command{
		Use:   "load db",
		Short: "Load the initial records into the target db",
		Args:  cobra.MinimumNArgs(1),
		Run:   runLoadCommandFunc,
	}

	initClientCommand(m)
	return m
}

func newRunCommand() *cobra.Command {
	m := &cobra.Command{
		Use:   "run db",
		Short: "Run the transaction phase against the target db",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTransCommandFunc,
	}

	initClientCommand(m)
	return m
}
