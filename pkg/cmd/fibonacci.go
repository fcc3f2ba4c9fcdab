// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/util"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/bls12_377"
	"github.com/yoyoj1023/zkALU/pkg/util/field/koalabear"
)

var fibonacciCmd = &cobra.Command{
	Use:     "fibonacci [flags]",
	Short:   "Generate and check a Fibonacci trace.",
	Long:    `Generate a Fibonacci trace of a given height, and check it against the Fibonacci constraints.`,
	Aliases: []string{"fib"},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}
		//
		runFieldAgnosticCmd(cmd, args, fibonacciCmds)
	},
}

// Available instances
var fibonacciCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runFibonacciCmd[babybear.Element]},
	{field.KOALABEAR, runFibonacciCmd[koalabear.Element]},
	{field.BLS12_377, runFibonacciCmd[bls12_377.Element]},
}

func runFibonacciCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	var (
		fib    = chip.NewFibonacci[F]()
		rows   = GetUint(cmd, "rows")
		output = GetString(cmd, "output")
		stats  = util.NewPerfStats()
	)
	//
	tr, err := fib.BuildTrace(rows)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	stats.Log("Generating trace")
	//
	if n := GetUint(cmd, "print"); n > 0 {
		printTrace(cmd, fib.Columns(), tr, n)
	}
	//
	if output != "" {
		writeTraceFile(output, fib.Columns(), tr)
	}
	//
	checkTrace[F](cmd, fib, tr)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(fibonacciCmd)
	fibonacciCmd.Flags().Uint("rows", 1024, "number of rows to generate (must be a power of two)")
	fibonacciCmd.Flags().Uint("print", 0, "print the first n rows of the trace")
	fibonacciCmd.Flags().StringP("output", "o", "", "write the trace to a JSON file")
	fibonacciCmd.Flags().Bool("symbolic", false, "check using symbolic constraints")
}
