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
	"github.com/yoyoj1023/zkALU/pkg/util"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/bls12_377"
	"github.com/yoyoj1023/zkALU/pkg/util/field/koalabear"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] adder|alu|fibonacci trace_file",
	Short: "Check a given trace against the constraints of a chip.",
	Long: `Check a given trace against the constraints of a chip.
	Traces are given as JSON files mapping each column name to its values.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}
		//
		runFieldAgnosticCmd(cmd, args, checkCmds)
	},
}

// Available instances
var checkCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runCheckCmd[babybear.Element]},
	{field.KOALABEAR, runCheckCmd[koalabear.Element]},
	{field.BLS12_377, runCheckCmd[bls12_377.Element]},
}

func runCheckCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	var (
		c     = chipByName[F](args[0])
		stats = util.NewPerfStats()
	)
	//
	tr := readTraceFile[F](args[1], c.Columns())
	//
	stats.Log("Reading trace file")
	//
	if n := GetUint(cmd, "print"); n > 0 {
		printTrace(cmd, c.Columns(), tr, n)
	}
	//
	checkTrace(cmd, c, tr)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Uint("print", 0, "print the first n rows of the trace")
	checkCmd.Flags().Bool("symbolic", false, "check using symbolic constraints")
}
