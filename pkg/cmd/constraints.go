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
	"github.com/yoyoj1023/zkALU/pkg/air"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/bls12_377"
	"github.com/yoyoj1023/zkALU/pkg/util/field/koalabear"
)

var constraintsCmd = &cobra.Command{
	Use:   "constraints [flags] adder|alu|fibonacci",
	Short: "Print the constraints of a given chip.",
	Long:  `Print the constraints of a given chip in lisp notation, along with their degrees.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}
		//
		runFieldAgnosticCmd(cmd, args, constraintsCmds)
	},
}

// Available instances
var constraintsCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runConstraintsCmd[babybear.Element]},
	{field.KOALABEAR, runConstraintsCmd[koalabear.Element]},
	{field.BLS12_377, runConstraintsCmd[bls12_377.Element]},
}

func runConstraintsCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	var (
		c           = chipByName[F](args[0])
		constraints = chip.Constraints(c)
		columns     = c.Columns()
	)
	//
	for _, constraint := range constraints {
		if GetFlag(cmd, "degrees") {
			fmt.Printf("%s ;; degree %d\n", constraint.Lisp(columns), constraint.Degree())
		} else {
			fmt.Println(constraint.Lisp(columns))
		}
	}
	//
	fmt.Printf(";; %s: %d columns, %d constraints, max degree %d\n", c.Name(), c.Width(), len(constraints),
		air.MaxDegree(constraints))
}

// Determine the chip with a given name, or exit if no such chip exists.
func chipByName[F field.Element[F]](name string) chip.Chip[F] {
	switch name {
	case "adder":
		return chip.NewAdder[F]()
	case "alu":
		return chip.NewAlu[F]()
	case "fibonacci", "fib":
		return chip.NewFibonacci[F]()
	default:
		fmt.Printf("unknown chip \"%s\" (expected adder, alu or fibonacci)\n", name)
		os.Exit(2)
	}
	// unreachable
	return nil
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(constraintsCmd)
	constraintsCmd.Flags().Bool("degrees", true, "annotate each constraint with its degree")
}
