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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/util"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/bls12_377"
	"github.com/yoyoj1023/zkALU/pkg/util/field/koalabear"
	"github.com/yoyoj1023/zkALU/pkg/vm"
)

var adderCmd = &cobra.Command{
	Use:   "adder [flags]",
	Short: "Execute and check a program on the adder machine.",
	Long: `Execute a program on the adder machine (which supports only addition), and check the
	resulting trace against its constraints.  Without a program file, a demo program is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		runFieldAgnosticCmd(cmd, args, adderCmds)
	},
}

var aluCmd = &cobra.Command{
	Use:   "alu [flags]",
	Short: "Execute and check a program on the ALU machine.",
	Long: `Execute a program on the ALU machine (which supports addition and subtraction), and check
	the resulting trace against its constraints.  Without a program file, a demo program is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		runFieldAgnosticCmd(cmd, args, aluCmds)
	},
}

// Available instances
var adderCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runAdderCmd[babybear.Element]},
	{field.KOALABEAR, runAdderCmd[koalabear.Element]},
	{field.BLS12_377, runAdderCmd[bls12_377.Element]},
}

var aluCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runAluCmd[babybear.Element]},
	{field.KOALABEAR, runAluCmd[koalabear.Element]},
	{field.BLS12_377, runAluCmd[bls12_377.Element]},
}

func runAdderCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	runMachineCmd(cmd, args, chip.NewAdder[F](), vm.AdderDemo, vm.AdderDemoInitial)
}

func runAluCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	runMachineCmd(cmd, args, chip.NewAlu[F](), vm.AluDemo, vm.AluDemoInitial)
}

func runMachineCmd[F field.Element[F]](cmd *cobra.Command, args []string, machine *chip.RegisterMachine[F],
	demo func(uint) vm.Program, initial []uint64) {
	//
	if len(args) != 0 {
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	}
	//
	var (
		filename = GetString(cmd, "program")
		output   = GetString(cmd, "output")
		program  = &vm.ProgramFile{Initial: initial, Program: demo(GetUint(cmd, "steps"))}
	)
	//
	if filename != "" {
		program = readProgramFile(filename)
	}
	//
	stats := util.NewPerfStats()
	//
	tr, err := machine.BuildTrace(program.Program, vm.InitialRegisters[F](program))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	stats.Log("Generating trace")
	// Report final state
	if final, err := vm.Execute(program.Program, vm.InitialRegisters[F](program)); err == nil {
		log.Infof("%s: final registers %s", machine.Name(), final)
	}
	//
	if n := GetUint(cmd, "print"); n > 0 {
		printTrace(cmd, machine.Columns(), tr, n)
	}
	//
	if output != "" {
		writeTraceFile(output, machine.Columns(), tr)
	}
	//
	checkTrace[F](cmd, machine, tr)
}

//nolint:errcheck
func init() {
	for _, c := range []*cobra.Command{adderCmd, aluCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringP("program", "p", "", "program file to execute (.json or .lisp)")
		c.Flags().Uint("steps", 64, "number of steps in the demo program")
		c.Flags().Uint("print", 0, "print the first n rows of the trace")
		c.Flags().StringP("output", "o", "", "write the trace to a JSON file")
		c.Flags().Bool("symbolic", false, "check using symbolic constraints")
	}
}
