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
	"bytes"
	"context"
	"path"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoyoj1023/zkALU/pkg/check"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/koalabear"
	"github.com/yoyoj1023/zkALU/pkg/vm"
)

const TestDir = "../../testdata"

func Test_ChipByName(t *testing.T) {
	assert.Equal(t, "adder", chipByName[babybear.Element]("adder").Name())
	assert.Equal(t, uint(chip.ALU_WIDTH), chipByName[babybear.Element]("alu").Width())
	assert.Equal(t, "fibonacci", chipByName[koalabear.Element]("fib").Name())
}

func Test_CheckConfig(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Uint("workers", 0, "")
	cmd.Flags().Uint("batch", 256, "")
	// Defaults
	config := getCheckConfig(cmd)
	assert.Equal(t, uint(runtime.NumCPU()), config.Workers)
	assert.Equal(t, uint(256), config.BatchSize)
	//
	require.NoError(t, cmd.Flags().Set("workers", "3"))
	require.NoError(t, cmd.Flags().Set("batch", "7"))
	//
	config = getCheckConfig(cmd)
	assert.Equal(t, check.Config{Workers: 3, BatchSize: 7}, config)
}

func Test_FieldCommands(t *testing.T) {
	// Every command is available for every field
	for _, cmds := range [][]FieldAgnosticCmd{fibonacciCmds, adderCmds, aluCmds, constraintsCmds, checkCmds} {
		require.Len(t, cmds, len(field.FIELD_CONFIGS))
		//
		for i, c := range cmds {
			assert.Equal(t, field.FIELD_CONFIGS[i], c.Field)
		}
	}
}

func Test_ProgramFile_01(t *testing.T) {
	program := readProgramFile(path.Join(TestDir, "alu_demo.lisp"))
	require.Len(t, program.Program, 8)
	//
	alu := chip.NewAlu[babybear.Element]()
	tr, err := alu.BuildTrace(program.Program, vm.InitialRegisters[babybear.Element](program))
	require.NoError(t, err)
	assert.Equal(t, uint(8), tr.Height())
	assert.NoError(t, check.Verify(context.Background(), alu, tr, check.DefaultConfig()))
	//
	final, err := vm.Execute(program.Program, vm.InitialRegisters[babybear.Element](program))
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 2013265918, 11, 8}, final.Uint64s())
}

func Test_ProgramFile_02(t *testing.T) {
	program := readProgramFile(path.Join(TestDir, "adder_demo.json"))
	require.Len(t, program.Program, 4)
	//
	adder := chip.NewAdder[babybear.Element]()
	tr, err := adder.BuildTrace(program.Program, vm.InitialRegisters[babybear.Element](program))
	require.NoError(t, err)
	assert.NoError(t, check.Verify(context.Background(), adder, tr, check.DefaultConfig()))
	//
	final, err := vm.Execute(program.Program, vm.InitialRegisters[babybear.Element](program))
	require.NoError(t, err)
	assert.Equal(t, []uint64{8, 4, 3, 6}, final.Uint64s())
}

func Test_SyntaxError_01(t *testing.T) {
	var (
		buf      bytes.Buffer
		filename = path.Join(TestDir, "invalid_register.lisp")
	)
	//
	_, err := vm.ReadProgramFile(filename)
	require.Error(t, err)
	//
	serr, ok := vm.IsSyntaxError(err)
	require.True(t, ok)
	//
	printSyntaxError(&buf, "invalid_register.lisp", serr)
	assert.Equal(t, "invalid_register.lisp:3: unknown register\n(sub r1 r7 r0)\n        ^^\n", buf.String())
}
