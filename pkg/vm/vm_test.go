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
package vm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/bls12_377"
)

type element = babybear.Element

func Test_Validate_01(t *testing.T) {
	assert.NoError(t, Program{NewAdd(2, 0, 1)}.Validate())
	assert.NoError(t, Program{NewSub(3, 3, 3)}.Validate(ADD, SUB))
	//
	assert.ErrorIs(t, Program{}.Validate(), ErrEmptyProgram)
	assert.ErrorIs(t, Program(nil).Validate(), ErrEmptyProgram)
}

func Test_Validate_02(t *testing.T) {
	assert.ErrorIs(t, Program{NewAdd(4, 0, 1)}.Validate(), ErrInvalidRegister)
	assert.ErrorIs(t, Program{NewAdd(0, 4, 1)}.Validate(), ErrInvalidRegister)
	assert.ErrorIs(t, Program{NewAdd(0, 1, 4)}.Validate(), ErrInvalidRegister)
	// Error identifies the instruction
	err := Program{NewAdd(0, 1, 2), NewAdd(0, 1, 9)}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instruction 1")
}

func Test_Validate_03(t *testing.T) {
	assert.ErrorIs(t, Program{NewSub(0, 1, 2)}.Validate(ADD), ErrUnsupportedOpcode)
	assert.ErrorIs(t, Program{{Op: Opcode(7)}}.Validate(), ErrUnsupportedOpcode)
}

func Test_Instruction_01(t *testing.T) {
	assert.Equal(t, "add r2, r0, r1", NewAdd(2, 0, 1).String())
	assert.Equal(t, "sub r1, r2, r0", NewSub(1, 2, 0).String())
	assert.Equal(t, "add r0, r0, r1\nsub r1, r2, r0\n", Program{NewAdd(0, 0, 1), NewSub(1, 2, 0)}.String())
}

func Test_ParseRegister_01(t *testing.T) {
	for _, text := range []string{"r0", "1", "r3"} {
		_, err := ParseRegister(text)
		assert.NoError(t, err, text)
	}
	//
	for _, text := range []string{"r4", "x1", "r", "r01", "-1", ""} {
		_, err := ParseRegister(text)
		assert.ErrorIs(t, err, ErrInvalidRegister, text)
	}
}

func Test_Opcode_01(t *testing.T) {
	bytes, err := json.Marshal(NewSub(1, 2, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"op": "sub", "dest": 1, "src1": 2, "src2": 0}`, string(bytes))
	//
	var insn Instruction
	require.NoError(t, json.Unmarshal([]byte(`{"op": "ADD", "dest": 3}`), &insn))
	assert.Equal(t, NewAdd(3, 0, 0), insn)
	//
	assert.Error(t, json.Unmarshal([]byte(`{"op": "mul"}`), &insn))
	_, err = json.Marshal(Instruction{Op: Opcode(9)})
	assert.Error(t, err)
}

func Test_Execute_01(t *testing.T) {
	// r2 = r0 + r1
	regs, err := Execute(Program{NewAdd(2, 0, 1)}, NewRegisterFile[element](1, 2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 0}, regs.Uint64s())
}

func Test_Execute_02(t *testing.T) {
	program := Program{NewAdd(0, 0, 1), NewSub(1, 2, 0)}
	initial := NewRegisterFile[element](1, 2, 5, 0)
	//
	regs := Step(initial, program[0])
	assert.Equal(t, []uint64{3, 2, 5, 0}, regs.Uint64s())
	// r1 = 5 - 3
	regs, err := Execute(program, initial)
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 2, 5, 0}, regs.Uint64s())
	// Initial state untouched
	assert.Equal(t, []uint64{1, 2, 5, 0}, initial.Uint64s())
}

func Test_Execute_03(t *testing.T) {
	// Subtraction wraps around
	regs, err := Execute(Program{NewSub(0, 0, 1)}, NewRegisterFile[element](3, 5))
	require.NoError(t, err)
	assert.Equal(t, uint64(2013265921-2), regs[0].Uint64())
}

func Test_Execute_04(t *testing.T) {
	_, err := Execute(Program{}, NewRegisterFile[element]())
	assert.ErrorIs(t, err, ErrEmptyProgram)
	//
	_, err = Execute(Program{NewAdd(0, 5, 1)}, NewRegisterFile[element]())
	assert.ErrorIs(t, err, ErrInvalidRegister)
	//
	assert.Panics(t, func() { NewRegisterFile[element](1, 2, 3, 4, 5) })
}

func Test_ProgramFile_01(t *testing.T) {
	file, err := ParseProgramFile([]byte(`{"initial": [1,2,5,0], "program": [
		{"op": "add", "dest": 0, "src1": 0, "src2": 1},
		{"op": "sub", "dest": 1, "src1": 2, "src2": 0}]}`))
	require.NoError(t, err)
	//
	assert.Equal(t, Program{NewAdd(0, 0, 1), NewSub(1, 2, 0)}, file.Program)
	assert.Equal(t, []uint64{1, 2, 5, 0}, InitialRegisters[element](file).Uint64s())
}

func Test_ProgramFile_02(t *testing.T) {
	checkInvalidJson(t, `{"initial": [1], "program": []}`, ErrEmptyProgram)
	checkInvalidJson(t, `{"program": [{"dest": 4}]}`, ErrInvalidRegister)
	checkInvalidJson(t, `{"initial": [1,2,3,4,5], "program": [{"dest": 0}]}`, nil)
	checkInvalidJson(t, `{"program": [`, nil)
}

func Test_ProgramLisp_01(t *testing.T) {
	file, err := ParseProgramLisp(`
		;; r0 = r0 + r1
		(initial 1 2 5 0)
		(add r0 r0 r1)
		(SUB r1 2 r0) ; registers can be numbers
	`)
	require.NoError(t, err)
	//
	assert.Equal(t, Program{NewAdd(0, 0, 1), NewSub(1, 2, 0)}, file.Program)
	assert.Equal(t, []uint64{1, 2, 5, 0}, file.Initial)
}

func Test_ProgramLisp_02(t *testing.T) {
	checkInvalidLisp(t, "(add r0 r0 r4)", 1)
	checkInvalidLisp(t, "(initial 1 2)\n(mul r0 r0 r1)", 2)
	checkInvalidLisp(t, "(add r0 r0)", 1)
	checkInvalidLisp(t, "(initial 1)\n\n(initial 2)\n(add r0 r0 r1)", 3)
	checkInvalidLisp(t, "(initial x)", 1)
	checkInvalidLisp(t, "add", 1)
	checkInvalidLisp(t, "(add r0 r0 (r1))", 1)
	checkInvalidLisp(t, "(add r0 r0 r1", 1)
	checkInvalidLisp(t, "(add r0 r0 r1))", 1)
	// Not a syntax error
	_, err := ParseProgramLisp("(initial 1 2)")
	assert.ErrorIs(t, err, ErrEmptyProgram)
}

func Test_ReadProgramFile_01(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "prog.json")
	lispFile := filepath.Join(dir, "prog.lisp")
	other := filepath.Join(dir, "prog.txt")
	//
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"program": [{"op": "add", "dest": 2}]}`), 0o600))
	require.NoError(t, os.WriteFile(lispFile, []byte(`(add r2 r0 r0)`), 0o600))
	require.NoError(t, os.WriteFile(other, []byte(``), 0o600))
	//
	jf, err := ReadProgramFile(jsonFile)
	require.NoError(t, err)
	lf, err := ReadProgramFile(lispFile)
	require.NoError(t, err)
	assert.Equal(t, jf.Program, lf.Program)
	//
	_, err = ReadProgramFile(other)
	assert.Error(t, err)
	_, err = ReadProgramFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func Test_Demo_01(t *testing.T) {
	program := AdderDemo(64)
	require.Len(t, program, 64)
	require.NoError(t, program.Validate(ADD))
	//
	assert.Equal(t, NewAdd(2, 0, 1), program[0])
	assert.Equal(t, NewAdd(0, 3, 1), program[2])
	assert.Equal(t, NewAdd(1, 1, 1), program[3])
	assert.Equal(t, NewAdd(0, 0, 2), program[62])
	assert.Equal(t, NewAdd(1, 1, 1), program[63])
	//
	regs, err := Execute(program[:3], NewRegisterFile[element](AdderDemoInitial...))
	require.NoError(t, err)
	assert.Equal(t, []uint64{8, 2, 3, 6}, regs.Uint64s())
}

func Test_Demo_02(t *testing.T) {
	program := AluDemo(64)
	require.Len(t, program, 64)
	require.NoError(t, program.Validate(ADD, SUB))
	//
	assert.Equal(t, NewSub(2, 3, 1), program[3])
	assert.Equal(t, NewAdd(0, 0, 1), program[4])
	assert.Equal(t, NewSub(3, 3, 2), program[63])
	//
	regs, err := Execute(program[:4], NewRegisterFile[element](AluDemoInitial...))
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 2, 3, 5}, regs.Uint64s())
	//
	assert.Len(t, AluDemo(2), 2)
	assert.Empty(t, AluDemo(0))
}

func checkInvalidJson(t *testing.T, text string, expected error) {
	t.Helper()
	//
	_, err := ParseProgramFile([]byte(text))
	require.Error(t, err, text)
	//
	if expected != nil {
		assert.ErrorIs(t, err, expected, text)
	}
}

func checkInvalidLisp(t *testing.T, text string, line int) {
	t.Helper()
	//
	_, err := ParseProgramLisp(text)
	require.Error(t, err, text)
	serr, ok := IsSyntaxError(err)
	require.True(t, ok, text)
	assert.Equal(t, line, serr.Line(), text)
}

func Test_RegisterFile_01(t *testing.T) {
	regs := NewRegisterFile[element](1, 2, 5)
	assert.Equal(t, "[1 2 5 0]", regs.String())
	// Subtraction wraps to p - 4
	regs = Step(regs, NewSub(3, 0, 2))
	assert.Equal(t, "[1 2 5 2013265917]", regs.String())
}

func Test_RegisterFile_02(t *testing.T) {
	regs, err := Execute(Program{NewSub(1, 0, 2)}, NewRegisterFile[bls12_377.Element](2, 0, 5))
	require.NoError(t, err)
	// BLS12-377 scalar field modulus minus 3
	assert.Equal(t,
		"[2 8444461749428370424248824938781546531375899335154063827935233455917409239038 5 0]",
		regs.String())
	assert.Panics(t, func() { regs.Uint64s() })
}
