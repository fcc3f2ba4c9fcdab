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
	"errors"
	"fmt"
	"strings"
)

// NUM_REGISTERS determines the number of registers in the machine.
const NUM_REGISTERS = 4

// ErrEmptyProgram is returned when a program contains no instructions.
var ErrEmptyProgram = errors.New("empty program")

// ErrInvalidRegister is returned when an instruction refers to a register which
// does not exist.
var ErrInvalidRegister = errors.New("invalid register")

// ErrUnsupportedOpcode is returned when an instruction uses an operation not
// supported by the machine executing it.
var ErrUnsupportedOpcode = errors.New("unsupported opcode")

// RegisterIndex identifies a register of the machine.
type RegisterIndex uint

// IsValid checks whether this index identifies an existing register.
func (r RegisterIndex) IsValid() bool {
	return r < NUM_REGISTERS
}

func (r RegisterIndex) String() string {
	return fmt.Sprintf("r%d", uint(r))
}

// ParseRegister parses a register written as either "r2" or "2".
func ParseRegister(text string) (RegisterIndex, error) {
	var index uint
	//
	if _, err := fmt.Sscanf(strings.TrimPrefix(text, "r"), "%d", &index); err != nil {
		return 0, fmt.Errorf("%w \"%s\"", ErrInvalidRegister, text)
	} else if fmt.Sprintf("%d", index) != strings.TrimPrefix(text, "r") {
		return 0, fmt.Errorf("%w \"%s\"", ErrInvalidRegister, text)
	} else if !RegisterIndex(index).IsValid() {
		return 0, fmt.Errorf("%w \"%s\"", ErrInvalidRegister, text)
	}
	//
	return RegisterIndex(index), nil
}

// Opcode identifies the operation performed by an instruction.
type Opcode uint8

const (
	// ADD computes dest = src1 + src2
	ADD Opcode = iota
	// SUB computes dest = src1 - src2 (modulo the field characteristic)
	SUB
)

// OPCODES lists all known opcodes
var OPCODES = []Opcode{ADD, SUB}

func (op Opcode) String() string {
	switch op {
	case ADD:
		return "add"
	case SUB:
		return "sub"
	default:
		return fmt.Sprintf("op%d", uint8(op))
	}
}

// ParseOpcode parses the textual representation of an opcode.
func ParseOpcode(text string) (Opcode, error) {
	for _, op := range OPCODES {
		if strings.EqualFold(op.String(), text) {
			return op, nil
		}
	}
	//
	return 0, fmt.Errorf("%w \"%s\"", ErrUnsupportedOpcode, text)
}

// MarshalText implements encoding.TextMarshaler
func (op Opcode) MarshalText() ([]byte, error) {
	if op > SUB {
		return nil, fmt.Errorf("%w (%d)", ErrUnsupportedOpcode, uint8(op))
	}
	//
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (op *Opcode) UnmarshalText(text []byte) error {
	var err error
	//
	*op, err = ParseOpcode(string(text))
	//
	return err
}

// Instruction represents a register-to-register operation dest = src1 op src2.
type Instruction struct {
	Op   Opcode        `json:"op"`
	Dest RegisterIndex `json:"dest"`
	Src1 RegisterIndex `json:"src1"`
	Src2 RegisterIndex `json:"src2"`
}

// NewAdd constructs an instruction dest = src1 + src2.
func NewAdd(dest, src1, src2 RegisterIndex) Instruction {
	return Instruction{ADD, dest, src1, src2}
}

// NewSub constructs an instruction dest = src1 - src2.
func NewSub(dest, src1, src2 RegisterIndex) Instruction {
	return Instruction{SUB, dest, src1, src2}
}

// Validate checks that every register referenced by this instruction exists,
// and that its opcode is amongst those supported.  If no opcodes are given,
// then all are supported.
func (p Instruction) Validate(supported ...Opcode) error {
	switch {
	case !p.Dest.IsValid():
		return fmt.Errorf("%w (dest %d)", ErrInvalidRegister, p.Dest)
	case !p.Src1.IsValid():
		return fmt.Errorf("%w (src1 %d)", ErrInvalidRegister, p.Src1)
	case !p.Src2.IsValid():
		return fmt.Errorf("%w (src2 %d)", ErrInvalidRegister, p.Src2)
	}
	//
	if len(supported) == 0 {
		supported = OPCODES
	}
	//
	for _, op := range supported {
		if op == p.Op {
			return nil
		}
	}
	//
	return fmt.Errorf("%w \"%s\"", ErrUnsupportedOpcode, p.Op)
}

func (p Instruction) String() string {
	return fmt.Sprintf("%s %s, %s, %s", p.Op, p.Dest, p.Src1, p.Src2)
}

// Program is an ordered sequence of one or more instructions.
type Program []Instruction

// Validate checks that this program is non-empty and that every instruction is
// valid.  Errors identify the offending instruction.
func (p Program) Validate(supported ...Opcode) error {
	if len(p) == 0 {
		return ErrEmptyProgram
	}
	//
	for i, insn := range p {
		if err := insn.Validate(supported...); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i, insn, err)
		}
	}
	// Success
	return nil
}

func (p Program) String() string {
	var builder strings.Builder
	//
	for _, insn := range p {
		builder.WriteString(insn.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
