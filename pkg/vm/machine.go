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
	"fmt"
	"strings"

	"github.com/yoyoj1023/zkALU/pkg/air"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// RegisterFile holds the value of every register in the machine.
type RegisterFile[F field.Element[F]] [NUM_REGISTERS]F

// NewRegisterFile constructs a register file from the given values, where any
// registers not given are zero.  This panics if too many values are given.
func NewRegisterFile[F field.Element[F]](vals ...uint64) RegisterFile[F] {
	var regs RegisterFile[F]
	//
	if len(vals) > NUM_REGISTERS {
		panic(fmt.Sprintf("too many register values (%d)", len(vals)))
	}
	//
	for i, v := range vals {
		regs[i] = field.Uint64[F](v)
	}
	//
	return regs
}

// Uint64s returns the canonical integer value of every register.  For fields
// wider than 64 bits, this panics if any register does not fit.
func (p RegisterFile[F]) Uint64s() []uint64 {
	vals := make([]uint64, NUM_REGISTERS)
	//
	for i, r := range p {
		vals[i] = r.Uint64()
	}
	//
	return vals
}

func (p RegisterFile[F]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, r := range p {
		if i != 0 {
			builder.WriteString(" ")
		}
		// Canonical values, since wrapped values can exceed 64 bits
		builder.WriteString(field.ToBigInt(r).String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// Apply computes the result of a given operation on two operands.  Operands
// can be concrete field elements, for which subtraction wraps modulo the field
// characteristic, or symbolic terms.
func Apply[E air.Term[E]](op Opcode, lhs E, rhs E) E {
	switch op {
	case ADD:
		return lhs.Add(rhs)
	case SUB:
		return lhs.Sub(rhs)
	default:
		panic(fmt.Sprintf("unknown opcode %d", op))
	}
}

// Step executes a single (valid) instruction against a register file,
// returning the updated register file.
func Step[F field.Element[F]](regs RegisterFile[F], insn Instruction) RegisterFile[F] {
	result := Apply(insn.Op, regs[insn.Src1], regs[insn.Src2])
	regs[insn.Dest] = result
	//
	return regs
}

// Execute runs a given program from a given initial state by direct
// simulation, returning the final state.  The program is validated first.
func Execute[F field.Element[F]](program Program, initial RegisterFile[F]) (RegisterFile[F], error) {
	if err := program.Validate(); err != nil {
		return initial, err
	}
	//
	regs := initial
	//
	for _, insn := range program {
		regs = Step(regs, insn)
	}
	//
	return regs, nil
}
