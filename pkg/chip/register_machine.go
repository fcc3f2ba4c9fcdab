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
package chip

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yoyoj1023/zkALU/pkg/air"
	"github.com/yoyoj1023/zkALU/pkg/air/gadgets"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/math"
	"github.com/yoyoj1023/zkALU/pkg/vm"
)

// Column offsets within a row of a register machine trace.  Each selector
// group occupies NUM_REGISTERS columns, except for the operation selectors
// which occupy one column per supported opcode (and are omitted entirely when
// only one opcode is supported).
const (
	REGISTERS = 0
	DEST      = REGISTERS + vm.NUM_REGISTERS
	SRC1      = DEST + vm.NUM_REGISTERS
	SRC2      = SRC1 + vm.NUM_REGISTERS
	OPS       = SRC2 + vm.NUM_REGISTERS
)

// ADDER_WIDTH is the width of an adder trace.
const ADDER_WIDTH = OPS

// ALU_WIDTH is the width of an ALU trace.
const ALU_WIDTH = OPS + 2

// RegisterMachine is a chip for a machine whose instructions read two registers
// and write one.  Machines differ only in the operations they support, which
// determines how the result written to the destination is computed.
type RegisterMachine[F field.Element[F]] struct {
	name string
	ops  []vm.Opcode
}

// NewAdder constructs a machine supporting only addition.
func NewAdder[F field.Element[F]]() *RegisterMachine[F] {
	return &RegisterMachine[F]{"adder", []vm.Opcode{vm.ADD}}
}

// NewAlu constructs a machine supporting both addition and subtraction.
func NewAlu[F field.Element[F]]() *RegisterMachine[F] {
	return &RegisterMachine[F]{"alu", []vm.Opcode{vm.ADD, vm.SUB}}
}

// Name of this chip
func (p *RegisterMachine[F]) Name() string {
	return p.name
}

// Opcodes returns the set of opcodes supported by this machine.
func (p *RegisterMachine[F]) Opcodes() []vm.Opcode {
	return p.ops
}

// Width returns the number of columns in a row.
func (p *RegisterMachine[F]) Width() uint {
	return OPS + p.numOpSelectors()
}

// Columns returns the name of every column in a row.
func (p *RegisterMachine[F]) Columns() []string {
	columns := make([]string, 0, p.Width())
	//
	for i := range vm.NUM_REGISTERS {
		columns = append(columns, fmt.Sprintf("r%d", i))
	}
	//
	for _, group := range []string{"dest", "src1", "src2"} {
		columns = append(columns, selectorNames(group)...)
	}
	//
	return append(columns, p.opNames()...)
}

// Eval asserts the constraints of this machine against two concrete rows.
func (p *RegisterMachine[F]) Eval(b air.Builder[F]) {
	evalMachine(b, p.ops, p.Width(), p.opNames())
}

// EvalSymbolic asserts the constraints of this machine symbolically.
func (p *RegisterMachine[F]) EvalSymbolic(b air.Builder[air.Expr[F]]) {
	evalMachine(b, p.ops, p.Width(), p.opNames())
}

// ImpliedNext returns the register state which the transition constraints
// force onto the row following a given (valid) row.
func (p *RegisterMachine[F]) ImpliedNext(row []F) vm.RegisterFile[F] {
	if uint(len(row)) != p.Width() {
		panic(fmt.Sprintf("row has width %d (expected %d)", len(row), p.Width()))
	}
	//
	return impliedNext(row, p.ops, field.One[F]())
}

// BuildTrace executes a given program from a given initial state, producing a
// trace with one row per instruction.  Each row records the registers before
// the instruction executes, along with the one-hot encoding of the
// instruction.  The trace is padded to a power of two by duplicating its last
// row.
func (p *RegisterMachine[F]) BuildTrace(program vm.Program, initial vm.RegisterFile[F]) (*trace.Matrix[F], error) {
	if err := program.Validate(p.ops...); err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	//
	var (
		n      = uint(len(program))
		height = math.NextPowerOfTwo(n)
		tr     = trace.NewMatrix[F](p.Width(), n)
		regs   = initial
	)
	//
	for i, insn := range program {
		tr.SetRow(uint(i), p.encodeRow(regs, insn))
		regs = vm.Step(regs, insn)
	}
	// Padding rows repeat the last instruction against its own pre-state.  This
	// only satisfies the transition constraints if that instruction left its
	// destination unchanged.
	if last := program[n-1]; height > n && !field.Equal(regs[last.Dest], tr.Get(REGISTERS+uint(last.Dest), n-1)) {
		log.Warnf("%s: padding requires last instruction \"%s\" to be a fixed point, but it changes %s (trace will not satisfy its constraints)",
			p.name, last, last.Dest)
	}
	//
	tr.PadTo(height)
	//
	log.Debugf("%s: built trace with %d rows (%d padding)", p.name, height, height-n)
	//
	return tr, nil
}

func (p *RegisterMachine[F]) encodeRow(regs vm.RegisterFile[F], insn vm.Instruction) []F {
	var (
		row = make([]F, p.Width())
		one = field.One[F]()
	)
	//
	copy(row[REGISTERS:], regs[:])
	row[DEST+uint(insn.Dest)] = one
	row[SRC1+uint(insn.Src1)] = one
	row[SRC2+uint(insn.Src2)] = one
	//
	if p.numOpSelectors() > 0 {
		for i, op := range p.ops {
			if op == insn.Op {
				row[OPS+uint(i)] = one
			}
		}
	}
	//
	return row
}

func (p *RegisterMachine[F]) numOpSelectors() uint {
	if len(p.ops) == 1 {
		return 0
	}
	//
	return uint(len(p.ops))
}

func (p *RegisterMachine[F]) opNames() []string {
	if p.numOpSelectors() == 0 {
		return nil
	}
	//
	names := make([]string, len(p.ops))
	//
	for i, op := range p.ops {
		names[i] = fmt.Sprintf("op_%s", op)
	}
	//
	return names
}

func selectorNames(group string) []string {
	names := make([]string, vm.NUM_REGISTERS)
	//
	for i := range names {
		names[i] = fmt.Sprintf("%s_%d", group, i)
	}
	//
	return names
}

// Evaluate the constraints of a register machine.  Every selector group must
// be one-hot on every row.  On every transition, each register of the next row
// must hold either its current value or, if it is the destination, the
// result of the operation.
func evalMachine[E air.Term[E]](b air.Builder[E], ops []vm.Opcode, width uint, opNames []string) {
	air.CheckWidth(b, width)
	//
	local, next := b.Local(), b.Next()
	//
	gadgets.AssertOneHot(b, "dest", local[DEST:DEST+vm.NUM_REGISTERS])
	gadgets.AssertOneHot(b, "src1", local[SRC1:SRC1+vm.NUM_REGISTERS])
	gadgets.AssertOneHot(b, "src2", local[SRC2:SRC2+vm.NUM_REGISTERS])
	//
	if len(opNames) > 0 {
		gadgets.AssertOneHotNamed(b, "op", opNames, local[OPS:width])
	}
	//
	transition := air.WhenTransition(b)
	implied := impliedNext(local, ops, b.Const(1))
	//
	for i := range vm.NUM_REGISTERS {
		air.AssertEq(transition, fmt.Sprintf("r%d", i), next[REGISTERS+i], implied[i])
	}
}

// Determine the registers of the next row from the current row.  Operand
// values are read using their one-hot selectors, the result of each supported
// operation is selected by the operation selectors, and the result is
// multiplexed into the destination.
func impliedNext[E air.Term[E]](local []E, ops []vm.Opcode, one E) [vm.NUM_REGISTERS]E {
	var (
		next   [vm.NUM_REGISTERS]E
		regs   = local[REGISTERS : REGISTERS+vm.NUM_REGISTERS]
		dest   = local[DEST : DEST+vm.NUM_REGISTERS]
		lhs    = gadgets.DotProduct(regs, local[SRC1:SRC1+vm.NUM_REGISTERS])
		rhs    = gadgets.DotProduct(regs, local[SRC2:SRC2+vm.NUM_REGISTERS])
		result E
	)
	//
	if len(ops) == 1 {
		result = vm.Apply(ops[0], lhs, rhs)
	} else {
		branches := make([]E, len(ops))
		//
		for i, op := range ops {
			branches[i] = vm.Apply(op, lhs, rhs)
		}
		//
		result = gadgets.Select(branches, local[OPS:OPS+len(ops)])
	}
	//
	for i := range vm.NUM_REGISTERS {
		next[i] = gadgets.Mux(dest[i], regs[i], result, one)
	}
	//
	return next
}
