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
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/yoyoj1023/zkALU/pkg/sexp"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// ProgramFile captures the contents of a program file, namely the program
// itself and the initial state of the registers.
type ProgramFile struct {
	Initial []uint64 `json:"initial"`
	Program Program  `json:"program"`
}

// InitialRegisters constructs the initial register file described by a given
// program file.
func InitialRegisters[F field.Element[F]](p *ProgramFile) RegisterFile[F] {
	return NewRegisterFile[F](p.Initial...)
}

// ReadProgramFile reads a program file using a parser based on the extension of
// the filename.
func ReadProgramFile(filename string) (*ProgramFile, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	// Check file extension
	switch ext := path.Ext(filename); ext {
	case ".json":
		return ParseProgramFile(bytes)
	case ".lisp":
		return ParseProgramLisp(string(bytes))
	default:
		return nil, fmt.Errorf("unknown program file format: %s", ext)
	}
}

// ParseProgramFile parses a program file expressed in JSON notation.  For
// example, {"initial": [1,2,5,0], "program": [{"op": "sub", "dest": 1, "src1":
// 2, "src2": 0}]}.  An omitted opcode defaults to "add".
func ParseProgramFile(bytes []byte) (*ProgramFile, error) {
	var file ProgramFile
	//
	if err := json.Unmarshal(bytes, &file); err != nil {
		return nil, err
	} else if err := file.validate(); err != nil {
		return nil, err
	}
	//
	return &file, nil
}

// ParseProgramLisp parses a program file expressed as S-expressions.  For
// example:
//
//	(initial 1 2 5 0)
//	(add r0 r0 r1)
//	(sub r1 r2 r0)
//
// Errors arising from malformed input are reported as *sexp.SyntaxError.
func ParseProgramLisp(text string) (*ProgramFile, error) {
	terms, err := sexp.ParseAll(text)
	if err != nil {
		return nil, err
	}
	//
	var (
		file  ProgramFile
		runes = []rune(text)
	)
	//
	for _, term := range terms {
		list, ok := term.(*sexp.List)
		//
		switch {
		case !ok || list.Len() == 0 || !list.Get(0).IsSymbol():
			return nil, syntaxError(runes, term, "expected declaration or instruction")
		case list.MatchSymbols(1, "initial"):
			if file.Initial != nil {
				return nil, syntaxError(runes, term, "duplicate initial state")
			} else if file.Initial, err = parseInitial(runes, list); err != nil {
				return nil, err
			}
		default:
			insn, err := parseInstruction(runes, list)
			if err != nil {
				return nil, err
			}
			//
			file.Program = append(file.Program, insn)
		}
	}
	//
	if err := file.validate(); err != nil {
		return nil, err
	}
	//
	return &file, nil
}

func parseInitial(text []rune, list *sexp.List) ([]uint64, error) {
	vals := make([]uint64, 0, NUM_REGISTERS)
	//
	for _, e := range list.Elements[1:] {
		sym, ok := e.(*sexp.Symbol)
		if !ok {
			return nil, syntaxError(text, e, "expected register value")
		}
		//
		val, err := strconv.ParseUint(sym.Value, 10, 64)
		if err != nil {
			return nil, syntaxError(text, e, "invalid register value")
		}
		//
		vals = append(vals, val)
	}
	//
	return vals, nil
}

func parseInstruction(text []rune, list *sexp.List) (Instruction, error) {
	var (
		insn Instruction
		regs [3]RegisterIndex
	)
	//
	op, err := ParseOpcode(list.Get(0).String())
	if err != nil {
		return insn, syntaxError(text, list.Get(0), "unknown instruction")
	} else if list.Len() != 4 {
		return insn, syntaxError(text, list, "expected dest, src1 and src2 registers")
	}
	//
	for i := range regs {
		arg := list.Get(i + 1)
		//
		if !arg.IsSymbol() {
			return insn, syntaxError(text, arg, "expected register")
		} else if regs[i], err = ParseRegister(arg.String()); err != nil {
			return insn, syntaxError(text, arg, "unknown register")
		}
	}
	//
	return Instruction{op, regs[0], regs[1], regs[2]}, nil
}

func (p *ProgramFile) validate() error {
	if len(p.Initial) > NUM_REGISTERS {
		return fmt.Errorf("initial state has %d registers (expected at most %d)", len(p.Initial), NUM_REGISTERS)
	}
	//
	return p.Program.Validate()
}

func syntaxError(text []rune, term sexp.SExp, msg string) error {
	var span sexp.Span
	//
	switch t := term.(type) {
	case *sexp.List:
		span = t.Span
	case *sexp.Symbol:
		span = t.Span
	}
	//
	return sexp.NewSyntaxError(text, span, msg)
}

// IsSyntaxError checks whether a given error arose from malformed S-expression
// input and, if so, returns it.
func IsSyntaxError(err error) (*sexp.SyntaxError, bool) {
	var serr *sexp.SyntaxError
	//
	ok := errors.As(err, &serr)
	//
	return serr, ok
}
