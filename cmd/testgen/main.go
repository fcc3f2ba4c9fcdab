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
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/trace/json"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/math"
	"github.com/yoyoj1023/zkALU/pkg/vm"
)

type element = babybear.Element

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Uint("min-elem", 0, "Minimum element")
	rootCmd.Flags().Uint("max-elem", 2, "Maximum element")
	rootCmd.Flags().Uint("min-lines", 1, "Minimum number of lines")
	rootCmd.Flags().Uint("max-lines", 3, "Maximum number of lines")
	rootCmd.Flags().Uint("samples", 32, "Number of programs to sample (register machines only)")
	rootCmd.Flags().Uint64("seed", 1, "Seed for sampling programs")
	rootCmd.Flags().String("dir", "testdata", "Directory to write into")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testgen model",
	Short: "Test generation utility for zkalu.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		var cfg TestGenConfig
		// Lookup model
		cfg.model = findModel(args[0])
		cfg.minElem = getUint(cmd, "min-elem")
		cfg.maxElem = getUint(cmd, "max-elem")
		cfg.minLines = getUint(cmd, "min-lines")
		cfg.maxLines = getUint(cmd, "max-lines")
		cfg.samples = getUint(cmd, "samples")
		cfg.seed, _ = cmd.Flags().GetUint64("seed")
		cfg.dir, _ = cmd.Flags().GetString("dir")
		// Generate & split traces
		valid, invalid := cfg.model.Generator(cfg)
		// Write out
		writeTestTraces(cfg, "accepts", valid)
		writeTestTraces(cfg, "rejects", invalid)
		os.Exit(0)
	},
}

// TestGenConfig encapsulates configuration related to test generation.
type TestGenConfig struct {
	model    Model
	minElem  uint
	maxElem  uint
	minLines uint
	maxLines uint
	samples  uint
	seed     uint64
	dir      string
}

// OracleFn defines function which determines whether or not a given trace is
// accepted by the model (or not).  Oracles are written independently of the
// constraints they are used to test.
type OracleFn = func(*trace.Matrix[element]) bool

// GeneratorFn generates a set of traces, split into those accepted and those
// rejected by a model.
type GeneratorFn = func(TestGenConfig) ([]*trace.Matrix[element], []*trace.Matrix[element])

// Model represents a hard-coded oracle for a given chip.
type Model struct {
	// Name of the model in question
	Name string
	// Columns of traces for this model
	Columns []string
	// Generator for traces of this model
	Generator GeneratorFn
}

var models = []Model{
	{"fibonacci", chip.NewFibonacci[element]().Columns(), enumerate(2, fibonacciModel)},
	{"adder", chip.NewAdder[element]().Columns(), sample(chip.NewAdder[element](), machineModel(vm.ADD))},
	{"alu", chip.NewAlu[element]().Columns(), sample(chip.NewAlu[element](), machineModel(vm.ADD, vm.SUB))},
}

func findModel(name string) Model {
	for _, m := range models {
		if m.Name == name {
			return m
		}
	}
	//
	panic(fmt.Sprintf("unknown model \"%s\"", name))
}

// Enumerate all traces of a given width whose height is a power of two within
// the configured range, and whose elements are drawn from the configured
// pool.
func enumerate(width uint, oracle OracleFn) GeneratorFn {
	return func(cfg TestGenConfig) ([]*trace.Matrix[element], []*trace.Matrix[element]) {
		var (
			pool    = generatePool(cfg)
			valid   []*trace.Matrix[element]
			invalid []*trace.Matrix[element]
		)
		//
		for n := cfg.minLines; n < cfg.maxLines; n++ {
			if !math.IsPowerOfTwo(n) {
				continue
			}
			//
			for indices := make([]uint, width*n); indices != nil; indices = increment(indices, uint(len(pool))) {
				tr := trace.NewMatrix[element](width, n)
				//
				for i, index := range indices {
					tr.Set(uint(i)%width, uint(i)/width, pool[index])
				}
				// Check whether trace is valid or not (according to the oracle)
				if oracle(tr) {
					valid = append(valid, tr)
				} else {
					invalid = append(invalid, tr)
				}
			}
		}
		// Done
		return valid, invalid
	}
}

// Increment an odometer of pool indices, returning nil once it wraps around.
func increment(indices []uint, n uint) []uint {
	for i := range indices {
		if indices[i]++; indices[i] < n {
			return indices
		}
		//
		indices[i] = 0
	}
	//
	return nil
}

// Sample random programs (and initial states drawn from the pool) for a given
// machine.  Each resulting trace is kept, along with a copy in which one cell
// has been overwritten with a pool element.
func sample(machine *chip.RegisterMachine[element], oracle OracleFn) GeneratorFn {
	return func(cfg TestGenConfig) ([]*trace.Matrix[element], []*trace.Matrix[element]) {
		var (
			rng     = rand.New(rand.NewPCG(cfg.seed, cfg.seed))
			pool    = generatePool(cfg)
			ops     = machine.Opcodes()
			valid   []*trace.Matrix[element]
			invalid []*trace.Matrix[element]
		)
		//
		for range cfg.samples {
			var (
				n       = cfg.minLines + rng.UintN(max(1, cfg.maxLines-cfg.minLines))
				program = make(vm.Program, max(n, 1))
				initial vm.RegisterFile[element]
			)
			//
			for i := range initial {
				initial[i] = pool[rng.IntN(len(pool))]
			}
			//
			for i := range program {
				program[i] = vm.Instruction{
					Op:   ops[rng.IntN(len(ops))],
					Dest: vm.RegisterIndex(rng.UintN(vm.NUM_REGISTERS)),
					Src1: vm.RegisterIndex(rng.UintN(vm.NUM_REGISTERS)),
					Src2: vm.RegisterIndex(rng.UintN(vm.NUM_REGISTERS)),
				}
			}
			//
			tr, err := machine.BuildTrace(program, initial)
			if err != nil {
				panic(err)
			}
			//
			mutant := tr.Clone()
			mutant.Set(rng.UintN(tr.Width()), rng.UintN(tr.Height()), pool[rng.IntN(len(pool))])
			//
			for _, t := range []*trace.Matrix[element]{tr, mutant} {
				if oracle(t) {
					valid = append(valid, t)
				} else {
					invalid = append(invalid, t)
				}
			}
		}
		//
		return valid, invalid
	}
}

func generatePool(cfg TestGenConfig) []element {
	n := cfg.maxElem - cfg.minElem + 1
	elems := make([]element, n)
	// Iterate values
	for i := uint(0); i != n; i++ {
		elems[i] = babybear.New(uint64(cfg.minElem + i))
	}
	// Done
	return elems
}

func writeTestTraces(cfg TestGenConfig, ext string, traces []*trace.Matrix[element]) {
	var sb strings.Builder
	// Construct filename
	filename := path.Join(cfg.dir, fmt.Sprintf("%s.auto.%s", cfg.model.Name, ext))
	// Generate lines
	for _, tr := range traces {
		sb.WriteString(json.ToJsonString(cfg.model.Columns, tr))
		sb.WriteString("\n")
	}
	// Write the file
	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		panic(err)
	}
	// Log what happened
	log.Infof("Wrote %s (%d traces)\n", filename, len(traces))
}

func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return r
}

// ============================================================================
// Models
// ============================================================================

func fibonacciModel(tr *trace.Matrix[element]) bool {
	if !eq(tr.Get(0, 0), 0) || !eq(tr.Get(1, 0), 1) {
		return false
	}
	//
	for i := uint(0); i+1 < tr.Height(); i++ {
		a, b := tr.Get(0, i), tr.Get(1, i)
		//
		if !field.Equal(tr.Get(0, i+1), b) || !field.Equal(tr.Get(1, i+1), a.Add(b)) {
			return false
		}
	}
	//
	return true
}

func machineModel(ops ...vm.Opcode) OracleFn {
	return func(tr *trace.Matrix[element]) bool {
		for i := range tr.Height() {
			insn, ok := decodeInstruction(tr.Row(i), ops)
			//
			if !ok {
				return false
			} else if i+1 == tr.Height() {
				break
			}
			//
			var regs, next vm.RegisterFile[element]
			//
			copy(regs[:], tr.Row(i)[chip.REGISTERS:])
			copy(next[:], tr.Row(i + 1)[chip.REGISTERS:])
			//
			for j, val := range vm.Step(regs, insn) {
				if !field.Equal(val, next[j]) {
					return false
				}
			}
		}
		//
		return true
	}
}

// Decode the instruction encoded in a given row, provided every selector group
// holds exactly one 1 and is otherwise 0.
func decodeInstruction(row []element, ops []vm.Opcode) (vm.Instruction, bool) {
	var (
		insn = vm.Instruction{Op: ops[0]}
		ok   = true
	)
	//
	insn.Dest, ok = decodeSelector(row[chip.DEST:chip.DEST+vm.NUM_REGISTERS], ok)
	insn.Src1, ok = decodeSelector(row[chip.SRC1:chip.SRC1+vm.NUM_REGISTERS], ok)
	insn.Src2, ok = decodeSelector(row[chip.SRC2:chip.SRC2+vm.NUM_REGISTERS], ok)
	//
	if len(ops) > 1 {
		var index vm.RegisterIndex
		//
		index, ok = decodeSelector(row[chip.OPS:chip.OPS+uint(len(ops))], ok)
		insn.Op = ops[min(int(index), len(ops)-1)]
	}
	//
	return insn, ok
}

func decodeSelector(selectors []element, ok bool) (vm.RegisterIndex, bool) {
	index := -1
	//
	for i, s := range selectors {
		if eq(s, 1) && index < 0 {
			index = i
		} else if !eq(s, 0) {
			return 0, false
		}
	}
	//
	return vm.RegisterIndex(max(index, 0)), ok && index >= 0
}

func eq(val element, expected uint64) bool {
	return field.Equal(val, babybear.New(expected))
}
