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

// AdderDemo constructs an add-only program of n instructions, intended to be
// run from the initial state [1,2,0,0].  After a short preamble, the program
// repeatedly doubles r1 whilst accumulating into the other registers.
func AdderDemo(n uint) Program {
	preamble := Program{
		NewAdd(2, 0, 1), // r2 = r0 + r1
		NewAdd(3, 2, 2), // r3 = r2 + r2
		NewAdd(0, 3, 1), // r0 = r3 + r1
	}
	block := Program{
		NewAdd(1, 1, 1), // r1 = r1 + r1
		NewAdd(2, 2, 0),
		NewAdd(3, 3, 1),
		NewAdd(0, 0, 2),
	}
	//
	return repeat(preamble, block, n)
}

// AluDemo constructs a program of n instructions mixing additions and
// subtractions, intended to be run from the initial state [1,2,5,0].
func AluDemo(n uint) Program {
	preamble := Program{
		NewAdd(0, 0, 1), // r0 = r0 + r1
		NewSub(1, 2, 0), // r1 = r2 - r0
		NewAdd(3, 0, 1), // r3 = r0 + r1
		NewSub(2, 3, 1), // r2 = r3 - r1
	}
	block := Program{
		NewAdd(0, 0, 1),
		NewSub(1, 1, 0),
		NewAdd(2, 2, 3),
		NewSub(3, 3, 2),
	}
	//
	return repeat(preamble, block, n)
}

// AdderDemoInitial is the initial state for AdderDemo.
var AdderDemoInitial = []uint64{1, 2, 0, 0}

// AluDemoInitial is the initial state for AluDemo.
var AluDemoInitial = []uint64{1, 2, 5, 0}

func repeat(preamble Program, block Program, n uint) Program {
	program := make(Program, 0, n)
	//
	for i := uint(0); i < n; i++ {
		if i < uint(len(preamble)) {
			program = append(program, preamble[i])
		} else {
			program = append(program, block[(i-uint(len(preamble)))%uint(len(block))])
		}
	}
	//
	return program
}
