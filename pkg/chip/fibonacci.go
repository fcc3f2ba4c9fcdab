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
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/math"
)

// FIBONACCI_WIDTH is the width of a fibonacci trace.
const FIBONACCI_WIDTH = 2

// Fibonacci is a chip whose trace holds consecutive pairs (a,b) of the
// fibonacci sequence, starting from (0,1).
type Fibonacci[F field.Element[F]] struct{}

// NewFibonacci constructs a fibonacci chip.
func NewFibonacci[F field.Element[F]]() *Fibonacci[F] {
	return &Fibonacci[F]{}
}

// Name of this chip
func (p *Fibonacci[F]) Name() string {
	return "fibonacci"
}

// Width returns the number of columns in a row.
func (p *Fibonacci[F]) Width() uint {
	return FIBONACCI_WIDTH
}

// Columns returns the name of every column in a row.
func (p *Fibonacci[F]) Columns() []string {
	return []string{"a", "b"}
}

// Eval asserts the constraints of this chip against two concrete rows.
func (p *Fibonacci[F]) Eval(b air.Builder[F]) {
	evalFibonacci(b)
}

// EvalSymbolic asserts the constraints of this chip symbolically.
func (p *Fibonacci[F]) EvalSymbolic(b air.Builder[air.Expr[F]]) {
	evalFibonacci(b)
}

// BuildTrace constructs a trace of a given height, which must be a power of
// two.  Values wrap modulo the field characteristic.
func (p *Fibonacci[F]) BuildTrace(height uint) (*trace.Matrix[F], error) {
	if !math.IsPowerOfTwo(height) {
		return nil, fmt.Errorf("fibonacci: %w (%d)", ErrNotPowerOfTwo, height)
	}
	//
	var (
		tr = trace.NewMatrix[F](FIBONACCI_WIDTH, height)
		a  = field.Zero[F]()
		b  = field.One[F]()
	)
	//
	for i := range height {
		tr.Set(0, i, a)
		tr.Set(1, i, b)
		a, b = b, a.Add(b)
	}
	//
	log.Debugf("fibonacci: built trace with %d rows", height)
	//
	return tr, nil
}

func evalFibonacci[E air.Term[E]](b air.Builder[E]) {
	air.CheckWidth(b, FIBONACCI_WIDTH)
	//
	local, next := b.Local(), b.Next()
	// Initial values
	first := air.WhenFirstRow(b)
	air.AssertEq(first, "a_first", local[0], b.Const(0))
	air.AssertOne(first, "b_first", local[1])
	// Recurrence
	transition := air.WhenTransition(b)
	air.AssertEq(transition, "a_next", next[0], local[1])
	air.AssertEq(transition, "b_next", next[1], local[0].Add(local[1]))
}
