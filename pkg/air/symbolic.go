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
package air

import (
	"github.com/yoyoj1023/zkALU/pkg/sexp"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// Constraint is a named polynomial which must vanish on every row of a valid
// trace.
type Constraint[F field.Element[F]] struct {
	// Handle identifies this constraint for error reporting.
	Handle string
	// Expr is the polynomial which must evaluate to zero.
	Expr Expr[F]
}

// Degree returns the degree of the underlying polynomial.
func (p Constraint[F]) Degree() uint {
	return p.Expr.Degree()
}

// HoldsAt determines whether this constraint holds on a given row of a trace.
func (p Constraint[F]) HoldsAt(row uint, tr *trace.Matrix[F]) bool {
	return p.Expr.EvalAt(row, tr).IsZero()
}

// Lisp converts this constraint into an S-Expression, such as "(vanish r0 ...)".
func (p Constraint[F]) Lisp(columns []string) sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("vanish"), sexp.NewSymbol(p.Handle), p.Expr.Lisp(columns))
}

// SymbolicBuilder is a builder whose rows consist of column accesses.  Running
// a constraint evaluator against it records the polynomials asserted.
type SymbolicBuilder[F field.Element[F]] struct {
	local       []Expr[F]
	next        []Expr[F]
	constraints []Constraint[F]
}

// NewSymbolicBuilder constructs a symbolic builder for rows of a given width.
func NewSymbolicBuilder[F field.Element[F]](width uint) *SymbolicBuilder[F] {
	local := make([]Expr[F], width)
	next := make([]Expr[F], width)
	//
	for i := range width {
		local[i] = NewColumnAccess[F](i, 0)
		next[i] = NewColumnAccess[F](i, 1)
	}
	//
	return &SymbolicBuilder[F]{local, next, nil}
}

// Symbolic runs a constraint evaluator of the given width symbolically,
// returning the constraints it asserts.
func Symbolic[F field.Element[F]](width uint, eval func(Builder[Expr[F]])) []Constraint[F] {
	builder := NewSymbolicBuilder[F](width)
	eval(builder)
	//
	return builder.Constraints()
}

// Local returns the cells of the current row.
func (p *SymbolicBuilder[F]) Local() []Expr[F] { return p.local }

// Next returns the cells of the following row.
func (p *SymbolicBuilder[F]) Next() []Expr[F] { return p.next }

// Const constructs a constant expression.
func (p *SymbolicBuilder[F]) Const(val uint64) Expr[F] { return NewConstant[F](val) }

// IsFirstRow returns the first row selector.
func (p *SymbolicBuilder[F]) IsFirstRow() Expr[F] { return &RowSelector[F]{FIRST_ROW} }

// IsLastRow returns the last row selector.
func (p *SymbolicBuilder[F]) IsLastRow() Expr[F] { return &RowSelector[F]{LAST_ROW} }

// IsTransition returns the transition selector.
func (p *SymbolicBuilder[F]) IsTransition() Expr[F] { return &RowSelector[F]{TRANSITION} }

// AssertZero records a given constraint.
func (p *SymbolicBuilder[F]) AssertZero(handle string, e Expr[F]) {
	p.constraints = append(p.constraints, Constraint[F]{handle, e})
}

// Constraints returns the constraints recorded so far, in the order they were
// asserted.
func (p *SymbolicBuilder[F]) Constraints() []Constraint[F] {
	return p.constraints
}

// MaxDegree returns the largest degree of any recorded constraint.
func (p *SymbolicBuilder[F]) MaxDegree() uint {
	return MaxDegree(p.constraints)
}

// MaxDegree returns the largest degree of any constraint in a given set.
func MaxDegree[F field.Element[F]](constraints []Constraint[F]) uint {
	var degree uint
	//
	for _, c := range constraints {
		degree = max(degree, c.Degree())
	}
	//
	return degree
}
