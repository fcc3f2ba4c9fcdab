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
	"fmt"

	"github.com/yoyoj1023/zkALU/pkg/sexp"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// Expr represents a symbolic polynomial expression over the cells of two
// adjacent rows.  Any constraint evaluator written over terms can be run
// against symbolic expressions to recover the polynomials it asserts.
type Expr[F field.Element[F]] interface {
	// Add two expressions together, producing a third.
	Add(Expr[F]) Expr[F]

	// Subtract one expression from another
	Sub(Expr[F]) Expr[F]

	// Multiply two expressions together, producing a third.
	Mul(Expr[F]) Expr[F]

	// Degree returns the degree of this expression, when viewed as a
	// polynomial over the trace columns and row selectors.
	Degree() uint

	// EvalAt evaluates this expression at a given row of a concrete trace.
	// Accesses to the next row wrap around to the first row.
	EvalAt(row uint, tr *trace.Matrix[F]) F

	// Lisp converts this expression into an S-Expression, using the given
	// column names (or column indices if none are given).
	Lisp(columns []string) sexp.SExp

	// AsConstant determines whether or not this is a constant expression.  If
	// so, the constant is returned; otherwise, nil is returned.  NOTE: this
	// does not perform any form of simplification to determine this.
	AsConstant() *F
}

// ============================================================================
// Addition
// ============================================================================

// Add represents the sum over one or more expressions.
type Add[F field.Element[F]] struct{ Args []Expr[F] }

// Add two expressions together, producing a third.
func (p *Add[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Add[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Add[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a sum is the maximum degree of any argument.
func (p *Add[F]) Degree() uint { return maxDegree(p.Args) }

// EvalAt evaluates this expression at a given row.
func (p *Add[F]) EvalAt(row uint, tr *trace.Matrix[F]) F {
	val := p.Args[0].EvalAt(row, tr)
	//
	for _, arg := range p.Args[1:] {
		val = val.Add(arg.EvalAt(row, tr))
	}
	//
	return val
}

// Lisp converts this expression into an S-Expression.
func (p *Add[F]) Lisp(columns []string) sexp.SExp { return nary2Lisp(columns, "+", p.Args) }

// AsConstant determines whether or not this is a constant expression.
func (p *Add[F]) AsConstant() *F { return nil }

func (p *Add[F]) String() string { return p.Lisp(nil).String() }

// ============================================================================
// Subtraction
// ============================================================================

// Sub represents the subtraction over one or more expressions.
type Sub[F field.Element[F]] struct{ Args []Expr[F] }

// Add two expressions together, producing a third.
func (p *Sub[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Sub[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Sub[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a subtraction is the maximum degree of any argument.
func (p *Sub[F]) Degree() uint { return maxDegree(p.Args) }

// EvalAt evaluates this expression at a given row.
func (p *Sub[F]) EvalAt(row uint, tr *trace.Matrix[F]) F {
	val := p.Args[0].EvalAt(row, tr)
	//
	for _, arg := range p.Args[1:] {
		val = val.Sub(arg.EvalAt(row, tr))
	}
	//
	return val
}

// Lisp converts this expression into an S-Expression.
func (p *Sub[F]) Lisp(columns []string) sexp.SExp { return nary2Lisp(columns, "-", p.Args) }

// AsConstant determines whether or not this is a constant expression.
func (p *Sub[F]) AsConstant() *F { return nil }

func (p *Sub[F]) String() string { return p.Lisp(nil).String() }

// ============================================================================
// Multiplication
// ============================================================================

// Mul represents the product over one or more expressions.
type Mul[F field.Element[F]] struct{ Args []Expr[F] }

// Add two expressions together, producing a third.
func (p *Mul[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Mul[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Mul[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a product is the sum of the degrees of its arguments.
func (p *Mul[F]) Degree() uint {
	var degree uint
	//
	for _, arg := range p.Args {
		degree += arg.Degree()
	}
	//
	return degree
}

// EvalAt evaluates this expression at a given row.  Evaluation short-circuits
// as soon as a zero factor is encountered.
func (p *Mul[F]) EvalAt(row uint, tr *trace.Matrix[F]) F {
	val := p.Args[0].EvalAt(row, tr)
	//
	for _, arg := range p.Args[1:] {
		// Can short-circuit evaluation?
		if val.IsZero() {
			break
		}
		//
		val = val.Mul(arg.EvalAt(row, tr))
	}
	//
	return val
}

// Lisp converts this expression into an S-Expression.
func (p *Mul[F]) Lisp(columns []string) sexp.SExp { return nary2Lisp(columns, "*", p.Args) }

// AsConstant determines whether or not this is a constant expression.
func (p *Mul[F]) AsConstant() *F { return nil }

func (p *Mul[F]) String() string { return p.Lisp(nil).String() }

// ============================================================================
// Constant
// ============================================================================

// Constant represents a constant value within an expression.
type Constant[F field.Element[F]] struct{ Value F }

// NewConstant construct an expression representing a given constant.
func NewConstant[F field.Element[F]](val uint64) *Constant[F] {
	return &Constant[F]{field.Uint64[F](val)}
}

// Add two expressions together, producing a third.
func (p *Constant[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Constant[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Constant[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a constant is zero.
func (p *Constant[F]) Degree() uint { return 0 }

// EvalAt evaluates this expression at a given row.
func (p *Constant[F]) EvalAt(row uint, tr *trace.Matrix[F]) F { return p.Value }

// Lisp converts this expression into an S-Expression.
func (p *Constant[F]) Lisp(columns []string) sexp.SExp { return sexp.NewSymbol(p.Value.Text(10)) }

// AsConstant returns the constant value.
func (p *Constant[F]) AsConstant() *F { return &p.Value }

func (p *Constant[F]) String() string { return p.Lisp(nil).String() }

// ============================================================================
// Column Access
// ============================================================================

// ColumnAccess represents reading the value held in a given column of either
// the local row (shift 0) or the next row (shift 1).
type ColumnAccess[F field.Element[F]] struct {
	Column uint
	Shift  uint
}

// NewColumnAccess constructs an expression representing a column access on a
// given row.
func NewColumnAccess[F field.Element[F]](column uint, shift uint) *ColumnAccess[F] {
	if shift > 1 {
		panic("only local and next rows are accessible")
	}
	//
	return &ColumnAccess[F]{column, shift}
}

// Add two expressions together, producing a third.
func (p *ColumnAccess[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *ColumnAccess[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *ColumnAccess[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a column access is one.
func (p *ColumnAccess[F]) Degree() uint { return 1 }

// EvalAt evaluates this expression at a given row.
func (p *ColumnAccess[F]) EvalAt(row uint, tr *trace.Matrix[F]) F {
	return tr.Get(p.Column, (row+p.Shift)%tr.Height())
}

// Lisp converts this expression into an S-Expression.
func (p *ColumnAccess[F]) Lisp(columns []string) sexp.SExp {
	var access sexp.SExp = columnName(columns, p.Column)
	// Check whether shifted (or not)
	if p.Shift == 0 {
		// Not shifted
		return access
	}
	// Shifted
	return sexp.NewList(sexp.NewSymbol("shift"), access, sexp.NewSymbol("1"))
}

// AsConstant determines whether or not this is a constant expression.
func (p *ColumnAccess[F]) AsConstant() *F { return nil }

func (p *ColumnAccess[F]) String() string { return p.Lisp(nil).String() }

// ============================================================================
// Row Selectors
// ============================================================================

// RowSelectorKind identifies a class of rows.
type RowSelectorKind uint8

const (
	// FIRST_ROW selects only the first row.
	FIRST_ROW RowSelectorKind = iota
	// LAST_ROW selects only the last row.
	LAST_ROW
	// TRANSITION selects every row except the last.
	TRANSITION
)

// RowSelector represents a selector which is one on rows of a given kind, and
// zero otherwise.
type RowSelector[F field.Element[F]] struct{ Kind RowSelectorKind }

// Add two expressions together, producing a third.
func (p *RowSelector[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *RowSelector[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *RowSelector[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a row selector is one.
func (p *RowSelector[F]) Degree() uint { return 1 }

// EvalAt evaluates this expression at a given row.
func (p *RowSelector[F]) EvalAt(row uint, tr *trace.Matrix[F]) F {
	var selected bool
	//
	switch p.Kind {
	case FIRST_ROW:
		selected = row == 0
	case LAST_ROW:
		selected = row+1 == tr.Height()
	default:
		selected = row+1 != tr.Height()
	}
	//
	if selected {
		return field.One[F]()
	}
	//
	return field.Zero[F]()
}

// Lisp converts this expression into an S-Expression.
func (p *RowSelector[F]) Lisp(columns []string) sexp.SExp {
	switch p.Kind {
	case FIRST_ROW:
		return sexp.NewSymbol("first")
	case LAST_ROW:
		return sexp.NewSymbol("last")
	default:
		return sexp.NewSymbol("transition")
	}
}

// AsConstant determines whether or not this is a constant expression.
func (p *RowSelector[F]) AsConstant() *F { return nil }

func (p *RowSelector[F]) String() string { return p.Lisp(nil).String() }

// ============================================================================
// Helpers
// ============================================================================

func maxDegree[F field.Element[F]](exprs []Expr[F]) uint {
	var degree uint
	//
	for _, e := range exprs {
		degree = max(degree, e.Degree())
	}
	//
	return degree
}

func columnName(columns []string, index uint) *sexp.Symbol {
	if index < uint(len(columns)) {
		return sexp.NewSymbol(columns[index])
	}
	//
	return sexp.NewSymbol(fmt.Sprintf("#%d", index))
}

func nary2Lisp[F field.Element[F]](columns []string, op string, exprs []Expr[F]) sexp.SExp {
	arr := make([]sexp.SExp, 1+len(exprs))
	arr[0] = sexp.NewSymbol(op)
	// Translate arguments
	for i, e := range exprs {
		arr[i+1] = e.Lisp(columns)
	}
	// Done
	return sexp.NewList(arr...)
}
