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

import "fmt"

// Term captures the arithmetic needed to express a constraint.  Concrete field
// elements are terms, as are symbolic expressions.  Hence, a constraint
// evaluator written once over terms can be used both for checking a concrete
// trace and for generating polynomial constraints.
type Term[E any] interface {
	// Add two terms together, producing a third.
	Add(E) E
	// Sub (subtract) one term from another.
	Sub(E) E
	// Mul (multiply) two terms together, producing a third.
	Mul(E) E
}

// Builder provides a view of two adjacent rows of a trace (the "local" row and
// the "next" row), along with flags identifying the class of the local row.
// Assertions made against a builder are recorded (or checked) by whoever
// provided the builder.
type Builder[E Term[E]] interface {
	// Local returns the cells of the current row.
	Local() []E
	// Next returns the cells of the following row.
	Next() []E
	// Const constructs a constant term.
	Const(val uint64) E
	// IsFirstRow is one on the first row, and zero otherwise.
	IsFirstRow() E
	// IsLastRow is one on the last row, and zero otherwise.
	IsLastRow() E
	// IsTransition is zero on the last row, and one otherwise.  Thus, it
	// suppresses assertions across the wrap-around from the last row back to
	// the first.
	IsTransition() E
	// AssertZero asserts a given term vanishes.  The handle identifies the
	// assertion for the purposes of error reporting.
	AssertZero(handle string, e E)
}

// Air describes a set of constraints over rows of a fixed width.
type Air[E Term[E]] interface {
	// Width returns the number of columns in each row.
	Width() uint
	// Eval asserts every constraint against the given row pair.
	Eval(b Builder[E])
}

// CheckWidth checks that a given builder provides rows of the expected width.
// A mismatch indicates a programming error and, hence, results in a panic.
func CheckWidth[E Term[E]](b Builder[E], width uint) {
	if n := uint(len(b.Local())); n != width {
		panic(fmt.Sprintf("local row has width %d (expected %d)", n, width))
	} else if n := uint(len(b.Next())); n != width {
		panic(fmt.Sprintf("next row has width %d (expected %d)", n, width))
	}
}

// AssertEq asserts that two terms are equal.
func AssertEq[E Term[E]](b Builder[E], handle string, lhs E, rhs E) {
	b.AssertZero(handle, lhs.Sub(rhs))
}

// AssertOne asserts that a term equals one.
func AssertOne[E Term[E]](b Builder[E], handle string, e E) {
	AssertEq(b, handle, e, b.Const(1))
}

// AssertBool asserts that a term is either zero or one, via e*(e-1) == 0.
func AssertBool[E Term[E]](b Builder[E], handle string, e E) {
	b.AssertZero(handle, e.Mul(e.Sub(b.Const(1))))
}

// ============================================================================
// Filtered builders
// ============================================================================

// filteredBuilder guards every assertion by a given condition.  That is, an
// assertion e == 0 becomes cond*e == 0 and, thus, holds trivially whenever the
// condition is zero.
type filteredBuilder[E Term[E]] struct {
	Builder[E]
	condition E
}

func (p *filteredBuilder[E]) AssertZero(handle string, e E) {
	p.Builder.AssertZero(handle, p.condition.Mul(e))
}

// When returns a builder whose assertions only apply when the given condition
// is non-zero.
func When[E Term[E]](b Builder[E], condition E) Builder[E] {
	return &filteredBuilder[E]{b, condition}
}

// WhenFirstRow returns a builder whose assertions only apply on the first row.
func WhenFirstRow[E Term[E]](b Builder[E]) Builder[E] {
	return When(b, b.IsFirstRow())
}

// WhenLastRow returns a builder whose assertions only apply on the last row.
func WhenLastRow[E Term[E]](b Builder[E]) Builder[E] {
	return When(b, b.IsLastRow())
}

// WhenTransition returns a builder whose assertions apply on every row except
// the last.
func WhenTransition[E Term[E]](b Builder[E]) Builder[E] {
	return When(b, b.IsTransition())
}
