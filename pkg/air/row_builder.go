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
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// RowBuilder is a builder over the concrete values of two adjacent rows in a
// trace.  Assertions which do not hold are recorded, rather than reported
// immediately, so that all failures for a given row can be collected.
type RowBuilder[F field.Element[F]] struct {
	local        []F
	next         []F
	isFirstRow   F
	isLastRow    F
	isTransition F
	failures     []string
}

// NewRowBuilder constructs a builder for the given row of a trace, where the
// next row wraps around to the first.
func NewRowBuilder[F field.Element[F]](tr *trace.Matrix[F], row uint) *RowBuilder[F] {
	var (
		height = tr.Height()
		zero   = field.Zero[F]()
		one    = field.One[F]()
		p      = &RowBuilder[F]{local: tr.Row(row), next: tr.Row((row + 1) % height)}
	)
	//
	p.isFirstRow, p.isLastRow, p.isTransition = zero, zero, one
	//
	if row == 0 {
		p.isFirstRow = one
	}
	//
	if row+1 == height {
		p.isLastRow, p.isTransition = one, zero
	}
	//
	return p
}

// Local returns the cells of the current row.
func (p *RowBuilder[F]) Local() []F { return p.local }

// Next returns the cells of the following row.
func (p *RowBuilder[F]) Next() []F { return p.next }

// Const constructs a constant field element.
func (p *RowBuilder[F]) Const(val uint64) F { return field.Uint64[F](val) }

// IsFirstRow is one on the first row, and zero otherwise.
func (p *RowBuilder[F]) IsFirstRow() F { return p.isFirstRow }

// IsLastRow is one on the last row, and zero otherwise.
func (p *RowBuilder[F]) IsLastRow() F { return p.isLastRow }

// IsTransition is zero on the last row, and one otherwise.
func (p *RowBuilder[F]) IsTransition() F { return p.isTransition }

// AssertZero records the handle of the given assertion if it does not hold.
func (p *RowBuilder[F]) AssertZero(handle string, e F) {
	if !e.IsZero() {
		p.failures = append(p.failures, handle)
	}
}

// Failures returns the handles of all assertions which did not hold.
func (p *RowBuilder[F]) Failures() []string {
	return p.failures
}
