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
package trace

import (
	"fmt"

	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// Matrix is a row-major table of field elements with a fixed width.  Every
// row of a trace records one step of execution, whilst every column records
// the value of a single cell (e.g. a register or selector) across execution.
type Matrix[F field.Element[F]] struct {
	width uint
	// Number of rows which existed before any padding was applied.
	real uint
	data []F
}

// NewMatrix constructs a zero-initialised matrix of given dimensions.
func NewMatrix[F field.Element[F]](width uint, height uint) *Matrix[F] {
	if width == 0 {
		panic("matrix width must be positive")
	}
	//
	return &Matrix[F]{width, height, make([]F, width*height)}
}

// NewMatrixFromRows constructs a matrix from a given set of rows, each of which
// must have the same (non-zero) width.
func NewMatrixFromRows[F field.Element[F]](rows ...[]F) (*Matrix[F], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix requires at least one row")
	}
	//
	m := NewMatrix[F](uint(len(rows[0])), uint(len(rows)))
	//
	for i, row := range rows {
		if uint(len(row)) != m.width {
			return nil, fmt.Errorf("row %d has width %d (expected %d)", i, len(row), m.width)
		}
		//
		m.SetRow(uint(i), row)
	}
	//
	return m, nil
}

// Width returns the number of columns in this matrix.
func (p *Matrix[F]) Width() uint {
	return p.width
}

// Height returns the number of rows in this matrix (including any padding).
func (p *Matrix[F]) Height() uint {
	return uint(len(p.data)) / p.width
}

// RealHeight returns the number of rows in this matrix which were present
// before padding was applied.
func (p *Matrix[F]) RealHeight() uint {
	return p.real
}

// IsPadding determines whether a given row was introduced by padding.
func (p *Matrix[F]) IsPadding(row uint) bool {
	return row >= p.real
}

// Row returns the given row of this matrix.  The returned slice aliases the
// underlying data but is capped so that appending to it cannot overwrite the
// following row.
func (p *Matrix[F]) Row(row uint) []F {
	start := row * p.width
	end := start + p.width
	//
	return p.data[start:end:end]
}

// Get the value of a given cell.
func (p *Matrix[F]) Get(col uint, row uint) F {
	p.checkCol(col)
	//
	return p.data[row*p.width+col]
}

// Set the value of a given cell.
func (p *Matrix[F]) Set(col uint, row uint, val F) {
	p.checkCol(col)
	//
	p.data[row*p.width+col] = val
}

// SetRow overwrites an entire row.  This panics if the given row has the wrong
// width.
func (p *Matrix[F]) SetRow(row uint, vals []F) {
	if uint(len(vals)) != p.width {
		panic(fmt.Sprintf("row has width %d (expected %d)", len(vals), p.width))
	}
	//
	copy(p.Row(row), vals)
}

// Column returns a copy of the values held in a given column.
func (p *Matrix[F]) Column(col uint) []F {
	p.checkCol(col)
	//
	height := p.Height()
	vals := make([]F, height)
	//
	for i := range height {
		vals[i] = p.data[i*p.width+col]
	}
	//
	return vals
}

// Values returns the underlying row-major data of this matrix.
func (p *Matrix[F]) Values() []F {
	return p.data
}

// Clone produces a deep copy of this matrix.
func (p *Matrix[F]) Clone() *Matrix[F] {
	data := make([]F, len(p.data))
	copy(data, p.data)
	//
	return &Matrix[F]{p.width, p.real, data}
}

// PadTo extends this matrix to a given height by replicating its last row into
// every new row.  This panics if the matrix has no rows, or the requested
// height is smaller than the current height.
func (p *Matrix[F]) PadTo(height uint) {
	n := p.Height()
	//
	if n == 0 {
		panic("cannot pad an empty matrix")
	} else if height < n {
		panic(fmt.Sprintf("cannot pad matrix of height %d to %d", n, height))
	}
	//
	last := p.Row(n - 1)
	data := make([]F, height*p.width)
	copy(data, p.data)
	//
	for i := n; i < height; i++ {
		copy(data[i*p.width:], last)
	}
	//
	p.data = data
}

// String returns a compact representation of this matrix, one row per line.
func (p *Matrix[F]) String() string {
	var s string
	//
	for i := range p.Height() {
		s += fmt.Sprintf("%v\n", p.Row(i))
	}
	//
	return s
}

func (p *Matrix[F]) checkCol(col uint) {
	if col >= p.width {
		panic(fmt.Sprintf("column %d out-of-bounds (width %d)", col, p.width))
	}
}
