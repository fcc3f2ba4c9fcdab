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
	"io"
	"math"

	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/termio"
)

// Printer encapsulates various configuration options useful for printing out
// traces in human-readable forms.
type Printer[F field.Element[F]] struct {
	// Column names
	columns []string
	// First row to print
	startRow uint
	// Last row to print (exclusive)
	endRow uint
	// Determine maximum width to print
	maxCellWidth uint
	// Enable ANSI
	ansiEscapes bool
}

// NewPrinter constructs a default printer for a trace with the given column
// names.
func NewPrinter[F field.Element[F]](columns []string) *Printer[F] {
	return &Printer[F]{columns, 0, math.MaxUint, math.MaxUint, true}
}

// Start configures the starting row for this printer.
func (p *Printer[F]) Start(start uint) *Printer[F] {
	p.startRow = start
	return p
}

// End configures the ending row (exclusive) for this printer.
func (p *Printer[F]) End(end uint) *Printer[F] {
	p.endRow = end
	return p
}

// AnsiEscapes can be used to enable or disable the use of ANSI escape sequences
// (e.g. for showing colour in a terminal, etc)
func (p *Printer[F]) AnsiEscapes(enable bool) *Printer[F] {
	p.ansiEscapes = enable
	return p
}

// MaxCellWidth sets the maximum width to use for the cell data.
func (p *Printer[F]) MaxCellWidth(width uint) *Printer[F] {
	p.maxCellWidth = width
	return p
}

// Print a given trace using the configured printer.  Padding rows are shown in
// a different colour or, when escapes are disabled, marked with "*".
func (p *Printer[F]) Print(tr *Matrix[F], out io.Writer) {
	if uint(len(p.columns)) != tr.Width() {
		panic(fmt.Sprintf("trace has width %d, but %d columns named", tr.Width(), len(p.columns)))
	}
	//
	start := min(p.startRow, tr.Height())
	end := min(p.endRow, tr.Height())
	height := 1 + max(start, end) - start
	//
	tp := termio.NewTablePrinter(1+tr.Width(), height)
	tp.AnsiEscapes(p.ansiEscapes)
	// Set column titles
	header := termio.BoldAnsiEscape()
	tp.Set(0, 0, "row")
	//
	for i, name := range p.columns {
		tp.Set(uint(i+1), 0, name)
	}
	//
	tp.SetRowEscape(0, header)
	// Construct suitable highlighting escape
	padEscape := termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
	// Fill table
	for row := start; row < end; row++ {
		index := fmt.Sprintf("%d", row)
		//
		if tr.IsPadding(row) && !p.ansiEscapes {
			index = "*" + index
		}
		//
		tp.Set(0, 1+row-start, index)
		//
		for col := range tr.Width() {
			tp.Set(1+col, 1+row-start, tr.Get(col, row).Text(10))
		}
		//
		if tr.IsPadding(row) {
			tp.SetRowEscape(1+row-start, padEscape)
		}
	}
	// Cap cells
	tp.SetMaxWidths(p.maxCellWidth)
	// Done
	tp.Print(out)
}

// PrintTrace prints the first n rows of a trace in a human-friendly fashion.
func PrintTrace[F field.Element[F]](tr *Matrix[F], columns []string, n uint, out io.Writer, ansiEscapes bool) {
	NewPrinter[F](columns).End(n).AnsiEscapes(ansiEscapes).Print(tr, out)
}
