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
package sexp

import (
	"fmt"
	"strings"
)

// Span represents a contiguous slice of the original text being parsed.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a new span whilst checking that it is well-formed.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original string.
func (p Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original string.
func (p Span) End() int {
	return p.end
}

// SyntaxError is a structured error which retains the index into the original
// string where an error occurred, along with an error message.
type SyntaxError struct {
	// Text being parsed when the error arose.
	text []rune
	// Index range into string being parsed where error arose.
	span Span
	// Error message being reported
	msg string
}

// NewSyntaxError simply constructs a new syntax error.
func NewSyntaxError(text []rune, span Span, msg string) *SyntaxError {
	return &SyntaxError{text, span, msg}
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Line determines the (1-indexed) line number on which this error starts.
func (p *SyntaxError) Line() int {
	end := min(p.span.Start(), len(p.text))
	//
	return 1 + strings.Count(string(p.text[:end]), "\n")
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", p.Line(), p.Message())
}

// EnclosingLine returns the text of the line on which this error starts,
// along with the offset of the error within that line.
func (p *SyntaxError) EnclosingLine() (string, int) {
	var (
		index = min(p.span.Start(), len(p.text))
		start = index
		end   = index
	)
	//
	for start > 0 && p.text[start-1] != '\n' {
		start--
	}
	//
	for end < len(p.text) && p.text[end] != '\n' {
		end++
	}
	//
	return string(p.text[start:end]), index - start
}
