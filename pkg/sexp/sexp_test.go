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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sexp_01(t *testing.T) {
	l := NewList(NewSymbol("*"), NewSymbol("a"), NewList(NewSymbol("-"), NewSymbol("a"), NewSymbol("1")))
	//
	assert.Equal(t, "(* a (- a 1))", l.String())
	assert.True(t, l.IsList())
	assert.False(t, l.IsSymbol())
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.MatchSymbols(2, "*", "a"))
	assert.False(t, l.MatchSymbols(3, "*", "a", "-"))
	assert.False(t, l.MatchSymbols(4, "*"))
}

func Test_Parse_01(t *testing.T) {
	e, err := Parse("(add r0 (r1 r2))")
	require.NoError(t, err)
	//
	l, ok := e.(*List)
	require.True(t, ok)
	assert.Equal(t, "(add r0 (r1 r2))", l.String())
	assert.Equal(t, 0, l.Span.Start())
	assert.Equal(t, 16, l.Span.End())
	assert.Equal(t, NewSpan(5, 7), l.Get(1).(*Symbol).Span)
}

func Test_Parse_02(t *testing.T) {
	terms, err := ParseAll("; header\n(a b) ; trailing\n(c\n ; inner\n)\n")
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "(a b)", terms[0].String())
	assert.Equal(t, "(c)", terms[1].String())
}

func Test_Parse_03(t *testing.T) {
	checkError(t, "(a b", 1)
	checkError(t, "(a b))", 1)
	checkError(t, "(a)\n\n)", 3)
	//
	_, err := Parse("(a) b")
	assert.Error(t, err)
}

func checkError(t *testing.T, text string, line int) {
	t.Helper()
	//
	_, err := ParseAll(text)
	require.Error(t, err)
	//
	serr, ok := err.(*SyntaxError)
	require.True(t, ok)
	assert.Equal(t, line, serr.Line(), text)
}

func Test_EnclosingLine_01(t *testing.T) {
	text := []rune("(a b)\n(c d e)\n")
	err := NewSyntaxError(text, NewSpan(9, 10), "unexpected d")
	//
	line, offset := err.EnclosingLine()
	assert.Equal(t, "(c d e)", line)
	assert.Equal(t, 3, offset)
	assert.Equal(t, 2, err.Line())
	assert.Equal(t, "line 2: unexpected d", err.Error())
}
