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
package gadgets

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoyoj1023/zkALU/pkg/air"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
)

type element = babybear.Element

func oneHot(n int, k int) []element {
	sels := make([]element, n)
	sels[k] = babybear.New(1)
	//
	return sels
}

func Test_DotProduct_01(t *testing.T) {
	values := field.Uint64s[element](10, 20, 30, 40)
	//
	for k := range 4 {
		assert.Equal(t, values[k], DotProduct(values, oneHot(4, k)))
	}
}

func Test_DotProduct_02(t *testing.T) {
	values := field.Uint64s[element](1, 2)
	//
	assert.Panics(t, func() { DotProduct(values, field.Uint64s[element](1)) })
	assert.Panics(t, func() { DotProduct([]element{}, []element{}) })
}

func Test_Select_01(t *testing.T) {
	add, sub := babybear.New(8), babybear.New(2)
	// op_add, op_sub
	assert.Equal(t, add, Select([]element{add, sub}, field.Uint64s[element](1, 0)))
	assert.Equal(t, sub, Select([]element{add, sub}, field.Uint64s[element](0, 1)))
}

func Test_Mux_01(t *testing.T) {
	one := babybear.New(1)
	ifZero, ifOne := babybear.New(3), babybear.New(11)
	//
	assert.Equal(t, ifZero, Mux(babybear.New(0), ifZero, ifOne, one))
	assert.Equal(t, ifOne, Mux(one, ifZero, ifOne, one))
}

func Test_AssertOneHot_01(t *testing.T) {
	check := func(sels ...uint64) []string {
		tr := trace.NewMatrix[element](1, 1)
		b := air.NewRowBuilder(tr, 0)
		AssertOneHot[element](b, "dest", field.Uint64s[element](sels...))
		//
		return b.Failures()
	}
	//
	assert.Empty(t, check(0, 0, 1, 0))
	assert.Equal(t, []string{"dest"}, check(0, 0, 0, 0))
	assert.Equal(t, []string{"dest"}, check(1, 0, 1, 0))
	// Fractional selectors summing to one are caught by booleanity.
	half := babybear.New(2).Inverse().Uint64()
	assert.Equal(t, []string{"dest_0", "dest_1"}, check(half, half, 0, 0))
}

func Test_AssertOneHot_02(t *testing.T) {
	tr := trace.NewMatrix[element](1, 1)
	b := air.NewRowBuilder(tr, 0)
	AssertOneHotNamed[element](b, "op", []string{"op_add", "op_sub"}, field.Uint64s[element](2, 0))
	//
	assert.Equal(t, []string{"op_add", "op"}, b.Failures())
	//
	assert.Panics(t, func() {
		AssertOneHotNamed[element](b, "op", []string{"op_add"}, field.Uint64s[element](1, 0))
	})
}

func Test_AssertOneHot_03(t *testing.T) {
	constraints := air.Symbolic[element](2, func(b air.Builder[air.Expr[element]]) {
		AssertOneHot(b, "s", b.Local())
	})
	//
	require.Len(t, constraints, 3)
	assert.Equal(t, "(vanish s_1 (* #1 (- #1 1)))", constraints[1].Lisp(nil).String())
	assert.Equal(t, "(vanish s (- (+ #0 #1) 1))", constraints[2].Lisp(nil).String())
}

func Test_DotProduct_03(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	// Selecting with a one-hot vector is array indexing.
	properties.Property("dot product with one-hot selects", prop.ForAll(
		func(vals []uint32, k uint8) bool {
			values := make([]element, len(vals))
			//
			for i, v := range vals {
				values[i] = babybear.New(uint64(v))
			}
			//
			return DotProduct(values, oneHot(len(vals), int(k))) == values[k]
		},
		gen.SliceOfN(4, gen.UInt32()),
		gen.UInt8Range(0, 3),
	))
	//
	properties.TestingRun(t)
}
