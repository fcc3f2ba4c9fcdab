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
package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/bls12_377"
)

var columns = []string{"a", "b"}

func Test_JsonTrace_01(t *testing.T) {
	tr, err := FromBytes[babybear.Element](columns, []byte(`{"a": [0, 1, 1, 2], "b": [1, 1, 2, 3]}`))
	require.NoError(t, err)
	//
	assert.Equal(t, uint(2), tr.Width())
	assert.Equal(t, uint(4), tr.Height())
	assert.Equal(t, field.Uint64s[babybear.Element](1, 2), tr.Row(2))
}

func Test_JsonTrace_02(t *testing.T) {
	m := trace.NewMatrix[babybear.Element](2, 2)
	m.SetRow(0, field.Uint64s[babybear.Element](5, 8))
	m.SetRow(1, field.Uint64s[babybear.Element](8, 13))
	//
	text := ToJsonString(columns, m)
	assert.Equal(t, `{"a": [5, 8], "b": [8, 13]}`, text)
	//
	tr, err := FromBytes[babybear.Element](columns, []byte(text))
	require.NoError(t, err)
	assert.Equal(t, m.Values(), tr.Values())
}

func Test_JsonTrace_03(t *testing.T) {
	// Missing column
	checkInvalid(t, `{"a": [0, 1]}`)
	// Unknown column
	checkInvalid(t, `{"a": [0], "b": [1], "c": [2]}`)
	// Mismatched heights
	checkInvalid(t, `{"a": [0, 1], "b": [1]}`)
	// Empty
	checkInvalid(t, `{"a": [], "b": []}`)
	// Negative
	checkInvalid(t, `{"a": [-1], "b": [1]}`)
	// Not in field
	checkInvalid(t, `{"a": [2013265921], "b": [1]}`)
	// Malformed
	checkInvalid(t, `{"a": [0], "b": [1]`)
}

func Test_JsonTrace_04(t *testing.T) {
	// Values beyond 64bits are accepted when they fit in the field.
	tr, err := FromBytes[bls12_377.Element](columns, []byte(`{"a": [18446744073709551616], "b": [1]}`))
	require.NoError(t, err)
	//
	assert.Equal(t, "18446744073709551616", field.ToBigInt(tr.Get(0, 0)).String())
	assert.Equal(t, `{"a": [18446744073709551616], "b": [1]}`, ToJsonString(columns, tr))
}

func Test_JsonTrace_05(t *testing.T) {
	// Wrapped values are written in canonical form
	m := trace.NewMatrix[babybear.Element](2, 1)
	m.SetRow(0, []babybear.Element{field.Neg(babybear.New(3)), babybear.New(3)})
	//
	assert.Equal(t, `{"a": [2013265918], "b": [3]}`, ToJsonString(columns, m))
}

func Test_JsonTrace_06(t *testing.T) {
	checkRoundTrip[babybear.Element](t)
	checkRoundTrip[bls12_377.Element](t)
}

// Check that negated values (which wrap around the modulus) survive being
// written and read back.
func checkRoundTrip[F field.Element[F]](t *testing.T) {
	m := trace.NewMatrix[F](2, 100)
	//
	for k := range uint(100) {
		m.Set(0, k, field.Neg(field.Uint64[F](uint64(k+1))))
		m.Set(1, k, field.Uint64[F](uint64(k)))
	}
	//
	tr, err := FromBytes[F](columns, []byte(ToJsonString(columns, m)))
	require.NoError(t, err)
	//
	for i, v := range m.Values() {
		assert.True(t, field.Equal(v, tr.Values()[i]), "index %d", i)
	}
}

func checkInvalid(t *testing.T, text string) {
	t.Helper()
	//
	_, err := FromBytes[babybear.Element](columns, []byte(text))
	assert.Error(t, err, text)
}
