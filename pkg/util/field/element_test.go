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
package field_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/field/babybear"
	"github.com/yoyoj1023/zkALU/pkg/util/field/bls12_377"
	"github.com/yoyoj1023/zkALU/pkg/util/field/koalabear"
)

const (
	BABYBEAR_MODULUS  = uint64(2013265921)
	KOALABEAR_MODULUS = uint64(2130706433)
)

func init() {
	// make sure the interface is adhered to.
	_ = field.Element[babybear.Element](babybear.Element{})
	_ = field.Element[koalabear.Element](koalabear.Element{})
	_ = field.Element[bls12_377.Element](bls12_377.Element{})
}

func Test_Modulus_01(t *testing.T) {
	assert.Equal(t, new(big.Int).SetUint64(BABYBEAR_MODULUS), field.Zero[babybear.Element]().Modulus())
	assert.Equal(t, new(big.Int).SetUint64(KOALABEAR_MODULUS), field.Zero[koalabear.Element]().Modulus())
}

func Test_Constants_01(t *testing.T) {
	assert.True(t, field.Zero[babybear.Element]().IsZero())
	assert.True(t, field.One[babybear.Element]().IsOne())
	assert.Equal(t, uint64(7), field.Uint64[babybear.Element](7).Uint64())
	// Values are reduced modulo p
	assert.Equal(t, uint64(1), field.Uint64[babybear.Element](BABYBEAR_MODULUS+1).Uint64())
}

func Test_Sub_01(t *testing.T) {
	var (
		three = field.Uint64[babybear.Element](3)
		five  = field.Uint64[babybear.Element](5)
	)
	// 3 - 5 wraps around to p - 2
	assert.Equal(t, BABYBEAR_MODULUS-2, three.Sub(five).Uint64())
	assert.Equal(t, uint64(2), five.Sub(three).Uint64())
}

func Test_Sub_02(t *testing.T) {
	var (
		three = field.Uint64[koalabear.Element](3)
		five  = field.Uint64[koalabear.Element](5)
	)
	//
	assert.Equal(t, KOALABEAR_MODULUS-2, three.Sub(five).Uint64())
}

func Test_Sub_03(t *testing.T) {
	var (
		three = field.Uint64[bls12_377.Element](3)
		five  = field.Uint64[bls12_377.Element](5)
	)
	// Wrapped values exceed 64 bits in this field.
	assert.Panics(t, func() { three.Sub(five).Uint64() })
	assert.True(t, field.Equal(three.Sub(five).Add(five), three))
}

func Test_Neg_01(t *testing.T) {
	one := field.One[babybear.Element]()
	//
	assert.True(t, field.Neg(one).Add(one).IsZero())
	assert.True(t, field.Neg(field.Zero[babybear.Element]()).IsZero())
}

func Test_Inverse_01(t *testing.T) {
	for i := uint64(1); i < 1000; i++ {
		x := field.Uint64[babybear.Element](i)
		require.True(t, x.Mul(x.Inverse()).IsOne(), "inverse of %d", i)
	}
	// Zero has no inverse
	assert.True(t, field.Zero[babybear.Element]().Inverse().IsZero())
}

func Test_Pow_01(t *testing.T) {
	checkPow[babybear.Element](t)
}

func Test_Pow_02(t *testing.T) {
	checkPow[koalabear.Element](t)
}

func Test_Pow_03(t *testing.T) {
	checkPow[bls12_377.Element](t)
}

func Test_Uint64s_01(t *testing.T) {
	vals := field.Uint64s[babybear.Element](0, 1, 2, 3)
	//
	require.Len(t, vals, 4)
	//
	for i, v := range vals {
		assert.Equal(t, uint64(i), v.Uint64())
	}
}

func Test_Config_01(t *testing.T) {
	assert.Equal(t, &field.BABYBEAR, field.GetConfig("BABYBEAR"))
	assert.Equal(t, &field.BLS12_377, field.GetConfig("BLS12_377"))
	assert.Nil(t, field.GetConfig("GF_251"))
	assert.Equal(t, []string{"BABYBEAR", "KOALABEAR", "BLS12_377"}, field.ConfigNames())
}

// Subtraction is total: for any a, b we have (a-b)+b = a, and a-b is always a
// canonical field element.
func Test_SubTotal_01(t *testing.T) {
	properties := gopter.NewProperties(nil)
	//
	properties.Property("(a-b)+b = a", prop.ForAll(
		func(a, b uint32) bool {
			x := field.Uint64[babybear.Element](uint64(a))
			y := field.Uint64[babybear.Element](uint64(b))
			//
			return field.Equal(x.Sub(y).Add(y), x) && x.Sub(y).Uint64() < BABYBEAR_MODULUS
		},
		gen.UInt32(), gen.UInt32(),
	))
	//
	properties.Property("a-b matches integer arithmetic mod p", prop.ForAll(
		func(a, b uint32) bool {
			var (
				p        = new(big.Int).SetUint64(BABYBEAR_MODULUS)
				expected = new(big.Int).Sub(big.NewInt(int64(a)), big.NewInt(int64(b)))
			)
			//
			expected.Mod(expected, p)
			actual := field.Uint64[babybear.Element](uint64(a)).Sub(field.Uint64[babybear.Element](uint64(b)))
			//
			return expected.Uint64() == actual.Uint64()
		},
		gen.UInt32(), gen.UInt32(),
	))
	//
	properties.TestingRun(t)
}

func checkPow[F field.Element[F]](t *testing.T) {
	for base := uint64(0); base < 16; base++ {
		var (
			x        = field.Uint64[F](base)
			expected = field.One[F]()
		)
		//
		for n := uint64(0); n < 64; n++ {
			actual := field.Pow(x, n)
			require.True(t, field.Equal(expected, actual), "Pow(%d,%d)=%s (not %s)", base, n, actual, expected)
			expected = expected.Mul(x)
		}
	}
}

func Test_BigInt_01(t *testing.T) {
	// Values near the modulus are canonical (i.e. never negative)
	minusThree := field.Neg(field.Uint64[babybear.Element](3))
	assert.Equal(t, "2013265918", field.ToBigInt(minusThree).String())
	assert.True(t, field.Equal(minusThree, field.BigInt[babybear.Element](*field.ToBigInt(minusThree))))
	// Values wider than 64 bits
	var (
		wide      = new(big.Int).Lsh(big.NewInt(1), 100)
		val       = field.BigInt[bls12_377.Element](*wide)
		minusOne  = field.Neg(field.One[bls12_377.Element]())
		pMinusOne = new(big.Int).Sub(minusOne.Modulus(), big.NewInt(1))
	)
	//
	assert.Equal(t, wide.String(), field.ToBigInt(val).String())
	assert.Equal(t, pMinusOne.String(), field.ToBigInt(minusOne).String())
	assert.Equal(t, uint64(0), field.ToBigInt(field.Zero[koalabear.Element]()).Uint64())
	//
	assert.Panics(t, func() { field.BigInt[babybear.Element](*big.NewInt(-1)) })
}
