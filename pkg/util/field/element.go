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
package field

import (
	"fmt"
	"math/big"
)

// An Element of a prime-order field.  Elements have value semantics: every
// operation returns a fresh element and leaves its operands untouched.  This
// means an element can be used directly as the "expression" type when
// evaluating constraints over concrete rows.
type Element[Operand any] interface {
	fmt.Stringer
	// Add x+y
	Add(y Operand) Operand
	// Bytes returns the canonical value of x as big-endian bytes, possibly
	// with leading zeros.
	Bytes() []byte
	// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
	Cmp(y Operand) int
	// Check whether this value is zero (or not).
	IsZero() bool
	// Check whether this value is one (or not).
	IsOne() bool
	// Return the modulus for the field in question.
	Modulus() *big.Int
	// Compute x * y
	Mul(y Operand) Operand
	// Compute x⁻¹, or 0 if x = 0.
	Inverse() Operand
	// SetBytes constructs the element whose canonical value is given by
	// big-endian bytes, reduced mod p.
	SetBytes(bytes []byte) Operand
	// SetUint64 constructs the element val mod p.
	SetUint64(val uint64) Operand
	// Compute x - y.  Subtraction wraps modulo the field characteristic and,
	// hence, is always defined.
	Sub(y Operand) Operand
	// Text returns the numerical value of x in the given base.
	Text(base int) string
	// Uint64 returns the canonical integer representative of x.
	Uint64() uint64
}

// Zero constructs a field element representing 0
func Zero[F Element[F]]() F {
	var element F
	//
	return element
}

// One constructs a field element representing 1
func One[F Element[F]]() F {
	var element F
	//
	return element.SetUint64(1)
}

// BigInt construct a field element from a given (non-negative) big.Int.
func BigInt[F Element[F]](val big.Int) F {
	var element F
	// Handle negative values
	if val.Sign() < 0 {
		panic("negative value encountered")
	}
	//
	return element.SetBytes(val.Bytes())
}

// ToBigInt returns the canonical integer representative of a field element,
// which lies in [0, p).
func ToBigInt[F Element[F]](val F) *big.Int {
	return new(big.Int).SetBytes(val.Bytes())
}

// Uint64 construct a field element from a given uint64
func Uint64[F Element[F]](val uint64) F {
	var element F
	//
	return element.SetUint64(val)
}

// Uint64s constructs an array of field elements from a given array of uint64
// values.
func Uint64s[F Element[F]](vals ...uint64) []F {
	elements := make([]F, len(vals))
	//
	for i, v := range vals {
		elements[i] = Uint64[F](v)
	}
	//
	return elements
}

// Neg computes the additive inverse of a given element.
func Neg[F Element[F]](val F) F {
	return Zero[F]().Sub(val)
}

// Pow takes a given value to the power n.
func Pow[F Element[F]](val F, n uint64) F {
	if n == 0 {
		val = val.SetUint64(1)
	} else if n > 1 {
		m := n / 2
		// Check for odd case
		if n%2 == 1 {
			tmp := val
			val = Pow(val, m)
			val = val.Mul(val).Mul(tmp)
		} else {
			// Even case is easy
			val = Pow(val, m)
			val = val.Mul(val)
		}
	}
	//
	return val
}

// Equal checks whether two field elements are equal.
func Equal[F Element[F]](lhs, rhs F) bool {
	return lhs.Cmp(rhs) == 0
}
