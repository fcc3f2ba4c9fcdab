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
package math

import "math/bits"

// IsPowerOfTwo checks whether a given value is a (strictly positive) power of
// two.
func IsPowerOfTwo(n uint) bool {
	return n != 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two which is greater than or
// equal to n.  Observe that 0 maps to 1.
func NextPowerOfTwo(n uint) uint {
	if n <= 1 {
		return 1
	} else if IsPowerOfTwo(n) {
		return n
	}
	//
	return uint(1) << bits.Len(n-1)
}

// Log2 returns the base-2 logarithm of a power of two.  This panics if n is not
// a power of two.
func Log2(n uint) uint {
	if !IsPowerOfTwo(n) {
		panic("not a power of two")
	}
	//
	return uint(bits.TrailingZeros(n))
}
