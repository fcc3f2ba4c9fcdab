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
	"fmt"

	"github.com/yoyoj1023/zkALU/pkg/air"
)

// DotProduct computes Σ values[i]*selectors[i].  When the selectors are
// one-hot, exactly one term survives and this behaves as an array lookup
// values[k] where selectors[k] = 1.  This panics if the given slices are empty
// or have different lengths.
func DotProduct[E air.Term[E]](values []E, selectors []E) E {
	if len(values) != len(selectors) {
		panic(fmt.Sprintf("dot product of %d values with %d selectors", len(values), len(selectors)))
	} else if len(values) == 0 {
		panic("empty dot product")
	}
	//
	sum := values[0].Mul(selectors[0])
	//
	for i := 1; i < len(values); i++ {
		sum = sum.Add(values[i].Mul(selectors[i]))
	}
	//
	return sum
}

// Select chooses between n branches using a one-hot selector vector.  This is
// the n-way generalisation of an if/else, and is algebraically identical to a
// dot product.
func Select[E air.Term[E]](branches []E, selectors []E) E {
	return DotProduct(branches, selectors)
}

// Mux returns ifZero*(1-sel) + ifOne*sel.  That is, ifZero when sel = 0 and
// ifOne when sel = 1.
func Mux[E air.Term[E]](sel E, ifZero E, ifOne E, one E) E {
	return ifZero.Mul(one.Sub(sel)).Add(ifOne.Mul(sel))
}

// Sum computes the sum of one or more terms.
func Sum[E air.Term[E]](terms []E) E {
	if len(terms) == 0 {
		panic("empty sum")
	}
	//
	sum := terms[0]
	//
	for _, t := range terms[1:] {
		sum = sum.Add(t)
	}
	//
	return sum
}

// AssertOneHot asserts that a group of selectors is one-hot.  Every selector
// is asserted boolean (under the handle "<handle>_<i>"), and their sum is
// asserted to equal one (under the handle itself).  Both are required, since
// fractional selectors could otherwise sum to one.
func AssertOneHot[E air.Term[E]](b air.Builder[E], handle string, selectors []E) {
	names := make([]string, len(selectors))
	//
	for i := range selectors {
		names[i] = fmt.Sprintf("%s_%d", handle, i)
	}
	//
	AssertOneHotNamed(b, handle, names, selectors)
}

// AssertOneHotNamed is like AssertOneHot, except that the handle used for the
// booleanity of each selector is given explicitly.
func AssertOneHotNamed[E air.Term[E]](b air.Builder[E], handle string, names []string, selectors []E) {
	if len(names) != len(selectors) {
		panic(fmt.Sprintf("%d names given for %d selectors", len(names), len(selectors)))
	}
	//
	for i, sel := range selectors {
		air.AssertBool(b, names[i], sel)
	}
	//
	air.AssertOne(b, handle, Sum(selectors))
}
