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
package chip

import (
	"errors"

	"github.com/yoyoj1023/zkALU/pkg/air"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// ErrNotPowerOfTwo is returned when a trace height is requested which is not a
// power of two.
var ErrNotPowerOfTwo = errors.New("trace height not a power of two")

// Chip pairs a trace builder with the constraints which its traces must
// satisfy.  Chips hold no mutable state and, hence, can be shared across
// concurrent evaluations.
type Chip[F field.Element[F]] interface {
	// Name of this chip
	Name() string
	// Width returns the number of columns in every row of a trace.
	Width() uint
	// Columns returns the name of every column.
	Columns() []string
	// Eval asserts the constraints of this chip against two concrete rows.
	Eval(b air.Builder[F])
	// EvalSymbolic asserts the constraints of this chip symbolically, thus
	// producing the polynomials themselves.
	EvalSymbolic(b air.Builder[air.Expr[F]])
}

// Constraints returns the symbolic constraints of a given chip.
func Constraints[F field.Element[F]](chip Chip[F]) []air.Constraint[F] {
	return air.Symbolic[F](chip.Width(), chip.EvalSymbolic)
}
