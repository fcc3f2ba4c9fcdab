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
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// FromBytes parses a trace expressed in JSON notation.  For example, {"a":
// [0,1], "b": [1,1]} is a trace containing two rows of data for the columns "a"
// and "b".  The given column names determine the order of columns in the
// resulting matrix, and every one of them must be present.
func FromBytes[F field.Element[F]](columns []string, data []byte) (*trace.Matrix[F], error) {
	var rawData map[string][]big.Int
	// Unmarshall
	if err := json.Unmarshal(data, &rawData); err != nil {
		return nil, err
	}
	// Sanity check for unknown columns
	for name := range rawData {
		if indexOf(columns, name) < 0 {
			return nil, fmt.Errorf("unknown column \"%s\"", name)
		}
	}
	//
	var height = -1
	//
	for _, name := range columns {
		rawInts, ok := rawData[name]
		//
		if !ok {
			return nil, fmt.Errorf("missing column \"%s\"", name)
		} else if height >= 0 && len(rawInts) != height {
			return nil, fmt.Errorf("column \"%s\" has height %d (expected %d)", name, len(rawInts), height)
		}
		//
		height = len(rawInts)
	}
	//
	if height <= 0 {
		return nil, fmt.Errorf("trace is empty")
	}
	//
	var (
		modulus = field.Zero[F]().Modulus()
		tr      = trace.NewMatrix[F](uint(len(columns)), uint(height))
	)
	//
	for col, name := range columns {
		for row, val := range rawData[name] {
			// Validate data
			if val.Sign() < 0 || val.Cmp(modulus) >= 0 {
				return nil, fmt.Errorf("column %s out-of-bounds (row %d, value %s)", name, row, val.String())
			}
			//
			tr.Set(uint(col), uint(row), field.BigInt[F](val))
		}
	}
	// Done.
	return tr, nil
}

func indexOf(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	//
	return -1
}
