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
	"strings"

	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
)

// ToJsonString converts a trace matrix into a JSON string, where each column is
// written out under the corresponding name.
func ToJsonString[F field.Element[F]](columns []string, tr *trace.Matrix[F]) string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, name := range columns {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString("\"")
		// Write out column name
		builder.WriteString(name)
		//
		builder.WriteString("\": [")

		for j := range tr.Height() {
			if j != 0 {
				builder.WriteString(", ")
			}

			// Canonical values are never negative
			jth := field.ToBigInt(tr.Get(uint(i), j))
			builder.WriteString(jth.String())
		}

		builder.WriteString("]")
	}
	//
	builder.WriteString("}")
	// Done
	return builder.String()
}
