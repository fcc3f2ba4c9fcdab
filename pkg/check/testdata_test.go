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
package check

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/trace/json"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the auto-generated trace files are found.
const TestDir = "../../testdata"

func Test_Auto_Fibonacci(t *testing.T) {
	checkAutoTraces(t, chip.NewFibonacci[element]())
}

func Test_Auto_Adder(t *testing.T) {
	checkAutoTraces(t, chip.NewAdder[element]())
}

func Test_Auto_Alu(t *testing.T) {
	checkAutoTraces(t, chip.NewAlu[element]())
}

// Check that every trace in the "accepts" file for a given chip is accepted,
// and every trace in the "rejects" file is rejected.  Both concrete and
// symbolic evaluation are checked.
func checkAutoTraces(t *testing.T, c chip.Chip[element]) {
	constraints := chip.Constraints(c)
	//
	for _, ext := range []string{"accepts", "rejects"} {
		filename := path.Join(TestDir, fmt.Sprintf("%s.auto.%s", c.Name(), ext))
		traces := readTracesFile(t, filename, c.Columns())
		//
		require.NotEmpty(t, traces, filename)
		//
		for i, tr := range traces {
			concrete, err := Check(context.Background(), c, tr, config)
			require.NoError(t, err)
			symbolic, err := CheckSymbolic(context.Background(), c.Name(), c.Width(), constraints, tr, config)
			require.NoError(t, err)
			//
			expected := ext == "accepts"
			//
			if concrete.Accepted() != expected || symbolic.Accepted() != expected {
				t.Errorf("%s (line %d): expected accepted=%t\n%s", filename, i+1, expected, concrete)
			}
		}
	}
}

// Read a file containing zero or more traces expressed in JSON, where each trace
// is on a separate line.
func readTracesFile(t *testing.T, filename string, columns []string) []*trace.Matrix[element] {
	file, err := os.Open(filename)
	require.NoError(t, err)
	//
	defer file.Close()
	//
	var (
		traces  []*trace.Matrix[element]
		scanner = bufio.NewScanner(file)
	)
	// Lines can be long
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	//
	for scanner.Scan() {
		line := scanner.Bytes()
		// Ignore blank lines
		if len(line) == 0 {
			continue
		}
		//
		tr, err := json.FromBytes[element](columns, line)
		require.NoError(t, err, filename)
		//
		traces = append(traces, tr)
	}
	//
	require.NoError(t, scanner.Err())
	//
	return traces
}
