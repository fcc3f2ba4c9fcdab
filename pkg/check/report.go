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
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Failure identifies a constraint which does not hold on a given row.
type Failure struct {
	Handle string
	Row    uint
}

func (p *Failure) Error() string {
	return fmt.Sprintf("constraint \"%s\" does not hold (row %d)", p.Handle, p.Row)
}

// Report records the outcome of checking a trace against a set of constraints.
// For each constraint which failed, the set of rows on which it failed is
// retained.
type Report struct {
	name     string
	height   uint
	failures map[string]*bitset.BitSet
}

func newReport(name string, height uint) *Report {
	return &Report{name, height, make(map[string]*bitset.BitSet)}
}

// Name returns the name of whatever was checked.
func (p *Report) Name() string {
	return p.name
}

// Height returns the number of rows which were checked.
func (p *Report) Height() uint {
	return p.height
}

// Accepted determines whether every constraint held on every row.
func (p *Report) Accepted() bool {
	return len(p.failures) == 0
}

// Handles returns the (sorted) handles of all constraints which failed.
func (p *Report) Handles() []string {
	handles := make([]string, 0, len(p.failures))
	//
	for h := range p.failures {
		handles = append(handles, h)
	}
	//
	slices.Sort(handles)
	//
	return handles
}

// Rows returns the rows on which a given constraint failed, in ascending order.
func (p *Report) Rows(handle string) []uint {
	set, ok := p.failures[handle]
	if !ok {
		return nil
	}
	//
	rows := make([]uint, 0, set.Count())
	//
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		rows = append(rows, i)
	}
	//
	return rows
}

// Failures returns every failure, ordered by row and then by handle.
func (p *Report) Failures() []Failure {
	var failures []Failure
	//
	for h, set := range p.failures {
		for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
			failures = append(failures, Failure{h, i})
		}
	}
	//
	slices.SortFunc(failures, func(l, r Failure) int {
		if c := cmp.Compare(l.Row, r.Row); c != 0 {
			return c
		}
		//
		return strings.Compare(l.Handle, r.Handle)
	})
	//
	return failures
}

// Err returns the first failure (if any), or nil if the trace was accepted.
func (p *Report) Err() error {
	if p.Accepted() {
		return nil
	}
	//
	return &p.Failures()[0]
}

func (p *Report) String() string {
	var builder strings.Builder
	//
	if p.Accepted() {
		return fmt.Sprintf("%s: accepted (%d rows)", p.name, p.height)
	}
	//
	builder.WriteString(fmt.Sprintf("%s: rejected (%d rows)", p.name, p.height))
	//
	for _, h := range p.Handles() {
		builder.WriteString(fmt.Sprintf("\n  %s: rows %v", h, p.Rows(h)))
	}
	//
	return builder.String()
}

// Merge the failures found for a batch of rows into this report.
func (p *Report) merge(failures map[string][]uint) {
	for h, rows := range failures {
		set, ok := p.failures[h]
		//
		if !ok {
			set = bitset.New(p.height)
			p.failures[h] = set
		}
		//
		for _, row := range rows {
			set.Set(row)
		}
	}
}
