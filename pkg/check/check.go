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
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/yoyoj1023/zkALU/pkg/air"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/math"
	"golang.org/x/sync/errgroup"
)

// ErrShape is returned when a trace does not have the shape required for
// checking, namely the expected width and a height which is a power of two.
var ErrShape = errors.New("invalid trace shape")

// Config determines how checking is parallelised.
type Config struct {
	// Workers is the maximum number of batches checked concurrently.
	Workers uint
	// BatchSize is the number of rows in each batch.
	BatchSize uint
}

// DefaultConfig returns a configuration using one worker per CPU.
func DefaultConfig() Config {
	return Config{uint(runtime.NumCPU()), 256}
}

// Check evaluates the constraints of a given chip on every row of a given
// trace, where each row is paired with its successor (and the last row with the
// first).  Row pairs are checked concurrently, in batches.  An error is
// returned only if the trace has the wrong shape, or the context is cancelled.
func Check[F field.Element[F]](ctx context.Context, c chip.Chip[F], tr *trace.Matrix[F], cfg Config) (*Report, error) {
	if err := checkShape(c.Width(), tr); err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	//
	return run(ctx, c.Name(), tr, cfg, func(row uint, failed func(string)) {
		b := air.NewRowBuilder(tr, row)
		c.Eval(b)
		//
		for _, h := range b.Failures() {
			failed(h)
		}
	})
}

// Verify checks a trace against a chip, returning nil if every constraint holds
// and, otherwise, an error identifying the first failure.
func Verify[F field.Element[F]](ctx context.Context, c chip.Chip[F], tr *trace.Matrix[F], cfg Config) error {
	report, err := Check(ctx, c, tr, cfg)
	if err != nil {
		return err
	}
	//
	return report.Err()
}

// CheckSymbolic evaluates a given set of symbolic constraints on every row of
// a trace of the given width.  This should agree exactly with Check for the
// chip from which the constraints were obtained.
func CheckSymbolic[F field.Element[F]](ctx context.Context, name string, width uint, constraints []air.Constraint[F],
	tr *trace.Matrix[F], cfg Config) (*Report, error) {
	if err := checkShape(width, tr); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	//
	return run(ctx, name, tr, cfg, func(row uint, failed func(string)) {
		for _, c := range constraints {
			if !c.HoldsAt(row, tr) {
				failed(c.Handle)
			}
		}
	})
}

func checkShape[F field.Element[F]](width uint, tr *trace.Matrix[F]) error {
	if tr.Width() != width {
		return fmt.Errorf("%w: width %d (expected %d)", ErrShape, tr.Width(), width)
	} else if !math.IsPowerOfTwo(tr.Height()) {
		return fmt.Errorf("%w: height %d not a power of two", ErrShape, tr.Height())
	}
	//
	return nil
}

// Check every row of a trace using a bounded pool of workers, each of which
// checks a contiguous batch of rows.
func run[F field.Element[F]](ctx context.Context, name string, tr *trace.Matrix[F], cfg Config,
	check func(row uint, failed func(string))) (*Report, error) {
	var (
		mux       sync.Mutex
		height    = tr.Height()
		batchSize = max(cfg.BatchSize, 1)
		report    = newReport(name, height)
		g, gctx   = errgroup.WithContext(ctx)
	)
	//
	g.SetLimit(int(max(cfg.Workers, 1)))
	//
	for start := uint(0); start < height; start += batchSize {
		end := min(start+batchSize, height)
		//
		g.Go(func() error {
			// Check for cancellation
			if err := gctx.Err(); err != nil {
				return err
			}
			//
			failures := make(map[string][]uint)
			//
			for row := start; row < end; row++ {
				check(row, func(handle string) {
					failures[handle] = append(failures[handle], row)
				})
			}
			//
			mux.Lock()
			report.merge(failures)
			mux.Unlock()
			//
			return nil
		})
	}
	//
	if err := g.Wait(); err != nil {
		return nil, err
	}
	//
	log.Debugf("%s: checked %d rows in batches of %d", name, height, batchSize)
	// Done
	return report, nil
}
