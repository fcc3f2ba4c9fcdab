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
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yoyoj1023/zkALU/pkg/check"
	"github.com/yoyoj1023/zkALU/pkg/chip"
	"github.com/yoyoj1023/zkALU/pkg/sexp"
	"github.com/yoyoj1023/zkALU/pkg/trace"
	"github.com/yoyoj1023/zkALU/pkg/trace/json"
	"github.com/yoyoj1023/zkALU/pkg/util"
	"github.com/yoyoj1023/zkALU/pkg/util/field"
	"github.com/yoyoj1023/zkALU/pkg/util/termio"
	"github.com/yoyoj1023/zkALU/pkg/vm"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Construct the checker configuration from the persistent flags.
func getCheckConfig(cmd *cobra.Command) check.Config {
	config := check.DefaultConfig()
	//
	if workers := GetUint(cmd, "workers"); workers != 0 {
		config.Workers = workers
	}
	//
	config.BatchSize = GetUint(cmd, "batch")
	//
	return config
}

// Read a program file, or exit if an error arises.  Syntax errors in lisp
// program files are reported against the offending line.
func readProgramFile(filename string) *vm.ProgramFile {
	program, err := vm.ReadProgramFile(filename)
	//
	if err == nil {
		log.Debugf("read %d instructions from %s", len(program.Program), filename)
		return program
	}
	// Handle error
	if serr, ok := vm.IsSyntaxError(err); ok {
		printSyntaxError(os.Stdout, filename, serr)
	} else {
		fmt.Printf("%s: %s\n", filename, err)
	}
	//
	os.Exit(2)
	// unreachable
	return nil
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, filename string, err *sexp.SyntaxError) {
	line, offset := err.EnclosingLine()
	span := err.Span()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(len(line)-offset, span.End()-span.Start()))
	// Print error + line number
	fmt.Fprintf(out, "%s:%d: %s\n", filename, err.Line(), err.Message())
	// Print line
	fmt.Fprintln(out, line)
	// Print indent
	fmt.Fprint(out, strings.Repeat(" ", offset))
	// Print highlight
	fmt.Fprintln(out, strings.Repeat("^", length))
}

// Read a trace file for a given set of columns, or exit if an error arises.
func readTraceFile[F field.Element[F]](filename string, columns []string) *trace.Matrix[F] {
	bytes, err := os.ReadFile(filename)
	//
	if err == nil {
		// Check file extension
		switch ext := path.Ext(filename); ext {
		case ".json":
			tr, err := json.FromBytes[F](columns, bytes)
			if err == nil {
				return tr
			}
			//
			fmt.Printf("%s: %s\n", filename, err)
			os.Exit(2)
		default:
			err = fmt.Errorf("unknown trace file format: %s", ext)
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Write a trace in JSON format, or exit if an error arises.
func writeTraceFile[F field.Element[F]](filename string, columns []string, tr *trace.Matrix[F]) {
	if err := os.WriteFile(filename, []byte(json.ToJsonString(columns, tr)), 0644); err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	log.Debugf("wrote %d rows to %s", tr.Height(), filename)
}

// Print the first n rows of a trace to stdout, using ANSI escapes only when
// stdout is a terminal.
func printTrace[F field.Element[F]](cmd *cobra.Command, columns []string, tr *trace.Matrix[F], n uint) {
	escapes := GetFlag(cmd, "ansi-escapes") && termio.IsTerminal(os.Stdout)
	//
	trace.PrintTrace(tr, columns, n, os.Stdout, escapes)
}

// Check a trace against the constraints of a given chip, and report the
// outcome.  This exits with a non-zero status if the trace is rejected.
func checkTrace[F field.Element[F]](cmd *cobra.Command, c chip.Chip[F], tr *trace.Matrix[F]) {
	var (
		report *check.Report
		err    error
		config = getCheckConfig(cmd)
		stats  = util.NewPerfStats()
	)
	//
	if GetFlag(cmd, "symbolic") {
		report, err = check.CheckSymbolic(context.Background(), c.Name(), c.Width(), chip.Constraints(c), tr, config)
	} else {
		report, err = check.Check(context.Background(), c, tr, config)
	}
	//
	stats.Log("Checking constraints")
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	fmt.Println(report)
	//
	if !report.Accepted() {
		log.Error(report.Err())
		os.Exit(1)
	}
}
