// Copyright the relcheck authors.
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
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/relcheck/relcheck/pkg/check"
	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/schema"
	"github.com/relcheck/relcheck/pkg/util/collection/bit"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [flags] schema_file data_file",
	Short: "Check a dataset against a schema.",
	Long: `Check a dataset against a schema, reporting duplicate keys,
	type failures, predicate failures and foreign-key failures.
	Data can be given as a JSON file, a SQLite database or a
	directory of CSV files; schemas are YAML.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		keep, err := parseKeep(getString(cmd, "keep"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		s := readSchemaFile(args[0])
		ds := buildDataset(s, readDataFile(args[1]))
		//
		failures := runChecks(s, ds, keep)
		//
		if failures != 0 {
			fmt.Printf("%d check(s) failed\n", failures)
			os.Exit(1)
		}
		//
		fmt.Println("all checks passed")
	},
}

func runChecks(s *schema.Schema, ds *dataset.Dataset, keep check.Keep) uint {
	var (
		count   uint
		printer = newReportPrinter()
	)
	//
	dups, err := check.Duplicates(s, ds, keep)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	for _, d := range dups {
		printer.print("duplicate", d.Table, d.Rows)
		count++
	}
	// Type failures cannot error once duplicates succeeded, since validation
	// already passed.
	typeFailures, _ := check.TypeFailures(s, ds)
	//
	for _, f := range typeFailures {
		printer.print("type", fmt.Sprintf("%s.%s", f.Table, f.Field), f.Rows)
		count++
	}
	//
	predicateFailures, _ := check.PredicateFailures(s, ds)
	//
	for _, f := range predicateFailures {
		printer.print("predicate", fmt.Sprintf("%s:%s", f.Table, f.Predicate), f.Rows)
		count++
	}
	//
	fkFailures, _ := check.ForeignKeyFailures(s, ds)
	//
	for _, f := range fkFailures {
		printer.print("foreign key", f.Key.String(), f.Rows)
		count++
	}
	//
	return count
}

// reportPrinter prints one finding per line, truncating the row listing to
// the terminal width.
type reportPrinter struct {
	width int
}

func newReportPrinter() reportPrinter {
	width, _, err := term.GetSize(0)
	if err != nil || width <= 0 {
		width = 80
	}
	//
	return reportPrinter{width: width}
}

func (p reportPrinter) print(kind, subject string, rows bit.Set) {
	line := fmt.Sprintf("[%s] %s: %d row(s) %s", kind, subject, rows.Count(), rows.String())
	//
	if len(line) > p.width && p.width > 3 {
		line = line[:p.width-3] + "..."
	}
	//
	fmt.Println(line)
}

func parseKeep(name string) (check.Keep, error) {
	switch strings.ToLower(name) {
	case "first":
		return check.KeepFirst, nil
	case "last":
		return check.KeepLast, nil
	case "none":
		return check.KeepNone, nil
	default:
		return check.KeepFirst, fmt.Errorf("unknown keep policy %q (expected first, last or none)", name)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("keep", "first", "duplicate keep policy (first, last or none)")
}
