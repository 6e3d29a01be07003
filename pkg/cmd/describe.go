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

	"github.com/spf13/cobra"

	"github.com/relcheck/relcheck/pkg/schema"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe [flags] schema_file",
	Short: "Print a schema, including derived foreign-key cardinality.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		describeSchema(readSchemaFile(args[0]))
	},
}

func describeSchema(s *schema.Schema) {
	for _, name := range s.Tables() {
		if s.IsGeneric(name) {
			fmt.Printf("table %s (generic)\n", name)
			continue
		}
		//
		fmt.Printf("table %s [%s]", name, strings.Join(s.PrimaryKey(name), ", "))
		//
		if fields := s.DataFields(name); len(fields) > 0 {
			fmt.Printf(" (%s)", strings.Join(fields, ", "))
		}
		//
		fmt.Println()
		//
		for _, field := range s.TypedFields(name) {
			rule, _ := s.DataType(name, field)
			fmt.Printf("  type %s: %s\n", field, describeRule(rule))
		}
		//
		for _, pname := range s.PredicateNames(name) {
			fmt.Printf("  predicate %s\n", pname)
		}
	}
	//
	for _, fk := range s.ForeignKeys() {
		kind := "complex"
		if fk.Simple {
			kind = "simple"
		}
		//
		fmt.Printf("foreign key %s (%s, %s)\n", fk, fk.Cardinality, kind)
	}
}

func describeRule(rule schema.TypeRule) string {
	var parts []string
	//
	if rule.NumberAllowed {
		var (
			lbrace, rbrace = "(", ")"
		)
		//
		if rule.InclusiveMin {
			lbrace = "["
		}
		//
		if rule.InclusiveMax {
			rbrace = "]"
		}
		//
		kind := "number"
		if rule.MustBeInt {
			kind = "integer"
		}
		//
		parts = append(parts, fmt.Sprintf("%s in %s%g, %g%s", kind, lbrace, rule.Min, rule.Max, rbrace))
	}
	//
	if rule.AllowsAnyString() {
		parts = append(parts, "any string")
	} else if len(rule.StringsAllowed) > 0 {
		parts = append(parts, fmt.Sprintf("strings {%s}", strings.Join(rule.StringsAllowed, ", ")))
	}
	//
	if rule.Nullable {
		parts = append(parts, "nullable")
	}
	//
	if len(parts) == 0 {
		return "nothing allowed"
	}
	//
	return strings.Join(parts, " or ")
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
