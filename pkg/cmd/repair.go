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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relcheck/relcheck/pkg/check"
)

// repairCmd represents the repair command
var repairCmd = &cobra.Command{
	Use:   "repair [flags] schema_file data_file",
	Short: "Remove foreign-key failures from a dataset.",
	Long: `Remove every row which fails to find a parent match under
	some foreign key, cascading until no violation remains, and
	write the repaired dataset back out.`,
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
		output := getString(cmd, "output")
		if output == "" {
			output = args[1]
		}
		//
		s := readSchemaFile(args[0])
		ds := buildDataset(s, readDataFile(args[1]))
		//
		removed, err := check.RemoveForeignKeyFailures(s, ds)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		writeDataFile(ds, output)
		fmt.Printf("removed %d row(s)\n", removed)
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
	repairCmd.Flags().StringP("output", "o", "", "write the repaired dataset here instead of in place")
}
