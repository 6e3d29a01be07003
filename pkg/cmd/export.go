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
	"path"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/relcheck/relcheck/pkg/dataset/ampl"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [flags] schema_file data_file output_file",
	Short: "Export a dataset into another format.",
	Long: `Export a dataset into the format indicated by the output
	file's extension: .dat (AMPL data), .mod (AMPL declarations),
	.json, .db/.sqlite, or a directory of CSV files (no extension).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 3 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		s := readSchemaFile(args[0])
		ds := buildDataset(s, readDataFile(args[1]))
		//
		switch ext := path.Ext(args[2]); ext {
		case ".dat":
			text, err := ampl.Text(s, ds)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			writeTextFile(args[2], text)
		case ".mod":
			writeTextFile(args[2], ampl.ModText(s))
		default:
			writeDataFile(ds, args[2])
		}
	},
}

func writeTextFile(filename, text string) {
	if err := os.WriteFile(filename, []byte(text), 0o644); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
