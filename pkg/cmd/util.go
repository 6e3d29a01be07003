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

	"github.com/spf13/cobra"

	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/dataset/csv"
	"github.com/relcheck/relcheck/pkg/dataset/json"
	"github.com/relcheck/relcheck/pkg/dataset/sqlite"
	"github.com/relcheck/relcheck/pkg/schema"
	"github.com/relcheck/relcheck/pkg/schema/yamlschema"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string flag, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a YAML schema file.
func readSchemaFile(filename string) *schema.Schema {
	bytes, err := os.ReadFile(filename)
	//
	if err == nil {
		var s *schema.Schema
		//
		if s, err = yamlschema.Unmarshal(bytes); err == nil {
			return s
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Parse a data file (or directory of CSV files) into dataset inputs, using a
// parser based on the extension of the filename.
func readDataFile(filename string) map[string]dataset.Input {
	var (
		inputs map[string]dataset.Input
		err    error
	)
	//
	if info, serr := os.Stat(filename); serr == nil && info.IsDir() {
		inputs, err = csv.ReadDir(filename)
	} else {
		switch ext := path.Ext(filename); ext {
		case ".json":
			var bytes []byte
			//
			if bytes, err = os.ReadFile(filename); err == nil {
				inputs, err = json.FromBytes(bytes)
			}
		case ".db", ".sqlite":
			inputs, err = sqlite.Read(filename)
		default:
			err = fmt.Errorf("unknown data file format: %s", ext)
		}
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return inputs
}

// Write a dataset back out, using a writer based on the extension of the
// filename (or CSV when the target is a directory path without extension).
func writeDataFile(ds *dataset.Dataset, filename string) {
	var err error
	//
	switch ext := path.Ext(filename); ext {
	case ".json":
		var bytes []byte
		//
		if bytes, err = json.ToBytes(ds); err == nil {
			err = os.WriteFile(filename, bytes, 0o644)
		}
	case ".db", ".sqlite":
		err = sqlite.Write(ds, filename)
	case "":
		err = csv.WriteDir(ds, filename)
	default:
		err = fmt.Errorf("unknown data file format: %s", ext)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// Build a dataset from inputs, reporting construction problems (unknown
// tables, ragged rows, missing key columns) as fatal.
func buildDataset(s *schema.Schema, inputs map[string]dataset.Input) *dataset.Dataset {
	ds, err := s.Build(inputs)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return ds
}
