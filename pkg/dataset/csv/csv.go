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

// Package csv reads and writes dataset snapshots as a directory of CSV files,
// one <table>.csv per table, each with a header row.  CSV carries no scalar
// kinds, so cells are recovered heuristically: an empty cell is null and a
// cell which parses as a number is a number, everything else is a string.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/relcheck/relcheck/pkg/dataset"
)

// WriteDir writes one CSV file per table into the given directory, creating
// it if necessary.
func WriteDir(ds *dataset.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	//
	for _, name := range ds.Tables() {
		t, _ := ds.Table(name)
		//
		if err := writeTable(t, filepath.Join(dir, name+".csv")); err != nil {
			return err
		}
		//
		log.Debugf("wrote %d rows of table %s", t.Height(), name)
	}
	//
	return nil
}

// ReadDir parses every *.csv file in the given directory into a dataset
// input, keyed by the file's base name.
func ReadDir(dir string) (map[string]dataset.Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	//
	inputs := make(map[string]dataset.Input)
	//
	for _, entry := range entries {
		name := entry.Name()
		//
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		//
		input, err := readTable(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		//
		inputs[strings.TrimSuffix(name, ".csv")] = input
	}
	//
	return inputs, nil
}

func writeTable(t *dataset.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	//
	defer f.Close()
	//
	var (
		w       = csv.NewWriter(f)
		columns = t.Columns()
		record  = make([]string, len(columns))
	)
	//
	if err := w.Write(columns); err != nil {
		return err
	}
	//
	for i := uint(0); i < t.Height(); i++ {
		for j, c := range columns {
			record[j] = formatCell(t.Cell(c, i))
		}
		//
		if err := w.Write(record); err != nil {
			return err
		}
	}
	//
	w.Flush()
	//
	return w.Error()
}

func readTable(path string) (dataset.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Input{}, err
	}
	//
	defer f.Close()
	//
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return dataset.Input{}, err
	}
	//
	if len(records) == 0 {
		return dataset.Input{}, fmt.Errorf("missing header row")
	}
	//
	rows := make([][]dataset.Value, len(records)-1)
	//
	for i, record := range records[1:] {
		row := make([]dataset.Value, len(record))
		for j, cell := range record {
			row[j] = parseCell(cell)
		}
		//
		rows[i] = row
	}
	//
	return dataset.NewInput(records[0], rows...), nil
}

func formatCell(v dataset.Value) string {
	// Null becomes the empty cell, everything else its display form.
	if v.IsNull() {
		return ""
	}
	//
	return v.String()
}

func parseCell(cell string) dataset.Value {
	if cell == "" {
		return dataset.Null()
	}
	//
	if n, err := strconv.ParseFloat(cell, 64); err == nil {
		return dataset.Number(n)
	}
	//
	return dataset.String(cell)
}
