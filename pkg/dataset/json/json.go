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

// Package json reads and writes dataset snapshots in JSON notation.  Each
// table is an object with an explicit column list and row-major data, so that
// column order and null cells survive the round trip.  For example:
//
//	{"foods": {"columns": ["name", "cost"], "rows": [["pizza", 2.5]]}}
package json

import (
	"encoding/json"
	"fmt"

	"github.com/relcheck/relcheck/pkg/dataset"
)

type jsonTable struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ToBytes serialises a dataset.
func ToBytes(ds *dataset.Dataset) ([]byte, error) {
	tables := make(map[string]jsonTable, len(ds.Tables()))
	//
	for _, name := range ds.Tables() {
		t, _ := ds.Table(name)
		columns := t.Columns()
		rows := make([][]any, t.Height())
		//
		for i := uint(0); i < t.Height(); i++ {
			row := make([]any, len(columns))
			for j, c := range columns {
				row[j] = unwrap(t.Cell(c, i))
			}
			//
			rows[i] = row
		}
		//
		tables[name] = jsonTable{Columns: columns, Rows: rows}
	}
	//
	return json.MarshalIndent(tables, "", "  ")
}

// FromBytes parses dataset inputs, one per table, suitable for handing to a
// schema builder.
func FromBytes(data []byte) (map[string]dataset.Input, error) {
	var tables map[string]jsonTable
	//
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, err
	}
	//
	inputs := make(map[string]dataset.Input, len(tables))
	//
	for name, t := range tables {
		rows := make([][]dataset.Value, len(t.Rows))
		//
		for i, raw := range t.Rows {
			if len(raw) != len(t.Columns) {
				return nil, fmt.Errorf("table %s: row %d has %d cells, expected %d", name, i, len(raw), len(t.Columns))
			}
			//
			row := make([]dataset.Value, len(raw))
			//
			for j, cell := range raw {
				v, err := wrap(cell)
				if err != nil {
					return nil, fmt.Errorf("table %s: row %d, column %s: %w", name, i, t.Columns[j], err)
				}
				//
				row[j] = v
			}
			//
			rows[i] = row
		}
		//
		inputs[name] = dataset.NewInput(t.Columns, rows...)
	}
	//
	return inputs, nil
}

func unwrap(v dataset.Value) any {
	switch v.Kind() {
	case dataset.KindNumber:
		n, _ := v.AsNumber()
		return n
	case dataset.KindString:
		s, _ := v.AsString()
		return s
	case dataset.KindBool:
		b, _ := v.AsBool()
		return b
	default:
		return nil
	}
}

func wrap(raw any) (dataset.Value, error) {
	switch x := raw.(type) {
	case nil:
		return dataset.Null(), nil
	case float64:
		return dataset.Number(x), nil
	case string:
		return dataset.String(x), nil
	case bool:
		return dataset.Bool(x), nil
	default:
		return dataset.Null(), fmt.Errorf("unsupported scalar %T", raw)
	}
}
