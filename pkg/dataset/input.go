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
package dataset

import (
	"fmt"
	"sort"
)

// Input is a raw table-like structure from which a schema can build a table:
// either a set of named columns, or a purely positional grid of rows whose
// column names are imputed from the schema during construction.
type Input struct {
	// columns is empty for positional inputs.
	columns []string
	rows    [][]Value
}

// NewInput constructs a named-column input.  Every row must have exactly one
// value per column.
func NewInput(columns []string, rows ...[]Value) Input {
	return Input{columns: columns, rows: rows}
}

// PositionalInput constructs an input with no usable column names.
func PositionalInput(rows ...[]Value) Input {
	return Input{rows: rows}
}

// FromColumns constructs a named input from a column-to-values mapping.  All
// columns must have equal length.  Column order is alphabetical, which is
// immaterial since construction normalises column order anyway.
func FromColumns(columns map[string][]Value) (Input, error) {
	names := make([]string, 0, len(columns))
	for n := range columns {
		names = append(names, n)
	}
	//
	sort.Strings(names)
	//
	height := -1
	//
	for _, n := range names {
		if height >= 0 && len(columns[n]) != height {
			return Input{}, fmt.Errorf("column %q has %d values, expected %d", n, len(columns[n]), height)
		}
		//
		height = len(columns[n])
	}
	//
	rows := make([][]Value, max(height, 0))
	//
	for i := range rows {
		row := make([]Value, len(names))
		for j, n := range names {
			row[j] = columns[n][i]
		}
		//
		rows[i] = row
	}
	//
	return Input{columns: names, rows: rows}, nil
}

// Named reports whether this input carries usable column names.
func (p Input) Named() bool {
	return len(p.columns) > 0
}

// Columns returns the column names of this input (empty when positional).
func (p Input) Columns() []string {
	return p.columns
}

// Height returns the number of rows.
func (p Input) Height() uint {
	return uint(len(p.rows))
}

// Width returns the number of values per row, which for a named input always
// equals the number of columns.
func (p Input) Width() (uint, error) {
	width := len(p.columns)
	//
	for _, r := range p.rows {
		if width == 0 {
			width = len(r)
		} else if len(r) != width {
			return 0, fmt.Errorf("ragged input: row has %d values, expected %d", len(r), width)
		}
	}
	//
	return uint(width), nil
}

// Row returns the ith row of this input.
func (p Input) Row(i uint) []Value {
	return p.rows[i]
}
