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
	"slices"

	"github.com/relcheck/relcheck/pkg/util/collection/bit"
)

// Table is an ordered tabular container: a sequence of named columns of equal
// height.  Row order is significant and preserved by every operation except
// Delete, which preserves the relative order of surviving rows.
type Table struct {
	name string
	cols []*column
	// maps column names to their position in cols.
	index map[string]uint
}

type column struct {
	name string
	data []Value
}

// NewTable constructs an empty table with the given (unique) column names.
func NewTable(name string, columns []string) (*Table, error) {
	p := &Table{name: name, index: make(map[string]uint, len(columns))}
	//
	for _, c := range columns {
		if _, ok := p.index[c]; ok {
			return nil, fmt.Errorf("table %s has duplicate column %q", name, c)
		}
		//
		p.index[c] = uint(len(p.cols))
		p.cols = append(p.cols, &column{name: c})
	}
	//
	return p, nil
}

// Name returns the name of this table.
func (p *Table) Name() string {
	return p.name
}

// Height returns the number of rows in this table.
func (p *Table) Height() uint {
	if len(p.cols) == 0 {
		return 0
	}
	//
	return uint(len(p.cols[0].data))
}

// Width returns the number of columns in this table.
func (p *Table) Width() uint {
	return uint(len(p.cols))
}

// Columns returns the column names of this table, in order.
func (p *Table) Columns() []string {
	names := make([]string, len(p.cols))
	for i, c := range p.cols {
		names[i] = c.name
	}
	//
	return names
}

// HasColumn checks whether the table has a given column or not.
func (p *Table) HasColumn(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Cell returns the value at a given (column, row) position.
func (p *Table) Cell(column string, row uint) Value {
	i, ok := p.index[column]
	if !ok {
		panic(fmt.Sprintf("table %s has no column %q", p.name, column))
	}
	//
	return p.cols[i].data[row]
}

// SetCell overwrites the value at a given (column, row) position.
func (p *Table) SetCell(column string, row uint, val Value) {
	i, ok := p.index[column]
	if !ok {
		panic(fmt.Sprintf("table %s has no column %q", p.name, column))
	}
	//
	p.cols[i].data[row] = val
}

// AppendRow appends a row of values, which must match the table width.
func (p *Table) AppendRow(vals ...Value) error {
	if len(vals) != len(p.cols) {
		return fmt.Errorf("table %s expects %d values per row, got %d", p.name, len(p.cols), len(vals))
	}
	//
	for i, v := range vals {
		p.cols[i].data = append(p.cols[i].data, v)
	}
	//
	return nil
}

// AddColumn appends a new column to this table, filled with the given value
// for every existing row.
func (p *Table) AddColumn(name string, fill Value) error {
	if _, ok := p.index[name]; ok {
		return fmt.Errorf("table %s has duplicate column %q", p.name, name)
	}
	//
	data := make([]Value, p.Height())
	for i := range data {
		data[i] = fill
	}
	//
	p.index[name] = uint(len(p.cols))
	p.cols = append(p.cols, &column{name: name, data: data})
	//
	return nil
}

// Row returns a given row as a mapping from column name to value.  Every
// column of the table is included, keyed fields and extras alike.
func (p *Table) Row(row uint) map[string]Value {
	r := make(map[string]Value, len(p.cols))
	for _, c := range p.cols {
		r[c.name] = c.data[row]
	}
	//
	return r
}

// RowKey returns the values of a given row at the given columns, in the order
// given.
func (p *Table) RowKey(row uint, columns []string) []Value {
	vals := make([]Value, len(columns))
	for i, c := range columns {
		vals[i] = p.Cell(c, row)
	}
	//
	return vals
}

// Reorder rearranges the columns of this table such that the given columns
// come first (in the order given), with any remaining columns following in
// their existing relative order.  Every named column must exist.
func (p *Table) Reorder(front []string) error {
	var cols []*column
	//
	seen := make(map[string]bool, len(front))
	//
	for _, name := range front {
		i, ok := p.index[name]
		if !ok {
			return fmt.Errorf("table %s has no column %q", p.name, name)
		}
		//
		cols = append(cols, p.cols[i])
		seen[name] = true
	}
	// Retain extras in relative order
	for _, c := range p.cols {
		if !seen[c.name] {
			cols = append(cols, c)
		}
	}
	//
	p.cols = cols
	//
	for i, c := range cols {
		p.index[c.name] = uint(i)
	}
	//
	return nil
}

// Filter returns a new table containing only the rows marked in the given
// mask, preserving row order.
func (p *Table) Filter(rows bit.Set) *Table {
	q := p.emptyLike()
	//
	for _, i := range rows.Ones() {
		if i >= p.Height() {
			break
		}
		//
		for j, c := range p.cols {
			q.cols[j].data = append(q.cols[j].data, c.data[i])
		}
	}
	//
	return q
}

// Delete removes, in place, every row marked in the given mask.  Surviving
// rows retain their relative order.
func (p *Table) Delete(rows bit.Set) {
	height := p.Height()
	//
	for _, c := range p.cols {
		data := c.data[:0]
		//
		for i := uint(0); i < height; i++ {
			if !rows.Contains(i) {
				data = append(data, c.data[i])
			}
		}
		//
		c.data = data
	}
}

// Copy produces a deep copy of this table.
func (p *Table) Copy() *Table {
	q := p.emptyLike()
	//
	for i, c := range p.cols {
		q.cols[i].data = slices.Clone(c.data)
	}
	//
	return q
}

func (p *Table) emptyLike() *Table {
	q, err := NewTable(p.name, p.Columns())
	// Unreachable since column names of a valid table are unique.
	if err != nil {
		panic(err)
	}
	//
	return q
}
