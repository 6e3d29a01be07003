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
package schema

import (
	"fmt"
	"strconv"

	"github.com/relcheck/relcheck/pkg/dataset"
)

// Build constructs a dataset from raw table-like inputs, validating
// structural conformance.  Tables absent from the inputs are materialised
// empty; declared columns absent from a named input are filled from default
// values; column order is normalised to primary key fields, then data fields,
// then extras.  A successful build seals the schema against further change.
func (p *Schema) Build(inputs map[string]dataset.Input) (*dataset.Dataset, error) {
	for name := range inputs {
		if _, ok := p.tables[name]; !ok {
			return nil, fmt.Errorf("unexpected table name %s", name)
		}
	}
	//
	ds := dataset.NewDataset()
	//
	for _, name := range p.names {
		t, err := p.buildTable(name, inputs[name])
		if err != nil {
			return nil, err
		}
		//
		if err := ds.Add(t); err != nil {
			return nil, err
		}
	}
	// Construction succeeded, so the schema is now frozen.
	p.state = sealed
	//
	return ds, nil
}

func (p *Schema) buildTable(name string, input dataset.Input) (*dataset.Table, error) {
	var (
		fields  = p.Fields(name)
		columns []string
	)
	//
	width, err := input.Width()
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}
	//
	switch {
	case input.Named():
		columns = input.Columns()
	case input.Height() == 0:
		// Absent (or empty positional) input materialises as an empty table
		// with exactly the declared columns.
		columns = fields
	default:
		// Positional input: impute column names from the schema, which
		// requires at least as many columns as declared fields.  Extras keep
		// their ordinal position as a name.
		if width < uint(len(fields)) {
			return nil, fmt.Errorf("table %s: cannot impute column names for %d positional columns, %d fields declared",
				name, width, len(fields))
		}
		//
		columns = append(columns, fields...)
		//
		for i := uint(len(fields)); i < width; i++ {
			columns = append(columns, strconv.FormatUint(uint64(i), 10))
		}
	}
	//
	t, err := dataset.NewTable(name, columns)
	if err != nil {
		return nil, err
	}
	//
	for i := uint(0); i < input.Height(); i++ {
		if err := t.AppendRow(input.Row(i)...); err != nil {
			return nil, err
		}
	}
	// Fill declared columns missing from the input using default values.
	for _, f := range fields {
		if t.HasColumn(f) {
			continue
		}
		//
		dv, ok := p.DefaultValue(name, f)
		if !ok {
			return nil, fmt.Errorf("(table, field) pair (%s, %s) missing from the data", name, f)
		}
		//
		if err := t.AddColumn(f, dv); err != nil {
			return nil, err
		}
	}
	// Normalise column order.
	if err := t.Reorder(fields); err != nil {
		return nil, err
	}
	//
	return t, nil
}

// IsValid determines whether a dataset structurally conforms to this schema:
// every declared table must be present, and every declared (table, field)
// pair must be present as a column.  Diagnostics describing any failure are
// passed to the given message sink (which may be nil).
func (p *Schema) IsValid(ds *dataset.Dataset, sink func(string)) bool {
	if sink == nil {
		sink = func(string) {}
	}
	//
	if ds == nil {
		sink("dataset is nil")
		return false
	}
	//
	for _, name := range p.names {
		t, ok := ds.Table(name)
		if !ok {
			sink(fmt.Sprintf("%s is not a table of the dataset", name))
			return false
		}
		//
		for _, f := range p.Fields(name) {
			if !t.HasColumn(f) {
				sink(fmt.Sprintf("(table, field) pair (%s, %s) missing from the data", name, f))
				return false
			}
		}
	}
	//
	return true
}

// Validate returns an error describing the first structural non-conformance
// of a dataset against this schema, or nil when the dataset is a good object.
func (p *Schema) Validate(ds *dataset.Dataset) error {
	var msg string
	//
	if p.IsValid(ds, func(s string) { msg = s }) {
		return nil
	}
	//
	return fmt.Errorf("dataset is not a good object for this schema: %s", msg)
}
