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

// Package dataset provides the concrete tabular containers over which schemas
// are enforced: scalar values, ordered tables and datasets (one table per
// declared schema table).  This package is purely structural; all knowledge
// of keys, types and relationships lives in the schema package.
package dataset

import (
	"fmt"
	"strings"
)

// Dataset is a concrete data instance: an ordered collection of named tables.
type Dataset struct {
	names  []string
	tables map[string]*Table
}

// NewDataset constructs an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{tables: make(map[string]*Table)}
}

// Add inserts a table into this dataset, failing if a table of the same name
// already exists.
func (p *Dataset) Add(t *Table) error {
	if _, ok := p.tables[t.Name()]; ok {
		return fmt.Errorf("dataset already contains table %s", t.Name())
	}
	//
	p.names = append(p.names, t.Name())
	p.tables[t.Name()] = t
	//
	return nil
}

// Table returns the named table, if present.
func (p *Dataset) Table(name string) (*Table, bool) {
	t, ok := p.tables[name]
	return t, ok
}

// Tables returns the table names of this dataset, in insertion order.
func (p *Dataset) Tables() []string {
	return p.names
}

// Replace swaps the named table for a new one of the same name.
func (p *Dataset) Replace(t *Table) error {
	if _, ok := p.tables[t.Name()]; !ok {
		return fmt.Errorf("dataset has no table %s", t.Name())
	}
	//
	p.tables[t.Name()] = t
	//
	return nil
}

// Copy produces a deep copy of this dataset.
func (p *Dataset) Copy() *Dataset {
	q := NewDataset()
	//
	for _, n := range p.names {
		// Add cannot fail here since names are unique already.
		_ = q.Add(p.tables[n].Copy())
	}
	//
	return q
}

//nolint:revive
func (p *Dataset) String() string {
	var r strings.Builder
	//
	r.WriteString("{")
	//
	for i, n := range p.names {
		if i != 0 {
			r.WriteString(", ")
		}
		//
		r.WriteString(fmt.Sprintf("%s: %d", n, p.tables[n].Height()))
	}
	//
	r.WriteString("}")
	//
	return r.String()
}
