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

// Package schema defines relational-style schemas over collections of
// in-memory tables: per-table primary key and data fields, per-field type
// rules and default values, cross-table foreign keys with derived
// cardinality, and named row-validity predicates.  A schema is mutable until
// the first dataset is built from it, after which every mutator fails.
package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/relcheck/relcheck/pkg/dataset"
)

// state models the one-way Building -> Sealed lifecycle of a schema.
type state uint8

const (
	building state = iota
	sealed
)

// errSealed is returned by every mutator once the schema has been used to
// build a dataset.  Structural change after that point would silently
// invalidate already-built rows.
var errSealed = fmt.Errorf("schema cannot be changed after it has been used to build a dataset")

// Schema declares a collection of tables along with their fields, type rules,
// default values, foreign keys and row predicates.
type Schema struct {
	state state
	// declaration order of tables.
	names  []string
	tables map[string]*table
	// lower-cased table names, for case-insensitive uniqueness.
	lowered map[string]bool
	// foreign keys in declaration order, deduplicated by canonical key.
	fks    []*foreignKey
	fkKeys map[string]bool
}

type table struct {
	name       string
	generic    bool
	primaryKey []string
	dataFields []string
	types      map[string]TypeRule
	defaults   map[string]dataset.Value
	predicates map[string]Predicate
}

type foreignKey struct {
	native  string
	foreign string
	fields  []FieldPair
}

// New constructs an empty schema in the building state.
func New() *Schema {
	return &Schema{
		state:   building,
		tables:  make(map[string]*table),
		lowered: make(map[string]bool),
		fkKeys:  make(map[string]bool),
	}
}

// Sealed reports whether this schema has been used to build a dataset, and is
// therefore frozen against structural change.
func (p *Schema) Sealed() bool {
	return p.state == sealed
}

// AddTable declares a new table with the given primary key fields and data
// fields.  Either list may be empty, but not both.  A table with no primary
// key cannot appear on the "one" side of any foreign key and is skipped by
// duplicate detection.
func (p *Schema) AddTable(name string, primaryKey, dataFields []string) error {
	t, err := p.newTable(name)
	if err != nil {
		return err
	}
	//
	if len(primaryKey)+len(dataFields) == 0 {
		return fmt.Errorf("no fields specified for table %s", name)
	}
	// Check fields are distinct (case insensitively).
	seen := make(map[string]bool)
	//
	for _, f := range append(append([]string{}, primaryKey...), dataFields...) {
		lf := strings.ToLower(f)
		if seen[lf] {
			return fmt.Errorf("table %s has case insensitive duplicate field %q", name, f)
		}
		//
		seen[lf] = true
	}
	//
	t.primaryKey = append(t.primaryKey, primaryKey...)
	t.dataFields = append(t.dataFields, dataFields...)
	// Data fields default to zero, so that absent data columns can always be
	// filled at construction time.
	for _, f := range dataFields {
		t.defaults[f] = dataset.Number(0)
	}
	//
	p.install(t)
	//
	return nil
}

// AddGenericTable declares a table with no fixed field list, accepting
// arbitrary columns.  Generic tables cannot carry type rules, default values
// or foreign keys.
func (p *Schema) AddGenericTable(name string) error {
	t, err := p.newTable(name)
	if err != nil {
		return err
	}
	//
	t.generic = true
	p.install(t)
	//
	return nil
}

func (p *Schema) newTable(name string) (*table, error) {
	if p.state == sealed {
		return nil, errSealed
	}
	//
	if name == "" || strings.HasPrefix(name, "_") {
		return nil, fmt.Errorf("table name %q must not be empty or start with underscore", name)
	}
	//
	if strings.ContainsAny(name, " \t\r\n") {
		return nil, fmt.Errorf("table name %q must not contain whitespace", name)
	}
	//
	if p.lowered[strings.ToLower(name)] {
		return nil, fmt.Errorf("case insensitive duplicate table name %q", name)
	}
	//
	return &table{
		name:       name,
		types:      make(map[string]TypeRule),
		defaults:   make(map[string]dataset.Value),
		predicates: make(map[string]Predicate),
	}, nil
}

func (p *Schema) install(t *table) {
	p.names = append(p.names, t.name)
	p.tables[t.name] = t
	p.lowered[strings.ToLower(t.name)] = true
}

// ============================================================================
// Introspection
// ============================================================================

// Tables returns all declared table names, in declaration order.
func (p *Schema) Tables() []string {
	return p.names
}

// HasTable checks whether a table of the given name has been declared.
func (p *Schema) HasTable(name string) bool {
	_, ok := p.tables[name]
	return ok
}

// IsGeneric reports whether the given table was declared generic.
func (p *Schema) IsGeneric(name string) bool {
	t, ok := p.tables[name]
	return ok && t.generic
}

// PrimaryKey returns the primary key fields of a table, in declaration order.
func (p *Schema) PrimaryKey(name string) []string {
	if t, ok := p.tables[name]; ok {
		return t.primaryKey
	}
	//
	return nil
}

// DataFields returns the data fields of a table, in declaration order.
func (p *Schema) DataFields(name string) []string {
	if t, ok := p.tables[name]; ok {
		return t.dataFields
	}
	//
	return nil
}

// Fields returns all declared fields of a table: primary key fields first,
// then data fields.  Generic tables have no declared fields.
func (p *Schema) Fields(name string) []string {
	t, ok := p.tables[name]
	if !ok {
		return nil
	}
	//
	fields := make([]string, 0, len(t.primaryKey)+len(t.dataFields))
	fields = append(fields, t.primaryKey...)
	fields = append(fields, t.dataFields...)
	//
	return fields
}

func (p *Schema) hasField(tbl *table, field string) bool {
	for _, f := range tbl.primaryKey {
		if f == field {
			return true
		}
	}
	//
	for _, f := range tbl.dataFields {
		if f == field {
			return true
		}
	}
	//
	return false
}

// lookup returns the named table, or an error suitable for a mutator.
func (p *Schema) lookup(name string) (*table, error) {
	t, ok := p.tables[name]
	if !ok {
		return nil, fmt.Errorf("unrecognised table name %s", name)
	}
	//
	return t, nil
}

// ============================================================================
// Type rules
// ============================================================================

// SetDataType attaches a type rule to a field.  By default, fields have no
// type rule; attaching one does not block invalid data from entering, it
// makes such data recognisable to the validation scans.
func (p *Schema) SetDataType(tableName, field string, rule TypeRule) error {
	if p.state == sealed {
		return errSealed
	}
	//
	t, err := p.lookup(tableName)
	if err != nil {
		return err
	}
	//
	if t.generic {
		return fmt.Errorf("cannot set data type for generic table %s", tableName)
	}
	//
	if !p.hasField(t, field) {
		return fmt.Errorf("%q does not refer to a field of %s", field, tableName)
	}
	//
	normalised, err := rule.normalise()
	if err != nil {
		return err
	}
	//
	t.types[field] = normalised
	//
	return nil
}

// ClearDataType removes any type rule attached to a field.  Clearing a field
// which carries no rule is a no-op, even on a sealed schema.
func (p *Schema) ClearDataType(tableName, field string) error {
	t, ok := p.tables[tableName]
	if !ok || !p.hasField(t, field) {
		return fmt.Errorf("%q does not refer to a field of %s", field, tableName)
	}
	//
	if _, ok := t.types[field]; !ok {
		return nil
	}
	//
	if p.state == sealed {
		return errSealed
	}
	//
	delete(t.types, field)
	//
	return nil
}

// DataType returns the type rule attached to a field (if any).
func (p *Schema) DataType(tableName, field string) (TypeRule, bool) {
	if t, ok := p.tables[tableName]; ok {
		r, ok := t.types[field]
		return r, ok
	}
	//
	return TypeRule{}, false
}

// TypedFields returns, in declaration order, the fields of a table which
// carry a type rule.
func (p *Schema) TypedFields(tableName string) []string {
	t, ok := p.tables[tableName]
	if !ok {
		return nil
	}
	//
	var fields []string
	//
	for _, f := range p.Fields(tableName) {
		if _, ok := t.types[f]; ok {
			fields = append(fields, f)
		}
	}
	//
	return fields
}

// ============================================================================
// Default values
// ============================================================================

// SetDefaultValue sets the default value for a field, used to fill the
// corresponding column when absent from a raw input at construction time.
func (p *Schema) SetDefaultValue(tableName, field string, value dataset.Value) error {
	if p.state == sealed {
		return errSealed
	}
	//
	t, err := p.lookup(tableName)
	if err != nil {
		return err
	}
	//
	if t.generic {
		return fmt.Errorf("cannot set default value for generic table %s", tableName)
	}
	//
	if !p.hasField(t, field) {
		return fmt.Errorf("%q does not refer to a field of %s", field, tableName)
	}
	//
	t.defaults[field] = value
	//
	return nil
}

// SetDefaultValues sets default values for several fields of a table at once.
func (p *Schema) SetDefaultValues(tableName string, values map[string]dataset.Value) error {
	// Deterministic application order, so the first error is stable.
	fields := make([]string, 0, len(values))
	for f := range values {
		fields = append(fields, f)
	}
	//
	sort.Strings(fields)
	//
	for _, f := range fields {
		if err := p.SetDefaultValue(tableName, f, values[f]); err != nil {
			return err
		}
	}
	//
	return nil
}

// DefaultValue returns the default value of a field (if one exists).
func (p *Schema) DefaultValue(tableName, field string) (dataset.Value, bool) {
	if t, ok := p.tables[tableName]; ok {
		v, ok := t.defaults[field]
		return v, ok
	}
	//
	return dataset.Null(), false
}

// ============================================================================
// Predicates
// ============================================================================

// AddPredicate registers a named row predicate against a table.  Passing a
// nil predicate removes any existing predicate of that name.  Passing an
// empty name assigns the smallest non-colliding integer as the name.
func (p *Schema) AddPredicate(tableName, name string, predicate Predicate) error {
	if p.state == sealed {
		return errSealed
	}
	//
	t, err := p.lookup(tableName)
	if err != nil {
		return err
	}
	//
	if predicate == nil {
		delete(t.predicates, name)
		return nil
	}
	//
	if name == "" {
		for i := 0; ; i++ {
			name = strconv.Itoa(i)
			if _, ok := t.predicates[name]; !ok {
				break
			}
		}
	}
	//
	t.predicates[name] = predicate
	//
	return nil
}

// PredicateNames returns the names of all predicates registered against a
// table, in lexicographic order.
func (p *Schema) PredicateNames(tableName string) []string {
	t, ok := p.tables[tableName]
	if !ok {
		return nil
	}
	//
	names := make([]string, 0, len(t.predicates))
	for n := range t.predicates {
		names = append(names, n)
	}
	//
	sort.Strings(names)
	//
	return names
}

// Predicate returns the named predicate of a table (if any).
func (p *Schema) Predicate(tableName, name string) (Predicate, bool) {
	if t, ok := p.tables[tableName]; ok {
		pr, ok := t.predicates[name]
		return pr, ok
	}
	//
	return nil, false
}

// ============================================================================
// Cloning
// ============================================================================

// Clone produces a deep copy of this schema.  The clone is always in the
// building state, regardless of whether this schema has been sealed.
func (p *Schema) Clone() *Schema {
	q := New()
	//
	for _, n := range p.names {
		t := p.tables[n]
		//
		var err error
		if t.generic {
			err = q.AddGenericTable(n)
		} else {
			err = q.AddTable(n, t.primaryKey, t.dataFields)
		}
		// Unreachable, since this schema already validated everything.
		if err != nil {
			panic(err)
		}
		//
		qt := q.tables[n]
		//
		for f, r := range t.types {
			qt.types[f] = r
		}
		//
		for f, v := range t.defaults {
			qt.defaults[f] = v
		}
		//
		for pn, pr := range t.predicates {
			qt.predicates[pn] = pr
		}
	}
	//
	for _, fk := range p.fks {
		if err := q.AddForeignKey(fk.native, fk.foreign, fk.fields); err != nil {
			panic(err)
		}
	}
	//
	return q
}
