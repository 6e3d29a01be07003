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
	"slices"
	"sort"
	"strings"
)

// FieldPair maps a field of the native (child) table onto a field of the
// foreign (parent) table.
type FieldPair struct {
	// Native is the field on the child side.
	Native string
	// Foreign is the matching field on the parent side.
	Foreign string
}

// ForeignKey is a resolved native-table to foreign-table relationship, as
// reported by Schema.ForeignKeys.  Cardinality is derived from primary-key
// coverage, never declared.
type ForeignKey struct {
	// Native is the child table, whose rows must match some parent row.
	Native string
	// Foreign is the parent table providing the matching entries.
	Foreign string
	// Fields are the field mappings, in canonical (native-field) order.
	Fields []FieldPair
	// Cardinality is "<native>-to-<foreign>" where each side is "one" or
	// "many".
	Cardinality string
	// Simple holds iff the foreign-side mapped fields exactly equal the
	// foreign table's primary key, making the relationship a plain lookup by
	// key rather than a partial-key join.
	Simple bool
}

//nolint:revive
func (p ForeignKey) String() string {
	var pairs []string
	for _, f := range p.Fields {
		pairs = append(pairs, fmt.Sprintf("%s=>%s", f.Native, f.Foreign))
	}
	//
	return fmt.Sprintf("%s->%s[%s]", p.Native, p.Foreign, strings.Join(pairs, ","))
}

// AddForeignKey declares a foreign key from a native (child) table into a
// foreign (parent) table, given one or more field mappings.  Declaring a
// foreign key does not block the entry of child rows without a parent match;
// it makes such rows recognisable (and removable) by the validation scans.
// Registering an identical mapping twice is a no-op.
func (p *Schema) AddForeignKey(nativeTable, foreignTable string, fields []FieldPair) error {
	if p.state == sealed {
		return errSealed
	}
	//
	for _, name := range []string{nativeTable, foreignTable} {
		t, err := p.lookup(name)
		if err != nil {
			return err
		}
		//
		if t.generic {
			return fmt.Errorf("%s is a generic table", name)
		}
	}
	//
	if len(fields) == 0 {
		return fmt.Errorf("foreign key %s->%s needs a non-empty field mapping", nativeTable, foreignTable)
	}
	//
	native := p.tables[nativeTable]
	foreign := p.tables[foreignTable]
	//
	seen := make(map[string]bool, len(fields))
	//
	for _, f := range fields {
		if !p.hasField(native, f.Native) {
			return fmt.Errorf("%q does not refer to a field of %s", f.Native, nativeTable)
		}
		//
		if !p.hasField(foreign, f.Foreign) {
			return fmt.Errorf("%q does not refer to a field of %s", f.Foreign, foreignTable)
		}
		//
		if seen[f.Native] {
			return fmt.Errorf("field %q mapped twice in foreign key %s->%s", f.Native, nativeTable, foreignTable)
		}
		//
		seen[f.Native] = true
	}
	// Canonicalise mapping order so identical mappings deduplicate regardless
	// of the order their pairs were given in.
	canon := make([]FieldPair, len(fields))
	copy(canon, fields)
	sort.Slice(canon, func(i, j int) bool { return canon[i].Native < canon[j].Native })
	//
	fk := &foreignKey{native: nativeTable, foreign: foreignTable, fields: canon}
	key := fk.key()
	//
	if p.fkKeys[key] {
		return nil
	}
	//
	p.fkKeys[key] = true
	p.fks = append(p.fks, fk)
	//
	return nil
}

// ClearForeignKeys removes the foreign keys whose native table is given or,
// when no table is given, all foreign keys.
func (p *Schema) ClearForeignKeys(nativeTable ...string) error {
	if p.state == sealed {
		return errSealed
	}
	//
	for _, n := range nativeTable {
		if _, err := p.lookup(n); err != nil {
			return err
		}
	}
	//
	keep := p.fks[:0]
	//
	for _, fk := range p.fks {
		if len(nativeTable) == 0 || slices.Contains(nativeTable, fk.native) {
			delete(p.fkKeys, fk.key())
		} else {
			keep = append(keep, fk)
		}
	}
	//
	p.fks = keep
	//
	return nil
}

// ForeignKeys returns all declared foreign keys with their derived
// cardinality, in declaration order.
func (p *Schema) ForeignKeys() []ForeignKey {
	fks := make([]ForeignKey, len(p.fks))
	for i, fk := range p.fks {
		fks[i] = p.resolve(fk)
	}
	//
	return fks
}

// ForeignKeysOf returns the declared foreign keys whose native table is the
// one given, in declaration order.
func (p *Schema) ForeignKeysOf(nativeTable string) []ForeignKey {
	var fks []ForeignKey
	//
	for _, fk := range p.fks {
		if fk.native == nativeTable {
			fks = append(fks, p.resolve(fk))
		}
	}
	//
	return fks
}

// resolve derives the cardinality and simplicity of a raw foreign key.  A
// side is "one" iff its mapped fields are a superset of that table's
// (non-empty) primary key.
func (p *Schema) resolve(fk *foreignKey) ForeignKey {
	nativeFields := make([]string, len(fk.fields))
	foreignFields := make([]string, len(fk.fields))
	//
	for i, f := range fk.fields {
		nativeFields[i] = f.Native
		foreignFields[i] = f.Foreign
	}
	//
	cardinality := fmt.Sprintf("%s-to-%s",
		p.halfCardinality(fk.native, nativeFields),
		p.halfCardinality(fk.foreign, foreignFields))
	//
	return ForeignKey{
		Native:      fk.native,
		Foreign:     fk.foreign,
		Fields:      fk.fields,
		Cardinality: cardinality,
		Simple:      sameFieldSet(foreignFields, p.tables[fk.foreign].primaryKey),
	}
}

func (p *Schema) halfCardinality(tableName string, mapped []string) string {
	pk := p.tables[tableName].primaryKey
	//
	if len(pk) == 0 {
		return "many"
	}
	//
	for _, f := range pk {
		if !slices.Contains(mapped, f) {
			return "many"
		}
	}
	//
	return "one"
}

func (p *foreignKey) key() string {
	var b strings.Builder
	//
	b.WriteString(p.native)
	b.WriteString("\x00")
	b.WriteString(p.foreign)
	//
	for _, f := range p.fields {
		b.WriteString("\x00")
		b.WriteString(f.Native)
		b.WriteString("\x01")
		b.WriteString(f.Foreign)
	}
	//
	return b.String()
}

func sameFieldSet(xs, ys []string) bool {
	if len(ys) == 0 {
		return false
	}
	//
	for _, y := range ys {
		if !slices.Contains(xs, y) {
			return false
		}
	}
	//
	for _, x := range xs {
		if !slices.Contains(ys, x) {
			return false
		}
	}
	//
	return true
}
