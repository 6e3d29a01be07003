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
package check

import (
	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/schema"
	"github.com/relcheck/relcheck/pkg/util/collection/bit"
)

// TypeFailures scans a dataset for values inconsistent with their field's
// type rule.  Fields without a type rule are never reported.  Findings are
// returned in schema declaration order (tables, then fields).
func TypeFailures(s *schema.Schema, ds *dataset.Dataset) ([]TypeFailure, error) {
	if err := s.Validate(ds); err != nil {
		return nil, err
	}
	//
	var failures []TypeFailure
	//
	for _, tableName := range s.Tables() {
		t, _ := ds.Table(tableName)
		//
		for _, field := range s.TypedFields(tableName) {
			rule, _ := s.DataType(tableName, field)
			//
			var rows bit.Set
			//
			for i := uint(0); i < t.Height(); i++ {
				if !rule.Accepts(t.Cell(field, i)) {
					rows.Insert(i)
				}
			}
			//
			if !rows.IsEmpty() {
				failures = append(failures, TypeFailure{Table: tableName, Field: field, Rows: rows})
			}
		}
	}
	//
	return failures, nil
}

// PredicateFailures scans a dataset for rows rejected by the schema's row
// predicates.  Each predicate sees the full row, extra columns included, and
// must handle null values itself.  Findings are returned in schema
// declaration order, predicates in name order within a table.
func PredicateFailures(s *schema.Schema, ds *dataset.Dataset) ([]PredicateFailure, error) {
	if err := s.Validate(ds); err != nil {
		return nil, err
	}
	//
	var failures []PredicateFailure
	//
	for _, tableName := range s.Tables() {
		t, _ := ds.Table(tableName)
		//
		for _, name := range s.PredicateNames(tableName) {
			predicate, _ := s.Predicate(tableName, name)
			//
			var rows bit.Set
			//
			for i := uint(0); i < t.Height(); i++ {
				if !predicate.Evaluate(t.Row(i)) {
					rows.Insert(i)
				}
			}
			//
			if !rows.IsEmpty() {
				failures = append(failures, PredicateFailure{Table: tableName, Predicate: name, Rows: rows})
			}
		}
	}
	//
	return failures, nil
}
