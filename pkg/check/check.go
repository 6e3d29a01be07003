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

// Package check provides the stateless validation engine operating over
// (schema, dataset) pairs: type-failure scans, predicate-failure scans,
// duplicate scans, foreign-key-failure scans and cascading foreign-key
// repair.  Scans are pure reads returning structured findings; the one
// exception is RemoveForeignKeyFailures, which is explicitly destructive.
//
// Findings are reported as row masks over the offending table, in a
// deterministic order (schema declaration order).  Structural errors (a
// dataset which does not conform to the schema at all) are returned as
// errors; data-quality findings never are.
package check

import (
	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/util/collection/bit"
	"github.com/relcheck/relcheck/pkg/util/collection/hash"
)

// TypeFailure identifies the rows of one table whose value in one field is
// inconsistent with the field's type rule.
type TypeFailure struct {
	// Table is the offending table.
	Table string
	// Field is the field whose type rule was violated.
	Field string
	// Rows marks the violating row positions.
	Rows bit.Set
}

// PredicateFailure identifies the rows of one table rejected by one named row
// predicate.
type PredicateFailure struct {
	// Table is the offending table.
	Table string
	// Predicate is the name of the rejecting predicate.
	Predicate string
	// Rows marks the violating row positions.
	Rows bit.Set
}

// Duplicate identifies the rows of one table which duplicate another row's
// primary key.
type Duplicate struct {
	// Table is the offending table.
	Table string
	// Rows marks the duplicated row positions, as selected by the keep
	// policy.
	Rows bit.Set
}

// encodeRowKey encodes the values of a row at the given columns into a key
// suitable for hashing, returning false if any value is null.  Null never
// matches any concrete key, so callers handle null-bearing rows directly.
func encodeRowKey(t *dataset.Table, row uint, columns []string) (hash.BytesKey, bool) {
	var buf []byte
	//
	for _, c := range columns {
		v := t.Cell(c, row)
		if v.IsNull() {
			return hash.BytesKey{}, false
		}
		//
		buf = v.AppendKey(buf)
	}
	//
	return hash.NewBytesKey(buf), true
}
