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

import "github.com/relcheck/relcheck/pkg/dataset"

// Row is a full table row, mapping every field name (primary key fields, data
// fields and any extra columns) to its value.
type Row = map[string]dataset.Value

// Predicate is an opaque row-validity function.  A row passes iff Evaluate
// returns true.  Unlike type rules, the engine does not special-case null
// values for predicates; a predicate must handle nulls itself.
type Predicate interface {
	Evaluate(row Row) bool
}

// PredicateFunc adapts an ordinary function into a Predicate.
type PredicateFunc func(Row) bool

// Evaluate applies the underlying function.
func (p PredicateFunc) Evaluate(row Row) bool {
	return p(row)
}
