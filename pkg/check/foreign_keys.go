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
	"github.com/relcheck/relcheck/pkg/util/collection/hash"
)

// ForeignKeyFailure identifies the rows of one native table which fail to
// find a matching parent row under one foreign key.
type ForeignKeyFailure struct {
	// Key is the violated foreign key, with derived cardinality.
	Key schema.ForeignKey
	// Rows marks the orphaned native row positions.
	Rows bit.Set
}

// ForeignKeyFailures scans a dataset for native rows without a parent match,
// one finding per violated foreign key, in declaration order.  The match is a
// hash join over the mapped fields: parent keys are indexed once per foreign
// table (first occurrence wins, which is immaterial for existence), then
// probed by every native row.  A native row whose mapped fields contain a
// null can never match a concrete parent key and always fails.
func ForeignKeyFailures(s *schema.Schema, ds *dataset.Dataset) ([]ForeignKeyFailure, error) {
	if err := s.Validate(ds); err != nil {
		return nil, err
	}
	//
	var failures []ForeignKeyFailure
	//
	for _, fk := range s.ForeignKeys() {
		rows := foreignKeyFailureRows(fk, ds)
		//
		if !rows.IsEmpty() {
			failures = append(failures, ForeignKeyFailure{Key: fk, Rows: rows})
		}
	}
	//
	return failures, nil
}

func foreignKeyFailureRows(fk schema.ForeignKey, ds *dataset.Dataset) bit.Set {
	var (
		rows          bit.Set
		native, _     = ds.Table(fk.Native)
		foreign, _    = ds.Table(fk.Foreign)
		nativeFields  = make([]string, len(fk.Fields))
		foreignFields = make([]string, len(fk.Fields))
	)
	// An empty native table trivially has no failures.
	if native.Height() == 0 {
		return rows
	}
	//
	for i, f := range fk.Fields {
		nativeFields[i] = f.Native
		foreignFields[i] = f.Foreign
	}
	// Index every concrete parent key.
	parents := hash.NewSet[hash.BytesKey](foreign.Height())
	//
	for i := uint(0); i < foreign.Height(); i++ {
		if key, ok := encodeRowKey(foreign, i, foreignFields); ok {
			parents.Insert(key)
		}
	}
	// Probe with every native row.
	for i := uint(0); i < native.Height(); i++ {
		key, ok := encodeRowKey(native, i, nativeFields)
		//
		if !ok || !parents.Contains(key) {
			rows.Insert(i)
		}
	}
	//
	return rows
}
