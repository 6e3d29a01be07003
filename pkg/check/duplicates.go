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

// Keep selects which occurrences within a duplicate group are reported as
// duplicates.
type Keep uint8

const (
	// KeepFirst marks all but the first occurrence of each group.
	KeepFirst Keep = iota
	// KeepLast marks all but the last occurrence of each group.
	KeepLast
	// KeepNone marks every member of every duplicate group.
	KeepNone
)

// Duplicates scans a dataset for rows sharing identical values across all
// primary key fields of their table.  Tables without a primary key are
// skipped entirely, since duplication is undefined without identity fields.
// Unlike foreign-key matching, null compares equal to null here.
func Duplicates(s *schema.Schema, ds *dataset.Dataset, keep Keep) ([]Duplicate, error) {
	if err := s.Validate(ds); err != nil {
		return nil, err
	}
	//
	var duplicates []Duplicate
	//
	for _, tableName := range s.Tables() {
		pk := s.PrimaryKey(tableName)
		if len(pk) == 0 {
			continue
		}
		//
		t, _ := ds.Table(tableName)
		rows := duplicateRows(t, pk, keep)
		//
		if !rows.IsEmpty() {
			duplicates = append(duplicates, Duplicate{Table: tableName, Rows: rows})
		}
	}
	//
	return duplicates, nil
}

func duplicateRows(t *dataset.Table, pk []string, keep Keep) bit.Set {
	var (
		rows   bit.Set
		height = t.Height()
		groups = hash.NewMap[hash.BytesKey, []uint](height)
		keys   = make([]hash.BytesKey, height)
	)
	// Group rows by primary key value.
	for i := uint(0); i < height; i++ {
		var buf []byte
		//
		for _, v := range t.RowKey(i, pk) {
			buf = v.AppendKey(buf)
		}
		//
		key := hash.NewBytesKey(buf)
		keys[i] = key
		//
		group, _ := groups.Get(key)
		groups.Insert(key, append(group, i))
	}
	// Mark duplicates per the keep policy.  Group lookup goes through the
	// per-row key so that iteration order stays row order.
	marked := make(map[uint]bool)
	//
	for i := uint(0); i < height; i++ {
		group, _ := groups.Get(keys[i])
		//
		if len(group) < 2 || marked[group[0]] {
			continue
		}
		//
		marked[group[0]] = true
		//
		for j, row := range group {
			switch {
			case keep == KeepFirst && j == 0:
			case keep == KeepLast && j == len(group)-1:
			default:
				rows.Insert(row)
			}
		}
	}
	//
	return rows
}
