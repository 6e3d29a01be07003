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
)

// RemoveForeignKeyFailures removes, in place, every native row which fails to
// find a parent match under some foreign key, cascading until no violation
// remains anywhere in the dataset.  Each iteration recomputes the full
// failure map over the current state and removes one foreign key's failing
// rows in a single bulk step; removals can newly orphan rows elsewhere, hence
// the fixpoint loop.  Foreign keys are processed in declaration order, though
// the final state is the same under any order: failure is monotonic under
// row removal, so removals never create failures that were not already
// structurally present.  Termination follows since every iteration removes at
// least one row from a finite dataset.  Returns the number of rows removed.
func RemoveForeignKeyFailures(s *schema.Schema, ds *dataset.Dataset) (uint, error) {
	var removed uint
	//
	for {
		failures, err := ForeignKeyFailures(s, ds)
		//
		if err != nil {
			return removed, err
		}
		//
		if len(failures) == 0 {
			return removed, nil
		}
		// Remove one foreign key's failures per iteration, since foreign keys
		// can intermingle in complicated ways.
		first := failures[0]
		native, _ := ds.Table(first.Key.Native)
		//
		removed += first.Rows.Count()
		native.Delete(first.Rows)
	}
}
