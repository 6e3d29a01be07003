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
package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/schema"
)

func Test_Sqlite_01(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	s, ds := fixture(t)
	//
	if err := Write(ds, path); err != nil {
		t.Fatal(err)
	}
	//
	inputs, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	//
	rt, err := s.Clone().Build(inputs)
	if err != nil {
		t.Fatal(err)
	}
	//
	foods, _ := rt.Table("foods")
	//
	if foods.Height() != 2 {
		t.Fatalf("unexpected height %d", foods.Height())
	}
	//
	if v := foods.Cell("cost", 0); !v.Equals(dataset.Number(2.5)) {
		t.Errorf("unexpected cell %s", v)
	}
	//
	if v := foods.Cell("cost", 1); !v.IsNull() {
		t.Errorf("NULL should read back as null, got %s", v)
	}
	//
	if v := foods.Cell("name", 1); !v.Equals(dataset.String("water")) {
		t.Errorf("unexpected cell %s", v)
	}
}

func Test_Sqlite_02(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	_, ds := fixture(t)
	// Writing twice replaces tables rather than appending.
	if err := Write(ds, path); err != nil {
		t.Fatal(err)
	}
	//
	if err := Write(ds, path); err != nil {
		t.Fatal(err)
	}
	//
	inputs, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	//
	if h := inputs["foods"].Height(); h != 2 {
		t.Errorf("unexpected height %d after rewrite", h)
	}
}

func Test_Sqlite_03(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	// Awkward identifiers survive quoting.
	s := schema.New()
	//
	if err := s.AddTable("odd", []string{"id"}, []string{"Max Nutrition"}); err != nil {
		t.Fatal(err)
	}
	//
	ds, err := s.Build(map[string]dataset.Input{
		"odd": dataset.PositionalInput(
			[]dataset.Value{dataset.Number(1), dataset.Number(10)},
		),
	})
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if err := Write(ds, path); err != nil {
		t.Fatal(err)
	}
	//
	inputs, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	//
	row := inputs["odd"].Row(0)
	//
	if len(row) != 2 || !row[1].Equals(dataset.Number(10)) {
		t.Errorf("unexpected row %v", row)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func fixture(t *testing.T) (*schema.Schema, *dataset.Dataset) {
	t.Helper()
	//
	s := schema.New()
	//
	if err := s.AddTable("foods", []string{"name"}, []string{"cost"}); err != nil {
		t.Fatal(err)
	}
	//
	ds, err := s.Build(map[string]dataset.Input{
		"foods": dataset.PositionalInput(
			[]dataset.Value{dataset.String("pizza"), dataset.Number(2.5)},
			[]dataset.Value{dataset.String("water"), dataset.Null()},
		),
	})
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return s, ds
}
