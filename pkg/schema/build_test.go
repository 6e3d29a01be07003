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
	"slices"
	"testing"

	"github.com/relcheck/relcheck/pkg/dataset"
)

func Test_Build_MissingTables(t *testing.T) {
	s := diet(t)
	//
	ds, err := s.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	// Missing tables materialise empty with the declared columns.
	for _, name := range []string{"categories", "foods", "quantities"} {
		tbl, ok := ds.Table(name)
		//
		if !ok {
			t.Fatalf("missing table %s", name)
		}
		//
		if tbl.Height() != 0 {
			t.Errorf("table %s should be empty", name)
		}
		//
		if !slices.Equal(tbl.Columns(), s.Fields(name)) {
			t.Errorf("table %s has columns %v, expected %v", name, tbl.Columns(), s.Fields(name))
		}
	}
}

func Test_Build_ColumnOrder(t *testing.T) {
	s := diet(t)
	// Columns supplied out of order, with an extra column.
	input := dataset.NewInput(
		[]string{"cost", "extra", "name"},
		[]dataset.Value{dataset.Number(2), dataset.String("x"), dataset.String("pizza")},
	)
	//
	ds, err := s.Build(map[string]dataset.Input{"foods": input})
	if err != nil {
		t.Fatal(err)
	}
	//
	foods, _ := ds.Table("foods")
	// Normalised to [primary key..., data..., extras...].
	expected := []string{"name", "cost", "extra"}
	//
	if !slices.Equal(foods.Columns(), expected) {
		t.Errorf("got columns %v, expected %v", foods.Columns(), expected)
	}
	//
	if v := foods.Cell("name", 0); !v.Equals(dataset.String("pizza")) {
		t.Errorf("unexpected cell value %s", v)
	}
}

func Test_Build_PositionalImputation(t *testing.T) {
	s := diet(t)
	// Positional rows: columns imputed as [name, cost], extras keep ordinals.
	input := dataset.PositionalInput(
		[]dataset.Value{dataset.String("pizza"), dataset.Number(2), dataset.Bool(true)},
		[]dataset.Value{dataset.String("salad"), dataset.Number(3), dataset.Bool(false)},
	)
	//
	ds, err := s.Build(map[string]dataset.Input{"foods": input})
	if err != nil {
		t.Fatal(err)
	}
	//
	foods, _ := ds.Table("foods")
	//
	if !slices.Equal(foods.Columns(), []string{"name", "cost", "2"}) {
		t.Errorf("unexpected columns %v", foods.Columns())
	}
	//
	if v := foods.Cell("cost", 1); !v.Equals(dataset.Number(3)) {
		t.Errorf("unexpected cell value %s", v)
	}
}

func Test_Build_PositionalTooNarrow(t *testing.T) {
	s := diet(t)
	// Fewer positional columns than declared fields cannot be imputed.
	input := dataset.PositionalInput([]dataset.Value{dataset.String("pizza")})
	//
	if _, err := s.Build(map[string]dataset.Input{"foods": input}); err == nil {
		t.Errorf("expected imputation failure")
	}
}

func Test_Build_DefaultFilling(t *testing.T) {
	s := diet(t)
	//
	if err := s.SetDefaultValue("foods", "cost", dataset.Number(1.5)); err != nil {
		t.Fatal(err)
	}
	// The cost column is absent and must be filled from the default.
	input := dataset.NewInput([]string{"name"},
		[]dataset.Value{dataset.String("pizza")},
		[]dataset.Value{dataset.String("salad")})
	//
	ds, err := s.Build(map[string]dataset.Input{"foods": input})
	if err != nil {
		t.Fatal(err)
	}
	//
	foods, _ := ds.Table("foods")
	//
	for i := uint(0); i < 2; i++ {
		if v := foods.Cell("cost", i); !v.Equals(dataset.Number(1.5)) {
			t.Errorf("row %d: expected default 1.5, got %s", i, v)
		}
	}
}

func Test_Build_MissingPrimaryKeyColumn(t *testing.T) {
	s := diet(t)
	// Primary key fields have no implicit default, so an absent key column is
	// a structural error.
	input := dataset.NewInput([]string{"cost"}, []dataset.Value{dataset.Number(2)})
	//
	if _, err := s.Build(map[string]dataset.Input{"foods": input}); err == nil {
		t.Errorf("expected structural error for missing key column")
	}
}

func Test_Build_UnknownTable(t *testing.T) {
	s := diet(t)
	//
	input := dataset.NewInput([]string{"x"}, []dataset.Value{dataset.Number(1)})
	//
	if _, err := s.Build(map[string]dataset.Input{"nosuch": input}); err == nil {
		t.Errorf("expected error for unexpected table name")
	}
}

func Test_Build_RaggedInput(t *testing.T) {
	s := diet(t)
	//
	input := dataset.PositionalInput(
		[]dataset.Value{dataset.String("pizza"), dataset.Number(2)},
		[]dataset.Value{dataset.String("salad")},
	)
	//
	if _, err := s.Build(map[string]dataset.Input{"foods": input}); err == nil {
		t.Errorf("expected error for ragged input")
	}
}

func Test_Build_GenericTable(t *testing.T) {
	s := New()
	//
	if err := s.AddGenericTable("misc"); err != nil {
		t.Fatal(err)
	}
	//
	input := dataset.NewInput([]string{"a", "b"},
		[]dataset.Value{dataset.Number(1), dataset.String("x")})
	//
	ds, err := s.Build(map[string]dataset.Input{"misc": input})
	if err != nil {
		t.Fatal(err)
	}
	//
	misc, _ := ds.Table("misc")
	//
	if !slices.Equal(misc.Columns(), []string{"a", "b"}) {
		t.Errorf("generic table should accept arbitrary columns, got %v", misc.Columns())
	}
}

func Test_Build_IsValid(t *testing.T) {
	s := diet(t)
	//
	ds, err := s.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	//
	var msgs []string
	//
	if !s.IsValid(ds, func(m string) { msgs = append(msgs, m) }) {
		t.Fatalf("freshly built dataset should be valid: %v", msgs)
	}
	// A dataset missing a declared table is not a good object.
	broken := dataset.NewDataset()
	//
	if s.IsValid(broken, func(m string) { msgs = append(msgs, m) }) {
		t.Errorf("empty dataset should not be valid")
	}
	//
	if len(msgs) == 0 {
		t.Errorf("expected a diagnostic message")
	}
}
