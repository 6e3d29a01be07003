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
package dataset

import (
	"math"
	"slices"
	"testing"

	"github.com/relcheck/relcheck/pkg/util/collection/bit"
)

func Test_Table_01(t *testing.T) {
	tbl := letters(t)
	//
	if tbl.Height() != 3 || tbl.Width() != 2 {
		t.Fatalf("unexpected shape %dx%d", tbl.Height(), tbl.Width())
	}
	//
	if v := tbl.Cell("id", 1); !v.Equals(Number(2)) {
		t.Errorf("unexpected cell %s", v)
	}
	//
	tbl.SetCell("letter", 1, String("B"))
	//
	if v := tbl.Cell("letter", 1); !v.Equals(String("B")) {
		t.Errorf("unexpected cell %s", v)
	}
}

func Test_Table_02(t *testing.T) {
	// Duplicate columns rejected at construction and via AddColumn.
	if _, err := NewTable("t", []string{"a", "a"}); err == nil {
		t.Errorf("duplicate columns should be rejected")
	}
	//
	tbl := letters(t)
	//
	if err := tbl.AddColumn("id", Null()); err == nil {
		t.Errorf("duplicate column should be rejected")
	}
}

func Test_Table_03(t *testing.T) {
	tbl := letters(t)
	// New columns are back-filled for every existing row.
	if err := tbl.AddColumn("score", Number(0)); err != nil {
		t.Fatal(err)
	}
	//
	for i := uint(0); i < tbl.Height(); i++ {
		if v := tbl.Cell("score", i); !v.Equals(Number(0)) {
			t.Errorf("row %d: expected back-filled 0, got %s", i, v)
		}
	}
}

func Test_Table_04(t *testing.T) {
	tbl := letters(t)
	//
	if err := tbl.AppendRow(Number(4)); err == nil {
		t.Errorf("width mismatch should be rejected")
	}
}

func Test_Table_05(t *testing.T) {
	tbl := letters(t)
	//
	if err := tbl.AddColumn("score", Number(0)); err != nil {
		t.Fatal(err)
	}
	// Named columns move to the front, extras keep relative order.
	if err := tbl.Reorder([]string{"letter"}); err != nil {
		t.Fatal(err)
	}
	//
	if !slices.Equal(tbl.Columns(), []string{"letter", "id", "score"}) {
		t.Errorf("unexpected column order %v", tbl.Columns())
	}
	//
	if err := tbl.Reorder([]string{"nosuch"}); err == nil {
		t.Errorf("unknown column should be rejected")
	}
}

func Test_Table_06(t *testing.T) {
	tbl := letters(t)
	//
	var mask bit.Set
	mask.Insert(0)
	mask.Insert(2)
	//
	filtered := tbl.Filter(mask)
	// The source is untouched; the result keeps row order.
	if tbl.Height() != 3 || filtered.Height() != 2 {
		t.Fatalf("unexpected heights %d and %d", tbl.Height(), filtered.Height())
	}
	//
	if v := filtered.Cell("letter", 1); !v.Equals(String("c")) {
		t.Errorf("unexpected cell %s", v)
	}
}

func Test_Table_07(t *testing.T) {
	tbl := letters(t)
	//
	var mask bit.Set
	mask.Insert(1)
	//
	tbl.Delete(mask)
	//
	if tbl.Height() != 2 {
		t.Fatalf("unexpected height %d", tbl.Height())
	}
	// Survivors retain relative order.
	if v := tbl.Cell("letter", 1); !v.Equals(String("c")) {
		t.Errorf("unexpected cell %s", v)
	}
}

func Test_Table_08(t *testing.T) {
	tbl := letters(t)
	cp := tbl.Copy()
	// Deep copy: mutating the copy leaves the source untouched.
	cp.SetCell("letter", 0, String("z"))
	//
	if v := tbl.Cell("letter", 0); !v.Equals(String("a")) {
		t.Errorf("copy should not alias the source, got %s", v)
	}
}

func Test_Table_09(t *testing.T) {
	tbl := letters(t)
	//
	r := tbl.Row(0)
	//
	if len(r) != 2 || !r["id"].Equals(Number(1)) || !r["letter"].Equals(String("a")) {
		t.Errorf("unexpected row %v", r)
	}
	//
	key := tbl.RowKey(2, []string{"letter", "id"})
	//
	if len(key) != 2 || !key[0].Equals(String("c")) || !key[1].Equals(Number(3)) {
		t.Errorf("unexpected key %v", key)
	}
}

func Test_Value_01(t *testing.T) {
	// Null equals null, and nothing else.
	if !Null().Equals(Null()) {
		t.Errorf("null should equal null")
	}
	//
	if Null().Equals(Number(0)) || Null().Equals(String("")) {
		t.Errorf("null should not equal concrete values")
	}
	// Kind matters even when payloads would coincide.
	if Number(1).Equals(Bool(true)) || Number(0).Equals(String("0")) {
		t.Errorf("values of distinct kinds should not be equal")
	}
}

func Test_Value_02(t *testing.T) {
	// NaN is indistinguishable from absence.
	v := Number(math.NaN())
	//
	if !v.IsNull() {
		t.Errorf("NaN should map onto null")
	}
}

func Test_Value_03(t *testing.T) {
	// Key encodings agree exactly with equality.
	vals := []Value{
		Null(), Number(0), Number(1), Bool(false), Bool(true),
		String(""), String("0"), String("a"), String("aa"),
	}
	//
	for _, v := range vals {
		for _, w := range vals {
			same := string(v.AppendKey(nil)) == string(w.AppendKey(nil))
			//
			if same != v.Equals(w) {
				t.Errorf("key encoding of %s vs %s disagrees with equality", v, w)
			}
		}
	}
}

func Test_Input_01(t *testing.T) {
	in, err := FromColumns(map[string][]Value{
		"b": {Number(1), Number(2)},
		"a": {String("x"), String("y")},
	})
	//
	if err != nil {
		t.Fatal(err)
	}
	// Column order is name order.
	if !slices.Equal(in.Columns(), []string{"a", "b"}) {
		t.Errorf("unexpected columns %v", in.Columns())
	}
	//
	if _, err = FromColumns(map[string][]Value{"a": {Number(1)}, "b": {}}); err == nil {
		t.Errorf("unequal column lengths should be rejected")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func letters(t *testing.T) *Table {
	t.Helper()
	//
	tbl, err := NewTable("letters", []string{"id", "letter"})
	if err != nil {
		t.Fatal(err)
	}
	//
	rows := [][]Value{
		{Number(1), String("a")},
		{Number(2), String("b")},
		{Number(3), String("c")},
	}
	//
	for _, r := range rows {
		if err := tbl.AppendRow(r...); err != nil {
			t.Fatal(err)
		}
	}
	//
	return tbl
}
