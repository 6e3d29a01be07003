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
	"testing"

	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/schema"
)

func Test_ForeignKeys_01(t *testing.T) {
	s := shop(t)
	//
	ds := build(t, s, map[string]dataset.Input{
		"customers": dataset.PositionalInput(
			row(num(1), str("alice")),
			row(num(3), str("carol")),
		),
		"orders": dataset.PositionalInput(
			row(num(1), num(1), num(5)),
			row(num(2), num(2), num(5)),
			row(num(3), num(3), num(5)),
		),
	})
	//
	failures, err := ForeignKeyFailures(s, ds)
	if err != nil {
		t.Fatal(err)
	}
	//
	if len(failures) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(failures))
	}
	//
	f := failures[0]
	//
	if f.Key.Native != "orders" || f.Key.Foreign != "customers" {
		t.Errorf("unexpected foreign key %s", f.Key)
	}
	//
	check_Rows(t, f.Rows, 1)
}

func Test_ForeignKeys_02(t *testing.T) {
	s := shop(t)
	// A null value in the mapped native field never matches a parent, even
	// when the parent table also contains a null key.
	ds := build(t, s, map[string]dataset.Input{
		"customers": dataset.PositionalInput(
			row(num(1), str("alice")),
			row(dataset.Null(), str("nobody")),
		),
		"orders": dataset.PositionalInput(
			row(num(1), num(1), num(5)),
			row(num(2), dataset.Null(), num(5)),
		),
	})
	//
	failures, err := ForeignKeyFailures(s, ds)
	if err != nil {
		t.Fatal(err)
	}
	//
	if len(failures) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(failures))
	}
	//
	check_Rows(t, failures[0].Rows, 1)
}

func Test_ForeignKeys_03(t *testing.T) {
	// Compound mapping: both fields must match the same parent row.
	s := schema.New()
	//
	if err := s.AddTable("slots", []string{"day", "hour"}, nil); err != nil {
		t.Fatal(err)
	}
	//
	if err := s.AddTable("bookings", []string{"id"}, []string{"day", "hour"}); err != nil {
		t.Fatal(err)
	}
	//
	fields := []schema.FieldPair{{Native: "day", Foreign: "day"}, {Native: "hour", Foreign: "hour"}}
	if err := s.AddForeignKey("bookings", "slots", fields); err != nil {
		t.Fatal(err)
	}
	//
	ds := build(t, s, map[string]dataset.Input{
		"slots": dataset.PositionalInput(
			row(str("mon"), num(9)),
			row(str("tue"), num(10)),
		),
		"bookings": dataset.PositionalInput(
			row(num(1), str("mon"), num(9)),
			row(num(2), str("mon"), num(10)),
		),
	})
	//
	failures, err := ForeignKeyFailures(s, ds)
	if err != nil {
		t.Fatal(err)
	}
	//
	if len(failures) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(failures))
	}
	//
	check_Rows(t, failures[0].Rows, 1)
}

func Test_ForeignKeys_04(t *testing.T) {
	s := shop(t)
	// An empty native table trivially satisfies every foreign key, even
	// against an empty parent table.
	ds := build(t, s, nil)
	//
	failures, err := ForeignKeyFailures(s, ds)
	if err != nil {
		t.Fatal(err)
	}
	//
	if len(failures) != 0 {
		t.Errorf("expected no findings, got %v", failures)
	}
}

func Test_ForeignKeys_05(t *testing.T) {
	s := shop(t)
	// Non-empty natives against an empty parent all fail.
	ds := build(t, s, map[string]dataset.Input{
		"orders": dataset.PositionalInput(
			row(num(1), num(1), num(5)),
			row(num(2), num(2), num(5)),
		),
	})
	//
	failures, err := ForeignKeyFailures(s, ds)
	if err != nil {
		t.Fatal(err)
	}
	//
	if len(failures) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(failures))
	}
	//
	check_Rows(t, failures[0].Rows, 0, 1)
}
