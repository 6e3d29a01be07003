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
	"math"
	"testing"

	"github.com/relcheck/relcheck/pkg/dataset"
)

func Test_TypeRule_01(t *testing.T) {
	// Half-open range [0, 10).
	rule := TypeRule{NumberAllowed: true, InclusiveMin: true, InclusiveMax: false, Min: 0, Max: 10}
	//
	check_Accepts(t, rule, dataset.Number(0))
	check_Accepts(t, rule, dataset.Number(9.999))
	check_Rejects(t, rule, dataset.Number(10))
	check_Rejects(t, rule, dataset.Number(-0.001))
}

func Test_TypeRule_02(t *testing.T) {
	// Numbers disallowed entirely.
	rule := StringRule("red", "green")
	//
	check_Accepts(t, rule, dataset.String("red"))
	check_Accepts(t, rule, dataset.String("green"))
	check_Rejects(t, rule, dataset.String("blue"))
	check_Rejects(t, rule, dataset.Number(1))
	check_Rejects(t, rule, dataset.Number(0))
	check_Rejects(t, rule, dataset.Null())
}

func Test_TypeRule_03(t *testing.T) {
	// Nullability is orthogonal to everything else.
	rule := StringRule("red")
	rule.Nullable = true
	//
	check_Accepts(t, rule, dataset.Null())
	check_Accepts(t, rule, dataset.String("red"))
	check_Rejects(t, rule, dataset.Number(1))
}

func Test_TypeRule_04(t *testing.T) {
	// Integrality.
	rule := NumberRule(0, 100)
	rule.MustBeInt = true
	//
	check_Accepts(t, rule, dataset.Number(0))
	check_Accepts(t, rule, dataset.Number(100))
	check_Accepts(t, rule, dataset.Number(42))
	check_Rejects(t, rule, dataset.Number(41.5))
}

func Test_TypeRule_05(t *testing.T) {
	// Wildcard string acceptance.
	rule := StringRule(AnyString)
	//
	check_Accepts(t, rule, dataset.String("anything at all"))
	check_Accepts(t, rule, dataset.String(""))
	check_Rejects(t, rule, dataset.Number(1))
}

func Test_TypeRule_06(t *testing.T) {
	// Booleans are not an acceptable scalar kind under any rule.
	rule := DefaultTypeRule()
	rule.StringsAllowed = []string{AnyString}
	rule.Nullable = true
	//
	check_Rejects(t, rule, dataset.Bool(true))
	check_Rejects(t, rule, dataset.Bool(false))
}

func Test_TypeRule_07(t *testing.T) {
	// The default rule covers [0, +inf).
	rule := DefaultTypeRule()
	//
	check_Accepts(t, rule, dataset.Number(0))
	check_Accepts(t, rule, dataset.Number(1e300))
	check_Rejects(t, rule, dataset.Number(math.Inf(1)))
	check_Rejects(t, rule, dataset.Number(-1))
	check_Rejects(t, rule, dataset.String("zero"))
}

func Test_TypeRule_08(t *testing.T) {
	// Exclusive boundaries on both sides.
	rule := TypeRule{NumberAllowed: true, Min: 1, Max: 2}
	//
	check_Rejects(t, rule, dataset.Number(1))
	check_Accepts(t, rule, dataset.Number(1.5))
	check_Rejects(t, rule, dataset.Number(2))
}

func Test_TypeRule_09(t *testing.T) {
	// Invalid rule parameters are rejected by the schema builder.
	s := New()
	//
	if err := s.AddTable("items", []string{"id"}, []string{"qty"}); err != nil {
		t.Fatal(err)
	}
	//
	bad := NumberRule(10, 0)
	//
	if err := s.SetDataType("items", "qty", bad); err == nil {
		t.Errorf("expected error for max < min")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Accepts(t *testing.T, rule TypeRule, v dataset.Value) {
	t.Helper()
	//
	if !rule.Accepts(v) {
		t.Errorf("rule %+v should accept %s", rule, v)
	}
}

func check_Rejects(t *testing.T, rule TypeRule, v dataset.Value) {
	t.Helper()
	//
	if rule.Accepts(v) {
		t.Errorf("rule %+v should reject %s", rule, v)
	}
}
