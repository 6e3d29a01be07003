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
package bit

import (
	"slices"
	"testing"
)

func Test_BitSet_01(t *testing.T) {
	var s Set
	//
	if !s.IsEmpty() || s.Count() != 0 {
		t.Errorf("zero value should be the empty set")
	}
	//
	s.Insert(3)
	s.Insert(64)
	s.Insert(3)
	//
	if s.Count() != 2 || !s.Contains(3) || !s.Contains(64) || s.Contains(0) {
		t.Errorf("unexpected contents %s", s.String())
	}
}

func Test_BitSet_02(t *testing.T) {
	var s Set
	//
	s.InsertAll(1, 100, 7)
	// Ones reports in ascending order across word boundaries.
	if !slices.Equal(s.Ones(), []uint{1, 7, 100}) {
		t.Errorf("unexpected ones %v", s.Ones())
	}
	//
	s.Remove(7)
	//
	if s.Contains(7) || s.Count() != 2 {
		t.Errorf("remove failed, contents %s", s.String())
	}
	// Removing an absent element is a no-op.
	s.Remove(500)
	//
	if s.Count() != 2 {
		t.Errorf("removing absent element changed the set")
	}
}

func Test_BitSet_03(t *testing.T) {
	var s, u Set
	//
	s.InsertAll(1, 2)
	u.InsertAll(2, 130)
	//
	s.Union(u)
	//
	if !slices.Equal(s.Ones(), []uint{1, 2, 130}) {
		t.Errorf("unexpected union %v", s.Ones())
	}
}

func Test_BitSet_04(t *testing.T) {
	var s Set
	//
	s.InsertAll(5, 70)
	//
	c := s.Clone()
	c.Insert(6)
	// Clones never alias.
	if s.Contains(6) {
		t.Errorf("clone aliases the source")
	}
	//
	if s.Equals(c) {
		t.Errorf("sets with distinct contents should not be equal")
	}
	//
	c.Remove(6)
	//
	if !s.Equals(c) {
		t.Errorf("sets with identical contents should be equal")
	}
}

func Test_BitSet_05(t *testing.T) {
	// Equality must ignore trailing zero words.
	var s, u Set
	//
	s.Insert(200)
	s.Remove(200)
	//
	if !s.Equals(u) || !u.Equals(s) {
		t.Errorf("empty sets of different capacity should be equal")
	}
}
