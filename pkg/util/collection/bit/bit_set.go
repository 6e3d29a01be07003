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
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// Set provides a straightforward bitset implementation.  That is, a set of
// (unsigned) integer values implemented as an array of bits.  Sets are used
// throughout as row masks, where the nth bit indicates whether the nth row of
// some table is a member.
type Set struct {
	words []uint64
}

// Clone creates a true copy of this bitset which ensures no aliasing between
// this set and the result.
func (p *Set) Clone() Set {
	return Set{slices.Clone(p.words)}
}

// Insert a given value into this set.
func (p *Set) Insert(val uint) {
	word := val / 64
	bit := val % 64
	//
	for uint(len(p.words)) <= word {
		p.words = append(p.words, 0)
	}
	// Set bit
	mask := uint64(1) << bit
	p.words[word] = p.words[word] | mask
}

// InsertAll inserts zero or more elements into this bitset.
func (p *Set) InsertAll(vals ...uint) {
	for _, v := range vals {
		p.Insert(v)
	}
}

// Remove a given value from this set.
func (p *Set) Remove(val uint) {
	word := val / 64
	bit := val % 64
	// Check whether we need to do anything.
	if uint(len(p.words)) > word {
		// unset bit
		mask := uint64(1) << bit
		p.words[word] = p.words[word] & ^mask
	}
}

// Union inserts all elements from a given bitset into this bitset, returning
// true if there is some change.
func (p *Set) Union(bits Set) bool {
	changed := false
	//
	for len(p.words) < len(bits.words) {
		p.words = append(p.words, 0)
	}
	// Insert all
	for w := range bits.words {
		tmp := p.words[w] | bits.words[w]
		changed = changed || tmp != p.words[w]
		p.words[w] = tmp
	}
	//
	return changed
}

// Contains checks whether a given value is contained, or not.
func (p *Set) Contains(val uint) bool {
	word := val / 64
	bit := val % 64
	//
	if uint(len(p.words)) <= word {
		return false
	}
	// Set mask
	mask := uint64(1) << bit
	//
	return (p.words[word] & mask) != 0
}

// Count returns the number of bits in the bitset which are set to one.
func (p *Set) Count() uint {
	count := uint(0)
	//
	for _, word := range p.words {
		count += uint(bits.OnesCount64(word))
	}
	//
	return count
}

// IsEmpty determines whether this bitset contains any values at all.
func (p *Set) IsEmpty() bool {
	for _, word := range p.words {
		if word != 0 {
			return false
		}
	}
	//
	return true
}

// Ones returns, in ascending order, every value contained in this bitset.
func (p *Set) Ones() []uint {
	vals := make([]uint, 0, p.Count())
	//
	for w, word := range p.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			vals = append(vals, uint(w*64+b))
			word &= word - 1
		}
	}
	//
	return vals
}

// Equals determines whether two bitsets contain exactly the same values.
func (p *Set) Equals(other Set) bool {
	n := max(len(p.words), len(other.words))
	//
	for i := 0; i < n; i++ {
		var w1, w2 uint64
		//
		if i < len(p.words) {
			w1 = p.words[i]
		}
		//
		if i < len(other.words) {
			w2 = other.words[i]
		}
		//
		if w1 != w2 {
			return false
		}
	}
	//
	return true
}

//nolint:revive
func (p *Set) String() string {
	var r strings.Builder
	//
	r.WriteString("{")
	//
	for i, v := range p.Ones() {
		if i != 0 {
			r.WriteString(",")
		}
		//
		r.WriteString(fmt.Sprintf("%d", v))
	}
	//
	r.WriteString("}")
	//
	return r.String()
}
