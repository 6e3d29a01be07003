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
package hash

// Map defines a generic map implementation where keys provide their own hash
// and equality functions.  Collisions are handled gracefully using buckets.
type Map[K Hasher[K], V any] struct {
	// buckets maps hashcodes to *buckets* of key-value pairs.
	buckets map[uint64]hashMapBucket[K, V]
}

// NewMap creates a new hash map with a given underlying capacity.
func NewMap[K Hasher[K], V any](size uint) *Map[K, V] {
	buckets := make(map[uint64]hashMapBucket[K, V], size)
	return &Map[K, V]{buckets}
}

// Size returns the number of unique keys stored in this map.
//
//nolint:revive
func (p *Map[K, V]) Size() uint {
	count := uint(0)
	for _, b := range p.buckets {
		count += uint(len(b.items))
	}

	return count
}

// Insert a new key-value pair into this map, replacing any existing pair for
// the same key.  Returns true if the key was already present.
//
//nolint:revive
func (p *Map[K, V]) Insert(key K, value V) bool {
	var b1 hashMapBucket[K, V]
	// Compute key's hashcode
	hash := key.Hash()
	// Lookup existing bucket
	b1 = p.buckets[hash]
	// Insert new item
	r := b1.insert(key, value)
	// Update map
	p.buckets[hash] = b1
	// Done
	return r
}

// Get returns the value associated with a given key (if present).
//
//nolint:revive
func (p *Map[K, V]) Get(key K) (V, bool) {
	hash := key.Hash()

	if bucket, ok := p.buckets[hash]; ok {
		return bucket.get(key)
	}
	//
	var empty V
	//
	return empty, false
}

// ContainsKey checks whether a given key is contained within this map.
//
//nolint:revive
func (p *Map[K, V]) ContainsKey(key K) bool {
	_, ok := p.Get(key)
	return ok
}

// ============================================================================
// Bucket
// ============================================================================

type hashMapBucket[K Hasher[K], V any] struct {
	items []hashMapEntry[K, V]
}

type hashMapEntry[K Hasher[K], V any] struct {
	key   K
	value V
}

// Insert a given key-value pair into this bucket, replacing any existing entry
// with a matching key.  Returns true if the key was already present.
func (p *hashMapBucket[K, V]) insert(key K, value V) bool {
	for i, e := range p.items {
		if e.key.Equals(key) {
			p.items[i].value = value
			return true
		}
	}
	//
	p.items = append(p.items, hashMapEntry[K, V]{key, value})
	//
	return false
}

func (p *hashMapBucket[K, V]) get(key K) (V, bool) {
	for _, e := range p.items {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	//
	var empty V
	//
	return empty, false
}
