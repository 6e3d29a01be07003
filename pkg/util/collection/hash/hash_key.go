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

import (
	"bytes"
	"hash/fnv"
)

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashset.  Unlike hash interfaces found elsewhere, it includes
// equality so that genuine collisions can be resolved rather than silently
// conflated.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

var _ Hasher[BytesKey] = BytesKey{}

// BytesKey wraps a byte array as something which can be safely placed into a
// hash set or map.  Key tuples (e.g. the mapped fields of a foreign key, or
// the primary key of a table) are encoded into bytes before being indexed.
type BytesKey struct {
	bytes []byte
}

// NewBytesKey constructs a new bytes key.  The caller must not mutate the
// underlying array afterwards.
func NewBytesKey(bytes []byte) BytesKey {
	return BytesKey{bytes}
}

// Equals compares two BytesKeys to check whether they represent the same
// underlying byte array (or not).
func (p BytesKey) Equals(other BytesKey) bool {
	return bytes.Equal(p.bytes, other.bytes)
}

// Hash generates a 64-bit hashcode from the underlying byte array.
func (p BytesKey) Hash() uint64 {
	hash := fnv.New64a()
	hash.Write(p.bytes)
	// Done
	return hash.Sum64()
}
