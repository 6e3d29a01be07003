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
	"encoding/binary"
	"math"
	"strconv"
)

// Kind discriminates the scalar kinds a cell can hold.
type Kind uint8

const (
	// KindNull is the null sentinel, representing an absent value.
	KindNull Kind = iota
	// KindNumber is a (possibly fractional) numeric value.
	KindNumber
	// KindString is a string value.
	KindString
	// KindBool is a boolean value.  Booleans are accepted in cells and
	// defaults, but are never valid under a type rule.
	KindBool
)

// Value is a single scalar cell of a table.  The zero value is null.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Null constructs the null sentinel.
func Null() Value {
	return Value{}
}

// Number constructs a numeric value.  NaN is indistinguishable from absence
// in tabular sources, so it maps onto the null sentinel.
func Number(n float64) Value {
	if math.IsNaN(n) {
		return Value{}
	}
	//
	return Value{kind: KindNumber, num: n}
}

// String constructs a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool constructs a boolean value.
func Bool(b bool) Value {
	var n float64
	if b {
		n = 1
	}
	//
	return Value{kind: KindBool, num: n}
}

// Kind returns the scalar kind of this value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull determines whether this value is the null sentinel.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsNumber returns the numeric payload of this value, with false indicating
// the value is not a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string payload of this value, with false indicating
// the value is not a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean payload of this value, with false indicating the
// value is not a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.num != 0, v.kind == KindBool
}

// Equals determines whether two values are identical.  Note that, unlike key
// matching during foreign-key scans, null compares equal to null here.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	//
	switch v.kind {
	case KindNumber, KindBool:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	default:
		return true
	}
}

// AppendKey appends a canonical binary encoding of this value to a key buffer,
// such that two values encode identically iff they are Equals.  A kind tag
// precedes every payload so that, for example, the number 1 and the string
// "1" cannot collide.
func (v Value) AppendKey(buf []byte) []byte {
	buf = append(buf, byte(v.kind))
	//
	switch v.kind {
	case KindNumber, KindBool:
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v.num))
	case KindString:
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(v.str)))
		buf = append(buf, v.str...)
	}
	//
	return buf
}

//nolint:revive
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.num != 0)
	default:
		return "null"
	}
}
