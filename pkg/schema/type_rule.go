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
	"fmt"
	"math"
	"slices"

	"github.com/relcheck/relcheck/pkg/dataset"
)

// AnyString is the wildcard marker for TypeRule.StringsAllowed, indicating
// that every string is acceptable.
const AnyString = "*"

// TypeRule is a single field's value-acceptance contract: a numeric range, a
// string whitelist and a nullability flag.  The rule is pure and total over
// well-formed scalar values.
type TypeRule struct {
	// NumberAllowed determines whether numeric values are acceptable at all.
	NumberAllowed bool
	// InclusiveMin determines whether Min itself is acceptable.
	InclusiveMin bool
	// InclusiveMax determines whether Max itself is acceptable.
	InclusiveMax bool
	// Min is the smallest acceptable number.
	Min float64
	// Max is the largest acceptable number.  Invariant: Max >= Min whenever
	// NumberAllowed holds.
	Max float64
	// MustBeInt requires acceptable numbers to be integral.
	MustBeInt bool
	// StringsAllowed is either the single wildcard marker AnyString, or the
	// finite whitelist of acceptable strings (empty prohibits all strings).
	StringsAllowed []string
	// Nullable determines whether the null sentinel is acceptable.
	Nullable bool
}

// DefaultTypeRule returns the rule applied when a caller asks for a numeric
// field without overriding any parameter: any number in [0, +inf).
func DefaultTypeRule() TypeRule {
	return TypeRule{
		NumberAllowed: true,
		InclusiveMin:  true,
		InclusiveMax:  false,
		Min:           0,
		Max:           math.Inf(1),
	}
}

// NumberRule returns a rule accepting numbers within the given inclusive
// bounds.
func NumberRule(min, max float64) TypeRule {
	return TypeRule{
		NumberAllowed: true,
		InclusiveMin:  true,
		InclusiveMax:  true,
		Min:           min,
		Max:           max,
	}
}

// StringRule returns a rule accepting exactly the given strings (or any
// string at all given the AnyString marker).
func StringRule(allowed ...string) TypeRule {
	return TypeRule{StringsAllowed: allowed}
}

// normalise validates the rule's own parameters and puts it into canonical
// form: when numbers are disallowed, the numeric parameters are cleared so
// that equivalent rules compare equal.
func (p TypeRule) normalise() (TypeRule, error) {
	if err := p.validate(); err != nil {
		return TypeRule{}, err
	}
	//
	if !p.NumberAllowed {
		p.InclusiveMin = true
		p.InclusiveMax = true
		p.Min = 0
		p.Max = math.Inf(1)
		p.MustBeInt = false
	}
	//
	p.StringsAllowed = slices.Clone(p.StringsAllowed)
	//
	return p, nil
}

func (p TypeRule) validate() error {
	if p.NumberAllowed {
		if math.IsNaN(p.Min) || math.IsNaN(p.Max) {
			return fmt.Errorf("type rule bounds must be numeric")
		}
		//
		if p.Max < p.Min {
			return fmt.Errorf("type rule max (%v) cannot be smaller than min (%v)", p.Max, p.Min)
		}
	}
	//
	for _, s := range p.StringsAllowed {
		if s == AnyString && len(p.StringsAllowed) != 1 {
			return fmt.Errorf("the %q wildcard cannot be combined with other allowed strings", AnyString)
		}
	}
	//
	return nil
}

// AllowsAnyString reports whether this rule carries the wildcard marker.
func (p TypeRule) AllowsAnyString() bool {
	return len(p.StringsAllowed) == 1 && p.StringsAllowed[0] == AnyString
}

// Accepts determines whether a given value is acceptable under this rule.
func (p TypeRule) Accepts(v dataset.Value) bool {
	if v.IsNull() {
		return p.Nullable
	}
	//
	if n, ok := v.AsNumber(); ok {
		return p.acceptsNumber(n)
	}
	//
	if s, ok := v.AsString(); ok {
		return p.acceptsString(s)
	}
	// No other scalar kind is acceptable.
	return false
}

func (p TypeRule) acceptsNumber(n float64) bool {
	if !p.NumberAllowed {
		return false
	}
	//
	if p.MustBeInt && n != math.Trunc(n) {
		return false
	}
	//
	if n < p.Min || (n == p.Min && !p.InclusiveMin) {
		return false
	}
	//
	if n > p.Max || (n == p.Max && !p.InclusiveMax) {
		return false
	}
	//
	return true
}

func (p TypeRule) acceptsString(s string) bool {
	if p.AllowsAnyString() {
		return true
	}
	//
	return slices.Contains(p.StringsAllowed, s)
}
