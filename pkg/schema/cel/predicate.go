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

// Package cel provides row predicates written in the Common Expression
// Language.  Unlike predicates supplied as Go functions, these carry their
// source text and therefore survive a round trip through a schema file.
package cel

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"

	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/schema"
)

// Predicate is a compiled CEL expression over a single row.  The expression
// sees one variable, row, mapping field names to their cell values; field
// names containing spaces or other awkward characters are reachable by
// indexing, as in row['Max Nutrition'].  Null cells appear as CEL null.
type Predicate struct {
	source  string
	program celgo.Program
}

// NewPredicate compiles the given CEL source into a row predicate.  The
// expression must be of boolean type.
func NewPredicate(source string) (*Predicate, error) {
	env, err := celgo.NewEnv(
		celgo.Variable("row", celgo.MapType(celgo.StringType, celgo.DynType)),
		// Cells are always doubles, while expressions naturally use integer
		// literals.
		celgo.CrossTypeNumericComparisons(true),
	)
	//
	if err != nil {
		return nil, err
	}
	//
	ast, issues := env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compiling %q: %w", source, issues.Err())
	}
	//
	if !ast.OutputType().IsExactType(celgo.BoolType) {
		return nil, fmt.Errorf("predicate %q has type %s, expected bool", source, ast.OutputType())
	}
	//
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	//
	return &Predicate{source: source, program: program}, nil
}

// Source returns the CEL source text this predicate was compiled from.
func (p *Predicate) Source() string {
	return p.source
}

// Evaluate runs the predicate over a single row.  Evaluation errors, such as
// indexing an absent field, count as failure.
func (p *Predicate) Evaluate(row schema.Row) bool {
	fields := make(map[string]any, len(row))
	for name, v := range row {
		fields[name] = unwrap(v)
	}
	//
	out, _, err := p.program.Eval(map[string]any{"row": fields})
	if err != nil {
		return false
	}
	//
	b, ok := out.Value().(bool)
	//
	return ok && b
}

// unwrap converts a cell value into the native Go representation CEL expects.
func unwrap(v dataset.Value) any {
	switch v.Kind() {
	case dataset.KindNumber:
		n, _ := v.AsNumber()
		return n
	case dataset.KindString:
		s, _ := v.AsString()
		return s
	case dataset.KindBool:
		b, _ := v.AsBool()
		return b
	default:
		return nil
	}
}
