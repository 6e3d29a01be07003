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

// Package ampl exports datasets as AMPL .dat documents, together with the
// matching .mod declarations, for feeding a dataset into an optimisation
// model.  Only tables with a primary key are exported; generic and PK-less
// tables are skipped.  The exporter emits text only and never invokes AMPL.
package ampl

import (
	"fmt"
	"math"
	"strings"

	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/schema"
)

// Infinity stands in for the infinities in .dat text, since AMPL has no
// infinity literal.
const Infinity = 999999

// Text renders the dataset as an AMPL .dat document.  Each exported table
// becomes one param block keyed by its primary key, carrying one column per
// data field.
func Text(s *schema.Schema, ds *dataset.Dataset) (string, error) {
	if err := s.Validate(ds); err != nil {
		return "", err
	}
	//
	var builder strings.Builder
	//
	builder.WriteString("data;\n")
	//
	for _, name := range s.Tables() {
		if !exportable(s, name) {
			continue
		}
		//
		var (
			t, _   = ds.Table(name)
			pk     = s.PrimaryKey(name)
			fields = s.DataFields(name)
		)
		//
		builder.WriteString(fmt.Sprintf("param: %s: ", name))
		//
		for _, field := range fields {
			builder.WriteString(fmt.Sprintf("%q ", paramName(name, field)))
		}
		//
		builder.WriteString(":=\n")
		//
		columns := make([]string, 0, len(pk)+len(fields))
		columns = append(columns, pk...)
		columns = append(columns, fields...)
		//
		for i := uint(0); i < t.Height(); i++ {
			builder.WriteString(" ")
			//
			for _, v := range t.RowKey(i, columns) {
				builder.WriteString(render(v))
				builder.WriteString(" ")
			}
			//
			builder.WriteString("\n")
		}
		//
		builder.WriteString(";\n")
	}
	//
	return builder.String(), nil
}

// ModText renders the schema's declarations as an AMPL .mod document: one set
// per exported table, dimensioned by its primary key, plus one indexed param
// per data field.
func ModText(s *schema.Schema) string {
	var builder strings.Builder
	//
	for _, name := range s.Tables() {
		if !exportable(s, name) {
			continue
		}
		//
		builder.WriteString("set " + name)
		//
		if pk := s.PrimaryKey(name); len(pk) > 1 {
			builder.WriteString(fmt.Sprintf(" dimen %d", len(pk)))
		}
		//
		builder.WriteString(";\n")
		//
		for _, field := range s.DataFields(name) {
			builder.WriteString(fmt.Sprintf("param %s {%s};\n", paramName(name, field), name))
		}
	}
	//
	return builder.String()
}

func exportable(s *schema.Schema, name string) bool {
	return !s.IsGeneric(name) && len(s.PrimaryKey(name)) > 0
}

// paramName flattens a (table, field) pair into a single AMPL identifier.
func paramName(table, field string) string {
	return table + "_" + strings.ReplaceAll(strings.ToLower(field), " ", "_")
}

func render(v dataset.Value) string {
	if v.IsNull() {
		return `""`
	}
	//
	if n, ok := v.AsNumber(); ok {
		if math.IsInf(n, 1) {
			return fmt.Sprintf("%d", Infinity)
		}
		//
		if math.IsInf(n, -1) {
			return fmt.Sprintf("%d", -Infinity)
		}
		//
		return v.String()
	}
	// Everything else, null included, renders as a quoted string.
	return fmt.Sprintf("%q", v.String())
}
