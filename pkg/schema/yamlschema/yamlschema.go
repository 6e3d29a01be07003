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

// Package yamlschema (de)serialises schemas to YAML, carrying tables, type
// rules, defaults, foreign keys and CEL predicate sources.  Only predicates
// which carry source text survive the round trip; predicates given as opaque
// Go functions are skipped with a warning.
package yamlschema

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"

	"github.com/relcheck/relcheck/pkg/dataset"
	"github.com/relcheck/relcheck/pkg/schema"
	"github.com/relcheck/relcheck/pkg/schema/cel"
)

type schemaFile struct {
	Tables      []tableEntry      `yaml:"tables"`
	ForeignKeys []foreignKeyEntry `yaml:"foreign_keys,omitempty"`
	Predicates  []predicateEntry  `yaml:"predicates,omitempty"`
}

type tableEntry struct {
	Name       string               `yaml:"name"`
	Generic    bool                 `yaml:"generic,omitempty"`
	PrimaryKey []string             `yaml:"primary_key,omitempty"`
	DataFields []string             `yaml:"data_fields,omitempty"`
	Types      map[string]typeEntry `yaml:"types,omitempty"`
	Defaults   map[string]any       `yaml:"defaults,omitempty"`
}

// typeEntry mirrors schema.TypeRule, with absent bounds standing in for the
// infinities so that no YAML infinity literals are needed.
type typeEntry struct {
	Number       bool     `yaml:"number"`
	Min          *float64 `yaml:"min,omitempty"`
	Max          *float64 `yaml:"max,omitempty"`
	InclusiveMin bool     `yaml:"inclusive_min,omitempty"`
	InclusiveMax bool     `yaml:"inclusive_max,omitempty"`
	MustBeInt    bool     `yaml:"must_be_int,omitempty"`
	Strings      []string `yaml:"strings,omitempty"`
	Nullable     bool     `yaml:"nullable,omitempty"`
}

type foreignKeyEntry struct {
	Native  string           `yaml:"native"`
	Foreign string           `yaml:"foreign"`
	Fields  []fieldPairEntry `yaml:"fields"`
}

type fieldPairEntry struct {
	Native  string `yaml:"native"`
	Foreign string `yaml:"foreign"`
}

type predicateEntry struct {
	Table string `yaml:"table"`
	Name  string `yaml:"name"`
	Cel   string `yaml:"cel"`
}

// Marshal serialises a schema to YAML.
func Marshal(s *schema.Schema) ([]byte, error) {
	var file schemaFile
	//
	for _, tableName := range s.Tables() {
		entry := tableEntry{
			Name:       tableName,
			Generic:    s.IsGeneric(tableName),
			PrimaryKey: s.PrimaryKey(tableName),
			DataFields: s.DataFields(tableName),
		}
		//
		for _, field := range s.TypedFields(tableName) {
			rule, _ := s.DataType(tableName, field)
			//
			if entry.Types == nil {
				entry.Types = make(map[string]typeEntry)
			}
			//
			entry.Types[field] = encodeRule(rule)
		}
		//
		for _, field := range s.Fields(tableName) {
			if v, ok := s.DefaultValue(tableName, field); ok {
				if entry.Defaults == nil {
					entry.Defaults = make(map[string]any)
				}
				//
				entry.Defaults[field] = encodeValue(v)
			}
		}
		//
		for _, name := range s.PredicateNames(tableName) {
			p, _ := s.Predicate(tableName, name)
			//
			if src, ok := p.(interface{ Source() string }); ok {
				file.Predicates = append(file.Predicates, predicateEntry{
					Table: tableName, Name: name, Cel: src.Source(),
				})
			} else {
				log.Warnf("predicate %s on table %s has no source text, skipping", name, tableName)
			}
		}
		//
		file.Tables = append(file.Tables, entry)
	}
	//
	for _, fk := range s.ForeignKeys() {
		entry := foreignKeyEntry{Native: fk.Native, Foreign: fk.Foreign}
		//
		for _, f := range fk.Fields {
			entry.Fields = append(entry.Fields, fieldPairEntry{Native: f.Native, Foreign: f.Foreign})
		}
		//
		file.ForeignKeys = append(file.ForeignKeys, entry)
	}
	//
	return yaml.Marshal(file)
}

// Unmarshal deserialises a schema from YAML.  The resulting schema is always
// in the building state, regardless of whether the source schema was sealed
// when marshalled.
func Unmarshal(data []byte) (*schema.Schema, error) {
	var file schemaFile
	//
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	//
	s := schema.New()
	//
	for _, entry := range file.Tables {
		if err := addTable(s, entry); err != nil {
			return nil, err
		}
	}
	//
	for _, entry := range file.ForeignKeys {
		fields := make([]schema.FieldPair, len(entry.Fields))
		for i, f := range entry.Fields {
			fields[i] = schema.FieldPair{Native: f.Native, Foreign: f.Foreign}
		}
		//
		if err := s.AddForeignKey(entry.Native, entry.Foreign, fields); err != nil {
			return nil, err
		}
	}
	//
	for _, entry := range file.Predicates {
		p, err := cel.NewPredicate(entry.Cel)
		if err != nil {
			return nil, err
		}
		//
		if err := s.AddPredicate(entry.Table, entry.Name, p); err != nil {
			return nil, err
		}
	}
	//
	return s, nil
}

func addTable(s *schema.Schema, entry tableEntry) error {
	if entry.Generic {
		return s.AddGenericTable(entry.Name)
	}
	//
	if err := s.AddTable(entry.Name, entry.PrimaryKey, entry.DataFields); err != nil {
		return err
	}
	//
	for field, te := range entry.Types {
		if err := s.SetDataType(entry.Name, field, decodeRule(te)); err != nil {
			return err
		}
	}
	//
	defaults := make(map[string]dataset.Value, len(entry.Defaults))
	//
	for field, raw := range entry.Defaults {
		v, err := decodeValue(raw)
		if err != nil {
			return fmt.Errorf("default for (%s, %s): %w", entry.Name, field, err)
		}
		//
		defaults[field] = v
	}
	//
	return s.SetDefaultValues(entry.Name, defaults)
}

func encodeRule(rule schema.TypeRule) typeEntry {
	entry := typeEntry{
		Number:       rule.NumberAllowed,
		InclusiveMin: rule.InclusiveMin,
		InclusiveMax: rule.InclusiveMax,
		MustBeInt:    rule.MustBeInt,
		Strings:      rule.StringsAllowed,
		Nullable:     rule.Nullable,
	}
	// Infinite bounds are simply left out.
	if !math.IsInf(rule.Min, -1) {
		lower := rule.Min
		entry.Min = &lower
	}
	//
	if !math.IsInf(rule.Max, 1) {
		upper := rule.Max
		entry.Max = &upper
	}
	//
	return entry
}

func decodeRule(entry typeEntry) schema.TypeRule {
	rule := schema.TypeRule{
		NumberAllowed:  entry.Number,
		Min:            math.Inf(-1),
		Max:            math.Inf(1),
		InclusiveMin:   entry.InclusiveMin,
		InclusiveMax:   entry.InclusiveMax,
		MustBeInt:      entry.MustBeInt,
		StringsAllowed: entry.Strings,
		Nullable:       entry.Nullable,
	}
	//
	if entry.Min != nil {
		rule.Min = *entry.Min
	}
	//
	if entry.Max != nil {
		rule.Max = *entry.Max
	}
	//
	return rule
}

func encodeValue(v dataset.Value) any {
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

func decodeValue(raw any) (dataset.Value, error) {
	switch x := raw.(type) {
	case nil:
		return dataset.Null(), nil
	case float64:
		return dataset.Number(x), nil
	case int64:
		return dataset.Number(float64(x)), nil
	case uint64:
		return dataset.Number(float64(x)), nil
	case int:
		return dataset.Number(float64(x)), nil
	case string:
		return dataset.String(x), nil
	case bool:
		return dataset.Bool(x), nil
	default:
		return dataset.Null(), fmt.Errorf("unsupported scalar %T", raw)
	}
}
