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

// Package sqlite imports and exports dataset snapshots as SQLite database
// files, one SQL table per dataset table.  This is snapshot transfer, not a
// storage engine: Write replaces any existing table of the same name
// wholesale.  SQLite has no boolean affinity, so booleans are stored as 0/1
// and read back as numbers.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/relcheck/relcheck/pkg/dataset"
)

// Write exports a dataset into the SQLite database at the given path,
// creating the file if necessary and replacing any table which already
// exists.
func Write(ds *dataset.Dataset, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	//
	defer db.Close()
	//
	for _, name := range ds.Tables() {
		t, _ := ds.Table(name)
		//
		if err := writeTable(db, t); err != nil {
			return fmt.Errorf("writing table %s: %w", name, err)
		}
		//
		log.Debugf("wrote %d rows of table %s", t.Height(), name)
	}
	//
	return nil
}

// Read imports every table of the SQLite database at the given path as a
// dataset input, keyed by table name.
func Read(path string) (map[string]dataset.Input, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	//
	defer db.Close()
	//
	names, err := tableNames(db)
	if err != nil {
		return nil, err
	}
	//
	inputs := make(map[string]dataset.Input, len(names))
	//
	for _, name := range names {
		input, err := readTable(db, name)
		if err != nil {
			return nil, fmt.Errorf("reading table %s: %w", name, err)
		}
		//
		inputs[name] = input
	}
	//
	return inputs, nil
}

func writeTable(db *sql.DB, t *dataset.Table) error {
	var (
		columns = t.Columns()
		quoted  = make([]string, len(columns))
		holes   = make([]string, len(columns))
	)
	//
	for i, c := range columns {
		quoted[i] = quote(c)
		holes[i] = "?"
	}
	//
	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quote(t.Name()))); err != nil {
		return err
	}
	//
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quote(t.Name()), strings.Join(quoted, ", "))
	if _, err := db.Exec(create); err != nil {
		return err
	}
	// Bulk insert within one transaction.
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	//
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quote(t.Name()), strings.Join(holes, ", "))
	//
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return err
	}
	//
	defer stmt.Close()
	//
	for i := uint(0); i < t.Height(); i++ {
		args := make([]any, len(columns))
		for j, c := range columns {
			args[j] = unwrap(t.Cell(c, i))
		}
		//
		if _, err := stmt.Exec(args...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	//
	return tx.Commit()
}

func readTable(db *sql.DB, name string) (dataset.Input, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", quote(name)))
	if err != nil {
		return dataset.Input{}, err
	}
	//
	defer rows.Close()
	//
	columns, err := rows.Columns()
	if err != nil {
		return dataset.Input{}, err
	}
	//
	var data [][]dataset.Value
	//
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		//
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		//
		if err := rows.Scan(ptrs...); err != nil {
			return dataset.Input{}, err
		}
		//
		row := make([]dataset.Value, len(columns))
		//
		for i, cell := range raw {
			v, err := wrap(cell)
			if err != nil {
				return dataset.Input{}, fmt.Errorf("column %s: %w", columns[i], err)
			}
			//
			row[i] = v
		}
		//
		data = append(data, row)
	}
	//
	if err := rows.Err(); err != nil {
		return dataset.Input{}, err
	}
	//
	return dataset.NewInput(columns, data...), nil
}

func tableNames(db *sql.DB) ([]string, error) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	//
	defer rows.Close()
	//
	var names []string
	//
	for rows.Next() {
		var name string
		//
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		//
		names = append(names, name)
	}
	//
	return names, rows.Err()
}

// quote wraps an identifier in double quotes, escaping embedded quotes.
func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

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

func wrap(raw any) (dataset.Value, error) {
	switch x := raw.(type) {
	case nil:
		return dataset.Null(), nil
	case float64:
		return dataset.Number(x), nil
	case int64:
		return dataset.Number(float64(x)), nil
	case string:
		return dataset.String(x), nil
	case []byte:
		return dataset.String(string(x)), nil
	case bool:
		return dataset.Bool(x), nil
	default:
		return dataset.Null(), fmt.Errorf("unsupported scalar %T", raw)
	}
}
