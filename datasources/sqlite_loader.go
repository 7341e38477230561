/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/values"
)

// SqliteLoader implements DataSourceLoader for SQLite databases. Every row
// returned by src.Query becomes a row; the result columns are the fields.
type SqliteLoader struct{}

// NewSqliteLoader creates a new SQLite loader.
func NewSqliteLoader() *SqliteLoader {
	return &SqliteLoader{}
}

// SourceType returns "sqlite".
func (l *SqliteLoader) SourceType() string {
	return "sqlite"
}

// Load runs src.Query against the database at src.Path.
func (l *SqliteLoader) Load(ctx context.Context, src Source) (*Data, error) {
	if src.Path == "" || src.Query == "" {
		return nil, fmt.Errorf("sqlite: path and query are required")
	}
	// Opening a missing file would create an empty database.
	if _, err := os.Stat(src.Path); err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}

	db, err := sql.Open("sqlite", src.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.Path, err)
	}
	defer db.Close()

	result, err := db.QueryContext(ctx, src.Query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", src.Path, err)
	}
	defer result.Close()

	fields, err := result.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var rs []rows.Row
	cells := make([]any, len(fields))
	ptrs := make([]any, len(fields))
	for i := range cells {
		ptrs[i] = &cells[i]
	}
	for result.Next() {
		if err := result.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		row := make(rows.Row, len(fields))
		for i, f := range fields {
			row[f] = values.Of(cells[i])
		}
		rs = append(rs, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", src.Path, err)
	}

	return &Data{Fields: fields, Rows: rs}, nil
}
