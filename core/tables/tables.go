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

package tables

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/rows"
)

var (
	// ErrInvalidPageSize is returned when a table is configured with a page
	// size below 1.
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrExportDisabled is returned by exports on a table that is not
	// exportable.
	ErrExportDisabled = errors.New("export is disabled for this table")
	// ErrUnknownAction is returned when a row has no control with the
	// requested name.
	ErrUnknownAction = errors.New("unknown row action")
	// ErrRowNotFound is returned when no row has the requested key.
	ErrRowNotFound = errors.New("row not found")
)

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 10

// Config holds the feature switches of a table.
type Config struct {
	Searchable bool // free-text filter control
	Pagination bool // paging; when off every filtered row is on page 1
	Exportable bool // download as delimited text
	Actions    bool // trailing row actions column
	PageSize   int  // rows per page, must be positive
}

// DefaultConfig returns a Config with every feature enabled and 10 rows per
// page.
func DefaultConfig() Config {
	return Config{
		Searchable: true,
		Pagination: true,
		Exportable: true,
		Actions:    true,
		PageSize:   DefaultPageSize,
	}
}

// DataTable binds rows to a column schema. It is immutable: it never
// modifies the rows it was given and a change of data produces a new
// DataTable through WithRows.
type DataTable struct {
	rows    []rows.Row
	columns []columns.Column
	config  Config
	actions Actions

	byKey    map[string]int // column key -> position in columns
	rowIndex map[string]int // row key -> position in rows
	texts    [][]string     // lower cased text of every field, per row
}

// NewDataTable creates a DataTable. The row slice is copied, the rows
// themselves are shared and never written to.
func NewDataTable(rs []rows.Row, cols []columns.Column, cfg Config, actions Actions) (*DataTable, error) {
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, cfg.PageSize)
	}

	dt := &DataTable{
		rows:    append([]rows.Row(nil), rs...),
		columns: append([]columns.Column(nil), cols...),
		config:  cfg,
		actions: actions,
		byKey:   make(map[string]int, len(cols)),
	}
	for i, c := range dt.columns {
		if _, dup := dt.byKey[c.Key]; !dup {
			dt.byKey[c.Key] = i
		}
	}
	dt.index()
	return dt, nil
}

// index precomputes the search texts and the row key lookup.
func (dt *DataTable) index() {
	lower := cases.Lower(language.Und)
	dt.texts = make([][]string, len(dt.rows))
	dt.rowIndex = make(map[string]int, len(dt.rows))
	for pos, r := range dt.rows {
		fields := make([]string, 0, len(r))
		for _, v := range r {
			if t := v.Text(); t != "" {
				fields = append(fields, lower.String(t))
			}
		}
		dt.texts[pos] = fields

		key := r.Key(pos)
		if _, dup := dt.rowIndex[key]; !dup {
			dt.rowIndex[key] = pos
		}
	}
}

// WithRows returns a DataTable with the same schema, configuration and
// actions over a fresh row collection.
func (dt *DataTable) WithRows(rs []rows.Row) *DataTable {
	next := &DataTable{
		rows:    append([]rows.Row(nil), rs...),
		columns: dt.columns,
		config:  dt.config,
		actions: dt.actions,
		byKey:   dt.byKey,
	}
	next.index()
	return next
}

// Len returns the number of rows.
func (dt *DataTable) Len() int { return len(dt.rows) }

// Row returns the row at input position pos.
func (dt *DataTable) Row(pos int) rows.Row { return dt.rows[pos] }

// Rows returns a copy of the row slice.
func (dt *DataTable) Rows() []rows.Row { return append([]rows.Row(nil), dt.rows...) }

// Columns returns a copy of the column schema.
func (dt *DataTable) Columns() []columns.Column {
	return append([]columns.Column(nil), dt.columns...)
}

// Config returns the table configuration.
func (dt *DataTable) Config() Config { return dt.config }

// Actions returns the row action callbacks.
func (dt *DataTable) Actions() Actions { return dt.actions }

// GetColumn returns the column with the given key.
func (dt *DataTable) GetColumn(key string) (columns.Column, bool) {
	i, ok := dt.byKey[key]
	if !ok {
		return columns.Column{}, false
	}
	return dt.columns[i], true
}

// IsSortable reports whether key names a sortable column.
func (dt *DataTable) IsSortable(key string) bool {
	c, ok := dt.GetColumn(key)
	return ok && c.Sortable
}

// Lookup returns the row with the given key and its input position.
func (dt *DataTable) Lookup(key string) (rows.Row, int, error) {
	pos, ok := dt.rowIndex[key]
	if !ok {
		return nil, -1, fmt.Errorf("%w: %q", ErrRowNotFound, key)
	}
	return dt.rows[pos], pos, nil
}
