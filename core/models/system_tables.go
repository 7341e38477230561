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

package models

import (
	"log"
	"sort"

	"golang.org/x/text/language"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/tables"
)

// System table name constants
const (
	ColumnsTableName = "_columns"
)

// columnsTableSchema is the column schema of the _columns table.
var columnsTableSchema = []columns.Column{
	{Key: "dataset", Header: "Dataset", Sortable: true},
	{Key: "key", Header: "Column", Sortable: true},
	{Key: "header", Header: "Header", Sortable: true},
	{Key: "sortable", Header: "Sortable", Sortable: true, Render: columns.YesNo()},
	{Key: "position", Header: "Position", Sortable: true},
	{Key: "row_count", Header: "Rows", Sortable: true, Render: columns.Number(language.English, 0)},
}

// BuildColumnsTable creates a system table containing metadata about all columns
// in the DataModel. Each row represents one column from any dataset.
func BuildColumnsTable(dm *DataModel) *tables.DataTable {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return buildColumnsTableLocked(dm)
}

func buildColumnsTableLocked(dm *DataModel) *tables.DataTable {
	names := make([]string, 0, len(dm.datasets))
	for name := range dm.datasets {
		// Skip system tables
		if isSystemTable(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var rs []rows.Row
	for _, name := range names {
		table := dm.datasets[name].Table
		if table == nil {
			continue
		}
		for position, col := range table.Columns() {
			rs = append(rs, rows.New(map[string]any{
				rows.IDField: name + "." + col.Key,
				"dataset":    name,
				"key":        col.Key,
				"header":     col.Header,
				"sortable":   col.Sortable,
				"position":   position,
				"row_count":  table.Len(),
			}))
		}
	}

	cfg := tables.DefaultConfig()
	cfg.Actions = false
	cfg.PageSize = 25
	table, err := tables.NewDataTable(rs, columnsTableSchema, cfg, tables.Actions{})
	if err != nil {
		// The configuration above is constant and valid.
		log.Printf("build %s: %v", ColumnsTableName, err)
		return nil
	}
	return table
}

// isSystemTable returns true if the table name is a system table
func isSystemTable(name string) bool {
	return name == ColumnsTableName
}

// refreshSystemTablesLocked rebuilds the system tables after changed was
// added or replaced. It is a no-op until AddSystemTables has run.
func (dm *DataModel) refreshSystemTablesLocked(changed string) {
	if isSystemTable(changed) {
		return
	}
	ds, ok := dm.datasets[ColumnsTableName]
	if !ok {
		return
	}
	next := *ds
	next.Table = buildColumnsTableLocked(dm)
	dm.datasets[ColumnsTableName] = &next
}

// AddSystemTables creates and adds all system tables to the DataModel.
// The tables are kept current as datasets are added or replaced.
func AddSystemTables(dm *DataModel) {
	dm.AddDataset(Dataset{
		Name:        ColumnsTableName,
		Title:       "Columns",
		Description: "Every column of every dataset, with its header and sortability.",
		Categories:  []string{"System"},
		Table:       BuildColumnsTable(dm),
	})
}
