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
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/export"
	"github.com/google/tabula/core/query"
)

// ExportSheet returns every row matching the search of state, independent of
// the page and the sort: rows keep their input order. Cells hold the raw
// value text, or the rendered cell text when rendered is set. The header row
// is the column headers in column order.
func (dt *DataTable) ExportSheet(state query.State, rendered bool) (export.Sheet, error) {
	if !dt.config.Exportable {
		return export.Sheet{}, ErrExportDisabled
	}

	filtered := dt.FilterIndices(dt.searchTerm(state.Search))
	data := make([][]string, 0, len(filtered))
	for _, pos := range filtered {
		r := dt.rows[pos]
		line := make([]string, len(dt.columns))
		for i, c := range dt.columns {
			if rendered {
				line[i] = c.Cell(r)
			} else {
				line[i] = c.Raw(r)
			}
		}
		data = append(data, line)
	}

	return export.Sheet{Name: export.DefaultName, Headers: columns.Headers(dt.columns), Rows: data}, nil
}
