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
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rows"
)

// HeaderCell is one column header of a projected page.
type HeaderCell struct {
	Key       string
	Label     string
	Sortable  bool
	Active    bool // the view is sorted by this column
	Direction query.Direction
}

// Indicator returns the sort arrow of an active header, or "".
func (h HeaderCell) Indicator() string {
	if !h.Active {
		return ""
	}
	if h.Direction == query.Descending {
		return "▼"
	}
	return "▲"
}

// NavLink is a pagination control. A disabled link is inert.
type NavLink struct {
	Page    int
	Enabled bool
}

// Navigation holds the four pagination controls.
type Navigation struct {
	First, Prev, Next, Last NavLink
}

// View is the projection of a DataTable under a view State: everything a
// renderer needs to draw one page.
type View struct {
	State query.State // normalized: page clamped, invalid sort and search dropped

	Rows       []rows.Row
	Keys       []string    // identity of each page row
	Cells      [][]string  // rendered text per page row and column
	Controls   [][]Control // per page row, only when ShowActions
	Headers    []HeaderCell
	Nav        Navigation
	PageSize   int
	Total      int // rows in the table
	Filtered   int // rows matching the search
	TotalPages int
	FirstRow   int // 1-based position of the first page row in the filtered rows, 0 when empty
	LastRow    int

	Searchable  bool
	Paginated   bool
	Exportable  bool
	ShowActions bool
}

// Empty reports whether the page has no rows.
func (v *View) Empty() bool { return len(v.Rows) == 0 }

// Normalize returns state adjusted to the table: the search is dropped when
// the table is not searchable, and a sort on an unknown or unsortable column
// is dropped. The page is not clamped here.
func (dt *DataTable) Normalize(state query.State) query.State {
	state.Search = dt.searchTerm(state.Search)
	if state.SortColumn != "" && !dt.IsSortable(state.SortColumn) {
		state.SortColumn = ""
		state.SortDirection = query.Ascending
	}
	if state.Page < 1 {
		state.Page = 1
	}
	return state
}

// pageSize returns the effective page size for n filtered rows.
func (dt *DataTable) pageSize(n int) int {
	if dt.config.Pagination {
		return dt.config.PageSize
	}
	if n < 1 {
		return 1
	}
	return n
}

// Project computes the page shown for state. It is a pure function of the
// table and the state: projecting twice gives identical views.
func (dt *DataTable) Project(state query.State) *View {
	state = dt.Normalize(state)

	filtered := dt.FilterIndices(state.Search)
	size := dt.pageSize(len(filtered))
	totalPages := TotalPages(len(filtered), size)
	state.Page = query.ClampPage(state.Page, totalPages)

	start, end := pageBounds(state.Page, size, len(filtered))
	var window []int
	if state.SortColumn != "" {
		window = dt.SortedTopK(filtered, state.SortColumn, state.SortDirection, end)[start:end]
	} else {
		window = filtered[start:end]
	}

	v := &View{
		State:       state,
		Rows:        make([]rows.Row, 0, len(window)),
		Keys:        make([]string, 0, len(window)),
		Cells:       make([][]string, 0, len(window)),
		PageSize:    size,
		Total:       len(dt.rows),
		Filtered:    len(filtered),
		TotalPages:  totalPages,
		Searchable:  dt.config.Searchable,
		Paginated:   dt.config.Pagination,
		Exportable:  dt.config.Exportable,
		ShowActions: dt.config.Actions && dt.actions.Any(),
	}
	if len(window) > 0 {
		v.FirstRow = start + 1
		v.LastRow = end
	}

	for _, pos := range window {
		r := dt.rows[pos]
		cells := make([]string, len(dt.columns))
		for i, c := range dt.columns {
			cells[i] = c.Cell(r)
		}
		v.Rows = append(v.Rows, r)
		v.Keys = append(v.Keys, r.Key(pos))
		v.Cells = append(v.Cells, cells)
		if v.ShowActions {
			v.Controls = append(v.Controls, dt.actions.Controls(r))
		}
	}

	v.Headers = make([]HeaderCell, len(dt.columns))
	for i, c := range dt.columns {
		v.Headers[i] = HeaderCell{
			Key:       c.Key,
			Label:     c.Header,
			Sortable:  c.Sortable,
			Active:    c.Key == state.SortColumn,
			Direction: state.SortDirection,
		}
	}

	onFirst := state.Page <= 1
	onLast := state.Page >= totalPages
	v.Nav = Navigation{
		First: NavLink{Page: 1, Enabled: !onFirst},
		Prev:  NavLink{Page: query.ClampPage(state.Page-1, totalPages), Enabled: !onFirst},
		Next:  NavLink{Page: query.ClampPage(state.Page+1, totalPages), Enabled: !onLast},
		Last:  NavLink{Page: totalPages, Enabled: !onLast},
	}
	return v
}
