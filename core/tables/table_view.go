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
	"github.com/google/tabula/core/export"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rows"
)

// TableView is one interactive instance of a table: a DataTable plus the
// view State private to this instance. Every operation runs to completion and
// leaves the state normalized against the current data. A TableView is not
// safe for concurrent use.
type TableView struct {
	table *DataTable
	state query.State
}

// NewTableView creates an instance at the initial state.
func NewTableView(dt *DataTable) *TableView {
	return &TableView{table: dt, state: query.NewState()}
}

// NewTableViewAt creates an instance at the given state, normalized against
// the table.
func NewTableViewAt(dt *DataTable, state query.State) *TableView {
	tv := &TableView{table: dt, state: state}
	tv.normalize()
	return tv
}

// Table returns the underlying DataTable.
func (tv *TableView) Table() *DataTable { return tv.table }

// State returns the current view state.
func (tv *TableView) State() query.State { return tv.state }

func (tv *TableView) normalize() {
	tv.state = tv.table.Project(tv.state).State
}

// Search sets the free-text filter. A changed term moves back to page 1.
// The search is ignored when the table is not searchable.
func (tv *TableView) Search(text string) {
	if !tv.table.config.Searchable {
		return
	}
	tv.state = tv.state.ApplySearch(text)
	tv.normalize()
}

// SortBy acts as a click on the header of key. It reports false, leaving the
// state unchanged, when key is not a sortable column.
func (tv *TableView) SortBy(key string) bool {
	if !tv.table.IsSortable(key) {
		return false
	}
	tv.state = tv.state.ApplySort(key)
	tv.normalize()
	return true
}

// GoToPage moves to page n, clamped into the valid range.
func (tv *TableView) GoToPage(n int) {
	v := tv.table.Project(tv.state)
	tv.state = v.State.ApplyPage(n, v.TotalPages)
}

// First moves to the first page.
func (tv *TableView) First() { tv.GoToPage(1) }

// Prev moves back one page; it does nothing on the first page.
func (tv *TableView) Prev() { tv.GoToPage(tv.state.Page - 1) }

// Next moves forward one page; it does nothing on the last page.
func (tv *TableView) Next() { tv.GoToPage(tv.state.Page + 1) }

// Last moves to the last page.
func (tv *TableView) Last() { tv.GoToPage(tv.table.Project(tv.state).TotalPages) }

// SetRows replaces the row collection and moves back to page 1. Search and
// sort are kept.
func (tv *TableView) SetRows(rs []rows.Row) {
	tv.table = tv.table.WithRows(rs)
	tv.state.Page = 1
	tv.normalize()
}

// View projects the current page.
func (tv *TableView) View() *View {
	return tv.table.Project(tv.state)
}

// Invoke runs a row action. The view does not change; the owner of the data
// calls SetRows to reflect any change.
func (tv *TableView) Invoke(key, action string) error {
	return tv.table.Invoke(key, action)
}

// Export returns the filtered rows of the current search as a sheet.
func (tv *TableView) Export(rendered bool) (export.Sheet, error) {
	return tv.table.ExportSheet(tv.state, rendered)
}
