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
	"reflect"
	"strings"
	"testing"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rows"
)

func newTable(t *testing.T, rs []rows.Row, cols []columns.Column, cfg Config, actions Actions) *DataTable {
	t.Helper()
	dt, err := NewDataTable(rs, cols, cfg, actions)
	if err != nil {
		t.Fatalf("NewDataTable: %v", err)
	}
	return dt
}

func peopleRows() []rows.Row {
	return []rows.Row{
		rows.New(map[string]any{"id": "p1", "name": "Ahmed Rahman", "city": "Dhaka"}),
		rows.New(map[string]any{"id": "p2", "name": "Karim Uddin", "city": "Chittagong"}),
		rows.New(map[string]any{"id": "p3", "name": "Nusrat Jahan", "city": "Sylhet"}),
	}
}

func peopleColumns() []columns.Column {
	return []columns.Column{
		{Key: "name", Header: "Name", Sortable: true},
		{Key: "city", Header: "City", Sortable: false},
	}
}

// numberedRows returns n rows with ids r0..r(n-1) and amount = i % mod.
func numberedRows(n, mod int) []rows.Row {
	rs := make([]rows.Row, n)
	for i := range rs {
		rs[i] = rows.New(map[string]any{"id": fmt.Sprintf("r%d", i), "amount": i % mod})
	}
	return rs
}

func ids(rs []rows.Row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Get("id").Text()
	}
	return out
}

func TestInvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		cfg := DefaultConfig()
		cfg.PageSize = size
		if _, err := NewDataTable(nil, nil, cfg, Actions{}); !errors.Is(err, ErrInvalidPageSize) {
			t.Errorf("PageSize %d: error = %v, want ErrInvalidPageSize", size, err)
		}
	}
}

func TestFilter(t *testing.T) {
	dt := newTable(t, peopleRows(), peopleColumns(), DefaultConfig(), Actions{})

	tests := []struct {
		term string
		want []string
	}{
		{"rahman", []string{"p1"}},
		{"RAHMAN", []string{"p1"}},
		{"an", []string{"p1", "p3"}},
		{"dhaka", []string{"p1"}},
		{"p2", []string{"p2"}}, // fields outside the columns are searched too
		{"", []string{"p1", "p2", "p3"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := []string{}
			for _, pos := range dt.FilterIndices(tt.term) {
				got = append(got, dt.Row(pos).Get("id").Text())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterIndices(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestFilterMatchesNonStringValues(t *testing.T) {
	rs := []rows.Row{
		rows.New(map[string]any{"amount": 1500}),
		rows.New(map[string]any{"amount": 2.5}),
		rows.New(map[string]any{"active": true}),
	}
	dt := newTable(t, rs, columns.Infer([]string{"amount"}), DefaultConfig(), Actions{})
	for term, want := range map[string][]int{"150": {0}, "2.5": {1}, "TRUE": {2}} {
		if got := dt.FilterIndices(term); !reflect.DeepEqual(got, want) {
			t.Errorf("FilterIndices(%q) = %v, want %v", term, got, want)
		}
	}
}

func TestSortStableAndToggle(t *testing.T) {
	rs := []rows.Row{
		rows.New(map[string]any{"id": "a", "amount": 50}),
		rows.New(map[string]any{"id": "b", "amount": 10}),
		rows.New(map[string]any{"id": "c", "amount": 50}),
	}
	cols := []columns.Column{{Key: "amount", Header: "Amount", Sortable: true}}
	tv := NewTableView(newTable(t, rs, cols, DefaultConfig(), Actions{}))

	tv.SortBy("amount")
	if got, want := ids(tv.View().Rows), []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ascending = %v, want %v", got, want)
	}

	tv.SortBy("amount")
	if got, want := ids(tv.View().Rows), []string{"a", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("descending = %v, want %v", got, want)
	}
	if tv.State().SortDirection != query.Descending {
		t.Errorf("direction = %v, want desc", tv.State().SortDirection)
	}

	tv.SortBy("amount")
	if tv.State().SortColumn != "amount" || tv.State().SortDirection != query.Ascending {
		t.Errorf("third click state = %+v, want amount asc", tv.State())
	}
}

func TestSortIgnoresUnsortableColumns(t *testing.T) {
	tv := NewTableView(newTable(t, peopleRows(), peopleColumns(), DefaultConfig(), Actions{}))
	if tv.SortBy("city") {
		t.Errorf("SortBy(city) = true for an unsortable column")
	}
	if tv.SortBy("missing") {
		t.Errorf("SortBy(missing) = true for an unknown column")
	}
	if tv.State().SortColumn != "" {
		t.Errorf("state changed: %+v", tv.State())
	}

	// The same applies to state coming from outside, e.g. a URL.
	v := tv.Table().Project(query.State{Page: 1, SortColumn: "city"})
	if v.State.SortColumn != "" {
		t.Errorf("Project kept unsortable sort column: %+v", v.State)
	}
	for _, h := range v.Headers {
		if h.Active {
			t.Errorf("header %q marked active", h.Key)
		}
	}
}

func TestSortDoesNotMutateRows(t *testing.T) {
	rs := numberedRows(30, 7)
	before := ids(rs)
	dt := newTable(t, rs, []columns.Column{{Key: "amount", Header: "Amount", Sortable: true}}, DefaultConfig(), Actions{})
	dt.Project(query.State{Page: 2, SortColumn: "amount", SortDirection: query.Descending})
	if got := ids(rs); !reflect.DeepEqual(got, before) {
		t.Errorf("caller rows reordered: %v", got)
	}
	if got := ids(dt.Rows()); !reflect.DeepEqual(got, before) {
		t.Errorf("table rows reordered: %v", got)
	}
}

func TestTopKMatchesFullStableSort(t *testing.T) {
	dt := newTable(t, numberedRows(97, 5), []columns.Column{{Key: "amount", Header: "Amount", Sortable: true}}, DefaultConfig(), Actions{})
	all := dt.FilterIndices("")

	for _, dir := range []query.Direction{query.Ascending, query.Descending} {
		full := dt.SortIndices(all, "amount", dir)
		for _, k := range []int{1, 10, 50, 96, 97, 200} {
			got := dt.SortedTopK(all, "amount", dir, k)
			want := full
			if k < len(full) {
				want = full[:k]
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("SortedTopK(%v, %d) = %v, want %v", dir, k, got, want)
			}
		}
	}
	if !reflect.DeepEqual(all, dt.FilterIndices("")) {
		t.Errorf("SortIndices modified its input")
	}
}

func TestPagination(t *testing.T) {
	dt := newTable(t, numberedRows(25, 100), columns.Infer([]string{"id", "amount"}), DefaultConfig(), Actions{})
	tv := NewTableView(dt)

	if got := tv.View().TotalPages; got != 3 {
		t.Fatalf("TotalPages = %d, want 3", got)
	}

	tests := []struct{ request, want int }{
		{5, 3},
		{0, 1},
		{-1, 1},
		{2, 2},
	}
	for _, tt := range tests {
		tv.GoToPage(tt.request)
		if got := tv.State().Page; got != tt.want {
			t.Errorf("GoToPage(%d) -> page %d, want %d", tt.request, got, tt.want)
		}
	}

	tv.Last()
	v := tv.View()
	if len(v.Rows) != 5 || v.FirstRow != 21 || v.LastRow != 25 {
		t.Errorf("last page rows = %d [%d-%d], want 5 [21-25]", len(v.Rows), v.FirstRow, v.LastRow)
	}
	if v.Nav.Next.Enabled || v.Nav.Last.Enabled || !v.Nav.First.Enabled || !v.Nav.Prev.Enabled {
		t.Errorf("last page nav = %+v", v.Nav)
	}

	tv.Next()
	if tv.State().Page != 3 {
		t.Errorf("Next on last page moved to %d", tv.State().Page)
	}

	tv.First()
	v = tv.View()
	if v.Nav.First.Enabled || v.Nav.Prev.Enabled || !v.Nav.Next.Enabled || !v.Nav.Last.Enabled {
		t.Errorf("first page nav = %+v", v.Nav)
	}
	tv.Prev()
	if tv.State().Page != 1 {
		t.Errorf("Prev on first page moved to %d", tv.State().Page)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ n, size, want int }{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestSearchResetsPage(t *testing.T) {
	rs := make([]rows.Row, 0, 40)
	for i := 0; i < 40; i++ {
		name := "ahmed"
		if i%2 == 1 {
			name = "ahsan"
		}
		rs = append(rs, rows.New(map[string]any{"id": i, "name": name}))
	}
	tv := NewTableView(newTable(t, rs, columns.Infer([]string{"name"}), DefaultConfig(), Actions{}))

	tv.Search("ah")
	tv.GoToPage(3)
	if tv.State().Page != 3 {
		t.Fatalf("page = %d, want 3", tv.State().Page)
	}

	tv.Search("ahm")
	if tv.State().Page != 1 {
		t.Errorf("page after search change = %d, want 1", tv.State().Page)
	}
	if got := tv.View().Filtered; got != 20 {
		t.Errorf("Filtered = %d, want 20", got)
	}
}

func TestSetRowsResetsPage(t *testing.T) {
	tv := NewTableView(newTable(t, numberedRows(30, 3), columns.Infer([]string{"id"}), DefaultConfig(), Actions{}))
	tv.GoToPage(3)
	tv.SetRows(numberedRows(30, 3))
	if tv.State().Page != 1 {
		t.Errorf("page after SetRows = %d, want 1", tv.State().Page)
	}
}

func TestEmptyRows(t *testing.T) {
	tv := NewTableView(newTable(t, nil, peopleColumns(), DefaultConfig(), Actions{}))
	tv.GoToPage(4)
	v := tv.View()
	if !v.Empty() || v.TotalPages != 1 || v.State.Page != 1 {
		t.Errorf("empty view = rows %d, pages %d, page %d", len(v.Rows), v.TotalPages, v.State.Page)
	}
	if v.Nav.First.Enabled || v.Nav.Prev.Enabled || v.Nav.Next.Enabled || v.Nav.Last.Enabled {
		t.Errorf("empty view has enabled nav: %+v", v.Nav)
	}
	if v.FirstRow != 0 || v.LastRow != 0 {
		t.Errorf("empty range = %d-%d", v.FirstRow, v.LastRow)
	}
}

func TestPaginationDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pagination = false
	v := newTable(t, numberedRows(25, 100), columns.Infer([]string{"id"}), cfg, Actions{}).Project(query.State{Page: 3})
	if len(v.Rows) != 25 || v.TotalPages != 1 || v.State.Page != 1 {
		t.Errorf("unpaginated view = %d rows, %d pages, page %d", len(v.Rows), v.TotalPages, v.State.Page)
	}
}

func TestSearchDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Searchable = false
	tv := NewTableView(newTable(t, peopleRows(), peopleColumns(), cfg, Actions{}))
	tv.Search("rahman")
	if v := tv.View(); v.Filtered != 3 || v.State.Search != "" {
		t.Errorf("search applied on unsearchable table: %+v", v.State)
	}
}

func TestActionGating(t *testing.T) {
	var deleted []rows.Row
	onDelete := func(r rows.Row) error {
		deleted = append(deleted, r)
		return nil
	}
	onEdit := func(rows.Row) error { return nil }

	withoutDelete := newTable(t, peopleRows(), peopleColumns(), DefaultConfig(), Actions{OnEdit: onEdit})
	for i, controls := range withoutDelete.Project(query.NewState()).Controls {
		for _, c := range controls {
			if c.Name == ActionDelete {
				t.Errorf("row %d renders a delete control without OnDelete", i)
			}
		}
	}
	if err := withoutDelete.Invoke("p1", ActionDelete); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Invoke(delete) without OnDelete = %v, want ErrUnknownAction", err)
	}

	rs := peopleRows()
	withDelete := newTable(t, rs, peopleColumns(), DefaultConfig(), Actions{OnEdit: onEdit, OnDelete: onDelete})
	v := withDelete.Project(query.NewState())
	if got := len(v.Controls[1]); got != 2 {
		t.Errorf("controls = %d, want 2", got)
	}
	if err := withDelete.Invoke("p2", ActionDelete); err != nil {
		t.Fatalf("Invoke(delete): %v", err)
	}
	if len(deleted) != 1 {
		t.Fatalf("OnDelete called %d times, want 1", len(deleted))
	}
	if !reflect.DeepEqual(deleted[0], rs[1]) {
		t.Errorf("OnDelete got %v, want %v", deleted[0], rs[1])
	}
	if withDelete.Len() != 3 {
		t.Errorf("table changed after action: %d rows", withDelete.Len())
	}

	if err := withDelete.Invoke("nobody", ActionDelete); !errors.Is(err, ErrRowNotFound) {
		t.Errorf("Invoke on missing row = %v, want ErrRowNotFound", err)
	}
}

func TestCustomActions(t *testing.T) {
	calls := 0
	actions := Actions{
		OnEdit: func(rows.Row) error { return nil },
		Custom: func(r rows.Row) []Control {
			return []Control{
				{Name: "reconcile", Label: "Reconcile", Handler: func(rows.Row) error { calls++; return nil }},
				{Name: "dead", Label: "Dead"},
			}
		},
	}
	dt := newTable(t, peopleRows(), peopleColumns(), DefaultConfig(), actions)
	controls := dt.Project(query.NewState()).Controls[0]
	if len(controls) != 1 || controls[0].Name != "reconcile" {
		t.Errorf("custom controls = %+v, want only reconcile", controls)
	}
	if err := dt.Invoke("p1", "reconcile"); err != nil || calls != 1 {
		t.Errorf("Invoke(reconcile) = %v, calls %d", err, calls)
	}
	if err := dt.Invoke("p1", ActionEdit); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("built-in edit with custom actions = %v, want ErrUnknownAction", err)
	}
}

func TestActionsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Actions = false
	dt := newTable(t, peopleRows(), peopleColumns(), cfg, Actions{OnView: func(rows.Row) error { return nil }})
	v := dt.Project(query.NewState())
	if v.ShowActions || v.Controls != nil {
		t.Errorf("actions rendered while disabled")
	}
	if err := dt.Invoke("p1", ActionView); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Invoke with actions disabled = %v", err)
	}
}

func TestRowKeyFallsBackToPosition(t *testing.T) {
	rs := []rows.Row{
		rows.New(map[string]any{"name": "a"}),
		rows.New(map[string]any{"name": "b"}),
	}
	dt := newTable(t, rs, columns.Infer([]string{"name"}), DefaultConfig(), Actions{})
	v := dt.Project(query.NewState())
	if !reflect.DeepEqual(v.Keys, []string{"0", "1"}) {
		t.Errorf("Keys = %v, want [0 1]", v.Keys)
	}
	if r, _, err := dt.Lookup("1"); err != nil || r.Get("name").Text() != "b" {
		t.Errorf("Lookup(1) = %v, %v", r, err)
	}
}

func TestExportSheet(t *testing.T) {
	rs := make([]rows.Row, 0, 100)
	for i := 0; i < 100; i++ {
		name := fmt.Sprintf("Passenger %d", i)
		if i == 7 || i == 42 || i == 88 {
			name = fmt.Sprintf("Ahmed %d", i)
		}
		rs = append(rs, rows.New(map[string]any{"id": i, "name": name, "fare": i * 1000}))
	}
	cols := []columns.Column{
		{Key: "name", Header: "Passenger", Sortable: true},
		{Key: "fare", Header: "Fare", Sortable: true, Render: columns.Taka()},
	}
	dt := newTable(t, rs, cols, DefaultConfig(), Actions{})

	state := query.State{Search: "ahmed", Page: 2, SortColumn: "name", SortDirection: query.Descending}
	sheet, err := dt.ExportSheet(state, false)
	if err != nil {
		t.Fatalf("ExportSheet: %v", err)
	}
	if !reflect.DeepEqual(sheet.Headers, []string{"Passenger", "Fare"}) {
		t.Errorf("Headers = %v", sheet.Headers)
	}
	want := [][]string{{"Ahmed 7", "7000"}, {"Ahmed 42", "42000"}, {"Ahmed 88", "88000"}}
	if !reflect.DeepEqual(sheet.Rows, want) {
		t.Errorf("Rows = %v, want %v", sheet.Rows, want)
	}

	rendered, err := dt.ExportSheet(state, true)
	if err != nil {
		t.Fatalf("ExportSheet(rendered): %v", err)
	}
	if got := rendered.Rows[0][1]; got != "৳7,000.00" {
		t.Errorf("rendered fare = %q", got)
	}

	cfg := DefaultConfig()
	cfg.Exportable = false
	if _, err := newTable(t, rs, cols, cfg, Actions{}).ExportSheet(state, false); !errors.Is(err, ErrExportDisabled) {
		t.Errorf("ExportSheet on unexportable table = %v", err)
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	dt := newTable(t, numberedRows(57, 4), columns.Infer([]string{"id", "amount"}), DefaultConfig(), Actions{OnView: func(rows.Row) error { return nil }})
	state := query.State{Search: "1", Page: 2, SortColumn: "amount", SortDirection: query.Descending}
	a, b := dt.Project(state), dt.Project(state)
	if !reflect.DeepEqual(a.Cells, b.Cells) || !reflect.DeepEqual(a.Keys, b.Keys) || a.State != b.State {
		t.Errorf("two projections differ")
	}
	if a.ToAscii() != b.ToAscii() {
		t.Errorf("two renderings differ")
	}
}

func TestToAscii(t *testing.T) {
	tv := NewTableView(newTable(t, peopleRows(), peopleColumns(), DefaultConfig(), Actions{OnView: func(rows.Row) error { return nil }}))
	tv.SortBy("name")
	out := tv.View().ToAscii()
	for _, want := range []string{"Name ▲", "City", "Actions", "Ahmed Rahman", "view", "Showing 1-3 of 3 rows, page 1 of 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("ToAscii() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Ahmed") > strings.Index(out, "Karim") {
		t.Errorf("rows not sorted by name:\n%s", out)
	}
}
