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

package views

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/tables"
)

func testTable(t *testing.T, n int, actions tables.Actions) *tables.DataTable {
	t.Helper()
	rs := make([]rows.Row, n)
	for i := range rs {
		rs[i] = rows.New(map[string]any{"id": i + 1, "name": "agent", "commission": float64(i)})
	}
	cols := []columns.Column{
		{Key: "name", Header: "Name", Sortable: true},
		{Key: "commission", Header: "Commission", Render: columns.Percent(1)},
	}
	dt, err := tables.NewDataTable(rs, cols, tables.DefaultConfig(), actions)
	if err != nil {
		t.Fatalf("NewDataTable: %v", err)
	}
	return dt
}

func buildVM(t *testing.T, dt *tables.DataTable, rawURL string) TableViewModel {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatal(err)
	}
	q := query.NewQuery(u)
	return BuildViewModel("Agents", "", q, dt.Project(q.State))
}

func TestBuildViewModelHeaders(t *testing.T) {
	vm := buildVM(t, testTable(t, 3, tables.Actions{}), "/table?table=agents&sort=name&dir=desc")

	if len(vm.Headers) != 2 {
		t.Fatalf("headers = %d, want 2", len(vm.Headers))
	}
	name, commission := vm.Headers[0], vm.Headers[1]
	if !name.Active || name.Indicator != "▼" || name.AriaSort != "descending" {
		t.Errorf("name header = %+v", name)
	}
	if got := name.SortURL.String(); !strings.Contains(got, "dir=asc") || !strings.Contains(got, "sort=name") {
		t.Errorf("toggle URL = %q", got)
	}
	if commission.Sortable || commission.SortURL.String() != "" {
		t.Errorf("unsortable header has a sort link: %+v", commission)
	}
	if vm.SearchSort != "name" || vm.SearchDir != "desc" {
		t.Errorf("search form drops the sort: %q %q", vm.SearchSort, vm.SearchDir)
	}
}

func TestBuildViewModelPagination(t *testing.T) {
	vm := buildVM(t, testTable(t, 25, tables.Actions{}), "/table?table=agents&page=9")

	if vm.PageLabel != "Page 3 of 3" {
		t.Errorf("PageLabel = %q", vm.PageLabel)
	}
	if vm.Next.Enabled || vm.Last.Enabled || vm.Next.URL.String() != "" {
		t.Errorf("next/last enabled on the last page: %+v %+v", vm.Next, vm.Last)
	}
	if !vm.Prev.Enabled || !strings.Contains(vm.Prev.URL.String(), "page=2") {
		t.Errorf("prev = %+v", vm.Prev)
	}
	if first := vm.First.URL.String(); strings.Contains(first, "page=") {
		t.Errorf("first page URL carries a page parameter: %q", first)
	}
	if len(vm.Rows) != 5 || vm.Rows[0].Cells[1] != "20.0%" {
		t.Errorf("rows = %+v", vm.Rows)
	}
	if !strings.Contains(vm.CurrentURL.String(), "page=3") {
		t.Errorf("CurrentURL = %q is not normalized", vm.CurrentURL.String())
	}
}

func TestBuildViewModelActionsAndExports(t *testing.T) {
	actions := tables.Actions{OnView: func(rows.Row) error { return nil }}
	vm := buildVM(t, testTable(t, 2, actions), "/table?table=agents&q=agent")

	if !vm.ShowActions || len(vm.Rows[0].Actions) != 1 {
		t.Fatalf("actions = %+v", vm.Rows[0].Actions)
	}
	a := vm.Rows[0].Actions[0]
	if a.Name != tables.ActionView || !strings.HasPrefix(a.URL.String(), ActionPath+"?") ||
		!strings.Contains(a.URL.String(), "row=1") || !strings.Contains(a.URL.String(), "q=agent") {
		t.Errorf("action = %+v", a)
	}

	if len(vm.Exports) != 3 {
		t.Fatalf("exports = %+v", vm.Exports)
	}
	if u := vm.Exports[0].URL.String(); !strings.HasPrefix(u, ExportPath+"?") || !strings.Contains(u, "format=csv") {
		t.Errorf("csv export URL = %q", u)
	}
}

func TestBuildViewModelEmpty(t *testing.T) {
	vm := buildVM(t, testTable(t, 4, tables.Actions{}), "/table?table=agents&q=nobody")
	if !vm.Empty || vm.EmptyMessage != `No records match "nobody"` {
		t.Errorf("empty state = %v %q", vm.Empty, vm.EmptyMessage)
	}
	if vm.PageLabel != "Page 1 of 1" {
		t.Errorf("PageLabel = %q", vm.PageLabel)
	}
}

func TestBuildLandingViewModel(t *testing.T) {
	dm := models.NewDataModel()
	dm.AddDataset(models.Dataset{
		Name:        "agents",
		Title:       "Agents",
		Description: "Sub-agents and commission rates",
		Categories:  []string{"Sales", "Partners"},
		Table:       testTable(t, 1200, tables.Actions{}),
	})
	models.AddSystemTables(dm)

	vm := BuildLandingViewModel("Back office", "", dm.Datasets())
	if len(vm.Tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(vm.Tables))
	}
	agents := vm.Tables[0]
	if agents.Records != "1,200" || agents.ColumnCount != 2 || agents.Categories != "Sales, Partners" {
		t.Errorf("agents info = %+v", agents)
	}
	if agents.URL.String() != "/table?table=agents" {
		t.Errorf("agents URL = %q", agents.URL.String())
	}
	if !vm.Tables[1].System {
		t.Errorf("_columns not flagged as system")
	}
}

func TestBuildErrorViewModel(t *testing.T) {
	vm := BuildErrorViewModel(404, "Table 'ledgr' not found", "ledger")
	if vm.StatusText != "Not Found" || vm.SuggestionURL.String() != "/table?table=ledger" {
		t.Errorf("error vm = %+v", vm)
	}
}
