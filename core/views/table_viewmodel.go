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
	"fmt"
	"net/url"
	"strings"

	"github.com/google/safehtml"

	"github.com/google/tabula/core/export"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/tables"
)

// Endpoint paths shared by the view models and the server.
const (
	LandingPath = "/"
	TablePath   = "/table"
	ExportPath  = "/export"
	ActionPath  = "/action"
)

// TableViewModel contains the data from the table formatted for template consumption
type TableViewModel struct {
	Title       string
	Description string
	Table       string // dataset name
	CurrentURL  safehtml.URL

	Headers     []HeaderViewModel
	Rows        []RowViewModel
	ShowActions bool

	// Search form
	Searchable bool
	SearchTerm string
	SearchURL  safehtml.URL // form action
	SearchSort string       // carried through the search form
	SearchDir  string
	ClearURL   safehtml.URL

	// Pagination info
	Paginated bool
	First     PageLink
	Prev      PageLink
	Next      PageLink
	Last      PageLink
	PageLabel string // "Page 2 of 7"
	Summary   string

	Exportable bool
	Exports    []ExportLink

	Empty        bool
	EmptyMessage string

	RenderTimeMs    string
	TimingBreakdown []TimingEntry
}

// HeaderViewModel is one column header.
type HeaderViewModel struct {
	Label     string
	Sortable  bool
	Active    bool
	Indicator string
	SortURL   safehtml.URL // only set when Sortable
	AriaSort  string       // "ascending", "descending" or "none"
}

// RowViewModel is one rendered row.
type RowViewModel struct {
	Key     string
	Cells   []string
	Actions []ActionViewModel
}

// ActionViewModel is a row action button, submitted as a POST form.
type ActionViewModel struct {
	Name  string
	Label string
	Icon  string
	URL   safehtml.URL
}

// PageLink is a pagination control. Disabled links have no URL.
type PageLink struct {
	Label   string
	Page    int
	Enabled bool
	URL     safehtml.URL
}

// ExportLink is a download link for one export format.
type ExportLink struct {
	Format string
	Label  string
	URL    safehtml.URL
}

// TimingEntry is one measured step of a request.
type TimingEntry struct {
	Operation  string
	DurationMs string
}

// BuildViewModel turns a projected page into a template model. q carries the
// dataset name and the request state; v must be the projection of that state.
func BuildViewModel(title, description string, q *query.Query, v *tables.View) TableViewModel {
	// Links are built from the normalized state so they never carry a clamped
	// page or an ignored sort.
	cur := q.At(TablePath)
	cur.State = v.State

	vm := TableViewModel{
		Title:       title,
		Description: description,
		Table:       q.Table,
		CurrentURL:  cur.ToSafeURL(),
		ShowActions: v.ShowActions,
		Searchable:  v.Searchable,
		SearchTerm:  v.State.Search,
		Paginated:   v.Paginated,
		Exportable:  v.Exportable,
		Empty:       v.Empty(),
		Summary:     v.Summary(),
		PageLabel:   fmt.Sprintf("Page %d of %d", v.State.Page, v.TotalPages),
	}

	for _, h := range v.Headers {
		hv := HeaderViewModel{
			Label:     h.Label,
			Sortable:  h.Sortable,
			Active:    h.Active,
			Indicator: h.Indicator(),
			AriaSort:  "none",
		}
		if h.Sortable {
			hv.SortURL = cur.WithSort(h.Key)
		}
		if h.Active {
			hv.AriaSort = "ascending"
			if h.Direction == query.Descending {
				hv.AriaSort = "descending"
			}
		}
		vm.Headers = append(vm.Headers, hv)
	}

	for i, cells := range v.Cells {
		rv := RowViewModel{Key: v.Keys[i], Cells: cells}
		if v.ShowActions {
			for _, c := range v.Controls[i] {
				rv.Actions = append(rv.Actions, ActionViewModel{
					Name:  c.Name,
					Label: c.Label,
					Icon:  c.Icon,
					URL:   cur.At(ActionPath).ToSafeURLWith(url.Values{"row": {v.Keys[i]}, "action": {c.Name}}),
				})
			}
		}
		vm.Rows = append(vm.Rows, rv)
	}

	if v.Searchable {
		vm.SearchURL = safehtml.URLSanitized(TablePath)
		if v.State.SortColumn != "" {
			vm.SearchSort = v.State.SortColumn
			vm.SearchDir = v.State.SortDirection.String()
		}
		vm.ClearURL = cur.WithSearch("")
	}

	if v.Paginated {
		vm.First = pageLink(cur, "« First", v.Nav.First, v.TotalPages)
		vm.Prev = pageLink(cur, "‹ Prev", v.Nav.Prev, v.TotalPages)
		vm.Next = pageLink(cur, "Next ›", v.Nav.Next, v.TotalPages)
		vm.Last = pageLink(cur, "Last »", v.Nav.Last, v.TotalPages)
	}

	if v.Exportable {
		for _, format := range export.Formats() {
			vm.Exports = append(vm.Exports, ExportLink{
				Format: format,
				Label:  strings.ToUpper(format),
				URL:    cur.At(ExportPath).ToSafeURLWith(url.Values{"format": {format}}),
			})
		}
	}

	if vm.Empty {
		vm.EmptyMessage = "No records"
		if v.State.Search != "" {
			vm.EmptyMessage = fmt.Sprintf("No records match %q", v.State.Search)
		}
	}
	return vm
}

func pageLink(q *query.Query, label string, nav tables.NavLink, totalPages int) PageLink {
	l := PageLink{Label: label, Page: nav.Page, Enabled: nav.Enabled}
	if nav.Enabled {
		l.URL = q.WithPage(nav.Page, totalPages)
	}
	return l
}
