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

package query

import (
	"net/url"
	"strconv"

	"github.com/google/safehtml"
)

// Query is the URL form of a table view: the page path, the dataset name and
// the view State. A non-empty Prefix namespaces the state parameters
// ("<prefix>.q") so several tables can share one page URL.
type Query struct {
	// Base path (e.g., "/table")
	Path string

	Table  string // dataset being viewed
	Prefix string
	State  State
}

// NewQuery creates a Query from a URL using unprefixed parameters.
func NewQuery(u *url.URL) *Query {
	return NewPrefixedQuery(u, "")
}

// NewPrefixedQuery creates a Query from a URL, reading the state parameters
// under prefix. Malformed values fall back to their defaults: a page that is
// not a positive number becomes 1 and an unknown direction is ascending.
func NewPrefixedQuery(u *url.URL, prefix string) *Query {
	q := &Query{
		Path:   u.Path,
		Prefix: prefix,
		State:  NewState(),
	}

	params := u.Query()
	q.Table = params.Get("table")
	q.State.Search = params.Get(q.param("q"))

	if pageStr := params.Get(q.param("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			q.State.Page = page
		}
	}

	q.State.SortColumn = params.Get(q.param("sort"))
	if q.State.SortColumn != "" {
		q.State.SortDirection = ParseDirection(params.Get(q.param("dir")))
	}
	return q
}

func (q *Query) param(name string) string {
	if q.Prefix == "" {
		return name
	}
	return q.Prefix + "." + name
}

// Clone creates a copy of the Query.
func (q *Query) Clone() *Query {
	clone := *q
	return &clone
}

// At returns a copy of the Query pointing at another path, e.g. the export
// endpoint of the same view.
func (q *Query) At(path string) *Query {
	clone := q.Clone()
	clone.Path = path
	return clone
}

// Values returns the query parameters encoding the Query. Defaults are
// omitted so the initial view has the shortest URL.
func (q *Query) Values() url.Values {
	v := url.Values{}
	if q.Table != "" {
		v.Set("table", q.Table)
	}
	if q.State.Search != "" {
		v.Set(q.param("q"), q.State.Search)
	}
	if q.State.Page > 1 {
		v.Set(q.param("page"), strconv.Itoa(q.State.Page))
	}
	if q.State.SortColumn != "" {
		v.Set(q.param("sort"), q.State.SortColumn)
		v.Set(q.param("dir"), q.State.SortDirection.String())
	}
	return v
}

// ToURL converts the Query back to a URL string.
func (q *Query) ToURL() string {
	return q.toURL(nil)
}

func (q *Query) toURL(extra url.Values) string {
	v := q.Values()
	for key, vals := range extra {
		v[key] = vals
	}
	u := &url.URL{Path: q.Path, RawQuery: v.Encode()}
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL.
func (q *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(q.ToURL())
}

// ToSafeURLWith is ToSafeURL with additional parameters that are not part of
// the view state (export format, row key, action name).
func (q *Query) ToSafeURLWith(extra url.Values) safehtml.URL {
	return safehtml.URLSanitized(q.toURL(extra))
}

// WithSearch returns a URL with the search term applied.
func (q *Query) WithSearch(text string) safehtml.URL {
	next := q.Clone()
	next.State = next.State.ApplySearch(text)
	return next.ToSafeURL()
}

// WithSort returns a URL with a header click on key applied.
func (q *Query) WithSort(key string) safehtml.URL {
	next := q.Clone()
	next.State = next.State.ApplySort(key)
	return next.ToSafeURL()
}

// WithPage returns a URL for page n, clamped into [1, totalPages].
func (q *Query) WithPage(n, totalPages int) safehtml.URL {
	next := q.Clone()
	next.State = next.State.ApplyPage(n, totalPages)
	return next.ToSafeURL()
}

// WithTable returns a URL for another dataset with a fresh view state.
func (q *Query) WithTable(table string) safehtml.URL {
	next := &Query{Path: q.Path, Table: table, Prefix: q.Prefix, State: NewState()}
	return next.ToSafeURL()
}
