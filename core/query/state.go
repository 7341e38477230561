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

import "strings"

// Direction is the order of the active sort column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns the URL form of the direction ("asc" or "desc").
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection accepts "desc" (any case) as Descending; anything else is
// Ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") || strings.EqualFold(s, "descending") {
		return Descending
	}
	return Ascending
}

// State is the view state of one table instance. It is a value: every
// transition returns a new State and leaves the receiver untouched.
type State struct {
	Search        string    // free-text filter, empty means no filter
	Page          int       // 1-based
	SortColumn    string    // active sort key, empty means input order
	SortDirection Direction // meaningful only when SortColumn is set
}

// NewState returns the initial state: no search, page 1, unsorted.
func NewState() State {
	return State{Page: 1}
}

// ApplySearch sets the search term. A changed term moves back to page 1.
func (s State) ApplySearch(text string) State {
	if text == s.Search {
		return s
	}
	s.Search = text
	s.Page = 1
	return s
}

// ApplySort activates key ascending, or toggles the direction when key is
// already active. Sorting never goes back to input order.
func (s State) ApplySort(key string) State {
	if key == "" {
		return s
	}
	if s.SortColumn == key {
		s.SortDirection = s.SortDirection.Toggle()
		return s
	}
	s.SortColumn = key
	s.SortDirection = Ascending
	return s
}

// ApplyPage moves to page n clamped into [1, totalPages].
func (s State) ApplyPage(n, totalPages int) State {
	s.Page = ClampPage(n, totalPages)
	return s
}

// ClampPage clamps n into [1, totalPages]. A totalPages below 1 counts as 1.
func ClampPage(n, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if n > totalPages {
		return totalPages
	}
	if n < 1 {
		return 1
	}
	return n
}
