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

// Package rows defines the opaque record rendered as one table line.
package rows

import (
	"maps"
	"slices"
	"strconv"

	"github.com/google/tabula/core/values"
)

// IDField is the field used as a row's identity when present.
const IDField = "id"

// Row maps field names to values. Rows are treated as immutable once handed
// to a table; use With to derive a modified copy.
type Row map[string]values.Value

// New builds a Row from Go values.
func New(fields map[string]any) Row {
	r := make(Row, len(fields))
	for k, v := range fields {
		r[k] = values.Of(v)
	}
	return r
}

// Get returns the value of a field, or null when the field is absent.
func (r Row) Get(key string) values.Value {
	return r[key]
}

// Key returns the row's stable identity: the text of its id field when
// present and non-null, otherwise its position.
func (r Row) Key(pos int) string {
	if id, ok := r[IDField]; ok && !id.IsNull() {
		if s := id.Text(); s != "" {
			return s
		}
	}
	return strconv.Itoa(pos)
}

// Fields returns the field names in sorted order.
func (r Row) Fields() []string {
	return slices.Sorted(maps.Keys(r))
}

// With returns a copy of the row with one field replaced.
func (r Row) With(key string, v values.Value) Row {
	c := maps.Clone(r)
	if c == nil {
		c = make(Row, 1)
	}
	c[key] = v
	return c
}

// IndexOf returns the position of the row whose key matches, or -1.
func IndexOf(rs []Row, key string) int {
	for i, r := range rs {
		if r.Key(i) == key {
			return i
		}
	}
	return -1
}

// Without returns a new collection with the row at position i removed.
func Without(rs []Row, i int) []Row {
	if i < 0 || i >= len(rs) {
		return slices.Clone(rs)
	}
	out := make([]Row, 0, len(rs)-1)
	out = append(out, rs[:i]...)
	return append(out, rs[i+1:]...)
}

// Replace returns a new collection with the row at position i replaced.
func Replace(rs []Row, i int, r Row) []Row {
	out := slices.Clone(rs)
	if i >= 0 && i < len(out) {
		out[i] = r
	}
	return out
}
