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

package columns

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/values"
)

// Formatter turns a cell value into display text. The whole row is passed so
// a formatter can combine fields.
type Formatter interface {
	Format(v values.Value, row rows.Row) string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(v values.Value, row rows.Row) string

// Format calls f(v, row).
func (f FormatterFunc) Format(v values.Value, row rows.Row) string {
	return f(v, row)
}

// Column describes one rendered field of a row.
//
// Keys must be unique within a table. Duplicate keys are a programming error
// and are not detected at runtime: the first column with a key wins for
// lookups.
type Column struct {
	Key      string // field read from each row
	Header   string // display label
	Sortable bool
	Render   Formatter // optional; nil shows the raw value text
}

// Cell returns the display text of the column for a row.
func (c Column) Cell(row rows.Row) string {
	v := row.Get(c.Key)
	if c.Render != nil {
		return c.Render.Format(v, row)
	}
	return v.Text()
}

// Raw returns the raw value text of the column for a row.
func (c Column) Raw(row rows.Row) string {
	return row.Get(c.Key).Text()
}

// Headers returns the header labels in column order.
func Headers(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// Keys returns the column keys in order.
func Keys(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}
	return out
}

// Infer builds sortable columns for the given field names, deriving headers
// from the keys ("bank_name" becomes "Bank Name").
func Infer(fields []string) []Column {
	title := cases.Title(language.English)
	out := make([]Column, 0, len(fields))
	for _, f := range fields {
		out = append(out, Column{
			Key:      f,
			Header:   title.String(strings.ReplaceAll(f, "_", " ")),
			Sortable: true,
		})
	}
	return out
}
