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
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

// Summary describes the page position, e.g. "Showing 11-20 of 1,234 rows
// (page 2 of 124)".
func (v *View) Summary() string {
	if v.Filtered == 0 {
		if v.Total > 0 {
			return fmt.Sprintf("No rows match %q (%s rows total)", v.State.Search, humanize.Comma(int64(v.Total)))
		}
		return "No rows"
	}
	s := fmt.Sprintf("Showing %s-%s of %s rows",
		humanize.Comma(int64(v.FirstRow)), humanize.Comma(int64(v.LastRow)), humanize.Comma(int64(v.Filtered)))
	if v.Filtered != v.Total {
		s += fmt.Sprintf(" (filtered from %s)", humanize.Comma(int64(v.Total)))
	}
	if v.Paginated {
		s += fmt.Sprintf(", page %d of %d", v.State.Page, v.TotalPages)
	}
	return s
}

// ToAscii returns the page as a table with ASCII borders followed by the
// summary line. The active sort column carries an arrow in its header.
func (v *View) ToAscii() string {
	headers := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		headers[i] = h.Label
		if ind := h.Indicator(); ind != "" {
			headers[i] += " " + ind
		}
	}
	if v.ShowActions {
		headers = append(headers, "Actions")
	}

	data := make([][]string, len(v.Cells))
	for i, cells := range v.Cells {
		line := append([]string(nil), cells...)
		if v.ShowActions {
			names := make([]string, 0, len(v.Controls[i]))
			for _, c := range v.Controls[i] {
				names = append(names, c.Name)
			}
			line = append(line, strings.Join(names, " "))
		}
		data[i] = line
	}

	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	var sb strings.Builder
	sb.WriteString(t.Render())
	sb.WriteString("\n")
	sb.WriteString(v.Summary())
	sb.WriteString("\n")
	return sb.String()
}
