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

// Package tui is an interactive terminal browser over one table: search,
// sort by column number, page through and run row actions.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/google/tabula/core/tables"
)

const helpText = "/ search · 1-9 sort · ←/→ page · home/end · ↑/↓ select · e edit · d delete · v view · q quit"

// Model is the bubbletea model of the browser.
type Model struct {
	title string
	view  *tables.TableView

	// refresh returns the current table after a row action changed the data.
	refresh func() *tables.DataTable

	search    textinput.Model
	searching bool
	cursor    int
	status    string
	statusErr bool
	quitting  bool
}

// New creates a browser over tv. refresh may be nil when the rows never
// change.
func New(title string, tv *tables.TableView, refresh func() *tables.DataTable) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.TextStyle = searchStyle
	search.PromptStyle = searchStyle
	search.SetValue(tv.State().Search)
	return Model{title: title, view: tv, refresh: refresh, search: search}
}

// Run starts the browser on the alternate screen and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// TableView returns the instance being browsed.
func (m Model) TableView() *tables.TableView { return m.view }

// Searching reports whether keystrokes edit the search term.
func (m Model) Searching() bool { return m.searching }

// Cursor returns the selected row on the current page.
func (m Model) Cursor() int { return m.cursor }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.searching {
		return m.updateSearch(key)
	}
	return m.updateMain(key)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.view.Search("")
		m.cursor = 0
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != m.view.State().Search {
		m.view.Search(term)
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "/":
		if !m.view.Table().Config().Searchable {
			m.setError("search is disabled for this table")
			return m, nil
		}
		m.searching = true
		m.search.SetValue(m.view.State().Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "left", "h", "pgup":
		m.view.Prev()
		m.cursor = 0
	case "right", "l", "pgdown":
		m.view.Next()
		m.cursor = 0
	case "home", "g":
		m.view.First()
		m.cursor = 0
	case "end", "G":
		m.view.Last()
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.View().Rows)-1 {
			m.cursor++
		}
	case "e":
		m.invoke(tables.ActionEdit)
	case "d":
		m.invoke(tables.ActionDelete)
	case "v":
		m.invoke(tables.ActionView)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.sortBy(int(msg.Runes[0] - '1'))
	}
	return m, nil
}

// sortBy sorts by the column at index i, toggling on repeat.
func (m *Model) sortBy(i int) {
	cols := m.view.Table().Columns()
	if i >= len(cols) {
		m.setError(fmt.Sprintf("there is no column %d", i+1))
		return
	}
	if !m.view.SortBy(cols[i].Key) {
		m.setError(fmt.Sprintf("%s is not sortable", cols[i].Header))
		return
	}
	m.cursor = 0
	st := m.view.State()
	m.status = fmt.Sprintf("sorted by %s %s", cols[i].Header, st.SortDirection)
}

// invoke runs action on the selected row, then picks up the changed data.
func (m *Model) invoke(action string) {
	v := m.view.View()
	if len(v.Keys) == 0 {
		m.setError("no row selected")
		return
	}
	key := v.Keys[min(m.cursor, len(v.Keys)-1)]
	if err := m.view.Invoke(key, action); err != nil {
		m.setError(err.Error())
		return
	}
	m.status = fmt.Sprintf("%s: row %s", action, key)

	if m.refresh != nil {
		if dt := m.refresh(); dt != nil {
			m.view = tables.NewTableViewAt(dt, m.view.State())
		}
	}
	if n := len(m.view.View().Rows); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *Model) setError(msg string) {
	m.status, m.statusErr = msg, true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.view.View()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n")
	switch {
	case m.searching:
		sb.WriteString(m.search.View())
		sb.WriteString("\n")
	case v.State.Search != "":
		sb.WriteString(searchStyle.Render("Search: " + v.State.Search))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTable(v))
	sb.WriteString("\n")
	sb.WriteString(summaryStyle.Render(v.Summary()))
	sb.WriteString("\n")
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		sb.WriteString(style.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render(helpText))
	return sb.String()
}

func (m Model) renderTable(v *tables.View) string {
	headers := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		label := fmt.Sprintf("%d %s", i+1, h.Label)
		if i >= 9 {
			label = h.Label
		}
		if ind := h.Indicator(); ind != "" {
			label += " " + ind
		}
		headers[i] = label
	}
	if v.ShowActions {
		headers = append(headers, "Actions")
	}

	data := make([][]string, len(v.Cells))
	for i, cells := range v.Cells {
		line := append([]string(nil), cells...)
		if v.ShowActions {
			icons := make([]string, 0, len(v.Controls[i]))
			for _, c := range v.Controls[i] {
				icons = append(icons, c.Icon)
			}
			line = append(line, strings.Join(icons, " "))
		}
		data[i] = line
	}

	cursor := m.cursor
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == cursor:
				return selectedStyle
			}
			return cellStyle
		})
	return t.Render()
}
