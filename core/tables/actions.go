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

	"github.com/google/tabula/core/rows"
)

// Names of the built-in row actions.
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionView   = "view"
)

// RowFunc is a row action callback. It receives the row exactly as it was
// supplied to the table.
type RowFunc func(row rows.Row) error

// Control is one action affordance rendered for a row.
type Control struct {
	Name    string // identifies the action in requests
	Label   string
	Icon    string
	Handler RowFunc
}

// Actions holds the optional row action callbacks of a table. When Custom is
// set it decides the controls of every row and the built-in callbacks are not
// rendered.
type Actions struct {
	OnEdit   RowFunc
	OnDelete RowFunc
	OnView   RowFunc
	Custom   func(row rows.Row) []Control
}

// Any reports whether at least one callback is supplied.
func (a Actions) Any() bool {
	return a.OnEdit != nil || a.OnDelete != nil || a.OnView != nil || a.Custom != nil
}

// Controls returns the controls for row. Controls without a handler are
// never returned.
func (a Actions) Controls(row rows.Row) []Control {
	if a.Custom != nil {
		var out []Control
		for _, c := range a.Custom(row) {
			if c.Handler != nil {
				out = append(out, c)
			}
		}
		return out
	}

	var out []Control
	if a.OnEdit != nil {
		out = append(out, Control{Name: ActionEdit, Label: "Edit", Icon: "✎", Handler: a.OnEdit})
	}
	if a.OnDelete != nil {
		out = append(out, Control{Name: ActionDelete, Label: "Delete", Icon: "🗑", Handler: a.OnDelete})
	}
	if a.OnView != nil {
		out = append(out, Control{Name: ActionView, Label: "View", Icon: "👁", Handler: a.OnView})
	}
	return out
}

// Invoke runs the named action on the row with the given key. The handler is
// called once; the table itself is left unchanged, callers that own the data
// supply the new rows afterwards.
func (dt *DataTable) Invoke(key, action string) error {
	if !dt.config.Actions {
		return fmt.Errorf("%w: actions are disabled", ErrUnknownAction)
	}
	row, _, err := dt.Lookup(key)
	if err != nil {
		return err
	}
	for _, c := range dt.actions.Controls(row) {
		if c.Name == action {
			return c.Handler(row)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}
