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

// Package demo serves the back office of a Hajj and Umrah travel agency:
// bank accounts, agents, the ledger, package sales and an audit log of every
// row action.
package demo

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/values"
)

// Store owns the rows of the demo datasets. Row actions change the rows here
// and publish a fresh table to the data model.
type Store struct {
	mu   sync.Mutex
	dm   *models.DataModel
	rows map[string][]rows.Row
	now  func() time.Time
}

// NewDataModel returns a data model holding every demo dataset and the
// system tables, and the store that owns the demo rows.
func NewDataModel() (*models.DataModel, *Store, error) {
	dm := models.NewDataModel()
	store, err := NewStore(dm)
	if err != nil {
		return nil, nil, err
	}
	models.AddSystemTables(dm)
	return dm, store, nil
}

// NewStore imports the demo datasets and registers them in dm.
func NewStore(dm *models.DataModel) (*Store, error) {
	s := &Store{
		dm:   dm,
		rows: make(map[string][]rows.Row),
		now:  time.Now,
	}
	for _, sp := range definitions {
		rs, err := importRows(sp.name, sp.csv)
		if err != nil {
			return nil, err
		}
		table, err := tables.NewDataTable(rs, sp.columns, sp.config(), s.actions(sp.name))
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", sp.name, err)
		}
		s.rows[sp.name] = rs
		dm.AddDataset(models.Dataset{
			Name:        sp.name,
			Title:       sp.title,
			Description: sp.description,
			Categories:  sp.categories,
			Table:       table,
		})
		log.Printf("demo: %s: %d rows", sp.name, len(rs))
	}
	return s, nil
}

// Rows returns the current rows of a dataset.
func (s *Store) Rows(name string) []rows.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]rows.Row(nil), s.rows[name]...)
}

func (s *Store) actions(name string) tables.Actions {
	switch name {
	case BankAccounts, Agents:
		return tables.Actions{
			OnEdit:   s.edit(name),
			OnDelete: s.delete(name),
			OnView:   s.view(name),
		}
	case Sales:
		return tables.Actions{
			OnDelete: s.delete(name),
			OnView:   s.view(name),
		}
	case Ledger:
		return tables.Actions{Custom: s.ledgerControls}
	}
	return tables.Actions{}
}

func (s *Store) view(name string) tables.RowFunc {
	return func(row rows.Row) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.recordLocked(tables.ActionView, name, row, "viewed")
	}
}

func (s *Store) edit(name string) tables.RowFunc {
	return func(row rows.Row) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.recordLocked(tables.ActionEdit, name, row, "opened for editing")
	}
}

func (s *Store) delete(name string) tables.RowFunc {
	return func(row rows.Row) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := rows.IndexOf(s.rows[name], row.Key(-1))
		if i < 0 {
			return fmt.Errorf("%s: %w", name, tables.ErrRowNotFound)
		}
		s.rows[name] = rows.Without(s.rows[name], i)
		if err := s.publishLocked(name); err != nil {
			return err
		}
		return s.recordLocked(tables.ActionDelete, name, row, "deleted")
	}
}

// ledgerControls offers a single reconcile toggle per entry, plus view.
func (s *Store) ledgerControls(row rows.Row) []tables.Control {
	label, icon := "Reconcile", "✓"
	if row.Get("reconciled").AsBool() {
		label, icon = "Unreconcile", "↺"
	}
	return []tables.Control{
		{Name: "reconcile", Label: label, Icon: icon, Handler: s.toggleReconciled},
		{Name: tables.ActionView, Label: "View", Icon: "👁", Handler: s.view(Ledger)},
	}
}

func (s *Store) toggleReconciled(row rows.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := rows.IndexOf(s.rows[Ledger], row.Key(-1))
	if i < 0 {
		return fmt.Errorf("%s: %w", Ledger, tables.ErrRowNotFound)
	}
	reconciled := !s.rows[Ledger][i].Get("reconciled").AsBool()
	s.rows[Ledger] = rows.Replace(s.rows[Ledger], i, s.rows[Ledger][i].With("reconciled", values.Bool(reconciled)))
	if err := s.publishLocked(Ledger); err != nil {
		return err
	}
	detail := "marked reconciled"
	if !reconciled {
		detail = "marked unreconciled"
	}
	return s.recordLocked("reconcile", Ledger, row, detail)
}

// recordLocked appends an audit entry and publishes the audit log.
func (s *Store) recordLocked(action, dataset string, row rows.Row, detail string) error {
	entry := rows.Row{
		rows.IDField: values.String(uuid.New().String()),
		"ref":        values.String(fmt.Sprintf("AU-%04d", len(s.rows[AuditLog])+1)),
		"at":         values.Datetime(s.now().Truncate(time.Second)),
		"action":     values.String(action),
		"dataset":    values.String(dataset),
		"row":        values.String(row.Get("ref").Text()),
		"detail":     values.String(detail),
	}
	s.rows[AuditLog] = append(s.rows[AuditLog], entry)
	log.Printf("demo: %s %s/%s: %s", action, dataset, row.Get("ref").Text(), detail)
	return s.publishLocked(AuditLog)
}

// publishLocked replaces the table of a dataset with one over the current
// rows.
func (s *Store) publishLocked(name string) error {
	current := s.dm.GetTable(name)
	if current == nil {
		return fmt.Errorf("%w: %q", models.ErrTableNotFound, name)
	}
	return s.dm.ReplaceTable(name, current.WithRows(s.rows[name]))
}
