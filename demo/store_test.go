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

package demo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/tables"
)

func newDemo(t *testing.T) (*models.DataModel, *Store) {
	t.Helper()
	dm, store, err := NewDataModel()
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) }
	return dm, store
}

func TestDatasets(t *testing.T) {
	dm, _ := newDemo(t)
	assert.Equal(t, []string{BankAccounts, Agents, Ledger, Sales, AuditLog, models.ColumnsTableName}, dm.Names())

	for name, want := range map[string]int{BankAccounts: 12, Agents: 12, Ledger: 14, Sales: 28, AuditLog: 2} {
		assert.Equal(t, want, dm.GetTable(name).Len(), name)
	}

	agents := dm.GetTable(Agents)
	row, _, err := agents.Lookup(RecordID(Agents, "AG-01"))
	require.NoError(t, err)
	assert.Equal(t, "01711000101", row.Get("phone").Text())
	col, ok := agents.GetColumn("commission")
	require.True(t, ok)
	assert.Equal(t, "5.00%", col.Cell(row))
}

func TestRecordIDIsStable(t *testing.T) {
	assert.Equal(t, RecordID(Sales, "SL-2001"), RecordID(Sales, "SL-2001"))
	assert.NotEqual(t, RecordID(Sales, "SL-2001"), RecordID(Ledger, "SL-2001"))
}

func TestSalesPriceInTaka(t *testing.T) {
	dm, _ := newDemo(t)
	v := dm.GetTable(Sales).Project(query.State{Page: 1, Search: "SL-2004"})
	require.Len(t, v.Cells, 1)
	// 9,900 USD at 120.
	assert.Contains(t, v.Cells[0], "৳11,88,000.00")
	assert.Contains(t, v.Cells[0], "Hajj Premium")
	assert.Contains(t, v.Cells[0], "CONFIRMED")
}

func TestDeleteRecordsAudit(t *testing.T) {
	dm, store := newDemo(t)
	key := RecordID(BankAccounts, "BA-009")

	require.NoError(t, dm.GetTable(BankAccounts).Invoke(key, tables.ActionDelete))

	table := dm.GetTable(BankAccounts)
	assert.Equal(t, 11, table.Len())
	_, _, err := table.Lookup(key)
	assert.True(t, errors.Is(err, tables.ErrRowNotFound))
	assert.Len(t, store.Rows(BankAccounts), 11)

	audit := store.Rows(AuditLog)
	require.Len(t, audit, 3)
	last := audit[2]
	assert.Equal(t, "delete", last.Get("action").Text())
	assert.Equal(t, BankAccounts, last.Get("dataset").Text())
	assert.Equal(t, "BA-009", last.Get("row").Text())
	assert.Equal(t, "2024-03-01 10:30:00", last.Get("at").Text())
	assert.Equal(t, 3, dm.GetTable(AuditLog).Len())

	// Rows the store does not own cannot be deleted.
	stale := table.WithRows(append(table.Rows(), audit[0]))
	assert.Error(t, stale.Invoke(audit[0].Key(0), tables.ActionDelete))
}

func TestViewAndEditOnlyAudit(t *testing.T) {
	dm, store := newDemo(t)
	agents := dm.GetTable(Agents)
	key := RecordID(Agents, "AG-03")

	require.NoError(t, agents.Invoke(key, tables.ActionView))
	require.NoError(t, agents.Invoke(key, tables.ActionEdit))

	assert.Equal(t, 12, dm.GetTable(Agents).Len())
	audit := store.Rows(AuditLog)
	require.Len(t, audit, 4)
	assert.Equal(t, "view", audit[2].Get("action").Text())
	assert.Equal(t, "edit", audit[3].Get("action").Text())
	assert.Equal(t, "AG-03", audit[3].Get("row").Text())
}

func TestSalesHaveNoEdit(t *testing.T) {
	dm, _ := newDemo(t)
	err := dm.GetTable(Sales).Invoke(RecordID(Sales, "SL-2001"), tables.ActionEdit)
	assert.True(t, errors.Is(err, tables.ErrUnknownAction))
}

func TestLedgerReconcileToggles(t *testing.T) {
	dm, store := newDemo(t)
	key := RecordID(Ledger, "LG-1004")

	row, _, err := dm.GetTable(Ledger).Lookup(key)
	require.NoError(t, err)
	controls := dm.GetTable(Ledger).Actions().Controls(row)
	require.Len(t, controls, 2)
	assert.Equal(t, "Reconcile", controls[0].Label)

	require.NoError(t, dm.GetTable(Ledger).Invoke(key, "reconcile"))
	row, _, err = dm.GetTable(Ledger).Lookup(key)
	require.NoError(t, err)
	assert.True(t, row.Get("reconciled").AsBool())
	assert.Equal(t, "Unreconcile", dm.GetTable(Ledger).Actions().Controls(row)[0].Label)

	require.NoError(t, dm.GetTable(Ledger).Invoke(key, "reconcile"))
	row, _, err = dm.GetTable(Ledger).Lookup(key)
	require.NoError(t, err)
	assert.False(t, row.Get("reconciled").AsBool())

	audit := store.Rows(AuditLog)
	require.Len(t, audit, 4)
	assert.Equal(t, "marked reconciled", audit[2].Get("detail").Text())
	assert.Equal(t, "marked unreconciled", audit[3].Get("detail").Text())
}

func TestAuditLogHasNoActions(t *testing.T) {
	dm, _ := newDemo(t)
	v := dm.GetTable(AuditLog).Project(query.NewState())
	assert.False(t, v.ShowActions)
}
