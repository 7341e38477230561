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
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/values"
	"github.com/google/tabula/datasources"
)

//go:embed data/bank_accounts.csv
var bankAccountsCSV string

//go:embed data/agents.csv
var agentsCSV string

//go:embed data/ledger.csv
var ledgerCSV string

//go:embed data/sales.csv
var salesCSV string

//go:embed data/audit_log.csv
var auditLogCSV string

// Dataset names.
const (
	BankAccounts = "bank_accounts"
	Agents       = "agents"
	Ledger       = "ledger"
	Sales        = "sales"
	AuditLog     = "audit_log"
)

// usdToTaka is the fixed rate the sales desk quotes packages at.
const usdToTaka = 120.0

// namespace derives stable record ids from dataset and reference.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/google/tabula/demo"))

// RecordID returns the id of the record with the given reference.
func RecordID(dataset, ref string) string {
	return uuid.NewSHA1(namespace, []byte(dataset+"/"+ref)).String()
}

// definition describes one demo dataset.
type definition struct {
	name        string
	title       string
	description string
	categories  []string
	csv         string
	columns     []columns.Column
	pageSize    int
	actions     bool
}

var dateColumn = columns.Date("02 Jan 2006")

var definitions = []definition{
	{
		name:        BankAccounts,
		title:       "Bank accounts",
		description: "Company accounts with their current balance.",
		categories:  []string{"Finance"},
		csv:         bankAccountsCSV,
		columns: []columns.Column{
			{Key: "ref", Header: "Ref", Sortable: true},
			{Key: "bank", Header: "Bank", Sortable: true},
			{Key: "branch", Header: "Branch", Sortable: true},
			{Key: "account_name", Header: "Account", Sortable: true},
			{Key: "account_no", Header: "Account no."},
			{Key: "balance", Header: "Balance", Sortable: true, Render: columns.Taka()},
			{Key: "opened", Header: "Opened", Sortable: true, Render: dateColumn},
			{Key: "active", Header: "Active", Sortable: true, Render: columns.YesNo()},
		},
		actions: true,
	},
	{
		name:        Agents,
		title:       "Agents",
		description: "Sub-agents selling Hajj and Umrah packages on commission.",
		categories:  []string{"Sales", "Partners"},
		csv:         agentsCSV,
		columns: []columns.Column{
			{Key: "ref", Header: "Ref", Sortable: true},
			{Key: "name", Header: "Name", Sortable: true},
			{Key: "city", Header: "City", Sortable: true},
			{Key: "phone", Header: "Phone"},
			{Key: "commission", Header: "Commission", Sortable: true, Render: columns.Percent(2)},
			{Key: "joined", Header: "Joined", Sortable: true, Render: dateColumn},
			{Key: "active", Header: "Active", Sortable: true, Render: columns.YesNo()},
		},
		actions: true,
	},
	{
		name:        Ledger,
		title:       "Ledger",
		description: "General ledger entries awaiting reconciliation against bank statements.",
		categories:  []string{"Finance"},
		csv:         ledgerCSV,
		columns: []columns.Column{
			{Key: "ref", Header: "Ref", Sortable: true},
			{Key: "date", Header: "Date", Sortable: true, Render: dateColumn},
			{Key: "memo", Header: "Memo", Sortable: true},
			{Key: "account", Header: "Account", Sortable: true},
			{Key: "debit", Header: "Debit", Sortable: true, Render: columns.Taka()},
			{Key: "credit", Header: "Credit", Sortable: true, Render: columns.Taka()},
			{Key: "reconciled", Header: "Reconciled", Sortable: true, Render: columns.YesNo()},
		},
		actions: true,
	},
	{
		name:        Sales,
		title:       "Package sales",
		description: "Hajj and Umrah packages sold through agents, priced in Taka.",
		categories:  []string{"Sales"},
		csv:         salesCSV,
		columns: []columns.Column{
			{Key: "ref", Header: "Ref", Sortable: true},
			{Key: "date", Header: "Date", Sortable: true, Render: dateColumn},
			{Key: "agent", Header: "Agent", Sortable: true},
			{Key: "package", Header: "Package", Sortable: true, Render: columns.Labels(map[string]string{
				"umrah_economy": "Umrah Economy",
				"umrah_premium": "Umrah Premium",
				"umrah_ramadan": "Ramadan Umrah",
				"hajj_standard": "Hajj Standard",
				"hajj_premium":  "Hajj Premium",
			})},
			{Key: "pilgrims", Header: "Pilgrims", Sortable: true, Render: columns.Number(language.English, 0)},
			{Key: "price_usd", Header: "Price", Sortable: true, Render: columns.Converted(usdToTaka, columns.Taka())},
			{Key: "status", Header: "Status", Sortable: true, Render: columns.Upper()},
		},
		pageSize: 10,
		actions:  true,
	},
	{
		name:        AuditLog,
		title:       "Audit log",
		description: "Every action taken on the demo datasets.",
		categories:  []string{"System"},
		csv:         auditLogCSV,
		columns: []columns.Column{
			{Key: "at", Header: "At", Sortable: true, Render: columns.Date("2006-01-02 15:04:05")},
			{Key: "action", Header: "Action", Sortable: true},
			{Key: "dataset", Header: "Dataset", Sortable: true},
			{Key: "row", Header: "Row"},
			{Key: "detail", Header: "Detail"},
		},
		pageSize: 20,
	},
}

// importRows reads an embedded CSV and gives every row a stable id derived
// from its ref.
func importRows(name, csv string) ([]rows.Row, error) {
	data, err := datasources.NewCsvLoader().Read(strings.NewReader(csv))
	if err != nil {
		return nil, fmt.Errorf("failed to import %s CSV: %w", name, err)
	}
	out := make([]rows.Row, len(data.Rows))
	for i, r := range data.Rows {
		out[i] = r.With(rows.IDField, values.String(RecordID(name, r.Get("ref").Text())))
	}
	return out, nil
}

func (s definition) config() tables.Config {
	cfg := tables.DefaultConfig()
	if s.pageSize > 0 {
		cfg.PageSize = s.pageSize
	}
	cfg.Actions = s.actions
	return cfg
}
