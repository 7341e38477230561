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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  addr: ":9000"
  title: Back office
defaults:
  page_size: 20
datasets:
  - name: accounts
    title: Bank accounts
    source: csv
    path: data/accounts.csv
    categories: [finance]
    exportable: false
    columns:
      - key: bank
        header: Bank
      - key: balance
        header: Balance
        format: taka
        sortable: false
  - name: ledger
    source: sqlite
    path: ledger.db
    query: SELECT * FROM ledger
    page_size: 50
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabula.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, "Back office", c.Server.Title)
	assert.Equal(t, 20, c.Defaults.PageSize)
	require.Len(t, c.Datasets, 2)

	accounts := c.Datasets[0]
	assert.Equal(t, "Bank accounts", accounts.Title)
	assert.Equal(t, []string{"finance"}, accounts.Categories)
	require.Len(t, accounts.Columns, 2)
	assert.True(t, accounts.Columns[0].IsSortable())
	assert.False(t, accounts.Columns[1].IsSortable())
	assert.Equal(t, "taka", accounts.Columns[1].Format)

	cfg := accounts.TableConfig(c.Defaults)
	assert.False(t, cfg.Exportable)
	assert.True(t, cfg.Searchable)
	assert.Equal(t, 20, cfg.PageSize)

	assert.Equal(t, 50, c.Datasets[1].TableConfig(c.Defaults).PageSize)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, c.Server.Addr)
	assert.Equal(t, DefaultTitle, c.Server.Title)
	assert.Equal(t, 10, c.Defaults.PageSize)
	assert.Empty(t, c.Datasets)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TABULA_SERVER_ADDR", "0.0.0.0:8080")
	t.Setenv("TABULA_DEFAULTS_PAGE_SIZE", "25")
	c, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", c.Server.Addr)
	assert.Equal(t, 25, c.Defaults.PageSize)
}

func TestValidate(t *testing.T) {
	_, err := Load(writeConfig(t, `
datasets:
  - name: a
    source: parquet
    path: a.parquet
  - name: a
    source: csv
    path: b.csv
  - name: _columns
    source: sqlite
    path: x.db
  - source: csv
    columns:
      - header: Nameless
`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	for _, want := range []string{
		`source must be one of csv, json, xlsx, sqlite, got "parquet"`,
		`dataset "a": declared twice`,
		"names starting with _ are reserved",
		"sqlite datasets need a query",
		"datasets[3]: name is required",
		"datasets[3]: path is required",
		"columns[0]: key is required",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestTableConfigDefaults(t *testing.T) {
	cfg := DatasetConfig{}.TableConfig(DefaultsConfig{})
	assert.Equal(t, 10, cfg.PageSize)
	assert.True(t, cfg.Pagination)
	assert.True(t, cfg.Actions)
}
