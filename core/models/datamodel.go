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

package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/google/tabula/core/tables"
)

// ErrTableNotFound is returned when no dataset is registered under a name.
var ErrTableNotFound = errors.New("table not found")

// Dataset is a named table with the metadata shown on the landing page.
type Dataset struct {
	Name        string
	Title       string
	Description string
	Categories  []string
	Table       *tables.DataTable
}

// DataModel is the registry of datasets served by the application. It is
// safe for concurrent use; tables are immutable so readers never block on a
// writer replacing a table.
type DataModel struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	order    []string // registration order
}

// NewDataModel creates a new DataModel instance
func NewDataModel() *DataModel {
	return &DataModel{
		datasets: make(map[string]*Dataset),
	}
}

// AddTable registers a table under name with no metadata.
func (dm *DataModel) AddTable(name string, table *tables.DataTable) {
	dm.AddDataset(Dataset{Name: name, Title: name, Table: table})
}

// AddDataset registers a dataset, replacing any dataset of the same name.
func (dm *DataModel) AddDataset(ds Dataset) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if _, exists := dm.datasets[ds.Name]; !exists {
		dm.order = append(dm.order, ds.Name)
	}
	dm.datasets[ds.Name] = &ds
	dm.refreshSystemTablesLocked(ds.Name)
}

// GetTable returns a table by name, or nil.
func (dm *DataModel) GetTable(name string) *tables.DataTable {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	if ds, ok := dm.datasets[name]; ok {
		return ds.Table
	}
	return nil
}

// GetDataset returns a copy of the named dataset. The error wraps
// ErrTableNotFound and names the closest registered dataset, if any.
func (dm *DataModel) GetDataset(name string) (Dataset, error) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	ds, ok := dm.datasets[name]
	if !ok {
		if s := suggest(name, dm.order); s != "" {
			return Dataset{}, fmt.Errorf("%w: %q (did you mean %q?)", ErrTableNotFound, name, s)
		}
		return Dataset{}, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return *ds, nil
}

// ReplaceTable swaps the table of a registered dataset, e.g. after its owner
// changed the rows.
func (dm *DataModel) ReplaceTable(name string, table *tables.DataTable) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	ds, ok := dm.datasets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	next := *ds
	next.Table = table
	dm.datasets[name] = &next
	dm.refreshSystemTablesLocked(name)
	return nil
}

// Names returns the dataset names in registration order.
func (dm *DataModel) Names() []string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return append([]string(nil), dm.order...)
}

// Datasets returns copies of all datasets in registration order.
func (dm *DataModel) Datasets() []Dataset {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	out := make([]Dataset, 0, len(dm.order))
	for _, name := range dm.order {
		out = append(out, *dm.datasets[name])
	}
	return out
}

// Suggest returns the registered name closest to name, or "" when nothing is
// close enough to be a likely typo.
func (dm *DataModel) Suggest(name string) string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return suggest(name, dm.order)
}

func suggest(name string, candidates []string) string {
	best, bestDist := "", -1
	needle := strings.ToLower(name)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := len(name) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
