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

package datasources

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/tables"
)

// ErrUnknownColumn is returned when a declared column names no field of the
// loaded data.
var ErrUnknownColumn = errors.New("unknown column")

// Manager handles loading and caching of data sources.
// Declarations are registered eagerly; data is loaded lazily on demand.
type Manager struct {
	mu sync.RWMutex

	// Declarations indexed by dataset name, and their order
	sources map[string]config.DatasetConfig
	order   []string

	// Loaded data indexed by dataset name - populated lazily
	data map[string]*Data

	// Registered loaders indexed by source type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a manager with the csv, json, xlsx and sqlite loaders
// registered.
func NewManager() *Manager {
	m := &Manager{
		sources: make(map[string]config.DatasetConfig),
		data:    make(map[string]*Data),
		loaders: make(map[string]DataSourceLoader),
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewJSONLoader())
	m.RegisterLoader(NewXlsxLoader())
	m.RegisterLoader(NewSqliteLoader())
	return m
}

// RegisterLoader registers a data source loader for a specific source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the base directory for resolving relative paths.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSources registers dataset declarations. Re-declaring a name drops its
// cached data.
func (m *Manager) AddSources(decls ...config.DatasetConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range decls {
		if _, ok := m.sources[d.Name]; !ok {
			m.order = append(m.order, d.Name)
		}
		m.sources[d.Name] = d
		delete(m.data, d.Name)
	}
}

// GetSourceNames returns the registered names in declaration order.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// GetSource returns the declaration of a dataset.
func (m *Manager) GetSource(name string) (config.DatasetConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.sources[name]
	return d, ok
}

// IsLoaded reports whether the data of a source is cached.
func (m *Manager) IsLoaded(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[name]
	return ok
}

// LoadData loads data for a source by name.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(ctx context.Context, name string) (*Data, error) {
	m.mu.RLock()
	if data, ok := m.data[name]; ok {
		m.mu.RUnlock()
		return data, nil
	}
	decl, ok := m.sources[name]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", name)
	}
	loader, hasLoader := m.loaders[decl.Source]
	baseDir := m.baseDir
	m.mu.RUnlock()

	if !hasLoader {
		return nil, fmt.Errorf("%w %q for source %q", ErrUnknownSource, decl.Source, name)
	}

	data, err := loader.Load(ctx, Source{
		Path:  resolvePath(decl.Path, baseDir),
		Query: decl.Query,
		Sheet: decl.Sheet,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", name, err)
	}

	m.mu.Lock()
	m.data[name] = data
	m.mu.Unlock()

	return data, nil
}

// BuildDataset loads a source and binds its rows to the declared columns.
// Datasets built from declarations carry no row actions.
func (m *Manager) BuildDataset(ctx context.Context, name string, defaults config.DefaultsConfig) (models.Dataset, error) {
	data, err := m.LoadData(ctx, name)
	if err != nil {
		return models.Dataset{}, err
	}
	decl, _ := m.GetSource(name)

	cols, err := BuildColumns(decl.Columns, data.Fields)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("dataset %q: %w", name, err)
	}
	table, err := tables.NewDataTable(data.Rows, cols, decl.TableConfig(defaults), tables.Actions{})
	if err != nil {
		return models.Dataset{}, fmt.Errorf("dataset %q: %w", name, err)
	}

	title := decl.Title
	if title == "" {
		title = name
	}
	return models.Dataset{
		Name:        name,
		Title:       title,
		Description: decl.Description,
		Categories:  decl.Categories,
		Table:       table,
	}, nil
}

// Populate builds every registered dataset and adds it to dm, in
// declaration order. It stops at the first failure.
func (m *Manager) Populate(ctx context.Context, dm *models.DataModel, defaults config.DefaultsConfig) error {
	for _, name := range m.GetSourceNames() {
		ds, err := m.BuildDataset(ctx, name, defaults)
		if err != nil {
			return err
		}
		dm.AddDataset(ds)
	}
	return nil
}

// BuildColumns turns column declarations into columns. Without declarations
// every field becomes a sortable column. Declared keys must name a field.
func BuildColumns(decls []config.ColumnConfig, fields []string) ([]columns.Column, error) {
	if len(decls) == 0 {
		return columns.Infer(fields), nil
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}
	inferred := columns.Infer(fields)
	headers := make(map[string]string, len(inferred))
	for _, c := range inferred {
		headers[c.Key] = c.Header
	}

	cols := make([]columns.Column, 0, len(decls))
	for _, d := range decls {
		if !known[d.Key] {
			if s := closest(d.Key, fields); s != "" {
				return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownColumn, d.Key, s)
			}
			return nil, fmt.Errorf("%w %q", ErrUnknownColumn, d.Key)
		}
		render, err := columns.Named(d.Format)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", d.Key, err)
		}
		header := d.Header
		if header == "" {
			header = headers[d.Key]
		}
		cols = append(cols, columns.Column{
			Key:      d.Key,
			Header:   header,
			Sortable: d.IsSortable(),
			Render:   render,
		})
	}
	return cols, nil
}

// closest returns the candidate nearest to name, if near enough to be a typo.
func closest(name string, candidates []string) string {
	best, bestDist := "", max(2, len(name)/3)+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func resolvePath(path, baseDir string) string {
	if baseDir == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
