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

// Package datasources loads rows from CSV, JSON, XLSX and SQLite sources
// and turns dataset declarations into registered datasets.
package datasources

import (
	"context"
	"errors"

	"github.com/google/tabula/core/rows"
)

var (
	// ErrUnknownSource is returned for a source type without a loader.
	ErrUnknownSource = errors.New("unknown source type")
	// ErrEmptySource is returned when a source has no header row.
	ErrEmptySource = errors.New("source is empty")
)

// ColumnType represents the data type detected for a column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat64
	TypeBool
	TypeDatetime
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeDatetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Source locates the data of one dataset.
type Source struct {
	Path  string
	Query string // sqlite only
	Sheet string // xlsx only, defaults to the first sheet
}

// Data is what a loader produces: the field names in source order and the
// rows.
type Data struct {
	Fields []string
	Rows   []rows.Row
}

// DataSourceLoader is the interface that all data source loaders must implement.
// Built-in loaders exist for "csv", "json", "xlsx" and "sqlite"; callers
// can register more with Manager.RegisterLoader.
type DataSourceLoader interface {
	// SourceType returns the type identifier used in config (e.g. "csv").
	SourceType() string

	// Load reads every row of the source.
	Load(ctx context.Context, src Source) (*Data, error)
}
