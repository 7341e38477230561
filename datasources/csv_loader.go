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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CsvLoader implements DataSourceLoader for CSV files. Column types are
// inferred from a sample of the rows.
type CsvLoader struct {
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// NoHeader generates column_1, column_2, ... names instead of reading
	// them from the first record
	NoHeader bool
	// SampleSize is the number of rows sampled for type detection (default: 100)
	SampleSize int
}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{Delimiter: ','}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load reads the CSV file at src.Path.
func (l *CsvLoader) Load(ctx context.Context, src Source) (*Data, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("csv: path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	data, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}
	return data, nil
}

// Read reads CSV data from an io.Reader. Records may be shorter than the
// header; missing cells are empty.
func (l *CsvLoader) Read(r io.Reader) (*Data, error) {
	reader := csv.NewReader(r)
	if l.Delimiter != 0 {
		reader.Comma = l.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return recordsToData(records, !l.NoHeader, l.SampleSize)
}

// recordsToData splits off the header row, or generates one.
func recordsToData(records [][]string, hasHeader bool, sampleSize int) (*Data, error) {
	if len(records) == 0 {
		return nil, ErrEmptySource
	}
	if hasHeader {
		return fromRecords(records[0], records[1:], sampleSize), nil
	}
	width := 0
	for _, r := range records {
		width = max(width, len(r))
	}
	if width == 0 {
		return nil, errors.Join(ErrEmptySource, errors.New("no columns"))
	}
	return fromRecords(make([]string, width), records, sampleSize), nil
}
