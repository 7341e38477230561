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
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XlsxLoader implements DataSourceLoader for Excel workbooks. The first row
// of the sheet is the header; column types are inferred like CSV columns
// from the raw cell values.
type XlsxLoader struct {
	SampleSize int
}

// NewXlsxLoader creates a new XLSX loader.
func NewXlsxLoader() *XlsxLoader {
	return &XlsxLoader{}
}

// SourceType returns "xlsx".
func (l *XlsxLoader) SourceType() string {
	return "xlsx"
}

// Load reads src.Sheet, or the first sheet, of the workbook at src.Path.
func (l *XlsxLoader) Load(ctx context.Context, src Source) (*Data, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("xlsx: path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := src.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", src.Path, ErrEmptySource)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %q: %w", src.Path, sheet, err)
	}
	data, err := recordsToData(records, true, l.SampleSize)
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w", src.Path, sheet, err)
	}
	return data, nil
}
