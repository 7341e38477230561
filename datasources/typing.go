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
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/values"
)

// defaultSampleSize is the number of rows sampled for type detection.
const defaultSampleSize = 100

var timeLayouts = []string{time.DateOnly, time.DateTime, time.RFC3339}

// fromRecords builds typed rows from text records. Column types are detected
// from the first sampleSize rows; cells that do not parse as their column's
// type are kept as text.
func fromRecords(headers []string, records [][]string, sampleSize int) *Data {
	fields := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		fields[i] = h
	}

	types := detectColumnTypes(len(fields), records, sampleSize)

	rs := make([]rows.Row, 0, len(records))
	for _, record := range records {
		row := make(rows.Row, len(fields))
		for i, field := range fields {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			row[field] = parseCell(types[i], value)
		}
		rs = append(rs, row)
	}
	return &Data{Fields: fields, Rows: rs}
}

// detectColumnTypes samples data to pick the narrowest type that every
// non-empty sampled value of a column parses as.
func detectColumnTypes(numCols int, dataRows [][]string, sampleSize int) []ColumnType {
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}
	rowsToSample := min(sampleSize, len(dataRows))

	types := make([]ColumnType, numCols)
	for i := range types {
		var sample []string
		for j := 0; j < rowsToSample; j++ {
			if i >= len(dataRows[j]) {
				continue
			}
			if value := strings.TrimSpace(dataRows[j][i]); value != "" {
				sample = append(sample, value)
			}
		}
		types[i] = detectColumnType(sample)
	}
	return types
}

func detectColumnType(sample []string) ColumnType {
	if len(sample) == 0 {
		return TypeString
	}
	for _, c := range []struct {
		t  ColumnType
		ok func(string) bool
	}{
		{TypeInt64, isInt},
		{TypeFloat64, isFloat},
		{TypeBool, isBool},
		{TypeDatetime, isTime},
	} {
		if all(sample, c.ok) {
			return c.t
		}
	}
	return TypeString
}

func all(sample []string, ok func(string) bool) bool {
	for _, s := range sample {
		if !ok(s) {
			return false
		}
	}
	return true
}

// hasLeadingZero reports values like phone numbers or account codes whose
// leading zeros would be lost as numbers.
func hasLeadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

func isInt(s string) bool {
	if hasLeadingZero(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	if hasLeadingZero(s) {
		return false
	}
	// ParseFloat accepts "NaN" and "Inf".
	if strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) && r != 'e' && r != 'E' }) >= 0 {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isBool(s string) bool {
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}

func isTime(s string) bool {
	_, ok := parseTime(s)
	return ok
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseCell converts one trimmed cell. Empty cells of typed columns are
// null.
func parseCell(t ColumnType, value string) values.Value {
	if t == TypeString {
		return values.String(value)
	}
	if value == "" {
		return values.Null()
	}
	switch t {
	case TypeInt64:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return values.Int(n)
		}
	case TypeFloat64:
		if f, err := strconv.ParseFloat(value, 64); err == nil && isFloat(value) {
			return values.Float(f)
		}
	case TypeBool:
		if isBool(value) {
			return values.Bool(strings.EqualFold(value, "true"))
		}
	case TypeDatetime:
		if ts, ok := parseTime(value); ok {
			return values.Datetime(ts)
		}
	}
	return values.String(value)
}
