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
	"maps"
	"os"
	"slices"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/tabula/core/rows"
	"github.com/google/tabula/core/values"
)

// JSONLoader implements DataSourceLoader for files holding a JSON array of
// objects. Fields are the union of the object keys in sorted order; a key
// missing from an object is null in that row.
type JSONLoader struct{}

// NewJSONLoader creates a new JSON loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// SourceType returns "json".
func (l *JSONLoader) SourceType() string {
	return "json"
}

// Load reads the JSON file at src.Path.
func (l *JSONLoader) Load(ctx context.Context, src Source) (*Data, error) {
	if src.Path == "" {
		return nil, fmt.Errorf("json: path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	data, err := ParseJSON(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path, err)
	}
	return data, nil
}

// ParseJSON decodes a JSON array of objects into rows.
func ParseJSON(content []byte) (*Data, error) {
	list := &structpb.ListValue{}
	if err := protojson.Unmarshal(content, list); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	keys := make(map[string]bool)
	rs := make([]rows.Row, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		record := item.GetStructValue()
		if record == nil {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		row := make(rows.Row, len(record.GetFields()))
		for k, v := range record.GetFields() {
			row[k] = values.FromProto(v)
			keys[k] = true
		}
		rs = append(rs, row)
	}

	return &Data{Fields: slices.Sorted(maps.Keys(keys)), Rows: rs}, nil
}
