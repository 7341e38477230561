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

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSV writes comma separated values, header row first. Fields containing
// commas, quotes or line breaks are quoted.
type CSV struct{}

func (CSV) Format() string      { return "csv" }
func (CSV) Extension() string   { return "csv" }
func (CSV) ContentType() string { return "text/csv; charset=utf-8" }

func (CSV) Write(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// Text returns the CSV encoding of s as a string.
func Text(s Sheet) (string, error) {
	var sb strings.Builder
	if err := (CSV{}).Write(&sb, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}
