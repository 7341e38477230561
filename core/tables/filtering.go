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

package tables

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterIndices returns the input positions of the rows matching term, in
// input order. A row matches when the lower cased text of any of its fields
// contains the lower cased term. The empty term matches every row.
func (dt *DataTable) FilterIndices(term string) []int {
	if term == "" {
		all := make([]int, len(dt.rows))
		for i := range all {
			all[i] = i
		}
		return all
	}

	needle := cases.Lower(language.Und).String(term)
	indices := make([]int, 0)
	for pos, fields := range dt.texts {
		for _, f := range fields {
			if strings.Contains(f, needle) {
				indices = append(indices, pos)
				break
			}
		}
	}
	return indices
}

// searchTerm returns the term that applies under the table configuration.
func (dt *DataTable) searchTerm(term string) string {
	if !dt.config.Searchable {
		return ""
	}
	return term
}
