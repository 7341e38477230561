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

package views

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/safehtml"

	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/query"
)

// LandingViewModel is the model of the landing page.
type LandingViewModel struct {
	Title    string
	Subtitle string
	Tables   []TableInfo
}

// TableInfo describes one dataset on the landing page.
type TableInfo struct {
	Name        string
	Title       string
	Description string
	URL         safehtml.URL
	RecordCount int
	Records     string // humanized RecordCount
	ColumnCount int
	Categories  string
	System      bool
}

// BuildLandingViewModel lists datasets with links to their table pages.
func BuildLandingViewModel(title, subtitle string, datasets []models.Dataset) LandingViewModel {
	vm := LandingViewModel{Title: title, Subtitle: subtitle}
	base := &query.Query{Path: TablePath}
	for _, ds := range datasets {
		info := TableInfo{
			Name:        ds.Name,
			Title:       ds.Title,
			Description: ds.Description,
			URL:         base.WithTable(ds.Name),
			Categories:  strings.Join(ds.Categories, ", "),
			System:      strings.HasPrefix(ds.Name, "_"),
		}
		if info.Title == "" {
			info.Title = ds.Name
		}
		if ds.Table != nil {
			info.RecordCount = ds.Table.Len()
			info.ColumnCount = len(ds.Table.Columns())
		}
		info.Records = humanize.Comma(int64(info.RecordCount))
		vm.Tables = append(vm.Tables, info)
	}
	return vm
}
