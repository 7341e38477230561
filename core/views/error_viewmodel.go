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
	"net/http"

	"github.com/google/safehtml"

	"github.com/google/tabula/core/query"
)

// ErrorViewModel is the model of an error page.
type ErrorViewModel struct {
	StatusCode    int
	StatusText    string
	Message       string
	Suggestion    string // closest dataset name, if any
	SuggestionURL safehtml.URL
}

// BuildErrorViewModel builds an error page, linking to suggestion when set.
func BuildErrorViewModel(status int, message, suggestion string) ErrorViewModel {
	vm := ErrorViewModel{
		StatusCode: status,
		StatusText: http.StatusText(status),
		Message:    message,
		Suggestion: suggestion,
	}
	if suggestion != "" {
		vm.SuggestionURL = (&query.Query{Path: TablePath}).WithTable(suggestion)
	}
	return vm
}
