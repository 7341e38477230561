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

package rendering

import (
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/google/tabula/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// TableRenderer renders the view models of the HTML surface.
type TableRenderer struct {
	tableTemplate   *template.Template
	landingTemplate *template.Template
	errorTemplate   *template.Template
}

// NewTableRenderer parses the embedded templates.
func NewTableRenderer() (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)
	parse := func(name string) (*template.Template, error) {
		t, err := template.New(name).ParseFS(trustedFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return t, nil
	}

	r := &TableRenderer{}
	var err error
	if r.tableTemplate, err = parse("table.html"); err != nil {
		return nil, err
	}
	if r.landingTemplate, err = parse("landing.html"); err != nil {
		return nil, err
	}
	if r.errorTemplate, err = parse("error.html"); err != nil {
		return nil, err
	}
	return r, nil
}

// Render renders a TableViewModel to the provided writer
func (r *TableRenderer) Render(w io.Writer, vm views.TableViewModel) error {
	return r.tableTemplate.Execute(w, vm)
}

// RenderLanding renders a LandingViewModel to the provided writer
func (r *TableRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}

// RenderError renders an error page.
func (r *TableRenderer) RenderError(w io.Writer, vm views.ErrorViewModel) error {
	return r.errorTemplate.Execute(w, vm)
}
