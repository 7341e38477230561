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
	"errors"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// maxPDFColumns is the width of the maroto grid; every column takes at least
// one grid unit.
const maxPDFColumns = 12

// ErrTooManyColumns is returned when a sheet is wider than a PDF page grid.
var ErrTooManyColumns = errors.New("too many columns for pdf export")

// PDF writes a landscape A4 document with the sheet as a table.
type PDF struct{}

func (PDF) Format() string      { return "pdf" }
func (PDF) Extension() string   { return "pdf" }
func (PDF) ContentType() string { return "application/pdf" }

func (PDF) Write(w io.Writer, s Sheet) error {
	if len(s.Headers) > maxPDFColumns {
		return fmt.Errorf("%w: %d > %d", ErrTooManyColumns, len(s.Headers), maxPDFColumns)
	}

	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	if s.Name != "" {
		m.AddRows(row.New(10).Add(
			col.New(12).Add(text.New(s.Name, props.Text{Size: 12, Style: fontstyle.Bold})),
		))
	}

	sizes := gridSizes(len(s.Headers))
	if len(sizes) > 0 {
		headerText := props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		}
		headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
		m.AddRows(tableRow(s.Headers, sizes, headerText, headerCell))

		bodyText := props.Text{Size: 7, Align: align.Left}
		stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
		for i, line := range s.Rows {
			var style *props.Cell
			if i%2 == 1 {
				style = stripe
			}
			m.AddRows(tableRow(line, sizes, bodyText, style))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate pdf: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// gridSizes splits the 12 unit grid between n columns; the first columns
// absorb the remainder.
func gridSizes(n int) []int {
	if n == 0 {
		return nil
	}
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = maxPDFColumns / n
		if i < maxPDFColumns%n {
			sizes[i]++
		}
	}
	return sizes
}

func tableRow(cells []string, sizes []int, style props.Text, cell *props.Cell) core.Row {
	cols := make([]core.Col, len(sizes))
	for i, size := range sizes {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		c := col.New(size).Add(text.New(v, style))
		if cell != nil {
			c = c.WithStyle(cell)
		}
		cols[i] = c
	}
	return row.New(7).Add(cols...)
}
