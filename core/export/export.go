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

// Package export turns the filtered rows of a table into downloadable files
// and delivers them to a sink (an HTTP response or a file).
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DefaultName is the base name of exported files.
const DefaultName = "export"

// ErrUnknownFormat is returned by Lookup for an unregistered format.
var ErrUnknownFormat = errors.New("unknown export format")

// Sheet is the format independent export of a table: a header row and one
// line of cell text per exported row.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Exporter encodes a Sheet in one file format.
type Exporter interface {
	Format() string      // name used in requests, e.g. "csv"
	Extension() string   // file extension without the dot
	ContentType() string // MIME type of the encoded file
	Write(w io.Writer, s Sheet) error
}

var exporters = map[string]Exporter{
	"csv":  CSV{},
	"xlsx": XLSX{},
	"pdf":  PDF{},
}

// Lookup returns the exporter for format. Format names are case
// insensitive; the empty name selects csv.
func Lookup(format string) (Exporter, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	e, ok := exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return e, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileName returns the download name for e, e.g. "export.csv".
func FileName(e Exporter) string {
	return DefaultName + "." + e.Extension()
}

// Bytes encodes s with e into memory.
func Bytes(e Exporter, s Sheet) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
