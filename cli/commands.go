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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/export"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/tui"
)

// viewFlags select the state of a table view from the command line.
type viewFlags struct {
	search string
	sort   string
	desc   bool
	page   int
}

func (f *viewFlags) register(cmd *cobra.Command, withSort bool) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "only rows containing this text")
	if withSort {
		cmd.Flags().StringVar(&f.sort, "sort", "", "sort by this column key")
		cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
		cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page to show")
	}
}

// apply moves tv to the state described by the flags.
func (f *viewFlags) apply(tv *tables.TableView) error {
	tv.Search(f.search)
	if f.sort != "" {
		if !tv.SortBy(f.sort) {
			if _, ok := tv.Table().GetColumn(f.sort); ok {
				return fmt.Errorf("column %q is not sortable", f.sort)
			}
			keys := sortable(tv.Table())
			if s := closest(f.sort, keys); s != "" {
				return fmt.Errorf("cannot sort by %q (did you mean %q?)", f.sort, s)
			}
			return fmt.Errorf("cannot sort by %q; sortable columns: %v", f.sort, keys)
		}
		if f.desc {
			tv.SortBy(f.sort)
		}
	}
	if f.page > 1 {
		tv.GoToPage(f.page)
	}
	return nil
}

func sortable(dt *tables.DataTable) []string {
	var keys []string
	for _, key := range columns.Keys(dt.Columns()) {
		if dt.IsSortable(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func newViewCommand(a *app) *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "view <dataset>",
		Short: "Print one page of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset(args[0])
			if err != nil {
				return err
			}
			tv := tables.NewTableView(ds.Table)
			if err := flags.apply(tv); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ds.Title)
			fmt.Fprint(out, tv.View().ToAscii())
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var (
		flags    viewFlags
		format   string
		outPath  string
		rendered bool
	)
	cmd := &cobra.Command{
		Use:   "export <dataset>",
		Short: "Write the rows matching a search to a file",
		Long: `Write every row matching --search, in dataset order, as CSV, XLSX or PDF.
Cells hold the raw values unless --rendered is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset(args[0])
			if err != nil {
				return err
			}
			exporter, err := export.Lookup(format)
			if err != nil {
				return fmt.Errorf("%w; formats: %v", err, export.Formats())
			}
			tv := tables.NewTableView(ds.Table)
			if err := flags.apply(tv); err != nil {
				return err
			}
			sheet, err := tv.Export(rendered)
			if err != nil {
				return err
			}
			sheet.Name = ds.Name
			path, err := export.WriteFile(outPath, exporter, sheet)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(sheet.Rows), path)
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, xlsx or pdf")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file or directory (default: ./export.<ext>)")
	cmd.Flags().BoolVar(&rendered, "rendered", false, "export the displayed text instead of the raw values")
	return cmd
}

func newBrowseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <dataset>",
		Short: "Browse a dataset interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			ds, err := a.dataset(name)
			if err != nil {
				return err
			}
			m := tui.New(ds.Title, tables.NewTableView(ds.Table), func() *tables.DataTable {
				return a.dm.GetTable(name)
			})
			return tui.Run(m)
		},
	}
}
