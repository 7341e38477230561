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

// Package cli implements the tabula command line: serve the datasets over
// HTTP, print, export or browse one dataset in the terminal.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/google/tabula/core/config"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/datasources"
	"github.com/google/tabula/demo"
)

// Version is set at build time.
var Version = "dev"

// app holds the state shared by the subcommands of one invocation.
type app struct {
	configFile string
	withDemo   bool

	cfg config.Config
	dm  *models.DataModel
}

// NewRootCommand returns the tabula command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tabula",
		Short: "Tabula serves tabular datasets with search, sort, paging and export",
		Long: `Tabula loads the datasets declared in its config file (CSV, JSON, XLSX or
SQLite) and serves them as searchable, sortable, paginated tables in the
browser or the terminal. Without declared datasets it serves the demo back
office of a Hajj and Umrah travel agency.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip loading for version command
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd.Context())
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./tabula.yaml)")
	root.PersistentFlags().BoolVar(&a.withDemo, "demo", false, "serve the demo datasets next to the configured ones")

	root.AddCommand(newServeCommand(a))
	root.AddCommand(newViewCommand(a))
	root.AddCommand(newExportCommand(a))
	root.AddCommand(newBrowseCommand(a))
	root.AddCommand(newVersionCommand())
	return root
}

// load reads the config and builds the data model.
func (a *app) load(ctx context.Context) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.dm = models.NewDataModel()

	if a.withDemo || len(cfg.Datasets) == 0 {
		if _, err := demo.NewStore(a.dm); err != nil {
			return fmt.Errorf("load demo: %w", err)
		}
	}

	if len(cfg.Datasets) > 0 {
		m := datasources.NewManager()
		if a.configFile != "" {
			m.SetBaseDir(filepath.Dir(a.configFile))
		}
		m.AddSources(cfg.Datasets...)
		if err := m.Populate(ctx, a.dm, cfg.Defaults); err != nil {
			return err
		}
	}

	models.AddSystemTables(a.dm)
	return nil
}

// dataset returns the named dataset; the error suggests the closest name.
func (a *app) dataset(name string) (models.Dataset, error) {
	ds, err := a.dm.GetDataset(name)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w; available: %v", err, a.dm.Names())
	}
	return ds, nil
}

// closest returns the candidate nearest to name, if near enough to be a typo.
func closest(name string, candidates []string) string {
	best, bestDist := "", max(2, len(name)/3)+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tabula %s\n", Version)
		},
	}
}
