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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tabula dev\n", out)
}

func TestViewDemo(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := run(t, "view", "agents", "--search", "sylhet", "--sort", "commission", "--desc")
	require.NoError(t, err)
	assert.Contains(t, out, "Agents")
	assert.Contains(t, out, "Commission ▼")
	assert.Contains(t, out, "Showing 1-2 of 2 rows (filtered from 12), page 1 of 1")
	// Madina Tours (6%) before Noor-e-Madina (4.75%).
	assert.Less(t, strings.Index(out, "Madina Tours"), strings.Index(out, "Noor-e-Madina"))
}

func TestViewErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "view", "agnets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "agents"`)

	_, err = run(t, "view", "agents", "--sort", "phone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "phone" is not sortable`)

	_, err = run(t, "view", "agents", "--sort", "nmae")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "name"`)
}

func TestExportDemo(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "export", "sales", "--search", "madina tours", "--out", dir)
	require.NoError(t, err)
	path := filepath.Join(dir, "export.csv")
	assert.Equal(t, "wrote 4 rows to "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Ref,Date,Agent,Package,Pilgrims,Price,Status", lines[0])
	assert.Equal(t, "SL-2002,2024-01-02,Madina Tours,hajj_standard,2,6800,confirmed", lines[1])

	_, err = run(t, "export", "sales", "--format", "docx")
	assert.Error(t, err)
}

func TestConfiguredDatasets(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fares.csv"), []byte("id,route,fare\n1,DAC-JED,85000\n2,CGP-JED,91000\n3,DAC-MED,88000\n"), 0o644))
	configPath := filepath.Join(dir, "tabula.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
datasets:
  - name: fares
    title: Air fares
    source: csv
    path: fares.csv
    columns:
      - key: route
      - key: fare
        format: taka
`), 0o644))

	out, err := run(t, "--config", configPath, "view", "fares", "--sort", "fare", "--desc")
	require.NoError(t, err)
	assert.Contains(t, out, "Air fares")
	assert.Contains(t, out, "৳91,000.00")
	assert.Less(t, strings.Index(out, "CGP-JED"), strings.Index(out, "DAC-MED"))

	// Demo datasets are only added on request once datasets are configured.
	_, err = run(t, "--config", configPath, "view", "agents")
	assert.Error(t, err)
	_, err = run(t, "--config", configPath, "--demo", "view", "agents")
	assert.NoError(t, err)
}
