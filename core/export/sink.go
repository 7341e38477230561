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
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// ServeHTTP delivers s encoded with e as a file download named
// "export.<ext>".
func ServeHTTP(w http.ResponseWriter, e Exporter, s Sheet) error {
	data, err := Bytes(e, s)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", e.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", FileName(e)))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

// WriteFile writes s encoded with e to path and returns the path written.
// An empty path writes FileName(e) in the working directory; a directory
// path writes FileName(e) inside it.
func WriteFile(path string, e Exporter, s Sheet) (string, error) {
	if path == "" {
		path = FileName(e)
	} else if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, FileName(e))
	}

	data, err := Bytes(e, s)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
