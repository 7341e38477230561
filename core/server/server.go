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

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/tabula/core/export"
	"github.com/google/tabula/core/models"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rendering"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
)

// Server represents the application server with all its dependencies
type Server struct {
	dataModel *models.DataModel
	renderer  *rendering.TableRenderer
	title     string
	subtitle  string
}

// NewServer creates a new server with the given data model
func NewServer(dataModel *models.DataModel, title, subtitle string) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &Server{
		dataModel: dataModel,
		renderer:  renderer,
		title:     title,
		subtitle:  subtitle,
	}, nil
}

// TableHandlerResult represents the result of handling a request that did
// not produce a page.
type TableHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
	Suggestion string // closest dataset name for unknown tables
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(views.TablePath, func(w http.ResponseWriter, r *http.Request) {
		if result := s.HandleTableRequest(w, r.URL, w.Header().Set); result != nil {
			s.writeResult(w, result)
		}
	})
	mux.HandleFunc(views.ExportPath, func(w http.ResponseWriter, r *http.Request) {
		if result := s.HandleExportRequest(w, r.URL); result != nil {
			s.writeResult(w, result)
		}
	})
	mux.HandleFunc(views.ActionPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			s.writeResult(w, &TableHandlerResult{StatusCode: http.StatusMethodNotAllowed, Message: "Row actions must be posted"})
			return
		}
		location, result := s.HandleActionRequest(r.URL)
		if result != nil {
			s.writeResult(w, result)
			return
		}
		http.Redirect(w, r, location, http.StatusSeeOther)
	})
	mux.HandleFunc(views.LandingPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != views.LandingPath {
			s.writeResult(w, &TableHandlerResult{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("No page at %s", r.URL.Path)})
			return
		}
		if err := s.HandleLandingRequest(w, w.Header().Set); err != nil {
			s.writeResult(w, &TableHandlerResult{Error: err})
		}
	})
	return mux
}

// lookup resolves the dataset named by q.
func (s *Server) lookup(q *query.Query) (models.Dataset, *TableHandlerResult) {
	if q.Table == "" {
		return models.Dataset{}, &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: "Table parameter is required"}
	}
	ds, err := s.dataModel.GetDataset(q.Table)
	if err != nil || ds.Table == nil {
		return models.Dataset{}, &TableHandlerResult{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("Table '%s' not found", q.Table),
			Suggestion: s.dataModel.Suggest(q.Table),
		}
	}
	return ds, nil
}

// HandleTableRequest processes a table request and writes the response
// Returns an error result if the request is invalid, nil on success
func (s *Server) HandleTableRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *TableHandlerResult {
	timing := NewTimingCollector()

	parseStart := time.Now()
	q := query.NewQuery(requestURL)
	timing.Record("Parse Query", time.Since(parseStart))

	ds, result := s.lookup(q)
	if result != nil {
		return result
	}

	projectStart := time.Now()
	view := ds.Table.Project(q.State)
	timing.Record("Project", time.Since(projectStart))

	vmStart := time.Now()
	viewModel := views.BuildViewModel(ds.Title, ds.Description, q, view)
	timing.Record("Build ViewModel", time.Since(vmStart))

	viewModel.RenderTimeMs = timing.TotalMs()
	viewModel.TimingBreakdown = timing.GetEntries()

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, viewModel); err != nil {
		// The renderer may have written part of the page already.
		log.Printf("Template rendering error: %v", err)
		return nil
	}
	log.Printf("table %s %s: %s ms (%d of %d rows)", q.Table, requestURL.RawQuery, viewModel.RenderTimeMs, view.Filtered, view.Total)
	return nil
}

// HandleLandingRequest processes the landing page request
func (s *Server) HandleLandingRequest(w io.Writer, setHeader func(key, value string)) error {
	setHeader("Content-Type", "text/html; charset=utf-8")
	vm := views.BuildLandingViewModel(s.title, s.subtitle, s.dataModel.Datasets())
	if err := s.renderer.RenderLanding(w, vm); err != nil {
		log.Printf("Landing page rendering error: %v", err)
		return err
	}
	return nil
}

// HandleExportRequest writes the filtered rows of a table as a download.
// The format parameter selects csv (default), xlsx or pdf; rendered=1
// exports the formatted cell text instead of the raw values.
func (s *Server) HandleExportRequest(w http.ResponseWriter, requestURL *url.URL) *TableHandlerResult {
	q := query.NewQuery(requestURL)
	ds, result := s.lookup(q)
	if result != nil {
		return result
	}

	params := requestURL.Query()
	exporter, err := export.Lookup(params.Get("format"))
	if err != nil {
		return &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}

	sheet, err := ds.Table.ExportSheet(q.State, params.Get("rendered") == "1")
	if errors.Is(err, tables.ErrExportDisabled) {
		return &TableHandlerResult{StatusCode: http.StatusForbidden, Message: fmt.Sprintf("Table '%s' is not exportable", q.Table)}
	}
	if err != nil {
		return &TableHandlerResult{Error: err}
	}
	sheet.Name = ds.Name

	if err := export.ServeHTTP(w, exporter, sheet); err != nil {
		log.Printf("export %s as %s: %v", q.Table, exporter.Format(), err)
		return nil
	}
	log.Printf("export %s as %s: %d rows", q.Table, exporter.Format(), len(sheet.Rows))
	return nil
}

// HandleActionRequest runs a row action and returns the table URL to
// redirect to. The row and action parameters name the row key and the
// control; the remaining parameters carry the view state back.
func (s *Server) HandleActionRequest(requestURL *url.URL) (string, *TableHandlerResult) {
	q := query.NewQuery(requestURL)
	ds, result := s.lookup(q)
	if result != nil {
		return "", result
	}

	params := requestURL.Query()
	key, action := params.Get("row"), params.Get("action")
	if key == "" || action == "" {
		return "", &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: "row and action parameters are required"}
	}

	err := ds.Table.Invoke(key, action)
	switch {
	case errors.Is(err, tables.ErrRowNotFound):
		return "", &TableHandlerResult{StatusCode: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, tables.ErrUnknownAction):
		return "", &TableHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error()}
	case err != nil:
		return "", &TableHandlerResult{Error: fmt.Errorf("%s on %s/%s: %w", action, q.Table, key, err)}
	}
	log.Printf("action %s on %s/%s", action, q.Table, key)

	return q.At(views.TablePath).ToURL(), nil
}

// writeResult writes a failed request as an error page.
func (s *Server) writeResult(w http.ResponseWriter, result *TableHandlerResult) {
	status := result.StatusCode
	message := result.Message
	if result.Error != nil {
		log.Printf("request failed: %v", result.Error)
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if message == "" {
			message = "Internal error"
		}
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	vm := views.BuildErrorViewModel(status, message, result.Suggestion)
	if err := s.renderer.RenderError(w, vm); err != nil {
		log.Printf("Error page rendering error: %v", err)
	}
}

// Run serves the routes on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to five seconds.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving on http://%s", strings.TrimPrefix(addr, "http://"))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Printf("Shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
