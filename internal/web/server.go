// Package web serves the JSON API and debug charts for stored analysis
// runs.
package web

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/hepworks/trijet.report/internal/db"
	"github.com/hepworks/trijet.report/internal/httputil"
	"github.com/hepworks/trijet.report/internal/trijet"
)

// Server exposes persisted analysis runs over HTTP.
type Server struct {
	store *db.RunStore
}

// NewServer creates a web server over the given run store.
func NewServer(store *db.RunStore) *Server {
	return &Server{store: store}
}

// ServeMux returns the route table for the run API and debug charts.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/runs", s.listRuns)
	mux.HandleFunc("/api/runs/summary", s.showRunSummary)
	mux.HandleFunc("/api/runs/results", s.listRunResults)
	mux.HandleFunc("/charts/pt", s.ptChartHandler)
	mux.HandleFunc("/charts/disc", s.discChartHandler)
	mux.HandleFunc("/charts/mass", s.massChartHandler)
	return mux
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	runs, err := s.store.ListRuns()
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []*db.AnalysisRun{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) showRunSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		httputil.BadRequest(w, "missing run_id parameter")
		return
	}
	run, err := s.store.GetRun(runID)
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "no such run: "+runID)
		return
	}
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, run)
}

func (s *Server) listRunResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		httputil.BadRequest(w, "missing run_id parameter")
		return
	}
	if _, err := s.store.GetRun(runID); errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "no such run: "+runID)
		return
	} else if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	results, err := s.store.ListResults(runID)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []trijet.Result{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"run_id": runID, "results": results})
}
