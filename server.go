package main

import (
	"fmt"
	"net/http"

	"github.com/hepworks/trijet.report/internal/db"
	"github.com/hepworks/trijet.report/internal/version"
)

type Server struct {
	store *db.RunStore
}

func NewServer(store *db.RunStore) *Server {
	return &Server{store: store}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.homeHandler)
	mux.HandleFunc("/healthz", s.healthHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	runs, err := s.store.ListRuns()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list runs: %v", err), http.StatusInternalServerError)
		return
	}
	fmt.Fprintf(w, "Trijet report server %s. %d stored runs.\n\n", version.String(), len(runs))
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  GET /api/runs")
	fmt.Fprintln(w, "  GET /api/runs/summary?run_id=<id>")
	fmt.Fprintln(w, "  GET /api/runs/results?run_id=<id>")
	fmt.Fprintln(w, "  GET /charts/{pt,disc,mass}?run_id=<id>")
	fmt.Fprintln(w, "  GET /api/hints[/get?library=<name>|/search?q=<kw>]")
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		http.Error(w, fmt.Sprintf("database unavailable: %v", err), http.StatusServiceUnavailable)
		return
	}
	fmt.Fprintln(w, "ok")
}
