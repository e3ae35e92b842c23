package hints

import (
	"net/http"
	"strings"

	"github.com/hepworks/trijet.report/internal/httputil"
)

// Server exposes the hint corpus over HTTP. Every route requires a
// static bearer token; an empty token disables the service entirely.
type Server struct {
	corpus *Corpus
	token  string
}

// NewServer creates a hints HTTP server over the given corpus.
func NewServer(corpus *Corpus, token string) *Server {
	return &Server{corpus: corpus, token: token}
}

// ServeMux returns the route table for the hints service.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/hints", s.requireToken(s.listHints))
	mux.HandleFunc("/api/hints/get", s.requireToken(s.getHints))
	mux.HandleFunc("/api/hints/search", s.requireToken(s.searchHints))
	return mux
}

func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			httputil.WriteJSONError(w, http.StatusServiceUnavailable, "hints service not configured")
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.token {
			httputil.WriteJSONError(w, http.StatusUnauthorized, "invalid or missing bearer token")
			return
		}
		next(w, r)
	}
}

func (s *Server) listHints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	names, err := s.corpus.List()
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"libraries": names})
}

func (s *Server) getHints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	library := r.URL.Query().Get("library")
	if library == "" {
		httputil.BadRequest(w, "missing library parameter")
		return
	}
	text, err := s.corpus.Get(library)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"library": library, "hints": text})
}

func (s *Server) searchHints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		httputil.BadRequest(w, "missing q parameter")
		return
	}
	results, err := s.corpus.Search(keyword)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []FileMatches{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"keyword": keyword, "results": results})
}
