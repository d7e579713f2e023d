// Package api serves the generated documents over HTTP for local preview
// of the feed.
package api

import (
	"net/http"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/evcatalyst/happenstance/internal/domain"
	"github.com/evcatalyst/happenstance/internal/store"
)

// Server handles read-only HTTP access to a docs directory.
type Server struct {
	docs *store.Docs
	addr string
}

// New creates a preview server over the given docs directory.
func New(docs *store.Docs, addr string) *Server {
	return &Server{docs: docs, addr: addr}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	log.Info().Str("addr", s.addr).Str("docs", s.docs.Dir()).Msg("starting preview server")
	return http.ListenAndServe(s.addr, s.handler())
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/meta", s.document(store.MetaDoc))
	mux.HandleFunc("GET /api/events", s.document(store.EventsDoc))
	mux.HandleFunc("GET /api/restaurants", s.document(store.RestaurantsDoc))
	mux.HandleFunc("GET /api/pairings", s.pairings)

	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// document serves a generated JSON file verbatim.
func (s *Server) document(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := os.ReadFile(s.docs.Path(name))
		if err != nil {
			writeError(w, http.StatusNotFound, "document not generated yet, run aggregate first")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// pairings extracts just the pairing list from the meta document.
func (s *Server) pairings(w http.ResponseWriter, r *http.Request) {
	var meta struct {
		Pairings []domain.Pairing `json:"pairings"`
	}
	found, err := s.docs.Read(store.MetaDoc, &meta)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "document not generated yet, run aggregate first")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pairings": meta.Pairings,
		"count":    len(meta.Pairings),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
