// Package api exposes a small diagnostic HTTP surface for the server mode:
// archived offers, run history, stats counters and a manual sync trigger.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baxromumarov/offer-sync/internal/archive"
	"github.com/baxromumarov/offer-sync/internal/run"
)

type Server struct {
	router  *chi.Mux
	archive *archive.Store
	runner  *run.Runner
}

func NewServer(store *archive.Store, runner *run.Runner) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		archive: store,
		runner:  runner,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/offers", s.handleListOffers)
	s.router.Get("/runs", s.handleListRuns)
	s.router.Get("/stats", s.handleStats)
	s.router.Post("/sync", s.handleTriggerSync)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
