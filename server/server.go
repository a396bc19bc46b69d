// Package server exposes the search service over HTTP for the
// presentation layer. Digests are returned as opaque text fields; the
// server never re-interprets them.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"propscout/extract"
	"propscout/models"
	"propscout/services"
)

type Server struct {
	search *services.SearchService
}

func New(search *services.SearchService) *Server {
	return &Server{search: search}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/search", s.handleSearch).Methods("POST")
	r.HandleFunc("/api/trends/{city}", s.handleTrends).Methods("GET")
	r.HandleFunc("/api/runs", s.handleRuns).Methods("GET")
	r.HandleFunc("/api/watches", s.handleListWatches).Methods("GET")
	r.HandleFunc("/api/watches", s.handleAddWatch).Methods("POST")
	return r
}

type searchResponse struct {
	RunID        string `json:"run_id"`
	Status       string `json:"status"`
	RecordsFound int    `json:"records_found"`
	Digest       string `json:"digest"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if query.City == "" {
		http.Error(w, "city is required", http.StatusBadRequest)
		return
	}

	run, err := s.search.Search(r.Context(), query)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		RunID:        run.ID,
		Status:       string(run.Status),
		RecordsFound: run.RecordsFound,
		Digest:       run.Digest,
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]

	run, err := s.search.Trends(r.Context(), city)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		RunID:  run.ID,
		Status: string(run.Status),
		Digest: run.Digest,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	runs, err := s.search.RecentRuns(limit)
	if err != nil {
		log.Printf("Error listing runs: %v", err)
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleListWatches(w http.ResponseWriter, r *http.Request) {
	watches, err := s.search.Watches()
	if err != nil {
		log.Printf("Error listing watches: %v", err)
		http.Error(w, "failed to list watches", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, watches)
}

func (s *Server) handleAddWatch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if query.City == "" {
		http.Error(w, "city is required", http.StatusBadRequest)
		return
	}

	watch, err := s.search.AddWatch(query)
	if err != nil {
		log.Printf("Error adding watch: %v", err)
		http.Error(w, "failed to add watch", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, watch)
}

// writeSearchError maps the agent's error kinds onto statuses: provider
// rejections become 502, everything else 500.
func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	log.Printf("Search error: %v", err)

	var statusErr *extract.StatusError
	if errors.As(err, &statusErr) {
		http.Error(w, "extraction provider rejected the request", http.StatusBadGateway)
		return
	}
	http.Error(w, "search failed", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
