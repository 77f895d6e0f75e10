// Package api serves the widget snapshots to the renderer as JSON.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	holdercache "holdermap/cache/holders"
	providercache "holdermap/cache/providers"
	"holdermap/tasks/holders"
	"holdermap/util/log"
)

type Server struct {
	mux        *http.ServeMux
	holderTask *holders.Task
}

func New(holderTask *holders.Task) *Server {
	s := &Server{mux: http.NewServeMux(), holderTask: holderTask}

	s.mux.HandleFunc("/healthz", s.healthz)
	s.mux.HandleFunc("/widgets/holders", s.handleHolders)
	s.mux.HandleFunc("/widgets/holders/refresh", s.handleRefresh)
	s.mux.HandleFunc("/widgets/providers", s.handleProviders)

	return s
}

// Start blocks serving the widget API.
func (s *Server) Start(addr string) error {
	log.Infof("widget API listening on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) Mux() *http.ServeMux { return s.mux }

// handleHolders returns the ranked holder snapshot: the session status for
// conditional loading/error display plus the (holder, position) pairs.
func (s *Server) handleHolders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, holdercache.Get())
}

// handleRefresh is the manual retry action. It only signals the sync task;
// the refreshed snapshot arrives on a later poll of /widgets/holders.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.holderTask.TriggerRefresh()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers, updated := providercache.Get()

	writeJSON(w, struct {
		Providers interface{} `json:"providers"`
		Updated   time.Time   `json:"updated"`
	}{providers, updated})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}{"ok", time.Now().UTC().Format(time.RFC3339)})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
