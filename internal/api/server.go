// Package api exposes the small admin surface: health, scheduler status,
// and manual scan triggers.

package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"go-gighunt-engine/internal/models"
	"go-gighunt-engine/internal/scheduler"
)

// Trigger is the scheduler surface the API drives.
type Trigger interface {
	ManualScan(ctx context.Context, scanType string) (*models.ScanRun, error)
	ScanCategory(ctx context.Context, key string) (*models.ScanRun, error)
	Status() scheduler.Status
}

// LeadReader serves the recent-top-leads query.
type LeadReader interface {
	QueryTop(ctx context.Context, minScore int, since time.Time, limit int) ([]models.Lead, error)
}

type Server struct {
	trigger Trigger
	leads   LeadReader
	http    *http.Server
}

func NewServer(addr string, trigger Trigger, leads LeadReader) *Server {
	s := &Server{trigger: trigger, leads: leads}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/leads/top", s.handleTopLeads)
	mux.HandleFunc("POST /api/scan/{type}", s.handleScan)
	mux.HandleFunc("POST /api/scan/category/{key}", s.handleScanCategory)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks until the server exits.
func (s *Server) ListenAndServe() error {
	log.Printf("🌐 Admin API listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.trigger.Status())
}

func (s *Server) handleTopLeads(w http.ResponseWriter, r *http.Request) {
	minScore := queryInt(r, "min_score", 60)
	hours := queryInt(r, "hours", 24)
	limit := queryInt(r, "limit", 20)

	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	leads, err := s.leads.QueryTop(r.Context(), minScore, since, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(leads), "leads": leads})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	scanType := r.PathValue("type")
	run, err := s.trigger.ManualScan(r.Context(), scanType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleScanCategory(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	run, err := s.trigger.ScanCategory(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("⚠️ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
