// Package api exposes the HTTP surface: manual trigger, last signal,
// health, Prometheus metrics, and the run-result WebSocket stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rsi-rotation/internal/gateway"
	"rsi-rotation/internal/markethours"
	"rsi-rotation/internal/model"
	"rsi-rotation/internal/runner"
	"rsi-rotation/internal/state"
)

// Server holds the collaborators the HTTP handlers need.
type Server struct {
	Runner *runner.Runner
	Store  state.Store
	Hub    *gateway.Hub

	// Evaluations never overlap: concurrent triggers are rejected.
	runMu sync.Mutex
}

// Trigger runs one evaluation, serialized against HTTP-triggered runs.
// The scheduler goes through here so a tick and a manual trigger can
// never evaluate at the same time.
func (s *Server) Trigger(ctx context.Context) (*model.RunResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.Runner.Run(ctx)
}

// NewRouter sets up HTTP routes for the API server.
func (s *Server) NewRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":       "ok",
			"marketOpen":   markethours.IsMarketOpen(time.Now()),
			"marketStatus": markethours.StatusString(time.Now()),
		})
	})

	// Manual trigger, the HTTP analogue of a scheduler tick.
	mux.HandleFunc("/api/v1/run", func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != "POST" {
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
			return
		}
		if !s.runMu.TryLock() {
			http.Error(w, `{"error":"evaluation already in progress"}`, http.StatusConflict)
			return
		}
		defer s.runMu.Unlock()

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		result, err := s.Runner.Run(ctx)
		if err != nil {
			log.Printf("[api] triggered run failed: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"signal":   result.Signal,
			"notify":   result.Notify,
			"reason":   result.NotifyReason,
			"notified": result.Notified,
		})
	})

	// Last persisted signal record.
	mux.HandleFunc("/api/v1/signal", func(w http.ResponseWriter, r *http.Request) {
		setCORS(w)
		w.Header().Set("Content-Type", "application/json")
		rec, err := s.Store.Load(r.Context())
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, `{"error":"no signal recorded yet"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("[api] state load failed: %v", err)
			http.Error(w, `{"error":"state unavailable"}`, http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(rec)
	})

	mux.Handle("/metrics", promhttp.Handler())

	if s.Hub != nil {
		mux.HandleFunc("/api/v1/stream", s.Hub.HandleWS)
	}

	return mux
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
