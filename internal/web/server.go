package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tarkov-price-sync/internal/engine"
	"tarkov-price-sync/internal/logger"
)

// Server exposes the daemon's operational endpoints: liveness, the refresh
// engine's status snapshot, and Prometheus metrics.
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates the ops server for the given engine.
func NewServer(eng *engine.Engine, port int) *Server {
	router := mux.NewRouter()
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/status", handleStatus(eng)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		port: port,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	logger.GetLogger().WithFields(map[string]interface{}{
		"port":      s.port,
		"endpoints": []string{"/health", "/status", "/metrics"},
	}).Info("Ops HTTP server starting")

	return s.httpServer.ListenAndServe()
}

// Stop shuts the HTTP server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	logger.GetLogger().WithField("port", s.port).Info("Stopping ops HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleStatus(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, eng.Status())
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		_, _ = w.Write([]byte(`{"error":"encoding failed"}`))
	}
}
