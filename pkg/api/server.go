// pkg/api/server.go
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/SeanOsorio/ETLProjecto/pkg/store"
)

// Server exposes read-only inspection endpoints over the relational store.
// It is not part of the pipeline's critical path.
type Server struct {
	store  *store.Store
	logger *zap.Logger
	router *mux.Router
}

// NewServer creates the inspection API server and wires its routes
func NewServer(st *store.Store, logger *zap.Logger) *Server {
	s := &Server{
		store:  st,
		logger: logger.Named("api"),
		router: mux.NewRouter(),
	}

	s.router.Use(s.logRequests)
	s.router.HandleFunc("/", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/summary", s.handleSummary).Methods("GET")
	s.router.HandleFunc("/filter", s.handleFilter).Methods("GET")
	s.router.HandleFunc("/logs", s.handleLogs).Methods("GET")
	s.router.HandleFunc("/stats/{column}", s.handleColumnStats).Methods("GET")

	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server on the given address until it fails
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("Inspection API listening", zap.String("addr", addr))

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return srv.ListenAndServe()
}

// logRequests logs each request with method, path and duration
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
