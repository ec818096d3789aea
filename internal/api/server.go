// Package api exposes the structured log stream over a websocket endpoint.
// The server is optional and only started when the config sets a listen
// address.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"watchrun/internal/logging"
)

type Server struct {
	logger *logging.Logger
	server *http.Server
}

func NewServer(addr string, logger *logging.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/logs", &LogsHandler{Logger: logger})

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves in the background; listen failures are logged, not fatal.
func (s *Server) Start() {
	go func() {
		s.logger.Info("log stream listening", map[string]string{
			"addr": s.server.Addr,
		})
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("log stream server stopped", map[string]string{
				"error": err.Error(),
			})
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
