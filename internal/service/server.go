package service

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server glucosense 本地 HTTP 接口
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func NewServer(addr string, handler http.Handler, logger *zap.Logger) *Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{httpServer: s, logger: logger}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Start() error {
	s.logger.Info("Starting glucosense HTTP server", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping glucosense HTTP server")
	return s.httpServer.Shutdown(ctx)
}
