// Package server exposes the analysis pipeline over HTTP. Each request is
// independent and request-scoped; the handler holds no mutable state, so
// concurrent requests are safe by construction.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lyra/internal/analysis"
	"lyra/internal/schema"
)

// maxBodyBytes caps the request body well above the client-side 8000
// character lyrics limit.
const maxBodyBytes = 64 << 10

// statusClientClosedRequest is the nginx-convention status for a request
// the client abandoned mid-flight. Not an error on either side.
const statusClientClosedRequest = 499

// Server wires the analyzer to an http.Server.
type Server struct {
	analyzer        *analysis.Analyzer
	logger          *zap.Logger
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// New builds a Server listening on addr.
func New(addr string, analyzer *analysis.Analyzer, logger *zap.Logger, shutdownTimeout time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	s := &Server{
		analyzer:        analyzer,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.withRequestLogging(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until ctx is canceled, then shuts down gracefully within the
// configured budget.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, body)
}

func writeError(w http.ResponseWriter, status int, body schema.ErrorBody) {
	writeJSON(w, status, body)
}
