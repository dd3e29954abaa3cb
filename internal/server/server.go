package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fivec_analysis/internal/handlers"
	"fivec_analysis/internal/transport/auth"
)

type Server struct {
	httpServer *http.Server
}

// NewServer wires routes. When tokenRepo is non-nil the mutating endpoints
// (upload, analyze) and export require a bearer token.
func NewServer(port string, h *handlers.Handlers, tokenRepo auth.TokenRepo) *Server {
	mux := http.NewServeMux()

	if h != nil {
		protect := func(fn http.HandlerFunc) http.Handler {
			if tokenRepo == nil {
				return fn
			}
			return auth.TokenMiddleware(tokenRepo)(fn)
		}

		mux.HandleFunc("/health", h.Health)
		mux.HandleFunc("/scenarios", h.Scenarios)
		mux.HandleFunc("/runs", h.Runs)
		mux.Handle("/upload", protect(h.Upload))
		mux.Handle("/analyze", protect(h.Analyze))
		mux.Handle("/export", protect(h.Export))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:        fmt.Sprintf(":%s", port),
			Handler:     mux,
			ReadTimeout: 15 * time.Second,
			// analyze responds synchronously and can run for minutes
			WriteTimeout: 16 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
