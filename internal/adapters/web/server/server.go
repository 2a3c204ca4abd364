package server

import (
	"context"
	"log"
	"net/http"

	"time"

	"github.com/lcalzada-xor/wparse/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/wparse/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server exposes the decoded networks over HTTP.
type Server struct {
	Addr           string
	Store          ports.Storage
	NetworkHandler *handlers.NetworkHandler
	srv            *http.Server
}

// NewServer creates a new web server.
func NewServer(addr string, store ports.Storage) *Server {
	return &Server{
		Addr:           addr,
		Store:          store,
		NetworkHandler: handlers.NewNetworkHandler(store),
	}
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	// Setup Routes
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry
	// "wparse-server" is the name of the operation (span)
	instrumentedHandler := otelhttp.NewHandler(handler, "wparse-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
