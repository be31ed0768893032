package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mistakeknot/hudu-mcp/internal/auth"
)

const shutdownTimeout = 10 * time.Second

// NewMCPHandler wraps s in a stateless streamable HTTP handler. Credentials
// attached to the request context by the gateway middleware are carried into
// the tool and resource handlers.
func NewMCPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithStateLess(true),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if creds, ok := auth.FromContext(r.Context()); ok {
				return auth.WithCredentials(ctx, creds)
			}
			return ctx
		}),
	)
}

// HTTPServer runs the router until its context is cancelled.
type HTTPServer struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewHTTPServer creates a server for handler on addr.
func NewHTTPServer(addr string, handler http.Handler, logger *slog.Logger) *HTTPServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
		logger: logger,
	}
}

// Run listens on the configured address and blocks until ctx is done, then
// shuts down gracefully.
func (h *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", h.srv.Addr, err)
	}
	return h.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (h *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	h.logger.Info("HTTP transport listening",
		"addr", ln.Addr().String(),
		"mcp", "http://"+ln.Addr().String()+pathMCP,
		"health", "http://"+ln.Addr().String()+pathHealth,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	h.logger.Info("shutting down HTTP transport")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := h.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ServeStdio speaks newline-delimited JSON-RPC over in and out until ctx is
// cancelled or in reaches EOF.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	logger.Info("stdio transport ready")
	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
