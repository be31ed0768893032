// Package transport exposes the MCP server over stdio or HTTP.
package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mistakeknot/hudu-mcp/internal/auth"
)

const (
	pathMCP    = "/mcp"
	pathHealth = "/health"
)

// RouterConfig wires the HTTP routes.
type RouterConfig struct {
	AuthMode auth.Mode
	// MCP serves the MCP endpoint, usually a streamable HTTP server.
	MCP    http.Handler
	Logger *slog.Logger
	Now    func() time.Time
}

// NewRouter returns the HTTP handler serving /mcp and /health. In gateway
// mode /mcp rejects requests lacking credential headers before the MCP layer
// parses anything.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	mcpHandler := cfg.MCP
	if cfg.AuthMode == auth.ModeGateway {
		mcpHandler = auth.GatewayMiddleware(cfg.Logger)(mcpHandler)
	}
	r.Handle(pathMCP, mcpHandler)

	r.HandleFunc(pathHealth, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"transport": "http",
			"authMode":  string(cfg.AuthMode),
			"timestamp": cfg.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	})

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":     "Not found",
			"endpoints": []string{pathMCP, pathHealth},
		})
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request. Header values are never logged.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
