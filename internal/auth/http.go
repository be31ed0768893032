package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Gateway header names. net/http canonicalizes lookups, so matching is
// case-insensitive.
const (
	HeaderBaseURL = "X-Hudu-Base-URL"
	HeaderAPIKey  = "X-Hudu-API-Key"
)

// FromHeaders extracts gateway credentials. Empty values are returned as
// empty strings and treated as missing by Complete.
func FromHeaders(h http.Header) Credentials {
	return Credentials{
		BaseURL: strings.TrimSpace(h.Get(HeaderBaseURL)),
		APIKey:  strings.TrimSpace(h.Get(HeaderAPIKey)),
	}
}

type missingCredentialsBody struct {
	Error    string   `json:"error"`
	Message  string   `json:"message"`
	Required []string `json:"required"`
}

// GatewayMiddleware rejects requests without both credential headers with a
// 401 before the MCP layer sees them, and otherwise attaches the credentials
// to the request context.
func GatewayMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			creds := FromHeaders(r.Header)
			if !creds.Complete() {
				logger.Warn("gateway mode: missing required credentials in headers",
					"has_base_url", creds.BaseURL != "",
					"has_api_key", creds.APIKey != "",
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(missingCredentialsBody{
					Error:    "Missing credentials",
					Message:  "Gateway mode requires " + HeaderBaseURL + " and " + HeaderAPIKey + " headers",
					Required: []string{HeaderBaseURL, HeaderAPIKey},
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCredentials(r.Context(), creds)))
		})
	}
}
