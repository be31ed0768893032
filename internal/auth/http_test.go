package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayMiddleware_MissingHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"none", nil},
		{"only base url", map[string]string{HeaderBaseURL: "https://a.huducloud.com"}},
		{"only api key", map[string]string{HeaderAPIKey: "k"}},
		{"empty values", map[string]string{HeaderBaseURL: "", HeaderAPIKey: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			GatewayMiddleware(slog.Default())(next).ServeHTTP(rec, req)

			assert.False(t, called, "next handler must not run")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body struct {
				Error    string   `json:"error"`
				Required []string `json:"required"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Missing credentials", body.Error)
			assert.Equal(t, []string{"X-Hudu-Base-URL", "X-Hudu-API-Key"}, body.Required)
		})
	}
}

func TestGatewayMiddleware_AttachesCredentials(t *testing.T) {
	var got Credentials
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	// Header names are matched case-insensitively.
	req.Header.Set("x-hudu-base-url", "https://tenant.huducloud.com")
	req.Header.Set("x-hudu-api-key", "tenant-key")
	rec := httptest.NewRecorder()
	GatewayMiddleware(nil)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, Credentials{BaseURL: "https://tenant.huducloud.com", APIKey: "tenant-key"}, got)
}
