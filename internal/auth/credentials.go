// Package auth resolves the Hudu base URL / API key pair a request runs with,
// either from process configuration or from gateway-injected headers.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Mode selects where credentials come from.
type Mode string

const (
	// ModeEnv uses one credential pair configured at process start.
	ModeEnv Mode = "env"
	// ModeGateway takes credentials from headers on every HTTP request.
	ModeGateway Mode = "gateway"
)

// ParseMode validates a mode string. Empty means ModeEnv.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeEnv:
		return ModeEnv, nil
	case ModeGateway:
		return ModeGateway, nil
	default:
		return "", fmt.Errorf("invalid auth mode %q: must be %q or %q", s, ModeEnv, ModeGateway)
	}
}

var (
	// ErrMissingCredentials means env mode was started without HUDU_BASE_URL
	// or HUDU_API_KEY.
	ErrMissingCredentials = errors.New("missing required Hudu credentials: HUDU_BASE_URL and HUDU_API_KEY are required")
	// ErrMissingGatewayHeaders means a gateway-mode call carried no credentials.
	ErrMissingGatewayHeaders = errors.New("gateway mode requires " + HeaderBaseURL + " and " + HeaderAPIKey + " headers")
)

// Credentials is a Hudu base URL and API key.
type Credentials struct {
	BaseURL string
	APIKey  string
}

// Complete reports whether both halves are present. Whitespace-only values
// count as missing.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.BaseURL) != "" && strings.TrimSpace(c.APIKey) != ""
}

// Key identifies the pair without exposing the API key.
func (c Credentials) Key() string {
	sum := sha256.Sum256([]byte(c.BaseURL + "\x00" + c.APIKey))
	return hex.EncodeToString(sum[:])
}

// String never prints the API key.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{BaseURL: %q, APIKey: %s}", c.BaseURL, redact(c.APIKey))
}

func redact(s string) string {
	if s == "" {
		return "<empty>"
	}
	return "<redacted>"
}

type contextKey string

const credentialsKey contextKey = "huduCredentials"

// WithCredentials attaches per-request credentials to ctx.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey, c)
}

// FromContext returns credentials attached by WithCredentials.
func FromContext(ctx context.Context) (Credentials, bool) {
	c, ok := ctx.Value(credentialsKey).(Credentials)
	return c, ok
}

// Resolve picks the credentials a call should run with. Request-scoped
// credentials always win; gateway mode never falls back to configured ones.
func Resolve(ctx context.Context, mode Mode, configured Credentials) (Credentials, error) {
	if c, ok := FromContext(ctx); ok && c.Complete() {
		return c, nil
	}
	if mode == ModeGateway {
		return Credentials{}, ErrMissingGatewayHeaders
	}
	if !configured.Complete() {
		return Credentials{}, ErrMissingCredentials
	}
	return configured, nil
}
