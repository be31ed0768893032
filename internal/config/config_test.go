package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistakeknot/hudu-mcp/internal/auth"
	"github.com/mistakeknot/hudu-mcp/internal/mcpfilter"
)

var envKeys = []string{
	"HUDU_BASE_URL", "HUDU_API_KEY", "MCP_SERVER_NAME", "MCP_SERVER_VERSION",
	"MCP_TRANSPORT", "MCP_HTTP_PORT", "MCP_HTTP_HOST", "AUTH_MODE", "LOG_LEVEL",
	"LOG_FORMAT", "HUDU_REQUEST_TIMEOUT", "HUDU_CLIENT_TTL", "HUDU_CLIENT_POOL_SIZE",
	"HUDU_TOOL_PROFILE", "MCP_TOOL_PROFILE",
}

// clearEnv unsets every variable Load reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func mapEnv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := FromEnv(mapEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "0.0.0.0:8080", c.Addr())
	require.NoError(t, c.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	c, err := FromEnv(mapEnv(map[string]string{
		"HUDU_BASE_URL":         " https://docs.example.com ",
		"HUDU_API_KEY":          "k",
		"MCP_TRANSPORT":         "HTTP",
		"MCP_HTTP_PORT":         "9090",
		"MCP_HTTP_HOST":         "127.0.0.1",
		"AUTH_MODE":             "gateway",
		"LOG_LEVEL":             "debug",
		"LOG_FORMAT":            "json",
		"HUDU_REQUEST_TIMEOUT":  "5s",
		"HUDU_CLIENT_TTL":       "1h",
		"HUDU_CLIENT_POOL_SIZE": "8",
		"HUDU_TOOL_PROFILE":     "readonly",
	}))
	require.NoError(t, err)
	assert.Equal(t, auth.Credentials{BaseURL: "https://docs.example.com", APIKey: "k"}, c.Credentials)
	assert.Equal(t, TransportHTTP, c.Transport)
	assert.Equal(t, "127.0.0.1:9090", c.Addr())
	assert.Equal(t, auth.ModeGateway, c.AuthMode)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, time.Hour, c.ClientTTL)
	assert.Equal(t, 8, c.PoolSize)
	assert.Equal(t, mcpfilter.ProfileReadOnly, c.ToolProfile)
	require.NoError(t, c.Validate())
}

func TestFromEnv_ReportsEveryBadValue(t *testing.T) {
	_, err := FromEnv(mapEnv(map[string]string{
		"MCP_HTTP_PORT":        "eighty",
		"HUDU_REQUEST_TIMEOUT": "soon",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCP_HTTP_PORT")
	assert.Contains(t, err.Error(), "HUDU_REQUEST_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown transport":  func(c *Config) { c.Transport = "websocket" },
		"bad port":           func(c *Config) { c.Transport = TransportHTTP; c.Port = 70000 },
		"gateway over stdio": func(c *Config) { c.AuthMode = auth.ModeGateway },
		"unknown log format": func(c *Config) { c.LogFormat = "xml" },
		"negative timeout":   func(c *Config) { c.RequestTimeout = -time.Second },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	c := Default()
	c.Transport = TransportHTTP
	c.AuthMode = auth.ModeGateway
	assert.NoError(t, c.Validate())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MCP_TRANSPORT", "stdio")
	t.Setenv("MCP_HTTP_PORT", "9000")

	c, err := Load([]string{"--transport", "http", "--auth-mode", "gateway", "--request-timeout", "2s"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, TransportHTTP, c.Transport)
	assert.Equal(t, 9000, c.Port)
	assert.Equal(t, auth.ModeGateway, c.AuthMode)
	assert.Equal(t, 2*time.Second, c.RequestTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "hudu.env")
	require.NoError(t, os.WriteFile(path, []byte("HUDU_BASE_URL=https://file.example.com\nHUDU_API_KEY=from-file\nLOG_LEVEL=warn\n"), 0o600))
	t.Setenv("HUDU_API_KEY", "from-env")

	c, err := Load([]string{"--env-file", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", c.Credentials.BaseURL)
	assert.Equal(t, "from-env", c.Credentials.APIKey)
	assert.Equal(t, slog.LevelWarn, c.LogLevel)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(nil, io.Discard)
	require.NoError(t, err)

	_, err = Load([]string{"--env-file", "nope.env"}, io.Discard)
	assert.Error(t, err)
}

func TestLoad_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := Load([]string{"--help"}, &out)
	assert.True(t, errors.Is(err, pflag.ErrHelp))
	assert.Contains(t, out.String(), "--transport")
}

func TestLoad_GatewayRequiresHTTP(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"--auth-mode", "gateway"}, io.Discard)
	assert.Error(t, err)
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	c := Default()
	c.LogFormat = "json"
	c.NewLogger(&buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	c.LogFormat = "simple"
	c.LogLevel = slog.LevelWarn
	l := c.NewLogger(&buf)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
