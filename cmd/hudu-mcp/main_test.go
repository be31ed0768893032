package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistakeknot/hudu-mcp/internal/config"
	"github.com/mistakeknot/hudu-mcp/internal/mcpfilter"
)

func rpc(t *testing.T, s *server.MCPServer, method string, params any) map[string]any {
	t.Helper()
	msg, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": 1, "method": method, "params": params})
	require.NoError(t, err)
	raw, err := json.Marshal(s.HandleMessage(context.Background(), msg))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func listedTools(t *testing.T, s *server.MCPServer) []any {
	t.Helper()
	resp := rpc(t, s, "tools/list", map[string]any{})
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response %v", resp)
	list, _ := result["tools"].([]any)
	return list
}

func TestNewMCPServer_RegistersCatalog(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()

	s := newMCPServer(cfg, logger)
	assert.Len(t, listedTools(t, s), 39)

	resp := rpc(t, s, "resources/list", map[string]any{})
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response %v", resp)
	assert.Len(t, result["resources"], 6)

	cfg.ToolProfile = mcpfilter.ProfileReadOnly
	assert.Len(t, listedTools(t, newMCPServer(cfg, logger)), 18)
}

func TestNewMCPServer_MissingCredentialsIsToolError(t *testing.T) {
	s := newMCPServer(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp := rpc(t, s, "tools/call", map[string]any{"name": "hudu_list_companies", "arguments": map[string]any{}})
	result, ok := resp["result"].(map[string]any)
	require.True(t, ok, "unexpected response %v", resp)
	assert.Equal(t, true, result["isError"])

	content := result["content"].([]any)[0].(map[string]any)
	assert.Contains(t, content["text"], "missing required Hudu credentials")
}
