package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LoggingMiddleware logs each tool call with a correlation id and duration.
// Argument values are never logged since they can carry passwords.
func LoggingMiddleware(logger *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			log := logger.With("call_id", uuid.NewString(), "tool", req.Params.Name)
			log.Debug("tool call started", "args", len(req.GetArguments()))

			res, err := next(ctx, req)
			switch {
			case err != nil:
				log.Error("tool call failed", "error", err, "duration", time.Since(start))
			case res != nil && res.IsError:
				log.Warn("tool call returned error result", "duration", time.Since(start))
			default:
				log.Info("tool call completed", "duration", time.Since(start))
			}
			return res, err
		}
	}
}
