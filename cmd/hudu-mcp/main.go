package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/mistakeknot/hudu-mcp/internal/auth"
	"github.com/mistakeknot/hudu-mcp/internal/config"
	"github.com/mistakeknot/hudu-mcp/internal/resources"
	"github.com/mistakeknot/hudu-mcp/internal/service"
	"github.com/mistakeknot/hudu-mcp/internal/tools"
	"github.com/mistakeknot/hudu-mcp/internal/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "hudu-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Stderr)
	if err != nil {
		return err
	}

	// stdout carries the stdio protocol; logs always go to stderr.
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	logger.Info("starting Hudu MCP server",
		"name", cfg.ServerName,
		"version", cfg.ServerVersion,
		"transport", cfg.Transport,
		"auth_mode", cfg.AuthMode,
		"tool_profile", cfg.ToolProfile,
	)
	if cfg.AuthMode == auth.ModeEnv && !cfg.Credentials.Complete() {
		logger.Warn("missing Hudu credentials; tools will return errors until HUDU_BASE_URL and HUDU_API_KEY are configured")
	}

	s := newMCPServer(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportHTTP:
		router := transport.NewRouter(transport.RouterConfig{
			AuthMode: cfg.AuthMode,
			MCP:      transport.NewMCPHandler(s),
			Logger:   logger,
		})
		err = transport.NewHTTPServer(cfg.Addr(), router, logger).Run(ctx)
	default:
		err = transport.ServeStdio(ctx, s, os.Stdin, os.Stdout, logger)
	}
	if err != nil {
		return err
	}
	logger.Info("Hudu MCP server stopped")
	return nil
}

// newMCPServer builds the MCP server with every tool and resource wired to
// a credential-aware Hudu facade.
func newMCPServer(cfg config.Config, logger *slog.Logger) *server.MCPServer {
	svc := service.New(service.Config{
		Mode:           cfg.AuthMode,
		Credentials:    cfg.Credentials,
		RequestTimeout: cfg.RequestTimeout,
		ClientTTL:      cfg.ClientTTL,
		PoolSize:       cfg.PoolSize,
	}, service.WithLogger(logger))

	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions(instructions),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(tools.LoggingMiddleware(logger)),
	)

	n := tools.RegisterAll(s, tools.NewDispatcher(svc, logger), cfg.ToolProfile)
	resources.Register(s, resources.NewReader(svc, logger))
	logger.Debug("registered MCP handlers", "tools", n)
	return s
}
