// Package config loads server settings from an optional .env file, the
// environment, and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/mistakeknot/hudu-mcp/internal/auth"
	"github.com/mistakeknot/hudu-mcp/internal/mcpfilter"
)

// Transport selects how MCP messages reach the server.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

const defaultEnvFile = ".env"

// Config holds every runtime setting.
type Config struct {
	ServerName    string
	ServerVersion string

	Transport Transport
	Host      string
	Port      int

	AuthMode    auth.Mode
	Credentials auth.Credentials

	LogLevel  slog.Level
	LogFormat string

	RequestTimeout time.Duration
	ClientTTL      time.Duration
	PoolSize       int

	ToolProfile mcpfilter.Profile
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerName:     "hudu-mcp",
		ServerVersion:  "1.0.0",
		Transport:      TransportStdio,
		Host:           "0.0.0.0",
		Port:           8080,
		AuthMode:       auth.ModeEnv,
		LogLevel:       slog.LevelInfo,
		LogFormat:      "simple",
		RequestTimeout: 30 * time.Second,
		ClientTTL:      15 * time.Minute,
		PoolSize:       64,
		ToolProfile:    mcpfilter.ProfileFull,
	}
}

// FromEnv builds a Config from Default overlaid with environment values.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	var errs []error

	set := func(key string, apply func(string) error) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		if err := apply(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	c.Credentials = auth.Credentials{
		BaseURL: strings.TrimSpace(getenv("HUDU_BASE_URL")),
		APIKey:  strings.TrimSpace(getenv("HUDU_API_KEY")),
	}
	set("MCP_SERVER_NAME", func(v string) error { c.ServerName = v; return nil })
	set("MCP_SERVER_VERSION", func(v string) error { c.ServerVersion = v; return nil })
	set("MCP_TRANSPORT", func(v string) error { c.Transport = Transport(strings.ToLower(v)); return nil })
	set("MCP_HTTP_HOST", func(v string) error { c.Host = v; return nil })
	set("MCP_HTTP_PORT", func(v string) (err error) { c.Port, err = strconv.Atoi(v); return err })
	set("AUTH_MODE", func(v string) (err error) { c.AuthMode, err = auth.ParseMode(v); return err })
	set("LOG_LEVEL", func(v string) error { return c.LogLevel.UnmarshalText([]byte(v)) })
	set("LOG_FORMAT", func(v string) error { c.LogFormat = strings.ToLower(v); return nil })
	set("HUDU_REQUEST_TIMEOUT", func(v string) (err error) { c.RequestTimeout, err = time.ParseDuration(v); return err })
	set("HUDU_CLIENT_TTL", func(v string) (err error) { c.ClientTTL, err = time.ParseDuration(v); return err })
	set("HUDU_CLIENT_POOL_SIZE", func(v string) (err error) { c.PoolSize, err = strconv.Atoi(v); return err })
	c.ToolProfile = mcpfilter.ReadProfile(getenv, "HUDU_TOOL_PROFILE")

	return c, errors.Join(errs...)
}

// Load parses args (without the program name), loads the env file, reads
// the environment and applies explicitly set flags on top. It returns
// pflag.ErrHelp when help was requested.
func Load(args []string, stderr io.Writer) (Config, error) {
	fset := pflag.NewFlagSet("hudu-mcp", pflag.ContinueOnError)
	fset.SetOutput(stderr)

	envFile := fset.String("env-file", defaultEnvFile, "dotenv file to load before reading the environment")
	transport := fset.String("transport", string(TransportStdio), "transport: stdio or http")
	host := fset.String("host", "0.0.0.0", "HTTP listen host")
	port := fset.Int("port", 8080, "HTTP listen port")
	authMode := fset.String("auth-mode", string(auth.ModeEnv), "credential source: env or gateway")
	logLevel := fset.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := fset.String("log-format", "simple", "log format: simple or json")
	timeout := fset.Duration("request-timeout", 30*time.Second, "timeout for each Hudu API call")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		if fset.Changed("env-file") || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", *envFile, err)
		}
	}

	c, err := FromEnv(os.Getenv)
	if err != nil {
		return Config{}, err
	}

	var errs []error
	if fset.Changed("transport") {
		c.Transport = Transport(strings.ToLower(*transport))
	}
	if fset.Changed("host") {
		c.Host = *host
	}
	if fset.Changed("port") {
		c.Port = *port
	}
	if fset.Changed("auth-mode") {
		m, err := auth.ParseMode(*authMode)
		errs = append(errs, err)
		c.AuthMode = m
	}
	if fset.Changed("log-level") {
		errs = append(errs, c.LogLevel.UnmarshalText([]byte(*logLevel)))
	}
	if fset.Changed("log-format") {
		c.LogFormat = strings.ToLower(*logFormat)
	}
	if fset.Changed("request-timeout") {
		c.RequestTimeout = *timeout
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	return c, c.Validate()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported transport %q: must be stdio or http", c.Transport)
	}
	if c.Transport == TransportHTTP && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("invalid HTTP port %d", c.Port)
	}
	if c.AuthMode == auth.ModeGateway && c.Transport != TransportHTTP {
		return errors.New("gateway auth mode requires the http transport")
	}
	switch c.LogFormat {
	case "simple", "json":
	default:
		return fmt.Errorf("unsupported log format %q: must be simple or json", c.LogFormat)
	}
	if c.RequestTimeout < 0 || c.ClientTTL < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewLogger builds the process logger writing to w.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
