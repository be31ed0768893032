// Package service is the facade between MCP handlers and the Hudu API. It
// resolves credentials per call and keeps one client handle per credential
// pair, so concurrent gateway requests for different tenants never share a
// handle.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mistakeknot/hudu-mcp/internal/auth"
	"github.com/mistakeknot/hudu-mcp/internal/cache"
	"github.com/mistakeknot/hudu-mcp/internal/client"
)

// ErrUnsupportedVerb is returned when an entity does not allow the operation.
var ErrUnsupportedVerb = errors.New("operation not supported")

// Backend is the remote collaborator for one credential pair. *client.Client
// implements it.
type Backend interface {
	List(ctx context.Context, ep client.Endpoint, params map[string]any) ([]client.Record, error)
	Get(ctx context.Context, ep client.Endpoint, id int64) (client.Record, error)
	Create(ctx context.Context, ep client.Endpoint, data map[string]any) (client.Record, error)
	Update(ctx context.Context, ep client.Endpoint, id int64, data map[string]any) (client.Record, error)
	Delete(ctx context.Context, ep client.Endpoint, id int64) error
	Archive(ctx context.Context, ep client.Endpoint, id int64) error
	Unarchive(ctx context.Context, ep client.Endpoint, id int64) error
}

// Factory builds a Backend for a credential pair.
type Factory func(creds auth.Credentials) (Backend, error)

// Config holds the facade settings.
type Config struct {
	Mode           auth.Mode
	Credentials    auth.Credentials
	RequestTimeout time.Duration
	ClientTTL      time.Duration
	PoolSize       int
}

// Service is the Hudu facade.
type Service struct {
	cfg     Config
	pool    *cache.Pool[Backend]
	factory Factory
	logger  *slog.Logger
}

// Option configures the service.
type Option func(*Service)

// WithFactory replaces the default client.Client factory.
func WithFactory(f Factory) Option {
	return func(s *Service) {
		s.factory = f
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates the facade. No client is built until the first call.
func New(cfg Config, opts ...Option) *Service {
	if cfg.Mode == "" {
		cfg.Mode = auth.ModeEnv
	}
	s := &Service{
		cfg:    cfg,
		pool:   cache.New[Backend](cfg.ClientTTL, cfg.PoolSize),
		logger: slog.Default(),
	}
	s.factory = s.newClient
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) newClient(creds auth.Credentials) (Backend, error) {
	return client.NewClient(
		client.WithBaseURL(creds.BaseURL),
		client.WithAPIKey(creds.APIKey),
		client.WithTimeout(s.cfg.RequestTimeout),
	), nil
}

// backend returns the handle for the credentials this call runs with,
// constructing it on first use.
func (s *Service) backend(ctx context.Context) (Backend, error) {
	creds, err := auth.Resolve(ctx, s.cfg.Mode, s.cfg.Credentials)
	if err != nil {
		return nil, err
	}
	return s.pool.GetOrCreate(creds.Key(), func() (Backend, error) {
		s.logger.Info("initializing Hudu client", "base_url", creds.BaseURL, "mode", s.cfg.Mode)
		b, err := s.factory(creds)
		if err != nil {
			return nil, fmt.Errorf("initialize Hudu client: %w", err)
		}
		return b, nil
	})
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.RequestTimeout)
}

func (s *Service) prepare(ctx context.Context, e Entity, v Verb) (Backend, error) {
	if !e.Supports(v) {
		return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedVerb, v, e.Name)
	}
	return s.backend(ctx)
}

// List returns one page of records. Nil filters return the server's default page.
func (s *Service) List(ctx context.Context, e Entity, filters map[string]any) ([]client.Record, error) {
	b, err := s.prepare(ctx, e, VerbList)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	records, err := b.List(ctx, e.Endpoint, filters)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []client.Record{}
	}
	return records, nil
}

// Get returns one record by ID.
func (s *Service) Get(ctx context.Context, e Entity, id int64) (client.Record, error) {
	b, err := s.prepare(ctx, e, VerbGet)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return b.Get(ctx, e.Endpoint, id)
}

// Create creates a record. data must not carry an id.
func (s *Service) Create(ctx context.Context, e Entity, data map[string]any) (client.Record, error) {
	b, err := s.prepare(ctx, e, VerbCreate)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return b.Create(ctx, e.Endpoint, data)
}

// Update applies a partial update. data must not carry an id.
func (s *Service) Update(ctx context.Context, e Entity, id int64, data map[string]any) (client.Record, error) {
	b, err := s.prepare(ctx, e, VerbUpdate)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return b.Update(ctx, e.Endpoint, id, data)
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, e Entity, id int64) error {
	b, err := s.prepare(ctx, e, VerbDelete)
	if err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return b.Delete(ctx, e.Endpoint, id)
}

// Archive archives a record.
func (s *Service) Archive(ctx context.Context, e Entity, id int64) error {
	b, err := s.prepare(ctx, e, VerbArchive)
	if err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return b.Archive(ctx, e.Endpoint, id)
}

// Unarchive restores an archived record.
func (s *Service) Unarchive(ctx context.Context, e Entity, id int64) error {
	b, err := s.prepare(ctx, e, VerbUnarchive)
	if err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return b.Unarchive(ctx, e.Endpoint, id)
}

// TestConnection lists a single company. Any failure reports false.
func (s *Service) TestConnection(ctx context.Context) bool {
	_, err := s.List(ctx, Companies, map[string]any{"page": 1, "page_size": 1})
	if err != nil {
		s.logger.Debug("connection test failed", "error", err)
		return false
	}
	return true
}

// HasConfiguredCredentials reports whether env-mode credentials are set.
func (s *Service) HasConfiguredCredentials() bool {
	return s.cfg.Credentials.Complete()
}
