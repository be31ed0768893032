// Package resources serves read-only hudu:// views of companies, assets and
// articles.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mistakeknot/hudu-mcp/internal/client"
	"github.com/mistakeknot/hudu-mcp/internal/service"
)

const mimeJSON = "application/json"

// collectionPageSize is the page size used for collection reads.
const collectionPageSize = 100

var (
	ErrInvalidURI          = errors.New("Invalid Hudu URI format")
	ErrTemplateURI         = errors.New("Template URI not supported for reading")
	ErrUnknownResourceType = errors.New("Unknown resource type")
)

var uriPattern = regexp.MustCompile(`^hudu://([^/]+)(?:/(.+))?$`)

// URI is a parsed hudu:// address. ID is empty for collections.
type URI struct {
	Type string
	ID   string
}

// ParseURI splits a hudu:// URI. The literal {id} placeholder is rejected
// before the type is looked at.
func ParseURI(raw string) (URI, error) {
	m := uriPattern.FindStringSubmatch(raw)
	if m == nil {
		return URI{}, fmt.Errorf("%w: %s", ErrInvalidURI, raw)
	}
	if m[2] == "{id}" {
		return URI{}, fmt.Errorf("%w: %s. Please provide a specific ID.", ErrTemplateURI, raw)
	}
	return URI{Type: m[1], ID: m[2]}, nil
}

var types = map[string]service.Entity{
	"companies": service.Companies,
	"assets":    service.Assets,
	"articles":  service.Articles,
}

// Descriptor is one entry of the static resource listing.
type Descriptor struct {
	URI         string
	Name        string
	Description string
}

var descriptors = []Descriptor{
	{"hudu://companies", "All Companies", "List of all companies in Hudu"},
	{"hudu://companies/{id}", "Company by ID", "Get specific company details by ID"},
	{"hudu://assets", "All Assets", "List of all assets in Hudu"},
	{"hudu://assets/{id}", "Asset by ID", "Get specific asset details by ID"},
	{"hudu://articles", "All Articles", "List of all knowledge base articles in Hudu"},
	{"hudu://articles/{id}", "Article by ID", "Get specific article details by ID"},
}

// Source is the read half of the Hudu facade.
type Source interface {
	List(ctx context.Context, e service.Entity, filters map[string]any) ([]client.Record, error)
	Get(ctx context.Context, e service.Entity, id int64) (client.Record, error)
}

// Reader resolves hudu:// URIs against a Source.
type Reader struct {
	src    Source
	logger *slog.Logger
	now    func() time.Time
}

// NewReader creates a Reader.
func NewReader(src Source, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{src: src, logger: logger, now: time.Now}
}

// List returns the static resource listing.
func (r *Reader) List() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

type envelope struct {
	Description string   `json:"description"`
	URI         string   `json:"uri"`
	Data        any      `json:"data"`
	Metadata    metadata `json:"metadata"`
}

type metadata struct {
	Timestamp    string  `json:"timestamp"`
	ResourceType string  `json:"resourceType"`
	ResourceID   *string `json:"resourceId"`
	Count        int     `json:"count"`
}

// Read fetches the data behind uri and returns the JSON envelope text.
func (r *Reader) Read(ctx context.Context, raw string) (string, error) {
	r.logger.Debug("reading resource", "uri", raw)

	u, err := ParseURI(raw)
	if err != nil {
		return "", err
	}
	e, ok := types[u.Type]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownResourceType, u.Type)
	}

	env := envelope{URI: raw}
	env.Metadata.ResourceType = u.Type
	if u.ID == "" {
		records, err := r.src.List(ctx, e, map[string]any{"page_size": collectionPageSize})
		if err != nil {
			return "", err
		}
		if records == nil {
			records = []client.Record{}
		}
		env.Data = records
		env.Description = fmt.Sprintf("List of %d %s", len(records), e.Noun)
		env.Metadata.Count = len(records)
	} else {
		id, err := strconv.ParseInt(u.ID, 10, 64)
		if err != nil || id <= 0 {
			return "", fmt.Errorf("%w: %s: id must be a positive integer", ErrInvalidURI, raw)
		}
		rec, err := r.src.Get(ctx, e, id)
		if err != nil {
			return "", err
		}
		name, _ := rec["name"].(string)
		if name == "" {
			name = "Unknown"
		}
		env.Data = rec
		env.Description = fmt.Sprintf("%s: %s", e.Label, name)
		env.Metadata.ResourceID = &u.ID
		env.Metadata.Count = 1
	}
	env.Metadata.Timestamp = r.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")

	text, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode resource: %w", err)
	}
	return string(text), nil
}

func (r *Reader) handle(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := r.Read(ctx, req.Params.URI)
	if err != nil {
		r.logger.Error("resource read failed", "uri", req.Params.URI, "error", err)
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: mimeJSON, Text: text},
	}, nil
}

// Register adds the static resources plus two templates so that concrete
// ids and unknown types reach the reader.
func Register(s *server.MCPServer, r *Reader) {
	for _, d := range r.List() {
		s.AddResource(mcp.NewResource(d.URI, d.Name,
			mcp.WithResourceDescription(d.Description),
			mcp.WithMIMEType(mimeJSON),
		), r.handle)
	}
	s.AddResourceTemplate(mcp.NewResourceTemplate("hudu://{type}", "Hudu collection",
		mcp.WithTemplateDescription("Collection of Hudu records by type"),
		mcp.WithTemplateMIMEType(mimeJSON),
	), r.handle)
	s.AddResourceTemplate(mcp.NewResourceTemplate("hudu://{type}/{id}", "Hudu record",
		mcp.WithTemplateDescription("Single Hudu record by type and ID"),
		mcp.WithTemplateMIMEType(mimeJSON),
	), r.handle)
}
