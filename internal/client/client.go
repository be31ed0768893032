package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const apiPrefix = "/api/v1"

// Record is a single Hudu entity as returned by the API.
type Record map[string]any

// Endpoint describes one Hudu collection: its URL path and the JSON keys the
// API uses to wrap single records and lists.
type Endpoint struct {
	Path        string
	SingularKey string
	PluralKey   string
}

// Client wraps the Hudu REST API for one base URL / API key pair.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures the client.
type Option func(*Client)

// NewClient creates a new Hudu client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL sets the Hudu instance URL. The /api/v1 suffix is optional.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		u = strings.TrimRight(u, "/")
		u = strings.TrimSuffix(u, apiPrefix)
		c.baseURL = u
	}
}

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// BaseURL returns the normalized instance URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns one page of records in server order.
func (c *Client) List(ctx context.Context, ep Endpoint, params map[string]any) ([]Record, error) {
	query, err := encodeParams(params)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", ep.Path, err)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/"+ep.Path, query, nil, &raw); err != nil {
		return nil, err
	}

	records, err := decodeList(raw, ep.PluralKey)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ep.Path, err)
	}
	return records, nil
}

// Get returns a single record. A missing record surfaces as an *APIError
// with status 404.
func (c *Client) Get(ctx context.Context, ep Endpoint, id int64) (Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, recordPath(ep, id), nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw, ep.SingularKey)
}

// Create posts a new record and returns what the server stored.
func (c *Client) Create(ctx context.Context, ep Endpoint, data map[string]any) (Record, error) {
	var raw json.RawMessage
	body := map[string]any{ep.SingularKey: data}
	if err := c.do(ctx, http.MethodPost, "/"+ep.Path, nil, body, &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw, ep.SingularKey)
}

// Update applies a partial update to an existing record.
func (c *Client) Update(ctx context.Context, ep Endpoint, id int64, data map[string]any) (Record, error) {
	var raw json.RawMessage
	body := map[string]any{ep.SingularKey: data}
	if err := c.do(ctx, http.MethodPut, recordPath(ep, id), nil, body, &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw, ep.SingularKey)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, ep Endpoint, id int64) error {
	return c.do(ctx, http.MethodDelete, recordPath(ep, id), nil, nil, nil)
}

// Archive archives a record.
func (c *Client) Archive(ctx context.Context, ep Endpoint, id int64) error {
	return c.do(ctx, http.MethodPut, recordPath(ep, id)+"/archive", nil, nil, nil)
}

// Unarchive restores an archived record.
func (c *Client) Unarchive(ctx context.Context, ep Endpoint, id int64) error {
	return c.do(ctx, http.MethodPut, recordPath(ep, id)+"/unarchive", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out *json.RawMessage) error {
	if c.baseURL == "" {
		return errors.New("hudu client: base URL not configured")
	}

	reqURL := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    errorMessage(data),
		}
	}

	if out != nil {
		*out = data
	}
	return nil
}

func recordPath(ep Endpoint, id int64) string {
	return "/" + ep.Path + "/" + strconv.FormatInt(id, 10)
}

// encodeParams turns scalar filter values into a query string. Nil values
// are skipped so optional MCP arguments can be passed through unchanged.
func encodeParams(params map[string]any) (url.Values, error) {
	q := url.Values{}
	for k, v := range params {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			q.Set(k, val)
		case bool:
			q.Set(k, strconv.FormatBool(val))
		case float64:
			q.Set(k, strconv.FormatFloat(val, 'f', -1, 64))
		case int:
			q.Set(k, strconv.Itoa(val))
		case int64:
			q.Set(k, strconv.FormatInt(val, 10))
		case json.Number:
			q.Set(k, val.String())
		default:
			return nil, fmt.Errorf("parameter %q: unsupported type %T", k, v)
		}
	}
	return q, nil
}

// decodeList accepts either a bare JSON array or an object wrapping the
// array under key.
func decodeList(raw json.RawMessage, key string) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []Record{}, nil
	}

	if trimmed[0] == '[' {
		records := []Record{}
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	inner, ok := wrapped[key]
	if !ok {
		return nil, fmt.Errorf("response has no %q field", key)
	}
	records := []Record{}
	if err := json.Unmarshal(inner, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// decodeRecord unwraps {"<key>": {...}} when present, else returns the object.
func decodeRecord(raw json.RawMessage, key string) (Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var obj Record
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if inner, ok := obj[key].(map[string]any); ok {
		return Record(inner), nil
	}
	return obj, nil
}
