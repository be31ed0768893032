package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mistakeknot/hudu-mcp/internal/client"
	"github.com/mistakeknot/hudu-mcp/internal/mcpfilter"
	"github.com/mistakeknot/hudu-mcp/internal/service"
)

// ErrUnknownTool is returned for names missing from the dispatch table.
var ErrUnknownTool = errors.New("Unknown tool")

// Facade is the subset of *service.Service the dispatcher calls.
type Facade interface {
	List(ctx context.Context, e service.Entity, filters map[string]any) ([]client.Record, error)
	Get(ctx context.Context, e service.Entity, id int64) (client.Record, error)
	Create(ctx context.Context, e service.Entity, data map[string]any) (client.Record, error)
	Update(ctx context.Context, e service.Entity, id int64, data map[string]any) (client.Record, error)
	Delete(ctx context.Context, e service.Entity, id int64) error
	Archive(ctx context.Context, e service.Entity, id int64) error
	Unarchive(ctx context.Context, e service.Entity, id int64) error
	TestConnection(ctx context.Context) bool
}

// handler returns the payload and the summary message for one tool call.
type handler func(ctx context.Context, args map[string]any) (any, string, error)

// Dispatcher maps tool names to handlers. It is built once and never mutated,
// so concurrent calls share it without locking.
type Dispatcher struct {
	svc      Facade
	logger   *slog.Logger
	handlers map[string]handler
	tools    []server.ServerTool
}

// NewDispatcher builds the dispatch table and tool catalog.
func NewDispatcher(svc Facade, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		svc:      svc,
		logger:   logger,
		handlers: make(map[string]handler),
	}

	d.add(newTool(TestConnectionTool, "Test the connection to Hudu API", nil), d.testConnection)
	for _, s := range schemas {
		for _, v := range s.entity.Verbs() {
			d.add(newTool(ToolName(s.entity, v), s.descs[v], s.fieldsFor(v)), d.entityHandler(s, v))
		}
	}
	return d
}

func (d *Dispatcher) add(tool mcp.Tool, h handler) {
	name := tool.Name
	d.handlers[name] = h
	d.tools = append(d.tools, server.ServerTool{
		Tool: tool,
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return d.Dispatch(ctx, name, req.GetArguments()), nil
		},
	})
}

// Tools returns the full catalog in registration order.
func (d *Dispatcher) Tools() []server.ServerTool {
	out := make([]server.ServerTool, len(d.tools))
	copy(out, d.tools)
	return out
}

// Dispatch runs a tool by name. Failures are returned as error results and
// never as Go errors.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	d.logger.Debug("calling tool", "tool", name)

	h, ok := d.handlers[name]
	if !ok {
		return d.failure(name, fmt.Errorf("%w: %s", ErrUnknownTool, name))
	}
	if args == nil {
		args = map[string]any{}
	}
	data, message, err := h(ctx, args)
	if err != nil {
		return d.failure(name, err)
	}
	text, err := json.Marshal(map[string]any{"message": message, "data": data})
	if err != nil {
		return d.failure(name, fmt.Errorf("encode result: %w", err))
	}
	d.logger.Debug("tool succeeded", "tool", name)
	return mcp.NewToolResultText(string(text))
}

func (d *Dispatcher) failure(name string, err error) *mcp.CallToolResult {
	d.logger.Error("tool execution failed", "tool", name, "error", err)
	text, mErr := json.Marshal(map[string]string{"error": err.Error(), "tool": name})
	if mErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(text))
}

func (d *Dispatcher) testConnection(ctx context.Context, _ map[string]any) (any, string, error) {
	ok := d.svc.TestConnection(ctx)
	msg := "Connection failed"
	if ok {
		msg = "Successfully connected to Hudu API"
	}
	return map[string]bool{"success": ok}, msg, nil
}

func (d *Dispatcher) entityHandler(s entitySchema, v service.Verb) handler {
	e := s.entity
	return func(ctx context.Context, args map[string]any) (any, string, error) {
		req, err := decodeRequest(s, v, args)
		if err != nil {
			return nil, "", err
		}
		switch r := req.(type) {
		case ListRequest:
			records, err := d.svc.List(ctx, e, r.Filters)
			if err != nil {
				return nil, "", err
			}
			if records == nil {
				records = []client.Record{}
			}
			return records, fmt.Sprintf("Found %d %s", len(records), e.Noun), nil
		case CreateRequest:
			rec, err := d.svc.Create(ctx, e, r.Data)
			if err != nil {
				return nil, "", err
			}
			return rec, e.Label + " created successfully", nil
		case UpdateRequest:
			rec, err := d.svc.Update(ctx, e, r.ID, r.Data)
			if err != nil {
				return nil, "", err
			}
			return rec, fmt.Sprintf("%s %d updated successfully", e.Label, r.ID), nil
		case IDRequest:
			return d.byID(ctx, e, v, r.ID)
		default:
			return nil, "", fmt.Errorf("unhandled request %T", req)
		}
	}
}

func (d *Dispatcher) byID(ctx context.Context, e service.Entity, v service.Verb, id int64) (any, string, error) {
	var err error
	switch v {
	case service.VerbGet:
		rec, err := d.svc.Get(ctx, e, id)
		if err != nil {
			return nil, "", err
		}
		return rec, e.Label + " retrieved successfully", nil
	case service.VerbDelete:
		err = d.svc.Delete(ctx, e, id)
	case service.VerbArchive:
		err = d.svc.Archive(ctx, e, id)
	case service.VerbUnarchive:
		err = d.svc.Unarchive(ctx, e, id)
	default:
		return nil, "", fmt.Errorf("%w: %s %s", service.ErrUnsupportedVerb, v, e.Name)
	}
	if err != nil {
		return nil, "", err
	}
	return nil, fmt.Sprintf("%s %d %sd successfully", e.Label, id, v), nil
}

// RegisterAll adds the tools allowed by profile to s.
func RegisterAll(s *server.MCPServer, d *Dispatcher, profile mcpfilter.Profile) int {
	tools := mcpfilter.Filter(d.Tools(), func(t server.ServerTool) string { return t.Tool.Name },
		profile, mcpfilter.ToolClusters, mcpfilter.ProfileClusters)
	s.AddTools(tools...)
	return len(tools)
}
