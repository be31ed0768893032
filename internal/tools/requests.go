package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mistakeknot/hudu-mcp/internal/service"
)

// ErrInvalidArguments is returned when tool arguments fail boundary checks.
var ErrInvalidArguments = errors.New("invalid arguments")

// Request is a decoded tool call. Exactly one variant exists per verb shape.
type Request interface {
	isRequest()
}

// ListRequest carries pagination and scalar filters.
type ListRequest struct {
	Filters map[string]any
}

// IDRequest addresses one record (get, delete, archive, unarchive).
type IDRequest struct {
	ID int64
}

// CreateRequest carries the new record's fields. Never includes an id.
type CreateRequest struct {
	Data map[string]any
}

// UpdateRequest carries the target id and the changed fields. Data never
// includes an id.
type UpdateRequest struct {
	ID   int64
	Data map[string]any
}

func (ListRequest) isRequest()   {}
func (IDRequest) isRequest()     {}
func (CreateRequest) isRequest() {}
func (UpdateRequest) isRequest() {}

// decodeRequest validates args for one entity verb and returns its variant.
func decodeRequest(s entitySchema, v service.Verb, args map[string]any) (Request, error) {
	switch v {
	case service.VerbList:
		filters, err := scalarFilters(args)
		if err != nil {
			return nil, err
		}
		return ListRequest{Filters: filters}, nil
	case service.VerbCreate:
		data := withoutID(args)
		for _, name := range s.requiredFields(v) {
			if missing(data[name]) {
				return nil, fmt.Errorf("%w: missing required field %q", ErrInvalidArguments, name)
			}
		}
		return CreateRequest{Data: data}, nil
	case service.VerbUpdate:
		id, err := parseID(args["id"])
		if err != nil {
			return nil, err
		}
		return UpdateRequest{ID: id, Data: withoutID(args)}, nil
	default:
		id, err := parseID(args["id"])
		if err != nil {
			return nil, err
		}
		return IDRequest{ID: id}, nil
	}
}

func scalarFilters(args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for k, v := range args {
		switch v.(type) {
		case nil:
			continue
		case string, bool, float64, int, int64, json.Number:
			out[k] = v
		default:
			return nil, fmt.Errorf("%w: filter %q must be a string, number, or boolean", ErrInvalidArguments, k)
		}
	}
	return out, nil
}

func withoutID(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

func missing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// parseID accepts JSON numbers and numeric strings holding a positive integer.
func parseID(v any) (int64, error) {
	var id int64
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: id is required", ErrInvalidArguments)
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidArguments)
		}
		id = int64(n)
	case int:
		id = int64(n)
	case int64:
		id = n
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidArguments)
		}
		id = i
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidArguments)
		}
		id = i
	default:
		return 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidArguments)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidArguments)
	}
	return id, nil
}
