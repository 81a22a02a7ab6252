package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/headlessly/hly/internal/jsonrpc"
	"github.com/headlessly/hly/internal/rpc"
)

// Tool is an MCP tool definition as it appears in a tools/list response.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// handleToolsList exposes three tools per platform domain plus a generic
// escape hatch for methods without a dedicated tool.
func (h *Handler) handleToolsList() any {
	tools := make([]Tool, 0, 3*len(rpc.Domains)+1)

	for _, domain := range rpc.Domains {
		tools = append(tools,
			Tool{
				Name:        domain + "_search",
				Description: fmt.Sprintf("Search %s entities by query, filters, and sort order", domain),
				InputSchema: objectSchema(map[string]any{
					"query":  map[string]any{"type": "string", "description": "Free-text query"},
					"filter": map[string]any{"type": "object", "description": "Field constraints, e.g. {\"stage\": \"Lead\", \"value\": {\"gt\": 10000}}"},
					"sort":   map[string]any{"type": "object", "description": "Field to direction (asc/desc)"},
					"limit":  map[string]any{"type": "integer", "description": "Maximum results"},
				}, nil),
			},
			Tool{
				Name:        domain + "_fetch",
				Description: fmt.Sprintf("Fetch a single %s entity by ID", domain),
				InputSchema: objectSchema(map[string]any{
					"id": map[string]any{"type": "string", "description": "Entity ID"},
				}, []string{"id"}),
			},
			Tool{
				Name:        domain + "_do",
				Description: fmt.Sprintf("Invoke a named %s action with free-form parameters", domain),
				InputSchema: objectSchema(map[string]any{
					"action": map[string]any{"type": "string", "description": "Action name, e.g. contacts.create"},
					"params": map[string]any{"type": "object", "description": "Action parameters"},
				}, []string{"action"}),
			},
		)
	}

	tools = append(tools, Tool{
		Name:        "call",
		Description: "Call any gateway service method directly",
		InputSchema: objectSchema(map[string]any{
			"service": map[string]any{"type": "string", "description": "Service name, e.g. crm"},
			"method":  map[string]any{"type": "string", "description": "Method name, e.g. contacts.search"},
			"params":  map[string]any{"type": "object", "description": "Method parameters"},
		}, []string{"service", "method"}),
	})

	return map[string]any{"tools": tools}
}

// toolCallParams is the params shape of a tools/call request.
type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (h *Handler) handleToolsCall(ctx context.Context, req *jsonrpc.Request) (any, *jsonrpc.ErrorResponse) {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, jsonrpc.NewInvalidParams(req.ID, "tools/call params must be an object with name and arguments")
	}
	if params.Name == "" {
		return nil, jsonrpc.NewInvalidParams(req.ID, "tool name is required")
	}

	result, err := h.invokeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		var invalid *invalidToolError
		if errors.As(err, &invalid) {
			return nil, jsonrpc.NewInvalidParams(req.ID, invalid.Error())
		}
		var ce *rpc.CallError
		if errors.As(err, &ce) {
			// Gateway failures are tool-level errors, not protocol errors.
			return toolError(ce.Error()), nil
		}
		return nil, jsonrpc.NewInternalError(req.ID, err.Error())
	}

	return toolResult(result), nil
}

// invokeTool maps a tool name onto the corresponding gateway call.
func (h *Handler) invokeTool(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	if name == "call" {
		var a struct {
			Service string          `json:"service"`
			Method  string          `json:"method"`
			Params  json.RawMessage `json:"params"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.Service == "" || a.Method == "" {
			return nil, &invalidToolError{"call requires service and method"}
		}
		var callParams any
		if len(a.Params) > 0 {
			callParams = a.Params
		}
		return h.caller.Call(ctx, a.Service, a.Method, callParams)
	}

	domain, op, ok := splitToolName(name)
	if !ok {
		return nil, &invalidToolError{fmt.Sprintf("unknown tool %q", name)}
	}
	svc := rpc.BindService(h.caller, domain)

	switch op {
	case "search":
		var a rpc.SearchParams
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		return svc.Search(ctx, a)
	case "fetch":
		var a struct {
			ID string `json:"id"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.ID == "" {
			return nil, &invalidToolError{"id is required"}
		}
		return svc.Get(ctx, a.ID)
	case "do":
		var a struct {
			Action string         `json:"action"`
			Params map[string]any `json:"params"`
		}
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
		if a.Action == "" {
			return nil, &invalidToolError{"action is required"}
		}
		return svc.Do(ctx, a.Action, a.Params)
	default:
		return nil, &invalidToolError{fmt.Sprintf("unknown tool %q", name)}
	}
}

// splitToolName splits "<domain>_<op>" for the known domains only, so a
// misspelled domain surfaces as an unknown tool instead of a gateway call.
func splitToolName(name string) (domain, op string, ok bool) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 {
		return "", "", false
	}
	domain, op = name[:i], name[i+1:]
	for _, d := range rpc.Domains {
		if d == domain {
			return domain, op, true
		}
	}
	return "", "", false
}

func decodeArgs(args json.RawMessage, into any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return &invalidToolError{fmt.Sprintf("bad arguments: %v", err)}
	}
	return nil
}

// invalidToolError marks argument-level failures that map to -32602.
type invalidToolError struct {
	msg string
}

func (e *invalidToolError) Error() string { return e.msg }

// toolResult wraps a gateway result in MCP content.
func toolResult(raw json.RawMessage) any {
	text := string(raw)
	if text == "" {
		text = "null"
	}
	return map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
	}
}

// toolError reports a failed tool execution without failing the protocol
// exchange.
func toolError(message string) any {
	return map[string]any{
		"content": []map[string]any{{"type": "text", "text": message}},
		"isError": true,
	}
}

func objectSchema(props map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
