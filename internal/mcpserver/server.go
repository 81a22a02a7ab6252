// Package mcpserver bridges the Model Context Protocol to the Headlessly
// RPC gateway. It implements the stdio.Handler contract: one parsed
// JSON-RPC request in, one encoded response out, with every failure encoded
// as a JSON-RPC error envelope rather than returned as a Go error.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/headlessly/hly/internal/jsonrpc"
	"github.com/headlessly/hly/internal/rpc"
)

// protocolVersion is the MCP revision this bridge speaks.
const protocolVersion = "2025-06-18"

// Handler dispatches MCP methods onto the gateway client.
type Handler struct {
	caller  rpc.Caller
	version string
}

// New creates a Handler around the given calling surface.
func New(caller rpc.Caller, version string) *Handler {
	return &Handler{caller: caller, version: version}
}

// Handle parses and dispatches one JSON-RPC message. It returns nil for
// notifications (no response line is written) and an encoded envelope for
// everything else.
func (h *Handler) Handle(ctx context.Context, requestBytes []byte) []byte {
	var req jsonrpc.Request
	if err := json.Unmarshal(requestBytes, &req); err != nil {
		return encode(jsonrpc.NewParseError(err.Error()))
	}

	if req.JSONRPC != jsonrpc.Version {
		return encode(jsonrpc.NewInvalidRequest(req.ID, "jsonrpc must be 2.0"))
	}
	if req.Method == "" {
		return encode(jsonrpc.NewInvalidRequest(req.ID, "method is required"))
	}

	// Notifications never get a response, whatever the method.
	if req.IsNotification() {
		return nil
	}

	result, errResp := h.dispatch(ctx, &req)
	if errResp != nil {
		return encode(errResp)
	}
	return encode(jsonrpc.NewResponse(req.ID, result))
}

func (h *Handler) dispatch(ctx context.Context, req *jsonrpc.Request) (any, *jsonrpc.ErrorResponse) {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(), nil
	case "ping":
		return map[string]any{}, nil
	case "tools/list":
		return h.handleToolsList(), nil
	case "tools/call":
		return h.handleToolsCall(ctx, req)
	default:
		return nil, jsonrpc.NewMethodNotFound(req.ID, req.Method)
	}
}

func (h *Handler) handleInitialize() any {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "headlessly",
			"version": h.version,
		},
	}
}

func encode(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
