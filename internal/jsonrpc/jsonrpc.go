// Package jsonrpc defines the JSON-RPC 2.0 envelope types shared by the
// stdio bridge and the gateway client. Method-specific params and results
// stay opaque; only the envelope itself is typed and validated here.
package jsonrpc

import "encoding/json"

// Version is the only protocol version this package speaks.
const Version = "2.0"

// Request is a JSON-RPC 2.0 request. ID is string, number, or null;
// requests without an ID are notifications and receive no response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no ID.
func (r *Request) IsNotification() bool { return r.ID == nil }

// Response is a successful JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result"`
}

// ErrorResponse is a JSON-RPC 2.0 error response. ID echoes the request's,
// or is null when the request could not be parsed.
type ErrorResponse struct {
	JSONRPC string   `json:"jsonrpc"`
	ID      any      `json:"id"`
	Error   RPCError `json:"error"`
}

// RPCError is the error object inside an ErrorResponse.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Server-reserved codes (-32000 to -32099) used by the Headlessly gateway.
const (
	CodeAuthRequired = -32001 // no API key configured or key rejected
	CodeNotFound     = -32003 // entity not found
	CodeUpstream     = -32004 // gateway's upstream service failed
)

// NewResponse builds a success response echoing id.
func NewResponse(id any, result any) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

// NewErrorResponse builds an error response with an arbitrary code.
func NewErrorResponse(id any, code int, message string, data any) *ErrorResponse {
	return &ErrorResponse{
		JSONRPC: Version,
		ID:      id,
		Error:   RPCError{Code: code, Message: message, Data: data},
	}
}

// NewParseError builds the -32700 envelope for unparseable input. The ID is
// always null because the request's ID is unknowable.
func NewParseError(data any) *ErrorResponse {
	return NewErrorResponse(nil, CodeParseError, "Parse error", data)
}

// NewInvalidRequest builds the -32600 envelope for structurally invalid
// requests (wrong version, missing method).
func NewInvalidRequest(id any, data any) *ErrorResponse {
	return NewErrorResponse(id, CodeInvalidRequest, "Invalid Request", data)
}

// NewMethodNotFound builds the -32601 envelope.
func NewMethodNotFound(id any, method string) *ErrorResponse {
	return NewErrorResponse(id, CodeMethodNotFound, "Method not found", method)
}

// NewInvalidParams builds the -32602 envelope.
func NewInvalidParams(id any, message string) *ErrorResponse {
	return NewErrorResponse(id, CodeInvalidParams, message, nil)
}

// NewInternalError builds the -32603 envelope.
func NewInternalError(id any, message string) *ErrorResponse {
	return NewErrorResponse(id, CodeInternalError, message, nil)
}
