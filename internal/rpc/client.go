// Package rpc is the client for the Headlessly RPC gateway. Each platform
// domain (crm, sell, market, ...) is a named service on the gateway; every
// operation is a JSON-RPC 2.0 call POSTed to /rpc/<service>.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/headlessly/hly/internal/jsonrpc"
)

// DefaultBaseURL is the hosted gateway endpoint used when no override is
// configured.
const DefaultBaseURL = "https://api.headless.ly"

// defaultTimeout bounds a single gateway round trip.
const defaultTimeout = 30 * time.Second

// Caller is the minimal calling surface. The MCP bridge and the CLI
// commands depend on this interface, not on Client, so tests can inject
// fakes.
type Caller interface {
	Call(ctx context.Context, service, method string, params any) (json.RawMessage, error)
}

// Client talks JSON-RPC to the gateway over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Compile-time check that Client satisfies Caller.
var _ Caller = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests, custom
// transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a gateway client. baseURL may be empty, in which case the
// hosted endpoint is used. The API key may be empty; the gateway rejects
// authenticated methods with an auth-required error in that case.
func New(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured gateway endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Call performs one JSON-RPC call against the named service and returns the
// raw result. Gateway-reported failures come back as a *CallError.
func (c *Client) Call(ctx context.Context, service, method string, params any) (json.RawMessage, error) {
	var rawParams json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("rpc: encode params for %s.%s (%v)", service, method, err)
		}
		rawParams = b
	}

	reqBody, err := json.Marshal(jsonrpc.Request{
		JSONRPC: jsonrpc.Version,
		ID:      uuid.NewString(),
		Method:  method,
		Params:  rawParams,
	})
	if err != nil {
		return nil, fmt.Errorf("rpc: encode request (%v)", err)
	}

	url := c.baseURL + "/rpc/" + service
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("rpc: build request (%v)", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rpc: %s unreachable (%v)", c.baseURL, err)
	}
	defer httpResp.Body.Close() //nolint:errcheck // read-only body

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("rpc: gateway returned HTTP %d for %s.%s", httpResp.StatusCode, service, method)
	}

	var env struct {
		JSONRPC string            `json:"jsonrpc"`
		ID      any               `json:"id"`
		Result  json.RawMessage   `json:"result"`
		Error   *jsonrpc.RPCError `json:"error"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("rpc: decode response for %s.%s (%v)", service, method, err)
	}

	if env.Error != nil {
		return nil, &CallError{
			Service: service,
			Method:  method,
			Code:    env.Error.Code,
			Message: env.Error.Message,
			Data:    env.Error.Data,
		}
	}
	return env.Result, nil
}
