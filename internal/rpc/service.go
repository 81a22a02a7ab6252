package rpc

import (
	"context"
	"encoding/json"
)

// Domains lists the service names the platform ships with. Unknown names
// are still callable; the gateway is authoritative.
var Domains = []string{"crm", "sell", "market", "content", "support", "people"}

// Service is a client bound to one named gateway service.
type Service struct {
	client Caller
	name   string
}

// Service binds the client to a named service.
func (c *Client) Service(name string) *Service {
	return &Service{client: c, name: name}
}

// BindService binds any Caller to a named service. Used by commands that
// receive the calling surface through the app context.
func BindService(c Caller, name string) *Service {
	return &Service{client: c, name: name}
}

// Convenience constructors for the built-in domains, mirroring the
// platform's per-domain client packages.

func (c *Client) CRM() *Service     { return c.Service("crm") }
func (c *Client) Sell() *Service    { return c.Service("sell") }
func (c *Client) Market() *Service  { return c.Service("market") }
func (c *Client) Content() *Service { return c.Service("content") }
func (c *Client) Support() *Service { return c.Service("support") }
func (c *Client) People() *Service  { return c.Service("people") }

// Name returns the bound service name.
func (s *Service) Name() string { return s.name }

// Call invokes an arbitrary method on the bound service.
func (s *Service) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	return s.client.Call(ctx, s.name, method, params)
}

// SearchParams is the request shape for a service's search method.
type SearchParams struct {
	Query  string            `json:"query,omitempty"`
	Filter map[string]any    `json:"filter,omitempty"`
	Sort   map[string]string `json:"sort,omitempty"`
	Limit  int               `json:"limit,omitempty"`
}

// Search runs the service's search method.
func (s *Service) Search(ctx context.Context, params SearchParams) (json.RawMessage, error) {
	return s.Call(ctx, "search", params)
}

// Get fetches a single entity by ID.
func (s *Service) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.Call(ctx, "get", map[string]string{"id": id})
}

// Do invokes a named mutating action with free-form parameters.
func (s *Service) Do(ctx context.Context, action string, params map[string]any) (json.RawMessage, error) {
	return s.Call(ctx, action, params)
}

// SchemaFor fetches the gateway's method schema for one service, or for
// every service when name is empty.
func SchemaFor(ctx context.Context, c Caller, name string) (json.RawMessage, error) {
	params := map[string]string{}
	if name != "" {
		params["service"] = name
	}
	return c.Call(ctx, "platform", "schema", params)
}

// HealthInfo is the gateway's answer to a ping.
type HealthInfo struct {
	OK            bool   `json:"ok"`
	Version       string `json:"version"`
	MinCLIVersion string `json:"min_cli_version"`
}

// Ping probes one service and decodes its health payload.
func Ping(ctx context.Context, c Caller, service string) (*HealthInfo, error) {
	raw, err := c.Call(ctx, service, "ping", nil)
	if err != nil {
		return nil, err
	}
	var info HealthInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
