package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_RoundTrip(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      gotReq["id"],
			"result":  map[string]any{"name": "Acme"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test_123")
	result, err := c.Call(context.Background(), "crm", "contacts.get", map[string]string{"id": "c_1"})
	require.NoError(t, err)

	assert.Equal(t, "/rpc/crm", gotPath)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, "2.0", gotReq["jsonrpc"])
	assert.Equal(t, "contacts.get", gotReq["method"])
	assert.NotEmpty(t, gotReq["id"], "each call carries a generated request ID")
	assert.Equal(t, map[string]any{"id": "c_1"}, gotReq["params"])
	assert.JSONEq(t, `{"name":"Acme"}`, string(result))
}

func TestCall_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": 1, "result": true})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Call(context.Background(), "crm", "ping", nil)
	require.NoError(t, err)
}

func TestCall_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      "x",
			"error":   map[string]any{"code": -32001, "message": "API key required"},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Call(context.Background(), "sell", "orders.create", nil)
	require.Error(t, err)

	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "sell", ce.Service)
	assert.Equal(t, "orders.create", ce.Method)
	assert.Equal(t, -32001, ce.Code)
	assert.True(t, IsAuthRequired(err))
	assert.False(t, IsNotFound(err))
}

func TestCall_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").Call(context.Background(), "crm", "ping", nil)
	assert.ErrorContains(t, err, "HTTP 502")
}

func TestCall_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", "k")
	_, err := c.Call(context.Background(), "crm", "ping", nil)
	assert.ErrorContains(t, err, "unreachable")
}

func TestNew_Defaults(t *testing.T) {
	c := New("", "")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = New("https://gw.example.com///", "")
	assert.Equal(t, "https://gw.example.com", c.BaseURL())
}
