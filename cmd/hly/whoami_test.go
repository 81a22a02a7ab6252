package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/headlessly/hly/internal/jsonrpc"
	"github.com/headlessly/hly/internal/rpc"
)

func TestWhoami(t *testing.T) {
	caller := &fakeCaller{results: map[string]json.RawMessage{
		"auth.whoami": json.RawMessage(`{"email":"alice@example.com","org":"org_1","org_name":"Acme","plan":"team"}`),
	}}
	setupApp(t, caller, false)

	out, err := execute(t, nil, "whoami")
	if err != nil {
		t.Fatalf("whoami failed: %v", err)
	}

	c := caller.calls[0]
	if c.service != "auth" || c.method != "whoami" {
		t.Errorf("called %s.%s, want auth.whoami", c.service, c.method)
	}
	for _, want := range []string{"alice@example.com", "org_1", "Acme", "team"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestWhoamiJSON(t *testing.T) {
	caller := &fakeCaller{results: map[string]json.RawMessage{
		"auth.whoami": json.RawMessage(`{"email":"alice@example.com","org":"org_1"}`),
	}}
	setupApp(t, caller, false)

	out, err := execute(t, nil, "whoami", "--json")
	if err != nil {
		t.Fatalf("whoami --json failed: %v", err)
	}

	var id map[string]any
	if err := json.Unmarshal([]byte(out), &id); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if id["email"] != "alice@example.com" {
		t.Errorf("email = %v, want alice@example.com", id["email"])
	}
}

func TestWhoamiRequiresAuth(t *testing.T) {
	caller := &fakeCaller{}
	setupApp(t, caller, true)

	_, err := execute(t, nil, "whoami")
	if code := exitCodeOf(t, err); code != ExitAuth {
		t.Errorf("exit code = %d, want %d", code, ExitAuth)
	}
}

func TestWhoamiRejectedKey(t *testing.T) {
	caller := &fakeCaller{err: &rpc.CallError{
		Service: "auth",
		Method:  "whoami",
		Code:    jsonrpc.CodeAuthRequired,
		Message: "invalid key",
	}}
	setupApp(t, caller, false)

	_, err := execute(t, nil, "whoami")
	if code := exitCodeOf(t, err); code != ExitAuth {
		t.Errorf("exit code = %d, want %d", code, ExitAuth)
	}
}
