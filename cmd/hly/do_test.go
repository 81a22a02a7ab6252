package main

import (
	"testing"
)

func TestDoInvokesAction(t *testing.T) {
	caller := &fakeCaller{}
	setupApp(t, caller, false)

	_, err := execute(t, nil, "do", "crm", "contacts.create", "--name", "Ada Lovelace", "--stage", "Lead")
	if err != nil {
		t.Fatalf("do failed: %v", err)
	}

	if len(caller.calls) != 1 {
		t.Fatalf("expected 1 gateway call, got %d", len(caller.calls))
	}
	c := caller.calls[0]
	if c.service != "crm" || c.method != "contacts.create" {
		t.Errorf("called %s.%s, want crm.contacts.create", c.service, c.method)
	}
	params, ok := c.params.(map[string]any)
	if !ok {
		t.Fatalf("params type %T, want map[string]any", c.params)
	}
	if params["name"] != "Ada Lovelace" || params["stage"] != "Lead" {
		t.Errorf("params = %v", params)
	}
}

func TestDoUsageError(t *testing.T) {
	caller := &fakeCaller{}
	setupApp(t, caller, false)

	_, err := execute(t, nil, "do", "crm")
	if code := exitCodeOf(t, err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestDoRequiresAuth(t *testing.T) {
	caller := &fakeCaller{}
	setupApp(t, caller, true)

	_, err := execute(t, nil, "do", "support", "tickets.close", "--id", "t_42")
	if code := exitCodeOf(t, err); code != ExitAuth {
		t.Errorf("exit code = %d, want %d", code, ExitAuth)
	}
	if len(caller.calls) != 0 {
		t.Errorf("gateway called without credentials")
	}
}
