package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/headlessly/hly/internal/rpc"
)

func TestStatusAllUp(t *testing.T) {
	caller := &fakeCaller{}
	setupApp(t, caller, false)

	out, err := execute(t, nil, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	calls := caller.recorded()
	if len(calls) != len(rpc.Domains) {
		t.Fatalf("probed %d services, want %d", len(calls), len(rpc.Domains))
	}
	for _, c := range calls {
		if c.method != "ping" {
			t.Errorf("called %s.%s, want ping", c.service, c.method)
		}
	}
	for _, domain := range rpc.Domains {
		if !strings.Contains(out, domain) {
			t.Errorf("output missing %s, got:\n%s", domain, out)
		}
	}
	if !strings.Contains(out, "up") {
		t.Errorf("output missing up marker, got:\n%s", out)
	}
}

func TestStatusAllDown(t *testing.T) {
	caller := &fakeCaller{err: errors.New("connection refused")}
	setupApp(t, caller, false)

	_, err := execute(t, nil, "status")
	if code := exitCodeOf(t, err); code != ExitGateway {
		t.Errorf("exit code = %d, want %d", code, ExitGateway)
	}
}

// versionCaller reports a minimum CLI version from every ping.
type versionCaller struct {
	fakeCaller
	minCLI string
}

func (v *versionCaller) Call(ctx context.Context, service, method string, params any) (json.RawMessage, error) {
	if _, err := v.fakeCaller.Call(ctx, service, method, params); err != nil {
		return nil, err
	}
	return json.Marshal(rpc.HealthInfo{OK: true, Version: "1.4.0", MinCLIVersion: v.minCLI})
}

func TestStatusVersionWarning(t *testing.T) {
	setupApp(t, &versionCaller{minCLI: "v99.0.0"}, false)

	prev := Version
	Version = "0.1.0"
	t.Cleanup(func() { Version = prev })

	out, err := execute(t, nil, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "older than the gateway's minimum") {
		t.Errorf("expected upgrade warning, got:\n%s", out)
	}
}

func TestVersionWarning(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		minimum  string
		wantWarn bool
	}{
		{"older", "0.1.0", "v1.0.0", true},
		{"equal", "1.0.0", "v1.0.0", false},
		{"newer", "2.0.0", "v1.0.0", false},
		{"no minimum", "0.1.0", "", false},
		{"dev build", "dev", "v1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := versionWarning(tt.current, tt.minimum)
			if got := msg != ""; got != tt.wantWarn {
				t.Errorf("versionWarning(%q, %q) = %q, wantWarn %v", tt.current, tt.minimum, msg, tt.wantWarn)
			}
		})
	}
}
