package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/headlessly/hly/internal/auth"
	"github.com/headlessly/hly/internal/config"
	"github.com/headlessly/hly/internal/rpc"
)

// fakeCaller records gateway calls and returns canned results per method.
// Safe for concurrent use; debounced searches call from timer goroutines.
type fakeCaller struct {
	mu      sync.Mutex
	calls   []recordedCall
	results map[string]json.RawMessage // keyed by "service.method"
	err     error
}

type recordedCall struct {
	service string
	method  string
	params  any
}

func (f *fakeCaller) Call(_ context.Context, service, method string, params any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{service: service, method: method, params: params})
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[service+"."+method]; ok {
		return r, nil
	}
	return json.RawMessage(`{"ok":true}`), nil
}

// recorded returns a snapshot of the calls seen so far.
func (f *fakeCaller) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

// setupApp wires a fake gateway into the command tree for the duration of
// one test and returns the injected app context so tests can adjust its
// config. The fake app is logged in unless loggedOut is set.
func setupApp(t *testing.T, caller rpc.Caller, loggedOut bool) *appContext {
	t.Helper()

	var creds *auth.Credentials
	if !loggedOut {
		creds = &auth.Credentials{APIKey: "sk_test", Email: "alice@example.com"}
	}
	fake := &appContext{
		cfg:   &config.Config{},
		creds: creds,
		newCaller: func(_, _ string) rpc.Caller {
			return caller
		},
	}

	prev := buildApp
	buildApp = func() (*appContext, error) { return fake, nil }
	t.Cleanup(func() { buildApp = prev })

	// Credential and key lookups must not leak in from the host.
	t.Setenv("HEADLESSLY_API_KEY", "")
	t.Setenv("HEADLESSLY_GATEWAY", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	resetFlags(t)
	return fake
}

// resetFlags clears command flag values so tests do not bleed into each
// other through the package-level bindings.
func resetFlags(t *testing.T) {
	t.Helper()

	verbose, quiet, noColor = false, false, true
	loginAPIKey, loginAuthURL, loginTokenURL = "", "", ""
	whoamiJSON = false
	searchQuery, searchSort = "", ""
	searchFilters = nil
	searchLimit = 0
	searchJSON, searchWatch = false, false
	initForce = false
}

// execute runs the root command with args, capturing stdout.
func execute(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	if in != nil {
		rootCmd.SetIn(in)
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}
