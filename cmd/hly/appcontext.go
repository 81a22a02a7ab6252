package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/headlessly/hly/internal/auth"
	"github.com/headlessly/hly/internal/config"
	"github.com/headlessly/hly/internal/rpc"
)

// appContext carries everything a command needs: merged configuration,
// stored credentials, and the gateway client factory. It is built once in
// the root command's PersistentPreRunE and read by run functions; there is
// no implicit default client anywhere else.
type appContext struct {
	cfg   *config.Config
	creds *auth.Credentials // nil when not logged in

	// newCaller builds the gateway calling surface. Tests swap it for a
	// fake so commands never reach the network.
	newCaller func(baseURL, apiKey string) rpc.Caller
}

// app is set by rootCmd before any subcommand runs.
var app *appContext

func buildAppContext() (*appContext, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, fmt.Errorf("hly: load global config (%v)", err)
	}
	project, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("hly: load project config (%v)", err)
	}

	creds, err := auth.Load()
	if err != nil && !errors.Is(err, auth.ErrNotLoggedIn) {
		return nil, err
	}

	cfg := config.Merge(global, project)
	if err := cfg.Validate(); err != nil {
		return nil, exitError(ExitUsage, "hly: %v", err)
	}

	return &appContext{
		cfg:   cfg,
		creds: creds,
		newCaller: func(baseURL, apiKey string) rpc.Caller {
			return rpc.New(baseURL, apiKey)
		},
	}, nil
}

// gatewayURL resolves the gateway endpoint: env override first, then
// merged config, then the hosted default.
func (a *appContext) gatewayURL() string {
	if env := os.Getenv("HEADLESSLY_GATEWAY"); env != "" {
		return env
	}
	if a.cfg.Gateway != "" {
		return a.cfg.Gateway
	}
	return rpc.DefaultBaseURL
}

// apiKey resolves the key: env override first, then stored credentials.
func (a *appContext) apiKey() string {
	if env := os.Getenv("HEADLESSLY_API_KEY"); env != "" {
		return env
	}
	if a.creds != nil {
		return a.creds.APIKey
	}
	return ""
}

// caller returns the gateway calling surface for the resolved settings.
func (a *appContext) caller() rpc.Caller {
	return a.newCaller(a.gatewayURL(), a.apiKey())
}

// requireAuth fails with the auth exit code when no API key is available.
func (a *appContext) requireAuth() error {
	if a.apiKey() == "" {
		return exitError(ExitAuth, "hly: not logged in (run `hly login` or set HEADLESSLY_API_KEY)")
	}
	return nil
}

// defaultService returns the configured default service, or "" when none
// is set. Commands that can disambiguate a missing service argument use it.
func (a *appContext) defaultService() string {
	return a.cfg.DefaultService
}

// searchLimit applies the configured default when the flag was left at 0.
func (a *appContext) searchLimit(flagLimit int) int {
	if flagLimit > 0 {
		return flagLimit
	}
	return a.cfg.DefaultLimit
}
