package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Hosted OAuth endpoints. Both can be overridden for self-hosted gateways
// and for tests.
const (
	DefaultAuthURL  = "https://id.headless.ly/oauth/authorize"
	DefaultTokenURL = "https://id.headless.ly/oauth/token"
	defaultClientID = "hly-cli"
)

// loginTimeout bounds the whole browser round trip.
const loginTimeout = 5 * time.Minute

// LoginOptions configures the OAuth authorization-code flow.
type LoginOptions struct {
	AuthURL  string // defaults to DefaultAuthURL
	TokenURL string // defaults to DefaultTokenURL
	ClientID string // defaults to the public CLI client

	// OpenBrowser is invoked with the authorization URL. When nil, the URL
	// is only printed to Out and the user opens it manually.
	OpenBrowser func(url string) error

	// Out receives human-facing status text. Must not be stdout when the
	// process is serving JSON-RPC. Defaults to io.Discard.
	Out io.Writer
}

// Login runs the OAuth 2.0 authorization-code flow with a loopback
// redirect: it starts a localhost listener, sends the user to the
// authorization URL, waits for the callback, and exchanges the code for a
// token. The gateway accepts the resulting access token as an API key.
func Login(ctx context.Context, opts LoginOptions) (*Credentials, error) {
	if opts.AuthURL == "" {
		opts.AuthURL = DefaultAuthURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = DefaultTokenURL
	}
	if opts.ClientID == "" {
		opts.ClientID = defaultClientID
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("auth: start callback listener (%v)", err)
	}
	defer listener.Close() //nolint:errcheck // best-effort close

	conf := &oauth2.Config{
		ClientID:    opts.ClientID,
		RedirectURL: fmt.Sprintf("http://%s/callback", listener.Addr()),
		Endpoint: oauth2.Endpoint{
			AuthURL:  opts.AuthURL,
			TokenURL: opts.TokenURL,
		},
		Scopes: []string{"platform"},
	}

	state := uuid.NewString()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)

	fmt.Fprintf(opts.Out, "Open this URL to log in:\n\n  %s\n\n", authURL)
	if opts.OpenBrowser != nil {
		if err := opts.OpenBrowser(authURL); err != nil {
			fmt.Fprintf(opts.Out, "could not open browser: %v\n", err)
		}
	}

	code, err := waitForCallback(ctx, listener, state)
	if err != nil {
		return nil, err
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: token exchange failed (%v)", err)
	}

	return &Credentials{
		APIKey:     token.AccessToken,
		ObtainedAt: time.Now().UTC(),
	}, nil
}

// waitForCallback serves the loopback redirect until the provider delivers
// a code, the state check fails, or the context/timeout fires.
func waitForCallback(ctx context.Context, listener net.Listener, state string) (string, error) {
	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/callback" {
				http.NotFound(w, r)
				return
			}
			q := r.URL.Query()
			if q.Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				results <- result{err: fmt.Errorf("auth: state mismatch in callback")}
				return
			}
			if errCode := q.Get("error"); errCode != "" {
				http.Error(w, "login failed", http.StatusBadRequest)
				results <- result{err: fmt.Errorf("auth: provider returned %q", errCode)}
				return
			}
			fmt.Fprintln(w, "Login complete. You can close this tab.")
			results <- result{code: q.Get("code")}
		}),
	}

	go server.Serve(listener) //nolint:errcheck // terminated via Close below
	defer server.Close()      //nolint:errcheck // best-effort close

	select {
	case r := <-results:
		return r.code, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(loginTimeout):
		return "", fmt.Errorf("auth: timed out waiting for login callback")
	}
}

// LoginWithKey stores a user-supplied API key directly, bypassing the
// browser flow.
func LoginWithKey(apiKey string) (*Credentials, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, fmt.Errorf("auth: API key must not be empty")
	}
	return &Credentials{APIKey: key, ObtainedAt: time.Now().UTC()}, nil
}
