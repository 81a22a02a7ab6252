package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider simulates the OAuth provider: the "browser" immediately
// follows the authorization URL's redirect_uri with a code, and the token
// endpoint exchanges that code for an access token.
func fakeProvider(t *testing.T, code string) (tokenURL string, browser func(string) error) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, code, r.FormValue("code"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok_live_123",
			"token_type":   "Bearer",
		})
	}))
	t.Cleanup(srv.Close)

	browser = func(authURL string) error {
		u, err := url.Parse(authURL)
		if err != nil {
			return err
		}
		redirect := u.Query().Get("redirect_uri")
		state := u.Query().Get("state")

		go func() {
			resp, err := http.Get(redirect + "?code=" + code + "&state=" + state) //nolint:noctx // test helper
			if err == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
			}
		}()
		return nil
	}
	return srv.URL, browser
}

func TestLogin_AuthorizationCodeFlow(t *testing.T) {
	tokenURL, browser := fakeProvider(t, "code_abc")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	creds, err := Login(ctx, LoginOptions{
		AuthURL:     "https://id.example.com/oauth/authorize",
		TokenURL:    tokenURL,
		OpenBrowser: browser,
	})
	require.NoError(t, err)
	assert.Equal(t, "tok_live_123", creds.APIKey)
	assert.False(t, creds.ObtainedAt.IsZero())
}

func TestLogin_StateMismatch(t *testing.T) {
	browser := func(authURL string) error {
		u, _ := url.Parse(authURL)
		redirect := u.Query().Get("redirect_uri")
		go func() {
			resp, err := http.Get(redirect + "?code=c&state=wrong") //nolint:noctx // test helper
			if err == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
			}
		}()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := Login(ctx, LoginOptions{
		AuthURL:     "https://id.example.com/oauth/authorize",
		TokenURL:    "https://id.example.com/oauth/token",
		OpenBrowser: browser,
	})
	assert.ErrorContains(t, err, "state mismatch")
}

func TestLogin_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Login(ctx, LoginOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
