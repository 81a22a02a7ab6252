package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/auth"
)

// Login-specific flag values.
var (
	loginAPIKey   string
	loginAuthURL  string
	loginTokenURL string
)

// loginCmd authenticates against the Headlessly auth service.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Headlessly platform",
	Long: `Authenticate against the Headlessly auth service and store the resulting
API key in the global credentials file.

By default this opens a browser-based OAuth flow. Pass --api-key to store
an existing key directly, for scripted or headless environments.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginAPIKey, "api-key", "", "store this API key instead of running the browser flow")
	loginCmd.Flags().StringVar(&loginAuthURL, "auth-url", "", "override the OAuth authorization endpoint")
	loginCmd.Flags().StringVar(&loginTokenURL, "token-url", "", "override the OAuth token endpoint")
	_ = loginCmd.Flags().MarkHidden("auth-url")
	_ = loginCmd.Flags().MarkHidden("token-url")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	var creds *auth.Credentials
	var err error

	if loginAPIKey != "" {
		creds, err = auth.LoginWithKey(loginAPIKey)
	} else {
		creds, err = auth.Login(cmd.Context(), auth.LoginOptions{
			AuthURL:  loginAuthURL,
			TokenURL: loginTokenURL,
			Out:      os.Stderr,
		})
	}
	if err != nil {
		return exitError(ExitAuth, "hly: login failed (%v)", err)
	}

	// Resolve the identity behind the new key so the credentials file
	// records who is logged in. Best effort: a gateway hiccup here should
	// not lose the key.
	client := app.newCaller(app.gatewayURL(), creds.APIKey)
	if id, whoErr := auth.WhoAmI(cmd.Context(), client); whoErr == nil {
		creds.Email = id.Email
		creds.Org = id.Org
	} else {
		slog.Warn("could not verify identity after login", "error", whoErr)
	}

	if err := auth.Save(creds); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	if creds.Email != "" {
		_, _ = green.Fprintf(w, "Logged in as %s\n", creds.Email)
	} else {
		_, _ = green.Fprintln(w, "Logged in")
	}
	_, _ = fmt.Fprintf(w, "Credentials stored in %s\n", auth.CredentialsPath())
	return nil
}
