package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/auth"
)

var whoamiJSON bool

// whoamiCmd prints the authenticated identity.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated identity",
	Long:  "Resolve the identity behind the configured API key against the gateway.",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "print identity as JSON")
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if err := app.requireAuth(); err != nil {
		return err
	}

	id, err := auth.WhoAmI(cmd.Context(), app.caller())
	if err != nil {
		return wrapGatewayError(err)
	}

	w := cmd.OutOrStdout()
	if whoamiJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(id)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	_, _ = bold.Fprintln(w, id.Email)
	if id.Name != "" {
		_, _ = fmt.Fprintf(w, "  name  %s\n", id.Name)
	}
	_, _ = fmt.Fprintf(w, "  org   %s", id.Org)
	if id.OrgName != "" {
		_, _ = dim.Fprintf(w, " (%s)", id.OrgName)
	}
	_, _ = fmt.Fprintln(w)
	if id.Plan != "" {
		_, _ = fmt.Fprintf(w, "  plan  %s\n", id.Plan)
	}
	return nil
}
