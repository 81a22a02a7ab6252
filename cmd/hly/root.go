package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	hlylog "github.com/headlessly/hly/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for hly.
var rootCmd = &cobra.Command{
	Use:   "hly",
	Short: "Command-line client for the Headlessly platform",
	Long: `hly is the command-line client for the Headlessly platform. It talks to
the hosted RPC gateway that fronts every platform domain (crm, sell, market,
content, support, people), handles login against the Headlessly auth
service, and can expose the whole gateway to AI agents as an MCP server
over stdio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		hlylog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
		var err error
		app, err = buildApp()
		return err
	},
}

// buildApp is swapped by tests to inject a fake gateway.
var buildApp = buildAppContext

func init() {
	rootCmd.Version = Version

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(doCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
