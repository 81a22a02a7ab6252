package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/auth"
)

// logoutCmd removes stored credentials.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and delete stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := auth.Delete(); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}
