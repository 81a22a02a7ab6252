package main

import (
	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/rpc"
)

// schemaCmd prints the gateway's method schema.
var schemaCmd = &cobra.Command{
	Use:   "schema [service]",
	Short: "Show the gateway's method schema",
	Long: `Fetch the method schema for one service, or for every service when no
service is given:

  hly schema
  hly schema crm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	if err := app.requireAuth(); err != nil {
		return err
	}

	service := ""
	if len(args) > 0 {
		service = args[0]
	}

	result, err := rpc.SchemaFor(cmd.Context(), app.caller(), service)
	if err != nil {
		return wrapGatewayError(err)
	}
	return printResult(cmd.OutOrStdout(), result)
}
