package main

import (
	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/rpc"
)

// fetchCmd fetches a single entity by ID.
var fetchCmd = &cobra.Command{
	Use:   "fetch <service> <id>",
	Short: "Fetch a single entity by ID",
	Long: `Fetch one entity from a gateway service:

  hly fetch crm c_8f3a
  hly fetch market listing_42`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	service, id := "", ""
	switch {
	case len(args) == 2:
		service, id = args[0], args[1]
	case app.defaultService() != "":
		service, id = app.defaultService(), args[0]
	default:
		return exitError(ExitUsage, "hly: usage: hly fetch <service> <id>")
	}

	if err := app.requireAuth(); err != nil {
		return err
	}

	svc := rpc.BindService(app.caller(), service)
	result, err := svc.Get(cmd.Context(), id)
	if err != nil {
		if rpc.IsNotFound(err) {
			return exitError(ExitUsage, "hly: %s %q not found", service, id)
		}
		return wrapGatewayError(err)
	}
	return printResult(cmd.OutOrStdout(), result)
}
