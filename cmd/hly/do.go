package main

import (
	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/cliargs"
	"github.com/headlessly/hly/internal/rpc"
)

// doCmd invokes a named mutating action on a service.
var doCmd = &cobra.Command{
	Use:   "do <service> <action> [--param value ...]",
	Short: "Invoke a named action on a service",
	Long: `Invoke a mutating action on a gateway service with free-form parameters:

  hly do crm contacts.create --name "Ada Lovelace" --stage Lead
  hly do support tickets.close --id t_42`,
	DisableFlagParsing: true,
	RunE:               runDo,
}

func runDo(cmd *cobra.Command, args []string) error {
	parsed := cliargs.Parse(args)
	if _, ok := parsed.Flags["help"]; ok {
		return cmd.Help()
	}
	service, action, err := resolveServiceAndMethod(parsed.Positional)
	if err != nil {
		return exitError(ExitUsage, "hly: usage: hly do <service> <action> [--param value ...]")
	}

	if err := app.requireAuth(); err != nil {
		return err
	}

	svc := rpc.BindService(app.caller(), service)

	result, err := svc.Do(cmd.Context(), action, parsed.Params())
	if err != nil {
		return wrapGatewayError(err)
	}
	return printResult(cmd.OutOrStdout(), result)
}
